package changelog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Heading is one third-level heading in a section, ordered by priority
// (lower values render first).
type Heading struct {
	Priority uint8
	Name     string
}

// Headings is the ordered heading list a section renders its groups under.
type Headings []Heading

// Sorted returns the headings in priority order.
func (h Headings) Sorted() Headings {
	out := append(Headings(nil), h...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// Contains reports whether a heading with the given name is configured.
func (h Headings) Contains(name string) bool {
	for _, heading := range h {
		if heading.Name == name {
			return true
		}
	}
	return false
}

// Section is one changelog entry: the Unreleased entry when Tag is nil, or
// one release. Commits are bucketed by display group in walk order
// (newest first).
type Section struct {
	Tag *Tag

	headings    Headings
	groupTable  map[string]string
	showSummary bool
	groups      map[string][]ConvCommit
}

// NewSection returns an empty section for the given tag (nil for the
// Unreleased section).
func NewSection(tag *Tag, headings Headings, groupTable map[string]string, showSummary bool) *Section {
	return &Section{
		Tag:         tag,
		headings:    headings.Sorted(),
		groupTable:  groupTable,
		showSummary: showSummary,
		groups:      make(map[string][]ConvCommit),
	}
}

// AddCommit classifies a commit summary, resolves its display group and
// appends it to that group's bucket. Every commit with a summary lands in
// exactly one bucket; unmatched summaries land in the Unknown group.
func (s *Section) AddCommit(summary, body string) {
	commit := Classify(summary, body)
	group := ResolveGroup(commit, s.groupTable)
	s.groups[group] = append(s.groups[group], commit)
}

// Version returns the section's version string, or empty when the section
// is Unreleased or its tag carries no version.
func (s *Section) Version() string {
	if s.Tag == nil || s.Tag.Version == nil {
		return ""
	}
	return s.Tag.Version.String()
}

// CommitCount returns the number of commits bucketed in the section.
func (s *Section) CommitCount() int {
	n := 0
	for _, commits := range s.groups {
		n += len(commits)
	}
	return n
}

// Groups returns the bucketed commits for a group name, in walk order.
func (s *Section) Groups(name string) []ConvCommit {
	return s.groups[name]
}

// groupNames returns the populated group names in alphabetical order.
func (s *Section) groupNames() []string {
	names := make([]string, 0, len(s.groups))
	for name := range s.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// headerLine renders the section's second-level heading. Released
// sections carry their date in YYYY-MM-DD form; an unresolvable date
// renders empty after the dash.
func (s *Section) headerLine() string {
	if s.Tag == nil {
		return "## [Unreleased]"
	}

	version := "Unreleased"
	if s.Tag.Version != nil {
		version = s.Tag.Version.String()
	}

	date := ""
	if !s.Tag.Date.IsZero() {
		date = s.Tag.Date.Format("2006-01-02")
	}

	return fmt.Sprintf("## [%s] - %s", version, date)
}

// summaryLine renders the comma-joined Group[count] overview of the
// section. The Unknown group is excluded.
func (s *Section) summaryLine() string {
	parts := make([]string, 0, len(s.groups))
	for _, name := range s.groupNames() {
		if name == GroupUnknown {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s[%d]", name, len(s.groups[name])))
	}
	return "Summary: " + strings.Join(parts, ", ")
}

// Markdown renders the section: heading, optional summary line, then one
// bullet list per configured heading that has commits. A section with no
// visible content renders as the empty string.
func (s *Section) Markdown() string {
	var b strings.Builder
	wroteHeader := false

	writeHeader := func() {
		b.WriteString(s.headerLine() + "\n\n")
		wroteHeader = true
	}

	if s.showSummary {
		writeHeader()
		b.WriteString(s.summaryLine() + "\n\n")
	}

	for _, heading := range s.headings {
		commits := s.groups[heading.Name]
		if len(commits) == 0 {
			continue
		}
		if !wroteHeader {
			writeHeader()
		}
		b.WriteString("### " + heading.Name + "\n\n")
		for _, c := range commits {
			b.WriteString("- " + c.String() + "\n")
		}
		b.WriteString("\n")
	}

	out := b.String()
	if out == "" {
		log.Warn("section has no visible content", "section", s.anchorName())
	}
	return out
}

// statusReport describes the section's buckets for debug logging.
func (s *Section) statusReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "section %s contains:", s.anchorName())
	for _, name := range s.groupNames() {
		fmt.Fprintf(&b, "\n  %d commits under %s heading", len(s.groups[name]), name)
	}
	return b.String()
}

func (s *Section) anchorName() string {
	if v := s.Version(); v != "" {
		return v
	}
	return "Unreleased"
}
