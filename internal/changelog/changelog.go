package changelog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
)

// Options is the immutable configuration a changelog is built from. It is
// assembled by the config layer and consumed here; the build itself never
// mutates it.
type Options struct {
	// Header rendered before the first section.
	Header Header
	// Headings in display priority order.
	Headings Headings
	// GroupTable maps lowercased conventional commit kinds to group names.
	GroupTable map[string]string
	// Pattern identifies release tags.
	Pattern ReleasePattern
	// Package scopes PackagePrefix tag matching to one workspace package.
	Package string
	// Display limits the number of sections emitted.
	Display DisplaySections
	// ShowSummary adds the Group[count] overview line to each section.
	ShowSummary bool
}

// ChangeLog is the root aggregate: the ordered sections (newest first)
// and the footer links built from a single repository walk. It is
// immutable after Build except for Promote.
type ChangeLog struct {
	owner    string
	repo     string
	header   Header
	sections []*Section
	links    []Link
}

// ErrNoUnreleased is returned by Promote when the changelog has no
// untagged first section to promote.
var ErrNoUnreleased = errors.New("changelog has no unreleased section")

// Build walks the repository once and assembles the changelog: resolve
// the remote owner/repo, resolve tags, then walk each window feeding the
// classifier and group resolver, accumulating a section and a footer link
// per window. VCS failures are fatal; a missing or unparseable remote
// only disables link generation.
func Build(repo *git.Repository, opts Options) (*ChangeLog, error) {
	owner, name := remoteDetails(repo)

	_, releases, err := ResolveTags(repo, opts.Pattern, opts.Package)
	if err != nil {
		return nil, fmt.Errorf("resolving tags: %w", err)
	}
	log.Debug("resolved release tags", "count", len(releases))

	cl := &ChangeLog{
		owner:  owner,
		repo:   name,
		header: opts.Header,
	}

	for _, w := range planWindows(releases, opts.Display) {
		section := NewSection(w.tag, opts.Headings, opts.GroupTable, opts.ShowSummary)
		if err := walkWindow(repo, w, section); err != nil {
			return nil, err
		}
		cl.sections = append(cl.sections, section)

		if owner != "" && name != "" {
			cl.links = append(cl.links, buildLink(w, owner, name))
		}
	}

	if owner == "" || name == "" {
		log.Warn("unable to build links as owner and repo are not known")
	}

	return cl, nil
}

// Sections returns the ordered sections, newest first.
func (c *ChangeLog) Sections() []*Section {
	return c.sections
}

// Links returns the footer links, one per section boundary.
func (c *ChangeLog) Links() []Link {
	return c.links
}

// Promote re-tags the first (Unreleased) section as a released version.
// This is the only mutation allowed after Build; the section's first
// footer link is rewritten to match.
func (c *ChangeLog) Promote(version *semver.Version, date time.Time) error {
	if len(c.sections) == 0 || c.sections[0].Tag != nil {
		return ErrNoUnreleased
	}

	c.sections[0].Tag = &Tag{
		Name:    "v" + version.String(),
		Version: version,
		Date:    date.UTC(),
	}

	if len(c.links) > 0 {
		c.links[0] = c.promotedLink(version)
	}

	return nil
}

// promotedLink rebuilds the first footer link after a promotion: a compare
// link against the previous release when one exists, otherwise the
// release-tag page.
func (c *ChangeLog) promotedLink(version *semver.Version) Link {
	base := fmt.Sprintf("https://github.com/%s/%s", c.owner, c.repo)

	if len(c.sections) > 1 {
		if prev := c.sections[1].Version(); prev != "" {
			return Link{
				Anchor: version.String(),
				URL:    fmt.Sprintf("%s/compare/v%s...v%s", base, prev, version),
			}
		}
	}

	return Link{
		Anchor: version.String(),
		URL:    fmt.Sprintf("%s/releases/tag/v%s", base, version),
	}
}

// Markdown renders the whole document: header, sections newest first,
// then the reference-link footer. Rendering consults no external state,
// so identical changelog state always yields byte-identical output.
func (c *ChangeLog) Markdown() string {
	var b strings.Builder

	b.WriteString(c.header.Markdown())

	for _, s := range c.sections {
		md := s.Markdown()
		if md == "" {
			continue
		}
		b.WriteString("\n" + md)
	}

	if len(c.links) > 0 {
		b.WriteString("\n")
		for _, l := range c.links {
			b.WriteString(l.String() + "\n")
		}
	}

	return b.String()
}
