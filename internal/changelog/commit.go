package changelog

import "regexp"

// conventionalRe matches a conventional commit summary line:
// an optional emoji prefix, a lowercase type, an optional scope in
// parentheses, an optional breaking-change marker, and the description.
// The whole line must match; the ": " separator is literal.
var conventionalRe = regexp.MustCompile(
	`^(?P<emoji>.+\s)?(?P<type>[a-z]+)(?:\((?P<scope>[^)]+)\))?(?P<breaking>!)?: (?P<description>.*)$`,
)

// ConvCommit is a commit summary classified against the Conventional
// Commits convention. When the summary does not match the grammar, Kind,
// Scope and Emoji are empty and Title holds the summary verbatim. The body
// is carried as-is; no footer analysis is done on it.
type ConvCommit struct {
	Title    string
	Emoji    string
	Kind     string
	Scope    string
	Breaking bool
	Body     string
}

// Classify parses a commit summary and body into a ConvCommit. It is a
// pure function and never fails: an empty summary yields a zero record,
// a non-conventional summary yields a title-only record.
func Classify(summary, body string) ConvCommit {
	var cc ConvCommit
	if summary != "" {
		cc = parseSummary(summary)
	}
	cc.Body = body
	return cc
}

func parseSummary(summary string) ConvCommit {
	m := conventionalRe.FindStringSubmatch(summary)
	if m == nil {
		return ConvCommit{Title: summary}
	}

	groups := make(map[string]string, len(m))
	for i, name := range conventionalRe.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}

	return ConvCommit{
		Title:    groups["description"],
		Emoji:    groups["emoji"],
		Kind:     groups["type"],
		Scope:    groups["scope"],
		Breaking: groups["breaking"] == "!",
	}
}

// IsConventional reports whether the summary matched the conventional
// commit grammar.
func (c ConvCommit) IsConventional() bool {
	return c.Kind != ""
}

// String reconstructs the conventional-style summary line. For commits
// that did not match the grammar this is the original summary unchanged.
func (c ConvCommit) String() string {
	if !c.IsConventional() {
		return c.Title
	}

	s := c.Emoji + c.Kind
	if c.Scope != "" {
		s += "(" + c.Scope + ")"
	}
	if c.Breaking {
		s += "!"
	}
	return s + ": " + c.Title
}
