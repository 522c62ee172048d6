package config

// defaultGroups enumerates the built-in groups, the conventional commit
// types that feed each, and whether the group publishes by default.
var defaultGroups = []struct {
	name    string
	ccTypes []string
	publish bool
}{
	{"Added", []string{"feat"}, true},
	{"Fixed", []string{"fix"}, true},
	{"Changed", []string{"refactor"}, true},
	{"Security", []string{"security", "dependency"}, false},
	{"Build", []string{"build"}, false},
	{"Documentation", []string{"doc", "docs"}, false},
	{"Chore", []string{"chore"}, false},
	{"Continuous Integration", []string{"ci"}, false},
	{"Testing", []string{"test"}, false},
	{"Deprecated", []string{"deprecated"}, false},
	{"Removed", []string{"removed"}, false},
	{"Miscellaneous", []string{"misc"}, false},
}

// defaultHeadings orders the published groups; Security is published in
// the headings because chore(deps) commits are promoted into it.
var defaultHeadings = map[string]string{
	"10": "Added",
	"20": "Fixed",
	"30": "Changed",
	"40": "Security",
}

// Default returns the built-in configuration: the twelve standard groups
// with the Added/Fixed/Changed/Security headings published, all sections
// displayed, and "v"-prefixed release tags.
func Default() *Config {
	groups := make(map[string]Group, len(defaultGroups))
	for _, g := range defaultGroups {
		groups[g.name] = Group{
			Name:    g.name,
			Publish: g.publish,
			CCTypes: append([]string(nil), g.ccTypes...),
		}
	}

	headings := make(map[string]string, len(defaultHeadings))
	for priority, name := range defaultHeadings {
		headings[priority] = name
	}

	return &Config{
		DisplaySections: "all",
		ReleasePrefix:   "v",
		ShowSummary:     true,
		Output:          "CHANGELOG.md",
		Groups:          groups,
		Headings:        headings,
	}
}
