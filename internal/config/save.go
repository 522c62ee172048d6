package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
)

const groupsComment = `# Group tables define the third-level headings used to organize commits in the changelog.
# Each group has the following properties:
#   - name: Display name for the group (should match the table name)
#   - publish: Controls whether this group appears in the published changelog
#   - cc-types: Array of conventional commit types that belong to this group
#
# To add a new group:
#   1. Copy an existing group table
#   2. Update the table name (e.g., [groups.MyGroup])
#   3. Set the name field to match the table name
#   4. Add the appropriate conventional commit types to cc-types
#
# Note: Each commit type should only belong to one group.
`

const headingsComment = `# Defines the display order of groups in the changelog.
# Groups are listed with their priority values (lower numbers appear first).
# Only groups that should be displayed need to be included here.
`

const displaySectionsComment = `# Controls the number of changelog sections to display.
# Either "all", "one" or the number of most recent sections to show.
`

// Write serializes the configuration as TOML with explanatory comments
// ahead of each major table.
func (c *Config) Write(w io.Writer) error {
	raw, err := gotoml.Marshal(c)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}

	out := string(raw)
	out = insertBefore(out, "[groups.", groupsComment)
	out = insertBefore(out, "[headings]", headingsComment)
	out = insertBefore(out, "display-sections", displaySectionsComment)

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Save writes the configuration to a file, or to stdout when the path is
// empty.
func (c *Config) Save(path string) error {
	if path == "" {
		return c.Write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file %s: %w", path, err)
	}
	defer f.Close()

	return c.Write(f)
}

// insertBefore places the comment block ahead of the first occurrence of
// the marker, leaving the document unchanged when the marker is absent.
func insertBefore(doc, marker, comment string) string {
	idx := strings.Index(doc, marker)
	if idx < 0 {
		return doc
	}
	return doc[:idx] + comment + doc[idx:]
}
