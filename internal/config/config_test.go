package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerus-org/gen-changelog/internal/changelog"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "all", cfg.DisplaySections)
	assert.Equal(t, "v", cfg.ReleasePrefix)
	assert.False(t, cfg.PackageReleases)
	assert.True(t, cfg.ShowSummary)
	assert.Equal(t, "CHANGELOG.md", cfg.Output)

	assert.Len(t, cfg.Groups, 12)
	assert.True(t, cfg.Groups["Added"].Publish)
	assert.True(t, cfg.Groups["Fixed"].Publish)
	assert.True(t, cfg.Groups["Changed"].Publish)
	assert.False(t, cfg.Groups["Chore"].Publish)
	assert.Equal(t, []string{"security", "dependency"}, cfg.Groups["Security"].CCTypes)

	headings := cfg.HeadingList()
	require.Len(t, headings, 4)
	assert.Equal(t, "Added", headings[0].Name)
	assert.Equal(t, "Fixed", headings[1].Name)
	assert.Equal(t, "Changed", headings[2].Name)
	assert.Equal(t, "Security", headings[3].Name)

	require.NoError(t, cfg.Validate())
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen-changelog.toml")
	content := `display-sections = "2"
release-prefix = "rel-"
show-summary = false
output = "HISTORY.md"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2", cfg.DisplaySections)
	assert.Equal(t, "rel-", cfg.ReleasePrefix)
	assert.False(t, cfg.ShowSummary)
	assert.Equal(t, "HISTORY.md", cfg.Output)

	// Unset keys keep their defaults.
	assert.Len(t, cfg.Groups, 12)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen-changelog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`output = "HISTORY.md"`+"\n"), 0o644))

	t.Setenv("GEN_CHANGELOG_OUTPUT", "NEWS.md")
	t.Setenv("GEN_CHANGELOG_DISPLAY_SECTIONS", "one")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "NEWS.md", cfg.Output)
	assert.Equal(t, "one", cfg.DisplaySections)
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen-changelog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`display-sections = "several"`+"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display-sections")
}

func TestDisplayPolicy(t *testing.T) {
	tests := map[string]struct {
		value   string
		want    changelog.DisplaySections
		wantErr bool
	}{
		"all":      {value: "all", want: changelog.DisplayAll},
		"empty":    {value: "", want: changelog.DisplayAll},
		"one":      {value: "one", want: changelog.DisplayOne},
		"ONE":      {value: "ONE", want: changelog.DisplayOne},
		"number":   {value: "3", want: changelog.DisplayCustom(3)},
		"zero":     {value: "0", wantErr: true},
		"negative": {value: "-1", wantErr: true},
		"garbage":  {value: "several", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.DisplaySections = tt.value

			got, err := cfg.DisplayPolicy()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*Config)
		wantErr string
	}{
		"empty release prefix": {
			mutate:  func(c *Config) { c.ReleasePrefix = "" },
			wantErr: "release-prefix",
		},
		"non-numeric heading priority": {
			mutate:  func(c *Config) { c.Headings["first"] = "Added" },
			wantErr: "heading priority",
		},
		"priority out of range": {
			mutate:  func(c *Config) { c.Headings["300"] = "Added" },
			wantErr: "heading priority",
		},
		"heading names unknown group": {
			mutate:  func(c *Config) { c.Headings["50"] = "Imaginary" },
			wantErr: "does not name a configured group",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGroupsMapping(t *testing.T) {
	mapping := Default().GroupsMapping()

	assert.Equal(t, "Added", mapping["feat"])
	assert.Equal(t, "Fixed", mapping["fix"])
	assert.Equal(t, "Security", mapping["dependency"])
	assert.Equal(t, "Documentation", mapping["docs"])
	assert.NotContains(t, mapping, "unknown")
}

func TestReleasePattern(t *testing.T) {
	cfg := Default()
	assert.Equal(t, changelog.PrefixPattern("v"), cfg.ReleasePattern())

	cfg.PackageReleases = true
	assert.Equal(t, changelog.PackagePrefixPattern("v"), cfg.ReleasePattern())
}

func TestPublishGroup(t *testing.T) {
	cfg := Default()

	cfg.PublishGroup("Chore")
	assert.True(t, cfg.Groups["Chore"].Publish)
	assert.Equal(t, "Chore", cfg.Headings["50"], "appended after the default headings")

	// Publishing again must not duplicate the heading.
	cfg.PublishGroup("Chore")
	count := 0
	for _, name := range cfg.Headings {
		if name == "Chore" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	// Unknown groups are ignored.
	before := len(cfg.Headings)
	cfg.PublishGroup("Imaginary")
	assert.Len(t, cfg.Headings, before)
}

// Heading priorities are bounded to 0-255; publishing near the top of the
// range falls back to the lowest free slot instead of overflowing.
func TestPublishGroupPriorityBounds(t *testing.T) {
	cfg := Default()
	cfg.Headings = map[string]string{"250": "Added"}

	cfg.PublishGroup("Chore")

	assert.NotContains(t, cfg.Headings, "260")
	assert.Equal(t, "Chore", cfg.Headings["0"])
	require.NoError(t, cfg.Validate())

	headings := cfg.HeadingList()
	require.Len(t, headings, 2)
	assert.Equal(t, "Chore", headings[0].Name)
	assert.Equal(t, "Added", headings[1].Name)
}

func TestHeadingListSkipsOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Headings["300"] = "Added"
	cfg.Headings["bogus"] = "Fixed"

	require.Len(t, cfg.HeadingList(), 4, "only the in-range defaults remain")
}

func TestUnpublishGroup(t *testing.T) {
	cfg := Default()

	cfg.UnpublishGroup("Added")
	assert.False(t, cfg.Groups["Added"].Publish)
	assert.NotContains(t, cfg.Headings, "10")
}

func TestAddRemoveCommitGroups(t *testing.T) {
	cfg := Default()

	cfg.AddCommitGroups([]string{"chore", "testing"})
	assert.True(t, cfg.Groups["Chore"].Publish)
	assert.True(t, cfg.Groups["Testing"].Publish)

	cfg.RemoveCommitGroups([]string{"CHORE"})
	assert.False(t, cfg.Groups["Chore"].Publish)
	assert.True(t, cfg.Groups["Testing"].Publish)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.DisplaySections = "one"

	opts, err := cfg.Options("mypkg")
	require.NoError(t, err)

	assert.Equal(t, changelog.DisplayOne, opts.Display)
	assert.Equal(t, "mypkg", opts.Package)
	assert.True(t, opts.ShowSummary)
	assert.Equal(t, "Added", opts.GroupTable["feat"])
	require.Len(t, opts.Headings, 4)
	assert.Equal(t, "Added", opts.Headings[0].Name)
}

func TestSortedGroupNames(t *testing.T) {
	names := Default().SortedGroupNames()
	require.Len(t, names, 12)
	assert.Equal(t, "Added", names[0])
	assert.True(t, sort.StringsAreSorted(names))
}

func TestWriteComments(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Default().Write(&b))
	out := b.String()

	assert.Contains(t, out, "# Controls the number of changelog sections to display.")
	assert.Contains(t, out, "# Group tables define the third-level headings")
	assert.Contains(t, out, "# Defines the display order of groups in the changelog.")
	assert.Contains(t, out, `display-sections = 'all'`)
	assert.Contains(t, out, "[groups.Added]")
	assert.Contains(t, out, "[headings]")
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen-changelog.toml")

	original := Default()
	original.PublishGroup("Chore")
	require.NoError(t, original.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, original.Groups, reloaded.Groups)
	assert.Equal(t, original.Headings, reloaded.Headings)
	assert.Equal(t, original.DisplaySections, reloaded.DisplaySections)
}
