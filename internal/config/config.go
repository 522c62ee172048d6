// Package config provides configuration management for gen-changelog using
// koanf. Configuration is loaded with priority: environment variables
// (GEN_CHANGELOG_*) > config file (gen-changelog.toml) > defaults. The file
// format is TOML, matching the generated template written by `config init`.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jerus-org/gen-changelog/internal/changelog"
)

// DefaultConfigFile is the config file looked for in the working directory.
const DefaultConfigFile = "gen-changelog.toml"

const envPrefix = "GEN_CHANGELOG_"

// Group organizes one or more conventional commit types under a display
// heading and controls whether that heading is published.
type Group struct {
	Name    string   `koanf:"name" toml:"name"`
	Publish bool     `koanf:"publish" toml:"publish"`
	CCTypes []string `koanf:"cc-types" toml:"cc-types"`
}

// Config is the gen-changelog configuration surface.
type Config struct {
	// DisplaySections is "all", "one", or a positive section count.
	DisplaySections string `koanf:"display-sections" toml:"display-sections"`

	// ReleasePrefix is the tag prefix identifying release tags ("v"
	// matches v1.0.0).
	ReleasePrefix string `koanf:"release-prefix" toml:"release-prefix"`

	// PackageReleases switches tag matching to the package-scoped form
	// (<package>-<prefix><version>); the package is chosen per run.
	PackageReleases bool `koanf:"package-releases" toml:"package-releases"`

	// ShowSummary adds the Group[count] overview line to each section.
	ShowSummary bool `koanf:"show-summary" toml:"show-summary"`

	// Output is the file the generated changelog is written to.
	Output string `koanf:"output" toml:"output"`

	// Groups maps group names to their definitions.
	Groups map[string]Group `koanf:"groups" toml:"groups"`

	// Headings orders the published groups; keys are numeric priorities
	// as strings (TOML table keys), lower values render first.
	Headings map[string]string `koanf:"headings" toml:"headings"`
}

// Load reads configuration from the given path layered over the defaults,
// then applies GEN_CHANGELOG_* environment variables. An empty path loads
// DefaultConfigFile when it exists and plain defaults otherwise; a
// non-empty path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	required := path != ""
	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if required {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envKey maps GEN_CHANGELOG_DISPLAY_SECTIONS to display-sections and so
// on for the other top-level keys.
func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}

// Validate checks the configuration for internal consistency: the display
// policy must parse, heading priorities must be numeric, and every heading
// must name a known group.
func (c *Config) Validate() error {
	if _, err := c.DisplayPolicy(); err != nil {
		return err
	}

	if c.ReleasePrefix == "" {
		return fmt.Errorf("release-prefix must not be empty")
	}

	for priority, name := range c.Headings {
		n, err := strconv.Atoi(priority)
		if err != nil || n < 0 || n > 255 {
			return fmt.Errorf("heading priority %q: must be a number between 0 and 255", priority)
		}
		if _, ok := c.Groups[name]; !ok {
			return fmt.Errorf("heading %q does not name a configured group", name)
		}
	}

	return nil
}

// DisplayPolicy parses the display-sections setting.
func (c *Config) DisplayPolicy() (changelog.DisplaySections, error) {
	switch strings.ToLower(strings.TrimSpace(c.DisplaySections)) {
	case "", "all":
		return changelog.DisplayAll, nil
	case "one":
		return changelog.DisplayOne, nil
	default:
		n, err := strconv.Atoi(c.DisplaySections)
		if err != nil || n < 1 {
			return changelog.DisplayAll,
				fmt.Errorf("display-sections %q: expected \"all\", \"one\" or a positive number", c.DisplaySections)
		}
		return changelog.DisplayCustom(n), nil
	}
}

// ReleasePattern returns the tag-matching pattern for the configuration.
func (c *Config) ReleasePattern() changelog.ReleasePattern {
	if c.PackageReleases {
		return changelog.PackagePrefixPattern(c.ReleasePrefix)
	}
	return changelog.PrefixPattern(c.ReleasePrefix)
}

// GroupsMapping flattens the group definitions into a lowercased
// cc-type → group-name table for the group resolver.
func (c *Config) GroupsMapping() map[string]string {
	mapping := make(map[string]string)
	for _, g := range c.Groups {
		for _, t := range g.CCTypes {
			mapping[strings.ToLower(t)] = g.Name
		}
	}
	return mapping
}

// HeadingList returns the configured headings in priority order.
func (c *Config) HeadingList() changelog.Headings {
	headings := make(changelog.Headings, 0, len(c.Headings))
	for priority, name := range c.Headings {
		n, err := strconv.Atoi(priority)
		if err != nil || n < 0 || n > 255 {
			continue
		}
		headings = append(headings, changelog.Heading{Priority: uint8(n), Name: name})
	}
	return headings.Sorted()
}

// Options assembles the immutable build options for the changelog walk.
// pkg scopes package-prefixed tag matching and may be empty.
func (c *Config) Options(pkg string) (changelog.Options, error) {
	display, err := c.DisplayPolicy()
	if err != nil {
		return changelog.Options{}, err
	}

	return changelog.Options{
		Header:      changelog.NewHeader(),
		Headings:    c.HeadingList(),
		GroupTable:  c.GroupsMapping(),
		Pattern:     c.ReleasePattern(),
		Package:     pkg,
		Display:     display,
		ShowSummary: c.ShowSummary,
	}, nil
}

// PublishGroup marks a group for publication and adds it to the headings
// at the next free priority slot.
func (c *Config) PublishGroup(name string) {
	g, ok := c.Groups[name]
	if !ok {
		return
	}
	g.Publish = true
	c.Groups[name] = g

	for _, existing := range c.Headings {
		if existing == name {
			return
		}
	}

	priority, ok := c.nextPriority()
	if !ok {
		log.Warn("no free heading priority left, group will not render", "group", name)
		return
	}
	c.Headings[strconv.Itoa(priority)] = name
}

// UnpublishGroup clears a group's publish flag and removes its heading.
func (c *Config) UnpublishGroup(name string) {
	if g, ok := c.Groups[name]; ok {
		g.Publish = false
		c.Groups[name] = g
	}

	for priority, existing := range c.Headings {
		if existing == name {
			delete(c.Headings, priority)
		}
	}
}

// AddCommitGroups publishes each named group (names are title-cased to
// match group naming).
func (c *Config) AddCommitGroups(names []string) {
	for _, n := range names {
		c.PublishGroup(titleCase(n))
	}
}

// RemoveCommitGroups unpublishes each named group.
func (c *Config) RemoveCommitGroups(names []string) {
	for _, n := range names {
		c.UnpublishGroup(titleCase(n))
	}
}

// nextPriority returns the next free heading priority: ten past the
// current maximum when that still fits in the 0-255 range, otherwise the
// lowest unused slot. ok is false when every slot is taken.
func (c *Config) nextPriority() (priority int, ok bool) {
	used := make(map[int]bool, len(c.Headings))
	max := 0
	for p := range c.Headings {
		if n, err := strconv.Atoi(p); err == nil {
			used[n] = true
			if n > max {
				max = n
			}
		}
	}

	if next := max + 10; next <= 255 {
		return next, true
	}
	for n := 0; n <= 255; n++ {
		if !used[n] {
			return n, true
		}
	}
	return 0, false
}

// SortedGroupNames returns the group names in alphabetical order.
func (c *Config) SortedGroupNames() []string {
	names := make([]string, 0, len(c.Groups))
	for name := range c.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
