// Package workspace discovers the packages of a Cargo workspace so
// per-package changelogs can match package-prefixed release tags.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Package holds the data needed from one workspace member's manifest.
type Package struct {
	// Root is the package directory relative to the workspace root.
	Root string
	// Dependencies lists the names of all regular, dev and build
	// dependencies declared by the package.
	Dependencies []string
}

// manifest models the subset of Cargo.toml this package reads.
type manifest struct {
	Workspace *struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
	Package *struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// Discover reads the workspace manifest at root and collects every member
// package by name. The root Cargo.toml must declare a workspace; a
// missing or unparsable manifest is fatal.
func Discover(root string) (map[string]Package, error) {
	ws, err := readManifest(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		return nil, err
	}

	packages := make(map[string]Package)
	if ws.Workspace == nil {
		log.Debug("manifest declares no workspace", "root", root)
		return packages, nil
	}

	for _, member := range ws.Workspace.Members {
		pkgRoot := filepath.Join(root, member)
		pkg, err := readManifest(filepath.Join(pkgRoot, "Cargo.toml"))
		if err != nil {
			return nil, err
		}
		if pkg.Package == nil {
			continue
		}

		packages[pkg.Package.Name] = Package{
			Root:         member,
			Dependencies: dependencyNames(pkg),
		}
		log.Debug("discovered workspace package", "name", pkg.Package.Name, "root", member)
	}

	return packages, nil
}

// Names returns the package names in alphabetical order.
func Names(packages map[string]Package) []string {
	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func readManifest(path string) (*manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m manifest
	if err := gotoml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

func dependencyNames(m *manifest) []string {
	var names []string
	for _, deps := range []map[string]any{m.Dependencies, m.DevDependencies, m.BuildDependencies} {
		for name := range deps {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
