package changelog

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Tag name grammars. A release tag is a prefix (or package-prefix) followed
// by a SemVer 2.0 version. The prefix capture must equal the configured
// prefix for the version to be accepted.
var (
	prefixRe = regexp.MustCompile(
		`^(?P<prefix>\w+)(?P<semver>\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?)$`,
	)
	packagePrefixRe = regexp.MustCompile(
		`^(?P<package>(?:[-_]?\w+)+)-(?P<prefix>\w+)(?P<semver>\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?)$`,
	)
)

// ReleasePattern identifies which tag names mark releases.
type ReleasePattern struct {
	prefix     string
	perPackage bool
}

// PrefixPattern matches tags like "v1.0.0" for prefix "v".
func PrefixPattern(prefix string) ReleasePattern {
	return ReleasePattern{prefix: prefix}
}

// PackagePrefixPattern matches tags like "mypkg-v1.0.0" for prefix "v".
// A tag only matches when its package capture equals the package name the
// resolver was scoped to.
func PackagePrefixPattern(prefix string) ReleasePattern {
	return ReleasePattern{prefix: prefix, perPackage: true}
}

// PerPackage reports whether the pattern requires a package scope.
func (p ReleasePattern) PerPackage() bool { return p.perPackage }

// Tag is a repository tag discovered during resolution. Version is non-nil
// only for release tags; Date is zero when the tagged commit could not be
// resolved.
type Tag struct {
	// Hash is the reference target; CommitHash is the peeled commit the
	// tag ultimately points at (they differ for annotated tags).
	Hash       plumbing.Hash
	CommitHash plumbing.Hash
	Name       string
	Package    string
	Version    *semver.Version
	Date       time.Time
}

// IsRelease reports whether the tag name parsed to a semantic version.
func (t Tag) IsRelease() bool { return t.Version != nil }

func (t Tag) String() string { return t.Name }

// ResolveTags enumerates every tag in the repository, identifies release
// tags using the pattern, and resolves each release tag's commit date.
// It returns all tags in enumeration order and the release tags sorted
// descending by SemVer precedence. Failing to enumerate tags is fatal;
// failing to resolve an individual tag's commit is logged and tolerated.
func ResolveTags(repo *git.Repository, pattern ReleasePattern, pkg string) (all, releases []Tag, err error) {
	iter, err := repo.Tags()
	if err != nil {
		return nil, nil, fmt.Errorf("listing tags: %w", err)
	}

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tag := Tag{
			Hash:       ref.Hash(),
			CommitHash: ref.Hash(),
			Name:       ref.Name().Short(),
			Package:    pkg,
		}

		tag.Version = pattern.match(tag.Name, pkg)
		if tag.Version != nil {
			resolveTagCommit(repo, &tag)
			log.Debug("identified release tag", "tag", tag.Name, "version", tag.Version)
		} else {
			log.Debug("tag is not a release", "tag", tag.Name)
		}

		all = append(all, tag)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("iterating tags: %w", err)
	}

	for _, t := range all {
		if t.IsRelease() {
			releases = append(releases, t)
		}
	}

	sort.SliceStable(releases, func(i, j int) bool {
		return releases[i].Version.GreaterThan(releases[j].Version)
	})

	return all, releases, nil
}

// match extracts a semantic version from a tag name under the pattern, or
// nil when the name does not identify a release.
func (p ReleasePattern) match(name, pkg string) *semver.Version {
	var prefix, version string

	if p.perPackage {
		// No package scope means no tag can match.
		if pkg == "" {
			return nil
		}
		m := packagePrefixRe.FindStringSubmatch(name)
		if m == nil {
			return nil
		}
		if m[packagePrefixRe.SubexpIndex("package")] != pkg {
			return nil
		}
		prefix = m[packagePrefixRe.SubexpIndex("prefix")]
		version = m[packagePrefixRe.SubexpIndex("semver")]
	} else {
		m := prefixRe.FindStringSubmatch(name)
		if m == nil {
			return nil
		}
		prefix = m[prefixRe.SubexpIndex("prefix")]
		version = m[prefixRe.SubexpIndex("semver")]
	}

	if prefix != p.prefix {
		return nil
	}

	v, err := semver.StrictNewVersion(version)
	if err != nil {
		log.Warn("tag version string failed to parse", "tag", name, "version", version, "error", err)
		return nil
	}
	return v
}

// resolveTagCommit peels the tag to its commit, handling annotated tag
// indirection, and records the commit hash and timestamp. Failures leave
// the date absent and are not fatal.
func resolveTagCommit(repo *git.Repository, tag *Tag) {
	hash := tag.Hash

	if obj, err := repo.TagObject(hash); err == nil {
		// Annotated tag: follow it to the commit.
		commit, err := obj.Commit()
		if err != nil {
			log.Warn("could not peel annotated tag to commit", "tag", tag.Name, "error", err)
			return
		}
		tag.CommitHash = commit.Hash
		tag.Date = commit.Committer.When.UTC()
		return
	}

	commit, err := repo.CommitObject(hash)
	if err != nil {
		log.Warn("could not resolve tag commit", "tag", tag.Name, "error", err)
		return
	}
	tag.CommitHash = commit.Hash
	tag.Date = commit.Committer.When.UTC()
}
