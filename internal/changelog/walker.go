package changelog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DisplaySections limits how many sections the walk emits. DisplayAll
// keeps every section, DisplayOne keeps only the first (Unreleased)
// section, and DisplayCustom(n) keeps the first section plus up to n-1
// release sections.
type DisplaySections int

const (
	DisplayAll DisplaySections = 0
	DisplayOne DisplaySections = 1
)

// DisplayCustom returns a policy that emits up to n sections in total.
func DisplayCustom(n int) DisplaySections {
	if n < 0 {
		return DisplayAll
	}
	return DisplaySections(n)
}

type windowKind int

const (
	windowNoReleases windowKind = iota
	windowHeadToRelease
	windowReleaseToRelease
	windowReleaseToStart
)

// window is one commit range to walk: a start boundary (HEAD or a release
// tag) down to, but excluding, an end boundary (an older release tag or
// the start of history). Each window populates exactly one section.
type window struct {
	kind  windowKind
	tag   *Tag // section's own tag; nil for the Unreleased section
	older *Tag // excluded older boundary, when one exists
}

// planWindows derives the window sequence from the release tags (newest
// first). With no releases there is a single HEAD-to-start window;
// otherwise HEAD-to-newest, one window per adjacent tag pair, and
// oldest-to-start. The display policy truncates the sequence after the
// first window.
func planWindows(releases []Tag, display DisplaySections) []window {
	if len(releases) == 0 {
		return []window{{kind: windowNoReleases}}
	}

	windows := make([]window, 0, len(releases)+1)
	windows = append(windows, window{kind: windowHeadToRelease, older: &releases[0]})

	for i := range releases {
		if i+1 < len(releases) {
			windows = append(windows, window{
				kind:  windowReleaseToRelease,
				tag:   &releases[i],
				older: &releases[i+1],
			})
		} else {
			windows = append(windows, window{kind: windowReleaseToStart, tag: &releases[i]})
		}
	}

	if display > 0 && len(windows) > int(display) {
		windows = windows[:display]
	}

	return windows
}

// walkWindow traverses the window's commit range newest-first and feeds
// every commit with a summary into the section. The end boundary commit
// and its full ancestry are excluded from the iteration, so commits
// reachable from the older tag through merged branches never reappear in
// a newer section.
func walkWindow(repo *git.Repository, w window, section *Section) error {
	start, err := windowStart(repo, w)
	if err != nil {
		return err
	}

	startCommit, err := repo.CommitObject(start)
	if err != nil {
		return fmt.Errorf("resolving window start %s: %w", start, err)
	}

	seen, err := boundaryAncestry(repo, w.older)
	if err != nil {
		return err
	}

	iter := object.NewCommitPreorderIter(startCommit, seen, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		summary, body := splitMessage(c.Message)
		if summary == "" {
			return nil
		}
		log.Debug("found commit", "summary", summary)
		section.AddCommit(summary, body)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking commits: %w", err)
	}

	log.Debug(section.statusReport())
	return nil
}

// boundaryAncestry collects the older boundary commit and everything
// reachable from it. Returns nil when the window has no older boundary.
func boundaryAncestry(repo *git.Repository, older *Tag) (map[plumbing.Hash]bool, error) {
	if older == nil {
		return nil, nil
	}

	boundary, err := repo.CommitObject(older.CommitHash)
	if err != nil {
		return nil, fmt.Errorf("resolving window boundary %s: %w", older.CommitHash, err)
	}

	seen := make(map[plumbing.Hash]bool)
	iter := object.NewCommitPreorderIter(boundary, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking boundary ancestry: %w", err)
	}

	return seen, nil
}

// windowStart resolves the commit hash the window's traversal begins at.
func windowStart(repo *git.Repository, w window) (plumbing.Hash, error) {
	if w.tag != nil {
		return w.tag.CommitHash, nil
	}

	head, err := repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving HEAD: %w", err)
	}
	return head.Hash(), nil
}

// splitMessage separates a full commit message into its one-line summary
// and the body that follows the first line.
func splitMessage(msg string) (summary, body string) {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	summary, rest, _ := strings.Cut(msg, "\n")
	return strings.TrimSpace(summary), strings.TrimSpace(rest)
}
