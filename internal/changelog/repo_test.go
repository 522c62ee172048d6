package changelog

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// testGroupTable mirrors the default kind→group mapping the config layer
// produces.
var testGroupTable = map[string]string{
	"feat":       "Added",
	"fix":        "Fixed",
	"refactor":   "Changed",
	"security":   "Security",
	"dependency": "Security",
	"build":      "Build",
	"doc":        "Documentation",
	"docs":       "Documentation",
	"chore":      "Chore",
	"ci":         "Continuous Integration",
	"test":       "Testing",
	"deprecated": "Deprecated",
	"removed":    "Removed",
	"misc":       "Miscellaneous",
}

// testHeadings publishes the default headings plus Chore, which several
// scenarios assert on.
var testHeadings = Headings{
	{Priority: 10, Name: "Added"},
	{Priority: 20, Name: "Fixed"},
	{Priority: 30, Name: "Changed"},
	{Priority: 40, Name: "Security"},
	{Priority: 50, Name: "Chore"},
}

// newTestRepo creates an in-memory repository with an origin remote
// pointing at github.com/user/repo.
func newTestRepo(t *testing.T) (*git.Repository, *git.Worktree) {
	t.Helper()

	repo, err := git.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{"https://github.com/user/repo.git"},
	})
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return repo, wt
}

// commitFile writes a file and commits it with the given message at the
// given time. Callers space commit times out so walk order is well
// defined.
func commitFile(t *testing.T, wt *git.Worktree, name, message string, when time.Time) plumbing.Hash {
	t.Helper()

	err := util.WriteFile(wt.Filesystem, name, []byte(message+"\n"), 0o644)
	require.NoError(t, err)

	_, err = wt.Add(name)
	require.NoError(t, err)

	sig := &object.Signature{Name: "Tester", Email: "tester@example.com", When: when}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)

	return hash
}

// lightweightTag creates a lightweight tag pointing at the commit.
func lightweightTag(t *testing.T, repo *git.Repository, name string, hash plumbing.Hash) {
	t.Helper()

	_, err := repo.CreateTag(name, hash, nil)
	require.NoError(t, err)
}

// annotatedTag creates an annotated tag object pointing at the commit.
func annotatedTag(t *testing.T, repo *git.Repository, name string, hash plumbing.Hash, when time.Time) {
	t.Helper()

	_, err := repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Tester", Email: "tester@example.com", When: when},
		Message: "release " + name,
	})
	require.NoError(t, err)
}

// baseTime is the timestamp of the first commit in test repositories.
var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testBuildOptions() Options {
	return Options{
		Header:      NewHeader(),
		Headings:    testHeadings,
		GroupTable:  testGroupTable,
		Pattern:     PrefixPattern("v"),
		Display:     DisplayAll,
		ShowSummary: true,
	}
}
