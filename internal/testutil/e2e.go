// Package testutil provides test utilities and helpers for gen-changelog
// tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	// binaryPath caches the built gen-changelog binary path.
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// E2EEnv provides an isolated environment for end-to-end testing: a temp
// working directory, a scratch git repository and a sanitized process
// environment so ambient GEN_CHANGELOG_* variables cannot leak in.
type E2EEnv struct {
	t       *testing.T
	tempDir string
	repoDir string
}

// CommandResult captures the result of running a gen-changelog command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv creates a new end-to-end test environment. The gen-changelog
// binary is built once per test session.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	buildOnce.Do(func() {
		binaryPath, buildErr = buildBinary()
	})
	if buildErr != nil {
		t.Fatalf("building gen-changelog: %v", buildErr)
	}

	tempDir := t.TempDir()
	env := &E2EEnv{
		t:       t,
		tempDir: tempDir,
		repoDir: filepath.Join(tempDir, "repo"),
	}
	if err := os.MkdirAll(env.repoDir, 0o755); err != nil {
		t.Fatalf("creating repo directory: %v", err)
	}

	return env
}

// RepoDir returns the scratch repository directory.
func (e *E2EEnv) RepoDir() string {
	return e.repoDir
}

// InitGitRepo initializes the scratch git repository with a main branch,
// a test identity and a GitHub-style origin remote.
func (e *E2EEnv) InitGitRepo() {
	e.t.Helper()

	e.git("init", "--initial-branch=main")
	e.git("config", "user.name", "Test User")
	e.git("config", "user.email", "test@example.com")
	e.git("remote", "add", "origin", "https://github.com/user/repo.git")
}

// CommitFile writes a file and commits it with the given message.
func (e *E2EEnv) CommitFile(name, content, message string) {
	e.t.Helper()

	path := filepath.Join(e.repoDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", name, err)
	}
	e.git("add", name)
	e.git("commit", "-m", message)
}

// Tag creates a lightweight tag at HEAD.
func (e *E2EEnv) Tag(name string) {
	e.t.Helper()
	e.git("tag", name)
}

// WriteFile writes a file into the repository directory without
// committing it.
func (e *E2EEnv) WriteFile(name, content string) {
	e.t.Helper()

	path := filepath.Join(e.repoDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", name, err)
	}
}

// ReadFile reads a file from the repository directory.
func (e *E2EEnv) ReadFile(name string) string {
	e.t.Helper()

	raw, err := os.ReadFile(filepath.Join(e.repoDir, name))
	if err != nil {
		e.t.Fatalf("reading %s: %v", name, err)
	}
	return string(raw)
}

// FileExists reports whether a file exists in the repository directory.
func (e *E2EEnv) FileExists(name string) bool {
	_, err := os.Stat(filepath.Join(e.repoDir, name))
	return err == nil
}

// Run executes gen-changelog with the given arguments inside the
// repository directory and captures its output and exit code.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()
	return e.RunWithEnv(nil, args...)
}

// RunWithEnv runs gen-changelog with extra environment variables layered
// over the sanitized environment.
func (e *E2EEnv) RunWithEnv(extraEnv []string, args ...string) CommandResult {
	e.t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = e.repoDir
	cmd.Env = append(e.sanitizedEnv(), extraEnv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("running gen-changelog %v: %v", args, err)
		}
	}

	return CommandResult{
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}
}

// sanitizedEnv strips GEN_CHANGELOG_* variables and pins HOME and color
// handling so test output is stable across machines.
func (e *E2EEnv) sanitizedEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "GEN_CHANGELOG_") ||
			strings.HasPrefix(kv, "HOME=") ||
			strings.HasPrefix(kv, "NO_COLOR=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env,
		"HOME="+e.tempDir,
		"NO_COLOR=1",
	)
}

func (e *E2EEnv) git(args ...string) {
	e.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = e.repoDir
	// Committer dates must be deterministic for date assertions.
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_DATE=2025-06-01T12:00:00Z",
		"GIT_COMMITTER_DATE=2025-06-01T12:00:00Z",
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		e.t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// buildBinary compiles gen-changelog into a temp directory shared by the
// test session.
func buildBinary() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	dir, err := os.MkdirTemp("", "gen-changelog-e2e-*")
	if err != nil {
		return "", err
	}

	bin := filepath.Join(dir, "gen-changelog")
	cmd := exec.Command("go", "build", "-o", bin, "./cmd/gen-changelog")
	cmd.Dir = repoRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build: %v\n%s", err, out)
	}

	return bin, nil
}
