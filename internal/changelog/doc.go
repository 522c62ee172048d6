// Package changelog builds a Keep a Changelog document from a Git
// repository's commit history.
//
// This package implements:
//   - Conventional commit classification of commit summaries
//   - Release tag resolution with SemVer precedence ordering
//   - Version-bounded history walking that buckets commits by display group
//   - Markdown rendering with a reference-link footer
//   - Terminal preview output
//
// The walk is single-pass and read-only: tags are resolved once, each
// commit-range window is traversed newest-first, and the resulting
// ChangeLog renders deterministically.
package changelog
