package errors

import "fmt"

// Common error messages for the gen-changelog CLI. These templates keep
// failure output consistent and actionable.

// RepositoryNotFound creates an error when no git repository is found at
// or above the working directory.
func RepositoryNotFound(path string) *CLIError {
	return NewRepositoryError(
		fmt.Sprintf("no git repository found at %s", path),
		"Run gen-changelog from inside a git repository",
		"Or point it at one with: gen-changelog --repository-dir <path>",
	)
}

// ConfigFileNotFound creates an error for a missing config file.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Run 'gen-changelog config --save' to create a default configuration",
		"Or check the path passed to --config-file",
	)
}

// ConfigInvalid creates an error for a config file that fails to load or
// validate.
func ConfigInvalid(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check the file for TOML syntax errors",
		"Compare against the defaults: gen-changelog config",
	)
}

// InvalidNextVersion creates an error for an unparseable --next-version
// value.
func InvalidNextVersion(value string, err error) *CLIError {
	return &CLIError{
		Category:    Argument,
		Message:     fmt.Sprintf("invalid next version %q: %v", value, err),
		Usage:       "gen-changelog --next-version <major.minor.patch>",
		Remediation: []string{"Pass a semantic version without the tag prefix, e.g. 1.2.0"},
		cause:       err,
	}
}

// UnknownPackage creates an error when --package names no workspace
// member.
func UnknownPackage(name string, known []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("package %q is not a workspace member", name),
		fmt.Sprintf("Known packages: %v", known),
		"Check the workspace members in the root Cargo.toml",
	)
}

// NotAWorkspace creates an error when --package is used outside a
// workspace.
func NotAWorkspace(root string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("no workspace manifest found at %s", root),
		"The --package flag requires a Cargo workspace",
		"Drop --package to generate a repository-wide changelog",
	)
}

// OutputNotWritable creates an error when the changelog file cannot be
// written.
func OutputNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write changelog to %s", path),
		"Check permissions on the target directory",
		"Or print to stdout instead with: gen-changelog --show --no-save",
	)
}

// GenerationFailed creates an error for a failure while walking the
// repository.
func GenerationFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"changelog generation failed",
		"Re-run with --verbose for the full walk log",
	)
}
