// Package cli implements the gen-changelog command line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	clierrors "github.com/jerus-org/gen-changelog/internal/errors"
	"github.com/jerus-org/gen-changelog/internal/version"
)

var (
	verboseFlag    bool
	quietFlag      bool
	configFileFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gen-changelog",
	Short: "Generate a changelog from conventional commit history",
	Long: `gen-changelog walks a Git repository's commit history, classifies
commits using the Conventional Commits convention, groups them by release
tag and writes a Keep a Changelog style CHANGELOG.md.

Commits that do not follow the convention are kept and listed verbatim.
Release tags are identified by a configurable prefix (default "v"), or a
package-scoped prefix for workspaces with per-package tags.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		switch {
		case quietFlag:
			log.SetLevel(log.ErrorLevel)
		case verboseFlag:
			log.SetLevel(log.DebugLevel)
		default:
			log.SetLevel(log.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().StringVarP(&configFileFlag, "config-file", "c", "", "Path to the configuration file (default gen-changelog.toml when present)")
}

// Execute runs the root command. Structured errors print with their
// category and remediation steps; anything else gets a plain Error line.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	inner := err
	if errors.As(err, &exitErr) {
		inner = exitErr.Err
	}

	if cliErr := clierrors.AsCLIError(inner); cliErr != nil {
		clierrors.FprintError(rootCmd.ErrOrStderr(), cliErr)
	} else {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
