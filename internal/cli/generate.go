package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"github.com/jerus-org/gen-changelog/internal/changelog"
	"github.com/jerus-org/gen-changelog/internal/config"
	clierrors "github.com/jerus-org/gen-changelog/internal/errors"
	"github.com/jerus-org/gen-changelog/internal/terminal"
	"github.com/jerus-org/gen-changelog/internal/workspace"
)

var (
	generateNextVersion  string
	generateReleases     int
	generateRepository   string
	generateSummaries    bool
	generateAddGroups    []string
	generateRemoveGroups []string
	generatePackage      string
	generateNoSave       bool
	generateShow         bool
	generateOutput       string
	generatePreview      bool
	generatePlain        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the changelog from the repository history",
	Long: `Generate the changelog by walking the repository's commit history.

Release tags partition the history into sections, newest first, with an
Unreleased section for commits since the last release. Each commit is
classified against the Conventional Commits grammar and bucketed under
the configured group headings.

Examples:
  gen-changelog generate                     # Write CHANGELOG.md
  gen-changelog generate --show --no-save    # Print without writing
  gen-changelog generate --releases 3        # Unreleased + two releases
  gen-changelog generate --next-version 1.2.0
  gen-changelog generate --package mypkg     # Per-package tags (mypkg-v1.2.0)
  gen-changelog generate --preview           # Colorized terminal preview`,
	Args: cobra.NoArgs,
}

func init() {
	generateCmd.RunE = runGenerate
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateNextVersion, "next-version", "n", "", "Promote the Unreleased section to this version")
	generateCmd.Flags().IntVarP(&generateReleases, "releases", "r", 0, "Number of sections to show (0 = all)")
	generateCmd.Flags().StringVar(&generateRepository, "repository-dir", ".", "Path to the repository")
	generateCmd.Flags().BoolVarP(&generateSummaries, "display-summaries", "d", false, "Display a commit-count summary per section (overrides show-summary in config)")
	generateCmd.Flags().StringSliceVar(&generateAddGroups, "add-groups", nil, "Commit groups to publish in addition to the configured headings")
	generateCmd.Flags().StringSliceVar(&generateRemoveGroups, "remove-groups", nil, "Commit groups to remove from the configured headings")
	generateCmd.Flags().StringVarP(&generatePackage, "package", "p", "", "Generate the changelog for one workspace package")
	generateCmd.Flags().BoolVarP(&generateNoSave, "no-save", "S", false, "Do not write the changelog file")
	generateCmd.Flags().BoolVarP(&generateShow, "show", "s", false, "Print the changelog to standard output")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Changelog file to write (default from config)")
	generateCmd.Flags().BoolVar(&generatePreview, "preview", false, "Render a colorized preview to the terminal instead of Markdown")
	generateCmd.Flags().BoolVar(&generatePlain, "plain", false, "Disable colors and icons in the preview")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := generateConfig()
	if err != nil {
		return NewExitError(ExitConfigError, clierrors.ConfigInvalid(err))
	}

	repo, err := git.PlainOpenWithOptions(generateRepository, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return NewExitError(ExitFailure, clierrors.RepositoryNotFound(generateRepository))
	}

	pkg, err := resolvePackage(cfg)
	if err != nil {
		return NewExitError(ExitInvalidArguments, err)
	}

	opts, err := cfg.Options(pkg)
	if err != nil {
		return NewExitError(ExitConfigError, err)
	}

	cl, err := changelog.Build(repo, opts)
	if err != nil {
		return NewExitError(ExitFailure, clierrors.GenerationFailed(err))
	}

	if generateNextVersion != "" {
		if err := promote(cl, generateNextVersion); err != nil {
			return err
		}
	}

	if generatePreview {
		plain := generatePlain || !terminal.Detect().SupportsColor
		return cl.Preview(cmd.OutOrStdout(), changelog.PreviewOptions{Plain: plain})
	}

	markdown := cl.Markdown()

	if !generateNoSave {
		output := generateOutput
		if output == "" {
			output = cfg.Output
		}
		if err := os.WriteFile(output, []byte(markdown), 0o644); err != nil {
			return NewExitError(ExitFailure, clierrors.OutputNotWritable(output, err))
		}
	}

	if generateShow {
		fmt.Fprint(cmd.OutOrStdout(), markdown)
	}

	return nil
}

// generateConfig loads the configuration and applies the command's
// adjustments: the Security group always publishes so promoted
// chore(deps) commits surface, and the flag-driven group and section
// overrides are layered on top.
func generateConfig() (*config.Config, error) {
	cfg, err := config.Load(configFileFlag)
	if err != nil {
		return nil, err
	}

	cfg.PublishGroup(changelog.GroupSecurity)

	if generateReleases > 0 {
		cfg.DisplaySections = fmt.Sprintf("%d", generateReleases)
	}
	if generateCmd.Flags().Changed("display-summaries") {
		cfg.ShowSummary = generateSummaries
	}
	cfg.AddCommitGroups(generateAddGroups)
	cfg.RemoveCommitGroups(generateRemoveGroups)

	return cfg, nil
}

// resolvePackage validates the --package flag against the workspace
// manifest and switches the config to package-scoped release tags.
func resolvePackage(cfg *config.Config) (string, error) {
	if generatePackage == "" {
		return "", nil
	}

	if _, err := os.Stat(filepath.Join(generateRepository, "Cargo.toml")); err != nil {
		return "", clierrors.NotAWorkspace(generateRepository)
	}

	packages, err := workspace.Discover(generateRepository)
	if err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.Argument,
			"workspace discovery failed",
			"Check the workspace members in the root Cargo.toml")
	}
	if _, ok := packages[generatePackage]; !ok {
		return "", clierrors.UnknownPackage(generatePackage, workspace.Names(packages))
	}

	cfg.PackageReleases = true
	return generatePackage, nil
}

func promote(cl *changelog.ChangeLog, next string) error {
	v, err := semver.NewVersion(next)
	if err != nil {
		return NewExitError(ExitInvalidArguments, clierrors.InvalidNextVersion(next, err))
	}

	err = cl.Promote(v, time.Now())
	if errors.Is(err, changelog.ErrNoUnreleased) {
		return fmt.Errorf("cannot promote to %s: %w", next, err)
	}
	return err
}
