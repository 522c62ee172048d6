package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jerus-org/gen-changelog/internal/config"
)

var configSave bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the gen-changelog configuration",
	Long: `Print or save the default gen-changelog configuration.

The generated file documents the group tables, the heading order and the
display-sections policy. Edit it to control which commit groups publish
and in what order.

Examples:
  gen-changelog config           # Print the default configuration
  gen-changelog config --save    # Write gen-changelog.toml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVarP(&configSave, "save", "s", false, "Save the configuration to "+config.DefaultConfigFile)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()

	if configSave {
		if err := cfg.Save(config.DefaultConfigFile); err != nil {
			return NewExitError(ExitConfigError, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved default configuration to %s\n", config.DefaultConfigFile)
		return nil
	}

	return cfg.Write(cmd.OutOrStdout())
}
