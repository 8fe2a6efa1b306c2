package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default mockguard.yaml configuration file",
		Long: `Create a mockguard.yaml in the current working directory populated with the
current defaults (mock function, ignored directories, parallelism, output and
logging settings) so it can be edited manually.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeDefaultConfig(cmd, filepath.Join(configFolderPath, configFileName))
		},
	}
}

func writeDefaultConfig(cmd *cobra.Command, targetPath string) error {
	if err := viper.SafeWriteConfigAs(targetPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", targetPath)

	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
