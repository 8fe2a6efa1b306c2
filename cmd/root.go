// Package cmd provides the root command and CLI setup for mockguard.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mockguard.dev/pkg/mockguard/internal/adapter"
	"mockguard.dev/pkg/mockguard/internal/controller"
	"mockguard.dev/pkg/mockguard/internal/domain"
	m "mockguard.dev/pkg/mockguard/internal/model"
)

const noCommandMessage = "Oops, no command specified. Try --help."

const rootLongDescription = `Mockguard checks that every module imported by a module under test is
mocked in its test file.

Test files carry a ".test" or ".spec" marker in their name and sit next to
the module they test (foo.test.ts tests foo.ts). Every import of the module
needs a matching jest.mock("<module>") declaration in the test file. Imports
between "//#region not-mocked" and "//#endregion" are exempt.

Examples:
  mockguard --mocks                         scan the current directory
  mockguard --mocks -d ./src                scan ./src
  mockguard --mocks -f ./src/foo.test.ts    check a single test file
  mockguard --mocks --watch                 recheck whenever files change`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mockguard",
		Short:         "Check that test files mock every import of their module",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			if configErr != nil {
				slog.Error("Invalid configuration", "error", configErr)
				return configErr
			}

			return nil
		},
		RunE: runRoot,
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	setConfigDefaults()

	cmd.Flags().BoolP(mocksFlagName, "m", false, "check that all imports have a corresponding mock")
	cmd.Flags().StringP(filenameFlagName, "f", "", "only check a specific test file")
	cmd.Flags().StringP(directoryFlagName, "d", defaultDirectory(), "directory to check")
	cmd.MarkFlagsMutuallyExclusive(filenameFlagName, directoryFlagName)

	cmd.Flags().IntP(parallelFlagName, "p", viper.GetInt(runParallelKey), "number of pairs checked in parallel (0 = all CPUs)")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), runParallelKey)

	cmd.Flags().BoolP(watchFlagName, "w", false, "rerun the check whenever files change")

	cmd.Flags().Bool(patchFlagName, viper.GetBool(outputPatchKey), "show a unified diff adding the missing mocks")
	bindFlagToConfig(cmd.Flags().Lookup(patchFlagName), outputPatchKey)

	cmd.Flags().String(formatFlagName, viper.GetString(outputFormatKey), "report format: text or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), outputFormatKey)

	cmd.Flags().StringArrayP(ignoreFlagName, "x", viper.GetStringSlice(ignoreConfigKey), "extra directory name to skip (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(ignoreFlagName), ignoreConfigKey)

	cmd.Flags().String(mockFunctionFlagName, viper.GetString(mockFunctionKey), "mock declaration call to look for")
	bindFlagToConfig(cmd.Flags().Lookup(mockFunctionFlagName), mockFunctionKey)

	cmd.PersistentFlags().BoolP(verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().String(logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func defaultDirectory() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}

	return dir
}

func runRoot(cmd *cobra.Command, _ []string) error {
	mocks, err := cmd.Flags().GetBool(mocksFlagName)
	if err != nil {
		return err
	}

	if !mocks {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), noCommandMessage)
		return nil
	}

	args, err := checkArgsFromFlags(cmd)
	if err != nil {
		return err
	}

	format, err := controller.ParseFormat(viper.GetString(outputFormatKey))
	if err != nil {
		return err
	}

	watch, err := cmd.Flags().GetBool(watchFlagName)
	if err != nil {
		return err
	}

	ui := controller.NewUI(cmd, format, controller.IsTTY(cmd.OutOrStdout()))
	wf := newWorkflow(ui)

	if watch {
		return wf.Watch(cmd.Context(), args, adapter.NewFSNotifyChangeWatcher(adapter.DefaultDebounce))
	}

	_, err = wf.Check(cmd.Context(), args)

	return err
}

func checkArgsFromFlags(cmd *cobra.Command) (domain.CheckArgs, error) {
	filename, err := cmd.Flags().GetString(filenameFlagName)
	if err != nil {
		return domain.CheckArgs{}, err
	}

	directory, err := cmd.Flags().GetString(directoryFlagName)
	if err != nil {
		return domain.CheckArgs{}, err
	}

	return domain.CheckArgs{
		Directory: m.Path(directory),
		Filename:  m.Path(filename),
		Threads:   viper.GetInt(runParallelKey),
	}, nil
}

func newWorkflow(ui controller.UI) domain.Workflow {
	fsAdapter := adapter.NewLocalSourceFSAdapter()

	options := []domain.VerifierOption{domain.WithMockFunction(viper.GetString(mockFunctionKey))}
	if viper.GetBool(outputPatchKey) {
		options = append(options, domain.WithPatchSuggester(domain.NewPatchSuggester()))
	}

	return domain.NewWorkflow(
		domain.NewDiscovery(fsAdapter, viper.GetStringSlice(ignoreConfigKey)...),
		domain.NewImportExtractor(fsAdapter),
		domain.NewMockVerifier(fsAdapter, options...),
		ui,
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if reportable(err) {
			rootCmd.PrintErrln("Error:", err)
		}

		stop()
		os.Exit(1)
	}
}

// reportable reports whether err still has to be printed. Check failures and
// pair lookup errors were already shown by the UI.
func reportable(err error) bool {
	var pairErr *m.PairError

	return !errors.Is(err, domain.ErrCheckFailed) && !errors.As(err, &pairErr)
}
