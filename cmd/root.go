/*
Copyright © 2025 DANS - Data Archiving and Networked Services <info@dans.knaw.nl>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/datavault/pkg/buildinfo"
	"github.com/fulmenhq/datavault/pkg/exitcode"
	"github.com/fulmenhq/datavault/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data-vault",
		Short: "Command line client for the data vault of a storage root",
		Long: `data-vault prepares batches for import into a data vault storage root and
talks to the data vault service that manages it.

Examples:
   data-vault copy-batch ~/batches/b1 /import/area    # Copy a batch into the import area
   data-vault -r archive import start /import/area/b1  # Start importing it
   data-vault layer list-ids                            # List storage layers
   data-vault config validate                           # Check the configuration file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initializeLogger(cmd); err != nil {
				return err
			}
			return validateOutputFormat(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("config", "", "Configuration file (default: $DATA_VAULT_CONFIG or config.yml on the search path)")
	cmd.PersistentFlags().StringP("storage-root", "r", "", "Storage root to operate on (may be omitted when only one is configured)")
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringP("output", "o", "json", "Output format for results (json|yaml)")

	// Wire Cobra's built-in --version using the binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("data-vault {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newCopyBatchCommand())
	cmd.AddCommand(newImportCommand())
	cmd.AddCommand(newLayerCommand())
	cmd.AddCommand(newConsistencyCheckCommand())
	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(newVersionCommand())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the command tree and exits with the status matching the error,
// after printing it once on stderr. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitcode.For(err))
	}
}

func init() {
	// Register all subcommands with the production rootCmd
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) error {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	// Only copy-batch defines --dry-run
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	logLevel, ok := logger.ParseLevel(logLevelStr)
	if !ok {
		return fmt.Errorf("invalid log level %q (use trace, debug, info, warn or error)", logLevelStr)
	}

	config := logger.Config{
		Level:     logLevel,
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "data-vault",
		DryRun:    dryRun,
	}
	return logger.Initialize(config)
}
