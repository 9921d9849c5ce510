/*
Copyright © 2025 DANS - Data Archiving and Networked Services <info@dans.knaw.nl>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/datavault/internal/assets"
	"github.com/fulmenhq/datavault/pkg/config"
	"github.com/fulmenhq/datavault/pkg/exitcode"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration, environment overrides included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "# %s\n", cfg.File)
			return writeOutput(cmd, cfg)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file against its schema (exit status 2 when invalid)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return exitcode.WithCode(exitcode.ConfigError, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration %s is valid (storage roots: %v)\n", cfg.File, cfg.Names())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema the configuration file must satisfy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := assets.SchemaDocument(assets.ConfigSchema.Path)
			if err != nil {
				return err
			}
			return writeOutput(cmd, doc)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "paths",
		Short: "List the directories searched for config.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeOutput(cmd, config.SearchPaths())
		},
	})
	return cmd
}
