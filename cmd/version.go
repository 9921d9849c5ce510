/*
Copyright © 2025 DANS - Data Archiving and Networked Services <info@dans.knaw.nl>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/datavault/pkg/buildinfo"
)

func newVersionCommand() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the data-vault version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := buildinfo.Current()
			if jsonOutput || cmd.Flags().Changed("output") {
				return writeOutput(cmd, info)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "data-vault %s\n", info.Version)
			if info.ModuleVersion != "" && info.ModuleVersion != info.Version {
				fmt.Fprintf(out, "Module: %s\n", info.ModuleVersion)
			}
			fmt.Fprintf(out, "Go: %s (%s)\n", info.GoVersion, info.Platform)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")
	return cmd
}
