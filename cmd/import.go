/*
Copyright © 2025 DANS - Data Archiving and Networked Services <info@dans.knaw.nl>
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fulmenhq/datavault/internal/vault"
)

// maxStatusLookups bounds concurrent requests made by 'import status'.
const maxStatusLookups = 4

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Start and monitor import jobs",
	}
	cmd.AddCommand(newImportStartCommand())
	cmd.AddCommand(newImportStatusCommand())
	return cmd
}

func newImportStartCommand() *cobra.Command {
	var singleObject, allowTimestamps bool
	cmd := &cobra.Command{
		Use:   "start <path>",
		Short: "Start an import job for a batch directory in the import area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			client, err := vaultClient(cmd)
			if err != nil {
				return err
			}
			job, err := client.StartImport(cmd.Context(), vault.ImportCommand{
				Path:                              path,
				SingleObject:                      singleObject,
				AcceptTimestampVersionDirectories: allowTimestamps,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Submitted import job: %s\n", job.ID)
			if cmd.Flags().Changed("output") {
				return writeOutput(cmd, job)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&singleObject, "single-object", "s", false, "The path points to a single object import directory (by default it points to a batch directory)")
	cmd.Flags().BoolVarP(&allowTimestamps, "allow-timestamp-version-directories", "t", false, "Accept version directories named by timestamp")
	return cmd
}

func newImportStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id>...",
		Short: "Show the status of one or more import jobs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uuid.UUID, len(args))
			for i, arg := range args {
				id, err := uuid.Parse(arg)
				if err != nil {
					return fmt.Errorf("invalid import job id %q: %v", arg, err)
				}
				ids[i] = id
			}

			client, err := vaultClient(cmd)
			if err != nil {
				return err
			}

			jobs := make([]*vault.ImportJob, len(ids))
			g, gctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxStatusLookups)
			for i, id := range ids {
				g.Go(func() error {
					job, err := client.ImportStatus(gctx, id)
					if err != nil {
						return err
					}
					jobs[i] = job
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if len(jobs) == 1 {
				return writeOutput(cmd, jobs[0])
			}
			return writeOutput(cmd, jobs)
		},
	}
}
