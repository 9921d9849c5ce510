/*
Copyright © 2025 DANS - Data Archiving and Networked Services <info@dans.knaw.nl>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/datavault/internal/batch"
	"github.com/fulmenhq/datavault/pkg/logger"
	"github.com/fulmenhq/datavault/pkg/mode"
)

type copyBatchOptions struct {
	fileMode      mode.Value
	directoryMode mode.Value
	dryRun        bool
}

func newCopyBatchCommand() *cobra.Command {
	opts := &copyBatchOptions{}
	cmd := &cobra.Command{
		Use:   "copy-batch <source> <target>",
		Short: "Copy a batch directory into the import area and set its permissions",
		Long: `Copy the batch directory <source> into the import area of the storage root.

When <target> has the same name as <source>, the batch becomes <target>, which
must not exist yet or be empty. Otherwise the batch is copied to a child of
<target> named after <source>, creating <target> if needed. <target> must lie
inside the import area. After copying, every file and directory gets the
modes configured for the import area.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopyBatch(cmd, opts, args[0], args[1])
		},
	}
	cmd.Flags().Var(&opts.fileMode, "file-mode", "File mode for this run, overriding importArea.fileMode (e.g. 0644 or rw-r--r--)")
	cmd.Flags().Var(&opts.directoryMode, "directory-mode", "Directory mode for this run, overriding importArea.directoryMode (e.g. 0755 or rwxr-xr-x)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Resolve and validate the destination without copying")
	return cmd
}

func runCopyBatch(cmd *cobra.Command, opts *copyBatchOptions, source, target string) error {
	name, root, err := storageRoot(cmd)
	if err != nil {
		return err
	}

	area := batch.ImportArea{
		Root:          root.ImportArea.Path,
		FileMode:      root.ImportArea.FileMode,
		DirectoryMode: root.ImportArea.DirectoryMode,
		Exclude:       root.ImportArea.Exclude,
	}
	if _, ok := opts.fileMode.Get(); ok {
		area.FileMode = opts.fileMode.Raw()
	}
	if _, ok := opts.directoryMode.Get(); ok {
		area.DirectoryMode = opts.directoryMode.Raw()
	}
	logger.Debug("Import area",
		logger.String("storageRoot", name),
		logger.String("path", area.Root),
		logger.String("fileMode", area.FileMode),
		logger.String("directoryMode", area.DirectoryMode))

	op, err := batch.NewOperation(batch.HostFS(), area, batch.WithDryRun(opts.dryRun))
	if err != nil {
		return err
	}
	result, err := op.Run(cmd.Context(), batch.CopyRequest{Source: source, Target: target})
	if err != nil {
		return err
	}

	if result.DryRun {
		fmt.Fprintf(cmd.ErrOrStderr(), "Would copy %s to %s\n", result.Source, result.Destination)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "Copied %s to %s\n", result.Source, result.Destination)
	}
	if cmd.Flags().Changed("output") {
		return writeOutput(cmd, result)
	}
	return nil
}
