/*
Copyright © 2025 DANS - Data Archiving and Networked Services <info@dans.knaw.nl>
*/
package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fulmenhq/datavault/internal/vault"
)

func newConsistencyCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consistency-check",
		Short: "Start and inspect consistency checks",
	}
	cmd.AddCommand(newConsistencyCheckNewCommand())
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a consistency check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid consistency check id %q: %v", args[0], err)
			}
			client, err := vaultClient(cmd)
			if err != nil {
				return err
			}
			check, err := client.ConsistencyCheck(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeOutput(cmd, check)
		},
	})
	return cmd
}

func newConsistencyCheckNewCommand() *cobra.Command {
	var layerID int64
	var checkLayerIDs bool
	cmd := &cobra.Command{
		Use:   "new (-l ID | -a)",
		Short: "Start a consistency check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := vault.ConsistencyCheckRequest{Type: vault.CheckLayerIDs}
			if cmd.Flags().Changed("layer") {
				req = vault.ConsistencyCheckRequest{Type: vault.CheckListingRecords, LayerID: &layerID}
			}
			client, err := vaultClient(cmd)
			if err != nil {
				return err
			}
			check, err := client.StartConsistencyCheck(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeOutput(cmd, check)
		},
	}
	cmd.Flags().Int64VarP(&layerID, "layer", "l", 0, "Check that the listing records of the layer are consistent with the files and directories on storage")
	cmd.Flags().BoolVarP(&checkLayerIDs, "check-layer-ids", "a", false, "Check that the layer IDs are the same on storage and in the database")
	cmd.MarkFlagsMutuallyExclusive("layer", "check-layer-ids")
	cmd.MarkFlagsOneRequired("layer", "check-layer-ids")
	return cmd
}
