/*
Copyright © 2025 DANS - Data Archiving and Networked Services <info@dans.knaw.nl>
*/
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/datavault/internal/vault"
)

func newLayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layer",
		Short: "Manage the storage layers of a storage root",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Close the top layer and create a new one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := vaultClient(cmd)
			if err != nil {
				return err
			}
			status, err := client.NewLayer(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd, status)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list-ids",
		Short: "List the ids of all layers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := vaultClient(cmd)
			if err != nil {
				return err
			}
			ids, err := client.LayerIDs(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd, ids)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status <id|top>",
		Short: "Show the status of a layer by id, or of the top layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			top := strings.EqualFold(args[0], "top")
			if !top {
				var err error
				if id, err = strconv.ParseInt(args[0], 10, 64); err != nil {
					return fmt.Errorf("layer id must be a number or 'top': %s", args[0])
				}
			}

			client, err := vaultClient(cmd)
			if err != nil {
				return err
			}
			var status *vault.LayerStatus
			if top {
				status, err = client.TopLayer(cmd.Context())
			} else {
				status, err = client.Layer(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, status)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a closed layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("layer id must be a number: %s", args[0])
			}
			client, err := vaultClient(cmd)
			if err != nil {
				return err
			}
			status, err := client.ArchiveLayer(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeOutput(cmd, status)
		},
	})
	return cmd
}
