/*
Copyright © 2025 DANS - Data Archiving and Networked Services <info@dans.knaw.nl>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/datavault/internal/vault"
	"github.com/fulmenhq/datavault/pkg/config"
	"github.com/fulmenhq/datavault/pkg/logger"
)

// newHTTPDoer builds the transport for service calls; tests replace it.
var newHTTPDoer = func(timeout time.Duration) vault.HTTPDoer {
	return vault.NewHTTPClient(timeout)
}

// loadConfig reads the configuration named by --config (or found on the search path).
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(file)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded configuration", logger.String("file", cfg.File))
	return cfg, nil
}

// storageRoot returns the storage root selected with --storage-root.
func storageRoot(cmd *cobra.Command) (string, config.StorageRootConfig, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", config.StorageRootConfig{}, err
	}
	name, _ := cmd.Flags().GetString("storage-root")
	return cfg.Lookup(name)
}

// vaultClient returns a client for the service of the selected storage root.
func vaultClient(cmd *cobra.Command) (*vault.Client, error) {
	name, root, err := storageRoot(cmd)
	if err != nil {
		return nil, err
	}
	svc := root.DataVaultService
	logger.Debug("Using data vault service", logger.String("storageRoot", name), logger.String("url", svc.URL))
	return vault.NewClient(svc.URL, newHTTPDoer(svc.Timeout)), nil
}

func validateOutputFormat(cmd *cobra.Command) error {
	format, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(format) {
	case "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use json or yaml)", format)
	}
}

// writeOutput prints a command result on stdout in the format chosen with --output.
func writeOutput(cmd *cobra.Command, v interface{}) error {
	format, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()

	switch strings.ToLower(format) {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to format YAML: %v", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %v", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
}
