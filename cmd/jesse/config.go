package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/jesse/internal/config"
	"github.com/quantmind-br/jesse/internal/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the configuration interactively",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().Bool("accessible", false, "Use accessible prompts instead of the full-screen editor")
	configCmd.Flags().Bool("show", false, "Print the config file path and exit")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	path := cfgFile
	if path == "" {
		path = config.ConfigFilePath()
	}

	if show, _ := cmd.Flags().GetBool("show"); show {
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	accessible, _ := cmd.Flags().GetBool("accessible")
	return tui.Run(tui.Options{
		Config:     cfg,
		Path:       path,
		Accessible: accessible,
	})
}
