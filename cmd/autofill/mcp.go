package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/fetch"
	"github.com/jonathan/job-autofill/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the scan and fill tools over MCP on stdio",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defaultProfile, err := optionalProfile(cfg.Profile)
		if err != nil {
			return err
		}

		fetchOptions := fetch.DefaultOptions()
		fetchOptions.Timeout = time.Duration(cfg.BrowserTimeoutSeconds) * time.Second

		tools := mcptools.New(mcptools.Config{
			Profile: defaultProfile,
			Fetch:   fetchOptions,
			Verbose: cfg.Verbose,
		})
		return tools.Serve(cmd.Context(), version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
