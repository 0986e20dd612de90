package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token <client>",
	Short: "Issue a bearer token for the API server",
	Long:  `Signs a token for the named client with JWT_SECRET. The token expires after JWT_EXPIRATION_HOURS (default 24).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return fmt.Errorf("failed to create JWT config: %w", err)
		}
		token, err := server.NewJWTService(jwtConfig).GenerateToken(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
