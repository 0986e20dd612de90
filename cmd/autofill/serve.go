package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/profile"
	"github.com/jonathan/job-autofill/internal/server"
	"github.com/jonathan/job-autofill/internal/types"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing /scan, /fill, /fill/stream and the profile
helpers. Set JWT_SECRET to require bearer tokens (see "autofill token").`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	jwtConfig, err := config.NewJWTConfig()
	if errors.Is(err, config.ErrJWTDisabled) {
		jwtConfig = nil
	} else if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	defaultProfile, err := optionalProfile(cfg.Profile)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:               cfg.Port,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Verbose:            cfg.Verbose,
		JWT:                jwtConfig,
		Profile:            defaultProfile,
		FetchTimeout:       time.Duration(cfg.BrowserTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

// optionalProfile loads the profile at path, or returns nil when path is empty.
func optionalProfile(path string) (*types.Profile, error) {
	if path == "" {
		return nil, nil
	}
	p, err := profile.Load(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Using default profile from %s", path)
	return p, nil
}
