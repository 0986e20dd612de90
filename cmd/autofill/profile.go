package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/profile"
	"github.com/jonathan/job-autofill/internal/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create, check and export profile documents",
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate <profile>",
	Short: "Check a profile document against the profile schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := profile.Load(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid profile\n", args[0])
		return nil
	},
}

var profileProgressCmd = &cobra.Command{
	Use:   "progress <profile>",
	Short: "Show how complete a profile is",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(args[0])
		if err != nil {
			return err
		}
		name, ok := profile.ResolveValue(types.CategoryFullName, p)
		if !ok {
			name = filepath.Base(args[0])
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintCompletion(name, profile.Completion(p))
		return nil
	},
}

var templateOut string

var profileTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write an empty profile document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return exportTo(cmd, profile.Template(), templateOut)
	},
}

var exportDir string

var profileExportCmd = &cobra.Command{
	Use:   "export <profile>",
	Short: "Validate a profile and write it as dated JSON",
	Long: `Reads a JSON or YAML profile, validates it and writes it to
job_autofill_profile_<date>.json in --dir.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(args[0])
		if err != nil {
			return err
		}
		path := filepath.Join(exportDir, profile.ExportFilename(time.Now()))
		if err := exportTo(cmd, p, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Profile exported to %s\n", path)
		return nil
	},
}

func init() {
	profileTemplateCmd.Flags().StringVarP(&templateOut, "out", "o", "", "Output path (default stdout)")
	profileExportCmd.Flags().StringVar(&exportDir, "dir", ".", "Directory to write the export into")

	profileCmd.AddCommand(profileValidateCmd, profileProgressCmd, profileTemplateCmd, profileExportCmd)
	rootCmd.AddCommand(profileCmd)
}

// exportTo writes p as indented JSON to path, or to stdout when path is empty.
func exportTo(cmd *cobra.Command, p *types.Profile, path string) error {
	if path == "" {
		return profile.Export(cmd.OutOrStdout(), p)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := profile.Export(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
