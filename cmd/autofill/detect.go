package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/locating"
)

var detectCmd = &cobra.Command{
	Use:   "detect [file.html]",
	Short: "Report whether a page looks like a job application",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDetect,
}

var (
	detectURL     string
	detectBrowser bool
)

func init() {
	detectCmd.Flags().StringVarP(&detectURL, "url", "u", "", "URL of the page to check")
	detectCmd.Flags().BoolVar(&detectBrowser, "browser", false, "Load --url in Chrome")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	src := pageSource{URL: detectURL, Browser: detectBrowser}
	if len(args) == 1 {
		src.Path = args[0]
	}
	opened, err := openPage(cmd.Context(), cfg, src)
	if err != nil {
		return err
	}
	defer opened.Close()

	if locating.IsJobPage(opened.Doc) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: job application page\n", src)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: not a job application page\n", src)
	}
	return nil
}
