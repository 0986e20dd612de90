package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/pipeline"
	"github.com/jonathan/job-autofill/internal/profile"
	"github.com/jonathan/job-autofill/internal/types"
)

var fillCmd = &cobra.Command{
	Use:   "fill [file.html]",
	Short: "Fill a job application form from your profile",
	Long: `Fills every recognized field on a page with the matching profile value and
prints a per-field summary.

For a local file or a fetched --url the filled page can be written with --out.
With --browser the page is filled live in Chrome; add --headful to watch it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFill,
}

var (
	fillURL       string
	fillProfile   string
	fillOut       string
	fillBrowser   bool
	fillHeadful   bool
	fillHighlight bool
	fillDebug     bool
	fillJSON      bool
	fillPaceMS    int
	fillHold      time.Duration
)

func init() {
	fillCmd.Flags().StringVarP(&fillURL, "url", "u", "", "URL of the page to fill")
	fillCmd.Flags().StringVarP(&fillProfile, "profile", "p", "", "Path to the profile document (JSON or YAML)")
	fillCmd.Flags().StringVarP(&fillOut, "out", "o", "", "Write the filled page HTML to this path")
	fillCmd.Flags().BoolVar(&fillBrowser, "browser", false, "Fill --url live in Chrome")
	fillCmd.Flags().BoolVar(&fillHeadful, "headful", false, "Show the Chrome window")
	fillCmd.Flags().BoolVar(&fillHighlight, "highlight", false, "Highlight each filled field")
	fillCmd.Flags().BoolVar(&fillDebug, "debug", false, "Keep highlights up longer")
	fillCmd.Flags().BoolVar(&fillJSON, "json", false, "Print the summary as JSON")
	fillCmd.Flags().IntVar(&fillPaceMS, "pace", 0, "Delay before each write in milliseconds (default from config)")
	fillCmd.Flags().DurationVar(&fillHold, "hold", 0, "Keep the browser open this long after filling")
	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = fillProfile
	}
	if cmd.Flags().Changed("headful") {
		cfg.Headful = fillHeadful
	}
	cfg.Highlight = cfg.Highlight || fillHighlight
	cfg.Debug = cfg.Debug || fillDebug

	if cfg.Profile == "" {
		return fmt.Errorf("%w: pass --profile or set \"profile\" in the config file", pipeline.ErrNoProfile)
	}
	p, err := profile.Load(cfg.Profile)
	if err != nil {
		return err
	}

	src := pageSource{URL: fillURL, Browser: fillBrowser}
	if len(args) == 1 {
		src.Path = args[0]
	}
	opened, err := openPage(cmd.Context(), cfg, src)
	if err != nil {
		return err
	}
	defer opened.Close()

	opts := pipeline.Options{
		Pace:      fillPace(cmd, cfg.PaceMS, src.Browser),
		Debug:     cfg.Debug,
		Highlight: cfg.Highlight,
		Verbose:   cfg.Verbose,
	}
	if cfg.Verbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[FILL] %s %s %s\n", e.Step, e.Category, e.Message)
		}
	}

	summary, err := pipeline.Fill(opened.Doc, p, opts)
	if err != nil {
		return err
	}

	if fillOut != "" {
		if err := writeRendered(opened, fillOut); err != nil {
			return err
		}
	}
	if err := printSummary(cmd, summary); err != nil {
		return err
	}

	if src.Browser && fillHold > 0 {
		select {
		case <-time.After(fillHold):
		case <-cmd.Context().Done():
		}
	}
	return nil
}

// fillPace returns the write delay. Parsed pages have no scripts listening,
// so they are only paced when --pace is given explicitly.
func fillPace(cmd *cobra.Command, configMS int, live bool) time.Duration {
	if cmd.Flags().Changed("pace") {
		if fillPaceMS == 0 {
			return -1
		}
		return time.Duration(fillPaceMS) * time.Millisecond
	}
	if !live {
		return -1
	}
	return time.Duration(configMS) * time.Millisecond
}

func writeRendered(opened *openedPage, path string) error {
	html, err := opened.Render()
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func printSummary(cmd *cobra.Command, summary *types.FillSummary) error {
	if fillJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintFillSummary(summary)
	return nil
}
