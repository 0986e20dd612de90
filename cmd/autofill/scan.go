package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/pipeline"
	"github.com/jonathan/job-autofill/internal/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan [file.html ...]",
	Short: "Report the detected category of every form field",
	Long: `Locates the fillable fields on one or more pages and prints the profile
category detected for each one. Nothing is written into the page.

Local files are scanned concurrently. Use --url to scan a page over HTTP,
adding --browser to load it in Chrome first.`,
	RunE: runScan,
}

var (
	scanURL     string
	scanBrowser bool
	scanJSON    bool
	scanDebug   bool
	scanHeadful bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanURL, "url", "u", "", "URL of the page to scan")
	scanCmd.Flags().BoolVar(&scanBrowser, "browser", false, "Load --url in Chrome (runs page scripts)")
	scanCmd.Flags().BoolVar(&scanHeadful, "headful", false, "Show the Chrome window")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the reports as JSON")
	scanCmd.Flags().BoolVar(&scanDebug, "debug", false, "Include the text signals behind each classification")
	rootCmd.AddCommand(scanCmd)
}

// namedReport pairs a scan report with the page it came from.
type namedReport struct {
	Source string            `json:"source"`
	Report *types.ScanReport `json:"report"`
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("headful") {
		cfg.Headful = scanHeadful
	}
	debug := scanDebug || cfg.Debug

	sources := make([]pageSource, 0, len(args)+1)
	for _, path := range args {
		sources = append(sources, pageSource{Path: path})
	}
	if scanURL != "" {
		sources = append(sources, pageSource{URL: scanURL, Browser: scanBrowser})
	}
	if len(sources) == 0 {
		return fmt.Errorf("nothing to scan: pass HTML files or --url")
	}

	reports := make([]namedReport, len(sources))
	g, gCtx := errgroup.WithContext(cmd.Context())
	for i, src := range sources {
		g.Go(func() error {
			opened, err := openPage(gCtx, cfg, src)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			defer opened.Close()

			report, err := pipeline.Scan(opened.Doc, pipeline.Options{Debug: debug, Verbose: cfg.Verbose})
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			reports[i] = namedReport{Source: src.String(), Report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return printReports(cmd.OutOrStdout(), reports, scanJSON)
}

func printReports(out io.Writer, reports []namedReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if len(reports) == 1 {
			return enc.Encode(reports[0].Report)
		}
		return enc.Encode(reports)
	}

	printer := observability.NewPrinter(out)
	for _, r := range reports {
		if len(reports) > 1 {
			fmt.Fprintf(out, "\n%s\n", r.Source)
		}
		printer.PrintScanReport(r.Report)
	}
	return nil
}
