// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-autofill/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxResultsToShow is how many per-field fill results are listed
	maxResultsToShow = 10
	// maxSignalsToShow is how many signals are listed per scanned field
	maxSignalsToShow = 3
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// PrintScanReport outputs the field analysis of a scan, with up to three
// signals per field when the scan kept them.
func (p *Printer) PrintScanReport(report *types.ScanReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d total fields, %d recognized\n", len(report.Fields), report.Recognized()))
	if report.IsJob {
		sb.WriteString("Page looks like a job application\n")
	}

	for i, f := range report.Fields {
		sb.WriteString("\n")
		kind := f.TagKind
		if f.InputType != "" {
			kind = fmt.Sprintf("%s[%s]", f.TagKind, f.InputType)
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, kind))
		sb.WriteString(fmt.Sprintf("   Detected:    %s\n", f.Category))
		sb.WriteString(fmt.Sprintf("   Name:        %s\n", orNone(f.Name)))
		sb.WriteString(fmt.Sprintf("   Placeholder: %s\n", orNone(f.Placeholder)))
		if len(f.Signals) > 0 {
			sb.WriteString("   Associated texts:\n")
			for _, s := range f.Signals[:min(len(f.Signals), maxSignalsToShow)] {
				sb.WriteString(fmt.Sprintf("     • %q (%s, confidence: %.1f)\n", s.Text, s.Source, s.Confidence))
			}
		}
	}

	p.printBox("FIELD ANALYSIS REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFillSummary outputs the counts of a fill cycle and the first ten
// attempted fields.
func (p *Printer) PrintFillSummary(summary *types.FillSummary) {
	if summary == nil {
		return
	}

	var results []string
	for _, r := range summary.Results {
		if !r.Attempted {
			continue
		}
		if r.Succeeded {
			results = append(results, fmt.Sprintf("✓ %s: %q", r.Category, r.Value))
		} else {
			results = append(results, fmt.Sprintf("✗ %s: failed", r.Category))
		}
	}

	var sb strings.Builder
	title := "AUTOFILL COMPLETE"
	if summary.SucceededCount == 0 {
		title = "NO FIELDS WERE FILLED"
	}
	sb.WriteString(fmt.Sprintf("Filled %d/%d fields\n\n", summary.SucceededCount, summary.AttemptedCount))
	sb.WriteString("Stats:\n")
	sb.WriteString(fmt.Sprintf("  • Found:      %d total fields\n", summary.TotalLocated))
	sb.WriteString(fmt.Sprintf("  • Recognized: %d fields\n", summary.RecognizedCount))
	sb.WriteString(fmt.Sprintf("  • Attempted:  %d fields\n", summary.AttemptedCount))

	if len(results) > 0 {
		sb.WriteString("\nResults:\n")
		for _, line := range results[:min(len(results), maxResultsToShow)] {
			sb.WriteString("  " + line + "\n")
		}
		if len(results) > maxResultsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(results)-maxResultsToShow))
		}
	} else if summary.SucceededCount == 0 {
		sb.WriteString("\nTry a debug scan to see the field analysis\n")
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCompletion outputs how complete a profile is.
func (p *Printer) PrintCompletion(name string, percent int) {
	const barWidth = 40
	filled := barWidth * percent / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	p.printBox("PROFILE COMPLETION", fmt.Sprintf("%s\n%s %d%%", name, bar, percent))
}
