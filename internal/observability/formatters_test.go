package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/job-autofill/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintScanReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &types.ScanReport{
		IsJob: true,
		Fields: []types.ScanEntry{
			{
				TagKind: "input", InputType: "text", Category: types.CategoryFirstName, Name: "fname",
				Signals: []types.TextSignal{
					{Text: "first name", Confidence: 1.0, Source: types.SourceLabelFor},
					{Text: "given", Confidence: 0.6, Source: types.SourcePlaceholder},
					{Text: "fname", Confidence: 0.5, Source: types.SourceNameAttribute},
					{Text: "f1", Confidence: 0.5, Source: types.SourceIDAttribute},
				},
			},
			{TagKind: "textarea", InputType: "textarea", Category: types.CategoryUnknown},
		},
	}

	p.PrintScanReport(report)
	output := buf.String()

	assert.Contains(t, output, "FIELD ANALYSIS REPORT")
	assert.Contains(t, output, "Found 2 total fields, 1 recognized")
	assert.Contains(t, output, "job application")
	assert.Contains(t, output, "input[text]")
	assert.Contains(t, output, `"first name" (label-for, confidence: 1.0)`)
	assert.NotContains(t, output, `"f1"`)
	assert.Contains(t, output, "Name:        none")
}

func TestPrintScanReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScanReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintFillSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	summary := &types.FillSummary{TotalLocated: 14, RecognizedCount: 13, AttemptedCount: 12, SucceededCount: 11}
	for i := 0; i < 12; i++ {
		summary.Results = append(summary.Results, types.FillResult{
			Category:  types.CategoryCity,
			Attempted: true,
			Succeeded: i != 0,
			Value:     fmt.Sprintf("city-%d", i),
		})
	}
	summary.Results = append(summary.Results, types.FillResult{Category: types.CategoryPhone})

	p.PrintFillSummary(summary)
	output := buf.String()

	assert.Contains(t, output, "AUTOFILL COMPLETE")
	assert.Contains(t, output, "Filled 11/12 fields")
	assert.Contains(t, output, "✗ city: failed")
	assert.Contains(t, output, `✓ city: "city-9"`)
	assert.NotContains(t, output, "city-10")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "phone")
}

func TestPrintFillSummary_NothingFilled(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFillSummary(&types.FillSummary{TotalLocated: 3})

	output := buf.String()
	assert.Contains(t, output, "NO FIELDS WERE FILLED")
	assert.Contains(t, output, "debug scan")
}

func TestPrintCompletion(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCompletion("me.json", 50)

	output := buf.String()
	assert.Contains(t, output, "PROFILE COMPLETION")
	assert.Contains(t, output, strings.Repeat("█", 20)+strings.Repeat("░", 20)+" 50%")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &types.ScanReport{Fields: []types.ScanEntry{{
		TagKind:     "input",
		Name:        "a_very_long_field_name_that_should_be_truncated_to_fit_inside_the_box",
		Placeholder: "ünïcödé placeholder text that is also rather long for the box",
	}}}

	p.PrintScanReport(report)
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.Contains(t, output, "...")
	assert.NotContains(t, output, "inside_the_box")
}
