package pipeline

import (
	"fmt"
	"log"

	"github.com/jonathan/job-autofill/internal/classify"
	"github.com/jonathan/job-autofill/internal/locating"
	"github.com/jonathan/job-autofill/internal/page"
	"github.com/jonathan/job-autofill/internal/types"
)

// Scan locates and classifies the fields of doc without writing anything.
// Debug scans keep each field's signals and highlight every field with its
// detected category.
func Scan(doc page.Document, opts Options) (report *types.ScanReport, err error) {
	cycleID := newCycleID()
	defer func() {
		if r := recover(); r != nil {
			report, err = nil, panicError(types.OpScan, cycleID, r)
		}
	}()

	emitProgress(&opts, cycleID, "locate", "", "Locating form fields")
	fields, err := locating.Locate(doc)
	if err != nil {
		return nil, &CycleError{Op: types.OpScan, CycleID: cycleID, Message: "failed to locate fields", Cause: err}
	}

	report = &types.ScanReport{
		CycleID: cycleID,
		IsJob:   locating.IsJobPage(doc),
		Fields:  make([]types.ScanEntry, 0, len(fields)),
	}

	var marker detectionMarker
	if opts.Debug {
		marker, _ = opts.writer().(detectionMarker)
	}

	for _, el := range fields {
		signals := classify.AssociatedText(doc, el)
		category := classify.Classify(el, signals)

		entry := types.ScanEntry{
			ElementRef:  el.Key(),
			TagKind:     el.TagName(),
			InputType:   page.InputType(el),
			Category:    category,
			Name:        entryName(el),
			Placeholder: page.AttrOrEmpty(el, "placeholder"),
		}
		if opts.Debug {
			entry.Signals = signals
			if marker != nil {
				marker.MarkDetected(el, category)
			}
		}
		if opts.Verbose {
			log.Printf("[SCAN] <%s name=%q> -> %s", entry.TagKind, entry.Name, category)
		}
		report.Fields = append(report.Fields, entry)
	}

	emitProgress(&opts, cycleID, "done", "", fmt.Sprintf("Scanned %d fields, %d recognized", len(report.Fields), report.Recognized()))
	return report, nil
}

// entryName is the name attribute, falling back to the id and then "unnamed".
func entryName(el page.Element) string {
	if v := page.AttrOrEmpty(el, "name"); v != "" {
		return v
	}
	if v := page.AttrOrEmpty(el, "id"); v != "" {
		return v
	}
	return "unnamed"
}
