package pipeline

import (
	"fmt"
	"log"

	"github.com/jonathan/job-autofill/internal/classify"
	"github.com/jonathan/job-autofill/internal/locating"
	"github.com/jonathan/job-autofill/internal/page"
	"github.com/jonathan/job-autofill/internal/profile"
	"github.com/jonathan/job-autofill/internal/types"
)

// Fill locates and classifies the fields of doc and writes the matching
// profile values into them, serially and in discovery order.
//
// Per-field failures are recorded in the summary and never stop the cycle.
// Only a failure to query the document, or an unexpected panic, fails the
// whole call.
func Fill(doc page.Document, p *types.Profile, opts Options) (summary *types.FillSummary, err error) {
	if p == nil {
		return nil, ErrNoProfile
	}
	cycleID := newCycleID()
	defer func() {
		if r := recover(); r != nil {
			summary, err = nil, panicError(types.OpFill, cycleID, r)
		}
	}()

	emitProgress(&opts, cycleID, "locate", "", "Locating form fields")
	fields, err := locating.Locate(doc)
	if err != nil {
		return nil, &CycleError{Op: types.OpFill, CycleID: cycleID, Message: "failed to locate fields", Cause: err}
	}
	if opts.Verbose {
		log.Printf("[FILL] cycle %s located %d fields", cycleID, len(fields))
	}

	summary = &types.FillSummary{
		CycleID:      cycleID,
		TotalLocated: len(fields),
		Results:      []types.FillResult{},
	}

	type target struct {
		el       page.Element
		category types.Category
	}
	var targets []target
	for _, el := range fields {
		category := classify.Classify(el, classify.AssociatedText(doc, el))
		if category == types.CategoryUnknown {
			continue
		}
		targets = append(targets, target{el: el, category: category})
	}
	summary.RecognizedCount = len(targets)
	emitProgress(&opts, cycleID, "classify", "", fmt.Sprintf("Recognized %d of %d fields", len(targets), len(fields)))

	writer := opts.writer()
	for _, t := range targets {
		result := types.FillResult{ElementRef: t.el.Key(), Category: t.category}

		value, ok := profile.ResolveValue(t.category, p)
		if !ok {
			if opts.Verbose {
				log.Printf("[FILL] no profile value for %s, skipping", t.category)
			}
			summary.Results = append(summary.Results, result)
			continue
		}

		opts.sleep(opts.pace())
		result.Attempted = true
		result.Value = value
		summary.AttemptedCount++

		if werr := writer.Attempt(t.el, t.category, value); werr != nil {
			result.Error = werr.Error()
			if opts.Verbose {
				log.Printf("[FILL] %v", werr)
			}
			emitProgress(&opts, cycleID, "write", t.category, "failed: "+werr.Error())
		} else {
			result.Succeeded = true
			summary.SucceededCount++
			emitProgress(&opts, cycleID, "write", t.category, "filled")
		}
		summary.Results = append(summary.Results, result)
	}

	emitProgress(&opts, cycleID, "done", "", fmt.Sprintf("Filled %d of %d fields", summary.SucceededCount, summary.AttemptedCount))
	return summary, nil
}
