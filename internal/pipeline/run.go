// Package pipeline runs fill and scan cycles over a page: locate the form
// fields, classify each one and, when filling, write the resolved profile
// values one field at a time.
package pipeline

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-autofill/internal/filling"
	"github.com/jonathan/job-autofill/internal/page"
	"github.com/jonathan/job-autofill/internal/types"
)

// DefaultPace is the delay before each attempted write. Writing faster
// races the debounce and validation logic of form frameworks.
const DefaultPace = 150 * time.Millisecond

// ProgressEvent represents a progress update during a cycle
type ProgressEvent struct {
	CycleID  string `json:"cycle_id"`
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// ProgressCallback is called when cycle progress occurs
type ProgressCallback func(event ProgressEvent)

// FieldWriter writes a value into a single element.
type FieldWriter interface {
	Attempt(el page.Element, category types.Category, value string) error
}

// detectionMarker highlights a classified field during a debug scan.
type detectionMarker interface {
	MarkDetected(el page.Element, category types.Category)
}

// Options holds configuration for a fill or scan cycle
type Options struct {
	// Pace is the delay before each attempted write. Zero means DefaultPace;
	// a negative value disables pacing.
	Pace      time.Duration
	Debug     bool
	Highlight bool
	Verbose   bool

	OnProgress ProgressCallback
	// Writer overrides the default filling.Writer.
	Writer FieldWriter
	// Sleep replaces time.Sleep for pacing.
	Sleep func(time.Duration)
}

func (o Options) pace() time.Duration {
	switch {
	case o.Pace == 0:
		return DefaultPace
	case o.Pace < 0:
		return 0
	}
	return o.Pace
}

func (o Options) writer() FieldWriter {
	if o.Writer != nil {
		return o.Writer
	}
	return &filling.Writer{Highlight: o.Highlight, Debug: o.Debug, Verbose: o.Verbose}
}

func (o Options) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if o.Sleep != nil {
		o.Sleep(d)
		return
	}
	time.Sleep(d)
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, cycleID, step string, category types.Category, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			CycleID:  cycleID,
			Step:     step,
			Category: string(category),
			Message:  message,
		})
	}
}

// Execute runs the cycle a command asks for.
func Execute(doc page.Document, cmd types.Command, opts Options) (*types.Result, error) {
	if cmd.Op == types.OpFill && cmd.Profile == nil {
		return nil, ErrNoProfile
	}
	if err := cmd.Validate(); err != nil {
		return nil, &CycleError{Op: cmd.Op, Message: "invalid command", Cause: err}
	}

	switch cmd.Op {
	case types.OpFill:
		summary, err := Fill(doc, cmd.Profile, opts)
		if err != nil {
			return nil, err
		}
		return &types.Result{Op: types.OpFill, Fill: summary}, nil
	default:
		report, err := Scan(doc, opts)
		if err != nil {
			return nil, err
		}
		return &types.Result{Op: types.OpScan, Scan: report}, nil
	}
}

// panicError converts a panic escaping a cycle into a CycleError.
func panicError(op, cycleID string, r any) error {
	log.Printf("[%s] cycle %s aborted: %v", tag(op), cycleID, r)
	return &CycleError{Op: op, CycleID: cycleID, Message: "unexpected failure", Cause: fmt.Errorf("%v", r)}
}

func tag(op string) string {
	if op == types.OpFill {
		return "FILL"
	}
	return "SCAN"
}

func newCycleID() string {
	return uuid.NewString()
}
