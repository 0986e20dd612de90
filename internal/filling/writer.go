// Package filling writes resolved profile values into form elements.
package filling

import (
	"fmt"
	"log"
	"time"

	"github.com/jonathan/job-autofill/internal/page"
	"github.com/jonathan/job-autofill/internal/types"
)

// Highlight durations for successful writes.
const (
	HighlightDuration      = 4 * time.Second
	DebugHighlightDuration = 15 * time.Second
)

// Highlight styles applied to filled and inspected fields.
var (
	SuccessStyle = page.HighlightStyle{
		Border:     "2px solid #27ae60",
		Background: "#e8f5e8",
		BoxShadow:  "0 0 8px rgba(39, 174, 96, 0.5)",
		LabelColor: "#27ae60",
	}
	DebugStyle = page.HighlightStyle{
		Border:     "3px solid #ff6b6b",
		Background: "#fff5f5",
		LabelColor: "#ff6b6b",
	}
)

// Writer sets values on form elements and reports whether each write took.
// The zero value writes without highlighting.
type Writer struct {
	// Highlight decorates successfully written fields.
	Highlight bool
	// Debug lengthens the highlight.
	Debug bool
	// Verbose logs every strategy decision.
	Verbose bool
}

// Write sets value on el and reports success. It never panics.
func (w *Writer) Write(el page.Element, category types.Category, value string) bool {
	return w.Attempt(el, category, value) == nil
}

// Attempt is Write with the failure reason. A nil error means the value was
// written and, for text inputs, read back unchanged.
func (w *Writer) Attempt(el page.Element, category types.Category, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &WriteError{Category: category, Message: "panic while writing", Cause: fmt.Errorf("%v", r)}
			log.Printf("[FILL] recovered writing %s: %v", category, r)
		}
	}()

	if f, ok := el.(page.Focuser); ok {
		if ferr := f.Focus(); ferr != nil && w.Verbose {
			log.Printf("[FILL] focus failed for %s: %v", category, ferr)
		}
	}

	kind, write := strategyFor(el)
	if w.Verbose {
		log.Printf("[FILL] writing %s via %s strategy", category, kind)
	}
	if err := write(el, value); err != nil {
		return &WriteError{Category: category, Message: kind + " write failed", Cause: err}
	}

	if w.Highlight {
		w.decorate(el, string(category), SuccessStyle)
	}
	return nil
}

// MarkDetected applies the debug highlight to a classified field.
func (w *Writer) MarkDetected(el page.Element, category types.Category) {
	w.decorate(el, string(category), DebugStyle)
}

func (w *Writer) decorate(el page.Element, label string, style page.HighlightStyle) {
	h, ok := el.(page.Highlighter)
	if !ok {
		return
	}
	d := HighlightDuration
	if w.Debug || style == DebugStyle {
		d = DebugHighlightDuration
	}
	if err := h.Highlight(label, style, d); err != nil {
		log.Printf("[FILL] highlight failed for %s: %v", label, err)
	}
}

// fireEvents dispatches the events form frameworks listen to. Each event is
// built with the Event constructor and then with the legacy path; an event
// neither path can deliver is skipped.
func fireEvents(el page.Element, names ...string) {
	target, ok := el.(page.EventTarget)
	if !ok {
		return
	}
	for _, name := range names {
		if err := target.DispatchEvent(name, page.EventConstructor); err == nil {
			continue
		}
		if err := target.DispatchEvent(name, page.EventLegacy); err != nil {
			log.Printf("[FILL] could not dispatch %s: %v", name, err)
		}
	}
}

var changeEvents = []string{"input", "change", "blur", "keyup"}
