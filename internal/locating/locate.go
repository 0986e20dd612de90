// Package locating finds the interactive, visible, enabled form elements on a page.
package locating

import (
	"log"

	"github.com/jonathan/job-autofill/internal/page"
)

// FieldSelectors are the selectors a plausible form input matches.
var FieldSelectors = []string{
	`input[type="text"]`,
	`input[type="email"]`,
	`input[type="tel"]`,
	`input[type="url"]`,
	`input[type="search"]`,
	`input:not([type])`,
	`textarea`,
	`select`,
	`[role="textbox"]`,
	`[contenteditable="true"]`,
}

// Locate returns the fillable elements of doc, each at most once, in the
// order they were discovered. A selector the document cannot evaluate fails
// the whole call; problems with individual elements only exclude them.
func Locate(doc page.Document) ([]page.Element, error) {
	seen := make(map[string]bool)
	var fields []page.Element

	for _, selector := range FieldSelectors {
		matches, err := doc.QuerySelectorAll(selector)
		if err != nil {
			return nil, &LocateError{Selector: selector, Message: "query failed", Cause: err}
		}
		for _, el := range matches {
			if seen[el.Key()] {
				continue
			}
			if IsVisible(el) && IsEnabled(el) {
				seen[el.Key()] = true
				fields = append(fields, el)
			}
		}
	}
	return fields, nil
}

// IsVisible reports whether el is rendered: displayed, not hidden, not fully
// transparent, and with a box that has some width or height.
//
// Visibility is fail-safe: if the style or geometry cannot be read (for
// example the element was detached) the element counts as not visible and
// the failure is only logged.
func IsVisible(el page.Element) bool {
	style, err := el.ComputedStyle()
	if err != nil {
		log.Printf("[LOCATE] excluding <%s>: computed style unavailable: %v", el.TagName(), err)
		return false
	}
	if style.Display == "none" || style.Visibility == "hidden" || style.Opacity == "0" {
		return false
	}

	box, err := el.BoundingBox()
	if err != nil {
		log.Printf("[LOCATE] excluding <%s>: bounding box unavailable: %v", el.TagName(), err)
		return false
	}
	return box.Width != 0 || box.Height != 0
}

var excludedInputTypes = map[string]bool{"hidden": true, "submit": true, "button": true}

// IsEnabled reports whether el accepts input.
func IsEnabled(el page.Element) bool {
	if el.Disabled() || el.ReadOnly() {
		return false
	}
	return !excludedInputTypes[page.InputType(el)]
}
