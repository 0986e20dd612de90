// Package page defines the document contract the autofill core reads and mutates.
// Backends live in internal/dom (parsed HTML) and internal/browser (live Chrome tab).
package page

import "strings"

// Style is the subset of computed style the locator consults.
type Style struct {
	Display    string
	Visibility string
	Opacity    string
}

// Rect is an element's rendered size.
type Rect struct {
	Width  float64
	Height float64
}

// Sibling is a preceding element sibling, nearest first.
type Sibling struct {
	Tag  string
	Text string
}

// Document is a page that can be searched for form elements.
type Document interface {
	QuerySelectorAll(selector string) ([]Element, error)
	// LabelText returns the text of the label whose for attribute references id.
	LabelText(id string) (string, bool, error)
	URL() string
	Title() string
}

// Element is the read side of a form element handle.
type Element interface {
	// Key identifies the element within its document; two handles with the
	// same key refer to the same node.
	Key() string
	TagName() string
	Attr(name string) (string, bool)
	Disabled() bool
	ReadOnly() bool
	ContentEditable() bool
	ComputedStyle() (Style, error)
	BoundingBox() (Rect, error)
	ClosestLabelText() (string, bool, error)
	PreviousSiblings(limit int) ([]Sibling, error)
}

// InputType returns the lowercase input sub-type of el: "text" for untyped
// inputs, "select-one" for selects, "textarea" for textareas, empty otherwise.
func InputType(el Element) string {
	switch el.TagName() {
	case "input":
		t, _ := el.Attr("type")
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			return "text"
		}
		return t
	case "select":
		if _, multiple := el.Attr("multiple"); multiple {
			return "select-multiple"
		}
		return "select-one"
	case "textarea":
		return "textarea"
	}
	return ""
}

// AttrOrEmpty returns the attribute value or an empty string.
func AttrOrEmpty(el Element, name string) string {
	v, _ := el.Attr(name)
	return v
}
