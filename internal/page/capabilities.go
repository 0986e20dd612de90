package page

import "time"

// ValueSetter is an element with a settable value property (input, textarea).
type ValueSetter interface {
	Value() (string, error)
	// SetValue performs a plain property assignment, which reactive
	// frameworks may intercept.
	SetValue(v string) error
	// SetNativeValue invokes the prototype's value setter directly.
	SetNativeValue(v string) error
}

// Option is one entry of a select element.
type Option struct {
	Index int
	Value string
	Text  string
}

// OptionSelector is an element whose value is chosen from options.
type OptionSelector interface {
	Options() ([]Option, error)
	SelectIndex(i int) error
}

// Checkable is a checkbox or radio button.
type Checkable interface {
	Checked() (bool, error)
	SetChecked(checked bool) error
}

// TextEditable is a content-editable region.
type TextEditable interface {
	SetTextContent(text string) error
}

// EventConstruction selects how a synthetic event is built.
type EventConstruction int

const (
	// EventConstructor builds events with the generic Event constructor.
	EventConstructor EventConstruction = iota
	// EventLegacy builds events with createEvent followed by initEvent.
	EventLegacy
)

// EventTarget receives synthetic events. Events are dispatched bubbling and cancelable.
type EventTarget interface {
	DispatchEvent(name string, how EventConstruction) error
}

// Focuser can take keyboard focus without scrolling.
type Focuser interface {
	Focus() error
}

// HighlightStyle describes temporary visual feedback on an element.
type HighlightStyle struct {
	Border     string
	Background string
	BoxShadow  string
	LabelColor string
}

// Highlighter can decorate an element and revert the decoration after d.
// Implementations must return without waiting for the revert.
type Highlighter interface {
	Highlight(label string, style HighlightStyle, d time.Duration) error
}
