package types

// SignalSource identifies where a piece of associated text was found.
type SignalSource string

const (
	SourceLabelFor         SignalSource = "label-for"
	SourceParentLabel      SignalSource = "parent-label"
	SourcePrecedingSibling SignalSource = "preceding-sibling"
	SourceAriaLabel        SignalSource = "aria-label"
	SourcePlaceholder      SignalSource = "placeholder"
	SourceNameAttribute    SignalSource = "name-attribute"
	SourceIDAttribute      SignalSource = "id-attribute"
	SourceTitleAttribute   SignalSource = "title-attribute"
)

// TextSignal is a piece of normalized text associated with a form element,
// weighted by how much the source is trusted.
type TextSignal struct {
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	Source     SignalSource `json:"source"`
}
