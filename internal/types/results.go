package types

import "github.com/go-playground/validator/v10"

// FillResult records what happened to one recognized field during a fill cycle.
type FillResult struct {
	ElementRef string   `json:"elementRef"`
	Category   Category `json:"category"`
	Attempted  bool     `json:"attempted"`
	Succeeded  bool     `json:"succeeded"`
	Value      string   `json:"valueWritten,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// FillSummary aggregates a fill cycle.
type FillSummary struct {
	CycleID         string       `json:"cycleId"`
	SucceededCount  int          `json:"succeededCount"`
	AttemptedCount  int          `json:"attemptedCount"`
	TotalLocated    int          `json:"totalLocated"`
	RecognizedCount int          `json:"recognizedCount"`
	Results         []FillResult `json:"perFieldResults"`
}

// ScanEntry is the classification of a single located field.
type ScanEntry struct {
	ElementRef  string       `json:"elementRef"`
	TagKind     string       `json:"tagKind"`
	InputType   string       `json:"inputType,omitempty"`
	Category    Category     `json:"category"`
	Name        string       `json:"name"`
	Placeholder string       `json:"placeholder"`
	Signals     []TextSignal `json:"signals,omitempty"`
}

// ScanReport lists the classification of every located field.
type ScanReport struct {
	CycleID string      `json:"cycleId"`
	IsJob   bool        `json:"isJobPage"`
	Fields  []ScanEntry `json:"perFieldClassification"`
}

// Recognized returns the number of entries with a known category.
func (r *ScanReport) Recognized() int {
	n := 0
	for _, f := range r.Fields {
		if f.Category != CategoryUnknown {
			n++
		}
	}
	return n
}

// Operation names accepted in a Command.
const (
	OpFill = "fill"
	OpScan = "scan"
)

// Command asks the core to fill or scan a page.
type Command struct {
	Op      string   `json:"op" validate:"required,oneof=fill scan"`
	Profile *Profile `json:"profile,omitempty"`
}

// Result is the response to a Command; exactly one of Fill or Scan is set.
type Result struct {
	Op   string       `json:"op"`
	Fill *FillSummary `json:"fill,omitempty"`
	Scan *ScanReport  `json:"scan,omitempty"`
}

// Validate validates the Command using the validator.
func (c *Command) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
