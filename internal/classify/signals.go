package classify

import (
	"log"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-autofill/internal/page"
	"github.com/jonathan/job-autofill/internal/types"
)

// Signal confidences by source.
const (
	ConfidenceLabelFor    = 1.0
	ConfidenceParentLabel = 0.9
	ConfidenceAriaLabel   = 0.9
	ConfidencePlaceholder = 0.6
	ConfidenceAttribute   = 0.5

	// MaxSignals caps the signals kept per element.
	MaxSignals = 5

	maxSiblings      = 3
	maxSiblingLength = 100
)

// siblingConfidence decays by a tenth per step back, starting at 0.7.
var siblingConfidence = [maxSiblings]float64{0.7, 0.6, 0.5}

var siblingTags = map[string]bool{"label": true, "span": true, "div": true, "p": true}

var markerReplacer = strings.NewReplacer("*", "", ":", "", "•", "")

// Normalize strips marker characters, collapses whitespace, trims and lowercases.
func Normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(markerReplacer.Replace(text)), " "))
}

// AssociatedText gathers text signals for el, deduplicated by normalized
// text, sorted by descending confidence and capped at MaxSignals. Backend
// errors stop the source that raised them; signals already found are kept.
func AssociatedText(doc page.Document, el page.Element) []types.TextSignal {
	var found []types.TextSignal
	add := func(raw string, confidence float64, source types.SignalSource) {
		if text := Normalize(raw); text != "" {
			found = append(found, types.TextSignal{Text: text, Confidence: confidence, Source: source})
		}
	}

	if id, ok := el.Attr("id"); ok && id != "" {
		text, ok, err := doc.LabelText(id)
		if err != nil {
			log.Printf("[SIGNALS] label lookup failed for #%s: %v", id, err)
		} else if ok {
			add(text, ConfidenceLabelFor, types.SourceLabelFor)
		}
	}

	if text, ok, err := el.ClosestLabelText(); err != nil {
		log.Printf("[SIGNALS] parent label lookup failed: %v", err)
	} else if ok {
		add(text, ConfidenceParentLabel, types.SourceParentLabel)
	}

	if siblings, err := el.PreviousSiblings(maxSiblings); err != nil {
		log.Printf("[SIGNALS] sibling walk failed: %v", err)
	} else {
		for i, sib := range siblings {
			if i >= maxSiblings {
				break
			}
			if !siblingTags[sib.Tag] {
				continue
			}
			text := Normalize(sib.Text)
			if n := utf8.RuneCountInString(text); n > 1 && n < maxSiblingLength {
				add(text, siblingConfidence[i], types.SourcePrecedingSibling)
			}
		}
	}

	if v, ok := el.Attr("aria-label"); ok {
		add(v, ConfidenceAriaLabel, types.SourceAriaLabel)
	}
	if v, ok := el.Attr("placeholder"); ok {
		add(v, ConfidencePlaceholder, types.SourcePlaceholder)
	}

	attrSources := []struct {
		name   string
		source types.SignalSource
	}{
		{"name", types.SourceNameAttribute},
		{"id", types.SourceIDAttribute},
		{"title", types.SourceTitleAttribute},
	}
	for _, a := range attrSources {
		if v, ok := el.Attr(a.name); ok {
			add(separatorReplacer.Replace(v), ConfidenceAttribute, a.source)
		}
	}

	return rankSignals(found)
}

var separatorReplacer = strings.NewReplacer("_", " ", "-", " ")

func rankSignals(signals []types.TextSignal) []types.TextSignal {
	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Confidence > signals[j].Confidence
	})

	seen := make(map[string]bool, len(signals))
	out := make([]types.TextSignal, 0, MaxSignals)
	for _, s := range signals {
		if seen[s.Text] {
			continue
		}
		seen[s.Text] = true
		out = append(out, s)
		if len(out) == MaxSignals {
			break
		}
	}
	return out
}
