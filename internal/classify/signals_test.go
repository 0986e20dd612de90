package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/types"
)

func signalsFor(t *testing.T, html, selector string) []types.TextSignal {
	t.Helper()
	d, err := dom.ParseString(html)
	require.NoError(t, err)
	el := d.First(selector)
	require.NotNil(t, el)
	return AssociatedText(d, el)
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  First   Name*: • ": "first name",
		"E-Mail\n\tAddress":   "e-mail address",
		"***":                 "",
		"":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestAssociatedText_LabelPlaceholderName(t *testing.T) {
	signals := signalsFor(t, `<label for="em">E-mail:</label>
		<input id="em" name="user_email" placeholder="you@example.com">`, "input")

	require.Len(t, signals, 4)
	assert.Equal(t, types.TextSignal{Text: "e-mail", Confidence: 1.0, Source: types.SourceLabelFor}, signals[0])
	assert.Equal(t, types.TextSignal{Text: "you@example.com", Confidence: 0.6, Source: types.SourcePlaceholder}, signals[1])
	assert.Equal(t, types.TextSignal{Text: "user email", Confidence: 0.5, Source: types.SourceNameAttribute}, signals[2])
	assert.Equal(t, types.SourceIDAttribute, signals[3].Source)
}

func TestAssociatedText_DeduplicatesKeepingHighestConfidence(t *testing.T) {
	signals := signalsFor(t, `<label>Email <input name="email" placeholder="Email"></label>`, "input")

	require.Len(t, signals, 1)
	assert.Equal(t, "email", signals[0].Text)
	assert.Equal(t, types.SourceParentLabel, signals[0].Source)
	assert.Equal(t, 0.9, signals[0].Confidence)
}

func TestAssociatedText_PrecedingSiblings(t *testing.T) {
	signals := signalsFor(t, `<div>
		<span>Phone:</span><p>x</p><label>Mobile number *</label><input name="m">
	</div>`, "input")

	require.Len(t, signals, 3)
	assert.Equal(t, types.TextSignal{Text: "mobile number", Confidence: 0.7, Source: types.SourcePrecedingSibling}, signals[0])
	assert.Equal(t, types.TextSignal{Text: "phone", Confidence: 0.5, Source: types.SourcePrecedingSibling}, signals[1])
	assert.Equal(t, types.TextSignal{Text: "m", Confidence: 0.5, Source: types.SourceNameAttribute}, signals[2])
}

func TestAssociatedText_SiblingFilters(t *testing.T) {
	long := make([]byte, 120)
	for i := range long {
		long[i] = 'a'
	}
	signals := signalsFor(t, `<div><b>Bold label</b><span>`+string(long)+`</span><input></div>`, "input")
	assert.Empty(t, signals)
}

func TestAssociatedText_CapsAtFive(t *testing.T) {
	signals := signalsFor(t, `<label for="a1">Alpha</label>
		<label>Beta <input id="a1" name="gamma" title="delta" placeholder="epsilon" aria-label="zeta"></label>`, "input")

	require.Len(t, signals, MaxSignals)
	assert.Equal(t, "alpha", signals[0].Text)
	for i := 1; i < len(signals); i++ {
		assert.GreaterOrEqual(t, signals[i-1].Confidence, signals[i].Confidence)
	}
}

func TestAssociatedText_DetachedElementKeepsAttributes(t *testing.T) {
	d, err := dom.ParseString(`<form><input name="city_name"></form>`)
	require.NoError(t, err)
	el := d.First("input")
	el.Remove()

	signals := AssociatedText(d, el)
	require.Len(t, signals, 1)
	assert.Equal(t, "city name", signals[0].Text)
}
