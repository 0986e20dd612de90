package dom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-autofill/internal/page"
)

const formHTML = `
<html>
	<head><title>Apply Now</title></head>
	<body>
		<form id="apply">
			<label for="fname">First Name *</label>
			<input id="fname" name="first_name" type="text">
			<label>Email <input name="email" type="email" value="old@example.com"></label>
			<span>Note</span><div>About</div><textarea name="about">hi</textarea>
			<select name="state">
				<option value="">Pick</option>
				<optgroup label="West"><option value="CA">California</option></optgroup>
				<option>NY</option>
			</select>
			<input type="radio" name="g" value="a" checked>
			<input type="radio" name="g" value="b">
			<div contenteditable="true">draft</div>
		</form>
	</body>
</html>`

func parse(t *testing.T, opts ...Option) *Document {
	t.Helper()
	d, err := ParseString(formHTML, opts...)
	require.NoError(t, err)
	return d
}

func TestQuerySelectorAll_StableIdentity(t *testing.T) {
	d := parse(t)

	a, err := d.QuerySelectorAll("input")
	require.NoError(t, err)
	b, err := d.QuerySelectorAll("input[name]")
	require.NoError(t, err)

	require.NotEmpty(t, a)
	assert.Equal(t, a[0].Key(), b[0].Key())
	assert.Equal(t, "input", a[0].TagName())
}

func TestQuerySelectorAll_InvalidSelector(t *testing.T) {
	d := parse(t)
	_, err := d.QuerySelectorAll("input[")
	assert.Error(t, err)
}

func TestLabelText(t *testing.T) {
	d := parse(t)

	text, ok, err := d.LabelText("fname")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "First Name *", text)

	_, ok, err = d.LabelText("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Apply Now", d.Title())
}

func TestClosestLabelAndSiblings(t *testing.T) {
	d := parse(t)

	email := d.First(`input[name="email"]`)
	text, ok, err := email.ClosestLabelText()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, text, "Email")

	area := d.First("textarea")
	sibs, err := area.PreviousSiblings(3)
	require.NoError(t, err)
	require.Len(t, sibs, 3)
	assert.Equal(t, page.Sibling{Tag: "div", Text: "About"}, sibs[0])
	assert.Equal(t, page.Sibling{Tag: "span", Text: "Note"}, sibs[1])
	assert.Equal(t, "label", sibs[2].Tag)
}

func TestValue_PerTag(t *testing.T) {
	d := parse(t)

	v, err := d.First(`input[name="email"]`).Value()
	require.NoError(t, err)
	assert.Equal(t, "old@example.com", v)

	v, err = d.First("textarea").Value()
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	v, err = d.First("select").Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestSelect_OptionsAndSelection(t *testing.T) {
	d := parse(t)
	sel := d.First("select")

	opts, err := sel.Options()
	require.NoError(t, err)
	require.Len(t, opts, 3)
	assert.Equal(t, page.Option{Index: 1, Value: "CA", Text: "California"}, opts[1])
	assert.Equal(t, "NY", opts[2].Value)

	require.NoError(t, sel.SelectIndex(2))
	assert.Equal(t, 2, sel.SelectedIndex())
	v, _ := sel.Value()
	assert.Equal(t, "NY", v)
	assert.Error(t, sel.SelectIndex(7))
}

func TestSetValue_InterceptedButNativeWins(t *testing.T) {
	d := parse(t)
	in := d.First("#fname")

	in.InterceptAssignment(func(string) bool { return false })
	require.NoError(t, in.SetValue("Ann"))
	v, _ := in.Value()
	assert.Equal(t, "", v, "plain assignment should be swallowed")

	require.NoError(t, in.SetNativeValue("Ann"))
	v, _ = in.Value()
	assert.Equal(t, "Ann", v)

	out, err := d.Render()
	require.NoError(t, err)
	assert.Contains(t, out, `value="Ann"`)
}

func TestSetChecked_RadioGroup(t *testing.T) {
	d := parse(t)
	radios := d.Find(`input[type="radio"]`)
	require.Len(t, radios, 2)

	require.NoError(t, radios[1].SetChecked(true))
	first, _ := radios[0].Checked()
	second, _ := radios[1].Checked()
	assert.False(t, first)
	assert.True(t, second)
}

func TestComputedStyle_Inheritance(t *testing.T) {
	d, err := ParseString(`<div style="display:none"><input id="a"></div>
		<div style="visibility: hidden"><input id="b"></div>
		<input id="c" style="opacity: 0">
		<input id="d" hidden>
		<input id="e" style="width:0;height:0">
		<input id="f" style="height:0">`)
	require.NoError(t, err)

	style := func(id string) page.Style {
		s, err := d.First("#" + id).ComputedStyle()
		require.NoError(t, err)
		return s
	}
	box := func(id string) page.Rect {
		r, err := d.First("#" + id).BoundingBox()
		require.NoError(t, err)
		return r
	}

	assert.Equal(t, "none", style("a").Display)
	assert.Equal(t, "hidden", style("b").Visibility)
	assert.Equal(t, "0", style("c").Opacity)
	assert.Equal(t, "none", style("d").Display)
	assert.Equal(t, page.Rect{}, box("a"))
	assert.Equal(t, page.Rect{}, box("e"))
	assert.Equal(t, page.Rect{Width: 150, Height: 0}, box("f"))
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  map[string]string
	}{
		{"empty", "  ", map[string]string{}},
		{"unterminated last declaration", "Display: None; width:10px", map[string]string{"display": "none", "width": "10px"}},
		{"important flag dropped", "visibility: hidden !important;", map[string]string{"visibility": "hidden"}},
		{"colon inside value", "background: url(a:b)", map[string]string{"background": "url(a:b)"}},
		{"malformed keeps earlier", "opacity: 0; ; color: red", map[string]string{"opacity": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseStyle(tt.style))
		})
	}
}

func TestDetachedElement(t *testing.T) {
	d := parse(t)
	in := d.First("#fname")
	in.Remove()

	_, err := in.ComputedStyle()
	assert.ErrorIs(t, err, ErrDetached)
	_, err = in.BoundingBox()
	assert.ErrorIs(t, err, ErrDetached)
}

func TestDispatchEvent_BubblesAndFallbacks(t *testing.T) {
	d := parse(t, WithoutEventConstructor())
	in := d.First("#fname")
	form := d.First("form")

	var seen []string
	form.AddEventListener("change", func(e Event) {
		seen = append(seen, e.Type)
		assert.True(t, e.Bubbles)
		assert.Same(t, in, e.Target)
	})

	assert.ErrorIs(t, in.DispatchEvent("change", page.EventConstructor), ErrEventUnsupported)
	require.NoError(t, in.DispatchEvent("change", page.EventLegacy))
	assert.Equal(t, []string{"change"}, seen)
}

func TestHighlight_RevertsAfterDuration(t *testing.T) {
	d := parse(t)
	in := d.First("#fname")

	require.NoError(t, in.Highlight("firstName", page.HighlightStyle{Border: "2px solid #27ae60", Background: "#e8f5e8"}, 20*time.Millisecond))
	label, ok := in.Highlighted()
	assert.True(t, ok)
	assert.Equal(t, "firstName", label)

	assert.Eventually(t, func() bool {
		_, ok := in.Highlighted()
		_, styled := in.Attr("style")
		return !ok && !styled
	}, time.Second, 10*time.Millisecond)
}

func TestClearHighlights(t *testing.T) {
	d := parse(t)
	in := d.First("#fname")
	require.NoError(t, in.Highlight("x", page.HighlightStyle{Border: "1px", Background: "red"}, time.Hour))

	d.ClearHighlights()
	_, ok := in.Highlighted()
	assert.False(t, ok)
}

func TestContentEditable(t *testing.T) {
	d := parse(t)
	div := d.First(`[contenteditable="true"]`)
	assert.True(t, div.ContentEditable())
	assert.False(t, d.First("#fname").ContentEditable())

	require.NoError(t, div.SetTextContent("Hello"))
	assert.Equal(t, "Hello", div.TextContent())
}
