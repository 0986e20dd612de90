package browser

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/job-autofill/internal/page"
)

// Page is an open tab. It implements page.Document; its elements implement
// every write capability the fill strategies use.
type Page struct {
	ctx     context.Context
	cancel  func()
	url     string
	title   string
	verbose bool
}

// URL returns the location after navigation and redirects.
func (p *Page) URL() string { return p.url }

// Title returns the document title at load time.
func (p *Page) Title() string { return p.title }

// Close closes the tab.
func (p *Page) Close() {
	p.cancel()
}

// HTML returns the current serialized document.
func (p *Page) HTML() (string, error) {
	var html string
	if err := chromedp.Run(p.ctx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", &BrowserError{URL: p.url, Message: "failed to read HTML", Cause: err}
	}
	return html, nil
}

func (p *Page) eval(script string, out any) error {
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(script, out)); err != nil {
		if p.verbose {
			log.Printf("[BROWSER] script failed: %v", err)
		}
		return &BrowserError{URL: p.url, Message: "script failed", Cause: err}
	}
	return nil
}

type descriptor struct {
	Key      string            `json:"key"`
	Tag      string            `json:"tag"`
	Attrs    map[string]string `json:"attrs"`
	Disabled bool              `json:"disabled"`
	ReadOnly bool              `json:"readOnly"`
	Editable bool              `json:"editable"`
}

// QuerySelectorAll returns the matching elements in document order.
func (p *Page) QuerySelectorAll(selector string) ([]page.Element, error) {
	var found []descriptor
	if err := p.eval(querySelectorAllJS(selector), &found); err != nil {
		return nil, err
	}
	out := make([]page.Element, 0, len(found))
	for _, d := range found {
		out = append(out, &Element{page: p, desc: d})
	}
	return out, nil
}

type textResult struct {
	Found bool   `json:"found"`
	Text  string `json:"text"`
}

// LabelText returns the text of the label targeting id.
func (p *Page) LabelText(id string) (string, bool, error) {
	var r textResult
	if err := p.eval(labelTextJS(id), &r); err != nil {
		return "", false, err
	}
	return r.Text, r.Found, nil
}

// Element is a handle to an element in a live tab. Attributes and flags are
// captured when the element is queried; everything else is read live.
type Element struct {
	page *Page
	desc descriptor
}

func (e *Element) call(body string, out any) error {
	return e.page.eval(elementJS(e.desc.Key, body), out)
}

func (e *Element) Key() string     { return e.desc.Key }
func (e *Element) TagName() string { return e.desc.Tag }

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.desc.Attrs[name]
	return v, ok
}

func (e *Element) Disabled() bool        { return e.desc.Disabled }
func (e *Element) ReadOnly() bool        { return e.desc.ReadOnly }
func (e *Element) ContentEditable() bool { return e.desc.Editable }

func (e *Element) ComputedStyle() (page.Style, error) {
	var s page.Style
	var raw struct {
		Display    string `json:"display"`
		Visibility string `json:"visibility"`
		Opacity    string `json:"opacity"`
	}
	if err := e.call(computedStyleBody, &raw); err != nil {
		return s, err
	}
	return page.Style{Display: raw.Display, Visibility: raw.Visibility, Opacity: raw.Opacity}, nil
}

func (e *Element) BoundingBox() (page.Rect, error) {
	var raw struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := e.call(boundingBoxBody, &raw); err != nil {
		return page.Rect{}, err
	}
	return page.Rect{Width: raw.Width, Height: raw.Height}, nil
}

func (e *Element) ClosestLabelText() (string, bool, error) {
	var r textResult
	if err := e.call(closestLabelBody, &r); err != nil {
		return "", false, err
	}
	return r.Text, r.Found, nil
}

func (e *Element) PreviousSiblings(limit int) ([]page.Sibling, error) {
	var raw []struct {
		Tag  string `json:"tag"`
		Text string `json:"text"`
	}
	if err := e.call(previousSiblingsBody(limit), &raw); err != nil {
		return nil, err
	}
	out := make([]page.Sibling, 0, len(raw))
	for _, s := range raw {
		out = append(out, page.Sibling{Tag: s.Tag, Text: s.Text})
	}
	return out, nil
}

func (e *Element) Value() (string, error) {
	var v string
	err := e.call(valueBody, &v)
	return v, err
}

func (e *Element) SetValue(v string) error {
	var ok bool
	return e.call(setValueBody(v), &ok)
}

func (e *Element) SetNativeValue(v string) error {
	var ok bool
	return e.call(nativeSetterBody(v), &ok)
}

func (e *Element) Options() ([]page.Option, error) {
	var raw []struct {
		Index int    `json:"index"`
		Value string `json:"value"`
		Text  string `json:"text"`
	}
	if err := e.call(optionsBody, &raw); err != nil {
		return nil, err
	}
	out := make([]page.Option, 0, len(raw))
	for _, o := range raw {
		out = append(out, page.Option{Index: o.Index, Value: o.Value, Text: o.Text})
	}
	return out, nil
}

func (e *Element) SelectIndex(i int) error {
	var ok bool
	return e.call(selectIndexBody(i), &ok)
}

func (e *Element) Checked() (bool, error) {
	var checked bool
	err := e.call(checkedBody, &checked)
	return checked, err
}

func (e *Element) SetChecked(checked bool) error {
	var ok bool
	return e.call(setCheckedBody(checked), &ok)
}

func (e *Element) SetTextContent(text string) error {
	var ok bool
	return e.call(setTextContentBody(text), &ok)
}

func (e *Element) DispatchEvent(name string, how page.EventConstruction) error {
	body := dispatchConstructorBody(name)
	if how == page.EventLegacy {
		body = dispatchLegacyBody(name)
	}
	var ok bool
	return e.call(body, &ok)
}

func (e *Element) Focus() error {
	var ok bool
	return e.call(focusBody, &ok)
}

// Highlight decorates the element; the revert runs on the page's own timer.
func (e *Element) Highlight(label string, style page.HighlightStyle, d time.Duration) error {
	var ok bool
	return e.call(highlightBody(label, highlightStyle(style), d.Milliseconds()), &ok)
}
