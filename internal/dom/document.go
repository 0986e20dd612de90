// Package dom provides an in-memory page backed by a parsed HTML tree.
// Form state (values, selections, checked flags) lives in the tree itself, so
// Render returns the page as it looks after a fill.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/jonathan/job-autofill/internal/page"
)

// Document is a parsed HTML page implementing page.Document.
type Document struct {
	mu      sync.Mutex
	doc     *goquery.Document
	url     string
	nodes   map[*html.Node]*Element
	focused *Element
	timers  map[*Element]*highlight

	noConstructor bool
	noLegacy      bool
}

// Option configures a Document.
type Option func(*Document)

// WithURL sets the address reported by URL.
func WithURL(u string) Option {
	return func(d *Document) { d.url = u }
}

// WithoutEventConstructor makes the generic event constructor fail, as in
// environments that only support legacy event creation.
func WithoutEventConstructor() Option {
	return func(d *Document) { d.noConstructor = true }
}

// WithoutLegacyEvents makes createEvent/initEvent fail.
func WithoutLegacyEvents() Option {
	return func(d *Document) { d.noLegacy = true }
}

// Parse reads an HTML page.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	d := &Document{
		doc:    gq,
		nodes:  make(map[*html.Node]*Element),
		timers: make(map[*Element]*highlight),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// ParseString parses an HTML string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// URL returns the page address, if one was supplied.
func (d *Document) URL() string { return d.url }

// Title returns the text of the first title element.
func (d *Document) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// QuerySelectorAll returns the elements matching selector in document order.
func (d *Document) QuerySelectorAll(selector string) ([]page.Element, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var out []page.Element
	d.doc.FindMatcher(sel).Each(func(_ int, s *goquery.Selection) {
		out = append(out, d.wrapLocked(s.Nodes[0]))
	})
	return out, nil
}

// Find is QuerySelectorAll returning concrete elements; it panics on an invalid selector.
func (d *Document) Find(selector string) []*Element {
	els, err := d.QuerySelectorAll(selector)
	if err != nil {
		panic(err)
	}
	out := make([]*Element, 0, len(els))
	for _, el := range els {
		out = append(out, el.(*Element))
	}
	return out
}

// First returns the first element matching selector, or nil.
func (d *Document) First(selector string) *Element {
	els := d.Find(selector)
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

// LabelText returns the text of the label whose for attribute equals id.
func (d *Document) LabelText(id string) (string, bool, error) {
	if id == "" {
		return "", false, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var text string
	found := false
	d.doc.Find("label").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr("for"); ok && v == id {
			text = textContent(s.Nodes[0])
			found = true
			return false
		}
		return true
	})
	return text, found, nil
}

// ActiveElement returns the element that last received focus.
func (d *Document) ActiveElement() *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.focused
}

// Render serializes the current tree, including any filled values.
func (d *Document) Render() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var buf bytes.Buffer
	for _, n := range d.doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("failed to render HTML: %w", err)
		}
	}
	return buf.String(), nil
}

// ClearHighlights reverts every pending highlight immediately.
func (d *Document) ClearHighlights() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for el, h := range d.timers {
		h.timer.Stop()
		el.revertLocked(h)
		delete(d.timers, el)
	}
}

func (d *Document) wrapLocked(n *html.Node) *Element {
	if el, ok := d.nodes[n]; ok {
		return el
	}
	el := &Element{
		doc:       d,
		node:      n,
		key:       uuid.NewString(),
		listeners: make(map[string][]func(Event)),
	}
	d.nodes[n] = el
	return el
}

func (d *Document) attachedLocked(n *html.Node) bool {
	root := d.doc.Nodes[0]
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

func (d *Document) after(dur time.Duration, fn func()) *time.Timer {
	return time.AfterFunc(dur, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		fn()
	})
}
