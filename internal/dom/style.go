package dom

import (
	"strconv"
	"strings"
	"time"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"

	"github.com/jonathan/job-autofill/internal/page"
)

// ComputedStyle resolves display, visibility and opacity from inline style
// declarations and the hidden attribute along the ancestor chain.
func (e *Element) ComputedStyle() (page.Style, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if !e.doc.attachedLocked(e.node) {
		return page.Style{}, ErrDetached
	}
	return computeStyle(e.node), nil
}

// BoundingBox approximates the rendered size: zero when not displayed,
// inline width/height when given in pixels, otherwise a per-tag default.
func (e *Element) BoundingBox() (page.Rect, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if !e.doc.attachedLocked(e.node) {
		return page.Rect{}, ErrDetached
	}

	if computeStyle(e.node).Display == "none" {
		return page.Rect{}, nil
	}

	w, h := defaultSize(e.node.Data)
	decl := parseStyle(styleAttr(e.node))
	if v, ok := pixels(decl["width"]); ok {
		w = v
	}
	if v, ok := pixels(decl["height"]); ok {
		h = v
	}
	return page.Rect{Width: w, Height: h}, nil
}

type highlight struct {
	timer    *time.Timer
	style    string
	hadStyle bool
}

// Highlight decorates the element and schedules the revert after d.
func (e *Element) Highlight(label string, style page.HighlightStyle, d time.Duration) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if !e.doc.attachedLocked(e.node) {
		return ErrDetached
	}

	if prev, ok := e.doc.timers[e]; ok {
		prev.timer.Stop()
		e.revertLocked(prev)
	}

	orig, had := attr(e.node, "style")
	h := &highlight{style: orig, hadStyle: had}

	decl := strings.TrimSpace(orig)
	if decl != "" && !strings.HasSuffix(decl, ";") {
		decl += ";"
	}
	decl += " border: " + style.Border + "; background-color: " + style.Background + ";"
	if style.BoxShadow != "" {
		decl += " box-shadow: " + style.BoxShadow + ";"
	}
	setAttr(e.node, "style", strings.TrimSpace(decl))
	setAttr(e.node, "data-autofill-label", label)

	h.timer = e.doc.after(d, func() {
		if cur, ok := e.doc.timers[e]; ok && cur == h {
			e.revertLocked(h)
			delete(e.doc.timers, e)
		}
	})
	e.doc.timers[e] = h
	return nil
}

// Highlighted returns the label of an active highlight.
func (e *Element) Highlighted() (string, bool) {
	return e.Attr("data-autofill-label")
}

func (e *Element) revertLocked(h *highlight) {
	if h.hadStyle {
		setAttr(e.node, "style", h.style)
	} else {
		removeAttr(e.node, "style")
	}
	removeAttr(e.node, "data-autofill-label")
}

func computeStyle(n *html.Node) page.Style {
	st := page.Style{Display: "inline", Visibility: "visible", Opacity: "1"}
	visibilitySet := false

	for p := n; p != nil && p.Type == html.ElementNode; p = p.Parent {
		decl := parseStyle(styleAttr(p))
		if _, hidden := attr(p, "hidden"); hidden {
			st.Display = "none"
		}
		if v, ok := decl["display"]; ok {
			if v == "none" {
				st.Display = "none"
			} else if p == n && st.Display != "none" {
				st.Display = v
			}
		}
		if v, ok := decl["visibility"]; ok && !visibilitySet {
			st.Visibility = v
			visibilitySet = true
		}
		if v, ok := decl["opacity"]; ok {
			if p == n {
				st.Opacity = v
			} else if isZero(v) {
				st.Opacity = "0"
			}
		}
	}
	if isZero(st.Opacity) {
		st.Opacity = "0"
	}
	return st
}

func styleAttr(n *html.Node) string {
	v, _ := attr(n, "style")
	return v
}

// parseStyle reads inline declarations into lowercase property/value pairs.
// Parsing stops at the first malformed declaration; earlier ones are kept.
func parseStyle(s string) map[string]string {
	out := make(map[string]string)
	s = strings.TrimSpace(s)
	if s == "" {
		return out
	}
	// The last declaration only gets its value once terminated.
	if !strings.HasSuffix(s, ";") {
		s += ";"
	}
	decls, _ := parser.NewParser(s).ParseDeclarations()
	for _, d := range decls {
		if d.Property == "" {
			continue
		}
		out[strings.ToLower(d.Property)] = strings.ToLower(d.Value)
	}
	return out
}

func pixels(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isZero(v string) bool {
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && f == 0
}

func defaultSize(tag string) (float64, float64) {
	switch tag {
	case "input", "select":
		return 150, 20
	case "textarea":
		return 150, 40
	default:
		return 100, 18
	}
}
