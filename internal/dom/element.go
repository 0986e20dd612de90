package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/jonathan/job-autofill/internal/page"
)

// Element is a node in a Document. It implements page.Element and every
// writer capability; which capabilities make sense depends on the tag.
type Element struct {
	doc       *Document
	node      *html.Node
	key       string
	listeners map[string][]func(Event)
	intercept func(string) bool
}

var (
	_ page.Element        = (*Element)(nil)
	_ page.ValueSetter    = (*Element)(nil)
	_ page.OptionSelector = (*Element)(nil)
	_ page.Checkable      = (*Element)(nil)
	_ page.TextEditable   = (*Element)(nil)
	_ page.EventTarget    = (*Element)(nil)
	_ page.Focuser        = (*Element)(nil)
	_ page.Highlighter    = (*Element)(nil)
)

// Key returns the element's document-unique identity.
func (e *Element) Key() string { return e.key }

// TagName returns the lowercase tag name.
func (e *Element) TagName() string { return e.node.Data }

// Attr returns the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return attr(e.node, name)
}

// Disabled reports the disabled attribute.
func (e *Element) Disabled() bool {
	_, ok := e.Attr("disabled")
	return ok
}

// ReadOnly reports the readonly attribute.
func (e *Element) ReadOnly() bool {
	_, ok := e.Attr("readonly")
	return ok
}

// ContentEditable reports whether the element or an ancestor is editable.
func (e *Element) ContentEditable() bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		v, ok := attr(n, "contenteditable")
		if !ok {
			continue
		}
		switch strings.ToLower(v) {
		case "", "true", "plaintext-only":
			return true
		case "false":
			return false
		}
	}
	return false
}

// ClosestLabelText returns the text of the nearest enclosing label.
func (e *Element) ClosestLabelText() (string, bool, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if !e.doc.attachedLocked(e.node) {
		return "", false, ErrDetached
	}
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == "label" {
			return textContent(n), true, nil
		}
	}
	return "", false, nil
}

// PreviousSiblings returns up to limit preceding element siblings, nearest first.
func (e *Element) PreviousSiblings(limit int) ([]page.Sibling, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if !e.doc.attachedLocked(e.node) {
		return nil, ErrDetached
	}

	var out []page.Sibling
	for n := e.node.PrevSibling; n != nil && len(out) < limit; n = n.PrevSibling {
		if n.Type != html.ElementNode {
			continue
		}
		out = append(out, page.Sibling{Tag: n.Data, Text: textContent(n)})
	}
	return out, nil
}

// Remove detaches the element from the tree.
func (e *Element) Remove() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

// InterceptAssignment installs a hook run on plain value assignment, the way
// reactive frameworks wrap the value property. Returning false swallows the
// assignment. The native setter is never intercepted.
func (e *Element) InterceptAssignment(fn func(v string) bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.intercept = fn
}

// Value returns the current value of an input, textarea, select or editable region.
func (e *Element) Value() (string, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if !e.doc.attachedLocked(e.node) {
		return "", ErrDetached
	}

	switch e.node.Data {
	case "input":
		v, _ := attr(e.node, "value")
		return v, nil
	case "select":
		opts := options(e.node)
		for _, o := range opts {
			if _, ok := attr(o, "selected"); ok {
				return optionValue(o), nil
			}
		}
		if len(opts) > 0 {
			return optionValue(opts[0]), nil
		}
		return "", nil
	default:
		return textContent(e.node), nil
	}
}

// SetValue assigns the value property, subject to any installed interceptor.
func (e *Element) SetValue(v string) error {
	e.doc.mu.Lock()
	hook := e.intercept
	e.doc.mu.Unlock()

	if hook != nil && !hook(v) {
		return nil
	}
	return e.SetNativeValue(v)
}

// SetNativeValue assigns the value bypassing interceptors.
func (e *Element) SetNativeValue(v string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if !e.doc.attachedLocked(e.node) {
		return ErrDetached
	}

	switch e.node.Data {
	case "input":
		setAttr(e.node, "value", v)
	case "textarea":
		replaceText(e.node, v)
	case "select":
		for i, o := range options(e.node) {
			if optionValue(o) == v {
				selectOptionLocked(e.node, i)
				return nil
			}
		}
		return ErrNotSupported
	default:
		return ErrNotSupported
	}
	return nil
}

// Options lists a select element's options.
func (e *Element) Options() ([]page.Option, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.node.Data != "select" {
		return nil, ErrNotSupported
	}
	if !e.doc.attachedLocked(e.node) {
		return nil, ErrDetached
	}

	opts := options(e.node)
	out := make([]page.Option, 0, len(opts))
	for i, o := range opts {
		out = append(out, page.Option{
			Index: i,
			Value: optionValue(o),
			Text:  strings.TrimSpace(textContent(o)),
		})
	}
	return out, nil
}

// SelectIndex marks the i-th option selected and clears the others.
func (e *Element) SelectIndex(i int) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.node.Data != "select" {
		return ErrNotSupported
	}
	if i < 0 || i >= len(options(e.node)) {
		return ErrNotSupported
	}
	selectOptionLocked(e.node, i)
	return nil
}

// SelectedIndex returns the index of the selected option, or -1.
func (e *Element) SelectedIndex() int {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	opts := options(e.node)
	for i, o := range opts {
		if _, ok := attr(o, "selected"); ok {
			return i
		}
	}
	if len(opts) > 0 {
		return 0
	}
	return -1
}

// Checked reports the checked state of a checkbox or radio.
func (e *Element) Checked() (bool, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	_, ok := attr(e.node, "checked")
	return ok, nil
}

// SetChecked sets the checked state. Checking a radio unchecks the other
// radios sharing its name.
func (e *Element) SetChecked(checked bool) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if !e.doc.attachedLocked(e.node) {
		return ErrDetached
	}

	if !checked {
		removeAttr(e.node, "checked")
		return nil
	}

	if t, _ := attr(e.node, "type"); strings.EqualFold(t, "radio") {
		name, _ := attr(e.node, "name")
		for _, n := range e.doc.doc.Find("input").Nodes {
			t, _ := attr(n, "type")
			other, _ := attr(n, "name")
			if n != e.node && strings.EqualFold(t, "radio") && name != "" && other == name {
				removeAttr(n, "checked")
			}
		}
	}
	setAttr(e.node, "checked", "")
	return nil
}

// SetTextContent replaces the element's children with a single text node.
func (e *Element) SetTextContent(text string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if !e.doc.attachedLocked(e.node) {
		return ErrDetached
	}
	replaceText(e.node, text)
	return nil
}

// TextContent returns the concatenated text of the element.
func (e *Element) TextContent() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return textContent(e.node)
}

// Focus makes the element the document's active element.
func (e *Element) Focus() error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if !e.doc.attachedLocked(e.node) {
		return ErrDetached
	}
	e.doc.focused = e
	return nil
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: val})
}

func removeAttr(n *html.Node, name string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func replaceText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func options(sel *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "option":
				out = append(out, c)
			case "optgroup":
				walk(c)
			}
		}
	}
	walk(sel)
	return out
}

func optionValue(o *html.Node) string {
	if v, ok := attr(o, "value"); ok {
		return v
	}
	return strings.TrimSpace(textContent(o))
}

func selectOptionLocked(sel *html.Node, index int) {
	for i, o := range options(sel) {
		if i == index {
			setAttr(o, "selected", "")
		} else {
			removeAttr(o, "selected")
		}
	}
}
