package dom

import (
	"github.com/jonathan/job-autofill/internal/page"
)

// Event is a synthetic event delivered to listeners.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool
	Legacy     bool
	Target     *Element
}

// AddEventListener registers fn for events of the given type on the element.
func (e *Element) AddEventListener(name string, fn func(Event)) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.listeners[name] = append(e.listeners[name], fn)
}

// DispatchEvent builds a bubbling, cancelable event and delivers it to the
// target and then its ancestors.
func (e *Element) DispatchEvent(name string, how page.EventConstruction) error {
	e.doc.mu.Lock()
	switch {
	case how == page.EventConstructor && e.doc.noConstructor:
		e.doc.mu.Unlock()
		return ErrEventUnsupported
	case how == page.EventLegacy && e.doc.noLegacy:
		e.doc.mu.Unlock()
		return ErrEventUnsupported
	}

	ev := Event{Type: name, Bubbles: true, Cancelable: true, Legacy: how == page.EventLegacy, Target: e}

	var queue []func(Event)
	for n := e.node; n != nil; n = n.Parent {
		if el, ok := e.doc.nodes[n]; ok {
			queue = append(queue, el.listeners[name]...)
		}
	}
	e.doc.mu.Unlock()

	for _, fn := range queue {
		fn(ev)
	}
	return nil
}
