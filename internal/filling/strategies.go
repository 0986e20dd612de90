package filling

import (
	"errors"
	"log"
	"strings"

	"github.com/jonathan/job-autofill/internal/page"
)

var (
	errNoOption    = errors.New("no option matches value")
	errRadioValue  = errors.New("radio value does not match")
	errMismatch    = errors.New("value read back differs from value written")
	errUnsupported = errors.New("element does not support this write")
)

type strategy func(el page.Element, value string) error

func strategyFor(el page.Element) (string, strategy) {
	switch {
	case el.TagName() == "select":
		return "select", selectStrategy
	case page.InputType(el) == "checkbox":
		return "checkbox", checkboxStrategy
	case page.InputType(el) == "radio":
		return "radio", radioStrategy
	case el.ContentEditable():
		return "editable", editableStrategy
	default:
		return "text", textStrategy
	}
}

// selectStrategy picks the first option whose value or text equals value,
// then retries ignoring case.
func selectStrategy(el page.Element, value string) error {
	sel, ok := el.(page.OptionSelector)
	if !ok {
		return errUnsupported
	}
	opts, err := sel.Options()
	if err != nil {
		return err
	}

	idx := -1
	for _, o := range opts {
		if o.Value == value {
			idx = o.Index
			break
		}
	}
	if idx < 0 {
		for _, o := range opts {
			if o.Text == value {
				idx = o.Index
				break
			}
		}
	}
	if idx < 0 {
		for _, o := range opts {
			if strings.EqualFold(o.Value, value) || strings.EqualFold(o.Text, value) {
				idx = o.Index
				break
			}
		}
	}
	if idx < 0 {
		return errNoOption
	}

	if err := sel.SelectIndex(idx); err != nil {
		return err
	}
	fireEvents(el, changeEvents...)
	return nil
}

// checkboxStrategy always succeeds: the box is checked for "true" or "1"
// and cleared for anything else.
func checkboxStrategy(el page.Element, value string) error {
	if c, ok := el.(page.Checkable); ok {
		if err := c.SetChecked(value == "true" || value == "1"); err != nil {
			log.Printf("[FILL] could not set checkbox: %v", err)
		}
	}
	fireEvents(el, changeEvents...)
	return nil
}

// radioStrategy checks the radio only when its own value matches, leaving
// the rest of the group for a later field.
func radioStrategy(el page.Element, value string) error {
	own := page.AttrOrEmpty(el, "value")
	if !strings.EqualFold(own, value) {
		return errRadioValue
	}
	c, ok := el.(page.Checkable)
	if !ok {
		return errUnsupported
	}
	if err := c.SetChecked(true); err != nil {
		return err
	}
	fireEvents(el, changeEvents...)
	return nil
}

func editableStrategy(el page.Element, value string) error {
	ed, ok := el.(page.TextEditable)
	if !ok {
		return errUnsupported
	}
	if err := ed.SetTextContent(value); err != nil {
		return err
	}
	fireEvents(el, changeEvents...)
	return nil
}

// textStrategy clears the field, writes through the native setter so that
// framework-wrapped assignment is bypassed, notifies listeners and verifies
// the value by reading it back.
func textStrategy(el page.Element, value string) error {
	vs, ok := el.(page.ValueSetter)
	if !ok {
		return errUnsupported
	}
	if err := vs.SetValue(""); err != nil {
		return err
	}
	if err := vs.SetNativeValue(value); err != nil {
		return err
	}
	fireEvents(el, changeEvents...)

	got, err := vs.Value()
	if err != nil {
		return err
	}
	if got != value {
		return errMismatch
	}
	return nil
}
