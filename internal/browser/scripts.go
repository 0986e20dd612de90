package browser

import (
	"encoding/json"
	"fmt"
)

// keyAttr tags every element handed out, so later calls can find it again.
const keyAttr = "data-autofill-key"

// jsValue encodes v as a JavaScript literal.
func jsValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("browser: cannot encode %T: %v", v, err))
	}
	return string(b)
}

// querySelectorAllJS tags each match with a key and returns its descriptor.
func querySelectorAllJS(selector string) string {
	return fmt.Sprintf(`(() => {
	const root = document.documentElement;
	let next = Number(root.getAttribute("data-autofill-seq") || "0");
	const out = [];
	for (const el of document.querySelectorAll(%s)) {
		let key = el.getAttribute(%[2]s);
		if (!key) {
			key = "af-" + (++next);
			el.setAttribute(%[2]s, key);
		}
		const attrs = {};
		for (const a of el.attributes) attrs[a.name] = a.value;
		out.push({
			key: key,
			tag: el.tagName.toLowerCase(),
			attrs: attrs,
			disabled: !!el.disabled,
			readOnly: !!el.readOnly,
			editable: !!el.isContentEditable,
		});
	}
	root.setAttribute("data-autofill-seq", String(next));
	return out;
})()`, jsValue(selector), jsValue(keyAttr))
}

// labelTextJS returns the text of the label whose for attribute is id.
func labelTextJS(id string) string {
	return fmt.Sprintf(`(() => {
	for (const l of document.querySelectorAll("label[for]")) {
		if (l.htmlFor === %s) return {found: true, text: l.textContent || ""};
	}
	return {found: false, text: ""};
})()`, jsValue(id))
}

// elementJS runs body with el bound to the keyed element. The script throws
// when the element is no longer in the document.
func elementJS(key, body string) string {
	selector := fmt.Sprintf(`[%s="%s"]`, keyAttr, key)
	return fmt.Sprintf(`(() => {
	const el = document.querySelector(%s);
	if (!el || !el.isConnected) throw new Error("element detached");
	%s
})()`, jsValue(selector), body)
}

const (
	computedStyleBody = `const cs = getComputedStyle(el);
	return {display: cs.display, visibility: cs.visibility, opacity: cs.opacity};`

	boundingBoxBody = `const r = el.getBoundingClientRect();
	return {width: r.width, height: r.height};`

	closestLabelBody = `const l = el.closest("label");
	return l ? {found: true, text: l.textContent || ""} : {found: false, text: ""};`

	valueBody = `return (typeof el.value === "string") ? el.value : (el.textContent || "");`

	optionsBody = `if (el.tagName !== "SELECT") throw new Error("not a select");
	return Array.from(el.options).map(o => ({index: o.index, value: o.value, text: (o.textContent || "").trim()}));`

	checkedBody = `return !!el.checked;`

	focusBody = `el.focus({preventScroll: true});
	return true;`
)

func previousSiblingsBody(limit int) string {
	return fmt.Sprintf(`const out = [];
	for (let s = el.previousElementSibling; s && out.length < %d; s = s.previousElementSibling) {
		out.push({tag: s.tagName.toLowerCase(), text: s.textContent || ""});
	}
	return out;`, limit)
}

func setValueBody(v string) string {
	return fmt.Sprintf(`el.value = %s;
	return true;`, jsValue(v))
}

// nativeSetterBody calls the prototype's value setter, which framework
// wrappers on the instance cannot intercept.
func nativeSetterBody(v string) string {
	return fmt.Sprintf(`const proto = el instanceof HTMLTextAreaElement ? HTMLTextAreaElement.prototype
		: el instanceof HTMLSelectElement ? HTMLSelectElement.prototype
		: HTMLInputElement.prototype;
	const desc = Object.getOwnPropertyDescriptor(proto, "value");
	if (desc && desc.set && proto.isPrototypeOf(el)) {
		desc.set.call(el, %[1]s);
	} else {
		el.value = %[1]s;
	}
	return true;`, jsValue(v))
}

func selectIndexBody(i int) string {
	return fmt.Sprintf(`if (el.tagName !== "SELECT" || %[1]d < 0 || %[1]d >= el.options.length) throw new Error("no such option");
	el.selectedIndex = %[1]d;
	el.value = el.options[%[1]d].value;
	return true;`, i)
}

func setCheckedBody(checked bool) string {
	return fmt.Sprintf(`el.checked = %t;
	return true;`, checked)
}

func setTextContentBody(text string) string {
	return fmt.Sprintf(`el.textContent = %s;
	return true;`, jsValue(text))
}

func dispatchConstructorBody(name string) string {
	return fmt.Sprintf(`el.dispatchEvent(new Event(%s, {bubbles: true, cancelable: true}));
	return true;`, jsValue(name))
}

func dispatchLegacyBody(name string) string {
	return fmt.Sprintf(`const ev = document.createEvent("Event");
	ev.initEvent(%s, true, true);
	el.dispatchEvent(ev);
	return true;`, jsValue(name))
}

// highlightStyle is the JSON form of page.HighlightStyle handed to the page.
type highlightStyle struct {
	Border     string `json:"border"`
	Background string `json:"background"`
	BoxShadow  string `json:"boxShadow"`
	LabelColor string `json:"labelColor"`
}

// highlightBody decorates el and floats a label above it. The page's own
// timer reverts both after ms milliseconds.
func highlightBody(label string, style highlightStyle, ms int64) string {
	return fmt.Sprintf(`const s = %s;
	const prev = {border: el.style.border, boxShadow: el.style.boxShadow, backgroundColor: el.style.backgroundColor};
	el.style.border = s.border;
	el.style.backgroundColor = s.background;
	if (s.boxShadow) el.style.boxShadow = s.boxShadow;
	const r = el.getBoundingClientRect();
	const tag = document.createElement("div");
	tag.textContent = %s;
	tag.setAttribute("data-autofill-label", "");
	tag.style.cssText = "position:absolute;color:white;padding:4px 8px;font-size:11px;font-weight:bold;border-radius:4px;z-index:1000000;pointer-events:none;font-family:monospace;";
	tag.style.background = s.labelColor;
	tag.style.left = (r.left + window.scrollX) + "px";
	tag.style.top = (r.top + window.scrollY - 22) + "px";
	document.body.appendChild(tag);
	setTimeout(() => {
		el.style.border = prev.border;
		el.style.boxShadow = prev.boxShadow;
		el.style.backgroundColor = prev.backgroundColor;
		tag.remove();
	}, %d);
	return true;`, jsValue(style), jsValue(label), ms)
}
