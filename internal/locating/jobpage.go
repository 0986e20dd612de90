package locating

import (
	"strings"

	"github.com/jonathan/job-autofill/internal/page"
)

// jobKeywords mark a URL or title as belonging to a job application.
var jobKeywords = []string{
	"apply", "application", "job", "career", "resume", "position", "hiring",
	"employment", "work", "vacancy", "recruit", "candidate", "analyst",
}

// minJobFormHints is how many application-style inputs make a page count as a job form.
const minJobFormHints = 2

// IsJobPage reports whether doc looks like a job application: either its
// URL or title mentions a job keyword, or it carries at least two
// application-style inputs.
func IsJobPage(doc page.Document) bool {
	url := strings.ToLower(doc.URL())
	title := strings.ToLower(doc.Title())
	for _, k := range jobKeywords {
		if strings.Contains(url, k) || strings.Contains(title, k) {
			return true
		}
	}
	return jobFormHints(doc) >= minJobFormHints
}

func jobFormHints(doc page.Document) int {
	inputs, err := doc.QuerySelectorAll("input")
	if err != nil {
		return 0
	}
	textareas, err := doc.QuerySelectorAll("textarea")
	if err != nil {
		return 0
	}

	nameContains := func(els []page.Element, fragment string) bool {
		for _, el := range els {
			if strings.Contains(strings.ToLower(page.AttrOrEmpty(el, "name")), fragment) {
				return true
			}
		}
		return false
	}
	hasEmailInput := false
	for _, el := range inputs {
		if page.InputType(el) == "email" {
			hasEmailInput = true
			break
		}
	}

	hints := []bool{
		nameContains(inputs, "first"),
		nameContains(inputs, "last"),
		nameContains(inputs, "name"),
		hasEmailInput,
		nameContains(textareas, "cover"),
		nameContains(inputs, "phone"),
	}
	n := 0
	for _, h := range hints {
		if h {
			n++
		}
	}
	return n
}
