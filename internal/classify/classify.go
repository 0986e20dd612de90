package classify

import (
	"strings"

	"github.com/jonathan/job-autofill/internal/page"
	"github.com/jonathan/job-autofill/internal/types"
)

// MinScore is the lowest best score that still yields a category.
const MinScore = 30

var (
	emailKeywords = []string{"email", "e-mail", "mail", "@"}
	nameKeywords  = []string{"name", "first", "last", "full"}
)

// Classify returns the best-guess category of el given its gathered signals.
// It reads only el's current state, so two elements can share a category.
func Classify(el page.Element, signals []types.TextSignal) types.Category {
	switch page.InputType(el) {
	case "email":
		return types.CategoryEmail
	case "tel":
		return types.CategoryPhone
	}

	identifier := Identifier(el, signals)

	emailHits := countContained(identifier, emailKeywords)
	nameHits := countContained(identifier, nameKeywords)
	if emailHits > 0 && (nameHits == 0 || emailHits > nameHits) {
		return types.CategoryEmail
	}

	best, score := Score(identifier)
	if score >= MinScore {
		return best
	}
	return types.CategoryUnknown
}

// Identifier joins the element's name, id, placeholder, class list and signal
// texts into the lowercase string the rules are matched against.
func Identifier(el page.Element, signals []types.TextSignal) string {
	parts := []string{
		page.AttrOrEmpty(el, "name"),
		page.AttrOrEmpty(el, "id"),
		page.AttrOrEmpty(el, "placeholder"),
		page.AttrOrEmpty(el, "class"),
	}
	for _, s := range signals {
		parts = append(parts, s.Text)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Score runs the generic pattern scoring over identifier and returns the
// best category with its score. A full pattern match scores the rule's
// priority; otherwise a pattern scores the fraction of its words present.
func Score(identifier string) (types.Category, float64) {
	best := types.CategoryUnknown
	bestScore := 0.0

	for _, rule := range Rules {
		score := 0.0
		for _, pattern := range rule.Patterns {
			if strings.Contains(identifier, pattern) {
				score = float64(rule.Priority)
				break
			}
			words := strings.Split(pattern, " ")
			matched := 0
			for _, w := range words {
				if strings.Contains(identifier, w) {
					matched++
				}
			}
			if matched > 0 {
				score = max(score, float64(matched)/float64(len(words))*float64(rule.Priority))
			}
		}

		if score > bestScore {
			bestScore = score
			best = rule.Category
		}
	}
	return best, bestScore
}

func countContained(s string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(s, k) {
			n++
		}
	}
	return n
}
