// Package conversation holds the keyword classifier for menu navigation,
// every user-facing line, and the console notifier.
package conversation

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
)

type flowRule struct {
	match func(string) bool
	flow  domain.Flow
}

type categoryRule struct {
	match func(string) bool
	cat   domain.PizzaCategory
}

// KeywordClassifier maps user input to menu sections with ordered
// substring rules. First match wins, so rule order is the tie-break.
type KeywordClassifier struct {
	exit       *regexp.Regexp
	flows      []flowRule
	categories []categoryRule
}

// NewKeywordClassifier creates the classifier with the fixed rule order.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		exit: regexp.MustCompile(`^(no|exit|quit)$`),
		flows: []flowRule{
			{func(s string) bool { return strings.Contains(s, "pizza") && !strings.Contains(s, "ultimate") }, domain.FlowPizza},
			{func(s string) bool { return strings.Contains(s, "ultimate") || strings.Contains(s, "cheese") }, domain.FlowUltimate},
			{func(s string) bool { return strings.Contains(s, "side") }, domain.FlowSides},
			{func(s string) bool { return strings.Contains(s, "dessert") }, domain.FlowDesserts},
		},
		categories: []categoryRule{
			// "veg" is checked first; "non veg" contains it, hence the guard.
			{func(s string) bool { return strings.Contains(s, "veg") && !strings.Contains(s, "non") }, domain.CategoryVeg},
			{func(s string) bool { return strings.Contains(s, "non") }, domain.CategoryNonVeg},
		},
	}
}

// Normalize trims and lower-cases raw input.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// IsExit reports whether normalized input ends the conversation.
func (k *KeywordClassifier) IsExit(s string) bool {
	return k.exit.MatchString(s)
}

// Flow returns the menu section named in s, or FlowNone.
func (k *KeywordClassifier) Flow(s string) domain.Flow {
	for _, r := range k.flows {
		if r.match(s) {
			return r.flow
		}
	}
	return domain.FlowNone
}

// Category returns the pizza category named in s, or CategoryNone.
func (k *KeywordClassifier) Category(s string) domain.PizzaCategory {
	for _, r := range k.categories {
		if r.match(s) {
			return r.cat
		}
	}
	return domain.CategoryNone
}
