package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/crunchyorder/internal/catalog"
	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

// Compile-time interface check.
var _ TextExtractor = (*PatternExtractor)(nil)

// form selects one lexical form of a candidate item.
type form int

const (
	formSpoken  form = iota // identifier with separators as spaces
	formDisplay             // catalog display name
)

// matchRule is one "<number> <form>" or "<form> <number>" pattern.
type matchRule struct {
	name    string
	form    form
	leading bool // number comes before the form
}

// matchRules are evaluated in order; the first hit wins for an item.
var matchRules = []matchRule{
	{"spoken-leading", formSpoken, true},
	{"spoken-trailing", formSpoken, false},
	{"display-leading", formDisplay, true},
	{"display-trailing", formDisplay, false},
}

// PatternExtractor matches quantities next to item names.
type PatternExtractor struct {
	names Namer
	log   *logger.Logger
}

// NewPatternExtractor creates a deterministic extractor that resolves
// display names through names.
func NewPatternExtractor(names Namer, log *logger.Logger) *PatternExtractor {
	return &PatternExtractor{names: names, log: log}
}

// Extract implements TextExtractor. Results follow candidate order.
func (p *PatternExtractor) Extract(_ context.Context, text string, candidates []string) domain.Intents {
	var out domain.Intents
	for _, id := range candidates {
		forms := [...]string{
			formSpoken:  catalog.SpokenForm(id),
			formDisplay: p.names.Name(id),
		}
		if in, rule, ok := matchItem(text, id, forms); ok {
			p.log.Debug("pattern: %s matched %s (qty=%d)", rule, id, in.Quantity)
			out = append(out, in)
		}
	}
	return out
}

// matchItem applies matchRules to one candidate, then falls back to a plain
// mention check. The returned rule name is "mention" for a bare mention.
func matchItem(text, id string, forms [2]string) (domain.Intent, string, bool) {
	for _, r := range matchRules {
		f := forms[r.form]
		if f == "" {
			continue
		}
		if n, ok := findQuantity(text, f, r.leading); ok {
			return domain.Intent{ItemID: id, Quantity: n}, r.name, true
		}
	}

	lower := strings.ToLower(text)
	for _, f := range forms {
		if f != "" && strings.Contains(lower, strings.ToLower(f)) {
			return domain.Intent{ItemID: id, Quantity: domain.QuantityUnknown}, "mention", true
		}
	}
	return domain.Intent{}, "", false
}

// findQuantity searches text for a number directly before (leading) or
// after f. A zero or out-of-range number counts as a match with an unknown
// quantity so the user is asked instead.
func findQuantity(text, f string, leading bool) (int, bool) {
	quoted := regexp.QuoteMeta(f)
	var expr string
	if leading {
		expr = `(?i)(\d+)\s+` + quoted
	} else {
		expr = `(?i)` + quoted + `\s+(\d+)`
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return 0, false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return domain.QuantityUnknown, true
	}
	return n, true
}
