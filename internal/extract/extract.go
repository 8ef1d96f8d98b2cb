// Package extract turns free text into item/quantity intents.
//
// Extraction is layered: a deterministic [PatternExtractor] runs first and
// a model-backed [ModelExtractor] is consulted only when it finds nothing.
// [FallbackExtractor] composes the two.
package extract

import (
	"context"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
)

// TextExtractor finds which candidate items a text names and, where it
// can, how many of each. Implementations never fail: anything they cannot
// make sense of is simply left out of the result.
type TextExtractor interface {
	Extract(ctx context.Context, text string, candidates []string) domain.Intents
}

// Namer resolves an item identifier to its display name.
type Namer interface {
	Name(id string) string
}

// Compile-time interface check.
var _ TextExtractor = (*FallbackExtractor)(nil)

// FallbackExtractor tries Primary and only asks Secondary when Primary
// returned nothing. A nil Secondary disables the fallback.
type FallbackExtractor struct {
	Primary   TextExtractor
	Secondary TextExtractor
	// OnResult, if set, is told which stage produced the result:
	// "pattern", "model" or "none".
	OnResult func(stage string)
}

// Extract implements TextExtractor.
func (f *FallbackExtractor) Extract(ctx context.Context, text string, candidates []string) domain.Intents {
	if got := f.Primary.Extract(ctx, text, candidates); len(got) > 0 {
		f.report("pattern")
		return got
	}
	if f.Secondary == nil {
		f.report("none")
		return nil
	}
	got := f.Secondary.Extract(ctx, text, candidates)
	if len(got) > 0 {
		f.report("model")
	} else {
		f.report("none")
	}
	return got
}

func (f *FallbackExtractor) report(stage string) {
	if f.OnResult != nil {
		f.OnResult(stage)
	}
}
