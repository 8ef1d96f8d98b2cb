package extract

import (
	"context"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

// Compile-time interface check.
var _ TextExtractor = (*ModelExtractor)(nil)

// QuantityModel is a generative backend that maps text to item counts.
// Its output is untrusted.
type QuantityModel interface {
	ExtractQuantities(ctx context.Context, text string, allowed []string) (map[string]int, error)
}

// ModelExtractor asks a QuantityModel and keeps only answers that name an
// allowed item with a positive count.
type ModelExtractor struct {
	model QuantityModel
	log   *logger.Logger
}

// NewModelExtractor wraps model as a TextExtractor.
func NewModelExtractor(model QuantityModel, log *logger.Logger) *ModelExtractor {
	return &ModelExtractor{model: model, log: log}
}

// Extract implements TextExtractor. Errors are logged and yield nil.
func (m *ModelExtractor) Extract(ctx context.Context, text string, candidates []string) domain.Intents {
	if len(candidates) == 0 {
		return nil
	}

	got, err := m.model.ExtractQuantities(ctx, text, candidates)
	if err != nil {
		m.log.Warn("model extraction failed: %v", err)
		return nil
	}

	var out domain.Intents
	for _, id := range candidates {
		n, ok := got[id]
		if !ok {
			continue
		}
		if n <= 0 {
			m.log.Debug("model: dropping %s with quantity %d", id, n)
			continue
		}
		out = append(out, domain.Intent{ItemID: id, Quantity: n})
	}
	if len(out) < len(got) {
		m.log.Debug("model: kept %d of %d key(s)", len(out), len(got))
	}
	return out
}
