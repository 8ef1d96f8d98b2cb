// Package catalog provides the read-only item index and the per-flow
// candidate item groups.
package catalog

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

// Index maps item identifiers to display names and prices. It is built
// once and never mutated, so it is safe to share.
type Index struct {
	items map[string]domain.MenuItem
	order []string
}

// NewIndex builds an index from a menu document. A nil menu yields an
// empty index. Later duplicates of an identifier are ignored.
func NewIndex(menu *domain.Menu) *Index {
	idx := &Index{items: make(map[string]domain.MenuItem)}
	if menu == nil {
		return idx
	}
	for _, cat := range menu.Categories {
		for _, it := range cat.Items {
			if _, dup := idx.items[it.ID]; dup {
				continue
			}
			idx.items[it.ID] = it
			idx.order = append(idx.order, it.ID)
		}
	}
	return idx
}

// Load fetches the menu and builds an index from it. A failed fetch is
// logged and degrades to an empty index.
func Load(ctx context.Context, src domain.CatalogSource, log *logger.Logger) *Index {
	menu, err := src.FetchMenu(ctx)
	if err != nil {
		log.Error("menu load failed, continuing with empty catalog: %v", err)
		return NewIndex(nil)
	}
	idx := NewIndex(menu)
	log.Info("catalog loaded: %d items in %d categories", idx.Len(), len(menu.Categories))
	return idx
}

// Len returns the number of indexed items.
func (x *Index) Len() int { return len(x.items) }

// IDs returns every indexed identifier in menu order.
func (x *Index) IDs() []string {
	out := make([]string, len(x.order))
	copy(out, x.order)
	return out
}

// Lookup returns the catalog entry for id.
func (x *Index) Lookup(id string) (domain.MenuItem, bool) {
	it, ok := x.items[id]
	return it, ok
}

// Price returns the unit price for id, or 0 when the item is unknown.
func (x *Index) Price(id string) int {
	return x.items[id].Price
}

// Name returns the display name for id. Unknown items get a name derived
// from the identifier.
func (x *Index) Name(id string) string {
	if it, ok := x.items[id]; ok && it.Name != "" {
		return it.Name
	}
	return DeriveName(id)
}

// Names maps ids to display names, preserving order.
func (x *Index) Names(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = x.Name(id)
	}
	return out
}

// SpokenForm returns the identifier with separators replaced by spaces.
func SpokenForm(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}

// DeriveName title-cases the spoken form of an identifier:
// "chicken_tikka_uc" becomes "Chicken Tikka Uc".
func DeriveName(id string) string {
	// Casers carry state, so each call gets its own.
	return cases.Title(language.English).String(SpokenForm(id))
}
