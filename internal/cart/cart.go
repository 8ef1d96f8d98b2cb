// Package cart holds the session's running order.
package cart

import (
	"github.com/hammamikhairi/crunchyorder/internal/domain"
)

// Pricer resolves names and unit prices. *catalog.Index satisfies it.
type Pricer interface {
	Name(id string) string
	Price(id string) int
}

// Item is one cart entry.
type Item struct {
	ItemID   string
	Quantity int
}

// Line is an itemized receipt row.
type Line struct {
	ItemID    string
	Name      string
	Quantity  int
	UnitPrice int
	Total     int
}

// Cart accumulates quantities per item. Iteration follows the order in
// which items were first added. Quantities are always positive.
// A Cart is owned by a single dialog and is not safe for concurrent use.
type Cart struct {
	qty   map[string]int
	order []string
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{qty: make(map[string]int)}
}

// Merge adds every resolved intent to the cart. Unresolved intents are
// ignored.
func (c *Cart) Merge(intents domain.Intents) {
	for _, in := range intents {
		if !in.Resolved() {
			continue
		}
		c.Add(in.ItemID, in.Quantity)
	}
}

// Add increases itemID by n. Non-positive n is a no-op.
func (c *Cart) Add(itemID string, n int) {
	if n <= 0 {
		return
	}
	if _, ok := c.qty[itemID]; !ok {
		c.order = append(c.order, itemID)
	}
	c.qty[itemID] += n
}

// Quantity returns the current count for itemID (0 when absent).
func (c *Cart) Quantity(itemID string) int { return c.qty[itemID] }

// Len returns the number of distinct items.
func (c *Cart) Len() int { return len(c.order) }

// Units returns the total number of units across all items.
func (c *Cart) Units() int {
	n := 0
	for _, q := range c.qty {
		n += q
	}
	return n
}

// Empty reports whether nothing has been added.
func (c *Cart) Empty() bool { return len(c.order) == 0 }

// Items returns the entries in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, Item{ItemID: id, Quantity: c.qty[id]})
	}
	return out
}

// Total sums price × quantity; unknown items are priced at 0.
func (c *Cart) Total(p Pricer) int {
	total := 0
	for _, id := range c.order {
		total += p.Price(id) * c.qty[id]
	}
	return total
}

// Lines returns the itemized receipt rows in insertion order.
func (c *Cart) Lines(p Pricer) []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		q := c.qty[id]
		price := p.Price(id)
		out = append(out, Line{
			ItemID:    id,
			Name:      p.Name(id),
			Quantity:  q,
			UnitPrice: price,
			Total:     price * q,
		})
	}
	return out
}
