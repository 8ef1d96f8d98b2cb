package domain

// QuantityUnknown marks an item the user mentioned without a count.
const QuantityUnknown = 0

// Intent is one item the user asked for in a single turn.
type Intent struct {
	ItemID   string
	Quantity int // QuantityUnknown until resolved
}

// Resolved reports whether the intent carries a usable quantity.
func (i Intent) Resolved() bool { return i.Quantity > 0 }

// Intents is the ordered result of extracting one input line.
// Order follows the candidate set the items were matched against.
type Intents []Intent

// Unresolved returns the indices of intents still missing a quantity.
func (in Intents) Unresolved() []int {
	var idx []int
	for i, it := range in {
		if !it.Resolved() {
			idx = append(idx, i)
		}
	}
	return idx
}
