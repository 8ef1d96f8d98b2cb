package domain

// Flow is the top-level menu section the user is browsing.
type Flow int

const (
	FlowNone Flow = iota
	FlowPizza
	FlowUltimate
	FlowSides
	FlowDesserts
)

// String returns a human-readable flow name.
func (f Flow) String() string {
	switch f {
	case FlowPizza:
		return "pizza"
	case FlowUltimate:
		return "ultimate"
	case FlowSides:
		return "sides"
	case FlowDesserts:
		return "desserts"
	default:
		return "none"
	}
}

// PizzaCategory narrows the pizza flow.
type PizzaCategory int

const (
	CategoryNone PizzaCategory = iota
	CategoryVeg
	CategoryNonVeg
)

// String returns a human-readable category name.
func (c PizzaCategory) String() string {
	switch c {
	case CategoryVeg:
		return "veg"
	case CategoryNonVeg:
		return "non_veg"
	default:
		return "none"
	}
}

// DialogState is the (flow, category) pair that selects the candidate items.
// Category is only ever set when Flow is FlowPizza.
type DialogState struct {
	Flow     Flow
	Category PizzaCategory
}

// Ready reports whether the state names a concrete candidate set.
func (s DialogState) Ready() bool {
	switch s.Flow {
	case FlowNone:
		return false
	case FlowPizza:
		return s.Category != CategoryNone
	default:
		return true
	}
}
