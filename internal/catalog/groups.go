package catalog

import (
	"github.com/hammamikhairi/crunchyorder/internal/domain"
)

// Groups lists the candidate item identifiers offered in each flow.
type Groups struct {
	Veg      []string `yaml:"veg"`
	NonVeg   []string `yaml:"non_veg"`
	Ultimate []string `yaml:"ultimate"`
	Sides    []string `yaml:"sides"`
	Desserts []string `yaml:"desserts"`
}

// DefaultGroups returns the house menu layout.
func DefaultGroups() Groups {
	return Groups{
		Veg:      []string{"margherita", "tandoori_paneer", "veggie_supreme", "mexican_fiesta"},
		NonVeg:   []string{"chicken_tikka", "chicken_supreme", "triple_chicken_feast"},
		Ultimate: []string{"margherita_uc", "chicken_tikka_uc"},
		Sides:    []string{"sprinkled_fries", "chicken_wings"},
		Desserts: []string{"brownie", "choco_volcano"},
	}
}

// WithDefaults fills any empty group from DefaultGroups.
func (g Groups) WithDefaults() Groups {
	def := DefaultGroups()
	if len(g.Veg) == 0 {
		g.Veg = def.Veg
	}
	if len(g.NonVeg) == 0 {
		g.NonVeg = def.NonVeg
	}
	if len(g.Ultimate) == 0 {
		g.Ultimate = def.Ultimate
	}
	if len(g.Sides) == 0 {
		g.Sides = def.Sides
	}
	if len(g.Desserts) == 0 {
		g.Desserts = def.Desserts
	}
	return g
}

// Candidates returns the items valid for the given dialog state. States
// that do not name a concrete set (no flow, or pizza without a category)
// yield nil.
func (g Groups) Candidates(s domain.DialogState) []string {
	switch s.Flow {
	case domain.FlowPizza:
		switch s.Category {
		case domain.CategoryVeg:
			return g.Veg
		case domain.CategoryNonVeg:
			return g.NonVeg
		}
		return nil
	case domain.FlowUltimate:
		return g.Ultimate
	case domain.FlowSides:
		return g.Sides
	case domain.FlowDesserts:
		return g.Desserts
	default:
		return nil
	}
}
