package extract

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hammamikhairi/crunchyorder/internal/catalog"
	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

func testIndex() *catalog.Index {
	return catalog.NewIndex(&domain.Menu{Categories: []domain.MenuCategory{
		{ID: "pizza", Items: []domain.MenuItem{
			{ID: "margherita", Name: "Margherita", Price: 299},
			{ID: "tandoori_paneer", Name: "Paneer Tikka Special", Price: 399},
			{ID: "veggie_supreme", Name: "Veggie Supreme", Price: 349},
		}},
	}})
}

func newPattern() *PatternExtractor {
	return NewPatternExtractor(testIndex(), logger.New(logger.LevelOff, nil))
}

func TestPatternExtract(t *testing.T) {
	veg := catalog.DefaultGroups().Veg
	p := newPattern()

	tests := []struct {
		input string
		want  domain.Intents
	}{
		{"2 margherita", domain.Intents{{ItemID: "margherita", Quantity: 2}}},
		{"margherita 3", domain.Intents{{ItemID: "margherita", Quantity: 3}}},
		{"I want 12 Margherita please", domain.Intents{{ItemID: "margherita", Quantity: 12}}},
		{"1 tandoori paneer", domain.Intents{{ItemID: "tandoori_paneer", Quantity: 1}}},
		{"4 paneer tikka special", domain.Intents{{ItemID: "tandoori_paneer", Quantity: 4}}},
		{"Paneer Tikka Special 5", domain.Intents{{ItemID: "tandoori_paneer", Quantity: 5}}},
		{"margherita", domain.Intents{{ItemID: "margherita", Quantity: domain.QuantityUnknown}}},
		{"some veggie supreme maybe", domain.Intents{{ItemID: "veggie_supreme", Quantity: domain.QuantityUnknown}}},
		{"0 margherita", domain.Intents{{ItemID: "margherita", Quantity: domain.QuantityUnknown}}},
		{
			"veggie supreme 2 and 1 margherita",
			domain.Intents{{ItemID: "margherita", Quantity: 1}, {ItemID: "veggie_supreme", Quantity: 2}},
		},
		{"a large coke", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := p.Extract(context.Background(), tt.input, veg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatternLeadingBeatsTrailing(t *testing.T) {
	// "2 margherita 5": the leading rule is evaluated first.
	got := newPattern().Extract(context.Background(), "2 margherita 5", []string{"margherita"})
	assert.Equal(t, domain.Intents{{ItemID: "margherita", Quantity: 2}}, got)
}

func TestPatternQuantityForms(t *testing.T) {
	p := newPattern()
	for n := 1; n <= 20; n++ {
		for _, format := range []string{"%d margherita", "margherita %d", "%d  MARGHERITA"} {
			input := fmt.Sprintf(format, n)
			got := p.Extract(context.Background(), input, []string{"margherita", "veggie_supreme"})
			assert.Equal(t, domain.Intents{{ItemID: "margherita", Quantity: n}}, got, input)
		}
	}
}

func TestPatternEmptyCatalog(t *testing.T) {
	p := NewPatternExtractor(catalog.NewIndex(nil), logger.New(logger.LevelOff, nil))
	got := p.Extract(context.Background(), "2 sprinkled fries", []string{"sprinkled_fries", "chicken_wings"})
	assert.Equal(t, domain.Intents{{ItemID: "sprinkled_fries", Quantity: 2}}, got)
}

func TestMatchItemRuleNames(t *testing.T) {
	forms := [2]string{"tandoori paneer", "Paneer Tikka Special"}
	tests := []struct {
		text string
		rule string
	}{
		{"2 tandoori paneer", "spoken-leading"},
		{"tandoori paneer 2", "spoken-trailing"},
		{"2 paneer tikka special", "display-leading"},
		{"paneer tikka special 2", "display-trailing"},
		{"tandoori paneer", "mention"},
	}
	for _, tt := range tests {
		_, rule, ok := matchItem(tt.text, "tandoori_paneer", forms)
		assert.True(t, ok, tt.text)
		assert.Equal(t, tt.rule, rule, tt.text)
	}
	_, _, ok := matchItem("garlic bread", "tandoori_paneer", forms)
	assert.False(t, ok)
}
