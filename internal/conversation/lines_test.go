package conversation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/crunchyorder/internal/cart"
)

func TestLineReceipt(t *testing.T) {
	rows := LineReceipt([]cart.Line{
		{ItemID: "margherita", Name: "Margherita", Quantity: 2, UnitPrice: 299, Total: 598},
	}, 598)

	require.Len(t, rows, 7)
	assert.Equal(t, strings.Repeat("=", 60), rows[0])
	assert.Equal(t, "ORDER SUMMARY", rows[1])
	assert.Equal(t, "Margherita......................... 2 x ₹299 = ₹598", rows[3])
	assert.Equal(t, strings.Repeat("-", 60), rows[4])
	assert.Equal(t, "TOTAL.............................. ₹598", rows[5])
	assert.Equal(t, rows[0], rows[6])
}

func TestLineHelpers(t *testing.T) {
	assert.Equal(t, "Current total: ₹598", LineCurrentTotal(598))
	assert.Equal(t, "How many Brownie?", LineHowMany("Brownie"))
	assert.Equal(t, "Available: Brownie, Choco Volcano", LineAvailable([]string{"Brownie", "Choco Volcano"}))
	assert.Equal(t, "1 order could not be placed.", LineFailedOrders(1))
	assert.Equal(t, "3 orders could not be placed.", LineFailedOrders(3))
}
