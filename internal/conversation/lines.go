// lines.go centralises every string shown to the user.
// Edit this file to change the assistant's voice.

package conversation

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/crunchyorder/internal/cart"
)

// Currency prefixes every amount.
const Currency = "₹"

const receiptWidth = 60

// ── Greeting / Global ────────────────────────────────────────────

func LineWelcome() string {
	return "Welcome to Tasky Crunchy Bakery."
}

func LineChooseFlow() string {
	return "Choose: pizza / sides / desserts / ultimate_cheese"
}

func LinePleaseChooseCategory() string {
	return "Please choose a category."
}

func LineBye() string {
	return "Thank you!"
}

// ── Menu navigation ──────────────────────────────────────────────

func LineVegOrNonVeg() string {
	return "Veg or Non-Veg?"
}

// LineAvailable lists the items of a non-pizza section.
func LineAvailable(names []string) string {
	return "Available: " + strings.Join(names, ", ")
}

// LineChoose lists the pizzas of the chosen category.
func LineChoose(names []string) string {
	return "Choose: " + strings.Join(names, ", ")
}

func LineInvalidItems() string {
	return "Please choose valid items."
}

// ── Quantities ───────────────────────────────────────────────────

func LineHowMany(name string) string {
	return fmt.Sprintf("How many %s?", name)
}

func LineNotANumber(name string) string {
	return fmt.Sprintf("Please answer with a whole number. How many %s?", name)
}

// ── Cart ─────────────────────────────────────────────────────────

func LineCurrentTotal(total int) string {
	return fmt.Sprintf("Current total: %s%d", Currency, total)
}

func LineAnythingElse() string {
	return "Anything else? [pizza / sides / desserts / ultimate_cheese / no]"
}

// ── Checkout ─────────────────────────────────────────────────────

func LinePlacingOrders() string {
	return "Placing orders..."
}

func LineEstimatedDelivery(minutes int) string {
	return fmt.Sprintf("Estimated Delivery Time: %d minutes", minutes)
}

func LineFailedOrders(n int) string {
	if n == 1 {
		return "1 order could not be placed."
	}
	return fmt.Sprintf("%d orders could not be placed.", n)
}

func LineTracking(n int) string {
	return fmt.Sprintf("Tracking %d delivery(s). You'll be told when each one arrives; type ok to silence.", n)
}

func LineAcknowledged(n int) string {
	if n == 0 {
		return "Nothing has arrived yet."
	}
	return fmt.Sprintf("Silenced %d delivery(s).", n)
}

// LineReceipt renders the itemized order summary, one string per row.
func LineReceipt(lines []cart.Line, total int) []string {
	rule := strings.Repeat("=", receiptWidth)
	out := []string{rule, "ORDER SUMMARY", rule}
	for _, l := range lines {
		out = append(out, fmt.Sprintf("%s %d x %s%d = %s%d",
			dotted(l.Name), l.Quantity, Currency, l.UnitPrice, Currency, l.Total))
	}
	out = append(out,
		strings.Repeat("-", receiptWidth),
		fmt.Sprintf("%s %s%d", dotted("TOTAL"), Currency, total),
		rule,
	)
	return out
}

// dotted left-aligns s in a 35-column field padded with dots.
func dotted(s string) string {
	const width = 35
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(".", width-n)
	}
	return s
}
