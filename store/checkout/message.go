package checkout

import (
	"fmt"
	"strings"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/store/cart"
)

// ComposeMessage renders the human-readable order summary sent over WhatsApp
// and stored on the order record: greeting, one line per item with quantity
// and line subtotal, the grand total, the order number when known, and a
// closing prompt. Currency always carries two decimals.
func ComposeMessage(items []cart.LineItem, total float64, orderNumber string) string {
	var b strings.Builder

	b.WriteString("Hello, I'm interested in these products:\n\n")

	for _, item := range items {
		fmt.Fprintf(&b, "- %s (Qty: %d) - ₹%.2f\n", item.Name, item.Quantity, item.Subtotal())
	}

	fmt.Fprintf(&b, "\nTotal Amount: ₹%.2f\n\n", total)

	if orderNumber != "" {
		fmt.Fprintf(&b, "Order #: %s\n\n", orderNumber)
	}

	b.WriteString("Please confirm availability and provide payment details.")

	return b.String()
}
