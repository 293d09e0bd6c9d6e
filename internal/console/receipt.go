package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/ticketcalc/internal/services/checkout"
	"github.com/fastprodman/ticketcalc/internal/services/pricing"
)

var hundred = decimal.NewFromInt(100)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// menuPrice prints the price as entered, trailing zeros dropped but
// always with a fractional digit: 15 -> "15.0", 12.50 -> "12.5".
func menuPrice(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// WriteReceipt renders r. The subtotal line shows the gross amount;
// the group discount line appears only when a discount applied, the
// redemption line whenever the customer chose to redeem.
func WriteReceipt(w io.Writer, r checkout.Receipt) error {
	var b strings.Builder

	res := r.Result

	b.WriteString("\n--- Receipt ---\n")
	fmt.Fprintf(&b, "Customer Name: %s\n", r.CustomerID)
	fmt.Fprintf(&b, "Ticket Type: %s\n", r.Category)
	fmt.Fprintf(&b, "Number of Tickets: %d\n", r.Quantity)
	fmt.Fprintf(&b, "Ticket Price (per ticket): $%s\n", money(r.UnitPrice))
	fmt.Fprintf(&b, "Subtotal: $%s\n", money(res.GrossSubtotal))

	if res.GroupDiscount.IsPositive() {
		fmt.Fprintf(&b, "Group Discount: -$%s\n", money(res.GroupDiscount))
	}

	if r.Redeemed {
		fmt.Fprintf(&b, "Loyalty Points Redeemed: -$%s\n", money(res.LoyaltyDiscount))
	}

	fmt.Fprintf(&b, "Tax (%s%%): $%s\n", pricing.TaxRate.Mul(hundred).StringFixed(1), money(res.Tax))
	fmt.Fprintf(&b, "Final Price: $%s\n", money(res.FinalPrice))
	fmt.Fprintf(&b, "Loyalty Points Earned: %d\n", res.PointsEarned)
	fmt.Fprintf(&b, "New Loyalty Points Balance: %d\n", res.NewBalance)
	b.WriteString("----------------\n")

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}

	return nil
}

func writeMenu(w io.Writer, prices pricing.PriceList) {
	fmt.Fprintln(w, "\nTicket Types:")

	for i, c := range pricing.Categories {
		p, _ := prices.Price(c)
		fmt.Fprintf(w, "%d. %s - $%s\n", i+1, c, menuPrice(p))
	}
}
