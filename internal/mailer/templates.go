package mailer

import (
	"fmt"
	"strings"

	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

func customerBody(order *domain.Order, intro string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n%s\n\n", order.ShippingInfo.Name, intro)
	writeSummary(&b, order)
	b.WriteString("\nIf you have any questions, reply to this email.\n")
	return b.String()
}

func alertBody(order *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new order was placed by %s (%s, %s).\n\n",
		order.ShippingInfo.Name, order.ShippingInfo.Email, order.ShippingInfo.Phone)
	writeSummary(&b, order)
	fmt.Fprintf(&b, "\nPayment method: %s\n", order.PaymentMethod)
	return b.String()
}

func writeSummary(b *strings.Builder, order *domain.Order) {
	fmt.Fprintf(b, "Order: %s\n", order.ID)
	fmt.Fprintf(b, "Status: %s\n\n", order.Status)

	b.WriteString("Items:\n")
	for _, it := range order.Items {
		line := fmt.Sprintf("  - %s x%d @ Rs. %s", it.Title, it.Quantity, money(it.UnitPrice()))
		if it.Discount.IsPositive() {
			line += fmt.Sprintf(" (%s%% off Rs. %s)", it.Discount.String(), money(it.Price))
		}
		fmt.Fprintf(b, "%s = Rs. %s [%s]\n", line, money(it.Total()), it.Status)
	}

	fmt.Fprintf(b, "\nSubtotal: Rs. %s\n", money(order.Subtotal))
	fmt.Fprintf(b, "Shipping: Rs. %s\n", money(order.ShippingFee))
	fmt.Fprintf(b, "Total:    Rs. %s\n", money(order.Total))

	s := order.ShippingInfo
	b.WriteString("\nShip to:\n")
	fmt.Fprintf(b, "  %s\n  %s\n", s.Name, s.Address)
	if s.District != "" {
		fmt.Fprintf(b, "  %s, %s %s\n", s.City, s.District, s.PostalCode)
	} else {
		fmt.Fprintf(b, "  %s %s\n", s.City, s.PostalCode)
	}
	fmt.Fprintf(b, "  %s\n", s.Phone)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
