// Package invoice renders order invoices as PDF documents.
package invoice

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
)

const shopName = "Homage Publishers"

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Item", 80, "L"},
	{"Qty", 15, "C"},
	{"Unit price", 30, "R"},
	{"Discount", 25, "R"},
	{"Line total", 30, "R"},
}

// Render produces a single-page A4 invoice for the order.
func Render(order *domain.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+order.ID.String(), false)
	pdf.SetCreator(shopName, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, shopName+" - Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Order: %s", order.ID))
	pdf.Ln(6)
	if !order.CreatedAt.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006")))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Payment: %s", strings.ReplaceAll(order.PaymentMethod, "_", " ")))
	pdf.Ln(10)

	s := order.ShippingInfo
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Bill to")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{s.Name, s.Address, strings.TrimSpace(s.City + " " + s.District + " " + s.PostalCode), s.Phone, s.Email} {
		if line == "" {
			continue
		}
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range columns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, it := range order.Items {
		discount := "-"
		if it.Discount.IsPositive() {
			discount = it.Discount.String() + "%"
		}
		cells := []string{
			it.Title,
			fmt.Sprintf("%d", it.Quantity),
			it.UnitPrice().StringFixed(2),
			discount,
			it.Total().StringFixed(2),
		}
		for i, c := range columns {
			pdf.CellFormat(c.width, 7, cells[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	totals := []struct {
		label string
		value string
	}{
		{"Subtotal", order.Subtotal.StringFixed(2)},
		{"Shipping", order.ShippingFee.StringFixed(2)},
		{"Total (Rs.)", order.Total.StringFixed(2)},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Arial", "B", 11)
		}
		pdf.CellFormat(150, 7, t.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, t.value, "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the attachment name used for downloads.
func Filename(order *domain.Order) string {
	return "invoice-" + order.ID.String() + ".pdf"
}
