package invoices

import (
	"fmt"

	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
)

type alignment int

const (
	alignLeft alignment = iota
	alignCenter
	alignRight
)

type line struct {
	text      string
	size      float64
	align     alignment
	underline bool
	gapAfter  bool
}

const (
	titleFontSize = 18
	bodyFontSize  = 12
	totalFontSize = 14
	dateLayout    = "1/2/2006, 3:04:05 PM"
)

// buildLines turns a persisted order into the invoice's line content. This
// is a pure function of the order record, so the same order always yields
// the same lines; the PDF layer only draws them.
func buildLines(order *models.Order, title string) []line {
	lines := []line{
		{text: title, size: titleFontSize, align: alignCenter, gapAfter: true},
		{text: fmt.Sprintf("Invoice #: %s", order.ID), size: bodyFontSize},
		{text: fmt.Sprintf("Date: %s", order.CreatedAt.Format(dateLayout)), size: bodyFontSize},
		{text: fmt.Sprintf("Status: %s", order.Status), size: bodyFontSize, gapAfter: true},
		{text: "Bill To:", size: bodyFontSize},
		{text: order.Address.Label, size: bodyFontSize},
		{text: order.Address.Line1, size: bodyFontSize},
		{text: fmt.Sprintf("%s, %s", order.Address.City, order.Address.Country), size: bodyFontSize},
		{text: order.Address.Phone, size: bodyFontSize, gapAfter: true},
		{text: "Items:", size: bodyFontSize, underline: true},
	}

	for _, item := range order.Items {
		lines = append(lines, line{
			text: fmt.Sprintf("%s x%d — $%s (Vendor: %s)", item.Title, item.Qty, item.Price, item.VendorID),
			size: bodyFontSize,
		})
	}
	lines[len(lines)-1].gapAfter = true

	lines = append(lines, line{text: fmt.Sprintf("Shipping: $%s", order.Shipping.Total), size: bodyFontSize})
	for _, entry := range order.Shipping.Breakdown {
		method := "N/A"
		if entry.Method != nil && *entry.Method != "" {
			method = *entry.Method
		}
		lines = append(lines, line{
			text: fmt.Sprintf(" - Vendor %s: %s — $%s", entry.VendorID, method, entry.Rate),
			size: bodyFontSize,
		})
	}
	lines[len(lines)-1].gapAfter = true

	lines = append(lines, line{
		text:  fmt.Sprintf("TOTAL: $%s", order.Total),
		size:  totalFontSize,
		align: alignRight,
	})
	return lines
}
