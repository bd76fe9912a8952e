// Package totals computes the derived monetary summary of an invoice.
package totals

import "math"

// LineItem is a single invoice line. TaxRate and Discount are percentages
// in [0,100]; zero means absent.
type LineItem struct {
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unitPrice"`
	TaxRate     float64 `json:"taxRate,omitempty"`
	Discount    float64 `json:"discount,omitempty"`
}

// Totals is the derived summary, each field rounded to 2 decimal places.
// It is never client-authoritative: it is recomputed from the items on every
// mutation that touches them.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	TaxTotal      float64 `json:"taxTotal"`
	DiscountTotal float64 `json:"discountTotal"`
	GrandTotal    float64 `json:"grandTotal"`
}

// Calculate computes subtotal, tax total, discount total, and grand total
// for the given items.
//
// Tax is applied per item on the post-discount (taxable) amount, not on the
// aggregate. Nothing is clamped: a discount exceeding the subtotal can drive
// the grand total negative, which is accepted behavior.
//
// This function is PURE:
// - No side effects
// - No I/O
// - Fully deterministic
func Calculate(items []LineItem) Totals {
	var subtotal, taxTotal, discountTotal float64

	for _, item := range items {
		itemSubtotal := item.Qty * item.UnitPrice

		var itemDiscount float64
		if item.Discount != 0 {
			itemDiscount = itemSubtotal * item.Discount / 100
			discountTotal += itemDiscount
		}

		taxable := itemSubtotal - itemDiscount
		if item.TaxRate != 0 {
			taxTotal += taxable * item.TaxRate / 100
		}

		subtotal += itemSubtotal
	}

	grandTotal := subtotal - discountTotal + taxTotal

	return Totals{
		Subtotal:      round2(subtotal),
		TaxTotal:      round2(taxTotal),
		DiscountTotal: round2(discountTotal),
		GrandTotal:    round2(grandTotal),
	}
}

// round2 rounds half away from zero to 2 decimal places. The epsilon nudge
// counters binary representation error so 0.145 rounds to 0.15, not 0.14.
func round2(v float64) float64 {
	eps := math.Copysign(1e-9, v)
	return math.Round((v+eps)*100) / 100
}
