// Package pricing computes the deterministic order totals for a registration.
// Amounts are whole currency units, no minor-unit handling.
package pricing

import "math"

// TaxRate is applied to the subtotal and rounded half away from zero.
const TaxRate = 0.08

var unitPrices = map[string]int{
	"general": 49,
	"vip":     129,
	"student": 29,
}

type Quote struct {
	Subtotal int
	Tax      int
	Total    int
}

// UnitPrice returns the per-ticket price, 0 for an unknown type. Callers
// validate the ticket type before quoting.
func UnitPrice(ticketType string) int {
	return unitPrices[ticketType]
}

// Calculate quotes subtotal, tax and total for a ticket type and quantity.
// Pure and total: no side effects, no failure mode.
func Calculate(ticketType string, quantity int) Quote {
	subtotal := UnitPrice(ticketType) * quantity
	tax := int(math.Round(float64(subtotal) * TaxRate))

	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
