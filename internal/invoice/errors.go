package invoice

import "errors"

// Per-order failure conditions. Each of these fails the whole order: an
// invoice is created complete or not at all.
var (
	// ErrInvalidOrder is returned when an order is missing fields the
	// invoice needs (identifier, billing email, line items, creation
	// date or shipping destination).
	ErrInvalidOrder = errors.New("order failed validation")

	// ErrProductUnmatched is returned when a line item SKU matches no
	// catalog product, even after trimming variant suffixes.
	ErrProductUnmatched = errors.New("no catalog product for sku")

	// ErrVATUnresolved is returned when an EU destination country has no
	// entry in the VAT mapping table.
	ErrVATUnresolved = errors.New("vat mapping unresolved")
)
