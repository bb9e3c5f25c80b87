package vat

import (
	"fmt"

	"invoicesync/pkg/models"
)

// Resolution carries the VAT decision for one invoice line.
type Resolution struct {
	VATTypeID    int64
	Rate         float64
	PricePerUnit float64
}

// Resolver applies the destination-country VAT rules.
type Resolver struct {
	table *Table
}

func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

// Resolve returns the VAT values for a line shipped to country. seed holds
// the catalog values for the line; nominalTotal is the marketplace price.
//
// EU destinations take VAT type and rate from the country table; a member
// state missing there fails the line rather than booking it untyped.
// Non-EU destinations are zero-rated exports and the catalog price is
// replaced by the nominal marketplace total.
func (r *Resolver) Resolve(country string, nominalTotal float64, seed Resolution) (Resolution, error) {
	const op = "Resolve"

	if IsEUMember(country) {
		entry, ok := r.table.Lookup(country)
		if !ok {
			return Resolution{}, fmt.Errorf("%s: no vat mapping for country %s: %w", op, country, models.ErrNotFound)
		}
		seed.VATTypeID = entry.VATTypeID
		seed.Rate = entry.Rate
		return seed, nil
	}

	seed.VATTypeID = NonEUVATTypeID
	seed.Rate = 0.0
	seed.PricePerUnit = nominalTotal
	return seed, nil
}
