package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Order is a Dokan (WooCommerce) order as returned by the marketplace API.
// Orders are read-only input: nothing in the sync pipeline mutates one.
//
// The validate tags carry the precondition checked before any external
// lookup happens: identifier, billing (with email), at least one line item,
// creation date and a shipping destination must all be present.
type Order struct {
	ID            int64          `json:"id" validate:"required"`
	Billing       Billing        `json:"billing"`
	Shipping      OrderShipping  `json:"shipping"`
	LineItems     []LineItem     `json:"line_items" validate:"required,min=1"`
	ShippingLines []ShippingLine `json:"shipping_lines"`
	DateCreated   string         `json:"date_created" validate:"required"`
}

// Billing holds the customer details used for contact resolution.
type Billing struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	Postcode  string `json:"postcode"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone"`
}

// OrderShipping carries the destination used for VAT and template selection.
type OrderShipping struct {
	Country string `json:"country" validate:"required"`
}

// LineItem is one purchased product on an order. Price is the per-unit
// amount charged by the shop; WooCommerce sends it as a JSON number.
type LineItem struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ShippingLine is one shipping charge on an order. WooCommerce serializes
// the charged total as a string ("5.00"), so it is parsed on demand.
type ShippingLine struct {
	MethodTitle string `json:"method_title"`
	Total       string `json:"total"`
}

// ChargedTotal parses the shipping line's total. An empty total is treated
// as zero (free shipping is a valid charge).
func (s ShippingLine) ChargedTotal() (float64, error) {
	raw := strings.TrimSpace(s.Total)
	if raw == "" {
		return 0, nil
	}

	total, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable shipping total %q: %w", s.Total, err)
	}

	return total, nil
}

// wooDateFormats covers the creation timestamps WooCommerce emits:
// site-local time without an offset, plus RFC3339 from installs that
// render GMT timestamps.
var wooDateFormats = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// CreatedAt parses the order's creation timestamp.
func (o *Order) CreatedAt() (time.Time, error) {
	raw := strings.TrimSpace(o.DateCreated)
	if raw == "" {
		return time.Time{}, fmt.Errorf("order %d has no creation date", o.ID)
	}

	for _, format := range wooDateFormats {
		if ts, err := time.Parse(format, raw); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable order creation date %q", o.DateCreated)
}
