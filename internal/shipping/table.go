package shipping

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// key is the two-column index of the mapping file: a shipping method only
// maps to a SKU for the exact total it was charged at.
type key struct {
	method string
	total  float64
}

// Table maps a marketplace shipping method and its charged total to the
// catalog SKU that bills it. Loaded once at startup, read-only afterwards.
type Table struct {
	entries map[key]string
}

// LoadTable reads the mapping CSV. The file needs a header naming
// Dokan_method, price and SKU. Bad rows are accumulated so the whole file
// is reported in one failure.
func LoadTable(path string) (*Table, error) {
	const op = "LoadTable"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %s is empty", op, path)
	}

	methodCol, priceCol, skuCol := -1, -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case "Dokan_method":
			methodCol = i
		case "price":
			priceCol = i
		case "SKU":
			skuCol = i
		}
	}
	if methodCol == -1 || priceCol == -1 || skuCol == -1 {
		return nil, fmt.Errorf("%s: %s: header must name Dokan_method, price and SKU", op, path)
	}

	var errs *multierror.Error
	entries := make(map[key]string, len(records)-1)

	for i, record := range records[1:] {
		rowNum := i + 2

		method := strings.TrimSpace(record[methodCol])
		if method == "" {
			errs = multierror.Append(errs, fmt.Errorf("row %d: empty Dokan_method", rowNum))
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[priceCol]), 64)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("row %d: invalid price %q", rowNum, record[priceCol]))
			continue
		}

		sku := strings.TrimSpace(record[skuCol])
		if sku == "" {
			errs = multierror.Append(errs, fmt.Errorf("row %d: empty SKU", rowNum))
			continue
		}

		k := key{method: method, total: price}
		if _, exists := entries[k]; exists {
			errs = multierror.Append(errs, fmt.Errorf("row %d: duplicate mapping for %s at %v", rowNum, method, price))
			continue
		}
		entries[k] = sku
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}

	return &Table{entries: entries}, nil
}

// Lookup returns the SKU billing the given method at the given charged
// total. A miss means the shipping line is not invoiced.
func (t *Table) Lookup(method string, total float64) (string, bool) {
	sku, ok := t.entries[key{method: method, total: total}]
	return sku, ok
}

// Len returns the number of mapped method/price pairs.
func (t *Table) Len() int {
	return len(t.entries)
}
