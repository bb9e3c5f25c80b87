package vat

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Entry is one row of the country/VAT mapping.
type Entry struct {
	VATTypeID int64
	Rate      float64
}

// Table maps ISO country codes to the administration's VAT types. It is
// loaded once at startup and read-only afterwards.
type Table struct {
	entries map[string]Entry
}

// LoadTable reads the mapping CSV. The file needs a header naming
// country_code, vat_type_id and vat_rate. Every bad row is reported, not
// just the first: a broken mapping file should fail loudly at startup, not
// order by order at runtime.
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

	cols, err := resolveColumns(records[0], "country_code", "vat_type_id", "vat_rate")
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}

	var errs *multierror.Error
	entries := make(map[string]Entry, len(records)-1)

	for i, record := range records[1:] {
		rowNum := i + 2

		country := strings.TrimSpace(record[cols[0]])
		if country == "" {
			errs = multierror.Append(errs, fmt.Errorf("row %d: empty country_code", rowNum))
			continue
		}
		if _, exists := entries[country]; exists {
			errs = multierror.Append(errs, fmt.Errorf("row %d: duplicate country_code %s", rowNum, country))
			continue
		}

		typeID, err := strconv.ParseInt(strings.TrimSpace(record[cols[1]]), 10, 64)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("row %d: invalid vat_type_id %q", rowNum, record[cols[1]]))
			continue
		}

		rate, err := strconv.ParseFloat(strings.TrimSpace(record[cols[2]]), 64)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("row %d: invalid vat_rate %q", rowNum, record[cols[2]]))
			continue
		}

		entries[country] = Entry{VATTypeID: typeID, Rate: rate}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}

	return &Table{entries: entries}, nil
}

// Lookup returns the entry for a country code.
func (t *Table) Lookup(country string) (Entry, bool) {
	entry, ok := t.entries[country]
	return entry, ok
}

// Len returns the number of mapped countries.
func (t *Table) Len() int {
	return len(t.entries)
}

// resolveColumns maps required header names to their indexes.
func resolveColumns(header []string, names ...string) ([]int, error) {
	indexes := make([]int, len(names))
	for i, name := range names {
		indexes[i] = -1
		for j, col := range header {
			if strings.TrimSpace(col) == name {
				indexes[i] = j
				break
			}
		}
		if indexes[i] == -1 {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}
	return indexes, nil
}
