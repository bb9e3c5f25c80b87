package rompslomp

import (
	"strconv"
	"strings"
)

// flexFloat accepts both JSON numbers and numeric strings. The accounting
// API serializes rates either way depending on the record's age.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}

	*f = flexFloat(value)
	return nil
}

type contactSearchResponse struct {
	Contacts []contactSummary `json:"contacts"`
}

type contactSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PersonEmail string `json:"contact_person_email_address"`
}

type contactEnvelope struct {
	Contact struct {
		ID int64 `json:"id"`
	} `json:"contact"`
}

type productSearchResponse struct {
	Products []productSummary `json:"products"`
}

// productSummary is the slice of a catalog product the sync needs: its id
// plus the invoice-line defaults Rompslomp attaches to it.
type productSummary struct {
	ID          int64              `json:"id"`
	InvoiceLine productInvoiceLine `json:"invoice_line"`
}

type productInvoiceLine struct {
	ProductCode  string    `json:"product_code"`
	Description  string    `json:"description"`
	PricePerUnit float64   `json:"price_per_unit"`
	PriceWithVAT float64   `json:"price_with_vat"`
	VATRate      flexFloat `json:"vat_rate"`
	VATTypeID    int64     `json:"vat_type_id"`
	AccountID    int64     `json:"account_id"`
	AccountPath  string    `json:"account_path"`
}

type invoiceEnvelope struct {
	SalesInvoice struct {
		ID int64 `json:"id"`
	} `json:"sales_invoice"`
}
