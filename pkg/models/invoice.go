package models

// Invoice is the sales-invoice payload submitted to the accounting system.
// It is created in concept (draft) state there, so a bookkeeper reviews it
// before it is finalized.
type Invoice struct {
	ContactID        int64         `json:"contact_id"`
	TemplateID       int64         `json:"template_id"`
	PaymentReference string        `json:"payment_reference"`
	Description      string        `json:"description"`
	InvoiceLines     []InvoiceLine `json:"invoice_lines"`
	Date             string        `json:"date"`
	DueDate          string        `json:"due_date"`
}

// InvoiceLine is one line of a sales invoice. Every line submitted upstream
// must carry a resolved VAT type id and rate; lines are never sent with the
// VAT fields unset.
type InvoiceLine struct {
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	VATRate      float64 `json:"vat_rate"`
	VATTypeID    int64   `json:"vat_type_id"`
	ProductID    int64   `json:"product_id"`
	AccountID    int64   `json:"account_id,omitempty"`
	AccountPath  string  `json:"account_path,omitempty"`
}
