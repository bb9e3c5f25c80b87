package models

// ProductRecord is the result of looking a product up in the accounting
// system's catalog by SKU. The VAT fields are the product's own defaults;
// the VAT resolver may override them depending on the destination country.
type ProductRecord struct {
	ProductID    int64
	Description  string
	PricePerUnit float64
	PriceWithVAT float64
	VATRate      float64
	VATTypeID    int64
	AccountID    int64
	AccountPath  string
}
