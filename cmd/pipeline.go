package cmd

import (
	"fmt"

	"invoicesync/internal/cache"
	"invoicesync/internal/config"
	"invoicesync/internal/dokan"
	"invoicesync/internal/httpclient"
	"invoicesync/internal/invoice"
	"invoicesync/internal/processor"
	"invoicesync/internal/rompslomp"
	"invoicesync/internal/shipping"
	"invoicesync/internal/vat"
)

// pipeline bundles the wired components a command picks from.
type pipeline struct {
	orders    *dokan.Client
	assembler *invoice.Assembler
	processor *processor.Processor
}

// buildPipeline wires the whole sync path from configuration: mapping
// tables, shared cache, both API clients, line builder, assembler and
// processor.
func buildPipeline(cfg *config.Config) (*pipeline, error) {
	vatTable, err := vat.LoadTable(cfg.VATMappingFile)
	if err != nil {
		return nil, fmt.Errorf("load vat mapping: %w", err)
	}

	shippingTable, err := shipping.LoadTable(cfg.ShippingMappingFile)
	if err != nil {
		return nil, fmt.Errorf("load shipping mapping: %w", err)
	}

	store := cache.New(cfg.CacheTTL)
	retry := httpclient.DefaultRetryPolicy()

	orders := dokan.NewClient(dokan.Config{
		BaseURL:  cfg.DokanBaseURL,
		Username: cfg.DokanUsername,
		Password: cfg.DokanPassword,
		Timeout:  cfg.HTTPTimeout,
		Retry:    retry,
	}, store)

	accounting := rompslomp.NewClient(rompslomp.Config{
		BaseURL:          cfg.RompslompBaseURL,
		CompanyID:        cfg.RompslompCompanyID,
		APIKey:           cfg.RompslompAPIKey,
		ContactsEndpoint: cfg.ContactsEndpoint,
		ProductsEndpoint: cfg.ProductsEndpoint,
		InvoicesEndpoint: cfg.InvoicesEndpoint,
		Timeout:          cfg.HTTPTimeout,
		Retry:            retry,
	}, store)

	builder := invoice.NewBuilder(accounting, vat.NewResolver(vatTable), shippingTable)
	assembler := invoice.NewAssembler(builder, invoice.TemplateSet{
		NL:    cfg.TemplateIDNL,
		EU:    cfg.TemplateIDEU,
		Other: cfg.TemplateIDOther,
	})

	return &pipeline{
		orders:    orders,
		assembler: assembler,
		processor: processor.New(orders, accounting, accounting, assembler),
	}, nil
}
