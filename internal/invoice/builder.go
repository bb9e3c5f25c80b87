package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"invoicesync/internal/logger"
	"invoicesync/internal/shipping"
	"invoicesync/internal/vat"
	"invoicesync/pkg/models"
)

// ProductLookup resolves catalog products by their product code.
type ProductLookup interface {
	FindProductByCode(ctx context.Context, sku string) (*models.ProductRecord, error)
}

// Builder turns marketplace order lines into invoice lines.
type Builder struct {
	catalog  ProductLookup
	vat      *vat.Resolver
	shipping *shipping.Table
	log      zerolog.Logger
}

func NewBuilder(catalog ProductLookup, resolver *vat.Resolver, shippingTable *shipping.Table) *Builder {
	return &Builder{
		catalog:  catalog,
		vat:      resolver,
		shipping: shippingTable,
		log:      logger.WithComponent("invoice-builder"),
	}
}

// ResolveProduct finds the catalog product for a SKU. Webshop variant SKUs
// append hyphenated suffixes to a base catalog code ("SHIRT-M-RED"), so on
// a miss the last suffix is dropped and the shorter code tried again,
// until a match is found or no hyphen remains.
func (b *Builder) ResolveProduct(ctx context.Context, sku string) (*models.ProductRecord, error) {
	const op = "ResolveProduct"

	candidate := sku
	for {
		product, err := b.catalog.FindProductByCode(ctx, candidate)
		if err == nil {
			if candidate != sku {
				b.log.Info().
					Str("sku", sku).
					Str("matched", candidate).
					Msg("Product matched on truncated SKU")
			}
			return product, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%s: sku %q: %w", op, candidate, err)
		}

		cut := strings.LastIndex(candidate, "-")
		if cut < 0 {
			return nil, fmt.Errorf("%s: sku %q: %w", op, sku, models.ErrNotFound)
		}
		candidate = candidate[:cut]
	}
}

// BuildProductLine turns one purchased item into an invoice line. The SKU
// must match a catalog product and the destination's VAT must resolve;
// either failing fails the whole order.
func (b *Builder) BuildProductLine(ctx context.Context, item models.LineItem, country string) (*models.InvoiceLine, error) {
	const op = "BuildProductLine"

	product, err := b.ResolveProduct(ctx, item.SKU)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%s: sku %q: %w", op, item.SKU, ErrProductUnmatched)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resolution, err := b.vat.Resolve(country, item.Price, vat.Resolution{
		VATTypeID:    product.VATTypeID,
		Rate:         product.VATRate,
		PricePerUnit: product.PricePerUnit,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrVATUnresolved, err)
	}

	description := product.Description
	if description == "" {
		description = item.Name
	}

	return &models.InvoiceLine{
		Description:  description,
		Quantity:     item.Quantity,
		PricePerUnit: resolution.PricePerUnit,
		VATRate:      resolution.Rate,
		VATTypeID:    resolution.VATTypeID,
		ProductID:    product.ProductID,
		AccountID:    product.AccountID,
		AccountPath:  product.AccountPath,
	}, nil
}

// BuildShippingLine turns one shipping charge into an invoice line. A
// method/total pair absent from the shipping table, or a mapped SKU absent
// from the catalog, returns (nil, nil): unbillable shipping is skipped and
// never fails the order. An unresolved VAT still does, a line may not be
// booked untyped.
func (b *Builder) BuildShippingLine(ctx context.Context, line models.ShippingLine, country string) (*models.InvoiceLine, error) {
	const op = "BuildShippingLine"

	total, err := line.ChargedTotal()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sku, ok := b.shipping.Lookup(line.MethodTitle, total)
	if !ok {
		b.log.Warn().
			Str("method", line.MethodTitle).
			Float64("total", total).
			Msg("Shipping method not mapped, skipping shipping line")
		return nil, nil
	}

	product, err := b.ResolveProduct(ctx, sku)
	if err != nil {
		b.log.Warn().
			Err(err).
			Str("method", line.MethodTitle).
			Str("sku", sku).
			Msg("No catalog product for shipping SKU, skipping shipping line")
		return nil, nil
	}

	resolution, err := b.vat.Resolve(country, total, vat.Resolution{
		VATTypeID:    product.VATTypeID,
		Rate:         product.VATRate,
		PricePerUnit: product.PricePerUnit,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrVATUnresolved, err)
	}

	description := product.Description
	if description == "" {
		description = line.MethodTitle
	}

	return &models.InvoiceLine{
		Description:  description,
		Quantity:     1,
		PricePerUnit: resolution.PricePerUnit,
		VATRate:      resolution.Rate,
		VATTypeID:    resolution.VATTypeID,
		ProductID:    product.ProductID,
		AccountID:    product.AccountID,
		AccountPath:  product.AccountPath,
	}, nil
}
