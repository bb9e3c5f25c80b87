package invoice

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"invoicesync/internal/logger"
	"invoicesync/internal/vat"
	"invoicesync/pkg/models"
)

// paymentTermDays is the span between invoice date and due date.
const paymentTermDays = 30

// dateFormat is the wire format the accounting API expects for dates.
const dateFormat = "2006-01-02"

// TemplateSet holds the invoice layout ids per destination group.
type TemplateSet struct {
	NL    int64
	EU    int64
	Other int64
}

// For selects the layout for a destination: the home country gets the
// domestic template, other member states the intra-EU one, everything
// else the export template.
func (t TemplateSet) For(country string) int64 {
	switch {
	case country == vat.HomeCountry:
		return t.NL
	case vat.IsEUMember(country):
		return t.EU
	default:
		return t.Other
	}
}

// Assembler combines order validation, line building, template selection
// and payment terms into one draft invoice.
type Assembler struct {
	builder   *Builder
	templates TemplateSet
	log       zerolog.Logger
}

func NewAssembler(builder *Builder, templates TemplateSet) *Assembler {
	return &Assembler{
		builder:   builder,
		templates: templates,
		log:       logger.WithComponent("invoice-assembler"),
	}
}

// Assemble builds the complete draft invoice for an order. Every product
// line must resolve; shipping lines are added best-effort. No invoice is
// returned unless all of it could be built.
func (a *Assembler) Assemble(ctx context.Context, order *models.Order, contactID int64) (*models.Invoice, error) {
	const op = "Assemble"

	if err := ValidateOrder(order); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	country := order.Shipping.Country

	lines := make([]models.InvoiceLine, 0, len(order.LineItems)+len(order.ShippingLines))
	for _, item := range order.LineItems {
		line, err := a.builder.BuildProductLine(ctx, item, country)
		if err != nil {
			return nil, fmt.Errorf("%s: order %d: %w", op, order.ID, err)
		}
		lines = append(lines, *line)
	}

	for _, shippingLine := range order.ShippingLines {
		line, err := a.builder.BuildShippingLine(ctx, shippingLine, country)
		if err != nil {
			return nil, fmt.Errorf("%s: order %d: %w", op, order.ID, err)
		}
		if line == nil {
			continue
		}
		lines = append(lines, *line)
	}

	createdAt, err := order.CreatedAt()
	if err != nil {
		return nil, fmt.Errorf("%s: order %d: %w: %v", op, order.ID, ErrInvalidOrder, err)
	}

	orderRef := strconv.FormatInt(order.ID, 10)

	a.log.Debug().
		Int64("order_id", order.ID).
		Str("country", country).
		Int("lines", len(lines)).
		Msg("Invoice assembled")

	return &models.Invoice{
		ContactID:        contactID,
		TemplateID:       a.templates.For(country),
		PaymentReference: orderRef,
		Description:      orderRef,
		InvoiceLines:     lines,
		Date:             createdAt.Format(dateFormat),
		DueDate:          createdAt.AddDate(0, 0, paymentTermDays).Format(dateFormat),
	}, nil
}
