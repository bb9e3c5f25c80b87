package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"invoicesync/internal/invoice"
	"invoicesync/internal/logger"
	"invoicesync/pkg/models"
)

// OrderSource supplies marketplace orders.
type OrderSource interface {
	FetchProcessingOrders(ctx context.Context) ([]models.Order, error)
	FetchOrder(ctx context.Context, id int64) (*models.Order, error)
}

// ContactDirectory resolves accounting contacts by billing email.
type ContactDirectory interface {
	FindContactByEmail(ctx context.Context, email string) (int64, error)
	CreateContact(ctx context.Context, fields models.ContactFields) (int64, error)
}

// InvoiceSink receives finished draft invoices.
type InvoiceSink interface {
	SubmitInvoice(ctx context.Context, inv *models.Invoice) (int64, error)
}

// Summary is the result of one batch run.
type Summary struct {
	BatchID        string
	SuccessCount   int
	FailureCount   int
	FailedOrderIDs []int64
}

// Processor drives order-to-invoice conversion, one order at a time.
type Processor struct {
	source    OrderSource
	contacts  ContactDirectory
	sink      InvoiceSink
	assembler *invoice.Assembler
	log       zerolog.Logger
}

func New(source OrderSource, contacts ContactDirectory, sink InvoiceSink, assembler *invoice.Assembler) *Processor {
	return &Processor{
		source:    source,
		contacts:  contacts,
		sink:      sink,
		assembler: assembler,
		log:       logger.WithComponent("processor"),
	}
}

// ProcessOrder converts one order into a draft invoice: validate, resolve
// or create the contact, assemble, submit. Nothing is submitted unless the
// whole invoice could be built. A panic while processing is converted into
// an error so one order cannot take down a batch.
func (p *Processor) ProcessOrder(ctx context.Context, order *models.Order) (err error) {
	const op = "ProcessOrder"

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", op, r)
		}
	}()

	if err := invoice.ValidateOrder(order); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	contactID, err := p.resolveContact(ctx, order.Billing)
	if err != nil {
		return fmt.Errorf("%s: order %d: %w", op, order.ID, err)
	}

	inv, err := p.assembler.Assemble(ctx, order, contactID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	invoiceID, err := p.sink.SubmitInvoice(ctx, inv)
	if err != nil {
		return fmt.Errorf("%s: order %d: submit invoice: %w", op, order.ID, err)
	}

	p.log.Info().
		Int64("order_id", order.ID).
		Int64("invoice_id", invoiceID).
		Msg("Draft invoice created")

	return nil
}

// resolveContact finds the accounting contact for the billing email,
// creating one from the billing details when none exists yet.
func (p *Processor) resolveContact(ctx context.Context, billing models.Billing) (int64, error) {
	contactID, err := p.contacts.FindContactByEmail(ctx, billing.Email)
	if err == nil {
		return contactID, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return 0, fmt.Errorf("find contact: %w", err)
	}

	p.log.Info().Str("email", billing.Email).Msg("No contact for email, creating one")

	contactID, err = p.contacts.CreateContact(ctx, contactFieldsFromBilling(billing))
	if err != nil {
		return 0, fmt.Errorf("create contact: %w", err)
	}

	return contactID, nil
}

// ProcessBatch processes orders sequentially. An order's failure is
// recorded and the batch moves on; nothing past the HTTP layer's retries
// is reattempted.
func (p *Processor) ProcessBatch(ctx context.Context, orders []models.Order) Summary {
	summary := Summary{BatchID: uuid.NewString()}

	log := p.log.With().Str("batch_id", summary.BatchID).Logger()
	log.Info().Int("orders", len(orders)).Msg("Processing batch")

	for i := range orders {
		order := &orders[i]
		if err := p.ProcessOrder(ctx, order); err != nil {
			log.Error().Err(err).Int64("order_id", order.ID).Msg("Order failed")
			summary.FailureCount++
			summary.FailedOrderIDs = append(summary.FailedOrderIDs, order.ID)
			continue
		}
		summary.SuccessCount++
	}

	log.Info().
		Int("succeeded", summary.SuccessCount).
		Int("failed", summary.FailureCount).
		Msg("Batch finished")

	return summary
}

// ProcessRecent fetches the marketplace's current processing orders and
// runs them as one batch.
func (p *Processor) ProcessRecent(ctx context.Context) (Summary, error) {
	const op = "ProcessRecent"

	orders, err := p.source.FetchProcessingOrders(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	return p.ProcessBatch(ctx, orders), nil
}

// ProcessByID fetches one order and processes it.
func (p *Processor) ProcessByID(ctx context.Context, id int64) error {
	const op = "ProcessByID"

	order, err := p.source.FetchOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: order %d: %w", op, id, err)
	}

	return p.ProcessOrder(ctx, order)
}
