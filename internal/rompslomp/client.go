package rompslomp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"invoicesync/internal/cache"
	"invoicesync/internal/httpclient"
	"invoicesync/internal/logger"
	"invoicesync/pkg/models"
)

type Config struct {
	BaseURL          string
	CompanyID        string
	APIKey           string
	ContactsEndpoint string
	ProductsEndpoint string
	InvoicesEndpoint string
	Timeout          time.Duration
	Retry            httpclient.RetryPolicy
}

// Client talks to the Rompslomp accounting API for one administration.
// All requests live under /{company_id} and authenticate with the
// administration's bearer key.
type Client struct {
	http         *resty.Client
	cache        *cache.Cache
	contactsPath string
	productsPath string
	invoicesPath string
	log          zerolog.Logger
}

func NewClient(cfg Config, store *cache.Cache) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/") + "/" + cfg.CompanyID

	client := httpclient.New(httpclient.Config{
		BaseURL: base,
		Timeout: cfg.Timeout,
		Retry:   cfg.Retry,
	}).SetAuthToken(cfg.APIKey)

	return &Client{
		http:         client,
		cache:        store,
		contactsPath: cfg.ContactsEndpoint,
		productsPath: cfg.ProductsEndpoint,
		invoicesPath: cfg.InvoicesEndpoint,
		log:          logger.WithComponent("rompslomp"),
	}
}

// FindContactByEmail returns the id of the contact registered under the
// exact email address. The search endpoint matches loosely, so the
// response is filtered on the precise address.
func (c *Client) FindContactByEmail(ctx context.Context, email string) (int64, error) {
	const op = "FindContactByEmail"

	cacheKey := "contact:" + email
	if cached, ok := c.cache.Get(cacheKey); ok {
		c.log.Debug().Str("email", email).Msg("Serving contact id from cache")
		return cached.(int64), nil
	}

	var result contactSearchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("search[contact_person_email_address]", email).
		SetResult(&result).
		Get(c.contactsPath)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := httpclient.ErrorFromResponse(resp); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, contact := range result.Contacts {
		if contact.PersonEmail != email {
			continue
		}
		c.log.Info().
			Str("name", contact.Name).
			Int64("contact_id", contact.ID).
			Msg("Contact found")
		c.cache.Set(cacheKey, contact.ID)
		return contact.ID, nil
	}

	return 0, fmt.Errorf("%s: %s: %w", op, email, models.ErrNotFound)
}

// CreateContact registers a new contact and returns its id.
func (c *Client) CreateContact(ctx context.Context, fields models.ContactFields) (int64, error) {
	const op = "CreateContact"

	var result contactEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"contact": fields}).
		SetResult(&result).
		Post(c.contactsPath)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := httpclient.ErrorFromResponse(resp); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if result.Contact.ID == 0 {
		return 0, fmt.Errorf("%s: response carried no contact id", op)
	}

	c.log.Info().Int64("contact_id", result.Contact.ID).Msg("Contact created")

	return result.Contact.ID, nil
}

// FindProductByCode returns the catalog product registered under the
// exact product code. The code is matched as given; variant-suffix
// fallback is the line builder's business.
func (c *Client) FindProductByCode(ctx context.Context, sku string) (*models.ProductRecord, error) {
	const op = "FindProductByCode"

	cacheKey := "product:" + sku
	if cached, ok := c.cache.Get(cacheKey); ok {
		c.log.Debug().Str("sku", sku).Msg("Serving product from cache")
		record := cached.(models.ProductRecord)
		return &record, nil
	}

	var result productSearchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("search[product_codes][]", sku).
		SetResult(&result).
		Get(c.productsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := httpclient.ErrorFromResponse(resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, product := range result.Products {
		if product.InvoiceLine.ProductCode != sku {
			continue
		}

		record := models.ProductRecord{
			ProductID:    product.ID,
			Description:  product.InvoiceLine.Description,
			PricePerUnit: product.InvoiceLine.PricePerUnit,
			PriceWithVAT: product.InvoiceLine.PriceWithVAT,
			VATRate:      float64(product.InvoiceLine.VATRate),
			VATTypeID:    product.InvoiceLine.VATTypeID,
			AccountID:    product.InvoiceLine.AccountID,
			AccountPath:  product.InvoiceLine.AccountPath,
		}

		c.log.Info().
			Str("sku", sku).
			Int64("product_id", record.ProductID).
			Msg("Product found")
		c.cache.Set(cacheKey, record)

		return &record, nil
	}

	return nil, fmt.Errorf("%s: %s: %w", op, sku, models.ErrNotFound)
}

// SubmitInvoice creates a draft invoice and returns its id.
func (c *Client) SubmitInvoice(ctx context.Context, inv *models.Invoice) (int64, error) {
	const op = "SubmitInvoice"

	var result invoiceEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"sales_invoice": inv}).
		SetResult(&result).
		Post(c.invoicesPath)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := httpclient.ErrorFromResponse(resp); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	c.log.Info().Int64("invoice_id", result.SalesInvoice.ID).Msg("Draft invoice submitted")

	return result.SalesInvoice.ID, nil
}

// PatchInvoice updates fields on an existing invoice, typically price
// corrections applied after review. The body is sent as given.
func (c *Client) PatchInvoice(ctx context.Context, id int64, fields map[string]interface{}) error {
	const op = "PatchInvoice"

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(fields).
		Patch(fmt.Sprintf("%s/%d", c.invoicesPath, id))
	if err != nil {
		return fmt.Errorf("%s: invoice %d: %w", op, id, err)
	}
	if err := httpclient.ErrorFromResponse(resp); err != nil {
		return fmt.Errorf("%s: invoice %d: %w", op, id, err)
	}

	c.log.Info().Int64("invoice_id", id).Msg("Invoice patched")

	return nil
}
