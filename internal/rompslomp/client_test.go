package rompslomp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"invoicesync/internal/cache"
	"invoicesync/internal/httpclient"
	"invoicesync/pkg/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL:          server.URL,
		CompanyID:        "123",
		APIKey:           "test-key",
		ContactsEndpoint: "/contacts",
		ProductsEndpoint: "/products",
		InvoicesEndpoint: "/sales_invoices",
		Timeout:          5 * time.Second,
	}, cache.New(time.Minute))
}

func TestFindContactByEmail(t *testing.T) {
	var hits atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		assert.Equal(t, "/123/contacts", r.URL.Path)
		assert.Equal(t, "jan@example.com", r.URL.Query().Get("search[contact_person_email_address]"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contacts": [
			{"id": 11, "name": "Jan Jansen sr.", "contact_person_email_address": "jan.sr@example.com"},
			{"id": 22, "name": "Jan Jansen", "contact_person_email_address": "jan@example.com"}
		]}`))
	})

	id, err := client.FindContactByEmail(context.Background(), "jan@example.com")

	assert.NoError(t, err)
	assert.Equal(t, int64(22), id, "the search matches loosely; only the exact address counts")

	again, err := client.FindContactByEmail(context.Background(), "jan@example.com")
	assert.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Equal(t, int32(1), hits.Load(), "a repeat lookup must be served from cache")
}

func TestFindContactByEmailNoExactMatch(t *testing.T) {
	var hits atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contacts": [
			{"id": 11, "name": "Jan Jansen sr.", "contact_person_email_address": "jan.sr@example.com"}
		]}`))
	})

	_, err := client.FindContactByEmail(context.Background(), "jan@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = client.FindContactByEmail(context.Background(), "jan@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, int32(2), hits.Load(), "misses are not cached")
}

func TestCreateContact(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/123/contacts", r.URL.Path)

		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
			return
		}

		var fields models.ContactFields
		if err := json.Unmarshal(body["contact"], &fields); err != nil {
			t.Errorf("payload must be wrapped in a contact envelope: %v", err)
			return
		}
		assert.True(t, fields.IsIndividual)
		assert.Equal(t, "jan@example.com", fields.PersonEmail)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contact": {"id": 66}}`))
	})

	id, err := client.CreateContact(context.Background(), models.ContactFields{
		IsIndividual: true,
		PersonName:   "Jan Jansen",
		PersonEmail:  "jan@example.com",
		CountryCode:  "NL",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(66), id)
}

func TestCreateContactWithoutID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contact": {}}`))
	})

	_, err := client.CreateContact(context.Background(), models.ContactFields{PersonEmail: "jan@example.com"})

	assert.ErrorContains(t, err, "no contact id")
}

func TestFindProductByCode(t *testing.T) {
	var hits atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		assert.Equal(t, "/123/products", r.URL.Path)
		assert.Equal(t, "SHIRT", r.URL.Query().Get("search[product_codes][]"))

		// vat_rate arrives as a string on older records.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": [
			{"id": 41, "invoice_line": {"product_code": "SHIRT-OLD", "description": "Old shirt"}},
			{"id": 42, "invoice_line": {
				"product_code": "SHIRT",
				"description": "Cotton shirt",
				"price_per_unit": 21.07,
				"price_with_vat": 25.5,
				"vat_rate": "0.21",
				"vat_type_id": 111,
				"account_id": 7,
				"account_path": "8000 Sales"
			}}
		]}`))
	})

	product, err := client.FindProductByCode(context.Background(), "SHIRT")

	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	assert.Equal(t, int64(42), product.ProductID)
	assert.Equal(t, "Cotton shirt", product.Description)
	assert.Equal(t, 21.07, product.PricePerUnit)
	assert.Equal(t, 25.5, product.PriceWithVAT)
	assert.Equal(t, 0.21, product.VATRate)
	assert.Equal(t, int64(111), product.VATTypeID)
	assert.Equal(t, int64(7), product.AccountID)
	assert.Equal(t, "8000 Sales", product.AccountPath)

	again, err := client.FindProductByCode(context.Background(), "SHIRT")
	assert.NoError(t, err)
	assert.Equal(t, product.ProductID, again.ProductID)
	assert.Equal(t, int32(1), hits.Load(), "a repeat lookup must be served from cache")
}

func TestFindProductByCodeNoExactMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": [
			{"id": 41, "invoice_line": {"product_code": "SHIRT-OLD"}}
		]}`))
	})

	_, err := client.FindProductByCode(context.Background(), "SHIRT")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSubmitInvoice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/123/sales_invoices", r.URL.Path)

		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
			return
		}

		var inv models.Invoice
		if err := json.Unmarshal(body["sales_invoice"], &inv); err != nil {
			t.Errorf("payload must be wrapped in a sales_invoice envelope: %v", err)
			return
		}
		assert.Equal(t, "9001", inv.PaymentReference)
		assert.Len(t, inv.InvoiceLines, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sales_invoice": {"id": 5555}}`))
	})

	id, err := client.SubmitInvoice(context.Background(), &models.Invoice{
		ContactID:        55,
		TemplateID:       1,
		PaymentReference: "9001",
		Description:      "9001",
		InvoiceLines: []models.InvoiceLine{
			{Description: "Cotton shirt", Quantity: 2, PricePerUnit: 21.07, VATRate: 0.21, VATTypeID: 111, ProductID: 42},
		},
		Date:    "2024-03-15",
		DueDate: "2024-04-14",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5555), id)
}

func TestSubmitInvoiceUpstreamRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors": {"contact_id": ["must exist"]}}`))
	})

	_, err := client.SubmitInvoice(context.Background(), &models.Invoice{})

	var apiErr *httpclient.APIError
	if !assert.ErrorAs(t, err, &apiErr) {
		return
	}
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "must exist")
}

func TestPatchInvoice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/123/sales_invoices/5555", r.URL.Path)

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
			return
		}
		assert.Contains(t, body, "sales_invoice")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sales_invoice": {"id": 5555}}`))
	})

	err := client.PatchInvoice(context.Background(), 5555, map[string]interface{}{
		"sales_invoice": map[string]interface{}{
			"invoice_lines": []map[string]interface{}{
				{"id": 1, "price_per_unit": 19.99},
			},
		},
	})

	assert.NoError(t, err)
}

func TestFlexFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "number", raw: `0.21`, want: 0.21},
		{name: "quoted number", raw: `"0.21"`, want: 0.21},
		{name: "empty string", raw: `""`, want: 0},
		{name: "null", raw: `null`, want: 0},
		{name: "garbage", raw: `"twenty"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexFloat
			err := json.Unmarshal([]byte(tt.raw), &f)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, float64(f))
		})
	}
}
