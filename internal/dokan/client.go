package dokan

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"invoicesync/internal/cache"
	"invoicesync/internal/httpclient"
	"invoicesync/internal/logger"
	"invoicesync/pkg/models"
)

// recentOrdersKey caches the processing-orders snapshot; batch runs close
// together see the same list.
const recentOrdersKey = "orders:recent"

// perPage caps how many processing orders one sync run picks up.
const perPage = "100"

type Config struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
	Retry    httpclient.RetryPolicy
}

// Client reads orders from the Dokan marketplace REST API.
type Client struct {
	http  *resty.Client
	cache *cache.Cache
	log   zerolog.Logger
}

func NewClient(cfg Config, store *cache.Cache) *Client {
	client := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Retry:   cfg.Retry,
	}).SetBasicAuth(cfg.Username, cfg.Password)

	return &Client{
		http:  client,
		cache: store,
		log:   logger.WithComponent("dokan"),
	}
}

// FetchProcessingOrders returns the marketplace's current processing
// orders, newest first.
func (c *Client) FetchProcessingOrders(ctx context.Context) ([]models.Order, error) {
	const op = "FetchProcessingOrders"

	if cached, ok := c.cache.Get(recentOrdersKey); ok {
		c.log.Debug().Msg("Serving processing orders from cache")
		return cached.([]models.Order), nil
	}

	var orders []models.Order
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"status":   "processing",
			"orderby":  "date",
			"order":    "desc",
			"per_page": perPage,
		}).
		SetResult(&orders).
		Get("/orders")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := httpclient.ErrorFromResponse(resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.cache.Set(recentOrdersKey, orders)
	c.log.Info().Int("count", len(orders)).Msg("Fetched processing orders")

	return orders, nil
}

// FetchOrder returns one order by id. A 404 from the marketplace maps to
// models.ErrNotFound.
func (c *Client) FetchOrder(ctx context.Context, id int64) (*models.Order, error) {
	const op = "FetchOrder"

	cacheKey := fmt.Sprintf("order:%d", id)
	if cached, ok := c.cache.Get(cacheKey); ok {
		c.log.Debug().Int64("order_id", id).Msg("Serving order from cache")
		order := cached.(models.Order)
		return &order, nil
	}

	var order models.Order
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&order).
		Get(fmt.Sprintf("/orders/%d", id))
	if err != nil {
		return nil, fmt.Errorf("%s: order %d: %w", op, id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%s: order %d: %w", op, id, models.ErrNotFound)
	}
	if err := httpclient.ErrorFromResponse(resp); err != nil {
		return nil, fmt.Errorf("%s: order %d: %w", op, id, err)
	}

	c.cache.Set(cacheKey, order)

	return &order, nil
}
