package httpclient

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// RetryPolicy bounds how transient upstream failures are retried. Both
// outbound clients share one policy.
type RetryPolicy struct {
	MaxAttempts       int
	WaitMin           time.Duration
	WaitMax           time.Duration
	RetryableStatuses []int
}

// DefaultRetryPolicy retries rate limits and transient server errors, up
// to three attempts with exponential backoff between 4 and 10 seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		WaitMin:           4 * time.Second,
		WaitMax:           10 * time.Second,
		RetryableStatuses: []int{429, 500, 502, 503},
	}
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Retry   RetryPolicy
}

// New builds a resty client with the shared retry behaviour applied.
// Authentication is up to the caller.
func New(cfg Config) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json")

	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	retry := cfg.Retry
	if retry.MaxAttempts > 1 {
		client.SetRetryCount(retry.MaxAttempts - 1).
			SetRetryWaitTime(retry.WaitMin).
			SetRetryMaxWaitTime(retry.WaitMax).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				if r == nil {
					return false
				}
				for _, status := range retry.RetryableStatuses {
					if r.StatusCode() == status {
						return true
					}
				}
				return false
			})
	}

	return client
}
