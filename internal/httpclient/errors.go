package httpclient

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// APIError is a terminal non-2xx response from an upstream API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP Error: [%d] %s", e.StatusCode, e.Body)
}

// ErrorFromResponse returns nil for 2xx responses and an *APIError
// otherwise. Callers map 404 onto their own not-found sentinel.
func ErrorFromResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	return &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
}
