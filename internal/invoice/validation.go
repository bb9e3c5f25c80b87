package invoice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"invoicesync/pkg/models"
)

// validate caches struct metadata; safe for concurrent use.
var validate = validator.New()

// ValidateOrder checks the invoice precondition on a marketplace order:
// identifier, billing email, at least one line item, creation date and a
// shipping destination. It runs before any catalog or contact lookup, so
// a hopeless order costs no API calls.
func ValidateOrder(order *models.Order) error {
	if order == nil {
		return fmt.Errorf("%w: no order", ErrInvalidOrder)
	}

	err := validate.Struct(order)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		missing := make([]string, 0, len(fields))
		for _, field := range fields {
			missing = append(missing, field.Namespace())
		}
		return fmt.Errorf("%w: missing %s", ErrInvalidOrder, strings.Join(missing, ", "))
	}

	return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
}
