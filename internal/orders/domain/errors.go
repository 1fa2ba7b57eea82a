package domain

import "go-orders/pkg/errors"

// Domain-specific errors
var (
	ErrNoItems           = errors.NewValidation("order must contain at least one item", nil)
	ErrProductIDRequired = errors.NewValidation("product_id is required", nil)
	ErrInvalidQuantity   = errors.NewValidation("quantity must be greater than 0", nil)

	// ErrCreateFailed is the opaque error returned to callers for any
	// failure inside the create pipeline; the detail stays in the logs.
	ErrCreateFailed = errors.NewValidation("order creation failed, check logs", nil)
)

// NewOrderNotFound creates a not found error with the order ID
func NewOrderNotFound(id string) error {
	return errors.NewNotFound("order", id)
}

// NewInvalidStatus creates a validation error for an unknown status value
func NewInvalidStatus(status string) error {
	return errors.NewValidation("invalid order status: "+status, nil)
}

// NewProductLookupFault reports a product id missing from a resolved
// snapshot that was guaranteed to contain it
func NewProductLookupFault(productID string) error {
	return errors.NewInternal("product "+productID+" missing from validated snapshot", nil)
}
