package service

import (
	"errors"
	"fmt"

	"go-pos-backoffice/pkg/validator"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrSKUExists        = errors.New("SKU already exists")
	ErrEmailExists      = errors.New("email already exists")
	ErrReviewExists     = errors.New("customer has already reviewed this product")
	ErrNoPurchase       = errors.New("customer has not purchased this product")

	// ErrConcurrencyConflict signals a retryable collision (e.g. two
	// checkouts landing on the same transaction number). The caller
	// should resubmit; nothing was persisted.
	ErrConcurrencyConflict = errors.New("concurrent transaction conflict, please retry")
)

// ValidationError rejects a request before any mutation happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// firstValidationError converts the first struct-tag failure into a
// ValidationError, matching how handlers report them.
func firstValidationError(errs []*validator.ErrorResponse) *ValidationError {
	if len(errs) == 0 {
		return nil
	}
	return newValidationError("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
}

// InsufficientStockError aborts a whole checkout: it names the product
// and carries the requested vs available quantities so the caller can
// react programmatically.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
