package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// ErrDuplicateOrderNumber signals a unique-constraint hit on
	// orders.order_number; callers regenerate the number and retry.
	ErrDuplicateOrderNumber = errors.New("order number already exists")

	// ErrDuplicateEntry signals any other unique-constraint violation.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// InsufficientStockError is returned when the conditional stock decrement
// affects no rows, i.e. another order consumed the stock first.
type InsufficientStockError struct {
	ProductID uuid.UUID
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
