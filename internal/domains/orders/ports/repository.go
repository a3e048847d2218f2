package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
)

var (
	// ErrOrderNotFound signals the requested order identity does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidRange signals pagination parameters outside their domain.
	ErrInvalidRange = errors.New("skip must be non-negative and count positive")
)

// RepositoryError wraps an underlying storage failure. The cause is preserved
// for diagnostics and never leaked across the transport boundary.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("order repository: %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// WrapStorageErr wraps err into a RepositoryError unless it is already one of
// the taxonomy errors callers branch on.
func WrapStorageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrInvalidRange) {
		return err
	}
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return err
	}
	return &RepositoryError{Op: op, Err: err}
}

// Repository is the order persistence contract. Each operation is a single
// unit of work against the storage engine.
type Repository interface {
	// GetOrder returns the full aggregate with customer, employee, shipper
	// and line items populated, or ErrOrderNotFound.
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	// ListOrders returns orders ascending by identity, offset by skip and
	// limited to count, without line items. Fails with ErrInvalidRange when
	// skip < 0 or count <= 0.
	ListOrders(ctx context.Context, skip, count int) ([]*domain.Order, error)
	// AddOrder persists a new header plus the denormalized customer and
	// employee rows and returns the engine-assigned identity.
	AddOrder(ctx context.Context, order *domain.Order) (int64, error)
	// UpdateOrder replaces every mutable header field of an existing order
	// and re-asserts the customer/employee snapshots. Line items are not
	// touched. Fails with ErrOrderNotFound when the identity is unknown.
	UpdateOrder(ctx context.Context, order *domain.Order) error
	// RemoveOrder deletes the order header, or fails with ErrOrderNotFound.
	RemoveOrder(ctx context.Context, orderID int64) error
}
