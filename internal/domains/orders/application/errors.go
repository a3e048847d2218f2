package application

import (
	"errors"
	"fmt"

	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrNilOrder signals the caller passed no order at all.
	ErrNilOrder = fmt.Errorf("%w: order is nil", ErrInvalidInput)
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyCustomerCode) ||
		errors.Is(err, domain.ErrMissingOrderDate) ||
		errors.Is(err, domain.ErrMissingEmployee) ||
		errors.Is(err, domain.ErrMissingShipper) ||
		errors.Is(err, domain.ErrNegativeFreight) ||
		errors.Is(err, domain.ErrRequiredDateBefore) ||
		errors.Is(err, domain.ErrShippedDateBefore) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativeUnitPrice) ||
		errors.Is(err, domain.ErrInvalidDiscount) ||
		errors.Is(err, domain.ErrDuplicateProduct) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
