package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/application"
	ordersdomain "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
	ordersports "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/ports"
)

const (
	// PersistOrderActivityName stores a new order aggregate with its snapshots.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// InvalidOrderErrorType marks validation failures so the workflow does not retry them.
	InvalidOrderErrorType = "InvalidOrder"
	// StorageFailureErrorType marks repository faults, reported to the caller rather than retried.
	StorageFailureErrorType = "StorageFailure"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PersistOrder stores a new order aggregate and returns its assigned identifier.
func (a *Activities) PersistOrder(ctx context.Context, order *ordersdomain.Order) (int64, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized")
		return 0, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "customer", customerCode(order))
	orderID, err := a.service.AddOrder(ctx, order)
	if err != nil {
		logger.Error("PersistOrder activity failed", "customer", customerCode(order), "error", err)
		if errors.Is(err, ordersapp.ErrInvalidInput) {
			return 0, temporal.NewNonRetryableApplicationError(err.Error(), InvalidOrderErrorType, err)
		}
		var repoErr *ordersports.RepositoryError
		if errors.As(err, &repoErr) {
			return 0, temporal.NewNonRetryableApplicationError(err.Error(), StorageFailureErrorType, err)
		}
		return 0, err
	}
	logger.Info("PersistOrder activity completed", "orderId", orderID)
	return orderID, nil
}

func customerCode(order *ordersdomain.Order) string {
	if order == nil {
		return ""
	}
	return order.Customer.Code.String()
}
