package ports

import (
	"context"

	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
)

// Service exposes the order use cases to adapters.
type Service interface {
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, skip, count int) ([]*domain.Order, error)
	AddOrder(ctx context.Context, order *domain.Order) (int64, error)
	UpdateOrder(ctx context.Context, order *domain.Order) error
	RemoveOrder(ctx context.Context, orderID int64) error
}
