package application

import (
	"context"

	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/ports"
)

// Service orchestrates the order use cases. Validation is two-phase: cheap
// shape and range checks happen here before any I/O, existence checks happen
// in the repository at the storage boundary.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, orderID)
}

func (s *Service) ListOrders(ctx context.Context, skip, count int) ([]*domain.Order, error) {
	if skip < 0 || count <= 0 {
		return nil, ports.ErrInvalidRange
	}
	return s.repo.ListOrders(ctx, skip, count)
}

func (s *Service) AddOrder(ctx context.Context, order *domain.Order) (int64, error) {
	if order == nil {
		return 0, ErrNilOrder
	}
	if err := order.Validate(); err != nil {
		return 0, mapError(err)
	}
	return s.repo.AddOrder(ctx, order)
}

func (s *Service) UpdateOrder(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return ErrNilOrder
	}
	if err := order.Validate(); err != nil {
		return mapError(err)
	}
	return s.repo.UpdateOrder(ctx, order)
}

func (s *Service) RemoveOrder(ctx context.Context, orderID int64) error {
	return s.repo.RemoveOrder(ctx, orderID)
}

var _ ports.Service = (*Service)(nil)
