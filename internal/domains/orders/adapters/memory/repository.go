package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter used for unit tests
// and DSN-less development runs. It mirrors the postgres adapter's contract,
// including identity assignment and brief list projections.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}}
}

func (r *Repository) GetOrder(_ context.Context, orderID int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) ListOrders(_ context.Context, skip, count int) ([]*domain.Order, error) {
	if skip < 0 || count <= 0 {
		return nil, ports.ErrInvalidRange
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.orders))
	for id := range r.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	list := make([]*domain.Order, 0, count)
	for i, id := range ids {
		if i < skip {
			continue
		}
		if len(list) == count {
			break
		}
		brief := cloneOrder(r.orders[id])
		brief.Details = nil
		list = append(list, brief)
	}
	return list, nil
}

func (r *Repository) AddOrder(_ context.Context, order *domain.Order) (int64, error) {
	if order == nil {
		return 0, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.Validate(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	r.orders[clone.ID] = clone
	return clone.ID, nil
}

func (r *Repository) UpdateOrder(_ context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[clone.ID]
	if !ok {
		return ports.ErrOrderNotFound
	}
	// Header replace only; line items stay whatever they were.
	clone.Details = existing.Details
	r.orders[clone.ID] = clone
	return nil
}

func (r *Repository) RemoveOrder(_ context.Context, orderID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[orderID]; !ok {
		return ports.ErrOrderNotFound
	}
	delete(r.orders, orderID)
	return nil
}

// Seed stores an order under its own identifier and advances the sequence
// past it. Contract and fixture tests use it to pin well-known ids.
func (r *Repository) Seed(order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[clone.ID] = clone
	if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	return nil
}

// Reset drops all stored orders and restarts the identifier sequence.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = map[int64]*domain.Order{}
	r.nextID = 0
}

// SetDetails attaches line items to a stored order, standing in for the
// detail rows an external process writes in the real schema.
func (r *Repository) SetDetails(orderID int64, details []domain.OrderDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return ports.ErrOrderNotFound
	}
	withDetails, err := order.WithDetails(details)
	if err != nil {
		return err
	}
	r.orders[orderID] = withDetails
	return nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	if order.Details != nil {
		clone.Details = make([]domain.OrderDetail, len(order.Details))
		copy(clone.Details, order.Details)
	}
	if order.ShippedDate != nil {
		shipped := *order.ShippedDate
		clone.ShippedDate = &shipped
	}
	return &clone
}
