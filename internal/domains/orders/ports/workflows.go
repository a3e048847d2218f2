package ports

import (
	"context"

	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes the durable order submission path. Submission
// semantics are identical to Service.AddOrder whichever implementation runs.
type WorkflowOrchestrator interface {
	SubmitOrder(ctx context.Context, order *domain.Order) (int64, error)
}
