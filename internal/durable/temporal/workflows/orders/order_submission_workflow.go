package orders

import (
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
	"github.com/LilDoor/Northwind-order-system-WebApi/internal/durable/temporal/sequences"
)

const (
	// OrderSubmissionWorkflowName is the public identifier for registering the workflow.
	OrderSubmissionWorkflowName = "orders.workflows.Submission"
	// OrderSubmissionTaskQueue is the queue consumed by the worker processing order workflows.
	OrderSubmissionTaskQueue = "ORDER_SUBMISSION"
)

// OrderSubmissionWorkflowInput captures the payload required to persist a new order.
type OrderSubmissionWorkflowInput struct {
	Order   *ordersdomain.Order
	TraceID string
}

// OrderSubmissionResult carries the identifier assigned to the stored order.
type OrderSubmissionResult struct {
	OrderID int64
}

// OrderSubmissionWorkflow orchestrates the activities needed to persist an order aggregate.
func OrderSubmissionWorkflow(ctx workflow.Context, input OrderSubmissionWorkflowInput) (*OrderSubmissionResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderSubmissionWorkflow started", withTraceID(input.TraceID, "customer", customerCode(input.Order))...)
	orderID, err := sequences.RunOrderPersistenceSequence(ctx, input.Order)
	if err != nil {
		logger.Error("OrderSubmissionWorkflow failed", withTraceID(input.TraceID, "customer", customerCode(input.Order), "error", err)...)
		return nil, err
	}
	logger.Info("OrderSubmissionWorkflow completed", withTraceID(input.TraceID, "orderId", orderID)...)
	return &OrderSubmissionResult{OrderID: orderID}, nil
}

func customerCode(order *ordersdomain.Order) string {
	if order == nil {
		return ""
	}
	return order.Customer.Code.String()
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
