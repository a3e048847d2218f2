package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	ordersdomain "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
	"github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/ports"
	orderworkflows "github.com/LilDoor/Northwind-order-system-WebApi/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderSubmissionTaskQueue}
}

// SubmitOrder starts the Temporal workflow that persists an order aggregate.
func (o *TemporalOrderWorkflows) SubmitOrder(ctx context.Context, order *ordersdomain.Order) (int64, error) {
	if o == nil || o.client == nil {
		return 0, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        buildOrderSubmissionWorkflowID(order, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderSubmissionWorkflow,
		orderworkflows.OrderSubmissionWorkflowInput{Order: order, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
			var result orderworkflows.OrderSubmissionResult
			if err := existingRun.Get(ctx, &result); err != nil {
				return 0, err
			}
			return result.OrderID, nil
		}
		return 0, err
	}
	var result orderworkflows.OrderSubmissionResult
	if err := run.Get(ctx, &result); err != nil {
		return 0, err
	}
	return result.OrderID, nil
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// SubmitOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) SubmitOrder(ctx context.Context, order *ordersdomain.Order) (int64, error) {
	if o == nil || o.service == nil {
		return 0, errors.New("inline order workflows not configured")
	}
	return o.service.AddOrder(ctx, order)
}

func buildOrderSubmissionWorkflowID(order *ordersdomain.Order, traceComponent string) string {
	customer := ""
	if order != nil {
		customer = order.Customer.Code.String()
	}
	return fmt.Sprintf("order-submission-%s-%s", customer, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceComponent := workflowTraceID(ctx); traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
