package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
	orderactivities "github.com/LilDoor/Northwind-order-system-WebApi/internal/platform/temporal/activities/orders"
)

// RunOrderPersistenceSequence executes the ordered set of activities needed to persist an order aggregate.
func RunOrderPersistenceSequence(ctx workflow.Context, order *ordersdomain.Order) (int64, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order persistence sequence started")
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.InvalidOrderErrorType,
				orderactivities.StorageFailureErrorType,
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var orderID int64
	err := workflow.ExecuteActivity(ctx, orderactivities.PersistOrderActivityName, order).Get(ctx, &orderID)
	if err != nil {
		logger.Error("order persistence sequence failed", "error", err)
		return 0, err
	}
	logger.Info("order persistence sequence completed", "orderId", orderID)
	return orderID, nil
}
