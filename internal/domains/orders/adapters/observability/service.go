package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersapp "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/application"
	ordersdomain "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
	ordersports "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/ports"
)

const tracerName = "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
// Failure kinds are distinguished here for diagnostics: not-found and invalid
// input log as warnings, repository failures as errors with their cause, and
// anything else as unexpected.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) GetOrder(ctx context.Context, orderID int64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder",
		trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", orderID))
	}
	s.logInfo(ctx, "order loaded", slog.Int64("order.id", result.ID), slog.Int("order.details", len(result.Details)))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, skip, count int) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders",
		trace.WithAttributes(attribute.Int("page.skip", skip), attribute.Int("page.count", count)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, skip, count)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders",
			slog.Int("page.skip", skip), slog.Int("page.count", count))
	}
	span.SetAttributes(attribute.Int("page.returned", len(result)))
	return result, nil
}

func (s *Service) AddOrder(ctx context.Context, order *ordersdomain.Order) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.AddOrder")
	defer span.End()

	s.logInfo(ctx, "adding order", customerAttr(order))
	id, err := s.inner.AddOrder(ctx, order)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to add order", customerAttr(order))
	}
	span.SetAttributes(attribute.Int64("order.id", id))
	s.metrics.recordAdded(ctx)
	s.logInfo(ctx, "order added", slog.Int64("order.id", id), customerAttr(order))
	return id, nil
}

func (s *Service) UpdateOrder(ctx context.Context, order *ordersdomain.Order) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrder", trace.WithAttributes(orderIDAttr(order)))
	defer span.End()

	s.logInfo(ctx, "updating order", orderIDLogAttr(order))
	if err := s.inner.UpdateOrder(ctx, order); err != nil {
		return s.handleError(ctx, span, err, "failed to update order", orderIDLogAttr(order))
	}
	s.metrics.recordUpdated(ctx)
	s.logInfo(ctx, "order updated", orderIDLogAttr(order))
	return nil
}

func (s *Service) RemoveOrder(ctx context.Context, orderID int64) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.RemoveOrder",
		trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "removing order", slog.Int64("order.id", orderID))
	if err := s.inner.RemoveOrder(ctx, orderID); err != nil {
		return s.handleError(ctx, span, err, "failed to remove order", slog.Int64("order.id", orderID))
	}
	s.metrics.recordRemoved(ctx)
	s.logInfo(ctx, "order removed", slog.Int64("order.id", orderID))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) log(ctx context.Context, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	switch {
	case errors.Is(err, ordersports.ErrOrderNotFound),
		errors.Is(err, ordersports.ErrInvalidRange),
		errors.Is(err, ordersapp.ErrInvalidInput):
		s.log(ctx, slog.LevelWarn, msg, err, attrs...)
	case isRepositoryError(err):
		s.log(ctx, slog.LevelError, msg, err, append(attrs, slog.String("kind", "repository"))...)
	default:
		s.log(ctx, slog.LevelError, msg, err, append(attrs, slog.String("kind", "unexpected"))...)
	}
	return err
}

func isRepositoryError(err error) bool {
	var repoErr *ordersports.RepositoryError
	return errors.As(err, &repoErr)
}

func orderIDAttr(order *ordersdomain.Order) attribute.KeyValue {
	if order == nil {
		return attribute.Int64("order.id", 0)
	}
	return attribute.Int64("order.id", order.ID)
}

func orderIDLogAttr(order *ordersdomain.Order) slog.Attr {
	if order == nil {
		return slog.Int64("order.id", 0)
	}
	return slog.Int64("order.id", order.ID)
}

func customerAttr(order *ordersdomain.Order) slog.Attr {
	if order == nil {
		return slog.String("order.customer", "")
	}
	return slog.String("order.customer", order.Customer.Code.String())
}

type serviceMetrics struct {
	ordersAdded   metric.Int64Counter
	ordersUpdated metric.Int64Counter
	ordersRemoved metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	added, _ := m.Int64Counter("orders.service.orders_added", metric.WithDescription("Number of orders added"))
	updated, _ := m.Int64Counter("orders.service.orders_updated", metric.WithDescription("Number of orders updated"))
	removed, _ := m.Int64Counter("orders.service.orders_removed", metric.WithDescription("Number of orders removed"))
	return serviceMetrics{ordersAdded: added, ordersUpdated: updated, ordersRemoved: removed}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	if m.ordersAdded != nil {
		m.ordersAdded.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.ordersUpdated != nil {
		m.ordersUpdated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	if m.ordersRemoved != nil {
		m.ordersRemoved.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)
