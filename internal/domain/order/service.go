package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/xenking/best-buy/internal/domain/product"
	"github.com/xenking/best-buy/internal/domain/store"
)

const tracerName = "github.com/xenking/best-buy/internal/domain/order"

// Sentinel errors for order validation.
var (
	ErrEmptyItems      = fmt.Errorf("items required")
	ErrInvalidQuantity = fmt.Errorf("quantity must be greater than 0")
)

// ProductNotFoundError indicates a line refers to a catalog position that
// does not exist.
type ProductNotFoundError struct {
	Index int
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product #%d not found", e.Index+1)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	Index    int
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product #%d, got %d", e.Index+1, e.Quantity)
}

func (e *InvalidQuantityError) Unwrap() error {
	return ErrInvalidQuantity
}

// Catalog is the part of the store the order service works against.
type Catalog interface {
	Products() []*product.Product
	Checkout(lines []store.Line) (decimal.Decimal, error)
}

// Item is a requested line: a zero-based position in the catalog listing
// and the number of units wanted.
type Item struct {
	Index    int
	Quantity int
}

// PlaceOrderRequest holds the input for placing an order.
type PlaceOrderRequest struct {
	Items []Item
}

// PlaceOrderResult holds the output of a successfully placed order.
type PlaceOrderResult struct {
	Order    *Order
	Products []*product.Product
}

// Option configures a Service.
type Option func(*Service)

// WithTracer sets the tracer used for order spans.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter enables order metrics on the given meter.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// Service encapsulates order placement business logic.
type Service struct {
	catalog Catalog
	orders  Repository
	now     func() time.Time
	tracer  trace.Tracer
	metrics serviceMetrics
}

// NewService creates an order Service over the given catalog and order history.
func NewService(catalog Catalog, orders Repository, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		orders:  orders,
		now:     time.Now,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder resolves the requested catalog positions, checks out all lines
// against the store, records the order and returns it.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(attribute.Int("order.items", len(req.Items))))
	defer span.End()

	result, err := s.placeOrder(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.recordRejected(ctx)
		zctx.From(ctx).Warn("Order rejected", zap.Error(err))
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", result.Order.ID))
	s.metrics.recordPlaced(ctx, result.Order.Units())
	zctx.From(ctx).Info("Order placed",
		zap.String("order_id", result.Order.ID),
		zap.Int("lines", len(result.Order.Lines)),
		zap.Stringer("total", result.Order.Total),
	)
	return result, nil
}

func (s *Service) placeOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	catalog := s.catalog.Products()

	// Resolve every item before touching any stock.
	lines := make([]store.Line, len(req.Items))
	products := make([]*product.Product, len(req.Items))
	for i, item := range req.Items {
		if item.Index < 0 || item.Index >= len(catalog) {
			return nil, &ProductNotFoundError{Index: item.Index}
		}
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{Index: item.Index, Quantity: item.Quantity}
		}
		p := catalog[item.Index]
		lines[i] = store.Line{Product: p, Quantity: item.Quantity}
		products[i] = p
	}

	// Quote before checkout: purchases may deactivate products but never
	// change their price.
	orderLines := make([]Line, len(lines))
	for i, l := range lines {
		orderLines[i] = Line{
			ProductName: l.Product.Name(),
			Quantity:    l.Quantity,
			Subtotal:    l.Product.Quote(l.Quantity),
		}
	}

	// Stock taken by a successful checkout is returned if the order cannot
	// be recorded.
	before := make(map[*product.Product]product.State, len(products))
	for _, p := range products {
		if _, ok := before[p]; !ok {
			before[p] = p.Snapshot()
		}
	}

	total, err := s.catalog.Checkout(lines)
	if err != nil {
		return nil, errors.Wrap(err, "checkout")
	}

	o := &Order{
		ID:        uuid.New().String(),
		Lines:     orderLines,
		Total:     total,
		CreatedAt: s.now(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		for p, state := range before {
			p.Restore(state)
		}
		return nil, errors.Wrap(err, "create order")
	}

	return &PlaceOrderResult{
		Order:    o,
		Products: products,
	}, nil
}

// History returns all recorded orders, oldest first.
func (s *Service) History(ctx context.Context) ([]Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}
