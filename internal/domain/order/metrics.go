package order

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type serviceMetrics struct {
	ordersPlaced   metric.Int64Counter
	ordersRejected metric.Int64Counter
	unitsSold      metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	return serviceMetrics{
		ordersPlaced:   counter(m, "orders.placed", "Number of orders placed"),
		ordersRejected: counter(m, "orders.rejected", "Number of orders rejected"),
		unitsSold:      counter(m, "order.units", "Units sold across placed orders"),
	}
}

// counter returns nil when the instrument cannot be created, which disables
// recording for it.
func counter(m metric.Meter, name, description string) metric.Int64Counter {
	c, err := m.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return nil
	}
	return c
}

func (m serviceMetrics) recordPlaced(ctx context.Context, units int) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
	if m.unitsSold != nil {
		m.unitsSold.Add(ctx, int64(units))
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1)
	}
}
