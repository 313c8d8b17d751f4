package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/xenking/best-buy/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository in process memory. Orders
// live as long as the process does.
type OrderRepository struct {
	orders []order.Order
	byID   map[string]int
}

// NewOrderRepository returns an empty OrderRepository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{byID: make(map[string]int)}
}

// Create records a copy of o. Order IDs must be unique.
func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("creating order: order is nil")
	}
	if _, ok := r.byID[o.ID]; ok {
		return fmt.Errorf("creating order %q: duplicate id", o.ID)
	}

	r.byID[o.ID] = len(r.orders)
	r.orders = append(r.orders, clone(*o))
	return nil
}

// Get returns a copy of the order with the given ID.
func (r *OrderRepository) Get(_ context.Context, id string) (*order.Order, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	o := clone(r.orders[i])
	return &o, nil
}

// List returns copies of all orders in creation order.
func (r *OrderRepository) List(_ context.Context) ([]order.Order, error) {
	list := make([]order.Order, len(r.orders))
	for i, o := range r.orders {
		list[i] = clone(o)
	}
	return list, nil
}

func clone(o order.Order) order.Order {
	o.Lines = slices.Clone(o.Lines)
	return o
}
