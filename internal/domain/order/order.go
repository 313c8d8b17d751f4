package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Order is a completed checkout.
type Order struct {
	ID        string
	Lines     []Line
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Line records what one checkout line bought. Subtotal is the quoted price
// of the line before purchase.
type Line struct {
	ProductName string
	Quantity    int
	Subtotal    decimal.Decimal
}

// Units returns the number of units across all lines.
func (o *Order) Units() int {
	units := 0
	for _, l := range o.Lines {
		units += l.Quantity
	}
	return units
}

// Repository defines storage operations for the order history.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
}
