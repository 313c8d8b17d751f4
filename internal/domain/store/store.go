package store

import (
	"slices"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/best-buy/internal/domain/product"
)

// Line is one (product, requested quantity) pair of a checkout.
type Line struct {
	Product  *product.Product
	Quantity int
}

// Option configures a Store.
type Option func(*Store)

// WithRollback makes Checkout all-or-nothing: when a line fails, every
// product touched by earlier lines is restored to its state before the
// checkout started.
func WithRollback() Option {
	return func(s *Store) {
		s.rollback = true
	}
}

// Store owns the ordered catalog of products.
type Store struct {
	products []*product.Product
	rollback bool
}

// New creates a Store holding products in the given order. The store keeps
// its own copy of the slice; the products themselves are shared.
func New(products []*product.Product, opts ...Option) *Store {
	s := &Store{products: slices.Clone(products)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Products returns the live catalog. Mutations made through Purchase are
// visible to the caller; Add and Remove never rewrite a returned slice.
func (s *Store) Products() []*product.Product {
	return s.products
}

// ActiveProducts returns the products currently available for purchase,
// preserving catalog order.
func (s *Store) ActiveProducts() []*product.Product {
	active := make([]*product.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// TotalQuantity returns the number of units in stock across the catalog.
// Products without tracked stock contribute nothing.
func (s *Store) TotalQuantity() int {
	total := 0
	for _, p := range s.products {
		total += p.Quantity()
	}
	return total
}

// Add appends p to the catalog.
func (s *Store) Add(p *product.Product) {
	s.products = append(s.products, p)
}

// Remove deletes the first catalog entry that is p and reports whether one
// was found.
func (s *Store) Remove(p *product.Product) bool {
	for i, candidate := range s.products {
		if candidate == p {
			s.products = append(s.products[:i:i], s.products[i+1:]...)
			return true
		}
	}
	return false
}

// Checkout purchases every line in order and returns the summed total.
//
// Without WithRollback, a failing line leaves the deductions of the lines
// before it in place; only the failing line itself is unchanged. The error
// names the 1-based line and keeps the product error reachable through
// errors.Is and errors.As.
func (s *Store) Checkout(lines []Line) (decimal.Decimal, error) {
	var snapshots map[*product.Product]product.State
	if s.rollback {
		snapshots = make(map[*product.Product]product.State, len(lines))
	}

	total := decimal.Zero
	for i, line := range lines {
		if line.Product == nil {
			s.restore(snapshots)
			return decimal.Zero, errors.Errorf("line %d: product is nil", i+1)
		}
		if snapshots != nil {
			if _, seen := snapshots[line.Product]; !seen {
				snapshots[line.Product] = line.Product.Snapshot()
			}
		}

		price, err := line.Product.Purchase(line.Quantity)
		if err != nil {
			s.restore(snapshots)
			return decimal.Zero, errors.Wrapf(err, "line %d (%s)", i+1, line.Product.Name())
		}
		total = total.Add(price)
	}
	return total, nil
}

func (s *Store) restore(snapshots map[*product.Product]product.State) {
	for p, state := range snapshots {
		p.Restore(state)
	}
}
