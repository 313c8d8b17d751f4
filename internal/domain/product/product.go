package product

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xenking/best-buy/internal/domain/domainerr"
	"github.com/xenking/best-buy/internal/domain/promotion"
)

// Product is a catalog item. The stock behaviour is fixed at construction by
// one of NewStandard, NewUnlimited or NewLimited; the pricing behaviour is
// set independently through SetPromotion.
type Product struct {
	name      string
	price     decimal.Decimal
	quantity  int
	active    bool
	promotion promotion.Promotion
	stock     stockPolicy
}

// State is the mutable part of a Product, captured by Snapshot.
type State struct {
	Quantity int
	Active   bool
}

// NewStandard returns a product with a finite stock of quantity units.
// A product created with zero stock starts inactive.
func NewStandard(name string, price decimal.Decimal, quantity int) (*Product, error) {
	if err := validate(name, price); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, &domainerr.ArgumentError{Field: "quantity", Reason: "must not be negative"}
	}
	return &Product{
		name:     name,
		price:    price,
		quantity: quantity,
		active:   quantity > 0,
		stock:    standardStock{},
	}, nil
}

// NewUnlimited returns a product without countable stock, such as a digital
// license. It is always active unless deactivated explicitly.
func NewUnlimited(name string, price decimal.Decimal) (*Product, error) {
	if err := validate(name, price); err != nil {
		return nil, err
	}
	return &Product{
		name:   name,
		price:  price,
		active: true,
		stock:  unlimitedStock{},
	}, nil
}

// NewLimited returns a stock-tracked product that can be bought at most
// maxPerOrder units at a time.
func NewLimited(name string, price decimal.Decimal, quantity, maxPerOrder int) (*Product, error) {
	if maxPerOrder < 1 {
		return nil, &domainerr.ArgumentError{Field: "max per order", Reason: "must be at least 1"}
	}
	p, err := NewStandard(name, price, quantity)
	if err != nil {
		return nil, err
	}
	p.stock = limitedStock{max: maxPerOrder}
	return p, nil
}

func validate(name string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return &domainerr.ArgumentError{Field: "name", Reason: "must not be empty"}
	}
	if price.IsNegative() {
		return &domainerr.ArgumentError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

func (p *Product) Name() string { return p.name }

func (p *Product) Price() decimal.Decimal { return p.price }

func (p *Product) Kind() Kind { return p.stock.kind() }

// Quantity returns the units in stock. Unlimited products report zero.
func (p *Product) Quantity() int { return p.quantity }

func (p *Product) IsActive() bool { return p.active }

// Tracked reports whether the product keeps a stock count.
func (p *Product) Tracked() bool { return p.stock.tracked() }

// MaxPerOrder returns the per-order cap, or zero when there is none.
func (p *Product) MaxPerOrder() int { return p.stock.maxPerOrder() }

// Promotion returns the attached promotion, or nil.
func (p *Product) Promotion() promotion.Promotion { return p.promotion }

// SetPromotion attaches promo, replacing any previous one. A nil promo
// detaches the current promotion.
func (p *Product) SetPromotion(promo promotion.Promotion) {
	p.promotion = promo
}

// Quote returns the price of quantity units without buying them.
func (p *Product) Quote(quantity int) decimal.Decimal {
	if p.promotion != nil {
		return p.promotion.Apply(p.price, quantity)
	}
	return p.price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Purchase buys quantity units and returns the amount charged. On failure
// the product is left unchanged and the error unwraps to
// domainerr.ErrInvalidOperation.
func (p *Product) Purchase(quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, p.reject(domainerr.RuleNonPositiveQuantity, quantity, 0)
	}
	if !p.active {
		return decimal.Zero, p.reject(domainerr.RuleInactive, quantity, 0)
	}
	if err := p.stock.check(p, quantity); err != nil {
		return decimal.Zero, err
	}

	total := p.Quote(quantity)
	if p.stock.tracked() {
		p.quantity -= quantity
		if p.quantity == 0 {
			p.active = false
		}
	}
	return total, nil
}

// SetQuantity overwrites the stock count of a stock-tracked product.
// Setting it to zero deactivates the product; a positive count never
// reactivates it.
func (p *Product) SetQuantity(quantity int) error {
	if !p.stock.tracked() {
		return p.reject(domainerr.RuleUntracked, quantity, 0)
	}
	if quantity < 0 {
		return &domainerr.ArgumentError{Field: "quantity", Reason: "must not be negative"}
	}
	p.quantity = quantity
	if quantity == 0 {
		p.active = false
	}
	return nil
}

// Activate marks the product as purchasable again.
func (p *Product) Activate() error {
	if p.stock.tracked() && p.quantity == 0 {
		return p.reject(domainerr.RuleOutOfStock, 0, 0)
	}
	p.active = true
	return nil
}

// Deactivate withdraws the product from sale.
func (p *Product) Deactivate() {
	p.active = false
}

// Snapshot captures the mutable state for a later Restore.
func (p *Product) Snapshot() State {
	return State{Quantity: p.quantity, Active: p.active}
}

// Restore resets the mutable state to a previous Snapshot.
func (p *Product) Restore(s State) {
	p.quantity = s.Quantity
	p.active = s.Active
}

// Display returns a one-line human-readable description, e.g.
// "MacBook Air M2, Price: $1450, Quantity: 100, Promotion: None".
func (p *Product) Display() string {
	promo := "None"
	if p.promotion != nil {
		promo = p.promotion.Name()
	}
	return fmt.Sprintf("%s, Price: $%s, %s, Promotion: %s",
		p.name, p.price.String(), p.stock.describe(p), promo)
}

func (p *Product) String() string {
	return p.Display()
}

func (p *Product) reject(rule domainerr.Rule, requested, limit int) error {
	return &domainerr.OperationError{
		Product:   p.name,
		Rule:      rule,
		Requested: requested,
		Limit:     limit,
	}
}
