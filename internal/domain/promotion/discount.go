package promotion

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/best-buy/internal/domain/domainerr"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
	two     = decimal.NewFromInt(2)
)

var (
	_ Promotion = (*PercentOff)(nil)
	_ Promotion = (*SecondHalfPrice)(nil)
	_ Promotion = (*ThirdOneFree)(nil)
)

// PercentOff takes percent% off the undiscounted line total.
type PercentOff struct {
	name    string
	percent decimal.Decimal
}

// NewPercentOff returns a PercentOff promotion. It fails with
// domainerr.ErrInvalidArgument unless 0 <= percent <= 100.
func NewPercentOff(name string, percent decimal.Decimal) (*PercentOff, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return nil, &domainerr.ArgumentError{
			Field:  "percent",
			Reason: "must be between 0 and 100, got " + percent.String(),
		}
	}
	return &PercentOff{name: name, percent: percent}, nil
}

func (p *PercentOff) Name() string { return p.name }

func (p *PercentOff) Kind() Kind { return KindPercentOff }

// Percent returns the configured discount percentage.
func (p *PercentOff) Percent() decimal.Decimal { return p.percent }

// Apply returns unitPrice * quantity * (1 - percent/100).
func (p *PercentOff) Apply(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	total := lineTotal(unitPrice, quantity)
	discount := total.Mul(p.percent).Div(hundred)
	return total.Sub(discount)
}

// SecondHalfPrice charges full price for ceil(q/2) units and half price for
// the remaining floor(q/2).
type SecondHalfPrice struct {
	name string
}

// NewSecondHalfPrice returns a SecondHalfPrice promotion.
func NewSecondHalfPrice(name string) *SecondHalfPrice {
	return &SecondHalfPrice{name: name}
}

func (p *SecondHalfPrice) Name() string { return p.name }

func (p *SecondHalfPrice) Kind() Kind { return KindSecondHalfPrice }

func (p *SecondHalfPrice) Apply(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	q := nonNegative(quantity)
	full := lineTotal(unitPrice, (q+1)/2)
	halved := lineTotal(unitPrice, q/2).Mul(half)
	return full.Add(halved)
}

// ThirdOneFree charges two units for every complete group of three; the
// remaining q mod 3 units cost full price.
type ThirdOneFree struct {
	name string
}

// NewThirdOneFree returns a ThirdOneFree promotion.
func NewThirdOneFree(name string) *ThirdOneFree {
	return &ThirdOneFree{name: name}
}

func (p *ThirdOneFree) Name() string { return p.name }

func (p *ThirdOneFree) Kind() Kind { return KindThirdOneFree }

func (p *ThirdOneFree) Apply(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	q := nonNegative(quantity)
	groups := lineTotal(unitPrice, q/3).Mul(two)
	return groups.Add(lineTotal(unitPrice, q%3))
}

// lineTotal returns unitPrice * quantity, treating negative quantities as zero.
func lineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(nonNegative(quantity))))
}

func nonNegative(q int) int {
	if q < 0 {
		return 0
	}
	return q
}
