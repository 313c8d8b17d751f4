package promotion

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/best-buy/internal/domain/domainerr"
)

// Kind enumerates the supported promotion strategies.
type Kind string

const (
	// KindPercentOff takes a fixed percentage off the line total.
	KindPercentOff Kind = "percent_off"
	// KindSecondHalfPrice charges half price for every second unit.
	KindSecondHalfPrice Kind = "second_half_price"
	// KindThirdOneFree makes every third unit free.
	KindThirdOneFree Kind = "third_one_free"
)

// Promotion is a named, stateless pricing rule. Implementations must be
// deterministic and free of side effects so that one value can be shared by
// any number of products.
type Promotion interface {
	Name() string
	Kind() Kind
	// Apply returns the total price of quantity units at unitPrice.
	Apply(unitPrice decimal.Decimal, quantity int) decimal.Decimal
}

// Rule describes a promotion in data form, e.g. as read from a catalog file.
// Percent is only meaningful for KindPercentOff.
type Rule struct {
	Kind    Kind
	Name    string
	Percent decimal.Decimal
}

// New builds the Promotion described by rule.
func New(rule Rule) (Promotion, error) {
	if rule.Name == "" {
		return nil, &domainerr.ArgumentError{Field: "promotion name", Reason: "must not be empty"}
	}

	switch rule.Kind {
	case KindPercentOff:
		return NewPercentOff(rule.Name, rule.Percent)
	case KindSecondHalfPrice:
		return NewSecondHalfPrice(rule.Name), nil
	case KindThirdOneFree:
		return NewThirdOneFree(rule.Name), nil
	default:
		return nil, errors.Wrapf(
			&domainerr.ArgumentError{Field: "promotion kind", Reason: "unsupported"},
			"kind %q", rule.Kind,
		)
	}
}

// RuleOf returns the data form of p.
func RuleOf(p Promotion) Rule {
	r := Rule{Kind: p.Kind(), Name: p.Name()}
	if po, ok := p.(*PercentOff); ok {
		r.Percent = po.Percent()
	}
	return r
}
