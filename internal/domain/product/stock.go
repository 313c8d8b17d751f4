package product

import (
	"fmt"

	"github.com/xenking/best-buy/internal/domain/domainerr"
)

// Kind enumerates the stock behaviours a product can have.
type Kind string

const (
	// KindStandard products have a finite stock and deactivate when it runs out.
	KindStandard Kind = "standard"
	// KindUnlimited products have no countable stock.
	KindUnlimited Kind = "unlimited"
	// KindLimited products behave like standard ones but cap each purchase.
	KindLimited Kind = "limited"
)

// stockPolicy is the variant-specific part of a purchase. check runs after
// the shared active check and before any mutation.
type stockPolicy interface {
	kind() Kind
	tracked() bool
	maxPerOrder() int
	check(p *Product, quantity int) error
	describe(p *Product) string
}

type standardStock struct{}

func (standardStock) kind() Kind { return KindStandard }
func (standardStock) tracked() bool { return true }
func (standardStock) maxPerOrder() int { return 0 }

func (standardStock) check(p *Product, quantity int) error {
	if quantity > p.quantity {
		return p.reject(domainerr.RuleInsufficientStock, quantity, p.quantity)
	}
	return nil
}

func (standardStock) describe(p *Product) string {
	return fmt.Sprintf("Quantity: %d", p.quantity)
}

type unlimitedStock struct{}

func (unlimitedStock) kind() Kind { return KindUnlimited }
func (unlimitedStock) tracked() bool { return false }
func (unlimitedStock) maxPerOrder() int { return 0 }
func (unlimitedStock) check(*Product, int) error { return nil }
func (unlimitedStock) describe(*Product) string { return "Quantity: Unlimited" }

type limitedStock struct {
	max int
}

func (limitedStock) kind() Kind { return KindLimited }
func (limitedStock) tracked() bool { return true }
func (l limitedStock) maxPerOrder() int { return l.max }

func (l limitedStock) check(p *Product, quantity int) error {
	if quantity > l.max {
		return p.reject(domainerr.RuleMaxPerOrder, quantity, l.max)
	}
	return standardStock{}.check(p, quantity)
}

func (l limitedStock) describe(p *Product) string {
	return fmt.Sprintf("Quantity: %d, Limited to %d per order!", p.quantity, l.max)
}
