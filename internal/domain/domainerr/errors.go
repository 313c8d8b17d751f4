// Package domainerr defines the error taxonomy shared by the catalog domain
// packages: malformed construction parameters and rejected operations.
package domainerr

import (
	"fmt"

	"github.com/go-faster/errors"
)

var (
	// ErrInvalidArgument is the root of all construction-time validation
	// failures. A caller receiving it never gets a usable value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidOperation is the root of all business-rule violations raised
	// by an operation on an otherwise valid value.
	ErrInvalidOperation = errors.New("invalid operation")
)

// ArgumentError reports a single malformed construction parameter.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidArgument) hold.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// Rule names a business rule that an operation may violate.
type Rule string

const (
	// RuleInactive rejects purchases of deactivated products.
	RuleInactive Rule = "product is inactive"
	// RuleInsufficientStock rejects purchases larger than the available stock.
	RuleInsufficientStock Rule = "insufficient stock"
	// RuleMaxPerOrder rejects purchases above a product's per-order maximum.
	RuleMaxPerOrder Rule = "per-order maximum exceeded"
	// RuleNonPositiveQuantity rejects purchases of zero or fewer units.
	RuleNonPositiveQuantity Rule = "quantity must be greater than 0"
	// RuleUntracked rejects stock operations on products without stock.
	RuleUntracked Rule = "stock is not tracked"
	// RuleOutOfStock rejects activation of a stock-tracked product with no stock.
	RuleOutOfStock Rule = "product is out of stock"
)

// OperationError reports a business-rule violation for one product.
// Requested and Limit are zero when the rule carries no quantities.
type OperationError struct {
	Product   string
	Rule      Rule
	Requested int
	Limit     int
}

func (e *OperationError) Error() string {
	switch e.Rule {
	case RuleInsufficientStock:
		return fmt.Sprintf("%s: %s (requested %d, available %d)", e.Product, e.Rule, e.Requested, e.Limit)
	case RuleMaxPerOrder:
		return fmt.Sprintf("%s: %s (requested %d, max %d)", e.Product, e.Rule, e.Requested, e.Limit)
	default:
		return fmt.Sprintf("%s: %s", e.Product, e.Rule)
	}
}

// Unwrap makes errors.Is(err, ErrInvalidOperation) hold.
func (e *OperationError) Unwrap() error {
	return ErrInvalidOperation
}

// IsRule reports whether err carries an OperationError for the given rule.
func IsRule(err error, rule Rule) bool {
	var opErr *OperationError
	return errors.As(err, &opErr) && opErr.Rule == rule
}
