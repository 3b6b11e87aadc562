package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"epicerie/internal/units"
)

// ErrUnresolved means the provider has no price for the search term.
// It is the only expected failure; callers treat it as "skip this
// ingredient", never as a reason to abort.
var ErrUnresolved = errors.New("price unresolved")

// Quote is a unit price as the provider sells it (e.g. 3.50 EUR per KG).
type Quote struct {
	UnitPrice decimal.Decimal
	Currency  string
	Unit      units.Unit
}

// Provider looks up a retail unit price for an ingredient search term.
// Implementations must honour ctx cancellation and return ErrUnresolved
// (not panic, not a transport error) when there is simply no result.
type Provider interface {
	LookupPrice(ctx context.Context, searchTerm string) (*Quote, error)
}
