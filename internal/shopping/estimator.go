package shopping

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"epicerie/internal/ingredient"
	"epicerie/internal/pricing"
	"epicerie/internal/units"
)

// lineCost is one lookup result, indexed back to its line so the merge
// is deterministic regardless of goroutine completion order.
type lineCost struct {
	index    int
	cost     decimal.Decimal
	currency string
	resolved bool
}

// EstimateCost prices a generated list against the pricing provider.
// Lookups fan out concurrently, one bounded timeout each; a failed or
// timed-out lookup (or an ingredient with no search term) only lands in
// Unresolved — estimation never fails the caller.
func EstimateCost(
	ctx context.Context,
	lines []AggregatedLine,
	lookup map[string]*ingredient.Ingredient,
	provider pricing.Provider,
	table *units.Table,
	lookupTimeout time.Duration,
) *CostEstimate {

	results := make([]lineCost, len(lines))

	var wg sync.WaitGroup
	for i, line := range lines {
		ing := lookup[line.IngredientID]
		if ing == nil || ing.SearchTerm == "" {
			// artisan ingredients and unknown snapshots have no term
			results[i] = lineCost{index: i}
			continue
		}

		wg.Add(1)
		go func(i int, line AggregatedLine, term string) {
			defer wg.Done()
			results[i] = priceLine(ctx, i, line, term, provider, table, lookupTimeout)
		}(i, line, ing.SearchTerm)
	}
	wg.Wait()

	estimate := &CostEstimate{
		PerCategory: make(map[ingredient.Category]decimal.Decimal),
		GrandTotal:  decimal.Zero,
		Currency:    "EUR",
	}

	unresolved := make(map[string]bool)

	for i, res := range results {
		line := lines[i]
		if !res.resolved {
			unresolved[line.IngredientID] = true
			continue
		}

		if res.currency != "" {
			estimate.Currency = res.currency
		}
		estimate.PerCategory[line.Category] = estimate.PerCategory[line.Category].Add(res.cost)
		estimate.GrandTotal = estimate.GrandTotal.Add(res.cost)
	}

	for id := range unresolved {
		estimate.Unresolved = append(estimate.Unresolved, id)
	}
	sort.Strings(estimate.Unresolved)

	return estimate
}

// priceLine resolves one line: look the term up with a bounded timeout,
// convert the canonical quantity into the provider's pricing unit, and
// multiply. Any failure makes the line unresolved.
func priceLine(
	ctx context.Context,
	index int,
	line AggregatedLine,
	term string,
	provider pricing.Provider,
	table *units.Table,
	lookupTimeout time.Duration,
) lineCost {

	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	quote, err := provider.LookupPrice(lookupCtx, term)
	if err != nil {
		return lineCost{index: index}
	}

	// e.g. line in G, quote per KG: factor 0.001
	factor, err := table.Factor(line.Unit, quote.Unit)
	if err != nil {
		return lineCost{index: index}
	}

	return lineCost{
		index:    index,
		cost:     line.Quantity.Mul(factor).Mul(quote.UnitPrice),
		currency: quote.Currency,
		resolved: true,
	}
}
