package shopping

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"epicerie/internal/ingredient"
	"epicerie/internal/pricing"
	"epicerie/internal/units"
)

// mockProvider returns canned quotes per search term.
type mockProvider struct {
	quotes map[string]*pricing.Quote
	delay  time.Duration
}

func (m *mockProvider) LookupPrice(ctx context.Context, term string) (*pricing.Quote, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	quote, ok := m.quotes[term]
	if !ok {
		return nil, pricing.ErrUnresolved
	}
	return quote, nil
}

func estimateLookup() map[string]*ingredient.Ingredient {
	return testLookup()
}

func TestEstimateCost_ConvertsLineUnitToQuoteUnit(t *testing.T) {
	provider := &mockProvider{quotes: map[string]*pricing.Quote{
		"farine": {UnitPrice: decimal.RequireFromString("1.10"), Currency: "EUR", Unit: units.Kg},
	}}
	lines := []AggregatedLine{
		{IngredientID: "ing-flour", Category: ingredient.CategoryDry, Quantity: decimal.NewFromInt(1400), Unit: units.G},
	}

	estimate := EstimateCost(context.Background(), lines, estimateLookup(), provider, units.NewTable(), time.Second)

	// 1400 G = 1.4 KG at 1.10/KG
	expected := decimal.RequireFromString("1.54")
	if !estimate.GrandTotal.Equal(expected) {
		t.Errorf("expected %s, got %s", expected, estimate.GrandTotal)
	}
	if !estimate.PerCategory[ingredient.CategoryDry].Equal(expected) {
		t.Errorf("expected DRY subtotal %s, got %s", expected, estimate.PerCategory[ingredient.CategoryDry])
	}
	if estimate.Partial() {
		t.Errorf("expected full resolution, unresolved: %v", estimate.Unresolved)
	}
	if estimate.Currency != "EUR" {
		t.Errorf("expected EUR, got %s", estimate.Currency)
	}
}

func TestEstimateCost_NoSearchTermIsUnresolved(t *testing.T) {
	provider := &mockProvider{quotes: map[string]*pricing.Quote{
		"farine": {UnitPrice: decimal.NewFromInt(1), Currency: "EUR", Unit: units.Kg},
	}}
	// ing-bread has no search term (artisan)
	lines := []AggregatedLine{
		{IngredientID: "ing-flour", Category: ingredient.CategoryDry, Quantity: decimal.NewFromInt(1), Unit: units.Kg},
		{IngredientID: "ing-bread", Category: ingredient.CategoryChilledArtisan, Quantity: decimal.NewFromInt(1), Unit: units.Count},
	}

	estimate := EstimateCost(context.Background(), lines, estimateLookup(), provider, units.NewTable(), time.Second)

	if !estimate.Partial() {
		t.Fatal("expected a partial estimate")
	}
	if !reflect.DeepEqual(estimate.Unresolved, []string{"ing-bread"}) {
		t.Errorf("expected [ing-bread], got %v", estimate.Unresolved)
	}
	// grand total sums resolved lines only
	if !estimate.GrandTotal.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected 1, got %s", estimate.GrandTotal)
	}
	if _, ok := estimate.PerCategory[ingredient.CategoryChilledArtisan]; ok {
		t.Error("unresolved lines must not contribute a category subtotal")
	}
}

func TestEstimateCost_LookupFailureIsNeverFatal(t *testing.T) {
	provider := &mockProvider{quotes: map[string]*pricing.Quote{}}
	lines := []AggregatedLine{
		{IngredientID: "ing-flour", Category: ingredient.CategoryDry, Quantity: decimal.NewFromInt(1), Unit: units.Kg},
		{IngredientID: "ing-eggs", Category: ingredient.CategoryChilledRetail, Quantity: decimal.NewFromInt(6), Unit: units.Count},
	}

	estimate := EstimateCost(context.Background(), lines, estimateLookup(), provider, units.NewTable(), time.Second)

	if !estimate.GrandTotal.IsZero() {
		t.Errorf("expected zero total, got %s", estimate.GrandTotal)
	}
	// unresolved ids come back sorted
	if !reflect.DeepEqual(estimate.Unresolved, []string{"ing-eggs", "ing-flour"}) {
		t.Errorf("expected sorted ids, got %v", estimate.Unresolved)
	}
}

func TestEstimateCost_SlowLookupTimesOutToUnresolved(t *testing.T) {
	provider := &mockProvider{
		quotes: map[string]*pricing.Quote{
			"farine": {UnitPrice: decimal.NewFromInt(1), Currency: "EUR", Unit: units.Kg},
		},
		delay: 200 * time.Millisecond,
	}
	lines := []AggregatedLine{
		{IngredientID: "ing-flour", Category: ingredient.CategoryDry, Quantity: decimal.NewFromInt(1), Unit: units.Kg},
	}

	estimate := EstimateCost(context.Background(), lines, estimateLookup(), provider, units.NewTable(), 10*time.Millisecond)

	if !estimate.Partial() || !estimate.GrandTotal.IsZero() {
		t.Errorf("expected timed-out line to be unresolved, got total %s, unresolved %v",
			estimate.GrandTotal, estimate.Unresolved)
	}
}

func TestEstimateCost_QuoteUnitFamilyMismatchIsUnresolved(t *testing.T) {
	// quote priced per KG, line counted in pieces
	provider := &mockProvider{quotes: map[string]*pricing.Quote{
		"oeuf": {UnitPrice: decimal.NewFromInt(5), Currency: "EUR", Unit: units.Kg},
	}}
	lines := []AggregatedLine{
		{IngredientID: "ing-eggs", Category: ingredient.CategoryChilledRetail, Quantity: decimal.NewFromInt(6), Unit: units.Count},
	}

	estimate := EstimateCost(context.Background(), lines, estimateLookup(), provider, units.NewTable(), time.Second)

	if !reflect.DeepEqual(estimate.Unresolved, []string{"ing-eggs"}) {
		t.Errorf("expected [ing-eggs], got %v", estimate.Unresolved)
	}
	if !estimate.GrandTotal.IsZero() {
		t.Errorf("expected zero total, got %s", estimate.GrandTotal)
	}
}

func TestEstimateCost_SumsPerCategory(t *testing.T) {
	provider := &mockProvider{quotes: map[string]*pricing.Quote{
		"farine": {UnitPrice: decimal.RequireFromString("1.10"), Currency: "EUR", Unit: units.Kg},
		"oeuf":   {UnitPrice: decimal.RequireFromString("0.45"), Currency: "EUR", Unit: units.Count},
	}}
	lines := []AggregatedLine{
		{IngredientID: "ing-flour", Category: ingredient.CategoryDry, Quantity: decimal.NewFromInt(2), Unit: units.Kg},
		{IngredientID: "ing-eggs", Category: ingredient.CategoryChilledRetail, Quantity: decimal.NewFromInt(6), Unit: units.Count},
	}

	estimate := EstimateCost(context.Background(), lines, estimateLookup(), provider, units.NewTable(), time.Second)

	if !estimate.PerCategory[ingredient.CategoryDry].Equal(decimal.RequireFromString("2.20")) {
		t.Errorf("expected DRY 2.20, got %s", estimate.PerCategory[ingredient.CategoryDry])
	}
	if !estimate.PerCategory[ingredient.CategoryChilledRetail].Equal(decimal.RequireFromString("2.70")) {
		t.Errorf("expected CHILLED_RETAIL 2.70, got %s", estimate.PerCategory[ingredient.CategoryChilledRetail])
	}
	if !estimate.GrandTotal.Equal(decimal.RequireFromString("4.90")) {
		t.Errorf("expected grand total 4.90, got %s", estimate.GrandTotal)
	}
}
