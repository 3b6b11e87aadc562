package shopping

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"epicerie/internal/ingredient"
	"epicerie/internal/units"
)

func TestCategorize_GroupsByCategory(t *testing.T) {
	lookup := testLookup()
	lines := []AggregatedLine{
		{IngredientID: "ing-flour", IngredientName: "Farine", Quantity: decimal.NewFromInt(500), Unit: units.G},
		{IngredientID: "ing-eggs", IngredientName: "Oeufs", Quantity: decimal.NewFromInt(6), Unit: units.Count},
		{IngredientID: "ing-bread", IngredientName: "Pain", Quantity: decimal.NewFromInt(1), Unit: units.Count},
	}

	grouped, err := Categorize(lines, lookup, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(grouped[ingredient.CategoryDry]) != 1 {
		t.Errorf("expected 1 DRY line, got %d", len(grouped[ingredient.CategoryDry]))
	}
	if len(grouped[ingredient.CategoryChilledRetail]) != 1 {
		t.Errorf("expected 1 CHILLED_RETAIL line, got %d", len(grouped[ingredient.CategoryChilledRetail]))
	}
	if len(grouped[ingredient.CategoryChilledArtisan]) != 1 {
		t.Errorf("expected 1 CHILLED_ARTISAN line, got %d", len(grouped[ingredient.CategoryChilledArtisan]))
	}

	if grouped[ingredient.CategoryDry][0].Category != ingredient.CategoryDry {
		t.Error("line category must come from the ingredient")
	}
}

func TestCategorize_FirstGenerationUnchecked(t *testing.T) {
	lines := []AggregatedLine{
		{IngredientID: "ing-flour", IngredientName: "Farine", Quantity: decimal.NewFromInt(500), Unit: units.G},
	}

	grouped, err := Categorize(lines, testLookup(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if grouped[ingredient.CategoryDry][0].Checked {
		t.Error("first generation must start unchecked")
	}
}

func TestCategorize_PreservesCheckedAcrossRegeneration(t *testing.T) {
	previous := []AggregatedLine{
		{IngredientID: "ing-flour", Unit: units.G, Checked: true},
		{IngredientID: "ing-eggs", Unit: units.Count, Checked: false},
	}
	lines := []AggregatedLine{
		{IngredientID: "ing-flour", IngredientName: "Farine", Quantity: decimal.NewFromInt(800), Unit: units.G},
		{IngredientID: "ing-eggs", IngredientName: "Oeufs", Quantity: decimal.NewFromInt(6), Unit: units.Count},
	}

	grouped, err := Categorize(lines, testLookup(), previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// flour stays checked even though the quantity changed
	if !grouped[ingredient.CategoryDry][0].Checked {
		t.Error("checked flag must survive regeneration for the same (ingredient, unit)")
	}
	if grouped[ingredient.CategoryChilledRetail][0].Checked {
		t.Error("unchecked line must stay unchecked")
	}
}

func TestCategorize_CheckedDoesNotCrossUnits(t *testing.T) {
	// flour was checked as G; the new list has it as COUNT
	previous := []AggregatedLine{
		{IngredientID: "ing-flour", Unit: units.G, Checked: true},
	}
	lines := []AggregatedLine{
		{IngredientID: "ing-flour", IngredientName: "Farine", Quantity: decimal.NewFromInt(2), Unit: units.Count},
	}

	grouped, err := Categorize(lines, testLookup(), previous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if grouped[ingredient.CategoryDry][0].Checked {
		t.Error("checked flag keyed on (ingredient, unit): a different unit starts unchecked")
	}
}

func TestCategorize_UnknownIngredientIsFatal(t *testing.T) {
	lines := []AggregatedLine{
		{IngredientID: "ing-ghost", Quantity: decimal.NewFromInt(1), Unit: units.Count},
	}

	if _, err := Categorize(lines, testLookup(), nil); !errors.Is(err, ErrUnknownIngredient) {
		t.Fatalf("expected ErrUnknownIngredient, got %v", err)
	}
}

func TestFlatten_FixedCategoryOrder(t *testing.T) {
	grouped := map[ingredient.Category][]AggregatedLine{
		ingredient.CategoryChilledArtisan: {{IngredientID: "ing-bread"}},
		ingredient.CategoryDry:            {{IngredientID: "ing-flour"}, {IngredientID: "ing-rice"}},
		ingredient.CategoryChilledRetail:  {{IngredientID: "ing-eggs"}},
	}

	flat := Flatten(grouped)

	expected := []string{"ing-flour", "ing-rice", "ing-eggs", "ing-bread"}
	if len(flat) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(flat))
	}
	for i, id := range expected {
		if flat[i].IngredientID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, flat[i].IngredientID)
		}
	}
}
