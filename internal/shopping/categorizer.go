package shopping

import (
	"fmt"

	"epicerie/internal/ingredient"
	"epicerie/internal/units"
)

// checkKey identifies a line for checklist preservation: the checked
// flag survives regeneration only for the same (ingredient, unit) pair.
type checkKey struct {
	ingredientID string
	unit         units.Unit
}

// Categorize groups aggregated lines by purchase category, in the fixed
// category order. previous is the pre-regeneration snapshot (nil on
// first generation): a line matching a previously checked line keeps
// checked = true, everything else defaults to false.
//
// An ingredient without a resolvable category is fatal: a shopping list
// cannot contain un-categorizable items.
func Categorize(
	lines []AggregatedLine,
	lookup map[string]*ingredient.Ingredient,
	previous []AggregatedLine,
) (map[ingredient.Category][]AggregatedLine, error) {

	checked := make(map[checkKey]bool, len(previous))
	for _, prev := range previous {
		if prev.Checked {
			checked[checkKey{prev.IngredientID, prev.Unit}] = true
		}
	}

	grouped := make(map[ingredient.Category][]AggregatedLine)

	for _, line := range lines {
		ing, ok := lookup[line.IngredientID]
		if !ok || ing == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownIngredient, line.IngredientID)
		}

		line.Category = ing.Category
		line.Checked = checked[checkKey{line.IngredientID, line.Unit}]

		grouped[ing.Category] = append(grouped[ing.Category], line)
	}

	return grouped, nil
}

// Flatten lays grouped lines back into a single slice in presentation
// order: DRY, CHILLED_RETAIL, CHILLED_ARTISAN, keeping the aggregator's
// name ordering within each category.
func Flatten(grouped map[ingredient.Category][]AggregatedLine) []AggregatedLine {
	var flat []AggregatedLine
	for _, category := range ingredient.Categories() {
		flat = append(flat, grouped[category]...)
	}
	return flat
}
