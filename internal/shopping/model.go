package shopping

import (
	"time"

	"github.com/shopspring/decimal"

	"epicerie/internal/ingredient"
	"epicerie/internal/units"
)

// AggregatedLine is one row of a generated shopping list: the total
// needed quantity of one ingredient in one canonical unit. An ingredient
// appears on more than one line only after a unit-family conflict.
// Immutable after generation, except for Checked.
type AggregatedLine struct {
	IngredientID   string              `json:"ingredient_id"`
	IngredientName string              `json:"ingredient_name"`
	Category       ingredient.Category `json:"category"`
	Quantity       decimal.Decimal     `json:"quantity"`
	Unit           units.Unit          `json:"unit"`
	RecipeIDs      []string            `json:"recipe_ids"`
	Checked        bool                `json:"checked"`
}

// UnitFamilyConflict is the non-fatal warning emitted when one
// ingredient is requested in units from different families. The lines
// stay separate instead of being silently merged or dropped.
type UnitFamilyConflict struct {
	IngredientID   string       `json:"ingredient_id"`
	IngredientName string       `json:"ingredient_name"`
	Units          []units.Unit `json:"units"`
}

// ShoppingList is a generated, category-sorted list. Lines are kept in
// presentation order: fixed category order, then ingredient name
// (case-insensitive), then canonical unit.
type ShoppingList struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Lines     []AggregatedLine     `json:"lines"`
	Warnings  []UnitFamilyConflict `json:"warnings,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// GenerateRequest selects the recipes a list is generated from.
// A recipe absent from ServingsMultiplier defaults to 1.0.
type GenerateRequest struct {
	Name               string                     `json:"name"`
	RecipeIDs          []string                   `json:"recipe_ids"`
	ServingsMultiplier map[string]decimal.Decimal `json:"servings_multiplier"`
}

// CostEstimate is always partial and best-effort: GrandTotal sums only
// the resolved lines, so a non-empty Unresolved list makes it a lower
// bound, never an exact figure.
type CostEstimate struct {
	PerCategory map[ingredient.Category]decimal.Decimal `json:"per_category"`
	GrandTotal  decimal.Decimal                         `json:"grand_total"`
	Currency    string                                  `json:"currency"`
	Unresolved  []string                                `json:"unresolved_ingredient_ids"`
}

// Partial reports whether any ingredient could not be priced.
func (e *CostEstimate) Partial() bool {
	return len(e.Unresolved) > 0
}
