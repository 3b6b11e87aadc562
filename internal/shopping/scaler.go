package shopping

import (
	"github.com/shopspring/decimal"

	"epicerie/internal/recipe"
	"epicerie/internal/units"
)

// ScaledLine is one recipe line after applying the serving multiplier.
// The unit is passed through unchanged: scaling never converts units.
type ScaledLine struct {
	RecipeID     string
	IngredientID string
	Quantity     decimal.Decimal
	Unit         units.Unit
}

// ScaleRecipe multiplies every line quantity by multiplier. Quantities
// keep full decimal precision here; rounding happens only at
// presentation, never mid-pipeline.
func ScaleRecipe(rec *recipe.Recipe, multiplier decimal.Decimal) ([]ScaledLine, error) {
	if !multiplier.IsPositive() {
		return nil, ErrInvalidMultiplier
	}

	scaled := make([]ScaledLine, 0, len(rec.Lines))
	for _, line := range rec.Lines {
		scaled = append(scaled, ScaledLine{
			RecipeID:     rec.ID,
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity.Mul(multiplier),
			Unit:         line.Unit,
		})
	}

	return scaled, nil
}
