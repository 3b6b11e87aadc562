package shopping

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"epicerie/internal/ingredient"
	"epicerie/internal/units"
)

// MergeOutcome is the result of merging one ingredient's scaled lines:
// either a single merged line, or a unit-family conflict that keeps the
// incompatible totals as separate lines. The closed interface forces
// callers to handle both cases.
type MergeOutcome interface {
	mergeOutcome()
}

// Merged: every contribution was in one unit family and summed exactly.
type Merged struct {
	Line AggregatedLine
}

// Conflict: contributions span unit families (e.g. COUNT and KG of the
// same ingredient). One line per canonical unit, nothing dropped.
type Conflict struct {
	IngredientID string
	Lines        []AggregatedLine
}

func (Merged) mergeOutcome()   {}
func (Conflict) mergeOutcome() {}

// AggregateResult is the consolidated list plus its non-fatal warnings.
type AggregateResult struct {
	Lines     []AggregatedLine
	Conflicts []UnitFamilyConflict
}

// Aggregate merges scaled lines from all requested recipes into one
// consolidated list. Quantities are normalized to canonical units and
// summed exactly per ingredient; lines whose units belong to different
// families stay separate and surface a UnitFamilyConflict warning.
//
// Output order is deterministic: ingredient name (case-insensitive),
// ties broken by canonical unit name.
func Aggregate(
	norm *units.Normalizer,
	scaled []ScaledLine,
	lookup map[string]*ingredient.Ingredient,
) (*AggregateResult, error) {

	// preserve first-seen order of ingredients only for grouping;
	// final ordering is by name below
	byIngredient := make(map[string][]ScaledLine)
	var ingredientIDs []string

	for _, line := range scaled {
		if _, seen := byIngredient[line.IngredientID]; !seen {
			ingredientIDs = append(ingredientIDs, line.IngredientID)
		}
		byIngredient[line.IngredientID] = append(byIngredient[line.IngredientID], line)
	}

	result := &AggregateResult{}

	for _, id := range ingredientIDs {
		ing, ok := lookup[id]
		if !ok || ing == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownIngredient, id)
		}

		outcome, err := mergeIngredient(norm, ing, byIngredient[id])
		if err != nil {
			return nil, err
		}

		switch o := outcome.(type) {
		case Merged:
			result.Lines = append(result.Lines, o.Line)
		case Conflict:
			result.Lines = append(result.Lines, o.Lines...)

			conflictUnits := make([]units.Unit, 0, len(o.Lines))
			for _, l := range o.Lines {
				conflictUnits = append(conflictUnits, l.Unit)
			}
			result.Conflicts = append(result.Conflicts, UnitFamilyConflict{
				IngredientID:   id,
				IngredientName: ing.Name,
				Units:          conflictUnits,
			})
		}
	}

	sortLines(result.Lines)

	return result, nil
}

// mergeIngredient sums one ingredient's contributions per canonical
// unit and decides between Merged and Conflict.
func mergeIngredient(
	norm *units.Normalizer,
	ing *ingredient.Ingredient,
	contributions []ScaledLine,
) (MergeOutcome, error) {

	totals := make(map[units.Unit]decimal.Decimal)
	recipeIDs := make(map[units.Unit][]string)
	var unitOrder []units.Unit

	for _, c := range contributions {
		qty, canonical, err := norm.Normalize(c.Quantity, c.Unit)
		if err != nil {
			// a line with no unit family has no fallback: fatal
			return nil, err
		}

		if _, seen := totals[canonical]; !seen {
			unitOrder = append(unitOrder, canonical)
		}
		totals[canonical] = totals[canonical].Add(qty)
		recipeIDs[canonical] = appendUnique(recipeIDs[canonical], c.RecipeID)
	}

	lines := make([]AggregatedLine, 0, len(unitOrder))
	for _, u := range unitOrder {
		ids := recipeIDs[u]
		sort.Strings(ids)
		lines = append(lines, AggregatedLine{
			IngredientID:   ing.ID,
			IngredientName: ing.Name,
			Category:       ing.Category,
			Quantity:       totals[u],
			Unit:           u,
			RecipeIDs:      ids,
		})
	}

	if len(lines) == 1 {
		return Merged{Line: lines[0]}, nil
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Unit < lines[j].Unit
	})
	return Conflict{IngredientID: ing.ID, Lines: lines}, nil
}

func sortLines(lines []AggregatedLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		ni := strings.ToLower(lines[i].IngredientName)
		nj := strings.ToLower(lines[j].IngredientName)
		if ni != nj {
			return ni < nj
		}
		return lines[i].Unit < lines[j].Unit
	})
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
