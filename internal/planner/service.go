package planner

import (
	"context"
	"errors"
	"time"

	"epicerie/internal/core"
)

// Meal is one suggested slot in a daily plan.
type Meal struct {
	RecipeID   string `json:"recipe_id"`
	RecipeName string `json:"recipe_name"`
	MealType   string `json:"meal_type"`
}

// WeeklyPlan assigns available recipes to lunch/dinner slots over the
// coming days. Days keeps insertion order via the Dates slice.
type WeeklyPlan struct {
	StartDate    string            `json:"start_date"`
	NumDays      int               `json:"num_days"`
	Dates        []string          `json:"dates"`
	Meals        map[string][]Meal `json:"meal_plan"`
	TotalRecipes int               `json:"total_recipes"`
}

var mealTypes = []string{"LUNCH", "DINNER"}

type Service struct {
	recipes core.RecipeReader
	now     func() time.Time
}

func NewService(recipes core.RecipeReader) *Service {
	return &Service{recipes: recipes, now: time.Now}
}

// SuggestWeeklyPlan walks the recipe catalogue in order and fills
// days*mealsPerDay slots. Fewer recipes than slots leaves trailing
// slots empty rather than repeating recipes.
func (s *Service) SuggestWeeklyPlan(ctx context.Context, numDays, mealsPerDay int) (*WeeklyPlan, error) {
	if numDays <= 0 || numDays > 14 {
		return nil, errors.New("num_days must be between 1 and 14")
	}
	if mealsPerDay <= 0 || mealsPerDay > len(mealTypes) {
		return nil, errors.New("meals_per_day must be 1 or 2")
	}

	recipes, err := s.recipes.List(ctx, 0, numDays*mealsPerDay)
	if err != nil {
		return nil, err
	}

	start := s.now()
	plan := &WeeklyPlan{
		StartDate: start.Format("2006-01-02"),
		NumDays:   numDays,
		Meals:     make(map[string][]Meal, numDays),
	}

	recipeIndex := 0
	for day := 0; day < numDays; day++ {
		date := start.AddDate(0, 0, day).Format("Monday 02/01")
		plan.Dates = append(plan.Dates, date)

		meals := []Meal{}
		for slot := 0; slot < mealsPerDay && recipeIndex < len(recipes); slot++ {
			rec := recipes[recipeIndex]
			meals = append(meals, Meal{
				RecipeID:   rec.ID,
				RecipeName: rec.Name,
				MealType:   mealTypes[slot],
			})
			recipeIndex++
		}
		plan.Meals[date] = meals
	}

	plan.TotalRecipes = recipeIndex
	return plan, nil
}
