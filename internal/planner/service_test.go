package planner

import (
	"context"
	"testing"
	"time"

	"epicerie/internal/recipe"
)

type mockRecipeReader struct {
	recipes []*recipe.Recipe
}

func (m *mockRecipeReader) GetByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	for _, r := range m.recipes {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockRecipeReader) List(ctx context.Context, skip, limit int) ([]*recipe.Recipe, error) {
	if limit > len(m.recipes) {
		limit = len(m.recipes)
	}
	return m.recipes[:limit], nil
}

func testPlannerService(count int) *Service {
	reader := &mockRecipeReader{}
	for i := 0; i < count; i++ {
		reader.recipes = append(reader.recipes, &recipe.Recipe{
			ID:   string(rune('a' + i)),
			Name: "Recette " + string(rune('A'+i)),
		})
	}

	svc := NewService(reader)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC) // a Monday
	}
	return svc
}

func TestSuggestWeeklyPlan_FillsAllSlots(t *testing.T) {
	svc := testPlannerService(14)

	plan, err := svc.SuggestWeeklyPlan(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.NumDays != 7 || len(plan.Dates) != 7 {
		t.Fatalf("expected 7 days, got %d (%d dates)", plan.NumDays, len(plan.Dates))
	}
	if plan.StartDate != "2026-08-24" {
		t.Errorf("unexpected start date %s", plan.StartDate)
	}
	if plan.Dates[0] != "Monday 24/08" {
		t.Errorf("unexpected first date %s", plan.Dates[0])
	}
	if plan.TotalRecipes != 14 {
		t.Errorf("expected 14 recipes used, got %d", plan.TotalRecipes)
	}

	for _, date := range plan.Dates {
		meals := plan.Meals[date]
		if len(meals) != 2 {
			t.Fatalf("%s: expected 2 meals, got %d", date, len(meals))
		}
		if meals[0].MealType != "LUNCH" || meals[1].MealType != "DINNER" {
			t.Errorf("%s: unexpected meal types %s/%s", date, meals[0].MealType, meals[1].MealType)
		}
	}
}

func TestSuggestWeeklyPlan_FewerRecipesThanSlots(t *testing.T) {
	svc := testPlannerService(3)

	plan, err := svc.SuggestWeeklyPlan(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.TotalRecipes != 3 {
		t.Errorf("expected 3 recipes used, got %d", plan.TotalRecipes)
	}

	// no repetition: later days stay empty
	seen := make(map[string]bool)
	for _, meals := range plan.Meals {
		for _, meal := range meals {
			if seen[meal.RecipeID] {
				t.Fatalf("recipe %s assigned twice", meal.RecipeID)
			}
			seen[meal.RecipeID] = true
		}
	}
	if len(plan.Meals[plan.Dates[6]]) != 0 {
		t.Error("trailing days must stay empty when recipes run out")
	}
}

func TestSuggestWeeklyPlan_ValidatesBounds(t *testing.T) {
	svc := testPlannerService(5)
	ctx := context.Background()

	cases := []struct {
		days, meals int
	}{
		{0, 1},
		{15, 1},
		{7, 0},
		{7, 3},
	}

	for _, tc := range cases {
		if _, err := svc.SuggestWeeklyPlan(ctx, tc.days, tc.meals); err == nil {
			t.Errorf("days=%d meals=%d: expected validation error", tc.days, tc.meals)
		}
	}
}
