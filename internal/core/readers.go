package core

import (
	"context"

	"epicerie/internal/ingredient"
	"epicerie/internal/recipe"
)

// Read-only views other features depend on, so that shopping and
// planner never import a concrete repository.

type RecipeReader interface {
	GetByID(ctx context.Context, id string) (*recipe.Recipe, error)
	List(ctx context.Context, skip, limit int) ([]*recipe.Recipe, error)
}

type IngredientReader interface {
	GetByID(ctx context.Context, id string) (*ingredient.Ingredient, error)
}
