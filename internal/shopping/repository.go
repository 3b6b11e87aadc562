package shopping

import (
	"context"

	"epicerie/internal/units"
)

type Repository interface {
	// Create persists the header and its lines in one transaction;
	// a failed generation leaves no header-only list behind.
	Create(ctx context.Context, list *ShoppingList) error
	GetByID(ctx context.Context, id string) (*ShoppingList, error)
	List(ctx context.Context, skip, limit int) ([]*ShoppingList, error)
	Delete(ctx context.Context, id string) (bool, error)

	// ReplaceItems swaps a list's lines atomically; generation never
	// leaves a half-written snapshot behind.
	ReplaceItems(ctx context.Context, list *ShoppingList) error

	// ToggleItem flips one line's checked flag inside a single-writer
	// transaction and returns the new state. ErrLineNotFound when no
	// (list, ingredient, unit) line exists.
	ToggleItem(ctx context.Context, listID, ingredientID string, unit units.Unit) (bool, error)
}
