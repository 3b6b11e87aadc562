package shopping

import "errors"

// Fatal errors abort the whole generation; nothing is persisted.
var (
	ErrInvalidMultiplier = errors.New("servings multiplier must be positive")
	ErrUnknownRecipe     = errors.New("unknown recipe")
	ErrUnknownIngredient = errors.New("unknown ingredient")
	ErrListNotFound      = errors.New("shopping list not found")

	// ErrLineNotFound is fatal to a single checklist toggle only.
	ErrLineNotFound = errors.New("line not found in shopping list")
)
