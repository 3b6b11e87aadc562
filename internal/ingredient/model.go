package ingredient

import (
	"fmt"
	"time"
)

// Category is the closed set of purchase categories. The order of
// Categories() is the fixed presentation order on shopping lists.
type Category string

const (
	CategoryDry            Category = "DRY"
	CategoryChilledRetail  Category = "CHILLED_RETAIL"
	CategoryChilledArtisan Category = "CHILLED_ARTISAN"
)

// Categories returns every category in presentation order.
func Categories() []Category {
	return []Category{CategoryDry, CategoryChilledRetail, CategoryChilledArtisan}
}

// ParseCategory validates a raw category string against the closed set.
func ParseCategory(raw string) (Category, error) {
	switch c := Category(raw); c {
	case CategoryDry, CategoryChilledRetail, CategoryChilledArtisan:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category: %q", raw)
	}
}

// Ingredient represents a purchasable ingredient (e.g. Tomato, Flour).
// SearchTerm is the external pricing lookup term; artisan ingredients
// never carry one (there is no retail price to look up).
type Ingredient struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   Category  `json:"category"`
	SearchTerm string    `json:"search_term,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
