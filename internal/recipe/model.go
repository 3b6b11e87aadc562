package recipe

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"epicerie/internal/units"
)

// Season a recipe is suited to. ALL_YEAR covers season-independent recipes.
type Season string

const (
	SeasonSpring  Season = "SPRING"
	SeasonSummer  Season = "SUMMER"
	SeasonAutumn  Season = "AUTUMN"
	SeasonWinter  Season = "WINTER"
	SeasonAllYear Season = "ALL_YEAR"
)

func ParseSeason(raw string) (Season, error) {
	switch s := Season(raw); s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter, SeasonAllYear:
		return s, nil
	default:
		return "", fmt.Errorf("unknown season: %q", raw)
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func ParseDifficulty(raw string) (Difficulty, error) {
	switch d := Difficulty(raw); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty: %q", raw)
	}
}

// Line is one ingredient requirement of a recipe. The (recipe, ingredient)
// pair is the composite identity: one line per ingredient per recipe.
type Line struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         units.Unit      `json:"unit"`
}

// Recipe is a cooking recipe with its ordered ingredient lines.
// Servings is the baseline the generation multiplier scales against.
type Recipe struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Season          Season     `json:"season"`
	Difficulty      Difficulty `json:"difficulty"`
	PrepTimeMinutes int        `json:"prep_time_minutes"`
	Servings        int        `json:"servings"`
	Lines           []Line     `json:"ingredients"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
