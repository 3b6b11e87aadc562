package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"epicerie/internal/ingredient"
	"epicerie/internal/units"
)

var ErrNotFound = errors.New("recipe not found")

// ingredientReader is the slice of the ingredient feature the recipe
// service needs to validate line references at write time.
type ingredientReader interface {
	GetByID(ctx context.Context, id string) (*ingredient.Ingredient, error)
}

type Service struct {
	repo        Repository
	ingredients ingredientReader
}

func NewService(repo Repository, ingredients ingredientReader) *Service {
	return &Service{repo: repo, ingredients: ingredients}
}

type LineInput struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

type CreateInput struct {
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Season          string      `json:"season"`
	Difficulty      string      `json:"difficulty"`
	PrepTimeMinutes int         `json:"prep_time_minutes"`
	Servings        int         `json:"servings"`
	Lines           []LineInput `json:"ingredients"`
}

func (s *Service) buildRecipe(ctx context.Context, in CreateInput) (*Recipe, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name is required")
	}
	if in.Servings <= 0 {
		return nil, errors.New("servings must be positive")
	}
	if in.PrepTimeMinutes < 0 {
		return nil, errors.New("prep time cannot be negative")
	}

	season, err := ParseSeason(in.Season)
	if err != nil {
		return nil, err
	}
	difficulty, err := ParseDifficulty(in.Difficulty)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	lines := make([]Line, 0, len(in.Lines))

	for _, li := range in.Lines {
		if !li.Quantity.IsPositive() {
			return nil, fmt.Errorf("quantity must be positive for ingredient %s", li.IngredientID)
		}

		unit, err := units.Parse(li.Unit)
		if err != nil {
			return nil, err
		}

		// one line per ingredient per recipe
		if seen[li.IngredientID] {
			return nil, fmt.Errorf("duplicate ingredient line: %s", li.IngredientID)
		}
		seen[li.IngredientID] = true

		ing, err := s.ingredients.GetByID(ctx, li.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, fmt.Errorf("unknown ingredient: %s", li.IngredientID)
		}

		lines = append(lines, Line{
			IngredientID: li.IngredientID,
			Quantity:     li.Quantity,
			Unit:         unit,
		})
	}

	return &Recipe{
		Name:            strings.TrimSpace(in.Name),
		Description:     strings.TrimSpace(in.Description),
		Season:          season,
		Difficulty:      difficulty,
		PrepTimeMinutes: in.PrepTimeMinutes,
		Servings:        in.Servings,
		Lines:           lines,
	}, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Recipe, error) {
	rec, err := s.buildRecipe(ctx, in)
	if err != nil {
		return nil, err
	}

	rec.ID = uuid.NewString()

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Recipe, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]*Recipe, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) Search(ctx context.Context, query string) ([]*Recipe, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("search query is required")
	}
	return s.repo.Search(ctx, query)
}

func (s *Service) Update(ctx context.Context, id string, in CreateInput) (*Recipe, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	rec, err := s.buildRecipe(ctx, in)
	if err != nil {
		return nil, err
	}

	rec.ID = id
	rec.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
