package ingredient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrDuplicateName = errors.New("ingredient with this name already exists")
	ErrNotFound      = errors.New("ingredient not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	SearchTerm string `json:"search_term"`
}

// validate enforces the write-time invariants: non-empty unique name,
// closed category set, and no search term on artisan ingredients
// (artisan products have no retail price to look up).
func (in CreateInput) validate() (Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", errors.New("name is required")
	}

	category, err := ParseCategory(in.Category)
	if err != nil {
		return "", err
	}

	if category == CategoryChilledArtisan && strings.TrimSpace(in.SearchTerm) != "" {
		return "", fmt.Errorf("search term must be empty for %s ingredients", CategoryChilledArtisan)
	}

	return category, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Ingredient, error) {
	category, err := in.validate()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	ing := &Ingredient{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Category:   category,
		SearchTerm: strings.TrimSpace(in.SearchTerm),
	}

	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, err
	}

	return ing, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Ingredient, error) {
	ing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, ErrNotFound
	}
	return ing, nil
}

func (s *Service) List(ctx context.Context, category string, skip, limit int) ([]*Ingredient, error) {
	if category != "" {
		if _, err := ParseCategory(category); err != nil {
			return nil, err
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.List(ctx, category, skip, limit)
}

func (s *Service) Update(ctx context.Context, id string, in CreateInput) (*Ingredient, error) {
	category, err := in.validate()
	if err != nil {
		return nil, err
	}

	ing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, ErrNotFound
	}

	// Renaming onto another ingredient's name is a duplicate
	existing, err := s.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrDuplicateName
	}

	ing.Name = strings.TrimSpace(in.Name)
	ing.Category = category
	ing.SearchTerm = strings.TrimSpace(in.SearchTerm)

	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, err
	}

	return ing, nil
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
