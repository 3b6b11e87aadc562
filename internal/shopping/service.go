package shopping

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"epicerie/internal/core"
	"epicerie/internal/ingredient"
	"epicerie/internal/pricing"
	"epicerie/internal/units"
)

// Exporter uploads a rendered list document and returns its public URL.
type Exporter interface {
	UploadDocument(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type Service struct {
	repo        Repository
	recipes     core.RecipeReader
	ingredients core.IngredientReader
	normalizer  *units.Normalizer
	table       *units.Table
	provider    pricing.Provider
	exporter    Exporter

	// per-ingredient budget for pricing lookups
	priceTimeout time.Duration
}

func NewService(
	repo Repository,
	recipes core.RecipeReader,
	ingredients core.IngredientReader,
	table *units.Table,
	provider pricing.Provider,
	exporter Exporter,
) *Service {
	return &Service{
		repo:         repo,
		recipes:      recipes,
		ingredients:  ingredients,
		normalizer:   units.NewNormalizer(table),
		table:        table,
		provider:     provider,
		exporter:     exporter,
		priceTimeout: 10 * time.Second,
	}
}

// --------------------------------------------------
// Plain CRUD
// --------------------------------------------------

func (s *Service) CreateEmpty(ctx context.Context, name string) (*ShoppingList, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name is required")
	}

	list := &ShoppingList{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
	}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ShoppingList, error) {
	list, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrListNotFound
	}

	list.Lines = presentationOrder(list.Lines)
	list.Warnings = conflictsIn(list.Lines)
	return list, nil
}

// presentationOrder restores the generation ordering on a stored
// snapshot: fixed category order first, name order within (the
// repository already returns name order).
func presentationOrder(lines []AggregatedLine) []AggregatedLine {
	rank := make(map[ingredient.Category]int)
	for i, c := range ingredient.Categories() {
		rank[c] = i
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return rank[lines[i].Category] < rank[lines[j].Category]
	})
	return lines
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]*ShoppingList, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrListNotFound
	}
	return nil
}

// --------------------------------------------------
// Generation pipeline
// --------------------------------------------------

// Generate creates a new list from the requested recipes. The whole
// pipeline runs before anything is persisted, and the header and lines
// are written in one transaction: a fatal error leaves no partial list
// behind.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*ShoppingList, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("name is required")
	}

	lines, warnings, err := s.buildLines(ctx, req, nil)
	if err != nil {
		return nil, err
	}

	list := &ShoppingList{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		Lines:    lines,
		Warnings: warnings,
	}

	if err := s.repo.Create(ctx, list); err != nil {
		return nil, err
	}

	return list, nil
}

// Regenerate rebuilds an existing list from a new recipe selection.
// Checked flags survive for lines whose (ingredient, canonical unit)
// still appears; lines gone from the input are dropped entirely.
func (s *Service) Regenerate(ctx context.Context, listID string, req GenerateRequest) (*ShoppingList, error) {
	previous, err := s.repo.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if previous == nil {
		return nil, ErrListNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = previous.Name
	}

	lines, warnings, err := s.buildLines(ctx, req, previous.Lines)
	if err != nil {
		return nil, err
	}

	list := &ShoppingList{
		ID:        listID,
		Name:      name,
		Lines:     lines,
		Warnings:  warnings,
		CreatedAt: previous.CreatedAt,
	}

	if err := s.repo.ReplaceItems(ctx, list); err != nil {
		return nil, err
	}

	return list, nil
}

// buildLines runs scale -> aggregate -> categorize and returns lines in
// presentation order.
func (s *Service) buildLines(
	ctx context.Context,
	req GenerateRequest,
	previous []AggregatedLine,
) ([]AggregatedLine, []UnitFamilyConflict, error) {

	if len(req.RecipeIDs) == 0 {
		return nil, nil, errors.New("at least one recipe is required")
	}

	var scaled []ScaledLine

	for _, recipeID := range req.RecipeIDs {
		rec, err := s.recipes.GetByID(ctx, recipeID)
		if err != nil {
			return nil, nil, err
		}
		if rec == nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, recipeID)
		}

		multiplier, ok := req.ServingsMultiplier[recipeID]
		if !ok {
			multiplier = decimal.NewFromInt(1)
		}

		recScaled, err := ScaleRecipe(rec, multiplier)
		if err != nil {
			return nil, nil, err
		}
		scaled = append(scaled, recScaled...)
	}

	lookup, err := s.resolveIngredients(ctx, scaled)
	if err != nil {
		return nil, nil, err
	}

	aggregated, err := Aggregate(s.normalizer, scaled, lookup)
	if err != nil {
		return nil, nil, err
	}

	grouped, err := Categorize(aggregated.Lines, lookup, previous)
	if err != nil {
		return nil, nil, err
	}

	return Flatten(grouped), aggregated.Conflicts, nil
}

func (s *Service) resolveIngredients(
	ctx context.Context,
	scaled []ScaledLine,
) (map[string]*ingredient.Ingredient, error) {

	lookup := make(map[string]*ingredient.Ingredient)
	for _, line := range scaled {
		if _, seen := lookup[line.IngredientID]; seen {
			continue
		}

		ing, err := s.ingredients.GetByID(ctx, line.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownIngredient, line.IngredientID)
		}
		lookup[line.IngredientID] = ing
	}

	return lookup, nil
}

// --------------------------------------------------
// Checklist
// --------------------------------------------------

func (s *Service) ToggleItem(
	ctx context.Context,
	listID, ingredientID, rawUnit string,
) (bool, error) {

	unit, err := units.Parse(rawUnit)
	if err != nil {
		return false, err
	}

	return s.repo.ToggleItem(ctx, listID, ingredientID, unit)
}

// --------------------------------------------------
// Cost estimation
// --------------------------------------------------

func (s *Service) EstimateCost(ctx context.Context, listID string) (*CostEstimate, error) {
	list, err := s.Get(ctx, listID)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]*ingredient.Ingredient, len(list.Lines))
	for _, line := range list.Lines {
		if _, seen := lookup[line.IngredientID]; seen {
			continue
		}
		ing, err := s.ingredients.GetByID(ctx, line.IngredientID)
		if err != nil {
			return nil, err
		}
		lookup[line.IngredientID] = ing
	}

	return EstimateCost(ctx, list.Lines, lookup, s.provider, s.table, s.priceTimeout), nil
}

// --------------------------------------------------
// Export
// --------------------------------------------------

// ExportCSV renders the list grouped by category and uploads it,
// returning the public URL.
func (s *Service) ExportCSV(ctx context.Context, listID string) (string, error) {
	list, err := s.Get(ctx, listID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"category", "ingredient", "quantity", "unit", "checked"})
	for _, line := range list.Lines {
		_ = w.Write([]string{
			string(line.Category),
			line.IngredientName,
			line.Quantity.Round(2).String(),
			string(line.Unit),
			fmt.Sprintf("%t", line.Checked),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	key := fmt.Sprintf("shopping-lists/%s-%d.csv", list.ID, time.Now().Unix())
	return s.exporter.UploadDocument(ctx, key, "text/csv", buf.Bytes())
}

// conflictsIn rebuilds unit-family warnings from a stored snapshot: an
// ingredient on more than one line is exactly a persisted conflict.
func conflictsIn(lines []AggregatedLine) []UnitFamilyConflict {
	perIngredient := make(map[string][]units.Unit)
	names := make(map[string]string)
	var order []string

	for _, line := range lines {
		if _, seen := perIngredient[line.IngredientID]; !seen {
			order = append(order, line.IngredientID)
		}
		perIngredient[line.IngredientID] = append(perIngredient[line.IngredientID], line.Unit)
		names[line.IngredientID] = line.IngredientName
	}

	var conflicts []UnitFamilyConflict
	for _, id := range order {
		if len(perIngredient[id]) > 1 {
			conflicts = append(conflicts, UnitFamilyConflict{
				IngredientID:   id,
				IngredientName: names[id],
				Units:          perIngredient[id],
			})
		}
	}

	return conflicts
}
