package ingredient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create a new ingredient
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, ing *Ingredient) error {
	query := `
		INSERT INTO ingredients (
			id,
			name,
			category,
			search_term
		)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(
		ctx,
		query,
		ing.ID,
		ing.Name,
		ing.Category,
		ing.SearchTerm,
	).Scan(&ing.CreatedAt, &ing.UpdatedAt)
}

// --------------------------------------------------
// Get ingredient by ID
// --------------------------------------------------
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Ingredient, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// --------------------------------------------------
// Get ingredient by name (case-insensitive)
// --------------------------------------------------
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Ingredient, error) {
	return r.getOne(ctx, `WHERE LOWER(name) = LOWER($1)`, name)
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg any) (*Ingredient, error) {
	query := `
		SELECT
			id,
			name,
			category,
			COALESCE(search_term, ''),
			created_at,
			updated_at
		FROM ingredients
	` + where

	var ing Ingredient
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&ing.ID,
		&ing.Name,
		&ing.Category,
		&ing.SearchTerm,
		&ing.CreatedAt,
		&ing.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ing, nil
}

// --------------------------------------------------
// List ingredients (optional category filter, pagination)
// --------------------------------------------------
func (r *PostgresRepository) List(
	ctx context.Context,
	category string,
	skip, limit int,
) ([]*Ingredient, error) {

	query := `
		SELECT
			id,
			name,
			category,
			COALESCE(search_term, ''),
			created_at,
			updated_at
		FROM ingredients
		WHERE ($1 = '' OR category = $1)
		ORDER BY name
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, category, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*Ingredient

	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(
			&ing.ID,
			&ing.Name,
			&ing.Category,
			&ing.SearchTerm,
			&ing.CreatedAt,
			&ing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, &ing)
	}

	return ingredients, rows.Err()
}

// --------------------------------------------------
// Update an ingredient
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, ing *Ingredient) error {
	query := `
		UPDATE ingredients
		SET
			name = $2,
			category = $3,
			search_term = NULLIF($4, ''),
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	return r.db.QueryRow(
		ctx,
		query,
		ing.ID,
		ing.Name,
		ing.Category,
		ing.SearchTerm,
	).Scan(&ing.UpdatedAt)
}

// --------------------------------------------------
// Delete an ingredient
// --------------------------------------------------
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
