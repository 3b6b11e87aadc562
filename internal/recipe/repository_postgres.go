package recipe

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
// Create a recipe with its ingredient lines
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, rec *Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (
			id,
			name,
			description,
			season,
			difficulty,
			prep_time_minutes,
			servings
		)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`,
		rec.ID,
		rec.Name,
		rec.Description,
		rec.Season,
		rec.Difficulty,
		rec.PrepTimeMinutes,
		rec.Servings,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertLines(ctx, tx, rec.ID, rec.Lines); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertLines(ctx context.Context, tx pgx.Tx, recipeID string, lines []Line) error {
	for pos, line := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (
				recipe_id,
				ingredient_id,
				quantity,
				unit,
				position
			)
			VALUES ($1, $2, $3, $4, $5)
		`,
			recipeID,
			line.IngredientID,
			line.Quantity,
			line.Unit,
			pos,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------
// Get a recipe with its lines
// --------------------------------------------------
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Recipe, error) {
	var rec Recipe
	var description *string

	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			name,
			description,
			season,
			difficulty,
			prep_time_minutes,
			servings,
			created_at,
			updated_at
		FROM recipes
		WHERE id = $1
	`, id).Scan(
		&rec.ID,
		&rec.Name,
		&description,
		&rec.Season,
		&rec.Difficulty,
		&rec.PrepTimeMinutes,
		&rec.Servings,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if description != nil {
		rec.Description = *description
	}

	lines, err := r.linesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Lines = lines

	return &rec, nil
}

func (r *PostgresRepository) linesFor(ctx context.Context, recipeID string) ([]Line, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			ingredient_id,
			quantity,
			unit
		FROM recipe_ingredients
		WHERE recipe_id = $1
		ORDER BY position
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.IngredientID, &line.Quantity, &line.Unit); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// --------------------------------------------------
// List recipes (no lines, pagination)
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]*Recipe, error) {
	return r.listWhere(ctx, `ORDER BY created_at DESC OFFSET $1 LIMIT $2`, skip, limit)
}

// --------------------------------------------------
// Search recipes by name or description
// --------------------------------------------------
func (r *PostgresRepository) Search(ctx context.Context, query string) ([]*Recipe, error) {
	return r.listWhere(
		ctx,
		`WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%' ORDER BY name`,
		query,
	)
}

func (r *PostgresRepository) listWhere(ctx context.Context, tail string, args ...any) ([]*Recipe, error) {
	query := `
		SELECT
			id,
			name,
			description,
			season,
			difficulty,
			prep_time_minutes,
			servings,
			created_at,
			updated_at
		FROM recipes
	` + tail

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*Recipe

	for rows.Next() {
		var rec Recipe
		var description *string
		if err := rows.Scan(
			&rec.ID,
			&rec.Name,
			&description,
			&rec.Season,
			&rec.Difficulty,
			&rec.PrepTimeMinutes,
			&rec.Servings,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if description != nil {
			rec.Description = *description
		}
		recipes = append(recipes, &rec)
	}

	return recipes, rows.Err()
}

// --------------------------------------------------
// Update a recipe, replacing all its lines
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, rec *Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		UPDATE recipes
		SET
			name = $2,
			description = NULLIF($3, ''),
			season = $4,
			difficulty = $5,
			prep_time_minutes = $6,
			servings = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`,
		rec.ID,
		rec.Name,
		rec.Description,
		rec.Season,
		rec.Difficulty,
		rec.PrepTimeMinutes,
		rec.Servings,
	).Scan(&rec.UpdatedAt)
	if err != nil {
		return err
	}

	// Replace lines wholesale, as the original update semantics do
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, rec.ID); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, rec.ID, rec.Lines); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Delete a recipe (lines cascade)
// --------------------------------------------------
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
