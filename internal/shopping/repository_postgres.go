package shopping

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"epicerie/internal/units"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create a shopping list with its items in one transaction
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, list *ShoppingList) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO shopping_lists (id, name)
		VALUES ($1, $2)
		RETURNING created_at, updated_at
	`, list.ID, list.Name).Scan(&list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertItems(ctx, tx, list.ID, list.Lines); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Get a list with its items (joined for name/category)
// --------------------------------------------------
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*ShoppingList, error) {
	var list ShoppingList

	err := r.db.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM shopping_lists
		WHERE id = $1
	`, id).Scan(&list.ID, &list.Name, &list.CreatedAt, &list.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			sli.ingredient_id,
			i.name,
			i.category,
			sli.quantity,
			sli.unit,
			sli.recipe_ids,
			sli.checked
		FROM shopping_list_items sli
		JOIN ingredients i ON i.id = sli.ingredient_id
		WHERE sli.shopping_list_id = $1
		ORDER BY LOWER(i.name), sli.unit
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line AggregatedLine
		if err := rows.Scan(
			&line.IngredientID,
			&line.IngredientName,
			&line.Category,
			&line.Quantity,
			&line.Unit,
			&line.RecipeIDs,
			&line.Checked,
		); err != nil {
			return nil, err
		}
		list.Lines = append(list.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &list, nil
}

// --------------------------------------------------
// List shopping lists (headers only, pagination)
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]*ShoppingList, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM shopping_lists
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*ShoppingList
	for rows.Next() {
		var list ShoppingList
		if err := rows.Scan(&list.ID, &list.Name, &list.CreatedAt, &list.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, &list)
	}

	return lists, rows.Err()
}

// --------------------------------------------------
// Delete a list (items cascade)
// --------------------------------------------------
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM shopping_lists WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// --------------------------------------------------
// Replace all items of a list in one transaction
// --------------------------------------------------
func (r *PostgresRepository) ReplaceItems(ctx context.Context, list *ShoppingList) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// lock the list row: one writer per list at a time
	err = tx.QueryRow(ctx, `
		SELECT id FROM shopping_lists WHERE id = $1 FOR UPDATE
	`, list.ID).Scan(&list.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrListNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM shopping_list_items WHERE shopping_list_id = $1
	`, list.ID); err != nil {
		return err
	}

	if err := insertItems(ctx, tx, list.ID, list.Lines); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `
		UPDATE shopping_lists SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, list.ID, list.Name).Scan(&list.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertItems(ctx context.Context, tx pgx.Tx, listID string, lines []AggregatedLine) error {
	for _, line := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO shopping_list_items (
				shopping_list_id,
				ingredient_id,
				quantity,
				unit,
				recipe_ids,
				checked
			)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			listID,
			line.IngredientID,
			line.Quantity,
			line.Unit,
			line.RecipeIDs,
			line.Checked,
		); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------
// Toggle one item's checked flag (single-writer tx)
// --------------------------------------------------
func (r *PostgresRepository) ToggleItem(
	ctx context.Context,
	listID, ingredientID string,
	unit units.Unit,
) (bool, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var checked bool
	err = tx.QueryRow(ctx, `
		SELECT checked
		FROM shopping_list_items
		WHERE shopping_list_id = $1
		  AND ingredient_id = $2
		  AND unit = $3
		FOR UPDATE
	`, listID, ingredientID, unit).Scan(&checked)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrLineNotFound
	}
	if err != nil {
		return false, err
	}

	newState := !checked

	if _, err := tx.Exec(ctx, `
		UPDATE shopping_list_items
		SET checked = $4
		WHERE shopping_list_id = $1
		  AND ingredient_id = $2
		  AND unit = $3
	`, listID, ingredientID, unit, newState); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	return newState, nil
}
