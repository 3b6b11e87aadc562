package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// INGREDIENTS
	// -------------------------------
	ingredientsSQL := `
		CREATE TABLE IF NOT EXISTS ingredients (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			category VARCHAR(20) NOT NULL,
			search_term VARCHAR(200) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_ingredients_name
			ON ingredients (LOWER(name));
		CREATE INDEX IF NOT EXISTS idx_ingredients_category
			ON ingredients (category);
	`
	if _, err := db.Exec(ctx, ingredientsSQL); err != nil {
		return err
	}

	// -------------------------------
	// RECIPES
	// -------------------------------
	recipesSQL := `
		CREATE TABLE IF NOT EXISTS recipes (
			id UUID PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			description TEXT NULL,
			season VARCHAR(20) NOT NULL,
			difficulty VARCHAR(20) NOT NULL,
			prep_time_minutes INT NOT NULL,
			servings INT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_recipes_season ON recipes (season);
	`
	if _, err := db.Exec(ctx, recipesSQL); err != nil {
		return err
	}

	// -------------------------------
	// RECIPE INGREDIENT LINES
	// -------------------------------
	recipeIngredientsSQL := `
		CREATE TABLE IF NOT EXISTS recipe_ingredients (
			recipe_id UUID NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			ingredient_id UUID NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			quantity NUMERIC(10, 2) NOT NULL CHECK (quantity > 0),
			unit VARCHAR(20) NOT NULL,
			position INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (recipe_id, ingredient_id)
		)
	`
	if _, err := db.Exec(ctx, recipeIngredientsSQL); err != nil {
		return err
	}

	// -------------------------------
	// SHOPPING LISTS
	// -------------------------------
	shoppingListsSQL := `
		CREATE TABLE IF NOT EXISTS shopping_lists (
			id UUID PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, shoppingListsSQL); err != nil {
		return err
	}

	// unit is part of the key: a unit-family conflict stores one line
	// per canonical unit for the same ingredient. quantity is
	// unconstrained NUMERIC so the stored snapshot keeps the exact
	// aggregated value
	shoppingListItemsSQL := `
		CREATE TABLE IF NOT EXISTS shopping_list_items (
			shopping_list_id UUID NOT NULL REFERENCES shopping_lists(id) ON DELETE CASCADE,
			ingredient_id UUID NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			quantity NUMERIC NOT NULL CHECK (quantity > 0),
			unit VARCHAR(20) NOT NULL,
			recipe_ids TEXT[] NOT NULL DEFAULT '{}',
			checked BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (shopping_list_id, ingredient_id, unit)
		)
	`
	if _, err := db.Exec(ctx, shoppingListItemsSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
