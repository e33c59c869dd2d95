package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/snapkitchen/pantry-api/internal/models"
)

var ErrRecipeNotFound = errors.New("recipe not found")

const recipeColumns = `id, user_id, name, description, prep_time, cook_time, servings, calories, ingredients, instructions, tags, is_favorite, cooked_at, created_at`

func scanRecipe(row pgx.Row) (*models.Recipe, error) {
	r := &models.Recipe{}
	var ingredients, instructions, tags []byte
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Name,
		&r.Description,
		&r.PrepTime,
		&r.CookTime,
		&r.Servings,
		&r.Calories,
		&ingredients,
		&instructions,
		&tags,
		&r.IsFavorite,
		&r.CookedAt,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ingredients, &r.Ingredients); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(instructions, &r.Instructions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &r.Tags); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateRecipe persists a recipe snapshot: a cooked-history record when
// cookedAt is set, a favorite when isFavorite is true. Snapshots are
// immutable apart from the favorite flag.
func (db *DB) CreateRecipe(ctx context.Context, userID int, p *models.RecipePayload, isFavorite bool, cookedAt *time.Time) (*models.Recipe, error) {
	ingredients, err := json.Marshal(p.Ingredients)
	if err != nil {
		return nil, err
	}
	instructions, err := json.Marshal(p.Instructions)
	if err != nil {
		return nil, err
	}
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return nil, err
	}

	return scanRecipe(db.Pool.QueryRow(ctx, `
		INSERT INTO recipes (user_id, name, description, prep_time, cook_time, servings, calories,
			ingredients, instructions, tags, is_favorite, cooked_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING `+recipeColumns+`
	`, userID, p.Name, p.Description, p.PrepTime, p.CookTime, p.Servings, p.Calories,
		ingredients, instructions, tags, isFavorite, cookedAt))
}

// ListCookedRecipes returns the cooking history for a user, most recent first
func (db *DB) ListCookedRecipes(ctx context.Context, userID int) ([]*models.Recipe, error) {
	return db.listRecipes(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE user_id = $1 AND cooked_at IS NOT NULL
		ORDER BY cooked_at DESC
	`, userID)
}

// ListFavoriteRecipes returns the saved favorites for a user, newest first
func (db *DB) ListFavoriteRecipes(ctx context.Context, userID int) ([]*models.Recipe, error) {
	return db.listRecipes(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE user_id = $1 AND is_favorite
		ORDER BY created_at DESC
	`, userID)
}

func (db *DB) listRecipes(ctx context.Context, query string, userID int) ([]*models.Recipe, error) {
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*models.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

// SetRecipeFavorite toggles the favorite flag on a recipe
func (db *DB) SetRecipeFavorite(ctx context.Context, id, userID int, favorite bool) (*models.Recipe, error) {
	r, err := scanRecipe(db.Pool.QueryRow(ctx, `
		UPDATE recipes SET is_favorite = $3
		WHERE id = $1 AND user_id = $2
		RETURNING `+recipeColumns+`
	`, id, userID, favorite))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}

// DeleteRecipe removes a recipe record
func (db *DB) DeleteRecipe(ctx context.Context, id, userID int) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM recipes WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
