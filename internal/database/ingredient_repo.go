package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/snapkitchen/pantry-api/internal/models"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

const ingredientColumns = `id, user_id, name, quantity, unit, category, emoji, is_essential, added_at, last_updated`

func scanIngredient(row pgx.Row) (*models.Ingredient, error) {
	ing := &models.Ingredient{}
	err := row.Scan(
		&ing.ID,
		&ing.UserID,
		&ing.Name,
		&ing.Quantity,
		&ing.Unit,
		&ing.Category,
		&ing.Emoji,
		&ing.IsEssential,
		&ing.AddedAt,
		&ing.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// ListIngredients returns all pantry entries for a user, newest first
func (db *DB) ListIngredients(ctx context.Context, userID int) ([]*models.Ingredient, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		WHERE user_id = $1
		ORDER BY added_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*models.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// GetIngredientByID retrieves a single pantry entry scoped to its owner
func (db *DB) GetIngredientByID(ctx context.Context, id, userID int) (*models.Ingredient, error) {
	ing, err := scanIngredient(db.Pool.QueryRow(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		WHERE id = $1 AND user_id = $2
	`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ing, nil
}

// FindIngredientByName looks up a pantry entry by case-insensitive exact
// name match. Returns (nil, nil) when no entry matches; the merge resolver
// and the consumption reconciler both treat a miss as a normal outcome, not
// an error.
func (db *DB) FindIngredientByName(ctx context.Context, userID int, name string) (*models.Ingredient, error) {
	ing, err := scanIngredient(db.Pool.QueryRow(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		WHERE user_id = $1 AND LOWER(name) = LOWER($2)
	`, userID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ing, nil
}

// CreateIngredient inserts a new pantry entry from a validated candidate
func (db *DB) CreateIngredient(ctx context.Context, userID int, c *models.IngredientCandidate) (*models.Ingredient, error) {
	isEssential := false
	if c.IsEssential != nil {
		isEssential = *c.IsEssential
	}

	ing, err := scanIngredient(db.Pool.QueryRow(ctx, `
		INSERT INTO ingredients (user_id, name, quantity, unit, category, emoji, is_essential, added_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING `+ingredientColumns+`
	`, userID, c.Name, c.Quantity, c.Unit, c.Category, c.Emoji, isEssential))
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// UpdateIngredient updates the editable fields of a pantry entry and
// touches last_updated
func (db *DB) UpdateIngredient(ctx context.Context, id, userID int, name, quantity, unit, category string, isEssential bool) (*models.Ingredient, error) {
	ing, err := scanIngredient(db.Pool.QueryRow(ctx, `
		UPDATE ingredients
		SET name = $3, quantity = $4, unit = $5, category = $6, is_essential = $7, last_updated = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+ingredientColumns+`
	`, id, userID, name, quantity, unit, category, isEssential))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ing, nil
}

// UpdateIngredientQuantity sets only the quantity of a pantry entry,
// touching last_updated. Used by merge resolution and consumption.
func (db *DB) UpdateIngredientQuantity(ctx context.Context, id, userID int, quantity string) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE ingredients
		SET quantity = $3, last_updated = NOW()
		WHERE id = $1 AND user_id = $2
	`, id, userID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrIngredientNotFound
	}
	return nil
}

// DeleteIngredient removes a pantry entry
func (db *DB) DeleteIngredient(ctx context.Context, id, userID int) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM ingredients WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrIngredientNotFound
	}
	return nil
}

// BatchDeleteIngredients removes a set of pantry entries owned by the user
// and reports how many were deleted
func (db *DB) BatchDeleteIngredients(ctx context.Context, userID int, ids []int) (int, error) {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM ingredients WHERE user_id = $1 AND id = ANY($2)
	`, userID, ids)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
