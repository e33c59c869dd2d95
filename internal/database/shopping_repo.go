package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/snapkitchen/pantry-api/internal/models"
)

var (
	ErrShoppingItemNotFound = errors.New("shopping list item not found")
	ErrShoppingItemExists   = errors.New("item already in shopping list")
)

const shoppingColumns = `id, user_id, name, quantity, unit, category, is_purchased, added_at`

func scanShoppingItem(row pgx.Row) (*models.ShoppingListItem, error) {
	item := &models.ShoppingListItem{}
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Quantity,
		&item.Unit,
		&item.Category,
		&item.IsPurchased,
		&item.AddedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListShoppingItems returns all shopping-list items for a user, active
// items first, newest first within each group
func (db *DB) ListShoppingItems(ctx context.Context, userID int) ([]*models.ShoppingListItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+shoppingColumns+`
		FROM shopping_list_items
		WHERE user_id = $1
		ORDER BY is_purchased ASC, added_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.ShoppingListItem
	for rows.Next() {
		item, err := scanShoppingItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindUnpurchasedItemByName looks up an active (unpurchased) item by
// case-insensitive name. Returns (nil, nil) when none exists.
func (db *DB) FindUnpurchasedItemByName(ctx context.Context, userID int, name string) (*models.ShoppingListItem, error) {
	item, err := scanShoppingItem(db.Pool.QueryRow(ctx, `
		SELECT `+shoppingColumns+`
		FROM shopping_list_items
		WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND NOT is_purchased
	`, userID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// CreateShoppingItem inserts a new shopping-list item. The partial unique
// index rejects a second unpurchased item with the same lowercased name.
func (db *DB) CreateShoppingItem(ctx context.Context, userID int, req *models.CreateShoppingItemRequest) (*models.ShoppingListItem, error) {
	quantity := req.Quantity
	if quantity == "" {
		quantity = "1"
	}
	unit := req.Unit
	if unit == "" {
		unit = models.UnitPieces
	}

	item, err := scanShoppingItem(db.Pool.QueryRow(ctx, `
		INSERT INTO shopping_list_items (user_id, name, quantity, unit, category, is_purchased, added_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
		RETURNING `+shoppingColumns+`
	`, userID, req.Name, quantity, unit, req.Category))
	if err != nil {
		if strings.Contains(err.Error(), "idx_shopping_active_user_name") {
			return nil, ErrShoppingItemExists
		}
		return nil, err
	}
	return item, nil
}

// UpdateShoppingItem applies a partial update to a shopping-list item
func (db *DB) UpdateShoppingItem(ctx context.Context, id, userID int, req *models.UpdateShoppingItemRequest) (*models.ShoppingListItem, error) {
	current, err := scanShoppingItem(db.Pool.QueryRow(ctx, `
		SELECT `+shoppingColumns+`
		FROM shopping_list_items
		WHERE id = $1 AND user_id = $2
	`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrShoppingItemNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Quantity != nil {
		current.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		current.Unit = *req.Unit
	}
	if req.Category != nil {
		current.Category = *req.Category
	}
	if req.IsPurchased != nil {
		current.IsPurchased = *req.IsPurchased
	}

	item, err := scanShoppingItem(db.Pool.QueryRow(ctx, `
		UPDATE shopping_list_items
		SET name = $3, quantity = $4, unit = $5, category = $6, is_purchased = $7
		WHERE id = $1 AND user_id = $2
		RETURNING `+shoppingColumns+`
	`, id, userID, current.Name, current.Quantity, current.Unit, current.Category, current.IsPurchased))
	if err != nil {
		if strings.Contains(err.Error(), "idx_shopping_active_user_name") {
			return nil, ErrShoppingItemExists
		}
		return nil, err
	}
	return item, nil
}

// DeleteShoppingItem removes a shopping-list item
func (db *DB) DeleteShoppingItem(ctx context.Context, id, userID int) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM shopping_list_items WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrShoppingItemNotFound
	}
	return nil
}

// ClearPurchasedItems removes all purchased items for a user and reports
// how many were deleted
func (db *DB) ClearPurchasedItems(ctx context.Context, userID int) (int, error) {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM shopping_list_items WHERE user_id = $1 AND is_purchased
	`, userID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
