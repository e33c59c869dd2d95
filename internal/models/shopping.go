package models

import (
	"time"
)

// ShoppingListItem is one entry of a user's shopping list. At most one
// unpurchased item may exist per case-insensitive name per user; purchased
// duplicates are allowed and kept as history.
type ShoppingListItem struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Quantity    string    `json:"quantity"`
	Unit        string    `json:"unit"`
	Category    string    `json:"category"`
	IsPurchased bool      `json:"is_purchased"`
	AddedAt     time.Time `json:"added_at"`
}

// CreateShoppingItemRequest is the request body for adding a shopping-list
// item. Quantity defaults to "1" and unit to pieces.
type CreateShoppingItemRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
}

// UpdateShoppingItemRequest is the request body for editing a shopping-list
// item, including marking it purchased.
type UpdateShoppingItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Quantity    *string `json:"quantity,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	Category    *string `json:"category,omitempty"`
	IsPurchased *bool   `json:"is_purchased,omitempty"`
}
