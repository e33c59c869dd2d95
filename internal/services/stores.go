package services

import (
	"context"
	"time"

	"github.com/snapkitchen/pantry-api/internal/models"
)

// PantryStore is the slice of the storage layer the reconciliation core
// needs. *database.DB satisfies it; tests substitute in-memory stubs.
// FindIngredientByName matches names case-insensitively and returns
// (nil, nil) when no entry exists.
type PantryStore interface {
	FindIngredientByName(ctx context.Context, userID int, name string) (*models.Ingredient, error)
	CreateIngredient(ctx context.Context, userID int, c *models.IngredientCandidate) (*models.Ingredient, error)
	UpdateIngredientQuantity(ctx context.Context, id, userID int, quantity string) error
	ListIngredients(ctx context.Context, userID int) ([]*models.Ingredient, error)
}

// ShoppingStore is the storage surface used by the depletion trigger.
// FindUnpurchasedItemByName returns (nil, nil) when no active item exists.
type ShoppingStore interface {
	FindUnpurchasedItemByName(ctx context.Context, userID int, name string) (*models.ShoppingListItem, error)
	CreateShoppingItem(ctx context.Context, userID int, req *models.CreateShoppingItemRequest) (*models.ShoppingListItem, error)
}

// RecipeStore records immutable recipe snapshots.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, userID int, p *models.RecipePayload, isFavorite bool, cookedAt *time.Time) (*models.Recipe, error)
}
