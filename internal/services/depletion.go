package services

import (
	"context"

	"github.com/snapkitchen/pantry-api/internal/models"
)

// DepletionTrigger watches quantity mutations on essential pantry entries
// and adds a shopping-list item when one runs out.
type DepletionTrigger struct {
	shopping ShoppingStore
}

// NewDepletionTrigger creates a depletion trigger backed by the given store
func NewDepletionTrigger(shopping ShoppingStore) *DepletionTrigger {
	return &DepletionTrigger{shopping: shopping}
}

// QuantityChanged must be called after any single-ingredient quantity
// mutation with the old and new quantities. It fires only on the transition
// from positive stock to exactly zero, and only for essential entries.
// The check-then-create is idempotent under sequential calls: if an
// unpurchased item with the same name already exists, nothing happens.
// Returns whether an item was created.
func (t *DepletionTrigger) QuantityChanged(ctx context.Context, ing *models.Ingredient, oldQty, newQty float64) (bool, error) {
	if !ing.IsEssential || oldQty <= 0 || newQty != 0 {
		return false, nil
	}

	existing, err := t.shopping.FindUnpurchasedItemByName(ctx, ing.UserID, ing.Name)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	_, err = t.shopping.CreateShoppingItem(ctx, ing.UserID, &models.CreateShoppingItemRequest{
		Name:     ing.Name,
		Quantity: "1",
		Unit:     ing.Unit,
		Category: ing.Category,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
