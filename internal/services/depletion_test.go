package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapkitchen/pantry-api/internal/models"
)

func essentialIngredient(name string) *models.Ingredient {
	return &models.Ingredient{
		ID: 1, UserID: 1, Name: name, Quantity: "0",
		Unit: models.UnitGrams, Category: "protein", IsEssential: true,
	}
}

func TestDepletionFiresOnTransitionToZero(t *testing.T) {
	t.Parallel()

	shopping := &stubShopping{}
	trigger := NewDepletionTrigger(shopping)

	created, err := trigger.QuantityChanged(context.Background(), essentialIngredient("Chicken Breast"), 500, 0)
	require.NoError(t, err)
	assert.True(t, created)

	require.Len(t, shopping.items, 1)
	item := shopping.items[0]
	assert.Equal(t, "Chicken Breast", item.Name)
	assert.Equal(t, "1", item.Quantity)
	assert.Equal(t, models.UnitGrams, item.Unit)
	assert.Equal(t, "protein", item.Category)
	assert.False(t, item.IsPurchased)
}

func TestDepletionIgnoresNonEssential(t *testing.T) {
	t.Parallel()

	shopping := &stubShopping{}
	trigger := NewDepletionTrigger(shopping)

	ing := essentialIngredient("Soy Sauce")
	ing.IsEssential = false

	created, err := trigger.QuantityChanged(context.Background(), ing, 200, 0)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, shopping.items)
}

func TestDepletionRequiresPositiveOldQuantity(t *testing.T) {
	t.Parallel()

	shopping := &stubShopping{}
	trigger := NewDepletionTrigger(shopping)

	// already at zero: no transition happened
	created, err := trigger.QuantityChanged(context.Background(), essentialIngredient("Milk"), 0, 0)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, shopping.items)
}

func TestDepletionRequiresExactZero(t *testing.T) {
	t.Parallel()

	shopping := &stubShopping{}
	trigger := NewDepletionTrigger(shopping)

	created, err := trigger.QuantityChanged(context.Background(), essentialIngredient("Milk"), 500, 0.5)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, shopping.items)
}

func TestDepletionSkipsExistingUnpurchasedItem(t *testing.T) {
	t.Parallel()

	shopping := &stubShopping{}
	trigger := NewDepletionTrigger(shopping)

	_, err := shopping.CreateShoppingItem(context.Background(), 1, &models.CreateShoppingItemRequest{
		Name: "chicken breast", Quantity: "1", Unit: models.UnitGrams, Category: "protein",
	})
	require.NoError(t, err)

	created, err := trigger.QuantityChanged(context.Background(), essentialIngredient("Chicken Breast"), 500, 0)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, shopping.items, 1)
}

func TestDepletionCreatesAgainAfterPurchase(t *testing.T) {
	t.Parallel()

	shopping := &stubShopping{}
	trigger := NewDepletionTrigger(shopping)

	item, err := shopping.CreateShoppingItem(context.Background(), 1, &models.CreateShoppingItemRequest{
		Name: "Milk", Quantity: "1", Unit: models.UnitML, Category: "dairy",
	})
	require.NoError(t, err)
	item.IsPurchased = true

	// a purchased entry does not block a fresh depletion
	created, err := trigger.QuantityChanged(context.Background(), essentialIngredient("Milk"), 250, 0)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, shopping.items, 2)
}

func TestDepletionPropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	shopping := &stubShopping{createErr: errors.New("db down")}
	trigger := NewDepletionTrigger(shopping)

	created, err := trigger.QuantityChanged(context.Background(), essentialIngredient("Milk"), 250, 0)
	assert.Error(t, err)
	assert.False(t, created)
}
