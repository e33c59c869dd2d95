package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapkitchen/pantry-api/internal/models"
)

func newTestReconciler(pantry *stubPantry) (*Reconciler, *stubShopping, *stubRecipes) {
	shopping := &stubShopping{}
	recipes := &stubRecipes{}
	return NewReconciler(pantry, recipes, NewDepletionTrigger(shopping)), shopping, recipes
}

func TestCookRecipeDeductsAndRecordsHistory(t *testing.T) {
	t.Parallel()

	pantry := newStubPantry(
		&models.Ingredient{UserID: 1, Name: "Chicken Breast", Quantity: "500", Unit: models.UnitGrams, Category: "protein", IsEssential: true},
		&models.Ingredient{UserID: 1, Name: "Milk", Quantity: "1", Unit: models.UnitLiters, Category: "dairy"},
	)
	reconciler, shopping, recipes := newTestReconciler(pantry)

	payload := &models.RecipePayload{
		Name: "Chicken in Milk Sauce",
		Ingredients: []models.RecipeIngredient{
			{Name: "chicken breast", Amount: "500g", FromKitchen: true},
			{Name: "milk", Amount: "250ml", FromKitchen: true},
			{Name: "saffron", Amount: "1 pinch", FromKitchen: false},
		},
	}

	result, err := reconciler.CookRecipe(context.Background(), 1, payload)
	require.NoError(t, err)

	// history snapshot recorded with a cook timestamp
	require.Len(t, recipes.recipes, 1)
	assert.Equal(t, "Chicken in Milk Sauce", recipes.recipes[0].Name)
	require.NotNil(t, recipes.recipes[0].CookedAt)
	assert.False(t, recipes.recipes[0].IsFavorite)

	// 500g of 500g chicken consumed, 250ml off a 1 liter bottle
	assert.Equal(t, "0", pantry.quantityOf("chicken breast"))
	assert.Equal(t, "0.75", pantry.quantityOf("milk"))

	// depleted essential landed on the shopping list
	require.Len(t, shopping.items, 1)
	assert.Equal(t, "Chicken Breast", shopping.items[0].Name)

	require.Len(t, result.Updates, 2)
	assert.Equal(t, "500", result.Updates[0].OldQuantity)
	assert.Equal(t, "0", result.Updates[0].NewQuantity)
	assert.True(t, result.Updates[0].Depleted)
	assert.False(t, result.Updates[1].Depleted)
}

func TestCookRecipeSkipsMissingIngredients(t *testing.T) {
	t.Parallel()

	pantry := newStubPantry(
		&models.Ingredient{UserID: 1, Name: "Rice", Quantity: "2", Unit: models.UnitKg, Category: "carbs"},
	)
	reconciler, _, recipes := newTestReconciler(pantry)

	payload := &models.RecipePayload{
		Name: "Fried Rice",
		Ingredients: []models.RecipeIngredient{
			{Name: "rice", Amount: "500g", FromKitchen: true},
			// stale fromKitchen flag, nothing in the pantry
			{Name: "scallions", Amount: "2 pieces", FromKitchen: true},
		},
	}

	result, err := reconciler.CookRecipe(context.Background(), 1, payload)
	require.NoError(t, err)

	// 500g against a kg entry scales down
	assert.Equal(t, "1.5", pantry.quantityOf("rice"))
	assert.Len(t, result.Updates, 1)
	assert.Len(t, recipes.recipes, 1)
}

func TestCookRecipeClampsAtZero(t *testing.T) {
	t.Parallel()

	pantry := newStubPantry(
		&models.Ingredient{UserID: 1, Name: "Butter", Quantity: "100", Unit: models.UnitGrams, Category: "dairy"},
	)
	reconciler, _, _ := newTestReconciler(pantry)

	payload := &models.RecipePayload{
		Name: "Beurre Blanc",
		Ingredients: []models.RecipeIngredient{
			{Name: "butter", Amount: "250g", FromKitchen: true},
		},
	}

	_, err := reconciler.CookRecipe(context.Background(), 1, payload)
	require.NoError(t, err)

	// never negative
	assert.Equal(t, "0", pantry.quantityOf("butter"))
}

func TestCookRecipeSameNameLinesAccumulate(t *testing.T) {
	t.Parallel()

	pantry := newStubPantry(
		&models.Ingredient{UserID: 1, Name: "Eggs", Quantity: "10", Unit: models.UnitPieces, Category: "protein"},
	)
	reconciler, _, _ := newTestReconciler(pantry)

	payload := &models.RecipePayload{
		Name: "Double Omelette",
		Ingredients: []models.RecipeIngredient{
			{Name: "eggs", Amount: "3 pieces", FromKitchen: true},
			{Name: "Eggs", Amount: "2 pieces", FromKitchen: true},
		},
	}

	result, err := reconciler.CookRecipe(context.Background(), 1, payload)
	require.NoError(t, err)

	// both lines deduct against the live value, not the starting one
	assert.Equal(t, "5", pantry.quantityOf("eggs"))
	require.Len(t, result.Updates, 2)
	assert.Equal(t, "7", result.Updates[0].NewQuantity)
	assert.Equal(t, "5", result.Updates[1].NewQuantity)
}

func TestCookRecipeHistoryFailureAborts(t *testing.T) {
	t.Parallel()

	pantry := newStubPantry(
		&models.Ingredient{UserID: 1, Name: "Milk", Quantity: "1", Unit: models.UnitLiters, Category: "dairy"},
	)
	shopping := &stubShopping{}
	recipes := &stubRecipes{createErr: errors.New("db down")}
	reconciler := NewReconciler(pantry, recipes, NewDepletionTrigger(shopping))

	payload := &models.RecipePayload{
		Name: "Porridge",
		Ingredients: []models.RecipeIngredient{
			{Name: "milk", Amount: "250ml", FromKitchen: true},
		},
	}

	result, err := reconciler.CookRecipe(context.Background(), 1, payload)
	assert.Error(t, err)
	assert.Nil(t, result)

	// no deductions when the history record could not be written
	assert.Equal(t, "1", pantry.quantityOf("milk"))
}

func TestCookRecipeHistorySurvivesUpdateFailures(t *testing.T) {
	t.Parallel()

	pantry := newStubPantry(
		&models.Ingredient{UserID: 1, Name: "Milk", Quantity: "1", Unit: models.UnitLiters, Category: "dairy"},
	)
	pantry.updateErr = errors.New("db down")
	reconciler, _, recipes := newTestReconciler(pantry)

	payload := &models.RecipePayload{
		Name: "Porridge",
		Ingredients: []models.RecipeIngredient{
			{Name: "milk", Amount: "250ml", FromKitchen: true},
		},
	}

	result, err := reconciler.CookRecipe(context.Background(), 1, payload)
	assert.Error(t, err)

	// the cooked snapshot stays even though the deduction failed
	require.NotNil(t, result)
	assert.Len(t, recipes.recipes, 1)
	assert.Empty(t, result.Updates)
	assert.Equal(t, "1", pantry.quantityOf("milk"))
}

func TestCookRecipeDepletionFailureKeepsDeduction(t *testing.T) {
	t.Parallel()

	pantry := newStubPantry(
		&models.Ingredient{UserID: 1, Name: "Chicken Breast", Quantity: "500", Unit: models.UnitGrams, Category: "protein", IsEssential: true},
	)
	shopping := &stubShopping{createErr: errors.New("db down")}
	recipes := &stubRecipes{}
	reconciler := NewReconciler(pantry, recipes, NewDepletionTrigger(shopping))

	payload := &models.RecipePayload{
		Name: "Grilled Chicken",
		Ingredients: []models.RecipeIngredient{
			{Name: "chicken breast", Amount: "500g", FromKitchen: true},
		},
	}

	result, err := reconciler.CookRecipe(context.Background(), 1, payload)
	require.NoError(t, err)

	// the deduction stands, the shopping-list miss is logged only
	assert.Equal(t, "0", pantry.quantityOf("chicken breast"))
	require.Len(t, result.Updates, 1)
	assert.False(t, result.Updates[0].Depleted)
}

func TestCookRecipeIncompatibleUnitFallback(t *testing.T) {
	t.Parallel()

	pantry := newStubPantry(
		&models.Ingredient{UserID: 1, Name: "Flour", Quantity: "1000", Unit: models.UnitGrams, Category: "carbs"},
		&models.Ingredient{UserID: 1, Name: "Vanilla", Quantity: "5", Unit: models.UnitTsp, Category: "spices"},
	)
	reconciler, _, _ := newTestReconciler(pantry)

	payload := &models.RecipePayload{
		Name: "Cake",
		Ingredients: []models.RecipeIngredient{
			// cups against grams: 10% of stock
			{Name: "flour", Amount: "2 cups", FromKitchen: true},
			// oz against tsp: one unit
			{Name: "vanilla", Amount: "1 oz", FromKitchen: true},
		},
	}

	_, err := reconciler.CookRecipe(context.Background(), 1, payload)
	require.NoError(t, err)

	assert.Equal(t, "900", pantry.quantityOf("flour"))
	assert.Equal(t, "4", pantry.quantityOf("vanilla"))
}
