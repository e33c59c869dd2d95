package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/snapkitchen/pantry-api/internal/models"
)

// Reconciler applies the pantry-side effects of cooking a recipe: it
// records the cooked snapshot and deducts consumed quantities from
// matching pantry entries.
type Reconciler struct {
	pantry    PantryStore
	recipes   RecipeStore
	depletion *DepletionTrigger
}

// NewReconciler creates a consumption reconciler
func NewReconciler(pantry PantryStore, recipes RecipeStore, depletion *DepletionTrigger) *Reconciler {
	return &Reconciler{pantry: pantry, recipes: recipes, depletion: depletion}
}

// IngredientUpdate describes one pantry deduction performed during a cook.
type IngredientUpdate struct {
	Ingredient  *models.Ingredient `json:"ingredient"`
	OldQuantity string             `json:"old_quantity"`
	NewQuantity string             `json:"new_quantity"`
	Depleted    bool               `json:"depleted"`
}

// CookResult is the outcome of cooking a recipe.
type CookResult struct {
	Recipe  *models.Recipe     `json:"recipe"`
	Updates []IngredientUpdate `json:"updates"`
}

// CookRecipe records an immutable history snapshot of the recipe and then
// deducts every fromKitchen ingredient from the pantry.
//
// The history record is written first and unconditionally; deduction
// failures do not remove it. Recipe lines whose name has no pantry entry
// are skipped silently (the generator's fromKitchen flag may be stale).
// Per-ingredient updates are applied one at a time against the live store,
// so two lines that normalize to the same pantry name accumulate rather
// than overwrite each other. There is no cross-document transaction: a
// mid-batch persistence failure leaves earlier deductions in place, and
// the returned error reports that the cook was only partially applied.
func (r *Reconciler) CookRecipe(ctx context.Context, userID int, payload *models.RecipePayload) (*CookResult, error) {
	now := time.Now()
	recipe, err := r.recipes.CreateRecipe(ctx, userID, payload, false, &now)
	if err != nil {
		return nil, fmt.Errorf("record cooked recipe: %w", err)
	}

	result := &CookResult{Recipe: recipe}
	var updateErrs []error

	for _, line := range payload.Ingredients {
		if !line.FromKitchen {
			continue
		}

		entry, err := r.pantry.FindIngredientByName(ctx, userID, line.Name)
		if err != nil {
			updateErrs = append(updateErrs, fmt.Errorf("lookup %q: %w", line.Name, err))
			continue
		}
		if entry == nil {
			continue
		}

		currentQty := ParseQuantity(entry.Quantity)
		recipeAmount := ParseAmount(line.Amount)
		recipeUnit := ExtractUnit(line.Amount)
		reduction := ConvertAmount(recipeAmount, recipeUnit, entry.Unit, currentQty)
		newQty := math.Max(0, currentQty-reduction)

		oldQuantity := entry.Quantity
		entry.Quantity = FormatQuantity(newQty)
		if err := r.pantry.UpdateIngredientQuantity(ctx, entry.ID, userID, entry.Quantity); err != nil {
			updateErrs = append(updateErrs, fmt.Errorf("update %q: %w", entry.Name, err))
			continue
		}

		update := IngredientUpdate{
			Ingredient:  entry,
			OldQuantity: oldQuantity,
			NewQuantity: entry.Quantity,
		}

		created, err := r.depletion.QuantityChanged(ctx, entry, currentQty, newQty)
		if err != nil {
			// Best effort: the deduction stands even if the
			// shopping-list addition fails.
			log.Printf("Warning: depletion trigger failed for %q: %v", entry.Name, err)
		}
		update.Depleted = created

		result.Updates = append(result.Updates, update)
	}

	if len(updateErrs) > 0 {
		return result, fmt.Errorf("recipe recorded but some pantry updates failed: %w", errors.Join(updateErrs...))
	}
	return result, nil
}
