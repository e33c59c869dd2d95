package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/snapkitchen/pantry-api/internal/database"
	"github.com/snapkitchen/pantry-api/internal/middleware"
	"github.com/snapkitchen/pantry-api/internal/models"
)

// GenerateRecipes suggests recipes from the user's current pantry
func (h *Handler) GenerateRecipes(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if !h.recipeGen.Enabled() {
		return Error(c, fiber.StatusServiceUnavailable, "recipe generation is not configured")
	}

	var req models.GenerateRecipesRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	pantry, err := h.db.ListIngredients(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list ingredients")
	}
	if len(pantry) == 0 {
		return Error(c, fiber.StatusBadRequest, "pantry is empty, add some ingredients first")
	}

	filters := models.RecipeFilters{}
	if req.Filters != nil {
		filters = *req.Filters
	}

	recipes, err := h.recipeGen.Generate(c.Context(), pantry, filters)
	if err != nil {
		log.Printf("Error generating recipes for user %d: %v", userID, err)
		return Error(c, fiber.StatusBadGateway, "recipe generation failed")
	}

	return Success(c, fiber.Map{"recipes": recipes})
}

// CookRecipe records a cooked recipe and deducts its ingredients from the
// pantry. The history entry is written even when some deductions fail, in
// which case the response reports the partial outcome.
func (h *Handler) CookRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CookRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Recipe.Name == "" {
		return Error(c, fiber.StatusBadRequest, "recipe name is required")
	}

	result, err := h.reconciler.CookRecipe(c.Context(), userID, &req.Recipe)
	if err != nil {
		if result == nil {
			return Error(c, fiber.StatusInternalServerError, "failed to record cooked recipe")
		}
		// The history entry exists, report the partial application
		log.Printf("Partial cook for user %d: %v", userID, err)
		return c.Status(fiber.StatusMultiStatus).JSON(APIResponse{
			Success: false,
			Data:    result,
			Error:   "recipe recorded but some pantry updates failed",
		})
	}

	return Success(c, result)
}

// GetRecipeHistory returns cooked recipes, most recent first
func (h *Handler) GetRecipeHistory(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	recipes, err := h.db.ListCookedRecipes(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list recipe history")
	}

	return SuccessWithMeta(c, recipes, len(recipes))
}

// SaveRecipe stores a recipe as a favorite without cooking it
func (h *Handler) SaveRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.SaveRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "recipe name is required")
	}

	recipe, err := h.db.CreateRecipe(c.Context(), userID, &req.RecipePayload, true, nil)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to save recipe")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    recipe,
	})
}

// GetFavoriteRecipes returns the user's saved favorites
func (h *Handler) GetFavoriteRecipes(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	recipes, err := h.db.ListFavoriteRecipes(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list favorite recipes")
	}

	return SuccessWithMeta(c, recipes, len(recipes))
}

// SetRecipeFavorite toggles the favorite flag on a stored recipe
func (h *Handler) SetRecipeFavorite(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	var req struct {
		IsFavorite bool `json:"is_favorite"`
	}
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	recipe, err := h.db.SetRecipeFavorite(c.Context(), id, userID, req.IsFavorite)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update recipe")
	}

	return Success(c, recipe)
}

// DeleteRecipe removes a stored recipe
func (h *Handler) DeleteRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	if err := h.db.DeleteRecipe(c.Context(), id, userID); err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete recipe")
	}

	return Success(c, fiber.Map{"deleted": true})
}
