package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/snapkitchen/pantry-api/internal/database"
	"github.com/snapkitchen/pantry-api/internal/middleware"
	"github.com/snapkitchen/pantry-api/internal/models"
	"github.com/snapkitchen/pantry-api/internal/services"
)

// ListIngredients returns the user's pantry, newest first
func (h *Handler) ListIngredients(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	ingredients, err := h.db.ListIngredients(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list ingredients")
	}

	return SuccessWithMeta(c, ingredients, len(ingredients))
}

// CreateIngredients ingests a batch of ingredients. Candidates whose name
// already exists in the pantry (case-insensitive) have their quantity added
// to the existing entry instead of creating a duplicate.
func (h *Handler) CreateIngredients(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateIngredientsRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Ingredients) == 0 {
		return Error(c, fiber.StatusBadRequest, "ingredients array is required")
	}

	for i := range req.Ingredients {
		cand := &req.Ingredients[i]
		cand.Name = strings.TrimSpace(cand.Name)
		if cand.Name == "" {
			return Error(c, fiber.StatusBadRequest, "ingredient name is required")
		}
		if cand.Quantity == "" {
			cand.Quantity = "1"
		}
		if cand.Category == "" {
			cand.Category = models.CategoryOther
		} else if !models.ValidCategory(cand.Category) {
			return Error(c, fiber.StatusBadRequest, "invalid category")
		}
	}

	outcomes, err := h.merge.IngestCandidates(c.Context(), userID, req.Ingredients)
	if err != nil {
		log.Printf("Error ingesting ingredients for user %d: %v", userID, err)
		return Error(c, fiber.StatusInternalServerError, "failed to save ingredients")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    outcomes,
	})
}

// UpdateIngredient edits a pantry entry. When the quantity of an essential
// entry drops to zero it is added to the shopping list.
func (h *Handler) UpdateIngredient(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "invalid ingredient id")
	}

	var req models.UpdateIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}
	if !models.ValidUnit(req.Unit) {
		return Error(c, fiber.StatusBadRequest, "invalid unit")
	}
	if !models.ValidCategory(req.Category) {
		return Error(c, fiber.StatusBadRequest, "invalid category")
	}

	existing, err := h.db.GetIngredientByID(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrIngredientNotFound) {
			return Error(c, fiber.StatusNotFound, "ingredient not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get ingredient")
	}

	isEssential := existing.IsEssential
	if req.IsEssential != nil {
		isEssential = *req.IsEssential
	}

	oldQty := services.ParseQuantity(existing.Quantity)

	updated, err := h.db.UpdateIngredient(c.Context(), id, userID, req.Name, req.Quantity, req.Unit, req.Category, isEssential)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to update ingredient")
	}

	newQty := services.ParseQuantity(updated.Quantity)
	if _, err := h.depletion.QuantityChanged(c.Context(), updated, oldQty, newQty); err != nil {
		// The edit already succeeded, so only log
		log.Printf("Warning: depletion trigger failed for %q: %v", updated.Name, err)
	}

	return Success(c, updated)
}

// DeleteIngredient removes a pantry entry
func (h *Handler) DeleteIngredient(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "invalid ingredient id")
	}

	if err := h.db.DeleteIngredient(c.Context(), id, userID); err != nil {
		if errors.Is(err, database.ErrIngredientNotFound) {
			return Error(c, fiber.StatusNotFound, "ingredient not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete ingredient")
	}

	return Success(c, fiber.Map{"deleted": true})
}

// BatchDeleteIngredients removes multiple pantry entries at once
func (h *Handler) BatchDeleteIngredients(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.BatchDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.IDs) == 0 {
		return Error(c, fiber.StatusBadRequest, "ids array is required")
	}

	deleted, err := h.db.BatchDeleteIngredients(c.Context(), userID, req.IDs)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to delete ingredients")
	}

	return Success(c, fiber.Map{"deleted": deleted})
}
