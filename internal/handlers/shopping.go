package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/snapkitchen/pantry-api/internal/database"
	"github.com/snapkitchen/pantry-api/internal/middleware"
	"github.com/snapkitchen/pantry-api/internal/models"
)

// ListShoppingItems returns the shopping list, unpurchased items first
func (h *Handler) ListShoppingItems(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	items, err := h.db.ListShoppingItems(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list shopping items")
	}

	return SuccessWithMeta(c, items, len(items))
}

// CreateShoppingItem adds an item to the shopping list. At most one
// unpurchased item may exist per name; adding a duplicate is rejected.
func (h *Handler) CreateShoppingItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateShoppingItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}
	if req.Category == "" || !models.ValidCategory(req.Category) {
		req.Category = models.CategoryOther
	}

	item, err := h.db.CreateShoppingItem(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, database.ErrShoppingItemExists) {
			return Error(c, fiber.StatusConflict, "item is already on the shopping list")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to create shopping item")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    item,
	})
}

// UpdateShoppingItem edits a shopping-list item, including marking it
// purchased
func (h *Handler) UpdateShoppingItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	var req models.UpdateShoppingItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return Error(c, fiber.StatusBadRequest, "name cannot be empty")
		}
		req.Name = &trimmed
	}
	if req.Category != nil && !models.ValidCategory(*req.Category) {
		return Error(c, fiber.StatusBadRequest, "invalid category")
	}

	item, err := h.db.UpdateShoppingItem(c.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, database.ErrShoppingItemNotFound) {
			return Error(c, fiber.StatusNotFound, "shopping item not found")
		}
		if errors.Is(err, database.ErrShoppingItemExists) {
			return Error(c, fiber.StatusConflict, "item is already on the shopping list")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update shopping item")
	}

	return Success(c, item)
}

// DeleteShoppingItem removes a shopping-list item
func (h *Handler) DeleteShoppingItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.db.DeleteShoppingItem(c.Context(), id, userID); err != nil {
		if errors.Is(err, database.ErrShoppingItemNotFound) {
			return Error(c, fiber.StatusNotFound, "shopping item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete shopping item")
	}

	return Success(c, fiber.Map{"deleted": true})
}

// ClearPurchasedItems removes all purchased items from the list
func (h *Handler) ClearPurchasedItems(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	cleared, err := h.db.ClearPurchasedItems(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to clear purchased items")
	}

	return Success(c, fiber.Map{"cleared": cleared})
}
