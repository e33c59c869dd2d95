package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/snapkitchen/pantry-api/internal/middleware"
)

// GetUploadedImage returns a short-lived download URL for an archived
// kitchen or receipt photo.
func (h *Handler) GetUploadedImage(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if h.storage == nil {
		return Error(c, fiber.StatusServiceUnavailable, "image storage is not configured")
	}

	key := c.Params("*")
	if !ownsUploadKey(userID, key) {
		return Error(c, fiber.StatusForbidden, "access denied")
	}

	// Generate presigned URL (valid for 1 hour)
	url, err := h.storage.GetPresignedURL(c.Context(), key, 1*time.Hour)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate image URL")
	}

	return Success(c, fiber.Map{"url": url})
}

// DeleteUploadedImage removes an archived photo from storage.
func (h *Handler) DeleteUploadedImage(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if h.storage == nil {
		return Error(c, fiber.StatusServiceUnavailable, "image storage is not configured")
	}

	key := c.Params("*")
	if !ownsUploadKey(userID, key) {
		return Error(c, fiber.StatusForbidden, "access denied")
	}

	if err := h.storage.Delete(c.Context(), key); err != nil {
		log.Printf("Error deleting stored image %s for user %d: %v", key, userID, err)
		return Error(c, fiber.StatusInternalServerError, "failed to delete image")
	}

	return Success(c, fiber.Map{"deleted": true})
}

// ownsUploadKey checks that a storage key sits inside the caller's
// upload namespace (see storeImage for the key layout).
func ownsUploadKey(userID int, key string) bool {
	return key != "" && strings.HasPrefix(key, fmt.Sprintf("uploads/%d/", userID))
}
