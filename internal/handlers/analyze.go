package handlers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/snapkitchen/pantry-api/internal/middleware"
	"github.com/snapkitchen/pantry-api/internal/models"
)

const maxImageSize = 10 * 1024 * 1024

// AnalyzeKitchen extracts ingredient candidates from an uploaded kitchen
// or fridge photo. Candidates are returned for client-side review; nothing
// is saved to the pantry until the client posts them back.
func (h *Handler) AnalyzeKitchen(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if !h.vision.Enabled() {
		return Error(c, fiber.StatusServiceUnavailable, "image analysis is not configured")
	}

	imageBytes, contentType, ferr := readImageUpload(c)
	if ferr != nil {
		return Error(c, ferr.Code, ferr.Message)
	}

	h.storeImage(c, userID, "kitchen", imageBytes, contentType)

	candidates, err := h.vision.AnalyzeKitchenImage(c.Context(), base64.StdEncoding.EncodeToString(imageBytes))
	if err != nil {
		log.Printf("Error analyzing kitchen image for user %d: %v", userID, err)
		return Error(c, fiber.StatusBadGateway, "image analysis failed")
	}

	return Success(c, fiber.Map{"ingredients": candidates})
}

// AnalyzeReceipt extracts purchased items from an uploaded receipt photo.
// The vision model is preferred; when it is disabled the OCR pipeline
// takes over.
func (h *Handler) AnalyzeReceipt(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	imageBytes, contentType, ferr := readImageUpload(c)
	if ferr != nil {
		return Error(c, ferr.Code, ferr.Message)
	}

	h.storeImage(c, userID, "receipt", imageBytes, contentType)

	var candidates []models.IngredientCandidate
	var err error

	switch {
	case h.vision.Enabled():
		candidates, err = h.vision.AnalyzeReceiptImage(c.Context(), base64.StdEncoding.EncodeToString(imageBytes))
		if err != nil {
			log.Printf("Error analyzing receipt image for user %d: %v", userID, err)
			return Error(c, fiber.StatusBadGateway, "receipt analysis failed")
		}
	case h.ocr != nil:
		ocrResult, err := h.ocr.ProcessImage(imageBytes)
		if err != nil {
			log.Printf("Error running OCR for user %d: %v", userID, err)
			return Error(c, fiber.StatusInternalServerError, "OCR processing failed")
		}
		candidates = h.receiptParser.Parse(ocrResult.Text)
	default:
		return Error(c, fiber.StatusServiceUnavailable, "receipt analysis is not configured")
	}

	return Success(c, fiber.Map{"ingredients": candidates})
}

// readImageUpload validates and reads the multipart image field
func readImageUpload(c *fiber.Ctx) ([]byte, string, *fiber.Error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}

	contentType := file.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "invalid image type. Supported: JPEG, PNG, WebP")
	}

	if file.Size > maxImageSize {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "file too large. Maximum size is 10MB")
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "failed to read file")
	}
	defer src.Close()

	imageBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "failed to read file")
	}

	return imageBytes, contentType, nil
}

// storeImage archives the uploaded photo when storage is configured.
// Failures are logged only, analysis proceeds regardless.
func (h *Handler) storeImage(c *fiber.Ctx, userID int, kind string, imageBytes []byte, contentType string) {
	if h.storage == nil {
		return
	}

	key := fmt.Sprintf("uploads/%d/%s/%s-%s", userID, kind, time.Now().Format("20060102"), uuid.New().String())
	if _, err := h.storage.Upload(c.Context(), key, bytes.NewReader(imageBytes), int64(len(imageBytes)), contentType); err != nil {
		log.Printf("Warning: failed to archive %s image for user %d: %v", kind, userID, err)
	}
}

func isValidImageType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	}
	return false
}
