package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/snapkitchen/pantry-api/internal/config"
	"github.com/snapkitchen/pantry-api/internal/database"
	"github.com/snapkitchen/pantry-api/internal/services"
)

// Handler holds all handler dependencies
type Handler struct {
	db            *database.DB
	cfg           *config.Config
	merge         *services.MergeResolver
	depletion     *services.DepletionTrigger
	reconciler    *services.Reconciler
	vision        *services.VisionService
	recipeGen     *services.RecipeGenerator
	receiptParser *services.ReceiptParser

	// Optional, nil when disabled in config
	ocr     *services.OCRService
	storage *services.StorageService
}

// New creates a new Handler instance. ocr and storage may be nil when the
// corresponding features are disabled.
func New(db *database.DB, cfg *config.Config, ocr *services.OCRService, storage *services.StorageService) *Handler {
	ai := services.NewAIClient(cfg)
	depletion := services.NewDepletionTrigger(db)

	return &Handler{
		db:            db,
		cfg:           cfg,
		merge:         services.NewMergeResolver(db),
		depletion:     depletion,
		reconciler:    services.NewReconciler(db, db, depletion),
		vision:        services.NewVisionService(ai),
		recipeGen:     services.NewRecipeGenerator(ai),
		receiptParser: services.NewReceiptParser(),
		ocr:           ocr,
		storage:       storage,
	}
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// APIResponse is a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta contains list metadata
type Meta struct {
	Total int `json:"total"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMeta returns a successful response with list metadata
func SuccessWithMeta(c *fiber.Ctx, data interface{}, total int) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
		Meta:    &Meta{Total: total},
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}
