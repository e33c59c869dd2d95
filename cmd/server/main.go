package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/snapkitchen/pantry-api/internal/config"
	"github.com/snapkitchen/pantry-api/internal/database"
	"github.com/snapkitchen/pantry-api/internal/handlers"
	"github.com/snapkitchen/pantry-api/internal/middleware"
	"github.com/snapkitchen/pantry-api/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize OCR fallback for receipt scanning
	var ocrService *services.OCRService
	if cfg.OCREnabled {
		ocrService, err = services.NewOCRService()
		if err != nil {
			log.Printf("Warning: Failed to initialize OCR service: %v", err)
			ocrService = nil
		} else {
			defer ocrService.Close()
			log.Println("OCR service initialized")
		}
	}

	// Initialize S3/Garage storage for uploaded images
	var storageService *services.StorageService
	if cfg.S3Enabled {
		if cfg.S3Endpoint == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
			log.Println("S3 credentials not configured, image archiving disabled")
		} else {
			storageService, err = services.NewStorageService(
				cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey,
				cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
			)
			if err != nil {
				log.Printf("Warning: Failed to initialize storage service: %v", err)
				storageService = nil
			} else {
				if err := storageService.EnsureBucket(context.Background()); err != nil {
					log.Printf("Warning: Failed to ensure S3 bucket exists: %v", err)
				}
				log.Println("Image storage initialized")
			}
		}
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    12 * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(db, cfg, ocrService, storageService)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.AuthRequired(cfg), h.GetCurrentUser)

	// Ingredient routes (authenticated)
	ingredients := api.Group("/ingredients", middleware.AuthRequired(cfg))
	ingredients.Get("/", h.ListIngredients)
	ingredients.Post("/", h.CreateIngredients)
	ingredients.Put("/:id", h.UpdateIngredient)
	ingredients.Post("/batch-delete", h.BatchDeleteIngredients)
	ingredients.Delete("/:id", h.DeleteIngredient)

	// Image analysis routes (authenticated)
	analyze := api.Group("/analyze", middleware.AuthRequired(cfg))
	analyze.Post("/image", h.AnalyzeKitchen)
	analyze.Post("/receipt", h.AnalyzeReceipt)

	// Archived upload routes (authenticated)
	images := api.Group("/images", middleware.AuthRequired(cfg))
	images.Get("/*", h.GetUploadedImage)
	images.Delete("/*", h.DeleteUploadedImage)

	// Recipe routes (authenticated)
	recipes := api.Group("/recipes", middleware.AuthRequired(cfg))
	recipes.Post("/generate", h.GenerateRecipes)
	recipes.Post("/cook", h.CookRecipe)
	recipes.Get("/history", h.GetRecipeHistory)
	recipes.Post("/save", h.SaveRecipe)
	recipes.Get("/favorites", h.GetFavoriteRecipes)
	recipes.Put("/favorites/:id", h.SetRecipeFavorite)
	recipes.Delete("/favorites/:id", h.DeleteRecipe)

	// Shopping list routes (authenticated)
	shopping := api.Group("/shopping-list", middleware.AuthRequired(cfg))
	shopping.Get("/", h.ListShoppingItems)
	shopping.Post("/", h.CreateShoppingItem)
	shopping.Post("/clear-purchased", h.ClearPurchasedItems)
	shopping.Put("/:id", h.UpdateShoppingItem)
	shopping.Delete("/:id", h.DeleteShoppingItem)

	// Start server
	log.Printf("Starting server on port %s (env: %s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
