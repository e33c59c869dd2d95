package models

import (
	"time"
)

// RecipeIngredient is one line of a recipe. The fromKitchen flag is set by
// the generator and means the ingredient is assumed to come from the user's
// pantry; it triggers consumption on cook and is re-validated against live
// pantry state for match-percentage display.
type RecipeIngredient struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	FromKitchen bool   `json:"fromKitchen"`
}

// Recipe is a persisted recipe snapshot: either a cooked-history record
// (CookedAt set) or a saved favorite.
type Recipe struct {
	ID           int                `json:"id"`
	UserID       int                `json:"user_id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	PrepTime     string             `json:"prep_time"`
	CookTime     string             `json:"cook_time"`
	Servings     int                `json:"servings"`
	Calories     int                `json:"calories"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Tags         []string           `json:"tags"`
	IsFavorite   bool               `json:"is_favorite"`
	CookedAt     *time.Time         `json:"cooked_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// RecipePayload is a recipe as produced by the generator, before it is
// persisted. It is also the shape the cook endpoint accepts.
type RecipePayload struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	PrepTime     string             `json:"prepTime"`
	CookTime     string             `json:"cookTime"`
	Servings     int                `json:"servings"`
	Calories     int                `json:"calories"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Tags         []string           `json:"tags"`
}

// GeneratedRecipe is a recipe suggestion returned to the client, annotated
// with the live pantry match percentage.
type GeneratedRecipe struct {
	RecipePayload
	MatchPercentage int `json:"match_percentage"`
}

// RecipeFilters narrow recipe generation.
type RecipeFilters struct {
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	MaxCalories         int      `json:"max_calories,omitempty"`
	Cuisine             string   `json:"cuisine,omitempty"`
	CookingTime         int      `json:"cooking_time,omitempty"`
	Servings            int      `json:"servings,omitempty"`
	MealType            string   `json:"meal_type,omitempty"`
}

// GenerateRecipesRequest is the request body for recipe generation.
type GenerateRecipesRequest struct {
	Filters *RecipeFilters `json:"filters,omitempty"`
}

// CookRecipeRequest is the request body for cooking a recipe.
type CookRecipeRequest struct {
	Recipe RecipePayload `json:"recipe"`
}

// SaveRecipeRequest is the request body for saving a favorite.
type SaveRecipeRequest struct {
	RecipePayload
}
