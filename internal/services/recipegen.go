package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/snapkitchen/pantry-api/internal/models"
)

// RecipeGenerator produces recipe suggestions from the user's current
// pantry contents via the chat model.
type RecipeGenerator struct {
	ai *AIClient
}

func NewRecipeGenerator(ai *AIClient) *RecipeGenerator {
	return &RecipeGenerator{ai: ai}
}

// Enabled reports whether recipe generation is available
func (g *RecipeGenerator) Enabled() bool {
	return g.ai.Enabled()
}

// Generate asks the model for 3-5 recipes built around the given pantry
// ingredients, honoring any filters. Each returned recipe carries a match
// percentage against the live pantry.
func (g *RecipeGenerator) Generate(ctx context.Context, pantry []*models.Ingredient, filters models.RecipeFilters) ([]models.GeneratedRecipe, error) {
	prompt := buildRecipePrompt(pantry, filters)

	content, err := g.ai.complete(ctx, []chatMessage{
		{Role: "system", Content: "You are a helpful cooking assistant. Always respond with valid JSON only."},
		{Role: "user", Content: prompt},
	}, g.ai.cfg.AIMaxTokens, 0.7)
	if err != nil {
		return nil, err
	}

	payloads, err := parseRecipeList(content)
	if err != nil {
		return nil, err
	}

	available := make(map[string]bool, len(pantry))
	for _, ing := range pantry {
		available[strings.ToLower(ing.Name)] = true
	}

	recipes := make([]models.GeneratedRecipe, 0, len(payloads))
	for _, p := range payloads {
		// The model's fromKitchen flags are unreliable, re-derive them
		// from actual pantry membership before scoring.
		for i := range p.Ingredients {
			p.Ingredients[i].FromKitchen = available[strings.ToLower(p.Ingredients[i].Name)]
		}
		recipes = append(recipes, models.GeneratedRecipe{
			RecipePayload:   p,
			MatchPercentage: MatchPercentage(p.Ingredients, pantry),
		})
	}
	return recipes, nil
}

func buildRecipePrompt(pantry []*models.Ingredient, filters models.RecipeFilters) string {
	var sb strings.Builder

	sb.WriteString("I have these ingredients in my kitchen:\n")
	for _, ing := range pantry {
		fmt.Fprintf(&sb, "- %s (%s %s)\n", ing.Name, ing.Quantity, ing.Unit)
	}

	sb.WriteString("\nSuggest 3 to 5 recipes I can cook, preferring my ingredients but allowing a few extras.\n")

	if filters.Cuisine != "" {
		fmt.Fprintf(&sb, "Cuisine: %s.\n", filters.Cuisine)
	}
	if filters.MealType != "" {
		fmt.Fprintf(&sb, "Meal type: %s.\n", filters.MealType)
	}
	if filters.CookingTime > 0 {
		fmt.Fprintf(&sb, "Total time at most: %d minutes.\n", filters.CookingTime)
	}
	if filters.MaxCalories > 0 {
		fmt.Fprintf(&sb, "At most %d calories per serving.\n", filters.MaxCalories)
	}
	if filters.Servings > 0 {
		fmt.Fprintf(&sb, "Servings: %d.\n", filters.Servings)
	}
	if len(filters.DietaryRestrictions) > 0 {
		fmt.Fprintf(&sb, "Dietary restrictions: %s.\n", strings.Join(filters.DietaryRestrictions, ", "))
	}

	sb.WriteString(`
Respond with ONLY a JSON array, no markdown. Each element:
{
  "name": "Recipe Name",
  "description": "One sentence description",
  "prepTime": "10 min",
  "cookTime": "20 min",
  "servings": 2,
  "calories": 450,
  "ingredients": [{"name": "chicken breast", "amount": "500g", "fromKitchen": true}],
  "instructions": ["Step one", "Step two"],
  "tags": ["dinner"]
}
Mark fromKitchen true only for ingredients from my list above.`)

	return sb.String()
}

func parseRecipeList(content string) ([]models.RecipePayload, error) {
	content = stripModelFences(content)
	if !looksLikeJSON(content) {
		return nil, fmt.Errorf("model did not return JSON")
	}

	var payloads []models.RecipePayload
	if err := json.Unmarshal([]byte(content), &payloads); err != nil {
		return nil, fmt.Errorf("failed to parse recipes: %w", err)
	}

	valid := make([]models.RecipePayload, 0, len(payloads))
	for _, p := range payloads {
		if p.Name == "" || len(p.Ingredients) == 0 {
			continue
		}
		valid = append(valid, p)
	}
	return valid, nil
}
