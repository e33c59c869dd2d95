package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/snapkitchen/pantry-api/internal/models"
)

const kitchenPrompt = `Analyze this photo of a kitchen, fridge, or pantry.
Identify every food ingredient you can see and estimate its quantity.
Respond with ONLY a JSON array, no markdown, no commentary. Each element:
{"name": "ingredient name", "quantity": "1", "unit": "pieces", "category": "other", "emoji": "🥦"}
Valid units: grams, kg, ml, liters, pieces, cups, tbsp, tsp, oz, lbs.
Valid categories: protein, carbs, vegetables, fruits, dairy, spices, oils, sweets, other.
If you see no food, respond with [].`

const receiptPrompt = `This is a photo of a grocery store receipt.
Extract every food item with its quantity. Ignore totals, subtotals, tax,
payment lines, store headers, and non-food items.
Respond with ONLY a JSON array, no markdown, no commentary. Each element:
{"name": "item name", "quantity": "1", "unit": "pieces", "category": "other"}
Valid units: grams, kg, ml, liters, pieces, cups, tbsp, tsp, oz, lbs.
Valid categories: protein, carbs, vegetables, fruits, dairy, spices, oils, sweets, other.
If nothing can be extracted, respond with [].`

// VisionService extracts ingredient candidates from kitchen photos and
// receipt images via the vision model.
type VisionService struct {
	ai *AIClient
}

func NewVisionService(ai *AIClient) *VisionService {
	return &VisionService{ai: ai}
}

// Enabled reports whether the vision path is available
func (v *VisionService) Enabled() bool {
	return v.ai.Enabled()
}

// AnalyzeKitchenImage identifies ingredients visible in a kitchen or
// fridge photo. A photo with no recognizable food yields an empty slice,
// not an error.
func (v *VisionService) AnalyzeKitchenImage(ctx context.Context, imageBase64 string) ([]models.IngredientCandidate, error) {
	return v.analyze(ctx, imageBase64, kitchenPrompt)
}

// AnalyzeReceiptImage extracts purchased food items from a receipt photo.
func (v *VisionService) AnalyzeReceiptImage(ctx context.Context, imageBase64 string) ([]models.IngredientCandidate, error) {
	return v.analyze(ctx, imageBase64, receiptPrompt)
}

func (v *VisionService) analyze(ctx context.Context, imageBase64, prompt string) ([]models.IngredientCandidate, error) {
	content, err := v.ai.complete(ctx, []chatMessage{
		{Role: "user", Content: imageContent(imageBase64, prompt)},
	}, v.ai.cfg.AIMaxTokens, 0.2)
	if err != nil {
		return nil, err
	}

	return parseCandidateList(content)
}

// parseCandidateList turns model output into validated candidates. Output
// that is not JSON at all is treated as "nothing found" rather than an
// error, since models answer in prose when a photo has no food in it.
func parseCandidateList(content string) ([]models.IngredientCandidate, error) {
	content = stripModelFences(content)
	if !looksLikeJSON(content) {
		return []models.IngredientCandidate{}, nil
	}

	var raw []models.IngredientCandidate
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}

	candidates := make([]models.IngredientCandidate, 0, len(raw))
	for _, c := range raw {
		if c.Name == "" {
			continue
		}
		if c.Quantity == "" {
			c.Quantity = "1"
		}
		c.Unit = models.CoerceUnit(c.Unit)
		if !models.ValidCategory(c.Category) {
			c.Category = models.CategoryOther
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}
