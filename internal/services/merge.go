package services

import (
	"context"
	"fmt"

	"github.com/snapkitchen/pantry-api/internal/models"
)

// MergeResolver decides, for each incoming ingredient candidate, whether to
// create a new pantry entry or fold the quantity into an existing one.
// Identity is case-insensitive exact name match per owner.
type MergeResolver struct {
	pantry PantryStore
}

// NewMergeResolver creates a merge resolver backed by the given store
func NewMergeResolver(pantry PantryStore) *MergeResolver {
	return &MergeResolver{pantry: pantry}
}

// MergeOutcome describes what happened to one candidate.
type MergeOutcome struct {
	Ingredient *models.Ingredient `json:"ingredient"`
	Merged     bool               `json:"merged"`
}

// IngestCandidates resolves a batch of candidates sequentially. Each
// candidate sees the pantry as left by the candidates before it, so two
// same-name candidates in one batch accumulate into a single entry.
// Quantities add numerically; units are not converted at merge time (they
// are expected to already agree, or are accepted as-is).
func (r *MergeResolver) IngestCandidates(ctx context.Context, userID int, candidates []models.IngredientCandidate) ([]MergeOutcome, error) {
	outcomes := make([]MergeOutcome, 0, len(candidates))

	for i := range candidates {
		c := candidates[i]
		c.Unit = models.CoerceUnit(c.Unit)

		existing, err := r.pantry.FindIngredientByName(ctx, userID, c.Name)
		if err != nil {
			return outcomes, fmt.Errorf("pantry lookup for %q: %w", c.Name, err)
		}

		if existing == nil {
			created, err := r.pantry.CreateIngredient(ctx, userID, &c)
			if err != nil {
				return outcomes, fmt.Errorf("create pantry entry %q: %w", c.Name, err)
			}
			outcomes = append(outcomes, MergeOutcome{Ingredient: created})
			continue
		}

		newQuantity := ParseQuantity(existing.Quantity) + ParseQuantity(c.Quantity)
		existing.Quantity = FormatQuantity(newQuantity)
		if err := r.pantry.UpdateIngredientQuantity(ctx, existing.ID, userID, existing.Quantity); err != nil {
			return outcomes, fmt.Errorf("merge into pantry entry %q: %w", existing.Name, err)
		}
		outcomes = append(outcomes, MergeOutcome{Ingredient: existing, Merged: true})
	}

	return outcomes, nil
}
