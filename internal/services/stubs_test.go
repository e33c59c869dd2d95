package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/snapkitchen/pantry-api/internal/models"
)

// stubPantry is an in-memory PantryStore. Lookups return copies so a test
// can tell a mutated return value apart from a persisted update.
type stubPantry struct {
	nextID    int
	items     map[int]*models.Ingredient
	updateErr error
	createErr error
}

func newStubPantry(items ...*models.Ingredient) *stubPantry {
	s := &stubPantry{items: map[int]*models.Ingredient{}}
	for _, ing := range items {
		s.nextID++
		ing.ID = s.nextID
		s.items[ing.ID] = ing
	}
	return s
}

func (s *stubPantry) FindIngredientByName(_ context.Context, userID int, name string) (*models.Ingredient, error) {
	for _, ing := range s.items {
		if ing.UserID == userID && strings.EqualFold(ing.Name, name) {
			cp := *ing
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubPantry) CreateIngredient(_ context.Context, userID int, c *models.IngredientCandidate) (*models.Ingredient, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	ing := &models.Ingredient{
		ID:          s.nextID,
		UserID:      userID,
		Name:        c.Name,
		Quantity:    c.Quantity,
		Unit:        c.Unit,
		Category:    c.Category,
		Emoji:       c.Emoji,
		AddedAt:     time.Now(),
		LastUpdated: time.Now(),
	}
	if c.IsEssential != nil {
		ing.IsEssential = *c.IsEssential
	}
	s.items[ing.ID] = ing
	cp := *ing
	return &cp, nil
}

func (s *stubPantry) UpdateIngredientQuantity(_ context.Context, id, userID int, quantity string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	ing, ok := s.items[id]
	if !ok || ing.UserID != userID {
		return errors.New("ingredient not found")
	}
	ing.Quantity = quantity
	ing.LastUpdated = time.Now()
	return nil
}

func (s *stubPantry) ListIngredients(_ context.Context, userID int) ([]*models.Ingredient, error) {
	var out []*models.Ingredient
	for _, ing := range s.items {
		if ing.UserID == userID {
			cp := *ing
			out = append(out, &cp)
		}
	}
	return out, nil
}

// quantityOf returns the persisted quantity for an ingredient name
func (s *stubPantry) quantityOf(name string) string {
	for _, ing := range s.items {
		if strings.EqualFold(ing.Name, name) {
			return ing.Quantity
		}
	}
	return ""
}

// stubShopping is an in-memory ShoppingStore
type stubShopping struct {
	nextID    int
	items     []*models.ShoppingListItem
	createErr error
	findErr   error
}

func (s *stubShopping) FindUnpurchasedItemByName(_ context.Context, userID int, name string) (*models.ShoppingListItem, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, item := range s.items {
		if item.UserID == userID && !item.IsPurchased && strings.EqualFold(item.Name, name) {
			return item, nil
		}
	}
	return nil, nil
}

func (s *stubShopping) CreateShoppingItem(_ context.Context, userID int, req *models.CreateShoppingItemRequest) (*models.ShoppingListItem, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	item := &models.ShoppingListItem{
		ID:       s.nextID,
		UserID:   userID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Category: req.Category,
		AddedAt:  time.Now(),
	}
	s.items = append(s.items, item)
	return item, nil
}

// stubRecipes is an in-memory RecipeStore
type stubRecipes struct {
	nextID    int
	recipes   []*models.Recipe
	createErr error
}

func (s *stubRecipes) CreateRecipe(_ context.Context, userID int, p *models.RecipePayload, isFavorite bool, cookedAt *time.Time) (*models.Recipe, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	recipe := &models.Recipe{
		ID:           s.nextID,
		UserID:       userID,
		Name:         p.Name,
		Description:  p.Description,
		PrepTime:     p.PrepTime,
		CookTime:     p.CookTime,
		Servings:     p.Servings,
		Calories:     p.Calories,
		Ingredients:  p.Ingredients,
		Instructions: p.Instructions,
		Tags:         p.Tags,
		IsFavorite:   isFavorite,
		CookedAt:     cookedAt,
		CreatedAt:    time.Now(),
	}
	s.recipes = append(s.recipes, recipe)
	return recipe, nil
}
