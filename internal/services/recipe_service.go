package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	minCookingTime = 1
	maxCookingTime = 999
)

// RecipeFilter narrows recipe listings. Zero values mean "no filter".
type RecipeFilter struct {
	AuthorID uint
	TagSlugs []string
}

// RecipeService owns the recipe aggregate: base row, tag set and ordered
// ingredient line items. Create and update run as one transaction; a failure
// mid-sequence leaves prior state unchanged.
type RecipeService interface {
	// ListRecipes retrieves recipes matching the filter, resolved for viewerID
	ListRecipes(filter RecipeFilter, viewerID uint) ([]models.RecipeView, error)
	// GetRecipe retrieves one recipe resolved for viewerID
	GetRecipe(id, viewerID uint) (*models.RecipeView, error)
	// CreateRecipe validates and persists a new recipe for authorID
	CreateRecipe(authorID uint, payload *models.RecipePayload) (*models.RecipeView, error)
	// UpdateRecipe replaces the recipe's fields, tag set and ingredient set
	UpdateRecipe(recipeID, authorID uint, payload *models.RecipePayload) (*models.RecipeView, error)
	// DeleteRecipe removes the recipe and every dependent edge and join row
	DeleteRecipe(recipeID, authorID uint) error
	// IsAuthor reports whether userID authored the recipe
	IsAuthor(recipeID, userID uint) (bool, error)
}

type recipeService struct {
	db          *gorm.DB
	ingredients IngredientService
}

func NewRecipeService(db *gorm.DB, ingredients IngredientService) RecipeService {
	return &recipeService{db: db, ingredients: ingredients}
}

func (s *recipeService) CreateRecipe(authorID uint, payload *models.RecipePayload) (*models.RecipeView, error) {
	if err := s.validatePayload(payload); err != nil {
		return nil, err
	}
	if err := s.checkNameAvailable(authorID, payload.Name, 0); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        payload.Name,
		Image:       payload.Image,
		Text:        payload.Text,
		CookingTime: payload.CookingTime,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &models.AlreadyExistsError{
					Resource: "recipe",
					Detail:   fmt.Sprintf("you already have a recipe named %q", payload.Name),
				}
			}
			return err
		}
		if err := s.replaceTags(tx, &recipe, payload.Tags); err != nil {
			return err
		}
		return s.replaceLineItems(tx, recipe.ID, payload.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"recipe_id": recipe.ID,
		"author_id": authorID,
	}).Info("Recipe created")
	return s.GetRecipe(recipe.ID, authorID)
}

func (s *recipeService) UpdateRecipe(recipeID, authorID uint, payload *models.RecipePayload) (*models.RecipeView, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "recipe", IDs: []uint{recipeID}}
		}
		return nil, err
	}
	if recipe.AuthorID != authorID {
		return nil, &models.AuthorizationError{Message: "only the author can update a recipe"}
	}

	if err := s.validatePayload(payload); err != nil {
		return nil, err
	}
	if err := s.checkNameAvailable(authorID, payload.Name, recipeID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         payload.Name,
			"image":        payload.Image,
			"text":         payload.Text,
			"cooking_time": payload.CookingTime,
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}
		if err := s.replaceTags(tx, &recipe, payload.Tags); err != nil {
			return err
		}
		return s.replaceLineItems(tx, recipe.ID, payload.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	log.WithField("recipe_id", recipeID).Info("Recipe updated")
	return s.GetRecipe(recipeID, authorID)
}

func (s *recipeService) DeleteRecipe(recipeID, authorID uint) error {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Resource: "recipe", IDs: []uint{recipeID}}
		}
		return err
	}
	if recipe.AuthorID != authorID {
		return &models.AuthorizationError{Message: "only the author can delete a recipe"}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.ShoppingCartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeLineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

func (s *recipeService) IsAuthor(recipeID, userID uint) (bool, error) {
	var recipe models.Recipe
	if err := s.db.Select("author_id").First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, &models.NotFoundError{Resource: "recipe", IDs: []uint{recipeID}}
		}
		return false, err
	}
	return recipe.AuthorID == userID, nil
}

func (s *recipeService) GetRecipe(id, viewerID uint) (*models.RecipeView, error) {
	var recipe models.Recipe
	if err := s.db.Preload("Tags").Preload("Author").First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "recipe", IDs: []uint{id}}
		}
		return nil, err
	}
	return s.buildView(&recipe, viewerID)
}

func (s *recipeService) ListRecipes(filter RecipeFilter, viewerID uint) ([]models.RecipeView, error) {
	query := s.db.Preload("Tags").Preload("Author").Order("recipes.id")
	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	views := make([]models.RecipeView, 0, len(recipes))
	for i := range recipes {
		view, err := s.buildView(&recipes[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// validatePayload checks field bounds and runs the combined tag/ingredient
// existence check. Missing ids of both kinds are reported together in one
// error, not one at a time.
func (s *recipeService) validatePayload(payload *models.RecipePayload) error {
	if payload.CookingTime < minCookingTime || payload.CookingTime > maxCookingTime {
		return &models.ValidationError{
			Field:   "cooking_time",
			Message: fmt.Sprintf("must be between %d and %d", minCookingTime, maxCookingTime),
		}
	}
	if len(payload.Tags) == 0 {
		return &models.ValidationError{Field: "tags", Message: "at least one tag is required"}
	}
	if len(payload.Ingredients) == 0 {
		return &models.ValidationError{Field: "ingredients", Message: "at least one ingredient is required"}
	}
	for _, item := range payload.Ingredients {
		if item.Amount <= 0 {
			return &models.ValidationError{Field: "amount", Message: "must be a positive integer"}
		}
	}

	var foundTags []uint
	if err := s.db.Model(&models.Tag{}).Where("id IN ?", payload.Tags).Pluck("id", &foundTags).Error; err != nil {
		return err
	}
	missingTags := missingIDs(payload.Tags, foundTags)

	ingredientIDs := make([]uint, len(payload.Ingredients))
	for i, item := range payload.Ingredients {
		ingredientIDs[i] = item.ID
	}
	missingIngredients, err := MissingIngredientIDs(s.db, ingredientIDs)
	if err != nil {
		return err
	}

	if len(missingTags) > 0 || len(missingIngredients) > 0 {
		var parts []string
		if len(missingTags) > 0 {
			parts = append(parts, (&models.NotFoundError{Resource: "tag", IDs: missingTags}).Error())
		}
		if len(missingIngredients) > 0 {
			parts = append(parts, (&models.NotFoundError{Resource: "ingredient", IDs: missingIngredients}).Error())
		}
		return &models.ValidationError{Message: strings.Join(parts, "; ")}
	}
	return nil
}

// checkNameAvailable enforces the per-author name uniqueness invariant.
// excludeID skips the recipe being updated.
func (s *recipeService) checkNameAvailable(authorID uint, name string, excludeID uint) error {
	query := s.db.Model(&models.Recipe{}).Where("author_id = ? AND name = ?", authorID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &models.AlreadyExistsError{
			Resource: "recipe",
			Detail:   fmt.Sprintf("you already have a recipe named %q", name),
		}
	}
	return nil
}

func (s *recipeService) replaceTags(tx *gorm.DB, recipe *models.Recipe, tagIDs []uint) error {
	var tags []models.Tag
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return err
	}
	return tx.Model(recipe).Association("Tags").Replace(&tags)
}

// replaceLineItems resolves the submitted ingredient list and reconciles the
// join table as a set difference: rows not in the target are removed, new
// rows are added, positions are rewritten to the submission order.
func (s *recipeService) replaceLineItems(tx *gorm.DB, recipeID uint, items []models.LineItemInput) error {
	resolved, err := s.ingredients.ResolveLineItems(tx, items)
	if err != nil {
		return err
	}

	// First occurrence wins when the same pair is submitted twice.
	target := make(map[uint]int, len(resolved))
	for pos, lineItem := range resolved {
		if _, ok := target[lineItem.ID]; !ok {
			target[lineItem.ID] = pos
		}
	}

	var existing []models.RecipeLineItem
	if err := tx.Where("recipe_id = ?", recipeID).Find(&existing).Error; err != nil {
		return err
	}
	current := make(map[uint]int, len(existing))
	for _, row := range existing {
		current[row.RecipeIngredientID] = row.Position
	}

	var stale []uint
	for id := range current {
		if _, ok := target[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		if err := tx.Where("recipe_id = ? AND recipe_ingredient_id IN ?", recipeID, stale).
			Delete(&models.RecipeLineItem{}).Error; err != nil {
			return err
		}
	}

	for id, pos := range target {
		oldPos, ok := current[id]
		if !ok {
			row := models.RecipeLineItem{RecipeID: recipeID, RecipeIngredientID: id, Position: pos}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			continue
		}
		if oldPos != pos {
			if err := tx.Model(&models.RecipeLineItem{}).
				Where("recipe_id = ? AND recipe_ingredient_id = ?", recipeID, id).
				Update("position", pos).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// buildView resolves the read-side shape for a viewer. viewerID 0 is the
// anonymous viewer: every derived boolean is false.
func (s *recipeService) buildView(recipe *models.Recipe, viewerID uint) (*models.RecipeView, error) {
	lineItems, err := LoadLineItemViews(s.db, recipe.ID)
	if err != nil {
		return nil, err
	}

	view := &models.RecipeView{
		ID:          recipe.ID,
		Tags:        recipe.Tags,
		Ingredients: lineItems,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		Author: models.UserView{
			ID:        recipe.Author.ID,
			Email:     recipe.Author.Email,
			Username:  recipe.Author.Username,
			FirstName: recipe.Author.FirstName,
			LastName:  recipe.Author.LastName,
		},
	}
	if view.Tags == nil {
		view.Tags = []models.Tag{}
	}

	if viewerID == 0 {
		return view, nil
	}

	view.IsFavorited, err = edgeExists(s.db, &models.Favorite{}, "user_id = ? AND recipe_id = ?", viewerID, recipe.ID)
	if err != nil {
		return nil, err
	}
	view.IsInShoppingCart, err = edgeExists(s.db, &models.ShoppingCartItem{}, "user_id = ? AND recipe_id = ?", viewerID, recipe.ID)
	if err != nil {
		return nil, err
	}
	view.Author.IsSubscribed, err = edgeExists(s.db, &models.Subscription{}, "user_id = ? AND author_id = ?", viewerID, recipe.AuthorID)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// LoadLineItemViews returns a recipe's line items flattened with their
// catalog entries, in position order.
func LoadLineItemViews(db *gorm.DB, recipeID uint) ([]models.LineItemView, error) {
	var rows []models.RecipeLineItem
	if err := db.Where("recipe_id = ?", recipeID).Order("position").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []models.LineItemView{}, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.RecipeIngredientID
	}
	var lineItems []models.RecipeIngredient
	if err := db.Preload("Ingredient").Where("id IN ?", ids).Find(&lineItems).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.RecipeIngredient, len(lineItems))
	for _, lineItem := range lineItems {
		byID[lineItem.ID] = lineItem
	}

	views := make([]models.LineItemView, 0, len(rows))
	for _, row := range rows {
		lineItem, ok := byID[row.RecipeIngredientID]
		if !ok {
			continue
		}
		views = append(views, models.LineItemView{
			ID:              lineItem.ID,
			Name:            lineItem.Ingredient.Name,
			MeasurementUnit: lineItem.Ingredient.MeasurementUnit,
			Amount:          lineItem.Amount,
		})
	}
	return views, nil
}

func edgeExists(db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
