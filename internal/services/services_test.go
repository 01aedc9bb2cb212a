package services

import (
	"fmt"
	"testing"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// One connection only, or each pooled connection gets its own memory DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.RecipeIngredient{},
		&models.Recipe{},
		&models.RecipeLineItem{},
		&models.Favorite{},
		&models.ShoppingCartItem{},
		&models.Subscription{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    fmt.Sprintf("%s@example.com", username),
		Username: username,
		Password: "irrelevant-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTag(t *testing.T, db *gorm.DB, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: slug, Color: "#49B64E", Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func createTestRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, items []models.LineItemInput) *models.RecipeView {
	t.Helper()
	tag := &models.Tag{}
	if err := db.First(tag).Error; err != nil {
		tag = createTestTag(t, db, "dinner")
	}

	recipeService := NewRecipeService(db, NewIngredientService(db))
	view, err := recipeService.CreateRecipe(author.ID, &models.RecipePayload{
		Name:        name,
		Text:        "test recipe",
		CookingTime: 30,
		Tags:        []uint{tag.ID},
		Ingredients: items,
	})
	require.NoError(t, err)
	return view
}
