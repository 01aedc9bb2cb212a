package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConsolidatesAcrossRecipes(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	shopper := createTestUser(t, db, "bob")
	flour := createTestIngredient(t, db, "flour", "g")
	sugar := createTestIngredient(t, db, "sugar", "g")
	egg := createTestIngredient(t, db, "egg", "pcs")

	bread := createTestRecipe(t, db, author, "Bread", []models.LineItemInput{
		{ID: flour.ID, Amount: 200},
		{ID: sugar.ID, Amount: 50},
	})
	pancakes := createTestRecipe(t, db, author, "Pancakes", []models.LineItemInput{
		{ID: flour.ID, Amount: 100},
		{ID: egg.ID, Amount: 2},
	})

	relations := NewRelationService(db)
	require.NoError(t, relations.Attach(shopper.ID, bread.ID, models.RelationShoppingCart))
	require.NoError(t, relations.Attach(shopper.ID, pancakes.ID, models.RelationShoppingCart))

	report, err := NewShoppingListService(db).Build(shopper.ID)
	require.NoError(t, err)

	// Same ingredient across recipes is summed; lines keep first-appearance order
	assert.Equal(t, "flour (g): 300\nsugar (g): 50\negg (pcs): 2\n", report)
}

func TestBuildDistinguishesUnits(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	shopper := createTestUser(t, db, "bob")
	milkMl := createTestIngredient(t, db, "milk", "ml")
	milkTbsp := createTestIngredient(t, db, "milk", "tbsp")

	soup := createTestRecipe(t, db, author, "Soup", []models.LineItemInput{
		{ID: milkMl.ID, Amount: 500},
		{ID: milkTbsp.ID, Amount: 3},
	})

	relations := NewRelationService(db)
	require.NoError(t, relations.Attach(shopper.ID, soup.ID, models.RelationShoppingCart))

	report, err := NewShoppingListService(db).Build(shopper.ID)
	require.NoError(t, err)

	// No conversion between units of the same ingredient name
	assert.Equal(t, "milk (ml): 500\nmilk (tbsp): 3\n", report)
}

func TestBuildEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	shopper := createTestUser(t, db, "alice")

	report, err := NewShoppingListService(db).Build(shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestBuildIsViewerScoped(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	shopper := createTestUser(t, db, "bob")
	bystander := createTestUser(t, db, "carol")
	flour := createTestIngredient(t, db, "flour", "g")

	bread := createTestRecipe(t, db, author, "Bread", []models.LineItemInput{{ID: flour.ID, Amount: 100}})

	relations := NewRelationService(db)
	require.NoError(t, relations.Attach(shopper.ID, bread.ID, models.RelationShoppingCart))

	service := NewShoppingListService(db)

	report, err := service.Build(shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, "flour (g): 100\n", report)

	report, err = service.Build(bystander.ID)
	require.NoError(t, err)
	assert.Empty(t, report)
}
