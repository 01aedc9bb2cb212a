package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	breakfast := createTestTag(t, db, "breakfast")
	dinner := createTestTag(t, db, "dinner")
	flour := createTestIngredient(t, db, "flour", "g")
	egg := createTestIngredient(t, db, "egg", "pcs")

	service := NewRecipeService(db, NewIngredientService(db))
	created, err := service.CreateRecipe(author.ID, &models.RecipePayload{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 20,
		Tags:        []uint{dinner.ID, breakfast.ID},
		Ingredients: []models.LineItemInput{
			{ID: egg.ID, Amount: 2},
			{ID: flour.ID, Amount: 200},
		},
	})
	require.NoError(t, err)

	view, err := service.GetRecipe(created.ID, author.ID)
	require.NoError(t, err)

	// Tag set equality, order-insensitive
	require.Len(t, view.Tags, 2)
	tagIDs := []uint{view.Tags[0].ID, view.Tags[1].ID}
	assert.ElementsMatch(t, []uint{breakfast.ID, dinner.ID}, tagIDs)

	// Ingredient sequence preserves submission order
	require.Len(t, view.Ingredients, 2)
	assert.Equal(t, "egg", view.Ingredients[0].Name)
	assert.Equal(t, 2, view.Ingredients[0].Amount)
	assert.Equal(t, "flour", view.Ingredients[1].Name)
	assert.Equal(t, 200, view.Ingredients[1].Amount)

	assert.Equal(t, "Pancakes", view.Name)
	assert.Equal(t, 20, view.CookingTime)
	assert.Equal(t, author.ID, view.Author.ID)
}

func TestCreateRecipeCookingTimeBounds(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	tag := createTestTag(t, db, "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	service := NewRecipeService(db, NewIngredientService(db))
	for _, cookingTime := range []int{0, -5, 1000} {
		_, err := service.CreateRecipe(author.ID, &models.RecipePayload{
			Name:        "Bad timing",
			CookingTime: cookingTime,
			Tags:        []uint{tag.ID},
			Ingredients: []models.LineItemInput{{ID: flour.ID, Amount: 100}},
		})
		var validation *models.ValidationError
		require.ErrorAs(t, err, &validation, "cooking_time %d should be rejected", cookingTime)
		assert.Equal(t, "cooking_time", validation.Field)
	}

	// Boundary values are accepted
	for i, cookingTime := range []int{1, 999} {
		_, err := service.CreateRecipe(author.ID, &models.RecipePayload{
			Name:        []string{"Instant", "Slow roast"}[i],
			CookingTime: cookingTime,
			Tags:        []uint{tag.ID},
			Ingredients: []models.LineItemInput{{ID: flour.ID, Amount: 100}},
		})
		require.NoError(t, err)
	}
}

func TestCreateRecipeMissingRefsNoPartialPersistence(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	tag := createTestTag(t, db, "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	service := NewRecipeService(db, NewIngredientService(db))
	_, err := service.CreateRecipe(author.ID, &models.RecipePayload{
		Name:        "Mystery dish",
		CookingTime: 15,
		Tags:        []uint{tag.ID, 555},
		Ingredients: []models.LineItemInput{
			{ID: flour.ID, Amount: 100},
			{ID: 666, Amount: 1},
		},
	})

	// Missing tags and ingredients are reported together as one failure
	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Error(), "tag")
	assert.Contains(t, validation.Error(), "555")
	assert.Contains(t, validation.Error(), "ingredient")
	assert.Contains(t, validation.Error(), "666")

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count, "no recipe row may be persisted on a failed create")
}

func TestCreateRecipeDuplicateNameSameAuthor(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	other := createTestUser(t, db, "bob")
	tag := createTestTag(t, db, "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	payload := func(name string) *models.RecipePayload {
		return &models.RecipePayload{
			Name:        name,
			CookingTime: 10,
			Tags:        []uint{tag.ID},
			Ingredients: []models.LineItemInput{{ID: flour.ID, Amount: 100}},
		}
	}

	service := NewRecipeService(db, NewIngredientService(db))
	first, err := service.CreateRecipe(author.ID, payload("Bread"))
	require.NoError(t, err)

	_, err = service.CreateRecipe(author.ID, payload("Bread"))
	var exists *models.AlreadyExistsError
	require.ErrorAs(t, err, &exists)

	// The first recipe is untouched
	view, err := service.GetRecipe(first.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread", view.Name)

	// A different author may reuse the name
	_, err = service.CreateRecipe(other.ID, payload("Bread"))
	require.NoError(t, err)
}

func TestUpdateRecipeReplacesSets(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	breakfast := createTestTag(t, db, "breakfast")
	dinner := createTestTag(t, db, "dinner")
	flour := createTestIngredient(t, db, "flour", "g")
	sugar := createTestIngredient(t, db, "sugar", "g")
	egg := createTestIngredient(t, db, "egg", "pcs")

	service := NewRecipeService(db, NewIngredientService(db))
	created, err := service.CreateRecipe(author.ID, &models.RecipePayload{
		Name:        "Cake",
		CookingTime: 60,
		Tags:        []uint{breakfast.ID},
		Ingredients: []models.LineItemInput{
			{ID: flour.ID, Amount: 300},
			{ID: sugar.ID, Amount: 150},
		},
	})
	require.NoError(t, err)

	// Full replacement of both association sets
	updated, err := service.UpdateRecipe(created.ID, author.ID, &models.RecipePayload{
		Name:        "Sponge cake",
		CookingTime: 45,
		Tags:        []uint{dinner.ID},
		Ingredients: []models.LineItemInput{
			{ID: egg.ID, Amount: 4},
			{ID: flour.ID, Amount: 300},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Tags, 1)
	assert.Equal(t, dinner.ID, updated.Tags[0].ID)

	require.Len(t, updated.Ingredients, 2)
	assert.Equal(t, "egg", updated.Ingredients[0].Name)
	assert.Equal(t, "flour", updated.Ingredients[1].Name)

	assert.Equal(t, "Sponge cake", updated.Name)
	assert.Equal(t, 45, updated.CookingTime)

	// No stale join rows survive the replacement
	var joinCount int64
	require.NoError(t, db.Model(&models.RecipeLineItem{}).Where("recipe_id = ?", created.ID).Count(&joinCount).Error)
	assert.Equal(t, int64(2), joinCount)
}

func TestUpdateRecipeNonAuthorForbidden(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	intruder := createTestUser(t, db, "mallory")
	flour := createTestIngredient(t, db, "flour", "g")
	created := createTestRecipe(t, db, author, "Bread", []models.LineItemInput{{ID: flour.ID, Amount: 100}})

	service := NewRecipeService(db, NewIngredientService(db))
	_, err := service.UpdateRecipe(created.ID, intruder.ID, &models.RecipePayload{
		Name:        "Stolen bread",
		CookingTime: 10,
		Tags:        []uint{created.Tags[0].ID},
		Ingredients: []models.LineItemInput{{ID: flour.ID, Amount: 100}},
	})
	var authErr *models.AuthorizationError
	require.ErrorAs(t, err, &authErr)

	isAuthor, err := service.IsAuthor(created.ID, intruder.ID)
	require.NoError(t, err)
	assert.False(t, isAuthor)

	isAuthor, err = service.IsAuthor(created.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, isAuthor)
}

func TestDeleteRecipeCascadesRelationRecords(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	fan := createTestUser(t, db, "bob")
	flour := createTestIngredient(t, db, "flour", "g")
	created := createTestRecipe(t, db, author, "Bread", []models.LineItemInput{{ID: flour.ID, Amount: 100}})

	relations := NewRelationService(db)
	require.NoError(t, relations.Attach(fan.ID, created.ID, models.RelationFavorite))
	require.NoError(t, relations.Attach(fan.ID, created.ID, models.RelationShoppingCart))

	service := NewRecipeService(db, NewIngredientService(db))
	require.NoError(t, service.DeleteRecipe(created.ID, author.ID))

	var favorites, cartItems, lineItems int64
	require.NoError(t, db.Model(&models.Favorite{}).Where("recipe_id = ?", created.ID).Count(&favorites).Error)
	require.NoError(t, db.Model(&models.ShoppingCartItem{}).Where("recipe_id = ?", created.ID).Count(&cartItems).Error)
	require.NoError(t, db.Model(&models.RecipeLineItem{}).Where("recipe_id = ?", created.ID).Count(&lineItems).Error)
	assert.Zero(t, favorites)
	assert.Zero(t, cartItems)
	assert.Zero(t, lineItems)

	_, err := service.GetRecipe(created.ID, author.ID)
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDerivedFlagsAreViewerRelative(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	viewer := createTestUser(t, db, "bob")
	flour := createTestIngredient(t, db, "flour", "g")
	created := createTestRecipe(t, db, author, "Bread", []models.LineItemInput{{ID: flour.ID, Amount: 100}})

	relations := NewRelationService(db)
	require.NoError(t, relations.Attach(author.ID, created.ID, models.RelationFavorite))
	require.NoError(t, relations.Attach(viewer.ID, created.ID, models.RelationShoppingCart))
	require.NoError(t, relations.Attach(viewer.ID, author.ID, models.RelationSubscription))

	service := NewRecipeService(db, NewIngredientService(db))

	// The author favorited their own recipe
	authorView, err := service.GetRecipe(created.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, authorView.IsFavorited)
	assert.False(t, authorView.IsInShoppingCart)
	assert.False(t, authorView.Author.IsSubscribed)

	// An unrelated viewer sees their own edges, not the author's
	viewerView, err := service.GetRecipe(created.ID, viewer.ID)
	require.NoError(t, err)
	assert.False(t, viewerView.IsFavorited)
	assert.True(t, viewerView.IsInShoppingCart)
	assert.True(t, viewerView.Author.IsSubscribed)

	// Anonymous viewers see false everywhere
	anonymousView, err := service.GetRecipe(created.ID, 0)
	require.NoError(t, err)
	assert.False(t, anonymousView.IsFavorited)
	assert.False(t, anonymousView.IsInShoppingCart)
	assert.False(t, anonymousView.Author.IsSubscribed)
}

func TestSharedLineItemSurvivesOtherRecipeDeletion(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "alice")
	flour := createTestIngredient(t, db, "flour", "g")

	first := createTestRecipe(t, db, author, "Bread", []models.LineItemInput{{ID: flour.ID, Amount: 100}})
	second := createTestRecipe(t, db, author, "Buns", []models.LineItemInput{{ID: flour.ID, Amount: 100}})

	// Both recipes share the interned line item
	assert.Equal(t, first.Ingredients[0].ID, second.Ingredients[0].ID)

	service := NewRecipeService(db, NewIngredientService(db))
	require.NoError(t, service.DeleteRecipe(first.ID, author.ID))

	view, err := service.GetRecipe(second.ID, author.ID)
	require.NoError(t, err)
	require.Len(t, view.Ingredients, 1)
	assert.Equal(t, 100, view.Ingredients[0].Amount)
}
