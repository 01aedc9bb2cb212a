package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/franciscosanchezn/gin-recipes-api/internal/middleware"
	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/franciscosanchezn/gin-recipes-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RecipeController handles HTTP requests related to recipes
type RecipeController interface {
	// ListRecipes retrieves recipes with optional author/tag filters
	ListRecipes(ctx *gin.Context)
	// GetRecipe retrieves a recipe by its ID
	GetRecipe(ctx *gin.Context)
	// CreateRecipe creates a new recipe for the authenticated user
	CreateRecipe(ctx *gin.Context)
	// UpdateRecipe replaces a recipe's fields, tags and ingredients
	UpdateRecipe(ctx *gin.Context)
	// DeleteRecipe deletes a recipe by its ID
	DeleteRecipe(ctx *gin.Context)
}

type recipeController struct {
	service services.RecipeService
}

// NewRecipeController creates a new instance of RecipeController
func NewRecipeController(service services.RecipeService) RecipeController {
	return &recipeController{service: service}
}

// ListRecipes godoc
// @Summary List recipes
// @Description Get all recipes with optional filtering by author and tag slugs
// @Tags recipes
// @Accept json
// @Produce json
// @Param author query int false "Filter by author user ID"
// @Param tags query string false "Comma-separated tag slugs"
// @Success 200 {array} models.RecipeView
// @Failure 500 {object} models.APIError
// @Router /api/v1/recipes [get]
func (c *recipeController) ListRecipes(ctx *gin.Context) {
	var filter services.RecipeFilter
	if author := ctx.Query("author"); author != "" {
		authorID, err := strconv.ParseUint(author, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid author ID"))
			return
		}
		filter.AuthorID = uint(authorID)
	}
	if tags := ctx.Query("tags"); tags != "" {
		filter.TagSlugs = strings.Split(tags, ",")
	}

	recipes, err := c.service.ListRecipes(filter, middleware.ViewerID(ctx))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipes)
}

// GetRecipe godoc
// @Summary Get recipe by ID
// @Description Get a single recipe with tags, ingredients and viewer-relative flags
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.RecipeView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/recipes/{id} [get]
func (c *recipeController) GetRecipe(ctx *gin.Context) {
	recipeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	recipe, err := c.service.GetRecipe(recipeID, middleware.ViewerID(ctx))
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe)
}

// CreateRecipe godoc
// @Summary Create a new recipe
// @Description Create a recipe authored by the authenticated user
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe body models.RecipePayload true "Recipe payload"
// @Success 201 {object} models.RecipeView
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes [post]
func (c *recipeController) CreateRecipe(ctx *gin.Context) {
	var payload models.RecipePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	recipe, err := c.service.CreateRecipe(userID, &payload)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe godoc
// @Summary Update a recipe
// @Description Replace a recipe's fields, tag set and ingredient set. Author only.
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body models.RecipePayload true "Recipe payload"
// @Success 200 {object} models.RecipeView
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [put]
func (c *recipeController) UpdateRecipe(ctx *gin.Context) {
	recipeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	// Author-or-read-only gate: mutation is for the author alone
	isAuthor, err := c.service.IsAuthor(recipeID, userID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	if !isAuthor {
		respondWithError(ctx, &models.AuthorizationError{Message: "you can only update your own recipes"})
		return
	}

	var payload models.RecipePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	recipe, err := c.service.UpdateRecipe(recipeID, userID, &payload)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe)
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Description Delete a recipe and all dependent relation records. Author only.
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [delete]
func (c *recipeController) DeleteRecipe(ctx *gin.Context) {
	recipeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	isAuthor, err := c.service.IsAuthor(recipeID, userID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	if !isAuthor {
		respondWithError(ctx, &models.AuthorizationError{Message: "you can only delete your own recipes"})
		return
	}

	if err := c.service.DeleteRecipe(recipeID, userID); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// pathID parses a numeric path parameter, writing the response when invalid
func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw, exists := ctx.Params.Get(name)
	if !exists {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Missing "+name+" parameter"))
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid "+name+" format"))
		return 0, false
	}
	return uint(id), true
}
