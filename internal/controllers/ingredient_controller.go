package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/franciscosanchezn/gin-recipes-api/internal/services"
	"github.com/gin-gonic/gin"
)

// IngredientController handles HTTP requests for the ingredient catalog
type IngredientController interface {
	ListIngredients(ctx *gin.Context)
	GetIngredient(ctx *gin.Context)
	CreateIngredient(ctx *gin.Context)
}

type ingredientController struct {
	service services.IngredientService
}

// NewIngredientController creates a new instance of IngredientController
func NewIngredientController(service services.IngredientService) IngredientController {
	return &ingredientController{service: service}
}

// ListIngredients godoc
// @Summary List catalog ingredients
// @Tags ingredients
// @Produce json
// @Success 200 {array} models.Ingredient
// @Router /api/v1/ingredients [get]
func (c *ingredientController) ListIngredients(ctx *gin.Context) {
	ingredients, err := c.service.ListIngredients()
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ingredients)
}

// GetIngredient godoc
// @Summary Get catalog ingredient by ID
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} models.APIError
// @Router /api/v1/ingredients/{id} [get]
func (c *ingredientController) GetIngredient(ctx *gin.Context) {
	ingredientID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	ingredient, err := c.service.GetIngredientByID(ingredientID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ingredient)
}

// CreateIngredient godoc
// @Summary Create a catalog ingredient
// @Description Catalog entries are reference data and are created by admins only
// @Tags ingredients
// @Accept json
// @Produce json
// @Param ingredient body models.Ingredient true "Ingredient object"
// @Success 201 {object} models.Ingredient
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/ingredients [post]
func (c *ingredientController) CreateIngredient(ctx *gin.Context) {
	var ingredient models.Ingredient
	if err := ctx.ShouldBindJSON(&ingredient); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	if err := c.service.CreateIngredient(&ingredient); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, ingredient)
}
