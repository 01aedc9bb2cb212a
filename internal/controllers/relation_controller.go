package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/franciscosanchezn/gin-recipes-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RelationController exposes the favorite, shopping cart and subscription
// toggles plus the consolidated shopping list export.
type RelationController interface {
	Favorite(ctx *gin.Context)
	Unfavorite(ctx *gin.Context)
	AddToCart(ctx *gin.Context)
	RemoveFromCart(ctx *gin.Context)
	Subscribe(ctx *gin.Context)
	Unsubscribe(ctx *gin.Context)
	ListSubscriptions(ctx *gin.Context)
	DownloadShoppingList(ctx *gin.Context)
}

type relationController struct {
	relations     services.RelationService
	subscriptions services.SubscriptionService
	shoppingList  services.ShoppingListService
}

// NewRelationController creates a new instance of RelationController
func NewRelationController(
	relations services.RelationService,
	subscriptions services.SubscriptionService,
	shoppingList services.ShoppingListService,
) RelationController {
	return &relationController{
		relations:     relations,
		subscriptions: subscriptions,
		shoppingList:  shoppingList,
	}
}

// Favorite godoc
// @Summary Favorite a recipe
// @Tags relations
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} map[string]string
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id}/favorite [post]
func (c *relationController) Favorite(ctx *gin.Context) {
	c.attach(ctx, models.RelationFavorite)
}

// Unfavorite godoc
// @Summary Remove a recipe from favorites
// @Tags relations
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id}/favorite [delete]
func (c *relationController) Unfavorite(ctx *gin.Context) {
	c.detach(ctx, models.RelationFavorite)
}

// AddToCart godoc
// @Summary Add a recipe to the shopping cart
// @Tags relations
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} map[string]string
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id}/shopping_cart [post]
func (c *relationController) AddToCart(ctx *gin.Context) {
	c.attach(ctx, models.RelationShoppingCart)
}

// RemoveFromCart godoc
// @Summary Remove a recipe from the shopping cart
// @Tags relations
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id}/shopping_cart [delete]
func (c *relationController) RemoveFromCart(ctx *gin.Context) {
	c.detach(ctx, models.RelationShoppingCart)
}

// Subscribe godoc
// @Summary Subscribe to an author
// @Tags relations
// @Produce json
// @Param id path int true "Author user ID"
// @Success 201 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/{id}/subscribe [post]
func (c *relationController) Subscribe(ctx *gin.Context) {
	c.attach(ctx, models.RelationSubscription)
}

// Unsubscribe godoc
// @Summary Unsubscribe from an author
// @Tags relations
// @Produce json
// @Param id path int true "Author user ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/{id}/subscribe [delete]
func (c *relationController) Unsubscribe(ctx *gin.Context) {
	c.detach(ctx, models.RelationSubscription)
}

// ListSubscriptions godoc
// @Summary List followed authors
// @Description Followed authors with their recipes and recipe counts
// @Tags relations
// @Produce json
// @Param recipes_limit query int false "Max recipes embedded per author"
// @Success 200 {array} models.SubscriptionView
// @Security BearerAuth
// @Router /api/v1/users/subscriptions [get]
func (c *relationController) ListSubscriptions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	limit := 0
	if raw := ctx.Query("recipes_limit"); raw != "" {
		parsed, err := parsePositiveInt(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid recipes_limit"))
			return
		}
		limit = parsed
	}

	subscriptions, err := c.subscriptions.ListSubscriptions(userID, limit)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subscriptions)
}

// DownloadShoppingList godoc
// @Summary Download the consolidated shopping list
// @Description Every cart recipe folded into one deduplicated ingredient list
// @Tags relations
// @Produce plain
// @Success 200 {string} string
// @Security BearerAuth
// @Router /api/v1/recipes/download_shopping_cart [get]
func (c *relationController) DownloadShoppingList(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	report, err := c.shoppingList.Build(userID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

func (c *relationController) attach(ctx *gin.Context, kind models.RelationKind) {
	objectID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.relations.Attach(userID, objectID, kind); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"status": "created"})
}

func (c *relationController) detach(ctx *gin.Context, kind models.RelationKind) {
	objectID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.relations.Detach(userID, objectID, kind); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
