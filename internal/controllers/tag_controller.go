package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/franciscosanchezn/gin-recipes-api/internal/services"
	"github.com/gin-gonic/gin"
)

// TagController handles HTTP requests related to tags
type TagController interface {
	ListTags(ctx *gin.Context)
	GetTag(ctx *gin.Context)
	CreateTag(ctx *gin.Context)
}

type tagController struct {
	service services.TagService
}

// NewTagController creates a new instance of TagController
func NewTagController(service services.TagService) TagController {
	return &tagController{service: service}
}

// ListTags godoc
// @Summary List all tags
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /api/v1/tags [get]
func (c *tagController) ListTags(ctx *gin.Context) {
	tags, err := c.service.ListTags()
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tags)
}

// GetTag godoc
// @Summary Get tag by ID
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} models.APIError
// @Router /api/v1/tags/{id} [get]
func (c *tagController) GetTag(ctx *gin.Context) {
	tagID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	tag, err := c.service.GetTagByID(tagID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

// CreateTag godoc
// @Summary Create a tag
// @Description Tags are reference data and are created by admins only
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body models.Tag true "Tag object"
// @Success 201 {object} models.Tag
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/tags [post]
func (c *tagController) CreateTag(ctx *gin.Context) {
	var tag models.Tag
	if err := ctx.ShouldBindJSON(&tag); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	if err := c.service.CreateTag(&tag); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, tag)
}
