package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/franciscosanchezn/gin-recipes-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ClientController handles HTTP requests for OAuth2 service clients
type ClientController interface {
	CreateClient(ctx *gin.Context)
	ListClients(ctx *gin.Context)
	DeleteClient(ctx *gin.Context)
}

type clientController struct {
	service services.ClientService
}

// NewClientController creates a new instance of ClientController
func NewClientController(service services.ClientService) ClientController {
	return &clientController{service: service}
}

// CreateClient godoc
// @Summary Create OAuth2 client
// @Description Registers a service client bound to the calling admin. The plain secret is returned only once.
// @Tags clients
// @Accept json
// @Produce json
// @Param client body object{name=string,domain=string,scopes=string,grant_types=string} true "Client details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/clients [post]
func (c *clientController) CreateClient(ctx *gin.Context) {
	var req struct {
		Name       string `json:"name" binding:"required"`
		Domain     string `json:"domain"`
		Scopes     string `json:"scopes"`
		GrantTypes string `json:"grant_types"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if req.Scopes == "" {
		req.Scopes = "read write"
	}
	if req.GrantTypes == "" {
		req.GrantTypes = "client_credentials"
	}

	// Mint credentials; only the bcrypt hash of the secret is stored
	secret := uuid.New().String()
	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	client := &models.OAuthClient{
		ID:         uuid.New().String(),
		Secret:     string(hashedSecret),
		Name:       req.Name,
		Domain:     req.Domain,
		Scopes:     req.Scopes,
		GrantTypes: req.GrantTypes,
		UserID:     userID,
	}
	if err := c.service.CreateClient(client); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"client_id":     client.ID,
		"client_secret": secret,
		"name":          client.Name,
		"scopes":        client.Scopes,
		"grant_types":   client.GrantTypes,
	})
}

// ListClients godoc
// @Summary List OAuth2 clients
// @Description Lists the service clients bound to the calling admin
// @Tags clients
// @Produce json
// @Success 200 {array} models.OAuthClient
// @Security BearerAuth
// @Router /api/v1/admin/clients [get]
func (c *clientController) ListClients(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	clients, err := c.service.GetClientsByUserID(userID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, clients)
}

// DeleteClient godoc
// @Summary Delete an OAuth2 client
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/clients/{id} [delete]
func (c *clientController) DeleteClient(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteClient(ctx.Param("id"), userID); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
