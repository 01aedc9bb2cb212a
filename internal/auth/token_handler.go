package auth

import (
	"fmt"
	"net/http"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-oauth2/oauth2/v4"
	"golang.org/x/crypto/bcrypt"
)

// HandleToken handles the token endpoint for the password and client credentials grants
// @Summary Token Endpoint
// @Description Obtain an access token using the password or client credentials grant
// @Tags OAuth2
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "Grant type: password or client_credentials"
// @Param client_id formData string true "Client ID"
// @Param client_secret formData string true "Client Secret"
// @Param username formData string false "User email (password grant)"
// @Param password formData string false "User password (password grant)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /oauth/token [post]
func (o *OAuthService) HandleToken(c *gin.Context) {
	grantType := c.PostForm("grant_type")

	switch grantType {
	case "password":
		o.handlePassword(c)
	case "client_credentials":
		o.handleClientCredentials(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnsupportedGrantType})
	}
}

func (o *OAuthService) handlePassword(c *gin.Context) {
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")
	username := c.PostForm("username")
	password := c.PostForm("password")

	client, ok := o.validateClient(c, clientID, clientSecret)
	if !ok {
		return
	}

	// Verify user credentials
	var user models.User
	if err := o.db.Where("email = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidGrant})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidGrant})
		return
	}

	ti, err := o.server.Manager.GenerateAccessToken(c, oauth2.PasswordCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		UserID:       fmt.Sprint(user.ID),
		Scope:        client.Scopes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	respondWithToken(c, ti)
}

func (o *OAuthService) handleClientCredentials(c *gin.Context) {
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")

	client, ok := o.validateClient(c, clientID, clientSecret)
	if !ok {
		return
	}

	// Generate token using OAuth2 server
	ti, err := o.server.Manager.GenerateAccessToken(c, oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scope:        client.Scopes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	respondWithToken(c, ti)
}

// validateClient fetches the client row and verifies its bcrypt-hashed secret
func (o *OAuthService) validateClient(c *gin.Context, clientID, clientSecret string) (*models.OAuthClient, bool) {
	var client models.OAuthClient
	if err := o.db.Where("id = ?", clientID).First(&client).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidClient})
		return nil, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.Secret), []byte(clientSecret)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidClient})
		return nil, false
	}
	return &client, true
}

func respondWithToken(c *gin.Context, ti oauth2.TokenInfo) {
	c.JSON(http.StatusOK, gin.H{
		"access_token": ti.GetAccess(),
		"token_type":   "Bearer",
		"expires_in":   int64(ti.GetAccessExpiresIn().Seconds()),
		"scope":        ti.GetScope(),
	})
}
