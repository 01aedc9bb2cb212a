package auth

import (
	"context"
	"testing"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection only, or each pooled connection gets its own memory DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.OAuthClient{}, &models.OAuthToken{})
	require.NoError(t, err)

	return db
}

func TestOAuthServerInitialization(t *testing.T) {
	db := setupTestDB(t)

	oauthService := NewOAuthService(db, "test-jwt-secret-key-32-characters")
	assert.NotNil(t, oauthService)
	assert.NotNil(t, oauthService.GetServer())
}

func TestJWTTokenGeneration(t *testing.T) {
	db := setupTestDB(t)

	oauthService := NewOAuthService(db, "test-jwt-secret-key-32-characters")
	require.NotNil(t, oauthService)

	// Service clients act as a bound user, so one must exist
	testUser := &models.User{
		Email:    "service@recipes.local",
		Username: "service",
		Password: "irrelevant-hash",
		Role:     "admin",
	}
	err := db.Create(testUser).Error
	require.NoError(t, err)

	plainSecret := "test_secret"
	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(plainSecret), bcrypt.DefaultCost)
	require.NoError(t, err)

	client := &models.OAuthClient{
		ID:         "test_client",
		Secret:     string(hashedSecret),
		Domain:     "http://localhost",
		Scopes:     "read write",
		UserID:     testUser.ID,
		GrantTypes: "client_credentials",
	}
	err = db.Create(client).Error
	require.NoError(t, err)

	ctx := context.Background()
	tokenRequest := &oauth2.TokenGenerateRequest{
		ClientID:     "test_client",
		ClientSecret: "test_secret",
		Scope:        "read write",
	}

	tokenInfo, err := oauthService.GetServer().Manager.GenerateAccessToken(ctx, oauth2.ClientCredentials, tokenRequest)
	assert.NoError(t, err)
	assert.NotNil(t, tokenInfo)
	assert.NotEmpty(t, tokenInfo.GetAccess())

	// Test that the token is a valid JWT
	accessToken := tokenInfo.GetAccess()
	assert.Contains(t, accessToken, ".")  // JWT has dots
	assert.True(t, len(accessToken) > 50) // JWT tokens are longer
}

func TestClientStoreIntegration(t *testing.T) {
	db := setupTestDB(t)

	client := &models.OAuthClient{
		ID:     "integration_test_client",
		Secret: "integration_test_secret",
		Domain: "http://localhost:8080",
		Scopes: "read write",
	}
	err := db.Create(client).Error
	require.NoError(t, err)

	clientStore := NewGormClientStore(db)
	ctx := context.Background()

	retrievedClient, err := clientStore.GetByID(ctx, "integration_test_client")
	assert.NoError(t, err)
	assert.NotNil(t, retrievedClient)
	assert.Equal(t, "integration_test_client", retrievedClient.GetID())
}
