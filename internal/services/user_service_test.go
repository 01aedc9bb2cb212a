package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndCheckPassword(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	user, err := service.Register(&models.RegisterRequest{
		Email:     "alice@example.com",
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Smith",
		Password:  "s3cretpass",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cretpass", user.Password, "password must be stored hashed")

	authenticated, err := service.CheckPassword("alice@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authenticated.ID)

	_, err = service.CheckPassword("alice@example.com", "wrongpass")
	assert.Error(t, err)
}

func TestRegisterUsernameCharset(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	for _, username := range []string{"has space", "semi;colon", "bang!"} {
		_, err := service.Register(&models.RegisterRequest{
			Email:    "user@example.com",
			Username: username,
			Password: "s3cretpass",
		})
		var validation *models.ValidationError
		require.ErrorAs(t, err, &validation, "username %q should be rejected", username)
		assert.Equal(t, "username", validation.Field)
	}

	// The Django-style charset: word characters plus @ . + -
	_, err := service.Register(&models.RegisterRequest{
		Email:    "user@example.com",
		Username: "user.name+tag@host-1",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	_, err := service.Register(&models.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	_, err = service.Register(&models.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice2",
		Password: "s3cretpass",
	})
	var exists *models.AlreadyExistsError
	require.ErrorAs(t, err, &exists)

	_, err = service.Register(&models.RegisterRequest{
		Email:    "alice2@example.com",
		Username: "alice",
		Password: "s3cretpass",
	})
	exists = nil
	require.ErrorAs(t, err, &exists)
}

func TestGetUserByID(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)
	created := createTestUser(t, db, "alice")

	user, err := service.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = service.GetUserByID(9999)
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
