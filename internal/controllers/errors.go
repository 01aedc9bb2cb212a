package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondWithError maps the domain error taxonomy onto HTTP responses.
// Domain errors are client-correctable and surface verbatim; anything else
// is treated as an internal storage failure.
func respondWithError(ctx *gin.Context, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var existsErr *models.AlreadyExistsError
	var selfRefErr *models.SelfReferenceError
	var authErr *models.AuthorizationError

	switch {
	case errors.As(err, &validationErr):
		apiErr := models.NewAPIError(models.ErrValidationFailed, validationErr.Message)
		if validationErr.Field != "" {
			apiErr.Details = map[string]interface{}{"field": validationErr.Field}
		}
		ctx.JSON(http.StatusBadRequest, apiErr)
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, notFoundErr.Error()))
	case errors.As(err, &existsErr):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, existsErr.Error()))
	case errors.As(err, &selfRefErr):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrSelfSubscription, selfRefErr.Error()))
	case errors.As(err, &authErr):
		ctx.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, authErr.Error()))
	default:
		log.WithError(err).Error("Unhandled error in request")
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Internal server error"))
	}
}

// currentUserID extracts the authenticated user ID from the request context.
// Returns false and writes the response when the request is unauthenticated.
func currentUserID(ctx *gin.Context) (uint, bool) {
	userID, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized,
			models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return 0, false
	}

	switch v := userID.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	default:
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Unexpected user ID type"))
		return 0, false
	}
}

func parsePositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("must be non-negative, got %d", value)
	}
	return value, nil
}
