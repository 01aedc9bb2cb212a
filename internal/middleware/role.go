package middleware

import (
	"net/http"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group on the role claim set by OAuth2Auth.
// Tag, catalog and client management routes use it with "admin".
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("userID"); !exists {
			c.JSON(http.StatusUnauthorized,
				models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
			c.Abort()
			return
		}

		role, ok := c.Get("userRole")
		userRole, isString := role.(string)
		if !ok || !isString {
			c.JSON(http.StatusForbidden,
				models.NewAPIError(models.ErrForbidden, "User role missing from token"))
			c.Abort()
			return
		}

		if userRole != requiredRole {
			c.JSON(http.StatusForbidden, models.NewAPIError(
				models.ErrForbidden,
				"Insufficient permissions",
				map[string]interface{}{"required_role": requiredRole},
			))
			c.Abort()
			return
		}

		c.Next()
	}
}
