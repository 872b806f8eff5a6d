package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkspot-backend/internal/auth"
	"parkspot-backend/internal/user"
)

// RequireAdmin ensures the authenticated user holds the admin flag.
// It MUST be used after auth.AuthRequired middleware. The flag is re-read
// from the store so a demoted admin loses access without waiting for their
// token to expire.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		if !u.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}
