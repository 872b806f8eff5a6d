package auth

import "github.com/gin-gonic/gin"

// Identity is the resolved caller handed to every core operation.
type Identity struct {
	UserID  string
	IsAdmin bool
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetIdentity returns the caller's identity as stored by AuthRequired.
// The IsAdmin flag is the token hint only; see api.RequireAdmin for the
// authoritative check.
func GetIdentity(c *gin.Context) Identity {
	id := Identity{UserID: GetUserID(c)}
	if v, ok := c.Get("isAdmin"); ok {
		if b, ok := v.(bool); ok {
			id.IsAdmin = b
		}
	}
	return id
}
