package middleware

import (
	"net/http"
	"strings"

	"github.com/JannatulNex/Ticketing-System/internal/helpers"
	"github.com/JannatulNex/Ticketing-System/internal/token"
	"github.com/gin-gonic/gin"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "user_role"
)

// JWTAuthMiddleware gates requests on a valid bearer token and stores the
// authenticated identity on the context.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Unauthorized.")
			c.Abort()
			return
		}

		identity, err := token.Verify(secret, authHeader[len("Bearer "):])
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token.")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, identity.ID)
		c.Set(ContextKeyRole, identity.Role)
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role does not match.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole, exists := c.Get(ContextKeyRole)
		if !exists {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Unauthorized.")
			c.Abort()
			return
		}
		if callerRole != role {
			helpers.RespondWithError(c, http.StatusForbidden, "Forbidden.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by JWTAuthMiddleware.
func CurrentIdentity(c *gin.Context) (token.Identity, bool) {
	id, okID := c.Get(ContextKeyUserID)
	role, okRole := c.Get(ContextKeyRole)
	if !okID || !okRole {
		return token.Identity{}, false
	}
	return token.Identity{ID: id.(uint), Role: role.(string)}, true
}
