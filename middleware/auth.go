package middleware

import (
	"net/http"
	"strings"

	"roadguard/models"
	"roadguard/services/auth"
	"roadguard/utils"

	"github.com/gin-gonic/gin"
)

// Context keys written by JWTAuthMiddleware.
const (
	ContextAccountID = "accountID"
	ContextRole      = "role"
	ContextIdentity  = "identity"
)

// JWTAuthMiddleware requires a valid bearer token. When roles are given the
// caller's role must be one of them.
func JWTAuthMiddleware(authService auth.AuthService, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.AbortWithError(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		identity, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(identity.Role, roles) {
			utils.AbortWithError(c, http.StatusForbidden, "Forbidden")
			return
		}

		c.Set(ContextAccountID, identity.ID)
		c.Set(ContextRole, identity.Role)
		c.Set(ContextIdentity, identity)
		c.Next()
	}
}

func hasRole(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// AccountID returns the authenticated account id, empty for the admin.
func AccountID(c *gin.Context) string {
	return c.GetString(ContextAccountID)
}

// Role returns the authenticated caller's role.
func Role(c *gin.Context) models.Role {
	if v, ok := c.Get(ContextRole); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}

// Identity returns what the bearer token resolved to.
func Identity(c *gin.Context) *auth.Identity {
	if v, ok := c.Get(ContextIdentity); ok {
		if id, ok := v.(*auth.Identity); ok {
			return id
		}
	}
	return nil
}
