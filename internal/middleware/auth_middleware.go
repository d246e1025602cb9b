package middleware

import (
	"net/http"
	"strings"

	"comandas_backend/internal/models"
	"comandas_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// actorContextKey is the gin context key the authenticated Actor is stored under.
const actorContextKey = "actor"

// AuthMiddleware creates a Gin middleware for JWT authentication. On success
// it stores an explicit models.Actor in the context; services receive it as
// an argument instead of reading ambient session state.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(actorContextKey, models.Actor{
			AccountID: claims.AccountID,
			Email:     claims.Email,
			Role:      models.Role(claims.Role),
		})

		c.Next()
	}
}

// ActorFromContext returns the authenticated Actor set by AuthMiddleware.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := value.(models.Actor)
	return actor, ok
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the actor role (from JWT claims) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Actor not found in context. Ensure AuthMiddleware runs first."})
			c.Abort()
			return
		}

		allowed := false
		roleNames := make([]string, 0, len(allowedRoles))
		for _, r := range allowedRoles {
			roleNames = append(roleNames, string(r))
			if actor.Role == r {
				allowed = true
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource. Required roles: " + strings.Join(roleNames, ", ")})
			c.Abort()
			return
		}

		c.Next()
	}
}
