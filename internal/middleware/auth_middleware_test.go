package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"comandas_backend/internal/models"
	"comandas_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTestRouter(roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	group := engine.Group("", AuthMiddleware())
	if len(roles) > 0 {
		group.Use(RoleAuthMiddleware(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "actor missing from context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": actor.Email, "role": actor.Role})
	})
	return engine
}

func performWithHeader(engine *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := utils.GenerateAccessToken(1, "lucia@example.com", string(models.RoleWaiter))
	require.NoError(t, err)

	rec := performWithHeader(setupAuthTestRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lucia@example.com")
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	testCases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performWithHeader(setupAuthTestRouter(), tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRoleAuthMiddleware_EnforcesAllowedRoles(t *testing.T) {
	kitchenToken, err := utils.GenerateAccessToken(2, "chef@example.com", string(models.RoleKitchen))
	require.NoError(t, err)
	adminToken, err := utils.GenerateAccessToken(1, "admin@example.com", string(models.RoleAdmin))
	require.NoError(t, err)

	adminOnly := setupAuthTestRouter(models.RoleAdmin)

	rec := performWithHeader(adminOnly, "Bearer "+kitchenToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = performWithHeader(adminOnly, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}
