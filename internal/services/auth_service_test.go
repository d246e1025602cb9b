package services

import (
	"testing"

	"comandas_backend/internal/models"
	"comandas_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedCredentials(t *testing.T, repo *fakeAccountRepo, email, password string, active bool) *models.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return repo.addAccount(models.Account{
		Name: "Lucia", Email: email, Role: models.RoleWaiter, Active: active, PasswordHash: string(hash),
	})
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeAccountRepo()
	account := seedCredentials(t, repo, "lucia@example.com", "secreto1", true)
	service := NewAuthService(repo)

	resp, err := service.Login(LoginRequest{Email: "lucia@example.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Empty(t, resp.Account.PasswordHash)

	claims, err := utils.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
	assert.Equal(t, string(models.RoleWaiter), claims.Role)
}

func TestLogin_Rejections(t *testing.T) {
	repo := newFakeAccountRepo()
	seedCredentials(t, repo, "lucia@example.com", "secreto1", true)
	seedCredentials(t, repo, "baja@example.com", "secreto1", false)
	service := NewAuthService(repo)

	testCases := []struct {
		name string
		req  LoginRequest
	}{
		{"unknown email", LoginRequest{Email: "nadie@example.com", Password: "secreto1"}},
		{"wrong password", LoginRequest{Email: "lucia@example.com", Password: "incorrecta"}},
		{"deactivated account", LoginRequest{Email: "baja@example.com", Password: "secreto1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Login(tc.req)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestRefresh_ReissuesTokens(t *testing.T) {
	repo := newFakeAccountRepo()
	account := seedCredentials(t, repo, "lucia@example.com", "secreto1", true)
	service := NewAuthService(repo)

	login, err := service.Login(LoginRequest{Email: "lucia@example.com", Password: "secreto1"})
	require.NoError(t, err)

	refreshed, err := service.Refresh(RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, account.ID, refreshed.Account.ID)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefresh_RejectsGarbageToken(t *testing.T) {
	service := NewAuthService(newFakeAccountRepo())

	_, err := service.Refresh(RefreshRequest{RefreshToken: "not-a-jwt"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
