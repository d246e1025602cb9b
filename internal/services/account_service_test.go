package services

import (
	"errors"
	"testing"

	"comandas_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAccountServiceFixture(t *testing.T) (AccountService, *fakeAccountRepo) {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := newFakeAccountRepo()
	return NewAccountService(repo, db), repo
}

func TestCreateAccount_HashesPasswordAndHidesHash(t *testing.T) {
	service, repo := newAccountServiceFixture(t)

	account, err := service.CreateAccount(CreateAccountRequest{
		Name: "Lucia", Email: "lucia@example.com", Role: "MOZO", Password: "secreto1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleWaiter, account.Role)
	assert.True(t, account.Active)
	assert.Empty(t, account.PasswordHash)

	stored, err := repo.GetAccountByID(account.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto1")))
}

func TestCreateAccount_Rejections(t *testing.T) {
	service, _ := newAccountServiceFixture(t)

	_, err := service.CreateAccount(CreateAccountRequest{
		Name: "Lucia", Email: "lucia@example.com", Role: "GERENTE", Password: "secreto1",
	})
	assert.True(t, errors.Is(err, ErrInvalidRole), "expected ErrInvalidRole, got %v", err)

	_, err = service.CreateAccount(CreateAccountRequest{
		Name: "Lucia", Email: "lucia@example.com", Role: "MOZO", Password: "secreto1",
	})
	require.NoError(t, err)
	_, err = service.CreateAccount(CreateAccountRequest{
		Name: "Otra", Email: "lucia@example.com", Role: "COCINA", Password: "secreto2",
	})
	assert.True(t, errors.Is(err, ErrEmailExists), "expected ErrEmailExists, got %v", err)
}

func TestUpdateAccount_KeepsHashWhenPasswordEmpty(t *testing.T) {
	service, repo := newAccountServiceFixture(t)
	account, err := service.CreateAccount(CreateAccountRequest{
		Name: "Lucia", Email: "lucia@example.com", Role: "MOZO", Password: "secreto1",
	})
	require.NoError(t, err)

	before, err := repo.GetAccountByID(account.ID)
	require.NoError(t, err)

	updated, err := service.UpdateAccount(account.ID, UpdateAccountRequest{
		Name: "Lucia G", Email: "lucia@example.com", Role: "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	after, err := repo.GetAccountByID(account.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestDeleteAccount_DeactivatesWhenReferencedByOrders(t *testing.T) {
	service, repo := newAccountServiceFixture(t)
	account, err := service.CreateAccount(CreateAccountRequest{
		Name: "Lucia", Email: "lucia@example.com", Role: "MOZO", Password: "secreto1",
	})
	require.NoError(t, err)
	repo.ordered[account.ID] = 2

	require.NoError(t, service.DeleteAccount(account.ID))

	// Kept for historical creator resolution, just no longer able to log in.
	deactivated, err := service.GetAccountByID(account.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	repo.ordered[account.ID] = 0
	require.NoError(t, service.DeleteAccount(account.ID))
	_, err = service.GetAccountByID(account.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
