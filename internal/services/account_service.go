package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"comandas_backend/internal/models"
	"comandas_backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// Custom Errors for account management
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidRole     = errors.New("invalid account role")
)

// --- DTOs ---

// CreateAccountRequest is used by admins to create staff accounts.
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateAccountRequest is used to update a staff account. Password is
// optional; when empty the stored hash is kept.
type UpdateAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password"`
}

// --- AccountService Interface ---
type AccountService interface {
	CreateAccount(req CreateAccountRequest) (*models.Account, error)
	GetAccounts() ([]models.Account, error)
	GetAccountByID(accountID int64) (*models.Account, error)
	UpdateAccount(accountID int64, req UpdateAccountRequest) (*models.Account, error)
	// DeleteAccount hard-deletes accounts never referenced by an order and
	// deactivates the rest so historical creator data stays resolvable.
	DeleteAccount(accountID int64) error
}

type accountService struct {
	accountRepo repositories.AccountRepository
	db          *sql.DB
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(ar repositories.AccountRepository, db *sql.DB) AccountService {
	return &accountService{accountRepo: ar, db: db}
}

func (s *accountService) CreateAccount(req CreateAccountRequest) (*models.Account, error) {
	if !models.IsValidRole(req.Role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, req.Role)
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.Account{
		Name:         req.Name,
		Email:        req.Email,
		Role:         models.Role(req.Role),
		Active:       true,
		PasswordHash: string(hashedPasswordBytes),
	}
	if _, err := s.accountRepo.CreateAccount(s.db, &account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrEmailExists, req.Email)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	account.PasswordHash = ""
	return &account, nil
}

func (s *accountService) GetAccounts() ([]models.Account, error) {
	accounts, err := s.accountRepo.GetAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	for i := range accounts {
		accounts[i].PasswordHash = ""
	}
	return accounts, nil
}

func (s *accountService) GetAccountByID(accountID int64) (*models.Account, error) {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}
	account.PasswordHash = ""
	return account, nil
}

func (s *accountService) UpdateAccount(accountID int64, req UpdateAccountRequest) (*models.Account, error) {
	if !models.IsValidRole(req.Role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, req.Role)
	}

	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to fetch account for update: %w", err)
	}

	account.Name = req.Name
	account.Email = req.Email
	account.Role = models.Role(req.Role)
	if req.Password != "" {
		hashedPasswordBytes, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, fmt.Errorf("failed to hash password: %w", hashErr)
		}
		account.PasswordHash = string(hashedPasswordBytes)
	}

	if err := s.accountRepo.UpdateAccount(s.db, account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrEmailExists, req.Email)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return s.GetAccountByID(accountID)
}

func (s *accountService) DeleteAccount(accountID int64) error {
	if _, err := s.GetAccountByID(accountID); err != nil {
		return err
	}

	referenced, err := s.accountRepo.CountOrdersForAccount(accountID)
	if err != nil {
		return fmt.Errorf("failed to count orders for account: %w", err)
	}

	if referenced > 0 {
		if err := s.accountRepo.SetActive(s.db, accountID, false, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to deactivate referenced account: %w", err)
		}
		return nil
	}

	if err := s.accountRepo.DeleteAccount(s.db, accountID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
