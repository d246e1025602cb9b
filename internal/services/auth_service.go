package services

import (
	"errors"
	"fmt"

	"comandas_backend/internal/models"
	"comandas_backend/internal/repositories"
	"comandas_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// --- DTOs ---

// LoginRequest DTO. Email is the login identifier.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest DTO
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	Account      *models.Account `json:"account"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token,omitempty"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	Refresh(req RefreshRequest) (*AuthResponse, error)
	GetProfile(accountID int64) (*models.Account, error)
}

type authService struct {
	accountRepo repositories.AccountRepository
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(ar repositories.AccountRepository) AuthService {
	return &authService{accountRepo: ar}
}

func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	account, err := s.accountRepo.GetAccountByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if !account.Active {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(account)
}

func (s *authService) Refresh(req RefreshRequest) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accountRepo.GetAccountByID(claims.AccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("refresh attempt failed: %w", err)
	}
	if !account.Active {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(account)
}

func (s *authService) issueTokens(account *models.Account) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := utils.GenerateRefreshToken(account.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	account.PasswordHash = ""
	return &AuthResponse{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) GetProfile(accountID int64) (*models.Account, error) {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to retrieve account profile: %w", err)
	}
	account.PasswordHash = ""
	return account, nil
}
