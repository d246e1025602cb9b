package handlers

import (
	"errors"
	"net/http"

	"comandas_backend/internal/models"
	"comandas_backend/internal/services"
	"comandas_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AccountHandler holds the account service.
type AccountHandler struct {
	accountService services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(as services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: as}
}

// CreateAccount handles creating a new staff account
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req services.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already registered.", err.Error()))
		case errors.Is(err, services.ErrInvalidRole):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid account role.", err.Error()))
		default:
			utils.LogError(err, "CreateAccount: Error from accountService.CreateAccount")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create account.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, account)
}

// GetAccounts handles fetching all staff accounts
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	accounts, err := h.accountService.GetAccounts()
	if err != nil {
		utils.LogError(err, "GetAccounts: Error from accountService.GetAccounts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch accounts.", "Internal error"))
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	c.JSON(http.StatusOK, gin.H{"data": accounts})
}

// GetAccountByID handles fetching a single account
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	accountID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid account ID format.", err.Error()))
		return
	}

	account, err := h.accountService.GetAccountByID(accountID)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Account not found.", err.Error()))
		} else {
			utils.LogError(err, "GetAccountByID: Error from accountService.GetAccountByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch account.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, account)
}

// UpdateAccount handles updating a staff account
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid account ID format.", err.Error()))
		return
	}

	var req services.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(accountID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Account not found.", err.Error()))
		case errors.Is(err, services.ErrEmailExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already registered.", err.Error()))
		case errors.Is(err, services.ErrInvalidRole):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid account role.", err.Error()))
		default:
			utils.LogError(err, "UpdateAccount: Error from accountService.UpdateAccount")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update account.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, account)
}

// DeleteAccount handles deleting (or deactivating) a staff account
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid account ID format.", err.Error()))
		return
	}

	err = h.accountService.DeleteAccount(accountID)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Account not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteAccount: Error from accountService.DeleteAccount")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete account.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
