package handlers

import (
	"errors"
	"net/http"

	"comandas_backend/internal/models"
	"comandas_backend/internal/services"
	"comandas_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TableHandler holds the table service.
type TableHandler struct {
	tableService services.TableService
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(ts services.TableService) *TableHandler {
	return &TableHandler{tableService: ts}
}

// CreateTable handles creating a new table
func (h *TableHandler) CreateTable(c *gin.Context) {
	var req services.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	table, err := h.tableService.CreateTable(req)
	if err != nil {
		utils.LogError(err, "CreateTable: Error from tableService.CreateTable")
		if errors.Is(err, services.ErrTableLabelTaken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Table label already in use.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, table)
}

// GetTables handles fetching all tables
func (h *TableHandler) GetTables(c *gin.Context) {
	tables, err := h.tableService.GetTables()
	if err != nil {
		utils.LogError(err, "GetTables: Error from tableService.GetTables")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch tables.", "Internal error"))
		return
	}
	if tables == nil {
		tables = []models.Table{}
	}
	c.JSON(http.StatusOK, gin.H{"data": tables})
}

// GetTableByID handles fetching a single table
func (h *TableHandler) GetTableByID(c *gin.Context) {
	tableID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	table, err := h.tableService.GetTableByID(tableID)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
		} else {
			utils.LogError(err, "GetTableByID: Error from tableService.GetTableByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// UpdateTable handles updating a table's label or capacity
func (h *TableHandler) UpdateTable(c *gin.Context) {
	tableID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	var req services.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	table, err := h.tableService.UpdateTable(tableID, req)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
		} else {
			utils.LogError(err, "UpdateTable: Error from tableService.UpdateTable")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// ToggleTableAvailability handles the manual admin activate/deactivate toggle
func (h *TableHandler) ToggleTableAvailability(c *gin.Context) {
	tableID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	table, err := h.tableService.ToggleAvailability(tableID)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
		} else {
			utils.LogError(err, "ToggleTableAvailability: Error from tableService.ToggleAvailability")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to toggle table availability.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// DeleteTable handles deleting a table
func (h *TableHandler) DeleteTable(c *gin.Context) {
	tableID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	err = h.tableService.DeleteTable(tableID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
		case errors.Is(err, services.ErrTableHasActiveOrders):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Table has active orders and cannot be deleted.", err.Error()))
		default:
			utils.LogError(err, "DeleteTable: Error from tableService.DeleteTable")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted successfully"})
}
