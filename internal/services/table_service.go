package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"comandas_backend/internal/models"
	"comandas_backend/internal/repositories"
)

// Custom Errors for table management
var (
	ErrTableNotFound        = errors.New("table not found")
	ErrTableHasActiveOrders = errors.New("table has active orders and cannot be deleted")
	ErrTableLabelTaken      = errors.New("table label already in use")
)

// --- DTOs ---

// CreateTableRequest is used for creating a new table.
type CreateTableRequest struct {
	Label    string `json:"label" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

// UpdateTableRequest is used for updating a table's label or capacity.
type UpdateTableRequest struct {
	Label    string `json:"label" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

// --- TableService Interface ---
type TableService interface {
	CreateTable(req CreateTableRequest) (*models.Table, error)
	GetTables() ([]models.Table, error)
	GetTableByID(tableID int64) (*models.Table, error)
	UpdateTable(tableID int64, req UpdateTableRequest) (*models.Table, error)
	// ToggleAvailability flips the admin_enabled flag only; it never touches
	// the order-driven occupancy field.
	ToggleAvailability(tableID int64) (*models.Table, error)
	DeleteTable(tableID int64) error
}

type tableService struct {
	tableRepo repositories.TableRepository
	locks     *KeyedMutex
	db        *sql.DB
}

// NewTableService creates a new instance of TableService. The locks argument
// must be shared with the OrderService so the manual toggle serializes with
// order-driven occupancy writes on the same table.
func NewTableService(tr repositories.TableRepository, locks *KeyedMutex, db *sql.DB) TableService {
	return &tableService{tableRepo: tr, locks: locks, db: db}
}

func (s *tableService) CreateTable(req CreateTableRequest) (*models.Table, error) {
	table := models.Table{
		Label:        req.Label,
		Capacity:     req.Capacity,
		AdminEnabled: true,
		Occupancy:    models.TableAvailable,
	}
	if _, err := s.tableRepo.CreateTable(s.db, &table); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrTableLabelTaken, req.Label)
		}
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	table.DisplayStatus = table.ComposeDisplayStatus()
	return &table, nil
}

func (s *tableService) GetTables() ([]models.Table, error) {
	tables, err := s.tableRepo.GetTables()
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	for i := range tables {
		tables[i].DisplayStatus = tables[i].ComposeDisplayStatus()
	}
	return tables, nil
}

func (s *tableService) GetTableByID(tableID int64) (*models.Table, error) {
	table, err := s.tableRepo.GetTableByID(tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to get table by ID: %w", err)
	}
	table.DisplayStatus = table.ComposeDisplayStatus()
	return table, nil
}

func (s *tableService) UpdateTable(tableID int64, req UpdateTableRequest) (*models.Table, error) {
	unlock := s.locks.Lock(tableLockKey(tableID))
	defer unlock()

	table, err := s.tableRepo.GetTableByID(tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to fetch table for update: %w", err)
	}

	table.Label = req.Label
	table.Capacity = req.Capacity
	if err := s.tableRepo.UpdateTable(s.db, table); err != nil {
		return nil, fmt.Errorf("failed to update table: %w", err)
	}
	return s.GetTableByID(tableID)
}

func (s *tableService) ToggleAvailability(tableID int64) (*models.Table, error) {
	unlock := s.locks.Lock(tableLockKey(tableID))
	defer unlock()

	table, err := s.tableRepo.GetTableByID(tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to fetch table for toggle: %w", err)
	}

	if err := s.tableRepo.UpdateAdminEnabled(s.db, tableID, !table.AdminEnabled, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to toggle table availability: %w", err)
	}
	return s.GetTableByID(tableID)
}

func (s *tableService) DeleteTable(tableID int64) error {
	unlock := s.locks.Lock(tableLockKey(tableID))
	defer unlock()

	if _, err := s.tableRepo.GetTableByID(tableID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTableNotFound
		}
		return fmt.Errorf("failed to fetch table for deletion: %w", err)
	}

	activeCount, err := s.tableRepo.CountActiveOrdersForTable(tableID)
	if err != nil {
		return fmt.Errorf("failed to count active orders for table: %w", err)
	}
	if activeCount > 0 {
		return fmt.Errorf("%w: table ID %d has %d active orders", ErrTableHasActiveOrders, tableID, activeCount)
	}

	// Historical orders keep the denormalized table label, so a hard delete
	// does not corrupt their display data.
	if err := s.tableRepo.DeleteTable(s.db, tableID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTableNotFound
		}
		return fmt.Errorf("failed to delete table: %w", err)
	}
	return nil
}
