package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"comandas_backend/internal/models"

	"github.com/lib/pq"
)

// TableRepository defines the interface for table-related database operations.
type TableRepository interface {
	CreateTable(executor SQLExecutor, table *models.Table) (int64, error)
	GetTableByID(tableID int64) (*models.Table, error)
	GetTables() ([]models.Table, error)
	UpdateTable(executor SQLExecutor, table *models.Table) error
	UpdateOccupancy(executor SQLExecutor, tableID int64, occupancy models.TableOccupancy, updatedAt time.Time) error
	UpdateAdminEnabled(executor SQLExecutor, tableID int64, enabled bool, updatedAt time.Time) error
	DeleteTable(executor SQLExecutor, tableID int64) error
	CountActiveOrdersForTable(tableID int64) (int, error)
}

type tableRepository struct {
	db *sql.DB
}

// NewTableRepository creates a new instance of TableRepository.
func NewTableRepository(db *sql.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) CreateTable(executor SQLExecutor, table *models.Table) (int64, error) {
	query := `INSERT INTO tables (label, capacity, admin_enabled, occupancy, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	now := time.Now().UTC()
	if table.CreatedAt.IsZero() {
		table.CreatedAt = now
	}
	if table.UpdatedAt.IsZero() {
		table.UpdatedAt = now
	}

	err := executor.QueryRow(query,
		table.Label, table.Capacity, table.AdminEnabled, table.Occupancy,
		table.CreatedAt, table.UpdatedAt,
	).Scan(&table.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, fmt.Errorf("%w: table label %q", ErrDuplicateKey, table.Label)
		}
		return 0, fmt.Errorf("%w: creating table: %v", ErrDatabaseError, err)
	}
	return table.ID, nil
}

func (r *tableRepository) GetTableByID(tableID int64) (*models.Table, error) {
	table := &models.Table{}
	query := `SELECT id, label, capacity, admin_enabled, occupancy, created_at, updated_at
	          FROM tables WHERE id = $1`
	err := r.db.QueryRow(query, tableID).Scan(
		&table.ID, &table.Label, &table.Capacity, &table.AdminEnabled, &table.Occupancy,
		&table.CreatedAt, &table.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting table by ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return table, nil
}

func (r *tableRepository) GetTables() ([]models.Table, error) {
	tables := []models.Table{}
	query := `SELECT id, label, capacity, admin_enabled, occupancy, created_at, updated_at
	          FROM tables ORDER BY label`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tables: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Table
		err := rows.Scan(&t.ID, &t.Label, &t.Capacity, &t.AdminEnabled, &t.Occupancy, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning table: %v", ErrDatabaseError, err)
		}
		tables = append(tables, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating table rows: %v", ErrDatabaseError, err)
	}
	return tables, nil
}

func (r *tableRepository) UpdateTable(executor SQLExecutor, table *models.Table) error {
	query := `UPDATE tables SET label = $1, capacity = $2, updated_at = $3 WHERE id = $4`
	result, err := executor.Exec(query, table.Label, table.Capacity, time.Now().UTC(), table.ID)
	if err != nil {
		return fmt.Errorf("%w: updating table ID %d: %v", ErrDatabaseError, table.ID, err)
	}
	return requireRowsAffected(result, tableNotFoundContext(table.ID))
}

func (r *tableRepository) UpdateOccupancy(executor SQLExecutor, tableID int64, occupancy models.TableOccupancy, updatedAt time.Time) error {
	query := `UPDATE tables SET occupancy = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, occupancy, updatedAt, tableID)
	if err != nil {
		return fmt.Errorf("%w: updating occupancy for table ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return requireRowsAffected(result, tableNotFoundContext(tableID))
}

func (r *tableRepository) UpdateAdminEnabled(executor SQLExecutor, tableID int64, enabled bool, updatedAt time.Time) error {
	query := `UPDATE tables SET admin_enabled = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, enabled, updatedAt, tableID)
	if err != nil {
		return fmt.Errorf("%w: updating admin_enabled for table ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return requireRowsAffected(result, tableNotFoundContext(tableID))
}

func (r *tableRepository) DeleteTable(executor SQLExecutor, tableID int64) error {
	query := `DELETE FROM tables WHERE id = $1`
	result, err := executor.Exec(query, tableID)
	if err != nil {
		return fmt.Errorf("%w: deleting table ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return requireRowsAffected(result, tableNotFoundContext(tableID))
}

func (r *tableRepository) CountActiveOrdersForTable(tableID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM orders WHERE table_id = $1 AND status <> $2`
	err := r.db.QueryRow(query, tableID, models.OrderStatusPaid).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting active orders for table ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return count, nil
}

func tableNotFoundContext(tableID int64) string {
	return fmt.Sprintf("table ID %d", tableID)
}

// requireRowsAffected maps a zero-row update/delete to ErrNotFound.
func requireRowsAffected(result sql.Result, context string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for %s: %v", ErrDatabaseError, context, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
