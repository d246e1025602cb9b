package models

import "time"

// TableOccupancy defines the order-driven occupancy state of a table.
type TableOccupancy string

const (
	TableAvailable       TableOccupancy = "AVAILABLE"
	TableOccupied        TableOccupancy = "OCCUPIED"
	TableAwaitingPayment TableOccupancy = "AWAITING_PAYMENT"
)

// IsValidTableOccupancy checks if the provided string is a valid TableOccupancy.
func IsValidTableOccupancy(occupancy string) bool {
	switch TableOccupancy(occupancy) {
	case TableAvailable, TableOccupied, TableAwaitingPayment:
		return true
	default:
		return false
	}
}

// TableDisplayUnavailable is the composed display status for a table an admin
// has taken out of service. It is never stored; see Table.DisplayStatus.
const TableDisplayUnavailable = "UNAVAILABLE"

// Table represents a physical table (mesa) in the dining room.
//
// AdminEnabled and Occupancy are deliberately separate fields: the manual
// admin activate/deactivate toggle and the order-driven occupancy lifecycle
// write different columns, so one can never clobber the other.
type Table struct {
	ID           int64          `json:"id" db:"id"`
	Label        string         `json:"label" db:"label" binding:"required"`
	Capacity     int            `json:"capacity" db:"capacity" binding:"required,gt=0"`
	AdminEnabled bool           `json:"admin_enabled" db:"admin_enabled"`
	Occupancy    TableOccupancy `json:"occupancy" db:"occupancy"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`

	DisplayStatus string `json:"display_status" db:"-"`
}

// ComposeDisplayStatus derives the single status string clients render.
func (t *Table) ComposeDisplayStatus() string {
	if !t.AdminEnabled {
		return TableDisplayUnavailable
	}
	return string(t.Occupancy)
}
