package models

import "time"

// OrderStatus defines the type for order statuses
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "PENDING"
	OrderStatusInPreparation OrderStatus = "IN_PREPARATION"
	OrderStatusReady         OrderStatus = "READY"
	OrderStatusDelivered     OrderStatus = "DELIVERED"
	OrderStatusPaid          OrderStatus = "PAID"
)

// IsValidOrderStatus checks if the provided status string is a valid OrderStatus.
func IsValidOrderStatus(status string) bool {
	switch OrderStatus(status) {
	case OrderStatusPending,
		OrderStatusInPreparation,
		OrderStatusReady,
		OrderStatusDelivered,
		OrderStatusPaid:
		return true
	default:
		return false
	}
}

// Order represents a waiter-submitted ticket (comanda) for a table.
// TotalAmount is captured at creation from the item prices of that moment
// and is never recomputed afterwards.
type Order struct {
	ID             int64       `json:"id" db:"id"`
	TableID        int64       `json:"table_id" db:"table_id"`
	TableLabel     string      `json:"table_label" db:"table_label"`
	Status         OrderStatus `json:"status" db:"status"`
	TotalAmount    float64     `json:"total_amount" db:"total_amount"`
	CreatedByID    int64       `json:"created_by_id" db:"created_by_id"`
	CreatedByName  string      `json:"created_by_name" db:"created_by_name"`
	CreatedByEmail string      `json:"created_by_email" db:"created_by_email"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
	Items          []OrderItem `json:"items"`

	// DisplayTotal is the formatted total ("$130") filled in for API responses.
	DisplayTotal string `json:"display_total,omitempty" db:"-"`

	// AllowedNext is filled from the transition engine for API responses so
	// no client has to hardcode its own next-status table.
	AllowedNext *OrderStatus `json:"allowed_next,omitempty"`
}

// OrderItem represents one line of an order. UnitPrice is the product price
// captured when the order was created, not the live price.
type OrderItem struct {
	ID          int64   `json:"id" db:"id"`
	OrderID     int64   `json:"order_id" db:"order_id"`
	ProductID   int64   `json:"product_id" db:"product_id"`
	ProductName string  `json:"product_name" db:"product_name"`
	Quantity    int     `json:"quantity" db:"quantity"`
	UnitPrice   float64 `json:"unit_price" db:"unit_price"`
	Note        *string `json:"note,omitempty" db:"note"`
}

// OrderFilters defines the available filters for querying orders.
type OrderFilters struct {
	TableID    *int64  `form:"table_id"`
	Status     *string `form:"status"`
	ActiveOnly bool    `form:"-"`
}
