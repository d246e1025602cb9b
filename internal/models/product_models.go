package models

import "time"

// ProductCategory defines the fixed menu categories.
type ProductCategory string

const (
	CategoryBebidas     ProductCategory = "BEBIDAS"
	CategoryComidas     ProductCategory = "COMIDAS"
	CategoryPostres     ProductCategory = "POSTRES"
	CategoryPanificados ProductCategory = "PANIFICADOS"
)

// IsValidProductCategory checks if the provided string is a valid ProductCategory.
func IsValidProductCategory(category string) bool {
	switch ProductCategory(category) {
	case CategoryBebidas, CategoryComidas, CategoryPostres, CategoryPanificados:
		return true
	default:
		return false
	}
}

// Product represents a menu item. Price changes only affect future orders;
// existing order items keep the unit price captured at creation. Available
// is a soft archive flag: archived products disappear from the waiter menu
// but stay resolvable for historical order display.
type Product struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name" binding:"required"`
	Category  ProductCategory `json:"category" db:"category" binding:"required"`
	Price     float64         `json:"price" db:"price" binding:"required,gt=0"`
	Available bool            `json:"available" db:"available"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// ProductFilters defines the available filters for querying products.
type ProductFilters struct {
	Category      *string `form:"category"`
	AvailableOnly bool    `form:"available_only"`
}
