package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"comandas_backend/internal/models"
)

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	CreateProduct(executor SQLExecutor, product *models.Product) (int64, error)
	GetProductByID(productID int64) (*models.Product, error)
	GetProducts(filters models.ProductFilters) ([]models.Product, error)
	UpdateProduct(executor SQLExecutor, product *models.Product) error
	SetAvailability(executor SQLExecutor, productID int64, available bool, updatedAt time.Time) error
	DeleteProduct(executor SQLExecutor, productID int64) error
	CountOrderItemsForProduct(productID int64) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products (name, category, price, available, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}

	err := executor.QueryRow(query,
		product.Name, product.Category, product.Price, product.Available,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	return product.ID, nil
}

func (r *productRepository) GetProductByID(productID int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT id, name, category, price, available, created_at, updated_at
	          FROM products WHERE id = $1`
	err := r.db.QueryRow(query, productID).Scan(
		&product.ID, &product.Name, &product.Category, &product.Price, &product.Available,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, productID, err)
	}
	return product, nil
}

func (r *productRepository) GetProducts(filters models.ProductFilters) ([]models.Product, error) {
	products := []models.Product{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, category, price, available, created_at, updated_at FROM products`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCounter))
		args = append(args, *filters.Category)
		argCounter++
	}
	if filters.AvailableOnly {
		conditions = append(conditions, "available = TRUE")
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY category, name")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Available, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products SET name = $1, category = $2, price = $3, available = $4, updated_at = $5
	          WHERE id = $6`
	result, err := executor.Exec(query,
		product.Name, product.Category, product.Price, product.Available,
		time.Now().UTC(), product.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	return requireRowsAffected(result, fmt.Sprintf("product ID %d", product.ID))
}

func (r *productRepository) SetAvailability(executor SQLExecutor, productID int64, available bool, updatedAt time.Time) error {
	query := `UPDATE products SET available = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, available, updatedAt, productID)
	if err != nil {
		return fmt.Errorf("%w: updating availability for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	return requireRowsAffected(result, fmt.Sprintf("product ID %d", productID))
}

func (r *productRepository) DeleteProduct(executor SQLExecutor, productID int64) error {
	query := `DELETE FROM products WHERE id = $1`
	result, err := executor.Exec(query, productID)
	if err != nil {
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, productID, err)
	}
	return requireRowsAffected(result, fmt.Sprintf("product ID %d", productID))
}

func (r *productRepository) CountOrderItemsForProduct(productID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM order_items WHERE product_id = $1`
	err := r.db.QueryRow(query, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting order items for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	return count, nil
}
