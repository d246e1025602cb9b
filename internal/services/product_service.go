package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"comandas_backend/internal/models"
	"comandas_backend/internal/repositories"
)

// Custom Errors for product management
var (
	ErrInvalidCategory = errors.New("invalid product category")
)

// --- DTOs ---

// CreateProductRequest is used for creating a new menu product.
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
}

// UpdateProductRequest is used for updating a product. Price changes affect
// only future orders; captured unit prices on existing orders are frozen.
type UpdateProductRequest struct {
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Available *bool   `json:"available"`
}

// --- ProductService Interface ---
type ProductService interface {
	CreateProduct(req CreateProductRequest) (*models.Product, error)
	GetProducts(filters models.ProductFilters) ([]models.Product, error)
	GetProductByID(productID int64) (*models.Product, error)
	UpdateProduct(productID int64, req UpdateProductRequest) (*models.Product, error)
	// DeleteProduct hard-deletes unreferenced products and soft-archives
	// (available=false) products referenced by historical order items.
	DeleteProduct(productID int64) error
}

type productService struct {
	productRepo repositories.ProductRepository
	db          *sql.DB
}

// NewProductService creates a new instance of ProductService.
func NewProductService(pr repositories.ProductRepository, db *sql.DB) ProductService {
	return &productService{productRepo: pr, db: db}
}

func (s *productService) CreateProduct(req CreateProductRequest) (*models.Product, error) {
	if !models.IsValidProductCategory(req.Category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, req.Category)
	}
	product := models.Product{
		Name:      req.Name,
		Category:  models.ProductCategory(req.Category),
		Price:     req.Price,
		Available: true,
	}
	if _, err := s.productRepo.CreateProduct(s.db, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *productService) GetProducts(filters models.ProductFilters) ([]models.Product, error) {
	if filters.Category != nil && *filters.Category != "" && !models.IsValidProductCategory(*filters.Category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, *filters.Category)
	}
	products, err := s.productRepo.GetProducts(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProductByID(productID int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return product, nil
}

func (s *productService) UpdateProduct(productID int64, req UpdateProductRequest) (*models.Product, error) {
	if !models.IsValidProductCategory(req.Category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, req.Category)
	}

	product, err := s.GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Category = models.ProductCategory(req.Category)
	product.Price = req.Price
	if req.Available != nil {
		product.Available = *req.Available
	}

	if err := s.productRepo.UpdateProduct(s.db, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return s.GetProductByID(productID)
}

func (s *productService) DeleteProduct(productID int64) error {
	if _, err := s.GetProductByID(productID); err != nil {
		return err
	}

	referenced, err := s.productRepo.CountOrderItemsForProduct(productID)
	if err != nil {
		return fmt.Errorf("failed to count order item references: %w", err)
	}

	if referenced > 0 {
		if err := s.productRepo.SetAvailability(s.db, productID, false, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to archive referenced product: %w", err)
		}
		return nil
	}

	if err := s.productRepo.DeleteProduct(s.db, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
