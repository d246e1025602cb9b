package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"comandas_backend/internal/models"
	"comandas_backend/internal/repositories"
	"comandas_backend/pkg/utils"
)

// Custom Errors for order creation
var (
	ErrTableUnavailable = errors.New("table is not available for a new order")
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrInvalidAccount   = errors.New("account does not resolve to an active staff member")
	ErrProductNotFound  = errors.New("product not found")
)

// Notifier broadcasts change hints to connected clients after a successful
// mutation. Events carry no order payload; clients refetch the active set.
// Delivery is best effort and must never fail the mutation that triggered it.
type Notifier interface {
	OrderCreated(orderID int64)
	OrderUpdated(orderID int64)
}

// --- Data Transfer Objects (DTOs) ---

// CreateOrderItemRequest is used for creating individual order items.
type CreateOrderItemRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Note      string `json:"note"`
}

// CreateOrderRequest is used for creating a new order.
type CreateOrderRequest struct {
	TableID   int64                    `json:"table_id" binding:"required"`
	AccountID int64                    `json:"account_id" binding:"required"`
	Items     []CreateOrderItemRequest `json:"items" binding:"required,dive"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(actor models.Actor, req CreateOrderRequest) (*models.Order, error)
	RequestTransition(actor models.Actor, orderID int64, requested models.OrderStatus) (*models.Order, error)
	GetActiveOrders() ([]models.Order, error)
	GetOrderHistory() ([]models.Order, error)
	GetOrderByID(orderID int64) (*models.Order, error)
}

type orderService struct {
	orderRepo   repositories.OrderRepository
	tableRepo   repositories.TableRepository
	productRepo repositories.ProductRepository
	accountRepo repositories.AccountRepository
	notifier    Notifier
	locks       *KeyedMutex
	db          *sql.DB // For managing transactions
}

// NewOrderService creates a new instance of OrderService. The locks argument
// must be the same instance the TableService uses so that order-driven table
// writes and the manual availability toggle serialize on the same mutexes.
func NewOrderService(
	or repositories.OrderRepository,
	tr repositories.TableRepository,
	pr repositories.ProductRepository,
	ar repositories.AccountRepository,
	notifier Notifier,
	locks *KeyedMutex,
	db *sql.DB,
) OrderService {
	return &orderService{
		orderRepo:   or,
		tableRepo:   tr,
		productRepo: pr,
		accountRepo: ar,
		notifier:    notifier,
		locks:       locks,
		db:          db,
	}
}

func (s *orderService) CreateOrder(actor models.Actor, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	account, err := s.accountRepo.GetAccountByID(req.AccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: account ID %d", ErrInvalidAccount, req.AccountID)
		}
		return nil, fmt.Errorf("failed to resolve account %d: %w", req.AccountID, err)
	}
	if !account.Active {
		return nil, fmt.Errorf("%w: account ID %d is deactivated", ErrInvalidAccount, req.AccountID)
	}

	unlock := s.locks.Lock(tableLockKey(req.TableID))
	defer unlock()

	table, err := s.tableRepo.GetTableByID(req.TableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: table ID %d does not exist", ErrTableUnavailable, req.TableID)
		}
		return nil, fmt.Errorf("failed to resolve table %d: %w", req.TableID, err)
	}
	if !table.AdminEnabled || table.Occupancy != models.TableAvailable {
		return nil, fmt.Errorf("%w: table %s", ErrTableUnavailable, table.Label)
	}

	// Capture unit prices now; later price edits must not move this total.
	// Archived products stay orderable when referenced directly.
	var totalAmount float64
	itemsToCreate := make([]models.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		if itemReq.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for product ID %d must be positive", ErrEmptyOrder, itemReq.ProductID)
		}
		product, repoErr := s.productRepo.GetProductByID(itemReq.ProductID)
		if repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: product ID %d", ErrProductNotFound, itemReq.ProductID)
			}
			return nil, fmt.Errorf("failed to fetch product %d: %w", itemReq.ProductID, repoErr)
		}
		totalAmount += product.Price * float64(itemReq.Quantity)

		item := models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    itemReq.Quantity,
			UnitPrice:   product.Price,
		}
		if itemReq.Note != "" {
			note := itemReq.Note
			item.Note = &note
		}
		itemsToCreate = append(itemsToCreate, item)
	}

	now := time.Now().UTC()
	order := models.Order{
		TableID:        table.ID,
		TableLabel:     table.Label,
		Status:         models.OrderStatusPending,
		TotalAmount:    totalAmount,
		CreatedByID:    account.ID,
		CreatedByName:  account.Name,
		CreatedByEmail: account.Email,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	createdOrderID, repoErr := s.orderRepo.CreateOrder(tx, &order)
	if repoErr != nil {
		return nil, fmt.Errorf("failed to create order record: %w", repoErr)
	}

	for i := range itemsToCreate {
		itemsToCreate[i].OrderID = createdOrderID
		if _, repoErr = s.orderRepo.CreateOrderItem(tx, &itemsToCreate[i]); repoErr != nil {
			return nil, fmt.Errorf("failed to create order item (product_id: %d): %w", itemsToCreate[i].ProductID, repoErr)
		}
	}

	if repoErr = s.tableRepo.UpdateOccupancy(tx, table.ID, models.TableOccupied, now); repoErr != nil {
		return nil, fmt.Errorf("failed to occupy table %d: %w", table.ID, repoErr)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	if s.notifier != nil {
		s.notifier.OrderCreated(createdOrderID)
	}
	return s.GetOrderByID(createdOrderID)
}

func (s *orderService) RequestTransition(actor models.Actor, orderID int64, requested models.OrderStatus) (*models.Order, error) {
	if !models.IsValidOrderStatus(string(requested)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, requested)
	}

	unlock := s.locks.Lock(orderLockKey(orderID))
	defer unlock()

	current, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for status update: %w", err)
	}

	if err := ValidateTransition(current.Status, requested, actor.Role); err != nil {
		return nil, err
	}

	unlockTable := s.locks.Lock(tableLockKey(current.TableID))
	defer unlockTable()

	now := time.Now().UTC()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	err = s.orderRepo.UpdateStatusGuarded(tx, orderID, current.Status, requested, now)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		if errors.Is(err, repositories.ErrStaleStatus) {
			return nil, fmt.Errorf("%w: order %d advanced concurrently", ErrInvalidTransition, orderID)
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	// Table occupancy is coupled to the order lifecycle: a delivered order
	// parks the table in AWAITING_PAYMENT, a paid order frees it.
	switch requested {
	case models.OrderStatusDelivered:
		if err := s.tableRepo.UpdateOccupancy(tx, current.TableID, models.TableAwaitingPayment, now); err != nil {
			return nil, fmt.Errorf("failed to mark table %d awaiting payment: %w", current.TableID, err)
		}
	case models.OrderStatusPaid:
		if err := s.tableRepo.UpdateOccupancy(tx, current.TableID, models.TableAvailable, now); err != nil {
			return nil, fmt.Errorf("failed to release table %d: %w", current.TableID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction for order status update: %w", err)
	}

	if s.notifier != nil {
		s.notifier.OrderUpdated(orderID)
	}
	return s.GetOrderByID(orderID)
}

func (s *orderService) GetActiveOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrders(models.OrderFilters{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get active orders: %w", err)
	}
	return s.attachItemsAndNext(orders)
}

func (s *orderService) GetOrderHistory() ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrders(models.OrderFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}
	return s.attachItemsAndNext(orders)
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID from repository: %w", err)
	}

	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items for order ID %d: %w", orderID, err)
	}
	order.Items = items
	attachAllowedNext(order)
	return order, nil
}

func (s *orderService) attachItemsAndNext(orders []models.Order) ([]models.Order, error) {
	for i := range orders {
		items, err := s.orderRepo.GetOrderItemsByOrderID(orders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get items for order ID %d: %w", orders[i].ID, err)
		}
		orders[i].Items = items
		attachAllowedNext(&orders[i])
	}
	return orders, nil
}

// attachAllowedNext decorates the order with the engine-computed successor
// and the formatted display total.
func attachAllowedNext(order *models.Order) {
	if next, ok := NextStatus(order.Status); ok {
		order.AllowedNext = &next
	} else {
		order.AllowedNext = nil
	}
	order.DisplayTotal = utils.FormatCurrency(order.TotalAmount)
}
