package services

import (
	"sync"
	"time"

	"comandas_backend/internal/models"
	"comandas_backend/internal/repositories"
)

// In-memory repository fakes. They model the contracts the services rely on,
// including the status guard on order updates and duplicate-key detection.

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[int64]*models.Order
	items  map[int64][]models.OrderItem
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[int64]*models.Order),
		items:  make(map[int64][]models.OrderItem),
	}
}

func (f *fakeOrderRepo) CreateOrder(_ repositories.SQLExecutor, order *models.Order) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	order.ID = f.nextID
	stored := *order
	f.orders[order.ID] = &stored
	return order.ID, nil
}

func (f *fakeOrderRepo) GetOrderByID(orderID int64) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) GetOrders(filters models.OrderFilters) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orders := []models.Order{}
	for _, o := range f.orders {
		if filters.ActiveOnly && o.Status == models.OrderStatusPaid {
			continue
		}
		if filters.TableID != nil && o.TableID != *filters.TableID {
			continue
		}
		if filters.Status != nil && string(o.Status) != *filters.Status {
			continue
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func (f *fakeOrderRepo) UpdateStatusGuarded(_ repositories.SQLExecutor, orderID int64, expectedStatus, newStatus models.OrderStatus, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return repositories.ErrNotFound
	}
	if order.Status != expectedStatus {
		return repositories.ErrStaleStatus
	}
	order.Status = newStatus
	order.UpdatedAt = updatedAt
	return nil
}

func (f *fakeOrderRepo) CreateOrderItem(_ repositories.SQLExecutor, item *models.OrderItem) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	item.ID = f.nextID
	f.items[item.OrderID] = append(f.items[item.OrderID], *item)
	return item.ID, nil
}

func (f *fakeOrderRepo) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.OrderItem{}, f.items[orderID]...), nil
}

type fakeTableRepo struct {
	mu     sync.Mutex
	tables map[int64]*models.Table
	active map[int64]int
	nextID int64
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{
		tables: make(map[int64]*models.Table),
		active: make(map[int64]int),
	}
}

func (f *fakeTableRepo) addTable(table models.Table) *models.Table {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	table.ID = f.nextID
	f.tables[table.ID] = &table
	return &table
}

func (f *fakeTableRepo) CreateTable(_ repositories.SQLExecutor, table *models.Table) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.tables {
		if existing.Label == table.Label {
			return 0, repositories.ErrDuplicateKey
		}
	}
	f.nextID++
	table.ID = f.nextID
	stored := *table
	f.tables[table.ID] = &stored
	return table.ID, nil
}

func (f *fakeTableRepo) GetTableByID(tableID int64) (*models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table, ok := f.tables[tableID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *table
	return &copied, nil
}

func (f *fakeTableRepo) GetTables() ([]models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tables := []models.Table{}
	for _, t := range f.tables {
		tables = append(tables, *t)
	}
	return tables, nil
}

func (f *fakeTableRepo) UpdateTable(_ repositories.SQLExecutor, table *models.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.tables[table.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Label = table.Label
	stored.Capacity = table.Capacity
	return nil
}

func (f *fakeTableRepo) UpdateOccupancy(_ repositories.SQLExecutor, tableID int64, occupancy models.TableOccupancy, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	table, ok := f.tables[tableID]
	if !ok {
		return repositories.ErrNotFound
	}
	table.Occupancy = occupancy
	table.UpdatedAt = updatedAt
	return nil
}

func (f *fakeTableRepo) UpdateAdminEnabled(_ repositories.SQLExecutor, tableID int64, enabled bool, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	table, ok := f.tables[tableID]
	if !ok {
		return repositories.ErrNotFound
	}
	table.AdminEnabled = enabled
	table.UpdatedAt = updatedAt
	return nil
}

func (f *fakeTableRepo) DeleteTable(_ repositories.SQLExecutor, tableID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tables[tableID]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.tables, tableID)
	return nil
}

func (f *fakeTableRepo) CountActiveOrdersForTable(tableID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active[tableID], nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[int64]*models.Product
	ordered  map[int64]int
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[int64]*models.Product),
		ordered:  make(map[int64]int),
	}
}

func (f *fakeProductRepo) addProduct(product models.Product) *models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	product.ID = f.nextID
	f.products[product.ID] = &product
	return &product
}

func (f *fakeProductRepo) CreateProduct(_ repositories.SQLExecutor, product *models.Product) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	product.ID = f.nextID
	stored := *product
	f.products[product.ID] = &stored
	return product.ID, nil
}

func (f *fakeProductRepo) GetProductByID(productID int64) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[productID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) GetProducts(filters models.ProductFilters) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	products := []models.Product{}
	for _, p := range f.products {
		if filters.AvailableOnly && !p.Available {
			continue
		}
		if filters.Category != nil && string(p.Category) != *filters.Category {
			continue
		}
		products = append(products, *p)
	}
	return products, nil
}

func (f *fakeProductRepo) UpdateProduct(_ repositories.SQLExecutor, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.products[product.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Name = product.Name
	stored.Category = product.Category
	stored.Price = product.Price
	stored.Available = product.Available
	return nil
}

func (f *fakeProductRepo) SetAvailability(_ repositories.SQLExecutor, productID int64, available bool, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[productID]
	if !ok {
		return repositories.ErrNotFound
	}
	product.Available = available
	product.UpdatedAt = updatedAt
	return nil
}

func (f *fakeProductRepo) DeleteProduct(_ repositories.SQLExecutor, productID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[productID]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.products, productID)
	return nil
}

func (f *fakeProductRepo) CountOrderItemsForProduct(productID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ordered[productID], nil
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[int64]*models.Account
	ordered  map[int64]int
	nextID   int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts: make(map[int64]*models.Account),
		ordered:  make(map[int64]int),
	}
}

func (f *fakeAccountRepo) addAccount(account models.Account) *models.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	account.ID = f.nextID
	f.accounts[account.ID] = &account
	return &account
}

func (f *fakeAccountRepo) CreateAccount(_ repositories.SQLExecutor, account *models.Account) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.accounts {
		if existing.Email == account.Email {
			return 0, repositories.ErrDuplicateKey
		}
	}
	f.nextID++
	account.ID = f.nextID
	stored := *account
	f.accounts[account.ID] = &stored
	return account.ID, nil
}

func (f *fakeAccountRepo) GetAccountByID(accountID int64) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[accountID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountRepo) GetAccountByEmail(email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAccountRepo) GetAccounts() ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	accounts := []models.Account{}
	for _, a := range f.accounts {
		accounts = append(accounts, *a)
	}
	return accounts, nil
}

func (f *fakeAccountRepo) UpdateAccount(_ repositories.SQLExecutor, account *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.accounts[account.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Name = account.Name
	stored.Email = account.Email
	stored.Role = account.Role
	stored.Active = account.Active
	if account.PasswordHash != "" {
		stored.PasswordHash = account.PasswordHash
	}
	return nil
}

func (f *fakeAccountRepo) SetActive(_ repositories.SQLExecutor, accountID int64, active bool, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[accountID]
	if !ok {
		return repositories.ErrNotFound
	}
	account.Active = active
	account.UpdatedAt = updatedAt
	return nil
}

func (f *fakeAccountRepo) DeleteAccount(_ repositories.SQLExecutor, accountID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[accountID]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.accounts, accountID)
	return nil
}

func (f *fakeAccountRepo) CountOrdersForAccount(accountID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ordered[accountID], nil
}

// fakeNotifier records published event hints.
type fakeNotifier struct {
	mu      sync.Mutex
	created []int64
	updated []int64
}

func (f *fakeNotifier) OrderCreated(orderID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, orderID)
}

func (f *fakeNotifier) OrderUpdated(orderID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, orderID)
}
