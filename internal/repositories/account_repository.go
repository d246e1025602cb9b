package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"comandas_backend/internal/models"

	"github.com/lib/pq"
)

// AccountRepository defines the interface for staff account database operations.
type AccountRepository interface {
	CreateAccount(executor SQLExecutor, account *models.Account) (int64, error)
	GetAccountByID(accountID int64) (*models.Account, error)
	GetAccountByEmail(email string) (*models.Account, error)
	GetAccounts() ([]models.Account, error)
	UpdateAccount(executor SQLExecutor, account *models.Account) error
	SetActive(executor SQLExecutor, accountID int64, active bool, updatedAt time.Time) error
	DeleteAccount(executor SQLExecutor, accountID int64) error
	CountOrdersForAccount(accountID int64) (int, error)
}

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(executor SQLExecutor, account *models.Account) (int64, error) {
	query := `INSERT INTO accounts (name, email, role, active, password_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = now
	}

	err := executor.QueryRow(query,
		account.Name, account.Email, account.Role, account.Active, account.PasswordHash,
		account.CreatedAt, account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, fmt.Errorf("%w: account email %q", ErrDuplicateKey, account.Email)
		}
		return 0, fmt.Errorf("%w: creating account: %v", ErrDatabaseError, err)
	}
	return account.ID, nil
}

func (r *accountRepository) GetAccountByID(accountID int64) (*models.Account, error) {
	return r.scanAccount(r.db.QueryRow(
		`SELECT id, name, email, role, active, password_hash, created_at, updated_at
		 FROM accounts WHERE id = $1`, accountID))
}

func (r *accountRepository) GetAccountByEmail(email string) (*models.Account, error) {
	return r.scanAccount(r.db.QueryRow(
		`SELECT id, name, email, role, active, password_hash, created_at, updated_at
		 FROM accounts WHERE email = $1`, email))
}

func (r *accountRepository) scanAccount(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(
		&account.ID, &account.Name, &account.Email, &account.Role, &account.Active,
		&account.PasswordHash, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning account: %v", ErrDatabaseError, err)
	}
	return account, nil
}

func (r *accountRepository) GetAccounts() ([]models.Account, error) {
	accounts := []models.Account{}
	query := `SELECT id, name, email, role, active, password_hash, created_at, updated_at
	          FROM accounts ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying accounts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Account
		err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Role, &a.Active, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning account: %v", ErrDatabaseError, err)
		}
		accounts = append(accounts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating account rows: %v", ErrDatabaseError, err)
	}
	return accounts, nil
}

func (r *accountRepository) UpdateAccount(executor SQLExecutor, account *models.Account) error {
	query := `UPDATE accounts SET name = $1, email = $2, role = $3, password_hash = $4, updated_at = $5
	          WHERE id = $6`
	result, err := executor.Exec(query,
		account.Name, account.Email, account.Role, account.PasswordHash,
		time.Now().UTC(), account.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: account email %q", ErrDuplicateKey, account.Email)
		}
		return fmt.Errorf("%w: updating account ID %d: %v", ErrDatabaseError, account.ID, err)
	}
	return requireRowsAffected(result, fmt.Sprintf("account ID %d", account.ID))
}

func (r *accountRepository) SetActive(executor SQLExecutor, accountID int64, active bool, updatedAt time.Time) error {
	query := `UPDATE accounts SET active = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, active, updatedAt, accountID)
	if err != nil {
		return fmt.Errorf("%w: updating active flag for account ID %d: %v", ErrDatabaseError, accountID, err)
	}
	return requireRowsAffected(result, fmt.Sprintf("account ID %d", accountID))
}

func (r *accountRepository) DeleteAccount(executor SQLExecutor, accountID int64) error {
	query := `DELETE FROM accounts WHERE id = $1`
	result, err := executor.Exec(query, accountID)
	if err != nil {
		return fmt.Errorf("%w: deleting account ID %d: %v", ErrDatabaseError, accountID, err)
	}
	return requireRowsAffected(result, fmt.Sprintf("account ID %d", accountID))
}

func (r *accountRepository) CountOrdersForAccount(accountID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM orders WHERE created_by_id = $1`
	err := r.db.QueryRow(query, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting orders for account ID %d: %v", ErrDatabaseError, accountID, err)
	}
	return count, nil
}
