package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zack-schrag/treeline-goals/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, name, balance, account_type
		FROM accounts
		WHERE id = $1
	`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	return account, nil
}

// Upsert inserts or replaces an account snapshot
func (r *accountRepository) Upsert(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, name, balance, account_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    balance = EXCLUDED.balance,
		    account_type = EXCLUDED.account_type
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Balance.String(),
		string(account.AccountType),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}

	return nil
}

// List retrieves all known accounts
func (r *accountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT id, name, balance, account_type
		FROM accounts
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// rowScanner matches both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	var balanceStr string

	err := row.Scan(
		&account.ID,
		&account.Name,
		&balanceStr,
		&account.AccountType,
	)
	if err != nil {
		return nil, err
	}

	// Parse balance (DECIMAL)
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	account.Balance = balance

	return &account, nil
}
