package domain

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account snapshot persistence operations
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// Upsert inserts or replaces an account snapshot
	// The ledger collaborator pushes fresh balances through this method
	Upsert(ctx context.Context, account *Account) error

	// List retrieves all known accounts
	List(ctx context.Context) ([]*Account, error)
}

// GoalRepository defines the interface for goal persistence operations
type GoalRepository interface {
	// GetByID retrieves a goal with its allocation rules
	GetByID(ctx context.Context, id uuid.UUID) (*Goal, error)

	// Create creates a new goal together with its allocation rules
	Create(ctx context.Context, goal *Goal) error

	// Update replaces a goal wholesale, allocation rules included
	Update(ctx context.Context, goal *Goal) error

	// Delete removes a goal and its allocation rules
	// Deletion is unconditional and irreversible
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves goals with their allocation rules
	// If activeOnly is true, only goals with IsActive set are returned
	List(ctx context.Context, activeOnly bool) ([]*Goal, error)
}
