package overview

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zack-schrag/treeline-goals/internal/domain"
	"github.com/zack-schrag/treeline-goals/internal/engine"
)

// Result represents the calculated portfolio overview
type Result struct {
	TotalSaved   decimal.Decimal
	TotalTarget  decimal.Decimal
	GoalBalances map[uuid.UUID]decimal.Decimal
}

// Service handles portfolio overview operations
type Service struct {
	AccountRepo domain.AccountRepository
	GoalRepo    domain.GoalRepository
}

// NewService creates a new overview Service instance
func NewService(accountRepo domain.AccountRepository, goalRepo domain.GoalRepository) *Service {
	return &Service{
		AccountRepo: accountRepo,
		GoalRepo:    goalRepo,
	}
}

// GetOverview calculates portfolio-level totals
// Logic:
//   - Load all active goals and the current account snapshot
//   - Resolve every goal's current amount in one pass
//   - Sum saved and target amounts across non-completed goals
func (s *Service) GetOverview(ctx context.Context) (*Result, error) {
	goals, err := s.GoalRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list active goals: %w", err)
	}

	accounts, err := s.AccountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	balances := engine.ResolveAll(goals, engine.AccountIndex(accounts))
	totals := engine.Aggregate(goals, balances)

	return &Result{
		TotalSaved:   totals.TotalSaved,
		TotalTarget:  totals.TotalTarget,
		GoalBalances: balances,
	}, nil
}
