package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zack-schrag/treeline-goals/internal/domain"
	"github.com/zack-schrag/treeline-goals/internal/engine"
)

// AllocationInput represents one allocation rule in a goal submission
type AllocationInput struct {
	AccountID uuid.UUID
	Kind      domain.AllocationKind
	Value     decimal.Decimal
}

// CreateGoalInput represents the input for creating a goal
type CreateGoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	TargetDate   *time.Time
	Allocations  []AllocationInput
	// InitialAmount is the manually maintained balance for a goal with no
	// allocation rules. Ignored when rules are present.
	InitialAmount decimal.Decimal
	Icon          string
	Color         string
}

// Status represents a goal together with its derived values for one
// computation pass
type Status struct {
	Goal          domain.Goal
	CurrentAmount decimal.Decimal
	Progress      decimal.Decimal
	Remaining     decimal.Decimal
	Pacing        engine.Pacing
}

// Service handles goal lifecycle operations and status derivation
type Service struct {
	AccountRepo domain.AccountRepository
	GoalRepo    domain.GoalRepository
}

// NewService creates a new tracker Service instance
func NewService(accountRepo domain.AccountRepository, goalRepo domain.GoalRepository) *Service {
	return &Service{
		AccountRepo: accountRepo,
		GoalRepo:    goalRepo,
	}
}

// CreateGoal validates and persists a new goal
// Logic:
//  1. Build the goal with its allocation rules
//  2. Validate (kind ranges, duplicate accounts, positive target)
//  3. Compute the starting balance:
//     - With rules: the amount currently resolvable from the linked
//       accounts, so progress starts at zero from day one
//     - Without rules: the manually supplied initial amount
//  4. Save using GoalRepo.Create
func (s *Service) CreateGoal(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	goalID := uuid.New()
	now := time.Now()

	rules := make([]domain.AllocationRule, 0, len(input.Allocations))
	for _, a := range input.Allocations {
		rules = append(rules, domain.AllocationRule{
			ID:        uuid.New(),
			GoalID:    goalID,
			AccountID: a.AccountID,
			Kind:      a.Kind,
			Value:     a.Value,
		})
	}

	goal := &domain.Goal{
		ID:           goalID,
		Name:         input.Name,
		TargetAmount: input.TargetAmount,
		TargetDate:   input.TargetDate,
		Allocations:  rules,
		Icon:         input.Icon,
		Color:        input.Color,
		IsActive:     true,
		CreatedAt:    now,
	}

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	if len(rules) == 0 {
		goal.StartingBalance = input.InitialAmount
	} else {
		accounts, err := s.accountIndex(ctx)
		if err != nil {
			return nil, err
		}
		goal.StartingBalance = engine.ResolveCurrentAmount(*goal, accounts)
	}

	if err := s.GoalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// UpdateGoal replaces a goal wholesale with a validated candidate.
// The editing surface builds a complete immutable Goal value and submits
// it here; nothing is mutated in place.
func (s *Service) UpdateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.GoalRepo.GetByID(ctx, goal.ID)
	if err != nil {
		return nil, err
	}

	// Creation time and completion state are owned by the lifecycle
	// methods, not the editing surface
	goal.CreatedAt = existing.CreatedAt
	goal.IsCompleted = existing.IsCompleted
	goal.CompletedAt = existing.CompletedAt

	if err := s.GoalRepo.Update(ctx, &goal); err != nil {
		return nil, err
	}

	return &goal, nil
}

// CompleteGoal marks a goal as completed
// Completion is user-triggered when progress reaches 100%, never
// automatic
func (s *Service) CompleteGoal(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	goal, err := s.GoalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if goal.IsCompleted {
		return nil, errors.New("goal is already completed")
	}

	goal.Complete(time.Now())

	if err := s.GoalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// ReopenGoal clears a goal's completed state
func (s *Service) ReopenGoal(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	goal, err := s.GoalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !goal.IsCompleted {
		return nil, errors.New("goal is not completed")
	}

	goal.Reopen()

	if err := s.GoalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// DeleteGoal removes a goal and its allocation rules unconditionally
func (s *Service) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return s.GoalRepo.Delete(ctx, id)
}

// SyncAccounts replaces the stored account snapshots with fresh balances
// pushed by the ledger collaborator. Each sync is idempotent given its
// input; concurrent triggers only need serializing by the caller.
func (s *Service) SyncAccounts(ctx context.Context, accounts []domain.Account) error {
	for i := range accounts {
		if err := accounts[i].Validate(); err != nil {
			return err
		}
	}

	for i := range accounts {
		if err := s.AccountRepo.Upsert(ctx, &accounts[i]); err != nil {
			return err
		}
	}

	return nil
}

// GoalStatus derives the current amount, progress, remaining amount and
// pacing for one goal from the freshest account snapshots
func (s *Service) GoalStatus(ctx context.Context, id uuid.UUID, now time.Time) (*Status, error) {
	goal, err := s.GoalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountIndex(ctx)
	if err != nil {
		return nil, err
	}

	return s.status(*goal, accounts, now), nil
}

// ListGoalStatuses derives statuses for all active goals in one pass
// over a single account snapshot
func (s *Service) ListGoalStatuses(ctx context.Context, now time.Time) ([]*Status, error) {
	goals, err := s.GoalRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountIndex(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]*Status, 0, len(goals))
	for _, goal := range goals {
		statuses = append(statuses, s.status(*goal, accounts, now))
	}

	return statuses, nil
}

func (s *Service) status(goal domain.Goal, accounts map[uuid.UUID]domain.Account, now time.Time) *Status {
	current := engine.ResolveCurrentAmount(goal, accounts)
	return &Status{
		Goal:          goal,
		CurrentAmount: current,
		Progress:      engine.ComputeProgress(goal, current),
		Remaining:     engine.RemainingAmount(goal, current),
		Pacing:        engine.AnalyzePacing(goal, current, now),
	}
}

func (s *Service) accountIndex(ctx context.Context) (map[uuid.UUID]domain.Account, error) {
	accounts, err := s.AccountRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return engine.AccountIndex(accounts), nil
}
