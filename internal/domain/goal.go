package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationKind represents the kind of allocation rule
type AllocationKind string

const (
	AllocationKindPercentage AllocationKind = "percentage"
	AllocationKindFixed      AllocationKind = "fixed"
)

// AllocationRule claims part of one account's balance for a goal.
// Kind is a tagged variant: 'percentage' reads Value as a share (0-100)
// of the account balance, 'fixed' as an absolute amount capped at the
// account balance.
type AllocationRule struct {
	ID        uuid.UUID
	GoalID    uuid.UUID
	AccountID uuid.UUID
	Kind      AllocationKind
	Value     decimal.Decimal
}

// Goal represents a savings goal entity in the domain layer.
// A goal with no allocation rules is manually tracked: StartingBalance
// holds the maintained balance. A goal with rules derives its current
// amount from linked accounts, and StartingBalance is the amount
// attributed to the goal before tracking began.
type Goal struct {
	ID              uuid.UUID
	Name            string
	TargetAmount    decimal.Decimal
	TargetDate      *time.Time // NULL means no deadline, no pacing
	StartingBalance decimal.Decimal
	Allocations     []AllocationRule
	Icon            string // Presentation passthrough
	Color           string // Presentation passthrough
	IsActive        bool
	IsCompleted     bool
	CompletedAt     *time.Time
	CreatedAt       time.Time
}

// Validate ensures the goal adheres to domain rules
// Returns an error if validation fails
// The engine itself does not validate (garbage in, garbage out); this is
// the submission boundary check for callers.
func (g *Goal) Validate() error {
	if g.Name == "" {
		return errors.New("goal name cannot be empty")
	}

	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return errors.New("goal target amount must be positive")
	}

	seenAccounts := make(map[uuid.UUID]bool)
	for _, rule := range g.Allocations {
		// Validate rule kind
		if rule.Kind != AllocationKindPercentage && rule.Kind != AllocationKindFixed {
			return errors.New("allocation kind must be percentage or fixed")
		}

		// Validate percentage value is between 0 and 100
		if rule.Kind == AllocationKindPercentage {
			if rule.Value.LessThan(decimal.Zero) || rule.Value.GreaterThan(decimal.NewFromInt(100)) {
				return errors.New("percentage allocation value must be between 0 and 100")
			}
		}

		// Validate fixed value is non-negative
		if rule.Kind == AllocationKindFixed {
			if rule.Value.LessThan(decimal.Zero) {
				return errors.New("fixed allocation value must be non-negative")
			}
		}

		// A goal must not claim the same account twice
		if seenAccounts[rule.AccountID] {
			return errors.New("goal cannot have two allocation rules for the same account")
		}
		seenAccounts[rule.AccountID] = true
	}

	return nil
}

// Complete marks the goal completed at the given time.
// Completion is user-triggered, never automatic.
func (g *Goal) Complete(now time.Time) {
	g.IsCompleted = true
	g.CompletedAt = &now
}

// Reopen clears the completed state so the goal counts toward the
// portfolio again.
func (g *Goal) Reopen() {
	g.IsCompleted = false
	g.CompletedAt = nil
}
