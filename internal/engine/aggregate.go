package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zack-schrag/treeline-goals/internal/domain"
)

// Totals represents portfolio-level progress across goals.
type Totals struct {
	TotalSaved  decimal.Decimal
	TotalTarget decimal.Decimal
}

// Aggregate sums saved and target amounts across all non-completed
// goals. Amounts are measured from each goal's starting balance, so a
// goal created with money already set aside does not inflate the
// portfolio. Neither sum is clamped: pathological inputs (starting
// balance above target) can push either total negative, matching the
// per-goal semantics where only the individual remaining value is
// floored.
func Aggregate(goals []*domain.Goal, balances map[uuid.UUID]decimal.Decimal) Totals {
	totals := Totals{TotalSaved: decimal.Zero, TotalTarget: decimal.Zero}

	for _, goal := range goals {
		if goal.IsCompleted {
			continue
		}

		current, ok := balances[goal.ID]
		if !ok {
			current = goal.StartingBalance
		}

		totals.TotalSaved = totals.TotalSaved.Add(current.Sub(goal.StartingBalance))
		totals.TotalTarget = totals.TotalTarget.Add(goal.TargetAmount.Sub(goal.StartingBalance))
	}

	return totals
}
