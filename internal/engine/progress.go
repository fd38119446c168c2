package engine

import (
	"github.com/shopspring/decimal"
	"github.com/zack-schrag/treeline-goals/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeProgress computes normalized progress toward a goal as a
// percentage in [0, 100].
// Logic:
//   - needed = target - starting; if needed <= 0 the target is already
//     met (or misconfigured below the starting point), progress is 100
//   - otherwise progress = (current - starting) / needed * 100, clamped
//     to [0, 100]
func ComputeProgress(goal domain.Goal, currentAmount decimal.Decimal) decimal.Decimal {
	needed := goal.TargetAmount.Sub(goal.StartingBalance)
	if needed.LessThanOrEqual(decimal.Zero) {
		return oneHundred
	}

	saved := currentAmount.Sub(goal.StartingBalance)
	progress := saved.Div(needed).Mul(oneHundred)

	if progress.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if progress.GreaterThan(oneHundred) {
		return oneHundred
	}
	return progress
}

// RemainingAmount computes how much is still missing to reach the
// target. Never negative: an over-funded goal reports zero remaining.
func RemainingAmount(goal domain.Goal, currentAmount decimal.Decimal) decimal.Decimal {
	remaining := goal.TargetAmount.Sub(currentAmount)
	if remaining.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return remaining
}
