package engine

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zack-schrag/treeline-goals/internal/domain"
)

// Pacing represents the deadline analysis for a goal.
// All fields are nil when the goal has no target date. DaysRemaining may
// be negative (past due); callers should render "past due" rather than a
// misleading day count. MonthlyNeeded is nil when there is no valid
// forward-looking window (deadline today or already past).
type Pacing struct {
	DaysRemaining *int
	MonthlyNeeded *decimal.Decimal
	OnTrack       *bool
}

var (
	thirty    = decimal.NewFromInt(30)
	tolerance = decimal.NewFromInt(5) // on-track tolerance band, percentage points
)

// AnalyzePacing compares actual progress against the progress expected
// if saving proceeded linearly from creation date to target date.
// Logic:
//  1. No target date: no pacing defined, every field nil
//  2. daysRemaining = ceil(target - now), in days
//  3. monthlyNeeded = remaining / (daysRemaining / 30), a 30-day-month
//     approximation; nil when daysRemaining <= 0
//  4. onTrack = actual >= expected - 5, where expected is the linear
//     interpolation over the creation-to-target window
//
// A zero-or-negative total window (target date at or before creation)
// makes the expected-progress formula undefined; the convention here is
// that the goal is on track only if it is already fully funded.
func AnalyzePacing(goal domain.Goal, currentAmount decimal.Decimal, now time.Time) Pacing {
	if goal.TargetDate == nil {
		return Pacing{}
	}

	daysRemaining := daysBetween(now, *goal.TargetDate)
	result := Pacing{DaysRemaining: &daysRemaining}

	if daysRemaining > 0 {
		remaining := RemainingAmount(goal, currentAmount)
		months := decimal.NewFromInt(int64(daysRemaining)).Div(thirty)
		monthlyNeeded := remaining.Div(months)
		result.MonthlyNeeded = &monthlyNeeded
	}

	progress := ComputeProgress(goal, currentAmount)
	totalDays := daysBetween(goal.CreatedAt, *goal.TargetDate)

	var onTrack bool
	if totalDays <= 0 {
		onTrack = progress.GreaterThanOrEqual(oneHundred)
	} else {
		elapsed := totalDays - daysRemaining
		expected := decimal.NewFromInt(int64(elapsed)).
			Div(decimal.NewFromInt(int64(totalDays))).
			Mul(oneHundred)
		onTrack = progress.GreaterThanOrEqual(expected.Sub(tolerance))
	}
	result.OnTrack = &onTrack

	return result
}

// daysBetween returns the number of days from one instant to another,
// rounded up so that any part of a day still counts as a remaining day.
func daysBetween(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}
