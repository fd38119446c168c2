package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zack-schrag/treeline-goals/internal/domain"
)

func TestComputeProgress_FromZeroStart(t *testing.T) {
	// Target 10000, starting 0, current 2000 -> 20%
	goal := domain.Goal{
		ID:           uuid.New(),
		Name:         "House Down Payment",
		TargetAmount: decimal.NewFromInt(10000),
	}

	progress := ComputeProgress(goal, decimal.NewFromInt(2000))
	assert.True(t, progress.Equal(decimal.NewFromInt(20)), "expected 20, got %s", progress)

	remaining := RemainingAmount(goal, decimal.NewFromInt(2000))
	assert.True(t, remaining.Equal(decimal.NewFromInt(8000)))
}

func TestComputeProgress_MeasuredFromStartingBalance(t *testing.T) {
	// Target 5000, starting 1000, current 3000
	// progress = (3000-1000)/(5000-1000)*100 = 50
	goal := domain.Goal{
		ID:              uuid.New(),
		Name:            "Emergency Fund",
		TargetAmount:    decimal.NewFromInt(5000),
		StartingBalance: decimal.NewFromInt(1000),
	}

	progress := ComputeProgress(goal, decimal.NewFromInt(3000))
	assert.True(t, progress.Equal(decimal.NewFromInt(50)), "expected 50, got %s", progress)
}

func TestComputeProgress_StartingAboveTargetIsComplete(t *testing.T) {
	// Target already met at creation: progress pinned at 100, remaining 0
	goal := domain.Goal{
		ID:              uuid.New(),
		Name:            "Overfunded",
		TargetAmount:    decimal.NewFromInt(1000),
		StartingBalance: decimal.NewFromInt(1500),
	}

	progress := ComputeProgress(goal, decimal.NewFromInt(1500))
	assert.True(t, progress.Equal(decimal.NewFromInt(100)))

	remaining := RemainingAmount(goal, decimal.NewFromInt(1500))
	assert.True(t, remaining.Equal(decimal.Zero))
}

func TestComputeProgress_ClampedToBounds(t *testing.T) {
	goal := domain.Goal{
		ID:              uuid.New(),
		Name:            "Clamped",
		TargetAmount:    decimal.NewFromInt(1000),
		StartingBalance: decimal.NewFromInt(500),
	}

	// Current below starting balance clamps to 0, never negative
	low := ComputeProgress(goal, decimal.NewFromInt(100))
	assert.True(t, low.Equal(decimal.Zero), "expected 0, got %s", low)

	// Current above target clamps to 100
	high := ComputeProgress(goal, decimal.NewFromInt(2000))
	assert.True(t, high.Equal(decimal.NewFromInt(100)), "expected 100, got %s", high)
}

func TestRemainingAmount_NeverNegative(t *testing.T) {
	goal := domain.Goal{
		ID:           uuid.New(),
		Name:         "Funded",
		TargetAmount: decimal.NewFromInt(1000),
	}

	remaining := RemainingAmount(goal, decimal.NewFromInt(2500))
	assert.True(t, remaining.Equal(decimal.Zero), "over-funded goal must report zero remaining")
}

func TestComputeProgress_BoundsHold(t *testing.T) {
	// Property: progress stays in [0, 100] across a spread of inputs
	cases := []struct {
		target, starting, current int64
	}{
		{10000, 0, 2000},
		{5000, 1000, 3000},
		{1000, 1500, 1500},
		{1000, 500, -300},
		{1000, 0, 99999},
		{100, 100, 50},
	}

	for _, c := range cases {
		goal := domain.Goal{
			ID:              uuid.New(),
			Name:            "Bounds",
			TargetAmount:    decimal.NewFromInt(c.target),
			StartingBalance: decimal.NewFromInt(c.starting),
		}
		progress := ComputeProgress(goal, decimal.NewFromInt(c.current))

		assert.True(t, progress.GreaterThanOrEqual(decimal.Zero),
			"progress %s below 0 for target=%d starting=%d current=%d", progress, c.target, c.starting, c.current)
		assert.True(t, progress.LessThanOrEqual(decimal.NewFromInt(100)),
			"progress %s above 100 for target=%d starting=%d current=%d", progress, c.target, c.starting, c.current)
	}
}
