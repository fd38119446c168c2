package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGoal_Validate(t *testing.T) {
	accountID := uuid.New()

	tests := []struct {
		name    string
		goal    Goal
		wantErr bool
		errMsg  string
	}{
		{
			name: "Goal without name should fail",
			goal: Goal{
				ID:           uuid.New(),
				TargetAmount: decimal.NewFromInt(1000),
			},
			wantErr: true,
			errMsg:  "goal name cannot be empty",
		},
		{
			name: "Goal with zero target should fail",
			goal: Goal{
				ID:           uuid.New(),
				Name:         "Zero Target",
				TargetAmount: decimal.Zero,
			},
			wantErr: true,
			errMsg:  "goal target amount must be positive",
		},
		{
			name: "Goal with no allocation rules should pass",
			goal: Goal{
				ID:           uuid.New(),
				Name:         "Manual Goal",
				TargetAmount: decimal.NewFromInt(1000),
			},
			wantErr: false,
		},
		{
			name: "Unknown allocation kind should fail",
			goal: Goal{
				ID:           uuid.New(),
				Name:         "Bad Kind",
				TargetAmount: decimal.NewFromInt(1000),
				Allocations: []AllocationRule{
					{ID: uuid.New(), AccountID: accountID, Kind: "ratio", Value: decimal.NewFromInt(1)},
				},
			},
			wantErr: true,
			errMsg:  "allocation kind must be percentage or fixed",
		},
		{
			name: "Percentage above 100 should fail",
			goal: Goal{
				ID:           uuid.New(),
				Name:         "Over Percent",
				TargetAmount: decimal.NewFromInt(1000),
				Allocations: []AllocationRule{
					{ID: uuid.New(), AccountID: accountID, Kind: AllocationKindPercentage, Value: decimal.NewFromInt(150)},
				},
			},
			wantErr: true,
			errMsg:  "percentage allocation value must be between 0 and 100",
		},
		{
			name: "Negative percentage should fail",
			goal: Goal{
				ID:           uuid.New(),
				Name:         "Negative Percent",
				TargetAmount: decimal.NewFromInt(1000),
				Allocations: []AllocationRule{
					{ID: uuid.New(), AccountID: accountID, Kind: AllocationKindPercentage, Value: decimal.NewFromInt(-5)},
				},
			},
			wantErr: true,
			errMsg:  "percentage allocation value must be between 0 and 100",
		},
		{
			name: "Negative fixed value should fail",
			goal: Goal{
				ID:           uuid.New(),
				Name:         "Negative Fixed",
				TargetAmount: decimal.NewFromInt(1000),
				Allocations: []AllocationRule{
					{ID: uuid.New(), AccountID: accountID, Kind: AllocationKindFixed, Value: decimal.NewFromInt(-100)},
				},
			},
			wantErr: true,
			errMsg:  "fixed allocation value must be non-negative",
		},
		{
			name: "Duplicate account reference should fail",
			goal: Goal{
				ID:           uuid.New(),
				Name:         "Duplicate Account",
				TargetAmount: decimal.NewFromInt(1000),
				Allocations: []AllocationRule{
					{ID: uuid.New(), AccountID: accountID, Kind: AllocationKindPercentage, Value: decimal.NewFromInt(10)},
					{ID: uuid.New(), AccountID: accountID, Kind: AllocationKindFixed, Value: decimal.NewFromInt(50)},
				},
			},
			wantErr: true,
			errMsg:  "goal cannot have two allocation rules for the same account",
		},
		{
			name: "Valid mixed allocations should pass",
			goal: Goal{
				ID:           uuid.New(),
				Name:         "Valid Goal",
				TargetAmount: decimal.NewFromInt(1000),
				Allocations: []AllocationRule{
					{ID: uuid.New(), AccountID: accountID, Kind: AllocationKindPercentage, Value: decimal.NewFromInt(50)},
					{ID: uuid.New(), AccountID: uuid.New(), Kind: AllocationKindFixed, Value: decimal.NewFromInt(200)},
				},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.goal.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGoal_CompleteAndReopen(t *testing.T) {
	goal := Goal{
		ID:           uuid.New(),
		Name:         "Lifecycle",
		TargetAmount: decimal.NewFromInt(1000),
	}

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	goal.Complete(now)

	assert.True(t, goal.IsCompleted)
	assert.NotNil(t, goal.CompletedAt)
	assert.Equal(t, now, *goal.CompletedAt)

	goal.Reopen()

	assert.False(t, goal.IsCompleted)
	assert.Nil(t, goal.CompletedAt)
}
