package overview

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zack-schrag/treeline-goals/internal/domain"
)

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Upsert(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

// MockGoalRepository is a mock implementation of GoalRepository for testing
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGoalRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Goal, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

func TestGetOverview(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockGoalRepo := new(MockGoalRepository)
	service := NewService(mockAccountRepo, mockGoalRepo)

	accountID := uuid.New()
	linked := &domain.Goal{
		ID:           uuid.New(),
		Name:         "Linked",
		TargetAmount: decimal.NewFromInt(10000),
		IsActive:     true,
		Allocations: []domain.AllocationRule{
			{ID: uuid.New(), AccountID: accountID, Kind: domain.AllocationKindPercentage, Value: decimal.NewFromInt(50)},
		},
	}
	completed := &domain.Goal{
		ID:           uuid.New(),
		Name:         "Completed",
		TargetAmount: decimal.NewFromInt(500),
		IsActive:     true,
		IsCompleted:  true,
	}

	mockGoalRepo.On("List", ctx, true).Return([]*domain.Goal{linked, completed}, nil)
	mockAccountRepo.On("List", ctx).Return([]*domain.Account{
		{ID: accountID, Name: "Savings", Balance: decimal.NewFromInt(4000)},
	}, nil)

	result, err := service.GetOverview(ctx)

	require.NoError(t, err)
	// Completed goal resolves a balance but is excluded from the totals
	assert.True(t, result.TotalSaved.Equal(decimal.NewFromInt(2000)), "got %s", result.TotalSaved)
	assert.True(t, result.TotalTarget.Equal(decimal.NewFromInt(10000)), "got %s", result.TotalTarget)
	assert.Len(t, result.GoalBalances, 2)
	assert.True(t, result.GoalBalances[linked.ID].Equal(decimal.NewFromInt(2000)))
}

func TestGetOverview_GoalRepoError(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockGoalRepo := new(MockGoalRepository)
	service := NewService(mockAccountRepo, mockGoalRepo)

	mockGoalRepo.On("List", ctx, true).Return(nil, errors.New("db down"))

	_, err := service.GetOverview(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list active goals")
}
