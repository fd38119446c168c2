package httpapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zack-schrag/treeline-goals/internal/domain"
	"github.com/zack-schrag/treeline-goals/internal/usecase/tracker"
)

// Decimal amounts cross the wire as strings so no precision is lost in
// JSON number handling.

type accountPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Balance     string `json:"balance"`
	AccountType string `json:"account_type,omitempty"`
}

type syncAccountsRequest struct {
	Accounts []accountPayload `json:"accounts"`
}

type allocationPayload struct {
	ID        string `json:"id,omitempty"`
	AccountID string `json:"account_id"`
	Kind      string `json:"kind"`
	Value     string `json:"value"`
}

type goalRequest struct {
	Name         string              `json:"name"`
	TargetAmount string              `json:"target_amount"`
	TargetDate   *string             `json:"target_date,omitempty"` // RFC 3339
	Allocations  []allocationPayload `json:"allocations"`
	// InitialAmount seeds a manually tracked goal (create only)
	InitialAmount string `json:"initial_amount,omitempty"`
	// StartingBalance replaces the stored value on update
	StartingBalance string `json:"starting_balance,omitempty"`
	Icon            string `json:"icon,omitempty"`
	Color           string `json:"color,omitempty"`
	IsActive        *bool  `json:"is_active,omitempty"`
}

type goalResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	TargetAmount    string              `json:"target_amount"`
	TargetDate      *string             `json:"target_date"`
	StartingBalance string              `json:"starting_balance"`
	Allocations     []allocationPayload `json:"allocations"`
	Icon            string              `json:"icon,omitempty"`
	Color           string              `json:"color,omitempty"`
	IsActive        bool                `json:"is_active"`
	IsCompleted     bool                `json:"is_completed"`
	CompletedAt     *string             `json:"completed_at"`
	CreatedAt       string              `json:"created_at"`
}

type pacingResponse struct {
	DaysRemaining *int    `json:"days_remaining"`
	MonthlyNeeded *string `json:"monthly_needed"`
	OnTrack       *bool   `json:"on_track"`
}

type statusResponse struct {
	Goal          goalResponse   `json:"goal"`
	CurrentAmount string         `json:"current_amount"`
	Progress      string         `json:"progress"`
	Remaining     string         `json:"remaining"`
	Pacing        pacingResponse `json:"pacing"`
}

type statusListResponse struct {
	Goals []statusResponse `json:"goals"`
	Total int              `json:"total"`
}

type accountListResponse struct {
	Accounts []accountPayload `json:"accounts"`
	Total    int              `json:"total"`
}

type overviewResponse struct {
	TotalSaved   string            `json:"total_saved"`
	TotalTarget  string            `json:"total_target"`
	GoalBalances map[string]string `json:"goal_balances"`
}

func parseAccount(p accountPayload) (domain.Account, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("invalid account id format: %w", err)
	}

	balance, err := decimal.NewFromString(p.Balance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("invalid balance format: %w", err)
	}

	return domain.Account{
		ID:          id,
		Name:        p.Name,
		Balance:     balance,
		AccountType: domain.AccountType(p.AccountType),
	}, nil
}

func parseAllocations(payloads []allocationPayload) ([]tracker.AllocationInput, error) {
	allocations := make([]tracker.AllocationInput, 0, len(payloads))
	for _, p := range payloads {
		accountID, err := uuid.Parse(p.AccountID)
		if err != nil {
			return nil, fmt.Errorf("invalid allocation account_id format: %w", err)
		}

		value, err := decimal.NewFromString(p.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid allocation value format: %w", err)
		}

		allocations = append(allocations, tracker.AllocationInput{
			AccountID: accountID,
			Kind:      domain.AllocationKind(p.Kind),
			Value:     value,
		})
	}
	return allocations, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date format (want RFC 3339): %w", err)
	}
	return &t, nil
}

func parseOptionalAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format: %w", err)
	}
	return amount, nil
}

func accountToPayload(a *domain.Account) accountPayload {
	return accountPayload{
		ID:          a.ID.String(),
		Name:        a.Name,
		Balance:     a.Balance.String(),
		AccountType: string(a.AccountType),
	}
}

func goalToResponse(g domain.Goal) goalResponse {
	allocations := make([]allocationPayload, 0, len(g.Allocations))
	for _, rule := range g.Allocations {
		allocations = append(allocations, allocationPayload{
			ID:        rule.ID.String(),
			AccountID: rule.AccountID.String(),
			Kind:      string(rule.Kind),
			Value:     rule.Value.String(),
		})
	}

	return goalResponse{
		ID:              g.ID.String(),
		Name:            g.Name,
		TargetAmount:    g.TargetAmount.String(),
		TargetDate:      formatOptionalTime(g.TargetDate),
		StartingBalance: g.StartingBalance.String(),
		Allocations:     allocations,
		Icon:            g.Icon,
		Color:           g.Color,
		IsActive:        g.IsActive,
		IsCompleted:     g.IsCompleted,
		CompletedAt:     formatOptionalTime(g.CompletedAt),
		CreatedAt:       g.CreatedAt.Format(time.RFC3339),
	}
}

func statusToResponse(s *tracker.Status) statusResponse {
	pacing := pacingResponse{
		DaysRemaining: s.Pacing.DaysRemaining,
		OnTrack:       s.Pacing.OnTrack,
	}
	if s.Pacing.MonthlyNeeded != nil {
		monthly := s.Pacing.MonthlyNeeded.String()
		pacing.MonthlyNeeded = &monthly
	}

	return statusResponse{
		Goal:          goalToResponse(s.Goal),
		CurrentAmount: s.CurrentAmount.String(),
		Progress:      s.Progress.String(),
		Remaining:     s.Remaining.String(),
		Pacing:        pacing,
	}
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
