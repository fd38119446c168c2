package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zack-schrag/treeline-goals/internal/domain"
)

// goalRepository implements domain.GoalRepository
type goalRepository struct {
	db *DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *DB) domain.GoalRepository {
	return &goalRepository{db: db}
}

// GetByID retrieves a goal with its allocation rules
// This method joins goals and allocation_rules in two queries
func (r *goalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	query := `
		SELECT id, name, target_amount, target_date, starting_balance,
		       icon, color, is_active, is_completed, completed_at, created_at
		FROM goals
		WHERE id = $1
	`

	goal, err := scanGoal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("goal not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get goal by ID: %w", err)
	}

	rules, err := r.loadAllocationRules(ctx, goal.ID)
	if err != nil {
		return nil, err
	}
	goal.Allocations = rules

	return goal, nil
}

// Create creates a new goal together with its allocation rules
func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO goals (id, name, target_amount, target_date, starting_balance,
		                   icon, color, is_active, is_completed, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.ExecContext(ctx, query,
		goal.ID,
		goal.Name,
		goal.TargetAmount.String(),
		nullableTime(goal.TargetDate),
		goal.StartingBalance.String(),
		goal.Icon,
		goal.Color,
		goal.IsActive,
		goal.IsCompleted,
		nullableTime(goal.CompletedAt),
		goal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	if err := insertAllocationRules(ctx, tx, goal); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Update replaces a goal wholesale: the goal row is updated and the
// allocation rules are deleted and reinserted from the submitted value
func (r *goalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE goals
		SET name = $2, target_amount = $3, target_date = $4, starting_balance = $5,
		    icon = $6, color = $7, is_active = $8, is_completed = $9,
		    completed_at = $10
		WHERE id = $1
	`

	result, err := tx.ExecContext(ctx, query,
		goal.ID,
		goal.Name,
		goal.TargetAmount.String(),
		nullableTime(goal.TargetDate),
		goal.StartingBalance.String(),
		goal.Icon,
		goal.Color,
		goal.IsActive,
		goal.IsCompleted,
		nullableTime(goal.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("goal not found: %s", goal.ID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM allocation_rules WHERE goal_id = $1`, goal.ID); err != nil {
		return fmt.Errorf("failed to delete allocation rules: %w", err)
	}

	if err := insertAllocationRules(ctx, tx, goal); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes a goal and its allocation rules
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM allocation_rules WHERE goal_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete allocation rules: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("goal not found: %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// List retrieves goals with their allocation rules
func (r *goalRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Goal, error) {
	query := `
		SELECT id, name, target_amount, target_date, starting_balance,
		       icon, color, is_active, is_completed, completed_at, created_at
		FROM goals
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	for _, goal := range goals {
		rules, err := r.loadAllocationRules(ctx, goal.ID)
		if err != nil {
			return nil, err
		}
		goal.Allocations = rules
	}

	return goals, nil
}

// loadAllocationRules retrieves a goal's allocation rules in their
// stored order
func (r *goalRepository) loadAllocationRules(ctx context.Context, goalID uuid.UUID) ([]domain.AllocationRule, error) {
	query := `
		SELECT id, goal_id, account_id, kind, value
		FROM allocation_rules
		WHERE goal_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.AllocationRule
	for rows.Next() {
		var rule domain.AllocationRule
		var valueStr string

		err := rows.Scan(
			&rule.ID,
			&rule.GoalID,
			&rule.AccountID,
			&rule.Kind,
			&valueStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation rule: %w", err)
		}

		// Parse value (DECIMAL)
		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse allocation rule value: %w", err)
		}
		rule.Value = value

		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rules: %w", err)
	}

	return rules, nil
}

func insertAllocationRules(ctx context.Context, tx *sql.Tx, goal *domain.Goal) error {
	query := `
		INSERT INTO allocation_rules (id, goal_id, account_id, kind, value, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i, rule := range goal.Allocations {
		_, err := tx.ExecContext(ctx, query,
			rule.ID,
			goal.ID,
			rule.AccountID,
			string(rule.Kind),
			rule.Value.String(),
			i,
		)
		if err != nil {
			return fmt.Errorf("failed to create allocation rule: %w", err)
		}
	}

	return nil
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var goal domain.Goal
	var targetStr, startingStr string
	var targetDate, completedAt sql.NullTime

	err := row.Scan(
		&goal.ID,
		&goal.Name,
		&targetStr,
		&targetDate,
		&startingStr,
		&goal.Icon,
		&goal.Color,
		&goal.IsActive,
		&goal.IsCompleted,
		&completedAt,
		&goal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Parse target_amount and starting_balance (DECIMAL)
	target, err := decimal.NewFromString(targetStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target_amount: %w", err)
	}
	goal.TargetAmount = target

	starting, err := decimal.NewFromString(startingStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse starting_balance: %w", err)
	}
	goal.StartingBalance = starting

	if targetDate.Valid {
		t := targetDate.Time
		goal.TargetDate = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		goal.CompletedAt = &t
	}

	return &goal, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
