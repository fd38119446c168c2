// Package engine implements the goal allocation and pacing computations.
// Every function is a pure function of immutable snapshots: no I/O, no
// hidden state, identical inputs always produce identical outputs.
// Recomputation is triggered by callers after they observe a data change;
// the engine holds no subscription machinery and needs no locks.
package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zack-schrag/treeline-goals/internal/domain"
)

// ResolveCurrentAmount derives a goal's current saved amount from the
// account snapshot.
// Logic:
//  1. A goal with no allocation rules is manually tracked: return its
//     starting balance unchanged
//  2. percentage rules contribute balance * value / 100
//  3. fixed rules contribute min(value, balance) - a fixed claim can
//     never report money that is not present in the account
//  4. Rules referencing an account missing from the snapshot contribute
//     zero (silently skipped, no error)
func ResolveCurrentAmount(goal domain.Goal, accounts map[uuid.UUID]domain.Account) decimal.Decimal {
	if len(goal.Allocations) == 0 {
		return goal.StartingBalance
	}

	total := decimal.Zero
	for _, rule := range goal.Allocations {
		account, ok := accounts[rule.AccountID]
		if !ok {
			continue
		}

		switch rule.Kind {
		case domain.AllocationKindPercentage:
			contribution := account.Balance.Mul(rule.Value).Div(decimal.NewFromInt(100))
			total = total.Add(contribution)
		case domain.AllocationKindFixed:
			total = total.Add(decimal.Min(rule.Value, account.Balance))
		}
	}

	return total
}

// ResolveAll recomputes the derived goal-balance mapping wholesale.
// Returns a map of goal ID to current saved amount.
func ResolveAll(goals []*domain.Goal, accounts map[uuid.UUID]domain.Account) map[uuid.UUID]decimal.Decimal {
	balances := make(map[uuid.UUID]decimal.Decimal, len(goals))
	for _, goal := range goals {
		balances[goal.ID] = ResolveCurrentAmount(*goal, accounts)
	}
	return balances
}

// AccountIndex builds the lookup map the resolver consumes from a list
// of account snapshots.
func AccountIndex(accounts []*domain.Account) map[uuid.UUID]domain.Account {
	index := make(map[uuid.UUID]domain.Account, len(accounts))
	for _, account := range accounts {
		index[account.ID] = *account
	}
	return index
}
