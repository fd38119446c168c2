package postgres

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS accounts (
    id            UUID PRIMARY KEY,
    name          TEXT NOT NULL,
    balance       DECIMAL NOT NULL DEFAULT 0,
    account_type  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS goals (
    id                UUID PRIMARY KEY,
    name              TEXT NOT NULL,
    target_amount     DECIMAL NOT NULL,
    target_date       TIMESTAMPTZ,
    starting_balance  DECIMAL NOT NULL DEFAULT 0,
    icon              TEXT NOT NULL DEFAULT '',
    color             TEXT NOT NULL DEFAULT '',
    is_active         BOOLEAN NOT NULL DEFAULT TRUE,
    is_completed      BOOLEAN NOT NULL DEFAULT FALSE,
    completed_at      TIMESTAMPTZ,
    created_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS allocation_rules (
    id          UUID PRIMARY KEY,
    goal_id     UUID NOT NULL REFERENCES goals(id),
    account_id  UUID NOT NULL,
    kind        TEXT NOT NULL,
    value       DECIMAL NOT NULL,
    position    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_allocation_rules_goal ON allocation_rules(goal_id);
`

// EnsureSchema creates the tables this service needs if they do not
// exist yet. Real migration tooling is out of scope; this only covers
// first boot against an empty database.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
