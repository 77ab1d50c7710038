package repository

import (
	"context"
	"database/sql"
)

// schema runs on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES members(id),
    period_month SMALLINT NOT NULL CHECK (period_month BETWEEN 1 AND 12),
    period_year SMALLINT NOT NULL CHECK (period_year BETWEEN 2000 AND 9999),
    amount NUMERIC(12, 2) NOT NULL CHECK (amount > 0),
    due_date DATE NOT NULL,
    registration_date TIMESTAMPTZ NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('PENDING', 'PAID', 'OVERDUE')),
    payment_method TEXT,
    receipt_path TEXT,
    notes TEXT,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_owner_period ON payments(owner_id, period_month, period_year);
CREATE INDEX IF NOT EXISTS idx_payments_status_registration ON payments(status, registration_date);
CREATE INDEX IF NOT EXISTS idx_payments_due_date ON payments(due_date);

CREATE TABLE IF NOT EXISTS registrations (
    id TEXT PRIMARY KEY,
    team_id TEXT NOT NULL,
    tournament_id TEXT NOT NULL,
    category_id TEXT NOT NULL,
    registered_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_registrations_team_category ON registrations(team_id, tournament_id, category_id);
`

func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
