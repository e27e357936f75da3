package repository

import (
	"context"
	"time"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		franchise_id TEXT NOT NULL,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INTEGER NOT NULL DEFAULT 1,
		CONSTRAINT users_username_key UNIQUE (username),
		CONSTRAINT users_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS couriers (
		id TEXT PRIMARY KEY,
		franchise_id TEXT NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		contract_hours INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id TEXT PRIMARY KEY,
		franchise_id TEXT NOT NULL,
		plate TEXT NOT NULL,
		model TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INTEGER NOT NULL DEFAULT 1,
		CONSTRAINT vehicles_plate_key UNIQUE (franchise_id, plate)
	)`,
	`CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		franchise_id TEXT NOT NULL,
		courier_id TEXT REFERENCES couriers (id) ON DELETE SET NULL,
		vehicle_id TEXT REFERENCES vehicles (id) ON DELETE SET NULL,
		start_at TIMESTAMPTZ NOT NULL,
		end_at TIMESTAMPTZ NOT NULL,
		is_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		change_requested BOOLEAN NOT NULL DEFAULT FALSE,
		change_reason TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INTEGER NOT NULL DEFAULT 1,
		CONSTRAINT shifts_interval_check CHECK (end_at > start_at)
	)`,
	`CREATE INDEX IF NOT EXISTS shifts_franchise_window_idx
		ON shifts (franchise_id, start_at, end_at)`,
}

// EnsureSchema creates the tables a fresh database needs. Statements are
// idempotent so running it against an existing database is safe.
func (r *Repository) EnsureSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := r.dbpool.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
