package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS agents (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		verification_status TEXT NOT NULL DEFAULT 'waiting_for_doc',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS agents_verification_status_idx ON agents(verification_status)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		agent_id TEXT PRIMARY KEY REFERENCES agents(id) ON DELETE CASCADE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT,
		city TEXT,
		zip_code TEXT,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bank_details (
		agent_id TEXT PRIMARY KEY REFERENCES agents(id) ON DELETE CASCADE,
		iban TEXT NOT NULL,
		bic_swift TEXT NOT NULL,
		bank_name TEXT NOT NULL,
		account_holder TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS lead_sequences (
		year INT PRIMARY KEY,
		last INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		id TEXT PRIMARY KEY,
		agent_id TEXT NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
		client TEXT NOT NULL,
		address TEXT NOT NULL,
		status TEXT NOT NULL,
		submitted_at TIMESTAMPTZ NOT NULL,
		commission NUMERIC(12,2),
		description TEXT,
		email TEXT,
		phone TEXT,
		property_type TEXT,
		property_size INT
	)`,
	`CREATE INDEX IF NOT EXISTS leads_agent_id_idx ON leads(agent_id, submitted_at)`,
	`CREATE SEQUENCE IF NOT EXISTS transaction_seq`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		agent_id TEXT NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
		date TIMESTAMPTZ NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL,
		lead_id TEXT NOT NULL,
		property TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_agent_id_idx ON transactions(agent_id, date)`,
}

// EnsureSchema cria as tabelas que ainda não existem.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
