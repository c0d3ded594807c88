package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/myke-awoniran/tally/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		registered_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS assets (
		id UUID PRIMARY KEY,
		symbol TEXT NOT NULL,
		asset_type TEXT NOT NULL UNIQUE,
		withdrawal_activity TEXT NOT NULL DEFAULT 'ACTIVE'
	)`,
	`CREATE TABLE IF NOT EXISTS user_assets (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users (id),
		asset_id UUID NOT NULL REFERENCES assets (id),
		available_balance BIGINT NOT NULL DEFAULT 0,
		pending_balance BIGINT NOT NULL DEFAULT 0,
		withdrawal_activity TEXT NOT NULL DEFAULT 'ACTIVE',
		deposit_activity TEXT NOT NULL DEFAULT 'ACTIVE',
		UNIQUE (user_id, asset_id)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		user_id UUID NOT NULL REFERENCES users (id),
		asset_id UUID NOT NULL REFERENCES assets (id),
		status TEXT NOT NULL,
		amount BIGINT NOT NULL,
		fee BIGINT NOT NULL,
		total_amount BIGINT NOT NULL,
		clerk_type TEXT NOT NULL,
		type TEXT NOT NULL,
		reason TEXT NOT NULL,
		description TEXT,
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS deposits (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users (id),
		asset_id UUID NOT NULL REFERENCES assets (id),
		transaction_id UUID NOT NULL REFERENCES transactions (id),
		amount BIGINT NOT NULL,
		status TEXT NOT NULL,
		reference TEXT NOT NULL,
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS withdrawals (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users (id),
		asset_id UUID NOT NULL REFERENCES assets (id),
		transaction_id UUID NOT NULL REFERENCES transactions (id),
		amount BIGINT NOT NULL,
		fee BIGINT NOT NULL,
		status TEXT NOT NULL,
		reference TEXT NOT NULL,
		destination TEXT NOT NULL,
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_entries (
		seq BIGSERIAL PRIMARY KEY,
		id UUID NOT NULL UNIQUE,
		asset_id UUID NOT NULL REFERENCES assets (id),
		user_id UUID NOT NULL REFERENCES users (id),
		transaction_id UUID NOT NULL REFERENCES transactions (id),
		clerk_type TEXT NOT NULL,
		entry_type TEXT NOT NULL,
		available_delta BIGINT NOT NULL,
		available_balance BIGINT NOT NULL,
		pending_delta BIGINT NOT NULL,
		pending_balance BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_account
		ON ledger_entries (user_id, asset_id, created_at, seq)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_transaction
		ON ledger_entries (transaction_id)`,
}

func (p *Postgres) Bootstrap(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := p.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error creating schema: %w", err)
		}
	}

	return nil
}

// SeedDefaults provisions the GBP asset and two funded demo accounts so the
// transfer surface is usable out of the box. Idempotent.
func (p *Postgres) SeedDefaults(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx,
		`INSERT INTO assets (id, symbol, asset_type) VALUES ($1, 'GBP', $2)
		 ON CONFLICT (asset_type) DO NOTHING`,
		uuid.NewString(), domain.AssetPound,
	)
	if err != nil {
		return fmt.Errorf("error seeding asset: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing demo password: %w", err)
	}

	demo := []struct {
		email   string
		balance int64
	}{
		{"user1@email.com", 2000000},
		{"user2@email.com", 1000000},
	}

	for _, d := range demo {
		_, err = p.DB.ExecContext(ctx,
			`INSERT INTO users (id, email, password) VALUES ($1, $2, $3)
			 ON CONFLICT (email) DO NOTHING`,
			uuid.NewString(), d.email, string(hashed),
		)
		if err != nil {
			return fmt.Errorf("error seeding user %s: %w", d.email, err)
		}

		_, err = p.DB.ExecContext(ctx,
			`INSERT INTO user_assets (id, user_id, asset_id, available_balance, pending_balance)
			 SELECT $1, u.id, a.id, $2, 0
			 FROM users u, assets a
			 WHERE u.email = $3 AND a.asset_type = $4
			 ON CONFLICT (user_id, asset_id) DO NOTHING`,
			uuid.NewString(), d.balance, d.email, domain.AssetPound,
		)
		if err != nil {
			return fmt.Errorf("error seeding account %s: %w", d.email, err)
		}
	}

	return nil
}
