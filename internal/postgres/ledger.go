package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/myke-awoniran/tally/pkg/logger"
)

const ledgerEntryColumns = `le.id, le.seq, le.asset_id, le.user_id, le.transaction_id,
	le.clerk_type, le.entry_type, le.available_delta, le.available_balance,
	le.pending_delta, le.pending_balance, le.created_at`

// LedgerEntries returns the whole ledger in creation order, oldest first.
func (p *Postgres) LedgerEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT `+ledgerEntryColumns+` FROM ledger_entries le ORDER BY le.created_at, le.seq`)
	if err != nil {
		return nil, fmt.Errorf("error fetching ledger entries: %w", err)
	}

	return scanLedgerEntries(rows)
}

// EntriesByAccount returns all entries for one user-asset, oldest first. An
// empty result is a valid outcome for an account with no history.
func (p *Postgres) EntriesByAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT `+ledgerEntryColumns+`
		 FROM ledger_entries le
		 JOIN user_assets ua ON ua.user_id = le.user_id AND ua.asset_id = le.asset_id
		 WHERE ua.id = $1
		 ORDER BY le.created_at, le.seq`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching account entries: %w", err)
	}

	return scanLedgerEntries(rows)
}

func (p *Postgres) EntriesByTransaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT `+ledgerEntryColumns+`
		 FROM ledger_entries le
		 WHERE le.transaction_id = $1
		 ORDER BY le.created_at, le.seq`,
		transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching transaction entries: %w", err)
	}

	return scanLedgerEntries(rows)
}

// SumDeltas aggregates available and pending deltas over the entire ledger.
func (p *Postgres) SumDeltas(ctx context.Context) (int64, int64, error) {
	var available, pending int64
	err := p.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(available_delta), 0), COALESCE(SUM(pending_delta), 0) FROM ledger_entries`).
		Scan(&available, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("error aggregating ledger deltas: %w", err)
	}

	return available, pending, nil
}

func scanLedgerEntries(rows *sql.Rows) ([]domain.LedgerEntry, error) {
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Log.Error("error closing rows", logger.Error(err))
		}
	}(rows)

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(&e.ID, &e.Seq, &e.AssetID, &e.UserID, &e.TransactionID,
			&e.ClerkType, &e.EntryType, &e.AvailableDelta, &e.AvailableBalance,
			&e.PendingDelta, &e.PendingBalance, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning ledger entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over ledger entries: %w", err)
	}

	return entries, nil
}
