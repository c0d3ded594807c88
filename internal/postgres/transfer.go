package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/myke-awoniran/tally/pkg/logger"
)

// ExecuteTransfer commits the transfer unit: one transaction row, one
// withdrawal, one deposit, a credit/debit ledger entry pair and both
// projection updates, all-or-nothing. Both user_asset rows are locked in
// ascending id order so concurrent transfers over the same accounts cannot
// deadlock, and the sender balance is re-checked under the lock.
func (p *Postgres) ExecuteTransfer(ctx context.Context, plan domain.TransferPlan) (string, error) {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("error starting transaction: %w", err)
	}

	fromBalance, toBalance, err := lockAccounts(ctx, tx, plan.From.ID, plan.To.ID)
	if err != nil {
		rollback(tx)
		return "", err
	}

	if fromBalance < plan.Amount {
		rollback(tx)
		return "", domain.ErrInsufficientBalance
	}

	fromNext := fromBalance - plan.Amount
	toNext := toBalance + plan.Amount

	metadata, err := marshalMetadata(plan.Metadata)
	if err != nil {
		rollback(tx)
		return "", err
	}

	txnID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, reference, user_id, asset_id, status, amount, fee, total_amount, clerk_type, type, reason, description, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, 0, $6, $7, $8, $9, $10, $11)`,
		txnID, plan.Reference, plan.From.UserID, plan.Asset.ID, domain.StatusSuccess,
		plan.Amount, domain.ClerkDebit, plan.Type, plan.Reason, plan.Description, metadata,
	)
	if err != nil {
		rollback(tx)
		return "", fmt.Errorf("error creating transaction: %w", mapUnitError(err))
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO withdrawals (id, user_id, asset_id, transaction_id, amount, fee, status, reference, destination, metadata)
		 VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9)`,
		uuid.NewString(), plan.From.UserID, plan.Asset.ID, txnID,
		plan.Amount, domain.StatusSuccess, plan.Reference, plan.To.Email, metadata,
	)
	if err != nil {
		rollback(tx)
		return "", fmt.Errorf("error creating withdrawal: %w", mapUnitError(err))
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO deposits (id, user_id, asset_id, transaction_id, amount, status, reference, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.NewString(), plan.To.UserID, plan.Asset.ID, txnID,
		plan.Amount, domain.StatusSuccess, plan.Reference, metadata,
	)
	if err != nil {
		rollback(tx)
		return "", fmt.Errorf("error creating deposit: %w", mapUnitError(err))
	}

	err = insertLedgerEntry(ctx, tx, domain.LedgerEntry{
		AssetID:          plan.Asset.ID,
		UserID:           plan.To.UserID,
		TransactionID:    txnID,
		ClerkType:        domain.ClerkCredit,
		EntryType:        plan.Type,
		AvailableDelta:   plan.Amount,
		AvailableBalance: toNext,
		PendingDelta:     0,
		PendingBalance:   plan.To.PendingBalance,
	})
	if err != nil {
		rollback(tx)
		return "", err
	}

	err = insertLedgerEntry(ctx, tx, domain.LedgerEntry{
		AssetID:          plan.Asset.ID,
		UserID:           plan.From.UserID,
		TransactionID:    txnID,
		ClerkType:        domain.ClerkDebit,
		EntryType:        plan.Type,
		AvailableDelta:   -plan.Amount,
		AvailableBalance: fromNext,
		PendingDelta:     0,
		PendingBalance:   plan.From.PendingBalance,
	})
	if err != nil {
		rollback(tx)
		return "", err
	}

	for _, upd := range []struct {
		id   string
		next int64
	}{
		{plan.From.ID, fromNext},
		{plan.To.ID, toNext},
	} {
		_, err = tx.ExecContext(ctx,
			"UPDATE user_assets SET available_balance = $1 WHERE id = $2", upd.next, upd.id)
		if err != nil {
			rollback(tx)
			return "", fmt.Errorf("error updating projection: %w", mapUnitError(err))
		}
	}

	if err = tx.Commit(); err != nil {
		rollback(tx)
		logger.Log.Error("error committing transfer",
			logger.String("reference", plan.Reference), logger.Error(err))
		return "", fmt.Errorf("error committing transfer: %w", mapUnitError(err))
	}

	return txnID, nil
}

// lockAccounts acquires FOR UPDATE locks on both accounts in ascending row-id
// order and returns their fresh available balances.
func lockAccounts(ctx context.Context, tx *sql.Tx, fromID, toID string) (int64, int64, error) {
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}

	balances := make(map[string]int64, 2)
	for _, id := range []string{first, second} {
		var available int64
		err := tx.QueryRowContext(ctx,
			"SELECT available_balance FROM user_assets WHERE id = $1 FOR UPDATE", id).
			Scan(&available)
		if err != nil {
			return 0, 0, fmt.Errorf("error locking account: %w", mapUnitError(err))
		}
		balances[id] = available
	}

	return balances[fromID], balances[toID], nil
}

func insertLedgerEntry(ctx context.Context, tx *sql.Tx, e domain.LedgerEntry) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO ledger_entries (id, asset_id, user_id, transaction_id, clerk_type, entry_type, available_delta, available_balance, pending_delta, pending_balance)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.NewString(), e.AssetID, e.UserID, e.TransactionID, e.ClerkType, e.EntryType,
		e.AvailableDelta, e.AvailableBalance, e.PendingDelta, e.PendingBalance,
	)
	if err != nil {
		return fmt.Errorf("error appending ledger entry: %w", mapUnitError(err))
	}

	return nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return nil, nil
	}

	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("error encoding metadata: %w", err)
	}

	return raw, nil
}
