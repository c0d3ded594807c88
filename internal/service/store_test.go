package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/myke-awoniran/tally/internal/domain"
)

// memStore is an in-memory stand-in for the transactional store. Its
// ExecuteTransfer mirrors the real unit: it re-checks the sender balance
// against current state, appends the credit/debit entry pair and updates the
// cached projections, all-or-nothing.
type memStore struct {
	assets   map[domain.AssetType]domain.Asset
	accounts map[string]*domain.UserAsset

	entries      []domain.LedgerEntry
	transactions map[string]domain.Transaction
	deposits     []domain.Deposit
	withdrawals  []domain.Withdrawal

	// conflicts injects this many retryable failures before a transfer
	// is allowed through.
	conflicts int

	seq int64
	now time.Time
}

func newMemStore() *memStore {
	return &memStore{
		assets:       map[domain.AssetType]domain.Asset{},
		accounts:     map[string]*domain.UserAsset{},
		transactions: map[string]domain.Transaction{},
		now:          time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) addAsset(assetType domain.AssetType, symbol string, activity domain.ActivityStatus) domain.Asset {
	asset := domain.Asset{
		ID:                 uuid.NewString(),
		Symbol:             symbol,
		AssetType:          assetType,
		WithdrawalActivity: activity,
	}
	m.assets[assetType] = asset

	return asset
}

func (m *memStore) addAccount(email string, asset domain.Asset, available int64) *domain.UserAsset {
	account := &domain.UserAsset{
		ID:                 uuid.NewString(),
		UserID:             uuid.NewString(),
		Email:              email,
		AssetID:            asset.ID,
		AvailableBalance:   available,
		WithdrawalActivity: domain.ActivityActive,
		DepositActivity:    domain.ActivityActive,
	}
	m.accounts[account.ID] = account

	return account
}

func (m *memStore) AssetByType(_ context.Context, assetType domain.AssetType) (*domain.Asset, error) {
	asset, ok := m.assets[assetType]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}

	copied := asset
	return &copied, nil
}

func (m *memStore) UserAccount(_ context.Context, email, assetID string) (*domain.UserAsset, error) {
	for _, account := range m.accounts {
		if account.Email == email && account.AssetID == assetID {
			copied := *account
			return &copied, nil
		}
	}

	return nil, domain.ErrAccountNotFound
}

func (m *memStore) ExecuteTransfer(_ context.Context, plan domain.TransferPlan) (string, error) {
	if m.conflicts > 0 {
		m.conflicts--
		return "", domain.ErrTransferConflict
	}

	from := m.accounts[plan.From.ID]
	to := m.accounts[plan.To.ID]
	if from == nil || to == nil {
		return "", domain.ErrAccountNotFound
	}

	if from.AvailableBalance < plan.Amount {
		return "", domain.ErrInsufficientBalance
	}

	fromNext := from.AvailableBalance - plan.Amount
	toNext := to.AvailableBalance + plan.Amount

	txnID := uuid.NewString()
	m.transactions[txnID] = domain.Transaction{
		ID:          txnID,
		Reference:   plan.Reference,
		UserID:      plan.From.UserID,
		AssetID:     plan.Asset.ID,
		Status:      domain.StatusSuccess,
		Amount:      plan.Amount,
		TotalAmount: plan.Amount,
		ClerkType:   domain.ClerkDebit,
		Type:        plan.Type,
		Reason:      plan.Reason,
		Description: plan.Description,
		Metadata:    plan.Metadata,
	}
	m.withdrawals = append(m.withdrawals, domain.Withdrawal{
		ID:            uuid.NewString(),
		UserID:        plan.From.UserID,
		AssetID:       plan.Asset.ID,
		TransactionID: txnID,
		Amount:        plan.Amount,
		Status:        domain.StatusSuccess,
		Reference:     plan.Reference,
		Destination:   plan.To.Email,
	})
	m.deposits = append(m.deposits, domain.Deposit{
		ID:            uuid.NewString(),
		UserID:        plan.To.UserID,
		AssetID:       plan.Asset.ID,
		TransactionID: txnID,
		Amount:        plan.Amount,
		Status:        domain.StatusSuccess,
		Reference:     plan.Reference,
	})

	m.appendEntry(domain.LedgerEntry{
		AssetID:          plan.Asset.ID,
		UserID:           to.UserID,
		TransactionID:    txnID,
		ClerkType:        domain.ClerkCredit,
		EntryType:        plan.Type,
		AvailableDelta:   plan.Amount,
		AvailableBalance: toNext,
		PendingBalance:   to.PendingBalance,
	})
	m.appendEntry(domain.LedgerEntry{
		AssetID:          plan.Asset.ID,
		UserID:           from.UserID,
		TransactionID:    txnID,
		ClerkType:        domain.ClerkDebit,
		EntryType:        plan.Type,
		AvailableDelta:   -plan.Amount,
		AvailableBalance: fromNext,
		PendingBalance:   from.PendingBalance,
	})

	from.AvailableBalance = fromNext
	to.AvailableBalance = toNext

	return txnID, nil
}

func (m *memStore) appendEntry(e domain.LedgerEntry) {
	m.seq++
	e.ID = uuid.NewString()
	e.Seq = m.seq
	e.CreatedAt = m.now.Add(time.Duration(m.seq) * time.Millisecond)
	m.entries = append(m.entries, e)
}

func (m *memStore) LedgerEntries(_ context.Context) ([]domain.LedgerEntry, error) {
	return append([]domain.LedgerEntry(nil), m.entries...), nil
}

func (m *memStore) UpdateBalances(_ context.Context, userID, assetID string, available, pending int64) error {
	for _, account := range m.accounts {
		if account.UserID == userID && account.AssetID == assetID {
			account.AvailableBalance = available
			account.PendingBalance = pending
			return nil
		}
	}

	return fmt.Errorf("no account for user %s asset %s", userID, assetID)
}

func (m *memStore) SumDeltas(_ context.Context) (int64, int64, error) {
	var available, pending int64
	for _, e := range m.entries {
		available += e.AvailableDelta
		pending += e.PendingDelta
	}

	return available, pending, nil
}

func (m *memStore) UserAssetByID(_ context.Context, id string) (*domain.UserAsset, error) {
	account, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	copied := *account
	return &copied, nil
}

func (m *memStore) EntriesByAccount(_ context.Context, accountID string) ([]domain.LedgerEntry, error) {
	account, ok := m.accounts[accountID]
	if !ok {
		return nil, nil
	}

	var entries []domain.LedgerEntry
	for _, e := range m.entries {
		if e.UserID == account.UserID && e.AssetID == account.AssetID {
			entries = append(entries, e)
		}
	}

	return entries, nil
}

func (m *memStore) EntriesByTransaction(_ context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	for _, e := range m.entries {
		if e.TransactionID == transactionID {
			entries = append(entries, e)
		}
	}

	return entries, nil
}

func (m *memStore) recordCount() int {
	return len(m.transactions) + len(m.deposits) + len(m.withdrawals) + len(m.entries)
}
