package service

import (
	"context"
	"strings"
	"testing"

	"github.com/myke-awoniran/tally/internal/config"
	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		MinTransferAmount:  10000,
		TransferMaxRetries: 3,
	}
}

func seededStore(t *testing.T) (*memStore, *domain.UserAsset, *domain.UserAsset) {
	t.Helper()

	store := newMemStore()
	gbp := store.addAsset(domain.AssetPound, "GBP", domain.ActivityActive)
	sender := store.addAccount("user1@email.com", gbp, 2000000)
	receiver := store.addAccount("user2@email.com", gbp, 1000000)

	return store, sender, receiver
}

func TestTransferPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		params  TransferParams
		prepare func(store *memStore, sender, receiver *domain.UserAsset)
		wantErr error
	}{
		{
			name: "non-positive amount",
			params: TransferParams{
				FromAccount: "user1@email.com", ToAccount: "user2@email.com",
				Amount: 0, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
			},
			wantErr: domain.ErrNonPositiveAmount,
		},
		{
			name: "same account",
			params: TransferParams{
				FromAccount: "user1@email.com", ToAccount: "user1@email.com",
				Amount: 100000, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
			},
			wantErr: domain.ErrSameAccount,
		},
		{
			name: "below minimum",
			params: TransferParams{
				FromAccount: "user1@email.com", ToAccount: "user2@email.com",
				Amount: 9999, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
			},
			wantErr: domain.ErrAmountBelowMinimum,
		},
		{
			name: "unknown asset",
			params: TransferParams{
				FromAccount: "user1@email.com", ToAccount: "user2@email.com",
				Amount: 100000, AssetType: domain.AssetEuro, TransferType: domain.TransactionWithdrawal,
			},
			wantErr: domain.ErrAssetNotFound,
		},
		{
			name: "asset suspended system-wide",
			params: TransferParams{
				FromAccount: "user1@email.com", ToAccount: "user2@email.com",
				Amount: 100000, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
			},
			prepare: func(store *memStore, _, _ *domain.UserAsset) {
				asset := store.assets[domain.AssetPound]
				asset.WithdrawalActivity = domain.ActivitySuspended
				store.assets[domain.AssetPound] = asset
			},
			wantErr: domain.ErrAssetSuspended,
		},
		{
			name: "unknown sender",
			params: TransferParams{
				FromAccount: "nobody@email.com", ToAccount: "user2@email.com",
				Amount: 100000, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "sender withdrawals suspended",
			params: TransferParams{
				FromAccount: "user1@email.com", ToAccount: "user2@email.com",
				Amount: 100000, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
			},
			prepare: func(_ *memStore, sender, _ *domain.UserAsset) {
				sender.WithdrawalActivity = domain.ActivitySuspended
			},
			wantErr: domain.ErrWithdrawalsSuspended,
		},
		{
			name: "insufficient balance",
			params: TransferParams{
				FromAccount: "user1@email.com", ToAccount: "user2@email.com",
				Amount: 100000, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
			},
			prepare: func(_ *memStore, sender, _ *domain.UserAsset) {
				sender.AvailableBalance = 50000
			},
			wantErr: domain.ErrInsufficientBalance,
		},
		{
			name: "unknown receiver",
			params: TransferParams{
				FromAccount: "user1@email.com", ToAccount: "nobody@email.com",
				Amount: 100000, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "receiver deposits suspended",
			params: TransferParams{
				FromAccount: "user1@email.com", ToAccount: "user2@email.com",
				Amount: 100000, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
			},
			prepare: func(_ *memStore, _, receiver *domain.UserAsset) {
				receiver.DepositActivity = domain.ActivitySuspended
			},
			wantErr: domain.ErrDepositsSuspended,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, sender, receiver := seededStore(t)
			if tt.prepare != nil {
				tt.prepare(store, sender, receiver)
			}
			svc := NewTransferService(store, testConfig())

			_, err := svc.Transfer(context.Background(), tt.params)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, store.recordCount(), "a rejected transfer must write nothing")
			assert.True(t, domain.IsValidationError(err) || domain.IsPolicyError(err))
		})
	}
}

func TestTransferSuccess(t *testing.T) {
	store, sender, receiver := seededStore(t)
	svc := NewTransferService(store, testConfig())

	transactionID, err := svc.Transfer(context.Background(), TransferParams{
		FromAccount:  "user1@email.com",
		ToAccount:    "user2@email.com",
		Amount:       100000,
		AssetType:    domain.AssetPound,
		TransferType: domain.TransactionWithdrawal,
		Metadata:     map[string]any{"reason": "rent"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, transactionID)

	assert.Equal(t, int64(1900000), sender.AvailableBalance)
	assert.Equal(t, int64(1100000), receiver.AvailableBalance)

	// Exactly five records: transaction, withdrawal, deposit, two entries.
	assert.Equal(t, 5, store.recordCount())

	txn := store.transactions[transactionID]
	assert.True(t, strings.HasPrefix(txn.Reference, "tally_"))
	assert.Equal(t, domain.StatusSuccess, txn.Status)
	assert.Equal(t, "rent", txn.Reason)
	assert.Equal(t, "p2p transfer", txn.Description)
	assert.Zero(t, txn.Fee)
	assert.Equal(t, txn.Amount, txn.TotalAmount)

	entries, err := store.EntriesByTransaction(context.Background(), transactionID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	credit, debit := entries[0], entries[1]
	assert.Equal(t, domain.ClerkCredit, credit.ClerkType)
	assert.Equal(t, int64(100000), credit.AvailableDelta)
	assert.Equal(t, int64(1100000), credit.AvailableBalance)
	assert.Equal(t, domain.ClerkDebit, debit.ClerkType)
	assert.Equal(t, int64(-100000), debit.AvailableDelta)
	assert.Equal(t, int64(1900000), debit.AvailableBalance)
	assert.True(t, !entries[1].CreatedAt.Before(entries[0].CreatedAt))

	require.NoError(t, NewValidatorService(store).Validate(context.Background()))
}

func TestTransferConservesValue(t *testing.T) {
	store, _, _ := seededStore(t)
	svc := NewTransferService(store, testConfig())
	validator := NewValidatorService(store)

	amounts := []int64{100000, 25000, 400000, 10000}
	from, to := "user1@email.com", "user2@email.com"
	for i, amount := range amounts {
		if i%2 == 1 {
			from, to = to, from
		}
		_, err := svc.Transfer(context.Background(), TransferParams{
			FromAccount: from, ToAccount: to,
			Amount: amount, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
		})
		require.NoError(t, err)
		require.NoError(t, validator.Validate(context.Background()))
	}

	available, pending, err := store.SumDeltas(context.Background())
	require.NoError(t, err)
	assert.Zero(t, available)
	assert.Zero(t, pending)
}

func TestTransferRetriesOnConflict(t *testing.T) {
	store, sender, _ := seededStore(t)
	store.conflicts = 2
	svc := NewTransferService(store, testConfig())

	transactionID, err := svc.Transfer(context.Background(), TransferParams{
		FromAccount: "user1@email.com", ToAccount: "user2@email.com",
		Amount: 100000, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, transactionID)
	assert.Equal(t, int64(1900000), sender.AvailableBalance)
}

func TestTransferConflictRetriesExhausted(t *testing.T) {
	store, _, _ := seededStore(t)
	store.conflicts = 5
	svc := NewTransferService(store, testConfig())

	_, err := svc.Transfer(context.Background(), TransferParams{
		FromAccount: "user1@email.com", ToAccount: "user2@email.com",
		Amount: 100000, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
	})

	require.ErrorIs(t, err, domain.ErrTransferConflict)
	assert.Zero(t, store.recordCount())
}

func TestWithdrawShorthand(t *testing.T) {
	store, sender, receiver := seededStore(t)
	svc := NewTransferService(store, testConfig())

	_, err := svc.Withdraw(context.Background(), "user1@email.com", "user2@email.com", 150000)

	require.NoError(t, err)
	assert.Equal(t, int64(1850000), sender.AvailableBalance)
	assert.Equal(t, int64(1150000), receiver.AvailableBalance)
	require.Len(t, store.withdrawals, 1)
	assert.Equal(t, "user2@email.com", store.withdrawals[0].Destination)
	assert.Equal(t, domain.TransactionWithdrawal, store.entries[0].EntryType)
}

func TestExecuteTransferRejectsStaleBalanceRead(t *testing.T) {
	store, sender, receiver := seededStore(t)

	// Validation-time read taken before a concurrent debit landed: the plan
	// carries the old balance, the store holds the drained one. The unit must
	// re-check under the lock and abort without writing anything.
	stale := *sender
	sender.AvailableBalance = 50000

	_, err := store.ExecuteTransfer(context.Background(), domain.TransferPlan{
		Reference: "tally_stale-read",
		Asset:     store.assets[domain.AssetPound],
		From:      stale,
		To:        *receiver,
		Amount:    100000,
		Type:      domain.TransactionWithdrawal,
	})

	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Zero(t, store.recordCount())
	assert.Equal(t, int64(50000), sender.AvailableBalance)
	assert.Equal(t, int64(1000000), receiver.AvailableBalance)
}

func TestFailedTransferLeavesReplayUnchanged(t *testing.T) {
	store, _, _ := seededStore(t)
	svc := NewTransferService(store, testConfig())
	replay := NewReplayService(store)

	_, err := svc.Transfer(context.Background(), TransferParams{
		FromAccount: "user1@email.com", ToAccount: "user2@email.com",
		Amount: 100000, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
	})
	require.NoError(t, err)

	before, err := replay.Replay(context.Background())
	require.NoError(t, err)

	// Sender has 1,900,000 left; asking for more must fail without a trace.
	_, err = svc.Transfer(context.Background(), TransferParams{
		FromAccount: "user1@email.com", ToAccount: "user2@email.com",
		Amount: 2000000, AssetType: domain.AssetPound, TransferType: domain.TransactionWithdrawal,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	after, err := replay.Replay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
