package service

import (
	"context"
	"errors"
	"testing"

	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAggregator struct {
	available int64
	pending   int64
	err       error
}

func (s stubAggregator) SumDeltas(context.Context) (int64, int64, error) {
	return s.available, s.pending, s.err
}

func TestValidateHoldsOnBalancedLedger(t *testing.T) {
	err := NewValidatorService(stubAggregator{}).Validate(context.Background())

	require.NoError(t, err)
}

func TestValidateDetectsAvailableImbalance(t *testing.T) {
	err := NewValidatorService(stubAggregator{available: 42}).Validate(context.Background())

	require.ErrorIs(t, err, domain.ErrLedgerInvariant)
	assert.Contains(t, err.Error(), "available delta sum is 42")
}

func TestValidateDetectsPendingImbalance(t *testing.T) {
	err := NewValidatorService(stubAggregator{pending: -7}).Validate(context.Background())

	require.ErrorIs(t, err, domain.ErrLedgerInvariant)
	assert.Contains(t, err.Error(), "pending delta sum is -7")
}

func TestValidatePropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection refused")

	err := NewValidatorService(stubAggregator{err: storeErr}).Validate(context.Background())

	require.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, domain.ErrLedgerInvariant)
}

func TestValidateAfterManyTransfers(t *testing.T) {
	store, _, _ := seededStore(t)
	svc := NewTransferService(store, testConfig())

	for _, amount := range []int64{10000, 999999, 250000} {
		_, err := svc.Withdraw(context.Background(), "user1@email.com", "user2@email.com", amount)
		require.NoError(t, err)
	}

	require.NoError(t, NewValidatorService(store).Validate(context.Background()))
}
