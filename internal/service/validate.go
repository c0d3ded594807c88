package service

import (
	"context"
	"fmt"

	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/myke-awoniran/tally/pkg/logger"
)

type ledgerAggregator interface {
	SumDeltas(ctx context.Context) (available, pending int64, err error)
}

type ValidatorService struct {
	repo ledgerAggregator
}

func NewValidatorService(repo ledgerAggregator) *ValidatorService {
	return &ValidatorService{
		repo: repo,
	}
}

// Validate asserts the double-entry conservation law: the sums of available
// and pending deltas over the entire ledger must both be zero. A violation is
// data corruption or a write-path bug; it is reported, never repaired.
func (s *ValidatorService) Validate(ctx context.Context) error {
	available, pending, err := s.repo.SumDeltas(ctx)
	if err != nil {
		return err
	}

	if available != 0 {
		logger.Log.Error("ledger invariant violated", logger.Int64("available_total", available))
		return fmt.Errorf("%w: available delta sum is %d", domain.ErrLedgerInvariant, available)
	}

	if pending != 0 {
		logger.Log.Error("ledger invariant violated", logger.Int64("pending_total", pending))
		return fmt.Errorf("%w: pending delta sum is %d", domain.ErrLedgerInvariant, pending)
	}

	return nil
}
