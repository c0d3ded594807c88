package service

import (
	"context"

	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/myke-awoniran/tally/pkg/logger"
)

type replayRepository interface {
	LedgerEntries(ctx context.Context) ([]domain.LedgerEntry, error)
	UpdateBalances(ctx context.Context, userID, assetID string, available, pending int64) error
}

type ReplayService struct {
	repo replayRepository
}

func NewReplayService(repo replayRepository) *ReplayService {
	return &ReplayService{
		repo: repo,
	}
}

// Replay rebuilds every account balance from zero by folding the whole ledger
// in creation order, then rewrites the cached projections to match. Running
// it twice with no new entries yields identical output and identical state.
func (s *ReplayService) Replay(ctx context.Context) (map[domain.AccountKey]domain.Balance, error) {
	entries, err := s.repo.LedgerEntries(ctx)
	if err != nil {
		return nil, err
	}

	balances := make(map[domain.AccountKey]domain.Balance)
	var order []domain.AccountKey
	for _, e := range entries {
		key := domain.AccountKey{UserID: e.UserID, AssetID: e.AssetID}
		b, seen := balances[key]
		if !seen {
			order = append(order, key)
		}
		b.Available += e.AvailableDelta
		b.Pending += e.PendingDelta
		balances[key] = b
	}

	for _, key := range order {
		b := balances[key]
		if err := s.repo.UpdateBalances(ctx, key.UserID, key.AssetID, b.Available, b.Pending); err != nil {
			return nil, err
		}
	}

	logger.Log.Info("ledger replay complete",
		logger.Int("entries", len(entries)),
		logger.Int("accounts", len(balances)),
	)

	return balances, nil
}
