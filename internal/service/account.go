package service

import (
	"context"

	"github.com/myke-awoniran/tally/internal/domain"
)

type accountRepository interface {
	AssetByType(ctx context.Context, assetType domain.AssetType) (*domain.Asset, error)
	UserAccount(ctx context.Context, email, assetID string) (*domain.UserAsset, error)
}

type AccountService struct {
	repo accountRepository
}

func NewAccountService(repo accountRepository) *AccountService {
	return &AccountService{
		repo: repo,
	}
}

// Balance reads the cached projection for one holding. The ledger remains
// authoritative; Replay reconciles any drift.
func (s *AccountService) Balance(ctx context.Context, email string, assetType domain.AssetType) (*domain.Balance, error) {
	asset, err := s.repo.AssetByType(ctx, assetType)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.UserAccount(ctx, email, asset.ID)
	if err != nil {
		return nil, err
	}

	return &domain.Balance{
		Available: account.AvailableBalance,
		Pending:   account.PendingBalance,
	}, nil
}
