package service

import (
	"context"

	"github.com/myke-awoniran/tally/internal/domain"
)

type auditRepository interface {
	UserAssetByID(ctx context.Context, id string) (*domain.UserAsset, error)
	EntriesByAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)
	EntriesByTransaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)
}

type AuditService struct {
	repo auditRepository
}

func NewAuditService(repo auditRepository) *AuditService {
	return &AuditService{
		repo: repo,
	}
}

// Account returns every ledger entry for one user-asset, oldest first. The
// account must exist; an existing account with no history yields an empty
// slice, and callers decide whether that is an error.
func (s *AuditService) Account(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	if _, err := s.repo.UserAssetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return s.repo.EntriesByAccount(ctx, accountID)
}

// Transaction returns the entries recorded for one transfer, normally exactly
// a credit/debit pair, oldest first.
func (s *AuditService) Transaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	return s.repo.EntriesByTransaction(ctx, transactionID)
}
