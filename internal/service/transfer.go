package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/myke-awoniran/tally/internal/config"
	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/myke-awoniran/tally/pkg/logger"
)

const (
	defaultTransferNarrative = "p2p transfer"
	conflictRetryBackoff     = 50 * time.Millisecond
)

type TransferParams struct {
	FromAccount  string
	ToAccount    string
	Amount       int64
	AssetType    domain.AssetType
	TransferType domain.TransactionType
	Metadata     map[string]any
}

type transferRepository interface {
	AssetByType(ctx context.Context, assetType domain.AssetType) (*domain.Asset, error)
	UserAccount(ctx context.Context, email, assetID string) (*domain.UserAsset, error)
	ExecuteTransfer(ctx context.Context, plan domain.TransferPlan) (string, error)
}

type TransferService struct {
	repo   transferRepository
	config *config.Config
}

func NewTransferService(repo transferRepository, config *config.Config) *TransferService {
	return &TransferService{
		repo:   repo,
		config: config,
	}
}

// Transfer moves value between two accounts as a paired debit/credit. The
// whole attempt, validation included, is re-run on concurrency conflicts up
// to the configured bound; every other error surfaces immediately.
func (s *TransferService) Transfer(ctx context.Context, params TransferParams) (string, error) {
	for attempt := 1; ; attempt++ {
		transactionID, err := s.transfer(ctx, params)
		if err == nil {
			return transactionID, nil
		}

		if !errors.Is(err, domain.ErrTransferConflict) || attempt >= s.config.TransferMaxRetries {
			return "", err
		}

		logger.Log.Warn("transfer conflict, retrying",
			logger.String("from", params.FromAccount),
			logger.String("to", params.ToAccount),
			logger.Int("attempt", attempt),
		)
		time.Sleep(time.Duration(attempt) * conflictRetryBackoff)
	}
}

// Withdraw is the caller-surface shorthand: a POUND transfer recorded as a
// withdrawal on the sender side.
func (s *TransferService) Withdraw(ctx context.Context, senderAccount, receiverAccount string, amount int64) (string, error) {
	return s.Transfer(ctx, TransferParams{
		FromAccount:  senderAccount,
		ToAccount:    receiverAccount,
		Amount:       amount,
		AssetType:    domain.AssetPound,
		TransferType: domain.TransactionWithdrawal,
	})
}

func (s *TransferService) transfer(ctx context.Context, params TransferParams) (string, error) {
	if params.Amount <= 0 {
		return "", domain.ErrNonPositiveAmount
	}

	if params.FromAccount == params.ToAccount {
		return "", domain.ErrSameAccount
	}

	if params.Amount < s.config.MinTransferAmount {
		return "", fmt.Errorf("%w: minimum is %d minor units",
			domain.ErrAmountBelowMinimum, s.config.MinTransferAmount)
	}

	asset, err := s.repo.AssetByType(ctx, params.AssetType)
	if err != nil {
		return "", err
	}
	if asset.WithdrawalActivity == domain.ActivitySuspended {
		return "", domain.ErrAssetSuspended
	}

	from, err := s.repo.UserAccount(ctx, params.FromAccount, asset.ID)
	if err != nil {
		return "", err
	}
	if from.WithdrawalActivity != domain.ActivityActive {
		return "", fmt.Errorf("%w: contact support about your %s account",
			domain.ErrWithdrawalsSuspended, asset.Symbol)
	}

	if from.AvailableBalance < params.Amount {
		return "", domain.ErrInsufficientBalance
	}

	to, err := s.repo.UserAccount(ctx, params.ToAccount, asset.ID)
	if err != nil {
		return "", err
	}
	if to.DepositActivity != domain.ActivityActive {
		return "", fmt.Errorf("%w: receiver cannot accept %s deposits at this moment",
			domain.ErrDepositsSuspended, asset.Symbol)
	}

	plan := domain.TransferPlan{
		Reference:   "tally_" + uuid.NewString(),
		Asset:       *asset,
		From:        *from,
		To:          *to,
		Amount:      params.Amount,
		Type:        params.TransferType,
		Reason:      metadataString(params.Metadata, "reason", defaultTransferNarrative),
		Description: metadataString(params.Metadata, "description", defaultTransferNarrative),
		Metadata:    params.Metadata,
	}

	return s.repo.ExecuteTransfer(ctx, plan)
}

func metadataString(metadata map[string]any, key, fallback string) string {
	if value, ok := metadata[key].(string); ok && value != "" {
		return value
	}

	return fallback
}
