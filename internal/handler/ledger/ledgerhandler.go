package ledgerhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/myke-awoniran/tally/pkg/dto"
	"github.com/myke-awoniran/tally/pkg/logger"
)

type replayService interface {
	Replay(ctx context.Context) (map[domain.AccountKey]domain.Balance, error)
}

type validatorService interface {
	Validate(ctx context.Context) error
}

// LedgerHandler exposes the administrative surface: replay-from-history and
// the global invariant check.
type LedgerHandler struct {
	replayService    replayService
	validatorService validatorService
}

func New(replaySvc replayService, validatorSvc validatorService) *LedgerHandler {
	return &LedgerHandler{
		replayService:    replaySvc,
		validatorService: validatorSvc,
	}
}

func (h LedgerHandler) Replay(w http.ResponseWriter, r *http.Request) {
	balances, err := h.replayService.Replay(r.Context())
	if err != nil {
		logger.Log.Error("error while replaying ledger", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	dtos := make([]dto.ReplayedBalance, 0, len(balances))
	for key, balance := range balances {
		dtos = append(dtos, dto.ReplayedBalance{
			User:      key.UserID,
			Asset:     key.AssetID,
			Available: balance.Available,
			Pending:   balance.Pending,
		})
	}
	sort.Slice(dtos, func(i, j int) bool {
		if dtos[i].User != dtos[j].User {
			return dtos[i].User < dtos[j].User
		}
		return dtos[i].Asset < dtos[j].Asset
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		logger.Log.Error("error while encoding replayed balances to JSON", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

func (h LedgerHandler) Validate(w http.ResponseWriter, r *http.Request) {
	err := h.validatorService.Validate(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrLedgerInvariant) {
			// Corruption or a write-path bug; surface loudly, never repair.
			logger.Log.Error("ledger validation failed", logger.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		logger.Log.Error("error while validating ledger", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]bool{"valid": true}); err != nil {
		logger.Log.Error("error while encoding validation result", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}
