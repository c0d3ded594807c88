package audithandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/myke-awoniran/tally/pkg/dto"
	"github.com/myke-awoniran/tally/pkg/logger"
)

type auditService interface {
	Account(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)
	Transaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)
}

type AuditHandler struct {
	auditService auditService
}

func New(svc auditService) *AuditHandler {
	return &AuditHandler{
		auditService: svc,
	}
}

func (h AuditHandler) Account(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	entries, err := h.auditService.Account(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			logger.Log.Warn("unknown account", logger.String("account_id", accountID))
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		logger.Log.Error("error while auditing account", logger.String("account_id", accountID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeEntries(w, entries)
}

func (h AuditHandler) Transaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	entries, err := h.auditService.Transaction(r.Context(), transactionID)
	if err != nil {
		logger.Log.Error("error while auditing transaction", logger.String("transaction_id", transactionID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeEntries(w, entries)
}

func writeEntries(w http.ResponseWriter, entries []domain.LedgerEntry) {
	dtos := make([]dto.LedgerEntry, len(entries))
	for i, entry := range entries {
		dtos[i] = dto.LedgerEntry{
			ID:               entry.ID,
			User:             entry.UserID,
			Asset:            entry.AssetID,
			Transaction:      entry.TransactionID,
			ClerkType:        string(entry.ClerkType),
			EntryType:        string(entry.EntryType),
			AvailableDelta:   entry.AvailableDelta,
			AvailableBalance: entry.AvailableBalance,
			PendingDelta:     entry.PendingDelta,
			PendingBalance:   entry.PendingBalance,
			CreatedAt:        entry.CreatedAt.Format(time.RFC3339),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		logger.Log.Error("error while encoding ledger entries to JSON", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}
