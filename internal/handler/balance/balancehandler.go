package balancehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/myke-awoniran/tally/pkg/dto"
	"github.com/myke-awoniran/tally/pkg/logger"
)

type accountService interface {
	Balance(ctx context.Context, email string, assetType domain.AssetType) (*domain.Balance, error)
}

type BalanceHandler struct {
	accountService accountService
}

func New(svc accountService) *BalanceHandler {
	return &BalanceHandler{
		accountService: svc,
	}
}

func (h BalanceHandler) Balance(w http.ResponseWriter, r *http.Request) {
	email := r.Header.Get("User-Email")
	if email == "" {
		logger.Log.Error("missing account email on authenticated request")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	assetType := domain.AssetPound
	if asset := r.URL.Query().Get("asset"); asset != "" {
		assetType = domain.AssetType(asset)
	}

	balance, err := h.accountService.Balance(r.Context(), email, assetType)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) || errors.Is(err, domain.ErrAccountNotFound) {
			logger.Log.Warn("unknown account", logger.String("email", email), logger.Error(err))
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		logger.Log.Error("error while fetching balance", logger.String("email", email), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := dto.Balance{
		Available: balance.Available,
		Pending:   balance.Pending,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		logger.Log.Error("error while encoding balance to JSON", logger.String("email", email), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}
