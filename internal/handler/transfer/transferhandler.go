package transferhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/myke-awoniran/tally/internal/service"
	"github.com/myke-awoniran/tally/pkg/dto"
	"github.com/myke-awoniran/tally/pkg/logger"
)

type transferService interface {
	Transfer(ctx context.Context, params service.TransferParams) (string, error)
}

type TransferHandler struct {
	transferService transferService
}

func New(svc transferService) *TransferHandler {
	return &TransferHandler{
		transferService: svc,
	}
}

func (h TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	sender := r.Header.Get("User-Email")
	if sender == "" {
		logger.Log.Error("missing sender email on authenticated request")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("error while decoding a transfer request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := req.IsValid(); err != nil {
		logger.Log.Warn("invalid transfer fields", logger.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	assetType := domain.AssetPound
	if req.Asset != "" {
		assetType = domain.AssetType(req.Asset)
	}

	var metadata map[string]any
	if req.Reason != "" || req.Description != "" {
		metadata = map[string]any{}
		if req.Reason != "" {
			metadata["reason"] = req.Reason
		}
		if req.Description != "" {
			metadata["description"] = req.Description
		}
	}

	transactionID, err := h.transferService.Transfer(r.Context(), service.TransferParams{
		FromAccount:  sender,
		ToAccount:    req.To,
		Amount:       req.Amount,
		AssetType:    assetType,
		TransferType: domain.TransactionWithdrawal,
		Metadata:     metadata,
	})
	if err != nil {
		status := statusForTransferError(err)
		if status == http.StatusInternalServerError {
			logger.Log.Error("error while transferring", logger.String("from", sender), logger.Error(err))
			http.Error(w, http.StatusText(status), status)
			return
		}

		logger.Log.Warn("transfer rejected", logger.String("from", sender), logger.Error(err))
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.TransferResponse{TransactionID: transactionID})
	if err != nil {
		logger.Log.Error("error while encoding transfer response", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

func statusForTransferError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case domain.IsPolicyError(err):
		return http.StatusLocked
	case errors.Is(err, domain.ErrTransferConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
