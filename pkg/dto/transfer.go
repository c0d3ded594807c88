package dto

import (
	"errors"
	"fmt"
	"strings"
)

/**
  {
      "to": "user2@email.com",
      "amount": 150000,
      "asset": "POUND",
      "description": "rent split"
  }
*/

type TransferRequest struct {
	To          string `json:"to"`
	Amount      int64  `json:"amount"`
	Asset       string `json:"asset,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Description string `json:"description,omitempty"`
}

func (t TransferRequest) IsValid() error {
	var toErr, amountErr error

	if strings.TrimSpace(t.To) == "" {
		toErr = fmt.Errorf("receiver account is required")
	}

	if t.Amount <= 0 {
		amountErr = fmt.Errorf("amount must be a positive number of minor units")
	}

	return errors.Join(toErr, amountErr)
}

type TransferResponse struct {
	TransactionID string `json:"transaction_id"`
}
