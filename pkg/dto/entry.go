package dto

/**
  {
      "id": "0c1b...",
      "transaction": "a9f4...",
      "clerk_type": "DEBIT",
      "entry_type": "WITHDRAWAL",
      "available_delta": -100000,
      "available_balance": 1900000,
      "pending_delta": 0,
      "pending_balance": 0,
      "created_at": "2026-09-01T12:00:00Z"
  }
*/

type LedgerEntry struct {
	ID               string `json:"id"`
	User             string `json:"user"`
	Asset            string `json:"asset"`
	Transaction      string `json:"transaction"`
	ClerkType        string `json:"clerk_type"`
	EntryType        string `json:"entry_type"`
	AvailableDelta   int64  `json:"available_delta"`
	AvailableBalance int64  `json:"available_balance"`
	PendingDelta     int64  `json:"pending_delta"`
	PendingBalance   int64  `json:"pending_balance"`
	CreatedAt        string `json:"created_at"`
}

type ReplayedBalance struct {
	User      string `json:"user"`
	Asset     string `json:"asset"`
	Available int64  `json:"available"`
	Pending   int64  `json:"pending"`
}
