package domain

import "time"

type ActivityStatus string

const (
	ActivityActive    ActivityStatus = "ACTIVE"
	ActivitySuspended ActivityStatus = "SUSPENDED"
)

type ClerkType string

const (
	ClerkDebit  ClerkType = "DEBIT"
	ClerkCredit ClerkType = "CREDIT"
)

type AssetType string

const (
	AssetNaira  AssetType = "NAIRA"
	AssetDollar AssetType = "DOLLAR"
	AssetPound  AssetType = "POUND"
	AssetEuro   AssetType = "EURO"
)

type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionReversal   TransactionType = "REVERSAL"
)

type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusSuccess  TransactionStatus = "SUCCESS"
	StatusFailed   TransactionStatus = "FAILED"
	StatusReversed TransactionStatus = "REVERSED"
)

type User struct {
	ID           string
	Email        string
	Password     string
	RegisteredAt time.Time
}

// Asset is a system currency. WithdrawalActivity is the system-wide kill
// switch for transfers of this asset.
type Asset struct {
	ID                 string
	Symbol             string
	AssetType          AssetType
	WithdrawalActivity ActivityStatus
}

// UserAsset is one user's holding of one asset, unique on (user, asset).
// AvailableBalance and PendingBalance are projections of the ledger: they are
// written only inside the transfer unit or by Replay, and the ledger stays
// authoritative regardless.
type UserAsset struct {
	ID                 string
	UserID             string
	Email              string
	AssetID            string
	AvailableBalance   int64
	PendingBalance     int64
	WithdrawalActivity ActivityStatus
	DepositActivity    ActivityStatus
}

type Transaction struct {
	ID          string
	Reference   string
	UserID      string
	AssetID     string
	Status      TransactionStatus
	Amount      int64
	Fee         int64
	TotalAmount int64
	ClerkType   ClerkType
	Type        TransactionType
	Reason      string
	Description string
	Metadata    map[string]any
	CreatedAt   time.Time
}

type Deposit struct {
	ID            string
	UserID        string
	AssetID       string
	TransactionID string
	Amount        int64
	Status        TransactionStatus
	Reference     string
	Metadata      map[string]any
}

type Withdrawal struct {
	ID            string
	UserID        string
	AssetID       string
	TransactionID string
	Amount        int64
	Fee           int64
	Status        TransactionStatus
	Reference     string
	Destination   string
	Metadata      map[string]any
}

// LedgerEntry is one side of a double-entry movement. Entries are append-only;
// Seq breaks ties between entries created in the same timestamp tick.
type LedgerEntry struct {
	ID               string
	Seq              int64
	AssetID          string
	UserID           string
	TransactionID    string
	ClerkType        ClerkType
	EntryType        TransactionType
	AvailableDelta   int64
	AvailableBalance int64
	PendingDelta     int64
	PendingBalance   int64
	CreatedAt        time.Time
}

type Balance struct {
	Available int64
	Pending   int64
}

// AccountKey identifies a balance bucket during replay.
type AccountKey struct {
	UserID  string
	AssetID string
}

// TransferPlan is a fully validated transfer handed to the store for the
// atomic unit. Balances inside From/To are the validation-time reads; the
// store re-checks them under row locks before committing.
type TransferPlan struct {
	Reference   string
	Asset       Asset
	From        UserAsset
	To          UserAsset
	Amount      int64
	Type        TransactionType
	Reason      string
	Description string
	Metadata    map[string]any
}
