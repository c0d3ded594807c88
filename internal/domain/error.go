package domain

import "errors"

var (
	ErrUserExists           = errors.New("user already exists")
	ErrIncorrectCredentials = errors.New("incorrect credentials")

	ErrNonPositiveAmount  = errors.New("amount must be positive")
	ErrSameAccount        = errors.New("cannot initiate transfer to same account")
	ErrAmountBelowMinimum = errors.New("amount is below the minimum transfer amount")
	ErrAssetNotFound      = errors.New("invalid system asset")
	ErrAccountNotFound    = errors.New("invalid user account")

	ErrAssetSuspended       = errors.New("asset withdrawals are suspended")
	ErrWithdrawalsSuspended = errors.New("account withdrawal activity is suspended")
	ErrDepositsSuspended    = errors.New("account deposit activity is suspended")
	ErrInsufficientBalance  = errors.New("insufficient balance")

	// ErrTransferConflict marks a concurrent-modification abort of the
	// transfer unit; the whole transfer is retryable from validation.
	ErrTransferConflict = errors.New("transfer conflicts with a concurrent transfer")

	// ErrLedgerInvariant means the global debit/credit sum is non-zero.
	// Never auto-repaired; callers must alert an operator.
	ErrLedgerInvariant = errors.New("ledger invariant violated")

	ErrTransactionNotFound = errors.New("transaction not found")
)

// IsValidationError reports whether err is caller input at fault.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNonPositiveAmount) ||
		errors.Is(err, ErrSameAccount) ||
		errors.Is(err, ErrAmountBelowMinimum) ||
		errors.Is(err, ErrAssetNotFound) ||
		errors.Is(err, ErrAccountNotFound)
}

// IsPolicyError reports whether err is a business-rule rejection.
func IsPolicyError(err error) bool {
	return errors.Is(err, ErrAssetSuspended) ||
		errors.Is(err, ErrWithdrawalsSuspended) ||
		errors.Is(err, ErrDepositsSuspended) ||
		errors.Is(err, ErrInsufficientBalance)
}
