package stargate

import "errors"

// Transaction outcome errors. Feasibility shortfalls are not errors;
// they are reported as a false return from MakeBridge.
var (
	// ErrTransactionFailed means the transaction was mined but reverted.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrTransactionNotFound means the transaction did not show up in the
	// blockchain within the confirmation window.
	ErrTransactionNotFound = errors.New("transaction not found in the blockchain, consider changing fee settings")
)
