package types

import (
	"math/big"
)

// TransactionStatus is the outcome of polling the source chain for a
// submitted transaction.
type TransactionStatus string

const (
	TransactionSuccess  TransactionStatus = "success"    // Mined and executed
	TransactionFailed   TransactionStatus = "failed"     // Mined but reverted
	TransactionNotFound TransactionStatus = "not_found"  // Not mined within the polling window
)

// Stablecoin describes a bridgeable token on a specific network.
// Immutable once loaded from configuration.
type Stablecoin struct {
	Symbol          string
	ContractAddress string
	Decimals        uint8
	// PoolID is the Stargate liquidity pool id backing this token
	// on its chain.
	PoolID int64
}

// GasParams holds the fee fields for an outgoing transaction. Either
// GasPrice is set (legacy) or FeeCap/TipCap are set (dynamic fee).
type GasParams struct {
	GasPrice *big.Int
	FeeCap   *big.Int
	TipCap   *big.Int
}

// IsDynamic reports whether the params describe an EIP-1559 transaction.
func (g *GasParams) IsDynamic() bool {
	return g.FeeCap != nil && g.TipCap != nil
}

// TransactionInfo holds the details of a submitted transaction for display.
type TransactionInfo struct {
	Hash        string `json:"hash"`
	Nonce       uint64 `json:"nonce"`
	GasLimit    uint64 `json:"gas_limit"`
	Value       string `json:"value"`
	To          string `json:"to,omitempty"`
	Pending     bool   `json:"pending"`
	BlockNumber uint64 `json:"block_number,omitempty"`
	GasUsed     uint64 `json:"gas_used,omitempty"`
	Status      string `json:"status,omitempty"`
}

// BridgeCommand is a parsed user bridge instruction, before it is
// resolved against configuration into a concrete request.
type BridgeCommand struct {
	Amount        string
	Token         string
	SourceNetwork string
	DestNetwork   string
}
