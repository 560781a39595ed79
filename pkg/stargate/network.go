package stargate

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"stargate-bridge/pkg/network"
	"stargate-bridge/pkg/types"
	"stargate-bridge/pkg/wallet"
)

// Network is the chain access the bridge needs from a source or
// destination network. *network.EVMNetwork satisfies it; tests use fakes.
type Network interface {
	Name() string
	ChainID() *big.Int
	StargateChainID() uint16
	RouterAddress() common.Address
	ApproveGasLimit() uint64

	GetBalance(ctx context.Context, address common.Address) (*big.Int, error)
	GetTokenBalance(ctx context.Context, token, address common.Address) (*big.Int, error)
	GetTokenAllowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	ApproveTokenUsage(ctx context.Context, account *wallet.Account, token, spender common.Address, amount *big.Int) (common.Hash, error)
	WaitForTransaction(ctx context.Context, hash common.Hash) types.TransactionStatus
	GetNonce(ctx context.Context, address common.Address) (uint64, error)
	GetCurrentGasPrice(ctx context.Context) (*big.Int, error)
	GetTransactionGasParams(ctx context.Context) (*types.GasParams, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
}

var _ Network = (*network.EVMNetwork)(nil)
