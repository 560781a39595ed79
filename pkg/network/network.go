package network

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"stargate-bridge/config"
	"stargate-bridge/pkg/types"
	"stargate-bridge/pkg/wallet"
)

const (
	// How often a submitted transaction is polled for a receipt and how
	// long before it is reported as not found.
	receiptPollInterval = 5 * time.Second
	confirmationWindow  = 5 * time.Minute
)

// EVMNetwork is the RPC-backed collaborator for one EVM chain. All
// chain access of the bridge goes through it.
type EVMNetwork struct {
	cfg     config.NetworkConfig
	chainID *big.Int
	router  common.Address
	client  *ethclient.Client
	logger  *zap.Logger
}

// Dial connects to the network's RPC endpoint.
func Dial(cfg config.NetworkConfig, logger *zap.Logger) (*EVMNetwork, error) {
	if cfg.RPCURL == "" {
		return nil, errors.Errorf("RPC URL not configured for network %s", cfg.Name)
	}
	if !common.IsHexAddress(cfg.RouterAddress) {
		return nil, errors.Errorf("invalid router address for network %s: %s", cfg.Name, cfg.RouterAddress)
	}

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s RPC endpoint", cfg.Name)
	}

	return &EVMNetwork{
		cfg:     cfg,
		chainID: big.NewInt(cfg.ChainID),
		router:  common.HexToAddress(cfg.RouterAddress),
		client:  client,
		logger:  logger,
	}, nil
}

// Name returns the configured network name.
func (n *EVMNetwork) Name() string {
	return n.cfg.Name
}

// ChainID returns the EVM chain id.
func (n *EVMNetwork) ChainID() *big.Int {
	return n.chainID
}

// StargateChainID returns the LayerZero chain id used by the Stargate router.
func (n *EVMNetwork) StargateChainID() uint16 {
	return n.cfg.StargateChainID
}

// RouterAddress returns the Stargate router contract address.
func (n *EVMNetwork) RouterAddress() common.Address {
	return n.router
}

// ApproveGasLimit returns the gas limit used for ERC20 approvals.
func (n *EVMNetwork) ApproveGasLimit() uint64 {
	return n.cfg.ApproveGasLimit
}

// GetBalance returns the native token balance of an address.
func (n *EVMNetwork) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	balance, err := n.client.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return balance, nil
}

// GetTokenBalance returns the ERC20 balance of an address.
func (n *EVMNetwork) GetTokenBalance(ctx context.Context, token, address common.Address) (*big.Int, error) {
	data, err := parsedERC20ABI.Pack("balanceOf", address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack balanceOf data")
	}

	result, err := n.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data})
	if err != nil {
		return nil, errors.Wrap(err, "failed to call balanceOf")
	}

	balance := new(big.Int)
	if err := parsedERC20ABI.UnpackIntoInterface(&balance, "balanceOf", result); err != nil {
		return nil, errors.Wrap(err, "failed to unpack balanceOf result")
	}
	return balance, nil
}

// GetTokenAllowance returns how much of an ERC20 token the spender may
// transfer on behalf of the owner.
func (n *EVMNetwork) GetTokenAllowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	data, err := parsedERC20ABI.Pack("allowance", owner, spender)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack allowance data")
	}

	result, err := n.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data})
	if err != nil {
		return nil, errors.Wrap(err, "failed to call allowance")
	}

	allowance := new(big.Int)
	if err := parsedERC20ABI.UnpackIntoInterface(&allowance, "allowance", result); err != nil {
		return nil, errors.Wrap(err, "failed to unpack allowance result")
	}
	return allowance, nil
}

// ApproveTokenUsage submits an ERC20 approval allowing the spender to
// transfer the given amount on behalf of the account.
func (n *EVMNetwork) ApproveTokenUsage(ctx context.Context, account *wallet.Account, token, spender common.Address, amount *big.Int) (common.Hash, error) {
	data, err := parsedERC20ABI.Pack("approve", spender, amount)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to pack approve data")
	}

	nonce, err := n.GetNonce(ctx, account.Address())
	if err != nil {
		return common.Hash{}, err
	}

	gasParams, err := n.GetTransactionGasParams(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	tx := NewTransaction(n.chainID, nonce, token, big.NewInt(0), n.cfg.ApproveGasLimit, gasParams, data)
	signedTx, err := account.SignTx(tx, n.chainID)
	if err != nil {
		return common.Hash{}, err
	}

	if err := n.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, err
	}

	n.logger.Info("approval transaction sent",
		zap.String("network", n.cfg.Name),
		zap.String("token", token.Hex()),
		zap.String("spender", spender.Hex()),
		zap.String("amount", amount.String()),
		zap.String("hash", signedTx.Hash().Hex()))

	return signedTx.Hash(), nil
}

// GetNonce returns the pending nonce of an address.
func (n *EVMNetwork) GetNonce(ctx context.Context, address common.Address) (uint64, error) {
	nonce, err := n.client.PendingNonceAt(ctx, address)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get nonce")
	}
	return nonce, nil
}

// GetCurrentGasPrice returns the network's suggested gas price.
func (n *EVMNetwork) GetCurrentGasPrice(ctx context.Context) (*big.Int, error) {
	gasPrice, err := n.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get gas price")
	}
	return gasPrice, nil
}

// GetTransactionGasParams returns the fee fields for an outgoing
// transaction: EIP-1559 caps on networks configured for dynamic fees,
// a plain gas price otherwise.
func (n *EVMNetwork) GetTransactionGasParams(ctx context.Context) (*types.GasParams, error) {
	if !n.cfg.DynamicFees {
		gasPrice, err := n.GetCurrentGasPrice(ctx)
		if err != nil {
			return nil, err
		}
		return &types.GasParams{GasPrice: gasPrice}, nil
	}

	tipCap, err := n.client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get gas tip cap")
	}

	head, err := n.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain head")
	}
	if head.BaseFee == nil {
		// Node does not report a base fee, fall back to legacy pricing.
		gasPrice, err := n.GetCurrentGasPrice(ctx)
		if err != nil {
			return nil, err
		}
		return &types.GasParams{GasPrice: gasPrice}, nil
	}

	// feeCap = 2*baseFee + tip keeps the transaction includable across
	// several base fee increases.
	feeCap := new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tipCap)
	return &types.GasParams{FeeCap: feeCap, TipCap: tipCap}, nil
}

// SendTransaction broadcasts a signed transaction.
func (n *EVMNetwork) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	if err := n.client.SendTransaction(ctx, tx); err != nil {
		return errors.Wrap(err, "failed to send transaction")
	}
	return nil
}

// CallContract executes a read-only contract call.
func (n *EVMNetwork) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	result, err := n.client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, errors.Wrap(err, "contract call failed")
	}
	return result, nil
}

// WaitForTransaction polls for the transaction's receipt until the
// confirmation window expires. A transaction that never produces a
// receipt within the window is reported as not found.
func (n *EVMNetwork) WaitForTransaction(ctx context.Context, hash common.Hash) types.TransactionStatus {
	deadline := time.Now().Add(confirmationWindow)
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := n.client.TransactionReceipt(ctx, hash)
		if err == nil {
			if receipt.Status == ethtypes.ReceiptStatusSuccessful {
				return types.TransactionSuccess
			}
			return types.TransactionFailed
		}
		if !errors.Is(err, ethereum.NotFound) {
			n.logger.Warn("receipt lookup failed",
				zap.String("network", n.cfg.Name),
				zap.String("hash", hash.Hex()),
				zap.Error(err))
		}

		if time.Now().After(deadline) {
			return types.TransactionNotFound
		}

		select {
		case <-ctx.Done():
			return types.TransactionNotFound
		case <-ticker.C:
		}
	}
}

// GetTransactionInfo retrieves the details of a transaction for display.
func (n *EVMNetwork) GetTransactionInfo(ctx context.Context, hash common.Hash) (*types.TransactionInfo, error) {
	tx, isPending, err := n.client.TransactionByHash(ctx, hash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	info := &types.TransactionInfo{
		Hash:     tx.Hash().Hex(),
		Nonce:    tx.Nonce(),
		GasLimit: tx.Gas(),
		Value:    tx.Value().String(),
		Pending:  isPending,
	}
	if tx.To() != nil {
		info.To = tx.To().Hex()
	}

	receipt, err := n.client.TransactionReceipt(ctx, hash)
	if err != nil {
		if isPending || errors.Is(err, ethereum.NotFound) {
			return info, nil
		}
		return nil, errors.Wrap(err, "failed to get transaction receipt")
	}

	info.BlockNumber = receipt.BlockNumber.Uint64()
	info.GasUsed = receipt.GasUsed
	if receipt.Status == ethtypes.ReceiptStatusSuccessful {
		info.Status = string(types.TransactionSuccess)
	} else {
		info.Status = string(types.TransactionFailed)
	}
	return info, nil
}

// NewTransaction assembles an unsigned transaction, choosing the dynamic
// fee form whenever the gas params carry EIP-1559 caps.
func NewTransaction(chainID *big.Int, nonce uint64, to common.Address, value *big.Int, gasLimit uint64, gas *types.GasParams, data []byte) *ethtypes.Transaction {
	if gas.IsDynamic() {
		return ethtypes.NewTx(&ethtypes.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: gas.TipCap,
			GasFeeCap: gas.FeeCap,
			Gas:       gasLimit,
			To:        &to,
			Value:     value,
			Data:      data,
		})
	}
	return ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    nonce,
		GasPrice: gas.GasPrice,
		Gas:      gasLimit,
		To:       &to,
		Value:    value,
		Data:     data,
	})
}

// Close closes the underlying RPC client.
func (n *EVMNetwork) Close() {
	if n.client != nil {
		n.client.Close()
	}
}
