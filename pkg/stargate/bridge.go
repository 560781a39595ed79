package stargate

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"stargate-bridge/pkg/network"
	"stargate-bridge/pkg/types"
	"stargate-bridge/pkg/wallet"
)

// Request describes one bridge attempt. Immutable once validated.
type Request struct {
	Account       *wallet.Account
	SrcNetwork    Network
	DstNetwork    Network
	SrcStablecoin types.Stablecoin
	DstStablecoin types.Stablecoin
	// Amount is in the source token's smallest unit.
	Amount *big.Int
	// Slippage is the accepted fractional shortfall on the destination,
	// in [0, 1).
	Slippage float64
}

// Validate checks the request invariants.
func (r *Request) Validate() error {
	if r.Account == nil {
		return fmt.Errorf("account is required")
	}
	if r.SrcNetwork == nil || r.DstNetwork == nil {
		return fmt.Errorf("source and destination networks are required")
	}
	if r.Amount == nil || r.Amount.Sign() <= 0 {
		return fmt.Errorf("amount must be greater than 0")
	}
	if r.Slippage < 0 || r.Slippage >= 1 {
		return fmt.Errorf("slippage must be in [0, 1), got %v", r.Slippage)
	}
	return nil
}

// AmountWithSlippage returns the minimum amount acceptable on the
// destination: amount - floor(amount * slippage).
func (r *Request) AmountWithSlippage() *big.Int {
	shortfall := new(big.Float).SetInt(r.Amount)
	shortfall.Mul(shortfall, big.NewFloat(r.Slippage))
	cut, _ := shortfall.Int(nil)
	return new(big.Int).Sub(r.Amount, cut)
}

// BridgeHelper performs a single stablecoin bridge between two EVM
// networks through the Stargate router.
type BridgeHelper struct {
	req    Request
	logger *zap.Logger
}

// NewBridgeHelper validates the request and returns a helper for it.
func NewBridgeHelper(req Request, logger *zap.Logger) (*BridgeHelper, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bridge request: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BridgeHelper{req: req, logger: logger}, nil
}

// MakeBridge performs the bridge from the source to the destination
// network. It returns false without an error when the account cannot
// cover the amount or the fees; transaction failures after submission
// are returned as errors wrapping ErrTransactionFailed or
// ErrTransactionNotFound.
func (h *BridgeHelper) MakeBridge(ctx context.Context) (bool, error) {
	if !h.isBridgePossible(ctx) {
		h.logger.Info("bridge not possible, insufficient balance",
			zap.String("src_network", h.req.SrcNetwork.Name()),
			zap.String("token", h.req.SrcStablecoin.Symbol),
			zap.String("amount", h.req.Amount.String()))
		return false, nil
	}

	if err := h.approveStablecoinUsage(ctx, h.req.Amount); err != nil {
		return false, err
	}

	txHash, err := h.sendSwapTransaction(ctx)
	if err != nil {
		return false, err
	}
	result := h.req.SrcNetwork.WaitForTransaction(ctx, txHash)

	if err := h.checkTxResult(result, "Stargate swap"); err != nil {
		return false, err
	}
	return true, nil
}

// checkTxResult maps a polled transaction status onto the error
// taxonomy and logs successes.
func (h *BridgeHelper) checkTxResult(result types.TransactionStatus, name string) error {
	switch result {
	case types.TransactionNotFound:
		return fmt.Errorf("%s: %w", name, ErrTransactionNotFound)
	case types.TransactionFailed:
		return fmt.Errorf("%s: %w", name, ErrTransactionFailed)
	}

	h.logger.Info("transaction succeeded", zap.String("name", name))
	return nil
}

// sendSwapTransaction signs and submits the router swap moving the
// source pool's token to the destination chain.
func (h *BridgeHelper) sendSwapTransaction(ctx context.Context) (common.Hash, error) {
	src := h.req.SrcNetwork
	sender := h.req.Account.Address()

	layerZeroFee, err := EstimateLayerZeroFee(ctx, src, h.req.DstNetwork, sender)
	if err != nil {
		return common.Hash{}, err
	}
	nonce, err := src.GetNonce(ctx, sender)
	if err != nil {
		return common.Hash{}, err
	}
	gasParams, err := src.GetTransactionGasParams(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	h.logger.Info("estimated fees",
		zap.String("layerzero_fee", layerZeroFee.String()),
		zap.Any("gas_params", gasParams))

	data, err := routerABI.Pack("swap",
		h.req.DstNetwork.StargateChainID(),
		big.NewInt(h.req.SrcStablecoin.PoolID),
		big.NewInt(h.req.DstStablecoin.PoolID),
		sender, // refund address, extra gas (if any) is returned here
		h.req.Amount,
		h.req.AmountWithSlippage(),
		zeroLzTxParams(),
		sender.Bytes(), // recipient on the destination chain
		emptyPayload,
	)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack swap data: %w", err)
	}

	tx := network.NewTransaction(
		src.ChainID(),
		nonce,
		src.RouterAddress(),
		layerZeroFee, // the value pays the cross-chain message fee
		RandomizedSwapGasLimit(src.Name()),
		gasParams,
		data,
	)

	signedTx, err := h.req.Account.SignTx(tx, src.ChainID())
	if err != nil {
		return common.Hash{}, err
	}
	if err := src.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, err
	}

	h.logger.Info("Stargate swap transaction signed and sent",
		zap.String("hash", signedTx.Hash().Hex()),
		zap.String("src_network", src.Name()),
		zap.String("dst_network", h.req.DstNetwork.Name()))

	return signedTx.Hash(), nil
}

// isBridgePossible checks the account's balances on the source chain.
func (h *BridgeHelper) isBridgePossible(ctx context.Context) bool {
	sender := h.req.Account.Address()

	if !HasSufficientNativeBalance(ctx, h.req.SrcNetwork, h.req.DstNetwork, sender) {
		return false
	}

	token := common.HexToAddress(h.req.SrcStablecoin.ContractAddress)
	stablecoinBalance, err := h.req.SrcNetwork.GetTokenBalance(ctx, token, sender)
	if err != nil {
		return false
	}
	return stablecoinBalance.Cmp(h.req.Amount) >= 0
}

// approveStablecoinUsage makes sure the router may spend the amount on
// behalf of the account, submitting an approval only when the current
// allowance falls short.
func (h *BridgeHelper) approveStablecoinUsage(ctx context.Context, amount *big.Int) error {
	src := h.req.SrcNetwork
	token := common.HexToAddress(h.req.SrcStablecoin.ContractAddress)
	sender := h.req.Account.Address()

	allowance, err := src.GetTokenAllowance(ctx, token, sender, src.RouterAddress())
	if err != nil {
		return fmt.Errorf("failed to read allowance: %w", err)
	}
	if allowance.Cmp(amount) >= 0 {
		return nil
	}

	txHash, err := src.ApproveTokenUsage(ctx, h.req.Account, token, src.RouterAddress(), amount)
	if err != nil {
		return err
	}
	result := src.WaitForTransaction(ctx, txHash)

	return h.checkTxResult(result, fmt.Sprintf("Approve %s usage", h.req.SrcStablecoin.Symbol))
}
