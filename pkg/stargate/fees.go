package stargate

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// EstimateLayerZeroFee quotes the native token fee LayerZero charges to
// relay the swap message to the destination chain. One read-only call to
// the source chain's router.
func EstimateLayerZeroFee(ctx context.Context, srcNetwork, dstNetwork Network, dstAddress common.Address) (*big.Int, error) {
	data, err := routerABI.Pack("quoteLayerZeroFee",
		dstNetwork.StargateChainID(),
		SwapFunctionType,
		dstAddress.Bytes(),
		emptyPayload,
		zeroLzTxParams(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to pack quoteLayerZeroFee data: %w", err)
	}

	router := srcNetwork.RouterAddress()
	result, err := srcNetwork.CallContract(ctx, ethereum.CallMsg{To: &router, Data: data})
	if err != nil {
		return nil, fmt.Errorf("quoteLayerZeroFee call failed: %w", err)
	}

	out, err := routerABI.Unpack("quoteLayerZeroFee", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack quoteLayerZeroFee result: %w", err)
	}
	nativeFee, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected quoteLayerZeroFee result type %T", out[0])
	}

	return nativeFee, nil
}

// EstimateSwapGasCost returns an upper bound on the native token cost of
// the swap: the worst-case randomized swap gas limit plus the approval
// gas limit, at the current gas price.
func EstimateSwapGasCost(ctx context.Context, network Network) (*big.Int, error) {
	gasLimit := MaxRandomizedSwapGasLimit(network.Name()) + network.ApproveGasLimit()

	gasPrice, err := network.GetCurrentGasPrice(ctx)
	if err != nil {
		return nil, err
	}

	return new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit)), nil
}

// HasSufficientNativeBalance reports whether the address holds strictly
// more native token than the estimated gas cost plus the LayerZero fee.
// Any RPC failure counts as insufficient.
func HasSufficientNativeBalance(ctx context.Context, srcNetwork, dstNetwork Network, address common.Address) bool {
	balance, err := srcNetwork.GetBalance(ctx, address)
	if err != nil {
		return false
	}
	gasCost, err := EstimateSwapGasCost(ctx, srcNetwork)
	if err != nil {
		return false
	}
	layerZeroFee, err := EstimateLayerZeroFee(ctx, srcNetwork, dstNetwork, address)
	if err != nil {
		return false
	}

	required := new(big.Int).Add(gasCost, layerZeroFee)
	return balance.Cmp(required) > 0
}
