package stargate

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestEstimateLayerZeroFee(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()
	src.layerZeroFee = big.NewInt(123_456)

	fee, err := EstimateLayerZeroFee(context.Background(), src, dst, common.HexToAddress("0x01"))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(123_456), fee)
}

func TestEstimateSwapGasCost(t *testing.T) {
	network := newFakeNetwork()
	network.gasPrice = big.NewInt(3)

	cost, err := EstimateSwapGasCost(context.Background(), network)
	require.NoError(t, err)

	// Unknown network name falls back to the default gas limit range.
	expected := new(big.Int).SetUint64(3 * (MaxRandomizedSwapGasLimit("Testnet") + network.approveGasLimit))
	require.Equal(t, expected, cost)
}

func TestHasSufficientNativeBalanceBoundary(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()
	address := common.HexToAddress("0x01")

	gasCost, err := EstimateSwapGasCost(context.Background(), src)
	require.NoError(t, err)
	required := new(big.Int).Add(gasCost, src.layerZeroFee)

	// Equality is not enough.
	src.nativeBalance = required
	require.False(t, HasSufficientNativeBalance(context.Background(), src, dst, address))

	src.nativeBalance = new(big.Int).Sub(required, big.NewInt(1))
	require.False(t, HasSufficientNativeBalance(context.Background(), src, dst, address))

	src.nativeBalance = new(big.Int).Add(required, big.NewInt(1))
	require.True(t, HasSufficientNativeBalance(context.Background(), src, dst, address))
}

func TestHasSufficientNativeBalanceSwallowsErrors(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()
	src.nativeBalance = big.NewInt(1_000_000_000)
	src.balanceErr = errors.New("rpc unavailable")

	require.False(t, HasSufficientNativeBalance(context.Background(), src, dst, common.HexToAddress("0x01")))
}
