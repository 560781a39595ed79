package network

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"stargate-bridge/pkg/types"
)

func TestNewTransactionLegacy(t *testing.T) {
	to := common.HexToAddress("0x01")
	gas := &types.GasParams{GasPrice: big.NewInt(42)}

	tx := NewTransaction(big.NewInt(1), 3, to, big.NewInt(100), 21000, gas, nil)

	require.Equal(t, uint8(ethtypes.LegacyTxType), tx.Type())
	require.Equal(t, big.NewInt(42), tx.GasPrice())
	require.Equal(t, uint64(3), tx.Nonce())
	require.Equal(t, to, *tx.To())
	require.Equal(t, big.NewInt(100), tx.Value())
	require.Equal(t, uint64(21000), tx.Gas())
}

func TestNewTransactionDynamicFee(t *testing.T) {
	to := common.HexToAddress("0x02")
	gas := &types.GasParams{FeeCap: big.NewInt(200), TipCap: big.NewInt(2)}

	tx := NewTransaction(big.NewInt(137), 0, to, big.NewInt(0), 70000, gas, []byte{0x09, 0x5e, 0xa7, 0xb3})

	require.Equal(t, uint8(ethtypes.DynamicFeeTxType), tx.Type())
	require.Equal(t, big.NewInt(200), tx.GasFeeCap())
	require.Equal(t, big.NewInt(2), tx.GasTipCap())
	require.Equal(t, big.NewInt(137), tx.ChainId())
	require.Len(t, tx.Data(), 4)
}

func TestERC20ABIPacksExpectedSelectors(t *testing.T) {
	// 4-byte selectors of the standard ERC20 functions.
	owner := common.HexToAddress("0x01")
	spender := common.HexToAddress("0x02")

	data, err := parsedERC20ABI.Pack("balanceOf", owner)
	require.NoError(t, err)
	require.Equal(t, []byte{0x70, 0xa0, 0x82, 0x31}, data[:4])

	data, err = parsedERC20ABI.Pack("allowance", owner, spender)
	require.NoError(t, err)
	require.Equal(t, []byte{0xdd, 0x62, 0xed, 0x3e}, data[:4])

	data, err = parsedERC20ABI.Pack("approve", spender, big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, []byte{0x09, 0x5e, 0xa7, 0xb3}, data[:4])
}
