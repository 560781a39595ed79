package wallet

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

// Well-known hardhat development key, test-only.
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestFromPrivateKey(t *testing.T) {
	account, err := FromPrivateKey(testKey)
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), account.Address())

	// The 0x prefix is accepted too.
	prefixed, err := FromPrivateKey("0x" + testKey)
	require.NoError(t, err)
	require.Equal(t, account.Address(), prefixed.Address())
}

func TestFromPrivateKeyRejectsGarbage(t *testing.T) {
	_, err := FromPrivateKey("not-a-key")
	require.Error(t, err)

	_, err = FromPrivateKey("")
	require.Error(t, err)
}

func TestSignTxRecoversToSigner(t *testing.T) {
	account, err := FromPrivateKey(testKey)
	require.NoError(t, err)

	chainID := big.NewInt(137)
	to := common.HexToAddress("0x45A01E4e04F14f7A4a6702c74187c5F6222033cd")
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    1,
		GasPrice: big.NewInt(1),
		Gas:      21000,
		To:       &to,
		Value:    big.NewInt(100),
	})

	signedTx, err := account.SignTx(tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signedTx)
	require.NoError(t, err)
	require.Equal(t, account.Address(), sender)
}
