package stargate

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Message types understood by the Stargate bridge contract. Only the
// swap type is used here; see Bridge.sol for the full set.
const SwapFunctionType uint8 = 1

// The subset of the Stargate router ABI the bridge calls.
const stargateRouterABI = `[
	{
		"name": "quoteLayerZeroFee",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "_dstChainId", "type": "uint16"},
			{"name": "_functionType", "type": "uint8"},
			{"name": "_toAddress", "type": "bytes"},
			{"name": "_transferAndCallPayload", "type": "bytes"},
			{"name": "_lzTxParams", "type": "tuple", "components": [
				{"name": "dstGasForCall", "type": "uint256"},
				{"name": "dstNativeAmount", "type": "uint256"},
				{"name": "dstNativeAddr", "type": "bytes"}
			]}
		],
		"outputs": [
			{"name": "", "type": "uint256"},
			{"name": "", "type": "uint256"}
		]
	},
	{
		"name": "swap",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [
			{"name": "_dstChainId", "type": "uint16"},
			{"name": "_srcPoolId", "type": "uint256"},
			{"name": "_dstPoolId", "type": "uint256"},
			{"name": "_refundAddress", "type": "address"},
			{"name": "_amountLD", "type": "uint256"},
			{"name": "_minAmountLD", "type": "uint256"},
			{"name": "_lzTxParams", "type": "tuple", "components": [
				{"name": "dstGasForCall", "type": "uint256"},
				{"name": "dstNativeAmount", "type": "uint256"},
				{"name": "dstNativeAddr", "type": "bytes"}
			]},
			{"name": "_to", "type": "bytes"},
			{"name": "_payload", "type": "bytes"}
		],
		"outputs": []
	}
]`

var routerABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(stargateRouterABI))
	if err != nil {
		panic("stargate: invalid router ABI: " + err.Error())
	}
	routerABI = parsed
}

// lzTxObj mirrors the router's lzTxParams tuple.
type lzTxObj struct {
	DstGasForCall   *big.Int
	DstNativeAmount *big.Int
	DstNativeAddr   []byte
}

// zeroLzTxParams returns lzTxParams with no extra destination gas and no
// dust drop on the destination wallet.
func zeroLzTxParams() lzTxObj {
	return lzTxObj{
		DstGasForCall:   big.NewInt(0),
		DstNativeAmount: big.NewInt(0),
		DstNativeAddr:   []byte{},
	}
}

// emptyPayload is passed where the router expects abi-encoded call data
// and the bridge has none to send.
var emptyPayload = []byte{}
