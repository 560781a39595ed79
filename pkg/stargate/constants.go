package stargate

import "math/rand/v2"

// gasLimitRange is the inclusive interval a swap gas limit is drawn from.
// Randomizing the limit keeps repeated swaps from the same wallet from
// looking identical on-chain.
type gasLimitRange struct {
	min uint64
	max uint64
}

var swapGasLimits = map[string]gasLimitRange{
	"Ethereum":  {590_000, 630_000},
	"BSC":       {560_000, 600_000},
	"Avalanche": {580_000, 620_000},
	"Polygon":   {580_000, 630_000},
	"Arbitrum":  {3_000_000, 4_000_000},
	"Optimism":  {1_000_000, 1_200_000},
	"Fantom":    {600_000, 650_000},
}

var defaultSwapGasLimit = gasLimitRange{600_000, 700_000}

func swapGasLimitRange(networkName string) gasLimitRange {
	if r, ok := swapGasLimits[networkName]; ok {
		return r
	}
	return defaultSwapGasLimit
}

// RandomizedSwapGasLimit draws a swap gas limit from the network's range.
func RandomizedSwapGasLimit(networkName string) uint64 {
	r := swapGasLimitRange(networkName)
	return r.min + rand.Uint64N(r.max-r.min+1)
}

// MaxRandomizedSwapGasLimit returns the upper bound of the network's
// range, used when estimating the worst-case swap gas cost.
func MaxRandomizedSwapGasLimit(networkName string) uint64 {
	return swapGasLimitRange(networkName).max
}
