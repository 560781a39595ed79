package stargate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomizedSwapGasLimitWithinRange(t *testing.T) {
	for name, r := range swapGasLimits {
		for i := 0; i < 100; i++ {
			limit := RandomizedSwapGasLimit(name)
			require.GreaterOrEqual(t, limit, r.min, "network %s", name)
			require.LessOrEqual(t, limit, r.max, "network %s", name)
		}
		require.Equal(t, r.max, MaxRandomizedSwapGasLimit(name))
	}
}

func TestSwapGasLimitUnknownNetworkUsesDefault(t *testing.T) {
	require.Equal(t, defaultSwapGasLimit.max, MaxRandomizedSwapGasLimit("no-such-network"))

	for i := 0; i < 100; i++ {
		limit := RandomizedSwapGasLimit("no-such-network")
		require.GreaterOrEqual(t, limit, defaultSwapGasLimit.min)
		require.LessOrEqual(t, limit, defaultSwapGasLimit.max)
	}
}
