package cmd

import (
	"bufio"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stargate-bridge/config"
	"stargate-bridge/pkg/network"
	"stargate-bridge/pkg/types"
)

// newLogger builds the logger injected into the bridge and network
// layers. Verbose mode switches to the human-readable development output.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// dialNetwork resolves a network by name and connects to its RPC endpoint.
func dialNetwork(cfg *config.Config, name string, logger *zap.Logger) (*network.EVMNetwork, error) {
	networkCfg, err := cfg.Network(name)
	if err != nil {
		return nil, err
	}
	return network.Dial(networkCfg, logger)
}

// stablecoinFromConfig converts a configured token into the bridge type.
func stablecoinFromConfig(coin config.StablecoinConfig) types.Stablecoin {
	return types.Stablecoin{
		Symbol:          coin.Symbol,
		ContractAddress: coin.ContractAddress,
		Decimals:        coin.Decimals,
		PoolID:          coin.PoolID,
	}
}

// parseTokenAmount converts a human-readable amount into the token's
// smallest unit.
func parseTokenAmount(amount string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %s", amount)
	}
	if d.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0")
	}

	scaled := d.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", amount, decimals)
	}
	return scaled.BigInt(), nil
}

// formatTokenAmount renders a smallest-unit amount in human units.
func formatTokenAmount(amount *big.Int, decimals uint8) string {
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// formatNativeAmount renders a wei amount in the 18-decimal native unit.
func formatNativeAmount(amount *big.Int) string {
	return decimal.NewFromBigInt(amount, -18).String()
}

func confirmPrompt(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("\n%s (y/N): ", question)

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
