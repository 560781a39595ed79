package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// StablecoinConfig describes a bridgeable token on one network.
type StablecoinConfig struct {
	Symbol          string
	ContractAddress string
	Decimals        uint8
	PoolID          int64
}

// NetworkConfig holds the immutable parameters of one EVM network.
type NetworkConfig struct {
	Name            string
	RPCURL          string
	ChainID         int64
	StargateChainID uint16
	RouterAddress   string
	ApproveGasLimit uint64
	DynamicFees     bool
	Stablecoins     map[string]StablecoinConfig
}

// Config holds the application configuration
type Config struct {
	PrivateKey  string
	Slippage    float64
	HistoryFile string
	Networks    map[string]NetworkConfig
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".stargate-bridge")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("slippage", 0.005)
	viper.SetDefault("history_file", "")

	// Read from environment variables
	viper.SetEnvPrefix("STARGATE_BRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		PrivateKey:  viper.GetString("private_key"),
		Slippage:    viper.GetFloat64("slippage"),
		HistoryFile: viper.GetString("history_file"),
		Networks:    defaultNetworks(),
	}

	// RPC endpoints can be overridden per network, e.g.
	// STARGATE_BRIDGE_NETWORKS_ETHEREUM_RPC_URL or networks.ethereum.rpc_url
	for name, network := range cfg.Networks {
		if rpcURL := viper.GetString("networks." + name + ".rpc_url"); rpcURL != "" {
			network.RPCURL = rpcURL
			cfg.Networks[name] = network
		}
	}

	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("private key not found. Please set STARGATE_BRIDGE_PRIVATE_KEY environment variable or create a .stargate-bridge.yaml config file")
	}
	if cfg.Slippage < 0 || cfg.Slippage >= 1 {
		return nil, fmt.Errorf("slippage must be in [0, 1), got %v", cfg.Slippage)
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}

// Network returns the configuration of a network by its lowercase name.
func (c *Config) Network(name string) (NetworkConfig, error) {
	network, exists := c.Networks[strings.ToLower(name)]
	if !exists {
		return NetworkConfig{}, fmt.Errorf("network %s not configured", name)
	}
	return network, nil
}

// Stablecoin returns a token configured on the network by its symbol.
func (n NetworkConfig) Stablecoin(symbol string) (StablecoinConfig, error) {
	coin, exists := n.Stablecoins[strings.ToUpper(symbol)]
	if !exists {
		return StablecoinConfig{}, fmt.Errorf("token %s not configured on network %s", symbol, n.Name)
	}
	return coin, nil
}

// defaultNetworks returns the built-in Stargate v1 network set. Router
// addresses, chain ids and pool ids are protocol constants; only the RPC
// endpoints are expected to be overridden.
func defaultNetworks() map[string]NetworkConfig {
	return map[string]NetworkConfig{
		"ethereum": {
			Name:            "Ethereum",
			RPCURL:          "https://eth.llamarpc.com",
			ChainID:         1,
			StargateChainID: 101,
			RouterAddress:   "0x8731d54E9D02c286767d56ac03e8037C07e01e98",
			ApproveGasLimit: 70000,
			DynamicFees:     true,
			Stablecoins: map[string]StablecoinConfig{
				"USDC": {Symbol: "USDC", ContractAddress: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6, PoolID: 1},
				"USDT": {Symbol: "USDT", ContractAddress: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6, PoolID: 2},
			},
		},
		"bsc": {
			Name:            "BSC",
			RPCURL:          "https://bsc-dataseed.binance.org",
			ChainID:         56,
			StargateChainID: 102,
			RouterAddress:   "0x4a364f8c717cAAD9A442737Eb7b8A55cc6cf18D8",
			ApproveGasLimit: 70000,
			Stablecoins: map[string]StablecoinConfig{
				"USDT": {Symbol: "USDT", ContractAddress: "0x55d398326f99059fF775485246999027B3197955", Decimals: 18, PoolID: 2},
			},
		},
		"avalanche": {
			Name:            "Avalanche",
			RPCURL:          "https://api.avax.network/ext/bc/C/rpc",
			ChainID:         43114,
			StargateChainID: 106,
			RouterAddress:   "0x45A01E4e04F14f7A4a6702c74187c5F6222033cd",
			ApproveGasLimit: 70000,
			DynamicFees:     true,
			Stablecoins: map[string]StablecoinConfig{
				"USDC": {Symbol: "USDC", ContractAddress: "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E", Decimals: 6, PoolID: 1},
				"USDT": {Symbol: "USDT", ContractAddress: "0x9702230A8Ea53601f5cD2dc00fDBc13d4dF4A8c7", Decimals: 6, PoolID: 2},
			},
		},
		"polygon": {
			Name:            "Polygon",
			RPCURL:          "https://polygon-rpc.com",
			ChainID:         137,
			StargateChainID: 109,
			RouterAddress:   "0x45A01E4e04F14f7A4a6702c74187c5F6222033cd",
			ApproveGasLimit: 70000,
			DynamicFees:     true,
			Stablecoins: map[string]StablecoinConfig{
				"USDC": {Symbol: "USDC", ContractAddress: "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", Decimals: 6, PoolID: 1},
				"USDT": {Symbol: "USDT", ContractAddress: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F", Decimals: 6, PoolID: 2},
			},
		},
		"arbitrum": {
			Name:            "Arbitrum",
			RPCURL:          "https://arb1.arbitrum.io/rpc",
			ChainID:         42161,
			StargateChainID: 110,
			RouterAddress:   "0x53Bf833A5d6c4ddA888F69c22C88C9f356a41614",
			ApproveGasLimit: 1000000,
			DynamicFees:     true,
			Stablecoins: map[string]StablecoinConfig{
				"USDC": {Symbol: "USDC", ContractAddress: "0xFF970A61A04b1cA14834A43f5dE4533eBDDB5CC8", Decimals: 6, PoolID: 1},
				"USDT": {Symbol: "USDT", ContractAddress: "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", Decimals: 6, PoolID: 2},
			},
		},
		"optimism": {
			Name:            "Optimism",
			RPCURL:          "https://mainnet.optimism.io",
			ChainID:         10,
			StargateChainID: 111,
			RouterAddress:   "0xB0D502E938ed5f4df2E681fE6E419ff29631d62b",
			ApproveGasLimit: 70000,
			DynamicFees:     true,
			Stablecoins: map[string]StablecoinConfig{
				"USDC": {Symbol: "USDC", ContractAddress: "0x7F5c764cBc14f9669B88837ca1490cCa17c31607", Decimals: 6, PoolID: 1},
			},
		},
		"fantom": {
			Name:            "Fantom",
			RPCURL:          "https://rpc.ftm.tools",
			ChainID:         250,
			StargateChainID: 112,
			RouterAddress:   "0xAf5191B0De278C7286d6C7CC6ab6BB8A73bA2Cd6",
			ApproveGasLimit: 70000,
			Stablecoins: map[string]StablecoinConfig{
				"USDC": {Symbol: "USDC", ContractAddress: "0x04068DA6C83AFCFA0e13ba15A6696662335D5B75", Decimals: 6, PoolID: 1},
			},
		},
	}
}
