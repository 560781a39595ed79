package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stargate-bridge/config"
	"stargate-bridge/pkg/wallet"
)

var balancesAddress string

var balancesCmd = &cobra.Command{
	Use:   "balances [network...]",
	Short: "Show native and stablecoin balances on the configured networks",
	Long: `Show the wallet's native token and stablecoin balances. Without
arguments all configured networks are queried.

Examples:
  stargate-bridge balances
  stargate-bridge balances ethereum polygon
  stargate-bridge balances --address 0x123...`,
	Run: runBalances,
}

func init() {
	rootCmd.AddCommand(balancesCmd)

	balancesCmd.Flags().StringVar(&balancesAddress, "address", "", "Address to query (defaults to the configured wallet)")
}

func runBalances(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	address, err := resolveAddress(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	logger, err := newLogger(verbose)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	names := args
	if len(names) == 0 {
		for name := range cfg.Networks {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching balances..."
		s.Start()
	}

	ctx := context.Background()
	results := make(map[string]map[string]string)
	for _, name := range names {
		balances, err := networkBalances(ctx, cfg, name, address, logger)
		if err != nil {
			if !jsonOutput {
				s.Stop()
			}
			printError(err)
			os.Exit(1)
		}
		results[strings.ToLower(name)] = balances
	}

	if jsonOutput {
		output := map[string]interface{}{
			"address":  address.Hex(),
			"balances": results,
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	s.Stop()
	fmt.Printf("\nBalances for %s\n", color.CyanString(address.Hex()))
	for _, name := range names {
		networkCfg, _ := cfg.Network(name)
		fmt.Printf("\n%s\n", color.GreenString(networkCfg.Name))

		balances := results[strings.ToLower(name)]
		symbols := make([]string, 0, len(balances))
		for symbol := range balances {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)
		for _, symbol := range symbols {
			fmt.Printf("  %-8s %s\n", symbol, balances[symbol])
		}
	}
	fmt.Println()
}

func resolveAddress(cfg *config.Config) (common.Address, error) {
	if balancesAddress != "" {
		if !common.IsHexAddress(balancesAddress) {
			return common.Address{}, fmt.Errorf("invalid address: %s", balancesAddress)
		}
		return common.HexToAddress(balancesAddress), nil
	}

	account, err := wallet.FromPrivateKey(cfg.PrivateKey)
	if err != nil {
		return common.Address{}, err
	}
	return account.Address(), nil
}

// networkBalances queries one network for the native balance and every
// configured stablecoin balance, rendered in human units.
func networkBalances(ctx context.Context, cfg *config.Config, name string, address common.Address, logger *zap.Logger) (map[string]string, error) {
	net, err := dialNetwork(cfg, name, logger)
	if err != nil {
		return nil, err
	}
	defer net.Close()

	networkCfg, err := cfg.Network(name)
	if err != nil {
		return nil, err
	}

	balances := make(map[string]string)

	nativeBalance, err := net.GetBalance(ctx, address)
	if err != nil {
		return nil, err
	}
	balances["native"] = formatNativeAmount(nativeBalance)

	for symbol, coin := range networkCfg.Stablecoins {
		tokenBalance, err := net.GetTokenBalance(ctx, common.HexToAddress(coin.ContractAddress), address)
		if err != nil {
			return nil, err
		}
		balances[symbol] = formatTokenAmount(tokenBalance, coin.Decimals)
	}

	return balances, nil
}
