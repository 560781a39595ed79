package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stargate-bridge/config"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List the configured networks and their stablecoins",
	Long: `List every configured network with its chain ids, Stargate router
address and bridgeable stablecoins.

Examples:
  stargate-bridge networks
  stargate-bridge networks --json`,
	Run: runNetworks,
}

func init() {
	rootCmd.AddCommand(networksCmd)
}

func runNetworks(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(cfg.Networks, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	names := make([]string, 0, len(cfg.Networks))
	for name := range cfg.Networks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		networkCfg := cfg.Networks[name]
		fmt.Printf("\n%s (%s)\n", color.GreenString(networkCfg.Name), name)
		fmt.Printf("  Chain ID:          %d\n", networkCfg.ChainID)
		fmt.Printf("  Stargate chain ID: %d\n", networkCfg.StargateChainID)
		fmt.Printf("  Router:            %s\n", color.CyanString(networkCfg.RouterAddress))
		fmt.Printf("  RPC:               %s\n", networkCfg.RPCURL)

		symbols := make([]string, 0, len(networkCfg.Stablecoins))
		for symbol := range networkCfg.Stablecoins {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)
		for _, symbol := range symbols {
			coin := networkCfg.Stablecoins[symbol]
			fmt.Printf("  %-6s pool %d  %s (%d decimals)\n",
				color.YellowString(symbol), coin.PoolID, coin.ContractAddress, coin.Decimals)
		}
	}
	fmt.Println()
}
