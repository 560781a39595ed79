package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stargate-bridge",
	Short: "A CLI for bridging stablecoins between EVM chains over Stargate",
	Long: `stargate-bridge is a command-line tool that moves stablecoins between
EVM-compatible blockchains through the Stargate router, paying the
LayerZero relay fee in the source chain's native token.

Examples:
  stargate-bridge bridge 100 USDC from ethereum to polygon
  stargate-bridge quote 100 USDC from arbitrum to optimism
  stargate-bridge balances
  stargate-bridge status <tx-hash> --network polygon`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}
