package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stargate-bridge/pkg/stargate"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <token> from <network> to <network>",
	Short: "Estimate the fees for a bridge without submitting anything",
	Long: `Estimate the LayerZero relay fee and the worst-case gas cost for a
bridge, and check whether the wallet could afford it. No transaction is
submitted.

Examples:
  stargate-bridge quote 100 USDC from ethereum to polygon
  stargate-bridge quote 250 USDT from bsc to avalanche --json`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	req, cleanup, err := prepareBridgeRequest(args, verbose)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer cleanup()

	ctx := context.Background()
	sender := req.Account.Address()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching quote..."
		s.Start()
	}

	layerZeroFee, err := stargate.EstimateLayerZeroFee(ctx, req.SrcNetwork, req.DstNetwork, sender)
	if err != nil {
		s.Stop()
		printError(err)
		os.Exit(1)
	}
	gasCost, err := stargate.EstimateSwapGasCost(ctx, req.SrcNetwork)
	if err != nil {
		s.Stop()
		printError(err)
		os.Exit(1)
	}

	nativeBalance, err := req.SrcNetwork.GetBalance(ctx, sender)
	if err != nil {
		s.Stop()
		printError(err)
		os.Exit(1)
	}
	tokenBalance, err := req.SrcNetwork.GetTokenBalance(ctx, common.HexToAddress(req.SrcStablecoin.ContractAddress), sender)
	if err != nil {
		s.Stop()
		printError(err)
		os.Exit(1)
	}

	if !jsonOutput {
		s.Stop()
	}

	required := new(big.Int).Add(gasCost, layerZeroFee)
	feasible := nativeBalance.Cmp(required) > 0 && tokenBalance.Cmp(req.Amount) >= 0

	if jsonOutput {
		output := map[string]interface{}{
			"source_network": req.SrcNetwork.Name(),
			"dest_network":   req.DstNetwork.Name(),
			"token":          req.SrcStablecoin.Symbol,
			"amount":         req.Amount.String(),
			"min_received":   req.AmountWithSlippage().String(),
			"layerzero_fee":  layerZeroFee.String(),
			"max_gas_cost":   gasCost.String(),
			"native_balance": nativeBalance.String(),
			"token_balance":  tokenBalance.String(),
			"feasible":       feasible,
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayBridgeSummary(req, layerZeroFee.String(), gasCost.String())
	fmt.Printf("\n  Native balance:  %s\n", formatNativeAmount(nativeBalance))
	fmt.Printf("  Token balance:   %s %s\n",
		formatTokenAmount(tokenBalance, req.SrcStablecoin.Decimals), req.SrcStablecoin.Symbol)
	if feasible {
		color.Green("\n  The wallet can afford this bridge.\n")
	} else {
		color.Yellow("\n  The wallet cannot afford this bridge.\n")
	}
}
