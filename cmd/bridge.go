package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stargate-bridge/config"
	"stargate-bridge/pkg/history"
	"stargate-bridge/pkg/network"
	"stargate-bridge/pkg/parser"
	"stargate-bridge/pkg/stargate"
	"stargate-bridge/pkg/wallet"
)

var (
	bridgeSlippage  float64
	bridgeNoConfirm bool
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge <amount> <token> from <network> to <network>",
	Short: "Bridge a stablecoin between two EVM chains",
	Long: `Bridge a stablecoin from one EVM chain to another through the Stargate
router. The LayerZero relay fee is paid in the source chain's native token,
so the wallet needs enough native balance on top of the token amount.

Examples:
  # Bridge USDC from Ethereum to Polygon
  stargate-bridge bridge 100 USDC from ethereum to polygon

  # Accept up to 1% slippage on the destination amount
  stargate-bridge bridge 250 USDT from bsc to avalanche --slippage 0.01

  # Skip the confirmation prompt
  stargate-bridge bridge 100 USDC from arbitrum to optimism --yes`,
	Args: cobra.MinimumNArgs(1),
	Run:  runBridge,
}

func init() {
	rootCmd.AddCommand(bridgeCmd)

	bridgeCmd.Flags().Float64Var(&bridgeSlippage, "slippage", -1, "Accepted fractional shortfall on the destination amount (default from config)")
	bridgeCmd.Flags().BoolVarP(&bridgeNoConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func runBridge(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	req, cleanup, err := prepareBridgeRequest(args, verbose)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer cleanup()

	ctx := context.Background()

	// Show the fee quote before asking for confirmation
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Estimating fees..."
		s.Start()
	}
	layerZeroFee, feeErr := stargate.EstimateLayerZeroFee(ctx, req.SrcNetwork, req.DstNetwork, req.Account.Address())
	gasCost, gasErr := stargate.EstimateSwapGasCost(ctx, req.SrcNetwork)
	if !jsonOutput {
		s.Stop()
	}
	if feeErr != nil {
		printError(feeErr)
		os.Exit(1)
	}
	if gasErr != nil {
		printError(gasErr)
		os.Exit(1)
	}

	if !jsonOutput {
		displayBridgeSummary(req, layerZeroFee.String(), gasCost.String())
		if !bridgeNoConfirm {
			if !confirmPrompt("Proceed with bridge?") {
				fmt.Println("\nBridge cancelled.")
				os.Exit(0)
			}
		}
		s.Suffix = " Bridging..."
		s.Start()
	}

	ok, err := runBridgeRequest(ctx, req, verbose)
	if !jsonOutput {
		s.Stop()
	}

	if jsonOutput {
		outcome := bridgeOutcome(ok, err)
		output := map[string]interface{}{
			"source_network": req.SrcNetwork.Name(),
			"dest_network":   req.DstNetwork.Name(),
			"token":          req.SrcStablecoin.Symbol,
			"amount":         req.Amount.String(),
			"slippage":       req.Slippage,
			"outcome":        outcome,
		}
		if err != nil {
			output["error"] = err.Error()
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		if err != nil || !ok {
			os.Exit(1)
		}
		return
	}

	switch {
	case err != nil:
		printError(err)
		os.Exit(1)
	case !ok:
		color.Yellow("\nBridge rejected: insufficient balance on %s to cover the amount and fees.\n", req.SrcNetwork.Name())
		os.Exit(1)
	default:
		color.Green("\n✓ Bridge completed!")
		fmt.Printf("  %s %s moved from %s to %s\n\n",
			formatTokenAmount(req.Amount, req.SrcStablecoin.Decimals),
			req.SrcStablecoin.Symbol,
			req.SrcNetwork.Name(),
			req.DstNetwork.Name())
	}
}

// prepareBridgeRequest parses the command phrase and resolves it against
// configuration into a validated request. The returned cleanup closes
// the RPC connections.
func prepareBridgeRequest(args []string, verbose bool) (stargate.Request, func(), error) {
	noop := func() {}

	commandStr := strings.Join(args, " ")
	parsedCmd, err := parser.ParseBridgeCommand(commandStr)
	if err != nil {
		return stargate.Request{}, noop, err
	}
	if err := parser.ValidateBridgeCommand(parsedCmd); err != nil {
		return stargate.Request{}, noop, err
	}

	cfg, err := config.Load()
	if err != nil {
		return stargate.Request{}, noop, err
	}

	account, err := wallet.FromPrivateKey(cfg.PrivateKey)
	if err != nil {
		return stargate.Request{}, noop, err
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return stargate.Request{}, noop, err
	}

	srcCfg, err := cfg.Network(parsedCmd.SourceNetwork)
	if err != nil {
		return stargate.Request{}, noop, err
	}
	dstCfg, err := cfg.Network(parsedCmd.DestNetwork)
	if err != nil {
		return stargate.Request{}, noop, err
	}

	srcCoinCfg, err := srcCfg.Stablecoin(parsedCmd.Token)
	if err != nil {
		return stargate.Request{}, noop, err
	}
	dstCoinCfg, err := dstCfg.Stablecoin(parsedCmd.Token)
	if err != nil {
		return stargate.Request{}, noop, err
	}

	amount, err := parseTokenAmount(parsedCmd.Amount, srcCoinCfg.Decimals)
	if err != nil {
		return stargate.Request{}, noop, err
	}

	slippage := cfg.Slippage
	if bridgeSlippage >= 0 {
		slippage = bridgeSlippage
	}

	srcNetwork, err := network.Dial(srcCfg, logger)
	if err != nil {
		return stargate.Request{}, noop, err
	}
	dstNetwork, err := network.Dial(dstCfg, logger)
	if err != nil {
		srcNetwork.Close()
		return stargate.Request{}, noop, err
	}
	cleanup := func() {
		srcNetwork.Close()
		dstNetwork.Close()
	}

	req := stargate.Request{
		Account:       account,
		SrcNetwork:    srcNetwork,
		DstNetwork:    dstNetwork,
		SrcStablecoin: stablecoinFromConfig(srcCoinCfg),
		DstStablecoin: stablecoinFromConfig(dstCoinCfg),
		Amount:        amount,
		Slippage:      slippage,
	}
	if err := req.Validate(); err != nil {
		cleanup()
		return stargate.Request{}, noop, err
	}
	return req, cleanup, nil
}

// runBridgeRequest executes the bridge and records the attempt.
func runBridgeRequest(ctx context.Context, req stargate.Request, verbose bool) (bool, error) {
	logger, logErr := newLogger(verbose)
	if logErr != nil {
		return false, logErr
	}

	helper, err := stargate.NewBridgeHelper(req, logger)
	if err != nil {
		return false, err
	}

	ok, err := helper.MakeBridge(ctx)
	recordBridgeAttempt(req, ok, err)
	return ok, err
}

func recordBridgeAttempt(req stargate.Request, ok bool, bridgeErr error) {
	storage, err := history.NewStorage(config.Get().HistoryFile)
	if err != nil {
		return
	}

	record := history.Record{
		SourceNetwork: req.SrcNetwork.Name(),
		DestNetwork:   req.DstNetwork.Name(),
		Token:         req.SrcStablecoin.Symbol,
		Amount:        req.Amount.String(),
		Slippage:      req.Slippage,
		Outcome:       bridgeOutcome(ok, bridgeErr),
	}
	if bridgeErr != nil {
		record.ErrorMessage = bridgeErr.Error()
	}
	_ = storage.Append(record)
}

func bridgeOutcome(ok bool, err error) string {
	switch {
	case errors.Is(err, stargate.ErrTransactionNotFound):
		return history.OutcomeNotFound
	case err != nil:
		return history.OutcomeFailed
	case !ok:
		return history.OutcomeRejected
	default:
		return history.OutcomeSuccess
	}
}

func displayBridgeSummary(req stargate.Request, layerZeroFee, gasCost string) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                    BRIDGE SUMMARY")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  From:            %s\n", req.SrcNetwork.Name())
	fmt.Printf("  To:              %s\n", req.DstNetwork.Name())
	fmt.Printf("  Amount:          %s %s\n",
		formatTokenAmount(req.Amount, req.SrcStablecoin.Decimals),
		color.YellowString(req.SrcStablecoin.Symbol))
	fmt.Printf("  Min. received:   %s %s\n",
		formatTokenAmount(req.AmountWithSlippage(), req.SrcStablecoin.Decimals),
		color.YellowString(req.DstStablecoin.Symbol))
	fmt.Printf("  Sender:          %s\n", color.CyanString(req.Account.Address().Hex()))
	fmt.Printf("  LayerZero fee:   %s wei\n", layerZeroFee)
	fmt.Printf("  Max gas cost:    %s wei\n", gasCost)

	fmt.Println("\n" + strings.Repeat("=", 60))
}
