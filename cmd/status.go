package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stargate-bridge/config"
	"stargate-bridge/pkg/types"
)

var (
	statusNetwork string
	statusWait    bool
)

var statusCmd = &cobra.Command{
	Use:   "status <tx-hash>",
	Short: "Check the status of a submitted transaction",
	Long: `Check whether a transaction is pending, mined or failed on a network.
With --wait the command polls until the transaction is confirmed or the
confirmation window expires.

Examples:
  stargate-bridge status 0x1234...abcd --network polygon
  stargate-bridge status 0x1234...abcd --network ethereum --wait`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusNetwork, "network", "", "Network the transaction was submitted on (REQUIRED)")
	statusCmd.Flags().BoolVarP(&statusWait, "wait", "w", false, "Poll until the transaction is confirmed")
	_ = statusCmd.MarkFlagRequired("network")
}

func runStatus(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	hash := common.HexToHash(args[0])

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	logger, err := newLogger(verbose)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	net, err := dialNetwork(cfg, statusNetwork, logger)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer net.Close()

	ctx := context.Background()

	if statusWait {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		if !jsonOutput {
			s.Suffix = " Waiting for confirmation..."
			s.Start()
		}
		result := net.WaitForTransaction(ctx, hash)
		if !jsonOutput {
			s.Stop()
		}
		printStatusResult(hash, result, jsonOutput)
		return
	}

	info, err := net.GetTransactionInfo(ctx, hash)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(info, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("\n  Hash:     %s\n", color.CyanString(info.Hash))
	fmt.Printf("  Nonce:    %d\n", info.Nonce)
	fmt.Printf("  To:       %s\n", info.To)
	fmt.Printf("  Value:    %s wei\n", info.Value)
	if info.Pending {
		color.Yellow("  Status:   pending\n")
		return
	}
	fmt.Printf("  Block:    %d\n", info.BlockNumber)
	fmt.Printf("  Gas used: %d\n", info.GasUsed)
	if info.Status == string(types.TransactionSuccess) {
		color.Green("  Status:   success\n")
	} else {
		color.Red("  Status:   %s\n", info.Status)
	}
}

func printStatusResult(hash common.Hash, result types.TransactionStatus, jsonOutput bool) {
	if jsonOutput {
		jsonData, _ := json.MarshalIndent(map[string]string{
			"hash":   hash.Hex(),
			"status": string(result),
		}, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	switch result {
	case types.TransactionSuccess:
		color.Green("\n✓ Transaction %s confirmed\n", hash.Hex())
	case types.TransactionFailed:
		color.Red("\n✗ Transaction %s failed\n", hash.Hex())
	default:
		color.Yellow("\nTransaction %s not found within the confirmation window\n", hash.Hex())
	}
}
