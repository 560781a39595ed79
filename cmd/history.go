package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stargate-bridge/config"
	"stargate-bridge/pkg/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past bridge attempts",
	Long: `Show the locally recorded bridge attempts, oldest first.

Examples:
  stargate-bridge history
  stargate-bridge history --json`,
	Run: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	storage, err := history.NewStorage(cfg.HistoryFile)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	records := storage.List()

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	if len(records) == 0 {
		fmt.Println("\nNo bridge attempts recorded yet.")
		return
	}

	fmt.Printf("\n%d bridge attempt(s) in %s\n\n", len(records), storage.GetFilePath())
	for _, record := range records {
		outcome := record.Outcome
		switch outcome {
		case history.OutcomeSuccess:
			outcome = color.GreenString(outcome)
		case history.OutcomeRejected:
			outcome = color.YellowString(outcome)
		default:
			outcome = color.RedString(outcome)
		}

		fmt.Printf("  %s  %s %s  %s -> %s  %s\n",
			record.Timestamp.Format("2006-01-02 15:04:05"),
			record.Amount,
			record.Token,
			record.SourceNetwork,
			record.DestNetwork,
			outcome)
		if record.ErrorMessage != "" {
			fmt.Printf("      %s\n", color.RedString(record.ErrorMessage))
		}
	}
	fmt.Println()
}
