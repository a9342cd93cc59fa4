// Package analyze contains the command that computes spending analytics over
// a filtered slice of the ledger.
package analyze

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cashcanvas/ledger/cmd/root"
	"cashcanvas/ledger/internal/analytics"
)

var (
	filters    root.FilterFlags
	outputFile string

	// Cmd is the analyze command
	Cmd = &cobra.Command{
		Use:   "analyze",
		Short: "Compute spending analytics for filtered transactions",
		Long: `Analyze queries the ledger with the given filters and computes totals,
monthly and per-tag breakdowns, and the running balance timeline. The result
is written as JSON to stdout or to --output.`,
		RunE: runAnalyze,
	}
)

func init() {
	filters.Register(Cmd)
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the JSON result to a file instead of stdout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	filter, err := filters.ToFilter()
	if err != nil {
		return err
	}

	repo, err := root.OpenRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	transactions, err := repo.Transactions(cmd.Context(), filter)
	if err != nil {
		return err
	}
	result := analytics.Compute(transactions)

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analytics result: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, payload, 0600); err != nil {
			return fmt.Errorf("failed to write analytics result: %w", err)
		}
		root.Log.WithField("file", outputFile).Info("Wrote analytics result")
		return nil
	}

	fmt.Println(string(payload))
	return nil
}
