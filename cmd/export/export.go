// Package export contains the command that writes filtered transactions as a
// CashCanvas CSV for bulk editing and later re-import.
package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"cashcanvas/ledger/cmd/root"
	"cashcanvas/ledger/internal/export"
)

var (
	filters    root.FilterFlags
	outputFile string

	// Cmd is the export command
	Cmd = &cobra.Command{
		Use:   "export",
		Short: "Export filtered transactions as a CashCanvas CSV",
		Long: `Export writes the filtered transactions in the CashCanvas CSV format.
The file can be bulk-edited in a spreadsheet and re-imported with
'import --institution cashcanvas'.`,
		RunE: runExport,
	}
)

func init() {
	filters.Register(Cmd)
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file")
	_ = Cmd.MarkFlagRequired("output")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	if err := export.WriteFile(outputFile, transactions); err != nil {
		return err
	}
	fmt.Printf("Exported %d transactions to %s\n", len(transactions), outputFile)
	return nil
}
