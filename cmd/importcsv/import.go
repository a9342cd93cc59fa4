// Package importcsv contains the command that imports a bank CSV export into
// the ledger.
package importcsv

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cashcanvas/ledger/cmd/root"
	"cashcanvas/ledger/internal/parser"
)

var (
	inputFile   string
	institution string

	// Cmd is the import command
	Cmd = &cobra.Command{
		Use:   "import",
		Short: "Import a bank CSV export into the ledger",
		Long: `Import parses a CSV export from a supported institution (discover,
schwab, cashcanvas) and saves every transaction in one atomic batch. All rows
are validated before anything is saved: if any row fails, the whole file is
rejected and every problem is reported at once.`,
		RunE: runImport,
	}
)

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "CSV file to import")
	Cmd.Flags().StringVarP(&institution, "institution", "t", "", "Institution the file comes from (discover, schwab, cashcanvas)")
	_ = Cmd.MarkFlagRequired("file")
	_ = Cmd.MarkFlagRequired("institution")
}

func runImport(cmd *cobra.Command, args []string) error {
	if !strings.HasSuffix(strings.ToLower(inputFile), ".csv") {
		return fmt.Errorf("file must be a CSV: %s", inputFile)
	}

	info, err := os.Stat(inputFile)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if maxSize := root.Cfg.MaxFileSizeBytes(); info.Size() > maxSize {
		return fmt.Errorf("file too large: maximum size is %dMB", root.Cfg.Import.MaxFileSizeMB)
	}

	contents, err := os.ReadFile(inputFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}

	transactions, err := parser.ParseCSV(contents, institution)
	if err != nil {
		return err
	}
	root.Log.WithField("count", len(transactions)).Info("Parsed transactions from CSV")

	repo, err := root.OpenRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	saved, err := repo.SaveBatch(cmd.Context(), transactions)
	if err != nil {
		return err
	}

	fmt.Printf("Successfully loaded %d transactions from %s\n", len(saved), institution)
	return nil
}
