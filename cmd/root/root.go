// Package root contains the root command for the application
package root

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cashcanvas/ledger/internal/cashcanvasparser"
	"cashcanvas/ledger/internal/common"
	"cashcanvas/ledger/internal/config"
	"cashcanvas/ledger/internal/dateutils"
	"cashcanvas/ledger/internal/discoverparser"
	"cashcanvas/ledger/internal/export"
	"cashcanvas/ledger/internal/parser"
	"cashcanvas/ledger/internal/schwabparser"
	"cashcanvas/ledger/internal/store"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available after PersistentPreRun
	Cfg *config.Config

	// DatabasePath overrides the configured database location when set
	DatabasePath string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "cashcanvas",
		Short: "A personal finance ledger: import bank CSV exports, analyze spending, export your data.",
		Long: `cashcanvas is a personal finance ledger. It imports transactions from
Discover, Schwab checking, and CashCanvas CSV exports, stores them in a local
sqlite database, and computes spending analytics over any filtered slice of
the ledger.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to cashcanvas!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				return err
			}
			Log = config.ConfigureLoggingFromConfig(Cfg)

			// Set the configured logger for all packages
			common.SetLogger(Log)
			parser.SetLogger(Log)
			discoverparser.SetLogger(Log)
			schwabparser.SetLogger(Log)
			cashcanvasparser.SetLogger(Log)
			store.SetLogger(Log)
			export.SetLogger(Log)
			return nil
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&DatabasePath, "db", "", "Path to the sqlite database (overrides configuration)")
}

// OpenRepository opens the configured sqlite store, honoring the --db override.
func OpenRepository() (*store.Repository, error) {
	path := DatabasePath
	if path == "" {
		path = Cfg.Database.Path
	}
	return store.Open(path)
}

// FilterFlags is the filter predicate set shared by the analyze and export
// commands. It mirrors the store's filter query surface.
type FilterFlags struct {
	Search           string
	CostCenterIDs    []int64
	SpendCategoryIDs []int64
	Accounts         []string
	StartDate        string
	EndDate          string
	MinAmount        string
	MaxAmount        string
}

// Register adds the filter flags to a command.
func (f *FilterFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Search, "search", "", "Filter by text in the description")
	cmd.Flags().Int64SliceVar(&f.CostCenterIDs, "cost-center", nil, "Filter by cost center ids")
	cmd.Flags().Int64SliceVar(&f.SpendCategoryIDs, "category", nil, "Filter by spend category ids")
	cmd.Flags().StringSliceVar(&f.Accounts, "account", nil, "Filter by account names")
	cmd.Flags().StringVar(&f.StartDate, "start-date", "", "Start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.EndDate, "end-date", "", "End date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.MinAmount, "min-amount", "", "Minimum amount")
	cmd.Flags().StringVar(&f.MaxAmount, "max-amount", "", "Maximum amount")
}

// ToFilter converts the flag values into a store filter.
func (f *FilterFlags) ToFilter() (store.Filter, error) {
	filter := store.Filter{
		Search:           strings.TrimSpace(f.Search),
		CostCenterIDs:    f.CostCenterIDs,
		SpendCategoryIDs: f.SpendCategoryIDs,
		Accounts:         f.Accounts,
	}

	if f.StartDate != "" {
		t, err := time.Parse(dateutils.DateLayoutISO, f.StartDate)
		if err != nil {
			return store.Filter{}, fmt.Errorf("invalid --start-date '%s': expected YYYY-MM-DD", f.StartDate)
		}
		filter.StartDate = &t
	}
	if f.EndDate != "" {
		t, err := time.Parse(dateutils.DateLayoutISO, f.EndDate)
		if err != nil {
			return store.Filter{}, fmt.Errorf("invalid --end-date '%s': expected YYYY-MM-DD", f.EndDate)
		}
		filter.EndDate = &t
	}
	if f.MinAmount != "" {
		d, err := decimal.NewFromString(f.MinAmount)
		if err != nil {
			return store.Filter{}, fmt.Errorf("invalid --min-amount '%s': expected a number", f.MinAmount)
		}
		filter.MinAmount = &d
	}
	if f.MaxAmount != "" {
		d, err := decimal.NewFromString(f.MaxAmount)
		if err != nil {
			return store.Filter{}, fmt.Errorf("invalid --max-amount '%s': expected a number", f.MaxAmount)
		}
		filter.MaxAmount = &d
	}

	return filter, nil
}
