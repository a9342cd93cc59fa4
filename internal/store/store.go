// Package store is the persistence collaborator for the ledger core: a sqlite
// repository with get-or-create tag resolution, atomic batch inserts,
// reference-counted orphan cleanup, and the filter query the analytics and
// export surfaces run on.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"cashcanvas/ledger/internal/dateutils"
	"cashcanvas/ledger/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Repository wraps the sqlite database holding transactions and their tags.
type Repository struct {
	db *sql.DB
}

// Open creates (or opens) the database at dbPath and applies migrations.
func Open(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Filter is the predicate set for transaction queries. Zero values mean
// "no constraint".
type Filter struct {
	Search           string
	CostCenterIDs    []int64
	SpendCategoryIDs []int64
	Accounts         []string
	StartDate        *time.Time
	EndDate          *time.Time
	MinAmount        *decimal.Decimal
	MaxAmount        *decimal.Decimal
}

// SaveBatch inserts every transaction in one sql transaction: either all rows
// are committed or none. Cost centers and spend categories are resolved
// get-or-create by name inside the same transaction. The saved transactions
// are returned with their assigned ids.
func (r *Repository) SaveBatch(ctx context.Context, transactions []models.Transaction) ([]models.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	saved := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		inserted, err := insertTransaction(ctx, tx, t)
		if err != nil {
			return nil, err
		}
		saved = append(saved, inserted)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	log.WithField("count", len(saved)).Info("Saved transaction batch")
	return saved, nil
}

// CreateTransaction saves a single transaction.
func (r *Repository) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	saved, err := r.SaveBatch(ctx, []models.Transaction{t})
	if err != nil {
		return models.Transaction{}, err
	}
	return saved[0], nil
}

// UpdateTransaction replaces the stored fields and tag links of the
// transaction with t's values, then cleans up any tags orphaned by the change.
// It returns false when no transaction with t.ID exists.
func (r *Repository) UpdateTransaction(ctx context.Context, t models.Transaction) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	var oldCostCenterID int64
	err = tx.QueryRowContext(ctx, "SELECT cost_center_id FROM transactions WHERE id = ?", t.ID).Scan(&oldCostCenterID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load transaction %d: %w", t.ID, err)
	}
	oldCategoryIDs, err := linkedCategoryIDs(ctx, tx, t.ID)
	if err != nil {
		return false, err
	}

	costCenterID, err := getOrCreateCostCenter(ctx, tx, t.CostCenter.Name)
	if err != nil {
		return false, err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE transactions SET date = ?, description = ?, amount = ?, account = ?, cost_center_id = ?, notes = ? WHERE id = ?`,
		dateutils.ToISODate(t.Date), t.Description, t.Amount.String(), t.Account, costCenterID, t.Notes, t.ID)
	if err != nil {
		return false, fmt.Errorf("update transaction %d: %w", t.ID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM transaction_spend_categories WHERE transaction_id = ?", t.ID); err != nil {
		return false, fmt.Errorf("clear category links for %d: %w", t.ID, err)
	}
	if err := linkCategories(ctx, tx, t.ID, t.SpendCategories); err != nil {
		return false, err
	}

	if err := cleanupOrphans(ctx, tx, oldCostCenterID, oldCategoryIDs); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit update: %w", err)
	}
	return true, nil
}

// DeleteTransaction removes a transaction and cleans up tags it orphaned.
// It returns false when the id does not exist.
func (r *Repository) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	var costCenterID int64
	err = tx.QueryRowContext(ctx, "SELECT cost_center_id FROM transactions WHERE id = ?", id).Scan(&costCenterID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load transaction %d: %w", id, err)
	}
	categoryIDs, err := linkedCategoryIDs(ctx, tx, id)
	if err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM transaction_spend_categories WHERE transaction_id = ?", id); err != nil {
		return false, fmt.Errorf("delete category links for %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id); err != nil {
		return false, fmt.Errorf("delete transaction %d: %w", id, err)
	}

	if err := cleanupOrphans(ctx, tx, costCenterID, categoryIDs); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}

	log.WithField("id", id).Info("Deleted transaction")
	return true, nil
}

// Transactions runs the filter query and returns fully resolved transactions,
// each carrying its cost center and ordered spend categories.
func (r *Repository) Transactions(ctx context.Context, f Filter) ([]models.Transaction, error) {
	query := `SELECT t.id, t.date, t.description, t.amount, t.account, t.notes, c.id, c.name
		FROM transactions t
		JOIN cost_centers c ON c.id = t.cost_center_id`
	var clauses []string
	var args []any

	if f.Search != "" {
		clauses = append(clauses, "LOWER(t.description) LIKE LOWER(?)")
		args = append(args, "%"+f.Search+"%")
	}
	if len(f.CostCenterIDs) > 0 {
		clauses = append(clauses, "t.cost_center_id IN ("+placeholders(len(f.CostCenterIDs))+")")
		for _, id := range f.CostCenterIDs {
			args = append(args, id)
		}
	}
	if len(f.SpendCategoryIDs) > 0 {
		clauses = append(clauses,
			"EXISTS (SELECT 1 FROM transaction_spend_categories l WHERE l.transaction_id = t.id AND l.spend_category_id IN ("+
				placeholders(len(f.SpendCategoryIDs))+"))")
		for _, id := range f.SpendCategoryIDs {
			args = append(args, id)
		}
	}
	if len(f.Accounts) > 0 {
		clauses = append(clauses, "t.account IN ("+placeholders(len(f.Accounts))+")")
		for _, a := range f.Accounts {
			args = append(args, a)
		}
	}
	if f.StartDate != nil {
		clauses = append(clauses, "t.date >= ?")
		args = append(args, dateutils.ToISODate(*f.StartDate))
	}
	if f.EndDate != nil {
		clauses = append(clauses, "t.date <= ?")
		args = append(args, dateutils.ToISODate(*f.EndDate))
	}
	if f.MinAmount != nil {
		clauses = append(clauses, "CAST(t.amount AS REAL) >= ?")
		args = append(args, f.MinAmount.InexactFloat64())
	}
	if f.MaxAmount != nil {
		clauses = append(clauses, "CAST(t.amount AS REAL) <= ?")
		args = append(args, f.MaxAmount.InexactFloat64())
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY t.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	byID := make(map[int64]int)
	for rows.Next() {
		var t models.Transaction
		var dateStr, amountStr string
		if err := rows.Scan(&t.ID, &dateStr, &t.Description, &amountStr, &t.Account, &t.Notes,
			&t.CostCenter.ID, &t.CostCenter.Name); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Date, err = time.Parse(dateutils.DateLayoutISO, dateStr); err != nil {
			return nil, fmt.Errorf("stored date %q: %w", dateStr, err)
		}
		if t.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, fmt.Errorf("stored amount %q: %w", amountStr, err)
		}
		byID[t.ID] = len(transactions)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	if err := r.attachCategories(ctx, transactions, byID); err != nil {
		return nil, err
	}
	return transactions, nil
}

// CostCenters lists every cost center ordered by name.
func (r *Repository) CostCenters(ctx context.Context) ([]models.CostCenter, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM cost_centers ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query cost centers: %w", err)
	}
	defer rows.Close()

	var centers []models.CostCenter
	for rows.Next() {
		var c models.CostCenter
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan cost center: %w", err)
		}
		centers = append(centers, c)
	}
	return centers, rows.Err()
}

// SpendCategories lists every spend category ordered by name.
func (r *Repository) SpendCategories(ctx context.Context) ([]models.SpendCategory, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM spend_categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query spend categories: %w", err)
	}
	defer rows.Close()

	var categories []models.SpendCategory
	for rows.Next() {
		var c models.SpendCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan spend category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Accounts lists the distinct account names ordered alphabetically.
func (r *Repository) Accounts(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT account FROM transactions ORDER BY account")
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *Repository) attachCategories(ctx context.Context, transactions []models.Transaction, byID map[int64]int) error {
	if len(transactions) == 0 {
		return nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT l.transaction_id, s.id, s.name
		FROM transaction_spend_categories l
		JOIN spend_categories s ON s.id = l.spend_category_id
		ORDER BY l.transaction_id, l.position`)
	if err != nil {
		return fmt.Errorf("query category links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var txID int64
		var cat models.SpendCategory
		if err := rows.Scan(&txID, &cat.ID, &cat.Name); err != nil {
			return fmt.Errorf("scan category link: %w", err)
		}
		if idx, ok := byID[txID]; ok {
			transactions[idx].SpendCategories = append(transactions[idx].SpendCategories, cat)
		}
	}
	return rows.Err()
}

func insertTransaction(ctx context.Context, tx *sql.Tx, t models.Transaction) (models.Transaction, error) {
	costCenterID, err := getOrCreateCostCenter(ctx, tx, t.CostCenter.Name)
	if err != nil {
		return models.Transaction{}, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (date, description, amount, account, cost_center_id, notes) VALUES (?, ?, ?, ?, ?, ?)`,
		dateutils.ToISODate(t.Date), t.Description, t.Amount.String(), t.Account, costCenterID, t.Notes)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction id: %w", err)
	}

	if err := linkCategories(ctx, tx, id, t.SpendCategories); err != nil {
		return models.Transaction{}, err
	}

	t.ID = id
	t.CostCenter.ID = costCenterID
	resolved, err := resolveCategories(ctx, tx, t.SpendCategories)
	if err != nil {
		return models.Transaction{}, err
	}
	t.SpendCategories = resolved
	return t, nil
}

func linkCategories(ctx context.Context, tx *sql.Tx, txID int64, categories []models.SpendCategory) error {
	for pos, cat := range categories {
		catID, err := getOrCreateSpendCategory(ctx, tx, cat.Name)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO transaction_spend_categories (transaction_id, spend_category_id, position) VALUES (?, ?, ?)",
			txID, catID, pos)
		if err != nil {
			return fmt.Errorf("link category %q: %w", cat.Name, err)
		}
	}
	return nil
}

func resolveCategories(ctx context.Context, tx *sql.Tx, categories []models.SpendCategory) ([]models.SpendCategory, error) {
	resolved := make([]models.SpendCategory, 0, len(categories))
	for _, cat := range categories {
		id, err := getOrCreateSpendCategory(ctx, tx, cat.Name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, models.SpendCategory{ID: id, Name: cat.Name})
	}
	return resolved, nil
}

func getOrCreateCostCenter(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	return getOrCreateNamed(ctx, tx, "cost_centers", models.NormalizeCostCenterName(name))
}

func getOrCreateSpendCategory(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		normalized = models.Uncategorized
	}
	return getOrCreateNamed(ctx, tx, "spend_categories", normalized)
}

func getOrCreateNamed(ctx context.Context, tx *sql.Tx, table, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, "SELECT id FROM "+table+" WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup %s %q: %w", table, name, err)
	}

	res, err := tx.ExecContext(ctx, "INSERT INTO "+table+" (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("create %s %q: %w", table, name, err)
	}
	return res.LastInsertId()
}

func linkedCategoryIDs(ctx context.Context, tx *sql.Tx, txID int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT spend_category_id FROM transaction_spend_categories WHERE transaction_id = ?", txID)
	if err != nil {
		return nil, fmt.Errorf("query category links for %d: %w", txID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category link: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// cleanupOrphans deletes the given cost center and spend categories when no
// transaction references them anymore. Tag lifecycle is reference-counted:
// tags exist exactly as long as some transaction carries them.
func cleanupOrphans(ctx context.Context, tx *sql.Tx, costCenterID int64, categoryIDs []int64) error {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM cost_centers WHERE id = ?
		 AND NOT EXISTS (SELECT 1 FROM transactions WHERE cost_center_id = ?)`,
		costCenterID, costCenterID)
	if err != nil {
		return fmt.Errorf("cleanup cost center %d: %w", costCenterID, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.WithField("id", costCenterID).Info("Cleaned up orphaned cost center")
	}

	for _, id := range categoryIDs {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM spend_categories WHERE id = ?
			 AND NOT EXISTS (SELECT 1 FROM transaction_spend_categories WHERE spend_category_id = ?)`,
			id, id)
		if err != nil {
			return fmt.Errorf("cleanup spend category %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			log.WithField("id", id).Info("Cleaned up orphaned spend category")
		}
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
