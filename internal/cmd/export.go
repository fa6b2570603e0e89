package cmd

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/willfong/mockbank/internal/config"
	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the ledger to a SQL database",
	Long: `Copy the ledger (the --db snapshot, or the embedded seed) into a SQL
database. The tables are created if missing and their contents replaced in
one transaction.

Example:
  mockbank export --dsn bank.sqlite
  mockbank export --driver mysql --dsn "user:pass@tcp(localhost:3306)/bank"`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("dsn", "", "database connection string")
	exportCmd.Flags().String("driver", config.DefaultDriver, "SQL driver: sqlite or mysql")
}

func runExport(cmd *cobra.Command, args []string) error {
	u := newUI(cmd)
	if appCfg.Database.DSN == "" {
		return fmt.Errorf("--dsn is required")
	}

	e, err := openEngine()
	if err != nil {
		return err
	}
	snap := e.Snapshot()

	spin := u.NewSpinner("Connecting to " + appCfg.Database.Driver)
	spin.Start()
	q, closeFn, err := openQueries(cmd.Context())
	if err != nil {
		spin.Error("connection failed: " + err.Error())
		return err
	}
	defer closeFn()
	spin.Success("connected")

	spin = u.NewSpinner("Writing snapshot")
	spin.Start()
	if err := q.SaveSnapshot(cmd.Context(), snap); err != nil {
		spin.Error(err.Error())
		return err
	}
	spin.Success("done")

	statuses, err := q.StatusCounts(cmd.Context(), "accounts")
	if err != nil {
		return err
	}

	mismatches, err := checkOwnership(cmd.Context(), q, snap)
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		u.Println(u.Warning(m))
	}
	status := "success"
	if len(mismatches) > 0 {
		status = fmt.Sprintf("exported with %d ownership mismatches", len(mismatches))
	}

	c := snap.Counts()
	u.Println(u.SummaryBox("Export Complete", []ui.KV{
		{Key: "Driver", Value: appCfg.Database.Driver},
		{Key: "Customers", Value: fmt.Sprintf("%d", c.Customers)},
		{Key: "Accounts", Value: fmt.Sprintf("%d (%s)", c.Accounts, formatStatuses(statuses))},
		{Key: "Transactions", Value: fmt.Sprintf("%d", c.Transactions)},
		{Key: "Loans", Value: fmt.Sprintf("%d", c.Loans)},
		{Key: "Credit Cards", Value: fmt.Sprintf("%d", c.CreditCards)},
		{Key: "Status", Value: status},
	}))
	return nil
}

// ownedIDs is the subset of database.Queries used by checkOwnership
type ownedIDs interface {
	OwnedIDs(ctx context.Context, table, owner string) ([]string, error)
}

// checkOwnership compares each customer's product lists with the rows the
// database attributes to that customer. Order is not compared.
func checkOwnership(ctx context.Context, q ownedIDs, snap *models.Snapshot) ([]string, error) {
	var out []string
	for _, c := range snap.Customers {
		for _, owned := range []struct {
			table string
			ids   []string
		}{
			{"accounts", c.AccountIDs},
			{"loans", c.LoanIDs},
			{"credit_cards", c.CreditCardIDs},
		} {
			stored, err := q.OwnedIDs(ctx, owned.table, c.CustomerID)
			if err != nil {
				return nil, err
			}
			want := slices.Sorted(slices.Values(owned.ids))
			slices.Sort(stored)
			if !slices.Equal(want, stored) {
				out = append(out, fmt.Sprintf("%s %s: customer lists %v, database has %v",
					c.CustomerID, owned.table, want, stored))
			}
		}
	}
	return out, nil
}

// formatStatuses renders {"active": 8, "frozen": 1} as "active 8, frozen 1".
func formatStatuses(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}
