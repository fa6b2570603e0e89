package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willfong/mockbank/internal/config"
	"github.com/willfong/mockbank/internal/data"
	"github.com/willfong/mockbank/internal/ledger"
	"github.com/willfong/mockbank/internal/ui"
)

var importOut string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Read the ledger from a SQL database into a snapshot file",
	Long: `Load a ledger previously written by 'mockbank export', check it, and
write it to a snapshot file (--out, or --db when --out is not given).

Example:
  mockbank import --dsn bank.sqlite --out bank.yaml`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("dsn", "", "database connection string")
	importCmd.Flags().String("driver", config.DefaultDriver, "SQL driver: sqlite or mysql")
	importCmd.Flags().StringVar(&importOut, "out", "", "snapshot file to write (defaults to --db)")
}

func runImport(cmd *cobra.Command, args []string) error {
	u := newUI(cmd)
	if appCfg.Database.DSN == "" {
		return fmt.Errorf("--dsn is required")
	}
	out := importOut
	if out == "" {
		out = appCfg.Ledger.DBPath
	}
	if out == "" {
		return fmt.Errorf("--out or --db is required")
	}

	spin := u.NewSpinner("Reading snapshot from " + appCfg.Database.Driver)
	spin.Start()
	q, closeFn, err := openQueries(cmd.Context())
	if err != nil {
		spin.Error("connection failed: " + err.Error())
		return err
	}
	defer closeFn()

	snap, err := q.LoadSnapshot(cmd.Context())
	if err != nil {
		spin.Error(err.Error())
		return err
	}
	spin.Success("done")

	// the engine rejects duplicate IDs and the audit catches broken balances
	e, err := ledger.New(snap, ledger.WithLogger(logger.Named("ledger")))
	if err != nil {
		return fmt.Errorf("imported ledger is invalid: %w", err)
	}
	violations := e.Audit()
	for _, v := range violations {
		u.Println(u.Warning(v.String()))
	}

	if err := data.Save(out, snap); err != nil {
		return err
	}

	c := snap.Counts()
	status := "success"
	if len(violations) > 0 {
		status = fmt.Sprintf("imported with %d audit warnings", len(violations))
	}
	u.Println(u.SummaryBox("Import Complete", []ui.KV{
		{Key: "Written To", Value: out},
		{Key: "Customers", Value: fmt.Sprintf("%d", c.Customers)},
		{Key: "Accounts", Value: fmt.Sprintf("%d", c.Accounts)},
		{Key: "Transactions", Value: fmt.Sprintf("%d", c.Transactions)},
		{Key: "Loans", Value: fmt.Sprintf("%d", c.Loans)},
		{Key: "Credit Cards", Value: fmt.Sprintf("%d", c.CreditCards)},
		{Key: "Status", Value: status},
	}))
	return nil
}
