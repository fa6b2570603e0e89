package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/mockbank/internal/data"
	"github.com/willfong/mockbank/internal/ledger"
	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/tools"
	"github.com/willfong/mockbank/internal/utils"
)

// execute runs the root command with args against fresh flag and viper state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// seedFile writes the embedded seed to a temp snapshot file.
func seedFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, data.Save(path, data.MustSeed()))
	return path
}

func accountBalance(t *testing.T, args ...string) utils.Money {
	t.Helper()
	out, err := execute(t, append([]string{"tool", "get_account_info", "--args", `{"account_id":"account_2001"}`}, args...)...)
	require.NoError(t, err, out)

	var info ledger.AccountInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info), out)
	return info.Balance
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "=== mockbank ===")
	assert.Contains(t, out, Version)
}

func TestStats(t *testing.T) {
	out, err := execute(t, "stats", "--json")
	require.NoError(t, err)

	var stats ledger.Statistics
	require.NoError(t, json.Unmarshal([]byte(out), &stats), out)
	assert.Equal(t, 7, stats.NumCustomers)
	assert.Equal(t, 9, stats.NumAccounts)
	assert.Equal(t, 2, stats.NumLoans)

	out, err = execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Ledger Statistics")
	assert.Contains(t, out, "embedded seed")
	assert.Contains(t, out, "clean")
}

func TestToolsList(t *testing.T) {
	out, err := execute(t, "tools")
	require.NoError(t, err)
	assert.Contains(t, out, "process_transfer")
	assert.Contains(t, out, "get_statistics")

	out, err = execute(t, "tools", "--json")
	require.NoError(t, err)
	var defs []tools.Definition
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	assert.Len(t, defs, 19)
}

func TestToolCall(t *testing.T) {
	assert.Equal(t, utils.Dollars(2500), accountBalance(t))

	out, err := execute(t, "tool", "process_withdrawal", "--args", `{"account_id":"account_2001","amount":1000000}`)
	require.NoError(t, err, "business failures are results")
	assert.Contains(t, out, `"error"`)

	_, err = execute(t, "tool", "no_such_tool")
	assert.ErrorIs(t, err, tools.ErrUnknownTool)

	_, err = execute(t, "tool", "get_account_info", "--args", `{"account":"account_2001"}`)
	assert.ErrorIs(t, err, tools.ErrBadArguments)
}

func TestToolSave(t *testing.T) {
	path := seedFile(t, "bank.json")

	// without --save the deposit is lost
	_, err := execute(t, "tool", "process_deposit", "--db", path, "--args", `{"account_id":"account_2001","amount":200}`)
	require.NoError(t, err)
	assert.Equal(t, utils.Dollars(2500), accountBalance(t, "--db", path))

	_, err = execute(t, "tool", "process_deposit", "--db", path, "--save", "--args", `{"account_id":"account_2001","amount":200}`)
	require.NoError(t, err)
	assert.Equal(t, utils.Dollars(2700), accountBalance(t, "--db", path))

	// a rejected write leaves the file alone
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = execute(t, "tool", "process_deposit", "--db", path, "--save", "--args", `{"account_id":"account_2007","amount":50}`)
	require.NoError(t, err)
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSaveNeedsSnapshotFile(t *testing.T) {
	_, err := execute(t, "tool", "process_deposit", "--save", "--args", `{"account_id":"account_2001","amount":1}`)
	assert.ErrorContains(t, err, "ledger.save_on_exit requires ledger.db_path")
}

func TestConfigFileAndEnv(t *testing.T) {
	path := seedFile(t, "bank.yaml")
	cfgPath := filepath.Join(t.TempDir(), "mockbank.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ledger:\n  db_path: "+path+"\n"), 0644))

	_, err := execute(t, "tool", "process_deposit", "--config", cfgPath, "--save", "--args", `{"account_id":"account_2001","amount":1}`)
	require.NoError(t, err)
	assert.Equal(t, utils.NewMoney(2501, 0), accountBalance(t, "--config", cfgPath))

	t.Setenv("MOCKBANK_SIMULATE_WORKERS", "0")
	_, err = execute(t, "simulate")
	assert.ErrorContains(t, err, "simulate.workers must be positive")
}

func TestSimulate(t *testing.T) {
	path := seedFile(t, "bank.json")

	out, err := execute(t, "simulate", "--db", path, "--save", "--workers", "2", "--operations", "25", "--seed", "7")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Simulation Complete")
	assert.Contains(t, out, "Seed:")
	assert.Contains(t, out, "clean")
	assert.Contains(t, out, "Operations: 50/50 done")

	snap, err := data.Load(path)
	require.NoError(t, err)
	assert.Greater(t, len(snap.Transactions), len(data.MustSeed().Transactions))
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "bank.sqlite")
	out := filepath.Join(dir, "bank.yaml")

	text, err := execute(t, "export", "--dsn", dsn)
	require.NoError(t, err, text)
	assert.Contains(t, text, "Export Complete")
	assert.Contains(t, text, "active 8, frozen 1")
	assert.Regexp(t, `Status:\s+success\n`, text)

	text, err = execute(t, "import", "--dsn", dsn, "--out", out)
	require.NoError(t, err, text)
	assert.Contains(t, text, "Import Complete")

	snap, err := data.Load(out)
	require.NoError(t, err)
	assert.Equal(t, data.MustSeed().Counts(), snap.Counts())

	_, err = execute(t, "import", "--dsn", dsn)
	assert.ErrorContains(t, err, "--out or --db is required")
	_, err = execute(t, "export")
	assert.ErrorContains(t, err, "--dsn is required")
}

func TestSchema(t *testing.T) {
	out, err := execute(t, "schema", "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS customers")
	assert.Contains(t, out, "body TEXT NOT NULL")
	assert.NotContains(t, out, "CREATE INDEX")

	out, err = execute(t, "schema", "indexes", "--driver", "mysql")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE INDEX idx_accounts_owner ON accounts (owner_id);")

	_, err = execute(t, "schema", "views")
	assert.ErrorContains(t, err, "unknown schema type")
}

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.yaml")
	out, err := execute(t, "generate", "--customers", "25", "--seed", "7", "--out", path, "--no-color")
	require.NoError(t, err, out)
	assert.Contains(t, out, "=== Generation Complete ===")
	assert.Regexp(t, `Seed:\s+7\n`, out)

	out, err = execute(t, "stats", "--db", path, "--json")
	require.NoError(t, err, out)
	var stats ledger.Statistics
	require.NoError(t, json.Unmarshal([]byte(out), &stats), out)
	assert.Equal(t, 25, stats.NumCustomers)

	_, err = execute(t, "generate", "--customers", "5")
	assert.ErrorContains(t, err, "--out or --db is required")

	_, err = execute(t, "generate", "--customers", "0", "--out", path)
	assert.ErrorContains(t, err, "customers must be positive")
}

type fakeOwnership map[string][]string

func (f fakeOwnership) OwnedIDs(_ context.Context, table, owner string) ([]string, error) {
	return append([]string(nil), f[table+"/"+owner]...), nil
}

func TestCheckOwnership(t *testing.T) {
	snap := &models.Snapshot{Customers: []models.Customer{
		{CustomerID: "customer_1001", AccountIDs: []string{"account_2002", "account_2001"}, LoanIDs: []string{"loan_4001"}},
	}}

	mismatches, err := checkOwnership(context.Background(), fakeOwnership{
		"accounts/customer_1001": {"account_2001", "account_2002"},
		"loans/customer_1001":    {"loan_4001"},
	}, snap)
	require.NoError(t, err)
	assert.Empty(t, mismatches, "order is not compared")

	mismatches, err = checkOwnership(context.Background(), fakeOwnership{
		"accounts/customer_1001":     {"account_2001"},
		"loans/customer_1001":        {"loan_4001"},
		"credit_cards/customer_1001": {"credit_card_5001"},
	}, snap)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"customer_1001 accounts: customer lists [account_2001 account_2002], database has [account_2001]",
		"customer_1001 credit_cards: customer lists [], database has [credit_card_5001]",
	}, mismatches)
}
