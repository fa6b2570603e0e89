package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/mockbank/internal/config"
	"github.com/willfong/mockbank/internal/data"
	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/utils"
)

func openTestQueries(t *testing.T) (*Queries, *Pool) {
	t.Helper()
	cfg := config.DefaultConfig().Database
	cfg.Driver = DriverSQLite
	cfg.DSN = filepath.Join(t.TempDir(), "mockbank.db")

	pool, err := NewPool(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	require.NoError(t, pool.Connect(context.Background()))

	q := NewQueries(pool)
	require.NoError(t, q.CreateSchema(context.Background()))
	return q, pool
}

func TestNewPoolValidation(t *testing.T) {
	_, err := NewPool(config.DatabaseConfig{Driver: DriverSQLite})
	assert.ErrorContains(t, err, "DSN is required")

	_, err = NewPool(config.DatabaseConfig{Driver: "postgres", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = NewPool(config.DatabaseConfig{Driver: DriverMySQL, DSN: "not a dsn"})
	assert.ErrorContains(t, err, "invalid mysql dsn")
}

func TestNormalizeMySQLDSN(t *testing.T) {
	dsn, err := normalizeMySQLDSN("bank:secret@tcp(db:3306)/mockbank")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "tcp(db:3306)/mockbank")

	dsn, err = normalizeMySQLDSN("bank:secret@tcp(db:3306)/mockbank?parseTime=false&timeout=5s")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "timeout=5s")
}

func TestSnapshotRoundTrip(t *testing.T) {
	q, pool := openTestQueries(t)
	ctx := context.Background()
	seed := data.MustSeed()

	require.NoError(t, q.SaveSnapshot(ctx, seed))
	got, err := q.LoadSnapshot(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(seed, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.Positive(t, pool.Stats().TotalQueries)
}

func TestSaveSnapshotReplaces(t *testing.T) {
	q, _ := openTestQueries(t)
	ctx := context.Background()
	require.NoError(t, q.SaveSnapshot(ctx, data.MustSeed()))

	smaller := data.MustSeed()
	smaller.Accounts = smaller.Accounts[:1]
	smaller.Accounts[0].Balance = utils.Dollars(1)
	smaller.Accounts[0].AvailableBalance = utils.Dollars(1)
	smaller.Transactions = nil
	require.NoError(t, q.SaveSnapshot(ctx, smaller))

	got, err := q.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, got.Accounts, 1)
	assert.Equal(t, utils.Dollars(1), got.Accounts[0].Balance)
	assert.Empty(t, got.Transactions)
	assert.NotNil(t, got.Transactions)
	assert.Len(t, got.Customers, 7)
}

func TestSaveSnapshotIsAtomic(t *testing.T) {
	q, _ := openTestQueries(t)
	ctx := context.Background()
	require.NoError(t, q.SaveSnapshot(ctx, data.MustSeed()))

	// A duplicate primary key in the last table aborts the whole save.
	broken := data.MustSeed()
	broken.Customers = broken.Customers[:2]
	broken.CreditCards = append(broken.CreditCards, broken.CreditCards[0])
	require.Error(t, q.SaveSnapshot(ctx, broken))

	got, err := q.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Customers, 7)
	assert.Len(t, got.CreditCards, 2)
}

func TestIndexedColumns(t *testing.T) {
	q, _ := openTestQueries(t)
	ctx := context.Background()
	require.NoError(t, q.SaveSnapshot(ctx, data.MustSeed()))

	ids, err := q.OwnedIDs(ctx, "accounts", "customer_1006")
	require.NoError(t, err)
	assert.Equal(t, []string{"account_2007", "account_2008"}, ids)

	ids, err = q.OwnedIDs(ctx, "transactions", "account_2001")
	require.NoError(t, err)
	assert.Equal(t, []string{"transaction_3001", "transaction_3006"}, ids)

	counts, err := q.StatusCounts(ctx, "accounts")
	require.NoError(t, err)
	assert.Equal(t, 1, counts[string(models.AccountStatusFrozen)])
	assert.Equal(t, 8, counts[string(models.AccountStatusActive)])

	_, err = q.StatusCounts(ctx, "accounts; DROP TABLE accounts")
	assert.ErrorContains(t, err, "unknown table")
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	q, _ := openTestQueries(t)
	assert.NoError(t, q.CreateSchema(context.Background()))
}
