package data

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/utils"
)

func TestSeed(t *testing.T) {
	snap, err := Seed()
	require.NoError(t, err)

	counts := snap.Counts()
	assert.Equal(t, 7, counts.Customers)
	assert.Equal(t, 9, counts.Accounts)
	assert.Equal(t, 2, counts.Loans)
	assert.Equal(t, 2, counts.CreditCards)

	t.Run("ScenarioFixtures", func(t *testing.T) {
		acct := findAccount(t, snap, "account_2001")
		assert.Equal(t, models.AccountTypeChecking, acct.AccountType)
		assert.Equal(t, utils.Dollars(2500), acct.Balance)
		assert.Equal(t, models.AccountStatusActive, acct.Status)

		ayse := snap.Customers[0]
		assert.Equal(t, "Ayşe", ayse.FirstName)
		assert.Equal(t, "***-***-1234", ayse.TCNo)
		assert.Equal(t, "1985-03-15", ayse.DateOfBirth)

		loan := snap.Loans[0]
		assert.Equal(t, "loan_4001", loan.LoanID)
		assert.Equal(t, models.LoanTypeAuto, loan.LoanType)
		assert.Equal(t, utils.Dollars(18500), loan.CurrentBalance)

		card := snap.CreditCards[0]
		assert.Equal(t, utils.Dollars(5000), card.CreditLimit)
		assert.True(t, card.Balanced())
	})

	t.Run("CopiesAreIndependent", func(t *testing.T) {
		first := MustSeed()
		first.Accounts[0].Balance = 0
		first.Customers[0].AccountIDs[0] = "changed"

		second := MustSeed()
		assert.Equal(t, utils.Dollars(2500), second.Accounts[0].Balance)
		assert.Equal(t, "account_2001", second.Customers[0].AccountIDs[0])
	})
}

func findAccount(t *testing.T, snap *models.Snapshot, id string) models.Account {
	t.Helper()
	for _, a := range snap.Accounts {
		if a.AccountID == id {
			return a
		}
	}
	t.Fatalf("account %s not in snapshot", id)
	return models.Account{}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	seed := MustSeed()

	for _, name := range []string{"db.json", "db.yaml", "db.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, seed))

			loaded, err := Load(path)
			require.NoError(t, err)

			if diff := cmp.Diff(seed, loaded, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temporary file left behind")
		})
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	snap := &models.Snapshot{Accounts: []models.Account{{AccountID: "account_2001", Balance: utils.Cents(12345)}}}
	require.NoError(t, Save(path, snap))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"balance": 123.45`)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"unknown field", FormatJSON, `{"customers": [], "branches": []}`},
		{"bad enum", FormatJSON, `{"accounts": [{"account_id": "a", "account_type": "brokerage"}]}`},
		{"bad amount", FormatJSON, `{"accounts": [{"account_id": "a", "balance": "lots"}]}`},
		{"bad yaml enum", FormatYAML, "loans:\n  - loan_id: loan_1\n    status: forgiven\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewBufferString(tt.input), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("/tmp/DB.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFor("db.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load("db.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestOpenFallsBackToSeed(t *testing.T) {
	snap, err := Open("")
	require.NoError(t, err)
	assert.Len(t, snap.Accounts, 9)
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	sink := FileSink{Path: path}
	require.NoError(t, sink.SaveSnapshot(context.Background(), MustSeed()))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Counts().Accounts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sink.SaveSnapshot(ctx, MustSeed()), context.Canceled)
}
