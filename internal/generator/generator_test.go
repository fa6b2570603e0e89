package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/mockbank/internal/ledger"
	"github.com/willfong/mockbank/internal/models"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Customers = 50
	cfg.Seed = 42
	cfg.BaseDate = time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)
	return cfg
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(testConfig())
	require.NoError(t, err)
	b, err := Generate(testConfig())
	require.NoError(t, err)

	assert.Equal(t, uint64(42), a.Seed)
	if diff := cmp.Diff(a.Snapshot, b.Snapshot); diff != "" {
		t.Errorf("same seed produced different snapshots (-a +b):\n%s", diff)
	}
}

func TestGeneratedLedgerIsConsistent(t *testing.T) {
	res, err := Generate(testConfig())
	require.NoError(t, err)
	snap := res.Snapshot

	require.Len(t, snap.Customers, 50)
	assert.GreaterOrEqual(t, len(snap.Accounts), 50, "everyone has a checking account")
	assert.Equal(t, "customer_1001", snap.Customers[0].CustomerID)
	assert.Equal(t, "account_2001", snap.Accounts[0].AccountID)

	e, err := ledger.New(snap)
	require.NoError(t, err, "identifiers must be unique and well formed")
	assert.Empty(t, e.Audit())

	owned := make(map[string]string)
	for _, c := range snap.Customers {
		for _, id := range c.AccountIDs {
			owned[id] = c.CustomerID
		}
	}
	for _, a := range snap.Accounts {
		assert.Equal(t, a.CustomerID, owned[a.AccountID], a.AccountID)
		assert.Equal(t, a.Balance, a.AvailableBalance, a.AccountID)
		assert.False(t, a.Balance.IsNegative(), a.AccountID)
		if a.IsFrozen() {
			assert.NotNil(t, a.FreezeReason, a.AccountID)
		}
	}
	for _, c := range snap.CreditCards {
		assert.True(t, c.Balanced(), c.CardID)
	}
	for _, l := range snap.Loans {
		assert.False(t, l.CurrentBalance.IsNegative(), l.LoanID)
		assert.LessOrEqual(t, l.CurrentBalance, l.PrincipalAmount, l.LoanID)
		if l.Status == models.LoanStatusPaidOff {
			assert.True(t, l.CurrentBalance.IsZero(), l.LoanID)
		}
	}

	// opening deposits explain every funded balance
	for _, tx := range snap.Transactions {
		assert.Equal(t, models.TxTypeDeposit, tx.TransactionType)
		assert.Equal(t, tx.Amount, tx.BalanceAfter)
	}
}

func TestGeneratedCustomersCanBeVerified(t *testing.T) {
	res, err := Generate(testConfig())
	require.NoError(t, err)
	e, err := ledger.New(res.Snapshot)
	require.NoError(t, err)

	c := res.Snapshot.Customers[3]
	got, err := e.VerifyCustomerIdentity(c.CustomerID, c.TCNo, c.DateOfBirth)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	match, err := e.FindCustomerByNationalID(c.TCNo)
	require.NoError(t, err)
	assert.Equal(t, c.CustomerID, match.CustomerID)
}

func TestNationalIDChecksum(t *testing.T) {
	g, err := New(testConfig())
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		id := g.nationalID()
		require.Len(t, id, 11)
		require.NotEqual(t, byte('0'), id[0])

		var d [11]int
		for j := range id {
			d[j] = int(id[j] - '0')
		}
		odd := d[0] + d[2] + d[4] + d[6] + d[8]
		even := d[1] + d[3] + d[5] + d[7]
		assert.Equal(t, ((odd*7-even)%10+10)%10, d[9], id)

		sum := 0
		for _, n := range d[:10] {
			sum += n
		}
		assert.Equal(t, sum%10, d[10], id)
	}
}

func TestEmailIsASCII(t *testing.T) {
	g, err := New(testConfig())
	require.NoError(t, err)

	email := g.email("Şükrü", "Öztürk")
	assert.True(t, strings.HasPrefix(email, "sukru.ozturk"), email)
	assert.True(t, strings.HasSuffix(email, "@email.com"), email)
}

func TestConfigValidation(t *testing.T) {
	cfg := testConfig()
	cfg.Customers = 0
	_, err := New(cfg)
	assert.ErrorContains(t, err, "customers must be positive")

	cfg = testConfig()
	cfg.LoanRate = 1.5
	_, err = New(cfg)
	assert.ErrorContains(t, err, "loan rate")
}
