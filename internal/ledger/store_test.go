package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/mockbank/internal/data"
	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/utils"
)

func TestNewStoreRejectsDuplicates(t *testing.T) {
	snap := &models.Snapshot{Accounts: []models.Account{{AccountID: "account_2001"}, {AccountID: "account_2001"}}}
	_, err := NewStore(snap)
	assert.ErrorContains(t, err, "duplicate account id")
}

func TestStoreLookups(t *testing.T) {
	store, err := NewStore(data.MustSeed())
	require.NoError(t, err)

	_, ok := store.Account("account_2001")
	assert.True(t, ok)
	_, ok = store.Account("account_9999")
	assert.False(t, ok)

	assert.True(t, store.Contains(KindLoan, "loan_4001"))
	assert.True(t, store.Contains(KindCreditCard, "credit_card_5001"))
	assert.False(t, store.Contains(KindCustomer, "account_2001"))

	accounts, ok := store.AccountsByCustomer("customer_1002")
	require.True(t, ok)
	require.Len(t, accounts, 2)
	assert.Equal(t, "account_2002", accounts[0].AccountID)
	assert.Equal(t, "account_2003", accounts[1].AccountID)

	loans, ok := store.LoansByCustomer("customer_1001")
	require.True(t, ok)
	assert.Empty(t, loans)
	assert.NotNil(t, loans)

	_, ok = store.CreditCardsByCustomer("customer_0000")
	assert.False(t, ok)
}

func TestStoreDoesNotAliasSnapshot(t *testing.T) {
	snap := data.MustSeed()
	store, err := NewStore(snap)
	require.NoError(t, err)

	snap.Accounts[0].Balance = 0
	snap.Customers[0].AccountIDs[0] = "changed"

	acct, _ := store.Account("account_2001")
	assert.Equal(t, utils.Dollars(2500), acct.Balance)
	c, _ := store.Customer("customer_1001")
	assert.Equal(t, "account_2001", c.AccountIDs[0])

	out := store.Snapshot()
	out.Accounts[0].Balance = 1
	assert.Equal(t, utils.Dollars(2500), acct.Balance)
}

func TestTransactionsForAccountOrder(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)

	at := func(day, n int) *models.Transaction {
		return &models.Transaction{
			TransactionID:   "transaction_" + string(rune('0'+n)),
			AccountID:       "account_1",
			TransactionDate: models.NewTimestamp(time.Date(2024, 9, day, 12, 0, 0, 0, time.UTC)),
		}
	}
	store.AppendTransaction(at(10, 1))
	store.AppendTransaction(at(20, 2))
	store.AppendTransaction(at(5, 3))
	store.AppendTransaction(at(20, 4)) // same instant as 2, appended later
	store.AppendTransaction(&models.Transaction{TransactionID: "other", AccountID: "account_2"})

	var got []string
	for _, tx := range store.TransactionsForAccount("account_1") {
		got = append(got, tx.TransactionID)
	}
	assert.Equal(t, []string{"transaction_4", "transaction_2", "transaction_1", "transaction_3"}, got)

	latest, ok := store.LatestTransaction("account_1")
	require.True(t, ok)
	assert.Equal(t, "transaction_4", latest.TransactionID)

	assert.Empty(t, store.TransactionsForAccount("account_3"))
}

func TestFindCustomers(t *testing.T) {
	store, err := NewStore(data.MustSeed())
	require.NoError(t, err)

	found := store.FindCustomersByName("AYŞE", "yılmaz")
	require.Len(t, found, 1)
	assert.Equal(t, "customer_1001", found[0].CustomerID)

	assert.Len(t, store.FindCustomersByName("Mehmet", "Kaya"), 2)
	assert.Empty(t, store.FindCustomersByName("Nobody", "Here"))

	c, ok := store.FindCustomerByNationalID("***-***-5678")
	require.True(t, ok)
	assert.Equal(t, "customer_1002", c.CustomerID)
}
