package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/utils"
)

func TestPayLoan(t *testing.T) {
	e := newTestEngine(t)
	payerBefore := account(t, e, "account_2005").Balance

	res, err := e.PayLoan("loan_4001", utils.Dollars(300), "account_2005")
	require.NoError(t, err)
	assert.Equal(t, "Loan payment of $300.00 processed successfully", res.Message)
	assert.Equal(t, utils.Dollars(18200), res.RemainingBalance)
	assert.Equal(t, models.LoanStatusActive, res.LoanStatus)

	loan, _ := e.store.Loan("loan_4001")
	assert.Equal(t, models.LoanStatusActive, loan.Status)
	assert.Equal(t, utils.Dollars(25000), loan.PrincipalAmount)
	require.NotNil(t, loan.LastPaymentDate)
	assert.Equal(t, "2024-10-07", loan.LastPaymentDate.String())

	payer := account(t, e, "account_2005")
	assert.Equal(t, payerBefore.Sub(utils.Dollars(300)), payer.Balance)
	assert.Equal(t, payer.Balance, payer.AvailableBalance)

	tx, _ := e.store.Transaction(res.TransactionID)
	assert.Equal(t, models.TxTypePayment, tx.TransactionType)
	assert.Equal(t, utils.Dollars(-300), tx.Amount)
	assert.Equal(t, "Loan payment for LN-2023-4001", tx.Description)
	assert.Equal(t, payer.Balance, tx.BalanceAfter)
}

func TestPayLoanToZero(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Deposit("account_2005", utils.Dollars(20000), "")
	require.NoError(t, err)

	// Overpaying a loan clamps the balance at zero.
	res, err := e.PayLoan("loan_4001", utils.Dollars(19000), "account_2005")
	require.NoError(t, err)
	assert.True(t, res.RemainingBalance.IsZero())
	assert.Equal(t, models.LoanStatusPaidOff, res.LoanStatus)

	loan, _ := e.store.Loan("loan_4001")
	assert.Equal(t, models.LoanStatusPaidOff, loan.Status)
	assert.False(t, loan.CurrentBalance.IsNegative())

	_, err = e.PayLoan("loan_4001", utils.Dollars(1), "account_2005")
	assert.ErrorIs(t, err, ErrLoanNotActive)
	assert.Equal(t, "Loan loan_4001 is not active", err.Error())
	assert.Empty(t, e.Audit())
}

func TestPayLoanRejections(t *testing.T) {
	tests := []struct {
		name    string
		loan    string
		account string
		amount  utils.Money
		class   error
		msg     string
	}{
		{"missing loan", "loan_9999", "account_2005", utils.Dollars(1), ErrNotFound, "Loan loan_9999 not found"},
		{"missing account", "loan_4001", "account_9999", utils.Dollars(1), ErrNotFound, "Payment account account_9999 not found"},
		{"paid off loan", "loan_4002", "account_2008", utils.Dollars(1), ErrLoanNotActive, "Loan loan_4002 is not active"},
		{"frozen account", "loan_4001", "account_2007", utils.Dollars(1), ErrInactiveAccount, "Payment account account_2007 is not active"},
		{"zero amount", "loan_4001", "account_2005", 0, ErrInvalidAmount, "Payment amount must be positive"},
		{"insufficient", "loan_4001", "account_2009", utils.Dollars(151), ErrInsufficientFunds, "Insufficient funds for loan payment"},
		// overdraft does not fund payments
		{"overdraft ignored", "loan_4001", "account_2005", utils.Dollars(4600), ErrInsufficientFunds, "Insufficient funds for loan payment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			before := e.Snapshot()

			_, err := e.PayLoan(tt.loan, tt.amount, tt.account)
			assertRejected(t, e, err, tt.class, tt.msg)
			assert.Equal(t, before, e.Snapshot())
		})
	}
}

func TestPayCreditCard(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.PayCreditCard("credit_card_5001", utils.Dollars(150), "account_2006")
	require.NoError(t, err)
	assert.Equal(t, "Credit card payment of $150.00 processed successfully", res.Message)
	assert.Equal(t, utils.Dollars(1650), res.RemainingBalance)
	assert.Equal(t, utils.Dollars(3350), res.AvailableCredit)

	card, _ := e.store.CreditCard("credit_card_5001")
	assert.True(t, card.Balanced())
	assert.Equal(t, utils.Dollars(5000), card.CreditLimit)
	require.NotNil(t, card.LastPaymentDate)

	tx, _ := e.store.Transaction(res.TransactionID)
	assert.Equal(t, "Credit card payment for ****-****-****-5001", tx.Description)
	assert.Equal(t, utils.Dollars(-150), tx.Amount)
	assert.Equal(t, utils.Dollars(3650), account(t, e, "account_2006").Balance)

	t.Run("FullBalance", func(t *testing.T) {
		res, err := e.PayCreditCard("credit_card_5001", utils.Dollars(1650), "account_2006")
		require.NoError(t, err)
		assert.True(t, res.RemainingBalance.IsZero())
		assert.Equal(t, utils.Dollars(5000), res.AvailableCredit)
	})

	t.Run("NothingOwed", func(t *testing.T) {
		_, err := e.PayCreditCard("credit_card_5001", utils.Cents(1), "account_2006")
		assert.ErrorIs(t, err, ErrOverpayment)
	})
}

func TestPayCreditCardRejections(t *testing.T) {
	tests := []struct {
		name    string
		card    string
		account string
		amount  utils.Money
		class   error
		msg     string
	}{
		{"missing card", "credit_card_9999", "account_2006", utils.Dollars(1), ErrNotFound, "Credit card credit_card_9999 not found"},
		{"missing account", "credit_card_5001", "account_9999", utils.Dollars(1), ErrNotFound, "Payment account account_9999 not found"},
		{"inactive card", "credit_card_5002", "account_2008", utils.Dollars(1), ErrCardNotActive, "Credit card credit_card_5002 is not active"},
		{"frozen account", "credit_card_5001", "account_2007", utils.Dollars(1), ErrInactiveAccount, "Payment account account_2007 is not active"},
		{"negative amount", "credit_card_5001", "account_2006", utils.Dollars(-1), ErrInvalidAmount, "Payment amount must be positive"},
		{"overpayment", "credit_card_5001", "account_2006", utils.Cents(180001), ErrOverpayment, "Payment amount cannot exceed current balance"},
		{"insufficient", "credit_card_5001", "account_2009", utils.Dollars(200), ErrInsufficientFunds, "Insufficient funds for credit card payment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			before := e.Snapshot()

			_, err := e.PayCreditCard(tt.card, tt.amount, tt.account)
			assertRejected(t, e, err, tt.class, tt.msg)
			assert.Equal(t, before, e.Snapshot())

			card, _ := e.store.CreditCard(tt.card)
			if card != nil {
				assert.True(t, card.Balanced())
			}
		})
	}

	t.Run("OverpaymentIsInvalidAmount", func(t *testing.T) {
		assert.ErrorIs(t, ErrOverpayment, ErrInvalidAmount)
	})
}

func TestPayCreditCardAvailableCreditCeiling(t *testing.T) {
	e := newTestEngine(t)
	card, _ := e.store.CreditCard("credit_card_5001")
	card.AvailableCredit = utils.MaxMoney - utils.Cents(100)
	before := e.Snapshot()

	_, err := e.PayCreditCard("credit_card_5001", utils.Dollars(150), "account_2006")
	assertRejected(t, e, err, ErrInvalidAmount, "Payment amount exceeds the card credit limit")
	assert.Equal(t, before, e.Snapshot())
}
