package ledger

import (
	"fmt"

	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/utils"
)

// PayLoan debits the payment account and reduces the loan balance. A loan
// whose balance reaches zero is marked paid off and refuses further payments.
func (e *Engine) PayLoan(loanID string, amount utils.Money, accountID string) (*LoanPaymentResult, error) {
	const op = "loan_payment"
	e.mu.Lock()
	defer e.mu.Unlock()

	loan, ok := e.store.Loan(loanID)
	if !ok {
		return nil, e.reject(opErr(op, ErrNotFound, "Loan %s not found", loanID))
	}
	acct, ok := e.store.Account(accountID)
	if !ok {
		return nil, e.reject(opErr(op, ErrNotFound, "Payment account %s not found", accountID))
	}
	if !loan.IsActive() {
		return nil, e.reject(opErr(op, ErrLoanNotActive, "Loan %s is not active", loanID))
	}
	if !acct.IsActive() {
		return nil, e.reject(opErr(op, ErrInactiveAccount, "Payment account %s is not active", accountID))
	}
	if !amount.IsPositive() {
		return nil, e.reject(opErr(op, ErrInvalidAmount, "Payment amount must be positive"))
	}
	if acct.AvailableBalance < amount {
		return nil, e.reject(opErr(op, ErrInsufficientFunds, "Insufficient funds for loan payment"))
	}

	now := e.now()
	acct.Debit(amount)
	touch(acct, now)
	loan.ApplyPayment(amount)
	loan.LastPaymentDate = models.DatePtr(models.NewDate(now))

	tx := e.newTransaction(acct, models.TxTypePayment, amount.Neg(),
		fmt.Sprintf("Loan payment for %s", loan.LoanNumber), now)
	e.store.AppendTransaction(tx)

	e.committed(op, amount, tx)
	return &LoanPaymentResult{
		Success:          true,
		Message:          fmt.Sprintf("Loan payment of %s processed successfully", amount.FormatSimple("$")),
		TransactionID:    tx.TransactionID,
		RemainingBalance: loan.CurrentBalance,
		LoanStatus:       loan.Status,
	}, nil
}

// PayCreditCard debits the payment account and moves the amount from the
// card's outstanding balance back to available credit. Paying more than
// the outstanding balance is rejected.
func (e *Engine) PayCreditCard(cardID string, amount utils.Money, accountID string) (*CardPaymentResult, error) {
	const op = "credit_card_payment"
	e.mu.Lock()
	defer e.mu.Unlock()

	card, ok := e.store.CreditCard(cardID)
	if !ok {
		return nil, e.reject(opErr(op, ErrNotFound, "Credit card %s not found", cardID))
	}
	acct, ok := e.store.Account(accountID)
	if !ok {
		return nil, e.reject(opErr(op, ErrNotFound, "Payment account %s not found", accountID))
	}
	if !card.IsActive() {
		return nil, e.reject(opErr(op, ErrCardNotActive, "Credit card %s is not active", cardID))
	}
	if !acct.IsActive() {
		return nil, e.reject(opErr(op, ErrInactiveAccount, "Payment account %s is not active", accountID))
	}
	if !amount.IsPositive() {
		return nil, e.reject(opErr(op, ErrInvalidAmount, "Payment amount must be positive"))
	}
	if amount > card.CurrentBalance {
		return nil, e.reject(opErr(op, ErrOverpayment, "Payment amount cannot exceed current balance"))
	}
	if !card.CanApplyPayment(amount) {
		return nil, e.reject(opErr(op, ErrInvalidAmount, "Payment amount exceeds the card credit limit"))
	}
	if acct.AvailableBalance < amount {
		return nil, e.reject(opErr(op, ErrInsufficientFunds, "Insufficient funds for credit card payment"))
	}

	now := e.now()
	acct.Debit(amount)
	touch(acct, now)
	card.ApplyPayment(amount)
	card.LastPaymentDate = models.DatePtr(models.NewDate(now))

	tx := e.newTransaction(acct, models.TxTypePayment, amount.Neg(),
		fmt.Sprintf("Credit card payment for %s", card.CardNumber), now)
	e.store.AppendTransaction(tx)

	e.committed(op, amount, tx)
	return &CardPaymentResult{
		Success:          true,
		Message:          fmt.Sprintf("Credit card payment of %s processed successfully", amount.FormatSimple("$")),
		TransactionID:    tx.TransactionID,
		RemainingBalance: card.CurrentBalance,
		AvailableCredit:  card.AvailableCredit,
	}, nil
}
