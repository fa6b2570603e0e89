package ledger

import (
	"fmt"

	"github.com/willfong/mockbank/internal/models"
)

// Violation is one broken invariant found by Audit.
type Violation struct {
	Kind    Kind   `json:"kind"`
	ID      string `json:"id"`
	Problem string `json:"problem"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %s: %s", v.Kind, v.ID, v.Problem)
}

// Audit checks the ledger invariants over the live store and returns every
// violation found. Balance history is only checked for accounts whose
// latest transaction was posted by this engine; seeded history is taken as
// given.
func (e *Engine) Audit() []Violation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []Violation
	add := func(kind Kind, id, format string, args ...any) {
		out = append(out, Violation{Kind: kind, ID: id, Problem: fmt.Sprintf(format, args...)})
	}

	for _, a := range e.store.Accounts() {
		if a.AvailableBalance != a.Balance {
			add(KindAccount, a.AccountID, "available balance %s differs from balance %s", a.AvailableBalance, a.Balance)
		}
		if a.OverdraftLimit.IsNegative() {
			add(KindAccount, a.AccountID, "negative overdraft limit %s", a.OverdraftLimit)
		} else if a.Balance < a.OverdraftLimit.Neg() {
			add(KindAccount, a.AccountID, "balance %s is below the overdraft limit %s", a.Balance, a.OverdraftLimit)
		}
		hasReason, hasDate := a.FreezeReason != nil, a.FreezeDate != nil
		if hasReason != hasDate {
			add(KindAccount, a.AccountID, "freeze reason and freeze date must be set together")
		}
		if a.IsFrozen() && !hasReason {
			add(KindAccount, a.AccountID, "frozen without freeze metadata")
		}
		if !a.IsFrozen() && (hasReason || hasDate) {
			add(KindAccount, a.AccountID, "freeze metadata present on %s account", a.Status)
		}
		if tx, ok := e.store.LatestTransaction(a.AccountID); ok && e.postedHere(tx.TransactionID) && tx.BalanceAfter != a.Balance {
			add(KindAccount, a.AccountID, "latest balance_after %s differs from balance %s", tx.BalanceAfter, a.Balance)
		}
	}

	for _, tx := range e.store.Transactions() {
		if !tx.TransactionType.IsTransfer() {
			continue
		}
		if tx.RelatedTransactionID == nil {
			if e.postedHere(tx.TransactionID) {
				add(KindTransaction, tx.TransactionID, "transfer leg without a related transaction")
			}
			continue
		}
		other, ok := e.store.Transaction(*tx.RelatedTransactionID)
		switch {
		case !ok:
			add(KindTransaction, tx.TransactionID, "related transaction %s does not exist", *tx.RelatedTransactionID)
		case other.RelatedTransactionID == nil || *other.RelatedTransactionID != tx.TransactionID:
			add(KindTransaction, tx.TransactionID, "related transaction %s does not point back", other.TransactionID)
		case other.Amount != tx.Amount.Neg():
			add(KindTransaction, tx.TransactionID, "amount %s is not the opposite of %s", tx.Amount, other.Amount)
		}
	}

	for _, l := range e.store.Loans() {
		if l.CurrentBalance.IsNegative() {
			add(KindLoan, l.LoanID, "negative balance %s", l.CurrentBalance)
		}
		if l.Status == models.LoanStatusPaidOff && !l.CurrentBalance.IsZero() {
			add(KindLoan, l.LoanID, "paid off with balance %s", l.CurrentBalance)
		}
	}

	for _, c := range e.store.CreditCards() {
		if !c.Balanced() {
			add(KindCreditCard, c.CardID, "balance %s + available %s != limit %s", c.CurrentBalance, c.AvailableCredit, c.CreditLimit)
		}
	}
	return out
}

// postedHere reports whether a transaction id was issued by this engine
// rather than loaded from the snapshot.
func (e *Engine) postedHere(transactionID string) bool {
	_, n, ok := parseID(transactionID)
	return ok && n > e.txBase
}
