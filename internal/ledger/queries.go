package ledger

import (
	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/utils"
)

// DefaultHistoryLimit is the page size used when a caller asks for no limit.
const DefaultHistoryLimit = 10

// FindCustomerByName looks a customer up by first and last name,
// ignoring case. More than one match yields an *AmbiguousMatchError.
func (e *Engine) FindCustomerByName(firstName, lastName string) (*CustomerMatch, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	found := e.store.FindCustomersByName(firstName, lastName)
	switch len(found) {
	case 0:
		return nil, opErr("find_customer_by_name", ErrNotFound, "Müşteri %s %s bulunamadı", firstName, lastName)
	case 1:
		return matchOf(found[0]), nil
	default:
		candidates := make([]CustomerMatch, len(found))
		for i, c := range found {
			candidates[i] = *matchOf(c)
		}
		return nil, &AmbiguousMatchError{Candidates: candidates}
	}
}

// FindCustomerByNationalID looks a customer up by TC number.
func (e *Engine) FindCustomerByNationalID(tcNo string) (*CustomerMatch, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.store.FindCustomerByNationalID(tcNo)
	if !ok {
		return nil, opErr("find_customer_by_tc_no", ErrNotFound, "TC Kimlik No %s ile müşteri bulunamadı", tcNo)
	}
	return matchOf(c), nil
}

func matchOf(c *models.Customer) *CustomerMatch {
	return &CustomerMatch{CustomerID: c.CustomerID, Name: c.FullName(), Email: c.Email}
}

func (e *Engine) CustomerInfo(customerID string) (*CustomerInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.store.Customer(customerID)
	if !ok {
		return nil, customerNotFound("get_customer_info", customerID)
	}
	return &CustomerInfo{
		CustomerID:  c.CustomerID,
		Name:        c.FullName(),
		Email:       c.Email,
		Phone:       c.PhoneNumber,
		Status:      c.Status,
		KYCVerified: c.KYCVerified,
		RiskScore:   c.RiskScore,
		CreatedDate: c.CreatedDate,
	}, nil
}

func (e *Engine) AccountInfo(accountID string) (*AccountInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	a, ok := e.store.Account(accountID)
	if !ok {
		return nil, opErr("get_account_info", ErrNotFound, "Account %s not found", accountID)
	}
	return &AccountInfo{
		AccountID:        a.AccountID,
		AccountNumber:    a.AccountNumber,
		AccountType:      a.AccountType,
		Status:           a.Status,
		Balance:          a.Balance,
		AvailableBalance: a.AvailableBalance,
		InterestRate:     a.InterestRate,
		MinimumBalance:   a.MinimumBalance,
		MonthlyFee:       a.MonthlyFee,
		OverdraftLimit:   a.OverdraftLimit,
		CreatedDate:      a.CreatedDate,
		FreezeReason:     clonePtr(a.FreezeReason),
		FreezeDate:       clonePtr(a.FreezeDate),
	}, nil
}

func (e *Engine) CustomerAccounts(customerID string) (*CustomerAccounts, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	accounts, ok := e.store.AccountsByCustomer(customerID)
	if !ok {
		return nil, customerNotFound("get_customer_accounts", customerID)
	}
	out := &CustomerAccounts{Accounts: make([]AccountSummary, 0, len(accounts))}
	for _, a := range accounts {
		out.Accounts = append(out.Accounts, AccountSummary{
			AccountID:        a.AccountID,
			AccountNumber:    a.AccountNumber,
			AccountType:      a.AccountType,
			Status:           a.Status,
			Balance:          a.Balance,
			AvailableBalance: a.AvailableBalance,
		})
	}
	out.TotalAccounts = len(out.Accounts)
	return out, nil
}

// AccountTransactions returns up to limit transactions, newest first, and
// the account's total transaction count. A limit of zero or less means
// DefaultHistoryLimit.
func (e *Engine) AccountTransactions(accountID string, limit int) (*AccountTransactions, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.store.Account(accountID); !ok {
		return nil, opErr("get_account_transactions", ErrNotFound, "Account %s not found", accountID)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	history := e.store.TransactionsForAccount(accountID)
	page := history[:min(limit, len(history))]
	out := &AccountTransactions{
		Transactions:      make([]TransactionSummary, 0, len(page)),
		TotalTransactions: len(history),
	}
	for _, tx := range page {
		out.Transactions = append(out.Transactions, TransactionSummary{
			TransactionID: tx.TransactionID,
			Type:          tx.TransactionType,
			Amount:        tx.Amount,
			Description:   tx.Description,
			Status:        tx.Status,
			Date:          tx.TransactionDate,
			BalanceAfter:  tx.BalanceAfter,
		})
	}
	return out, nil
}

func (e *Engine) LoanInfo(loanID string) (*LoanInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	l, ok := e.store.Loan(loanID)
	if !ok {
		return nil, opErr("get_loan_info", ErrNotFound, "Loan %s not found", loanID)
	}
	return &LoanInfo{
		LoanID:          l.LoanID,
		LoanNumber:      l.LoanNumber,
		LoanType:        l.LoanType,
		Status:          l.Status,
		PrincipalAmount: l.PrincipalAmount,
		CurrentBalance:  l.CurrentBalance,
		InterestRate:    l.InterestRate,
		MonthlyPayment:  l.MonthlyPayment,
		TermMonths:      l.TermMonths,
		StartDate:       l.StartDate,
		MaturityDate:    l.MaturityDate,
		NextPaymentDate: clonePtr(l.NextPaymentDate),
		LastPaymentDate: clonePtr(l.LastPaymentDate),
		DaysPastDue:     l.DaysPastDue,
	}, nil
}

func (e *Engine) CustomerLoans(customerID string) (*CustomerLoans, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	loans, ok := e.store.LoansByCustomer(customerID)
	if !ok {
		return nil, customerNotFound("get_customer_loans", customerID)
	}
	out := &CustomerLoans{Loans: make([]LoanSummary, 0, len(loans))}
	for _, l := range loans {
		out.Loans = append(out.Loans, LoanSummary{
			LoanID:          l.LoanID,
			LoanNumber:      l.LoanNumber,
			LoanType:        l.LoanType,
			Status:          l.Status,
			CurrentBalance:  l.CurrentBalance,
			MonthlyPayment:  l.MonthlyPayment,
			NextPaymentDate: clonePtr(l.NextPaymentDate),
			DaysPastDue:     l.DaysPastDue,
		})
	}
	out.TotalLoans = len(out.Loans)
	return out, nil
}

func (e *Engine) CreditCardInfo(cardID string) (*CreditCardInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.store.CreditCard(cardID)
	if !ok {
		return nil, opErr("get_credit_card_info", ErrNotFound, "Credit card %s not found", cardID)
	}
	return &CreditCardInfo{
		CardID:          c.CardID,
		CardNumber:      c.CardNumber,
		Status:          c.Status,
		CreditLimit:     c.CreditLimit,
		AvailableCredit: c.AvailableCredit,
		CurrentBalance:  c.CurrentBalance,
		MinimumPayment:  c.MinimumPayment,
		InterestRate:    c.InterestRate,
		PaymentDueDate:  clonePtr(c.PaymentDueDate),
		LastPaymentDate: clonePtr(c.LastPaymentDate),
		DaysPastDue:     c.DaysPastDue,
	}, nil
}

func (e *Engine) CustomerCreditCards(customerID string) (*CustomerCreditCards, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	cards, ok := e.store.CreditCardsByCustomer(customerID)
	if !ok {
		return nil, customerNotFound("get_customer_credit_cards", customerID)
	}
	out := &CustomerCreditCards{CreditCards: make([]CreditCardSummary, 0, len(cards))}
	for _, c := range cards {
		out.CreditCards = append(out.CreditCards, CreditCardSummary{
			CardID:          c.CardID,
			CardNumber:      c.CardNumber,
			Status:          c.Status,
			CreditLimit:     c.CreditLimit,
			AvailableCredit: c.AvailableCredit,
			CurrentBalance:  c.CurrentBalance,
			MinimumPayment:  c.MinimumPayment,
			PaymentDueDate:  clonePtr(c.PaymentDueDate),
		})
	}
	out.TotalCards = len(out.CreditCards)
	return out, nil
}

// Statistics counts every collection and totals deposits, loan balances and
// card balances. Only checking, savings and foreign currency accounts count
// as deposits.
func (e *Engine) Statistics() *Statistics {
	e.mu.RLock()
	defer e.mu.RUnlock()

	counts := e.store.Counts()
	stats := &Statistics{
		NumCustomers:    counts.Customers,
		NumAccounts:     counts.Accounts,
		NumTransactions: counts.Transactions,
		NumLoans:        counts.Loans,
		NumCreditCards:  counts.CreditCards,
	}
	var deposits, loans, cards utils.Money
	for _, a := range e.store.Accounts() {
		if a.AccountType.IsDeposit() {
			deposits = deposits.Add(a.Balance)
		}
	}
	for _, l := range e.store.Loans() {
		loans = loans.Add(l.CurrentBalance)
	}
	for _, c := range e.store.CreditCards() {
		cards = cards.Add(c.CurrentBalance)
	}
	stats.TotalDeposits = deposits
	stats.TotalLoanBalance = loans
	stats.TotalCreditCardBalance = cards
	return stats
}

func customerNotFound(op, customerID string) *OpError {
	return opErr(op, ErrNotFound, "Customer %s not found", customerID)
}
