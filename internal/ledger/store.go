package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/willfong/mockbank/internal/models"
)

// Store owns the five entity collections. Lookups by identifier are O(1);
// per-customer listings scan the collection and keep file order. Nothing is
// ever removed.
//
// Store does no locking of its own. The Engine serializes access.
type Store struct {
	customers     map[string]*models.Customer
	customerOrder []*models.Customer

	accounts     map[string]*models.Account
	accountOrder []*models.Account

	transactions map[string]*models.Transaction
	txLog        []*models.Transaction
	txByAccount  map[string][]*models.Transaction

	loans     map[string]*models.Loan
	loanOrder []*models.Loan

	cards     map[string]*models.CreditCard
	cardOrder []*models.CreditCard
}

// NewStore builds a store from a snapshot. The snapshot is copied; later
// changes to it are not visible to the store.
func NewStore(snap *models.Snapshot) (*Store, error) {
	s := &Store{
		customers:    make(map[string]*models.Customer),
		accounts:     make(map[string]*models.Account),
		transactions: make(map[string]*models.Transaction),
		txByAccount:  make(map[string][]*models.Transaction),
		loans:        make(map[string]*models.Loan),
		cards:        make(map[string]*models.CreditCard),
	}
	if snap == nil {
		return s, nil
	}

	for i := range snap.Customers {
		c := cloneCustomer(&snap.Customers[i])
		if _, dup := s.customers[c.CustomerID]; dup {
			return nil, fmt.Errorf("duplicate customer id %q", c.CustomerID)
		}
		c.ApplyDefaults()
		s.customers[c.CustomerID] = c
		s.customerOrder = append(s.customerOrder, c)
	}
	for i := range snap.Accounts {
		a := cloneAccount(&snap.Accounts[i])
		if _, dup := s.accounts[a.AccountID]; dup {
			return nil, fmt.Errorf("duplicate account id %q", a.AccountID)
		}
		s.accounts[a.AccountID] = a
		s.accountOrder = append(s.accountOrder, a)
	}
	for i := range snap.Transactions {
		tx := cloneTransaction(&snap.Transactions[i])
		if _, dup := s.transactions[tx.TransactionID]; dup {
			return nil, fmt.Errorf("duplicate transaction id %q", tx.TransactionID)
		}
		s.AppendTransaction(tx)
	}
	for i := range snap.Loans {
		l := cloneLoan(&snap.Loans[i])
		if _, dup := s.loans[l.LoanID]; dup {
			return nil, fmt.Errorf("duplicate loan id %q", l.LoanID)
		}
		s.loans[l.LoanID] = l
		s.loanOrder = append(s.loanOrder, l)
	}
	for i := range snap.CreditCards {
		c := cloneCard(&snap.CreditCards[i])
		if _, dup := s.cards[c.CardID]; dup {
			return nil, fmt.Errorf("duplicate credit card id %q", c.CardID)
		}
		s.cards[c.CardID] = c
		s.cardOrder = append(s.cardOrder, c)
	}
	return s, nil
}

func (s *Store) Customer(id string) (*models.Customer, bool) {
	c, ok := s.customers[id]
	return c, ok
}

func (s *Store) Account(id string) (*models.Account, bool) {
	a, ok := s.accounts[id]
	return a, ok
}

func (s *Store) Transaction(id string) (*models.Transaction, bool) {
	tx, ok := s.transactions[id]
	return tx, ok
}

func (s *Store) Loan(id string) (*models.Loan, bool) {
	l, ok := s.loans[id]
	return l, ok
}

func (s *Store) CreditCard(id string) (*models.CreditCard, bool) {
	c, ok := s.cards[id]
	return c, ok
}

// Contains reports whether an entity of the given kind exists.
func (s *Store) Contains(kind Kind, id string) bool {
	var ok bool
	switch kind {
	case KindCustomer:
		_, ok = s.customers[id]
	case KindAccount:
		_, ok = s.accounts[id]
	case KindTransaction:
		_, ok = s.transactions[id]
	case KindLoan:
		_, ok = s.loans[id]
	case KindCreditCard:
		_, ok = s.cards[id]
	}
	return ok
}

// Customers returns every customer in file order.
func (s *Store) Customers() []*models.Customer { return s.customerOrder }

// Accounts returns every account in file order.
func (s *Store) Accounts() []*models.Account { return s.accountOrder }

// Transactions returns every transaction in append order.
func (s *Store) Transactions() []*models.Transaction { return s.txLog }

// Loans returns every loan in file order.
func (s *Store) Loans() []*models.Loan { return s.loanOrder }

// CreditCards returns every credit card in file order.
func (s *Store) CreditCards() []*models.CreditCard { return s.cardOrder }

// AccountsByCustomer lists the accounts named in the customer's account
// list. The second result is false if the customer does not exist.
func (s *Store) AccountsByCustomer(customerID string) ([]*models.Account, bool) {
	c, ok := s.customers[customerID]
	if !ok {
		return nil, false
	}
	return ownedBy(s.accountOrder, c.AccountIDs, func(a *models.Account) string { return a.AccountID }), true
}

// LoansByCustomer lists the loans named in the customer's loan list.
func (s *Store) LoansByCustomer(customerID string) ([]*models.Loan, bool) {
	c, ok := s.customers[customerID]
	if !ok {
		return nil, false
	}
	return ownedBy(s.loanOrder, c.LoanIDs, func(l *models.Loan) string { return l.LoanID }), true
}

// CreditCardsByCustomer lists the cards named in the customer's card list.
func (s *Store) CreditCardsByCustomer(customerID string) ([]*models.CreditCard, bool) {
	c, ok := s.customers[customerID]
	if !ok {
		return nil, false
	}
	return ownedBy(s.cardOrder, c.CreditCardIDs, func(cc *models.CreditCard) string { return cc.CardID }), true
}

func ownedBy[T any](all []T, ids []string, idOf func(T) string) []T {
	if len(ids) == 0 {
		return []T{}
	}
	out := make([]T, 0, len(ids))
	for _, item := range all {
		if slices.Contains(ids, idOf(item)) {
			out = append(out, item)
		}
	}
	return out
}

// AppendTransaction records tx. The store takes ownership of the pointer.
func (s *Store) AppendTransaction(tx *models.Transaction) {
	s.transactions[tx.TransactionID] = tx
	s.txLog = append(s.txLog, tx)
	s.txByAccount[tx.AccountID] = append(s.txByAccount[tx.AccountID], tx)
}

// TransactionsForAccount returns the account's transactions, newest first.
// Records with the same timestamp are ordered most recently appended first.
func (s *Store) TransactionsForAccount(accountID string) []*models.Transaction {
	posted := s.txByAccount[accountID]
	out := make([]*models.Transaction, len(posted))
	for i, tx := range posted {
		out[len(posted)-1-i] = tx
	}
	slices.SortStableFunc(out, func(a, b *models.Transaction) int {
		return b.TransactionDate.Compare(a.TransactionDate.Time)
	})
	return out
}

// LatestTransaction returns the most recently appended transaction for the
// account, if any.
func (s *Store) LatestTransaction(accountID string) (*models.Transaction, bool) {
	posted := s.txByAccount[accountID]
	if len(posted) == 0 {
		return nil, false
	}
	return posted[len(posted)-1], true
}

// FindCustomersByName matches first and last name case-insensitively.
func (s *Store) FindCustomersByName(firstName, lastName string) []*models.Customer {
	var out []*models.Customer
	for _, c := range s.customerOrder {
		if strings.EqualFold(c.FirstName, firstName) && strings.EqualFold(c.LastName, lastName) {
			out = append(out, c)
		}
	}
	return out
}

// FindCustomerByNationalID returns the first customer with the given TC number.
func (s *Store) FindCustomerByNationalID(tcNo string) (*models.Customer, bool) {
	for _, c := range s.customerOrder {
		if c.TCNo == tcNo {
			return c, true
		}
	}
	return nil, false
}

// Snapshot copies the collections into a document in file order.
func (s *Store) Snapshot() *models.Snapshot {
	snap := &models.Snapshot{
		Customers:    make([]models.Customer, 0, len(s.customerOrder)),
		Accounts:     make([]models.Account, 0, len(s.accountOrder)),
		Transactions: make([]models.Transaction, 0, len(s.txLog)),
		Loans:        make([]models.Loan, 0, len(s.loanOrder)),
		CreditCards:  make([]models.CreditCard, 0, len(s.cardOrder)),
	}
	for _, c := range s.customerOrder {
		snap.Customers = append(snap.Customers, *cloneCustomer(c))
	}
	for _, a := range s.accountOrder {
		snap.Accounts = append(snap.Accounts, *cloneAccount(a))
	}
	for _, tx := range s.txLog {
		snap.Transactions = append(snap.Transactions, *cloneTransaction(tx))
	}
	for _, l := range s.loanOrder {
		snap.Loans = append(snap.Loans, *cloneLoan(l))
	}
	for _, c := range s.cardOrder {
		snap.CreditCards = append(snap.CreditCards, *cloneCard(c))
	}
	return snap
}

// Counts returns the size of every collection.
func (s *Store) Counts() models.Counts {
	return models.Counts{
		Customers:    len(s.customerOrder),
		Accounts:     len(s.accountOrder),
		Transactions: len(s.txLog),
		Loans:        len(s.loanOrder),
		CreditCards:  len(s.cardOrder),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneCustomer(c *models.Customer) *models.Customer {
	out := *c
	out.AccountIDs = slices.Clone(c.AccountIDs)
	out.LoanIDs = slices.Clone(c.LoanIDs)
	out.CreditCardIDs = slices.Clone(c.CreditCardIDs)
	out.LastLoginDate = clonePtr(c.LastLoginDate)
	out.Occupation = clonePtr(c.Occupation)
	out.MonthlyIncome = clonePtr(c.MonthlyIncome)
	return &out
}

func cloneAccount(a *models.Account) *models.Account {
	out := *a
	out.LastActivityDate = clonePtr(a.LastActivityDate)
	out.FreezeReason = clonePtr(a.FreezeReason)
	out.FreezeDate = clonePtr(a.FreezeDate)
	return &out
}

func cloneTransaction(tx *models.Transaction) *models.Transaction {
	out := *tx
	out.PostedDate = clonePtr(tx.PostedDate)
	out.ReferenceNumber = clonePtr(tx.ReferenceNumber)
	out.RelatedTransactionID = clonePtr(tx.RelatedTransactionID)
	return &out
}

func cloneLoan(l *models.Loan) *models.Loan {
	out := *l
	out.NextPaymentDate = clonePtr(l.NextPaymentDate)
	out.LastPaymentDate = clonePtr(l.LastPaymentDate)
	out.CollateralDescription = clonePtr(l.CollateralDescription)
	return &out
}

func cloneCard(c *models.CreditCard) *models.CreditCard {
	out := *c
	out.PaymentDueDate = clonePtr(c.PaymentDueDate)
	out.LastPaymentDate = clonePtr(c.LastPaymentDate)
	return &out
}
