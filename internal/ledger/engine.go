package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/utils"
)

// Engine applies ledger operations to a Store. Writes hold the exclusive
// lock for their whole duration, so a transfer sees a consistent joint
// pre-state for both accounts; reads share the lock.
//
// Every write resolves its entities, checks statuses, then amounts, then
// funds, and only then mutates. The mutation step cannot fail.
type Engine struct {
	mu    sync.RWMutex
	store *Store
	ids   *IDAllocator

	// highest transaction number present at load time
	txBase int64

	now       func() time.Time
	reference func() string
	log       *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces time.Now for transaction and freeze timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDAllocator injects the allocator used for new transaction ids.
func WithIDAllocator(ids *IDAllocator) Option {
	return func(e *Engine) { e.ids = ids }
}

// WithLogger sets the logger for committed and rejected writes.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithReferenceGenerator replaces the reference number source. Returning
// an empty string leaves reference_number unset.
func WithReferenceGenerator(next func() string) Option {
	return func(e *Engine) { e.reference = next }
}

// New builds an engine over a copy of snap. The allocator is advanced past
// every identifier already present in the snapshot.
func New(snap *models.Snapshot, opts ...Option) (*Engine, error) {
	store, err := NewStore(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	e := &Engine{
		store:     store,
		now:       time.Now,
		reference: uuid.NewString,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ids == nil {
		e.ids = NewIDAllocator()
	}

	for _, c := range store.Customers() {
		e.ids.Observe(c.CustomerID)
	}
	for _, a := range store.Accounts() {
		e.ids.Observe(a.AccountID)
	}
	for _, tx := range store.Transactions() {
		e.ids.Observe(tx.TransactionID)
	}
	for _, l := range store.Loans() {
		e.ids.Observe(l.LoanID)
	}
	for _, c := range store.CreditCards() {
		e.ids.Observe(c.CardID)
	}
	e.txBase = e.ids.Peek(KindTransaction)
	return e, nil
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() *models.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Snapshot()
}

// IDs lists the identifiers of one entity kind in collection order.
func (e *Engine) IDs(kind Kind) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var ids []string
	switch kind {
	case KindCustomer:
		for _, c := range e.store.Customers() {
			ids = append(ids, c.CustomerID)
		}
	case KindAccount:
		for _, a := range e.store.Accounts() {
			ids = append(ids, a.AccountID)
		}
	case KindTransaction:
		for _, tx := range e.store.Transactions() {
			ids = append(ids, tx.TransactionID)
		}
	case KindLoan:
		for _, l := range e.store.Loans() {
			ids = append(ids, l.LoanID)
		}
	case KindCreditCard:
		for _, c := range e.store.CreditCards() {
			ids = append(ids, c.CardID)
		}
	}
	return ids
}

// FreezeAccount marks an account frozen with a reason and today's date.
func (e *Engine) FreezeAccount(accountID, reason string) (*StatusResult, error) {
	const op = "freeze_account"
	e.mu.Lock()
	defer e.mu.Unlock()

	acct, ok := e.store.Account(accountID)
	if !ok {
		return nil, e.reject(opErr(op, ErrNotFound, "Account %s not found", accountID))
	}
	if acct.IsFrozen() {
		return nil, e.reject(opErr(op, ErrAlreadyFrozen, "Account is already frozen"))
	}

	today := models.NewDate(e.now())
	acct.Status = models.AccountStatusFrozen
	acct.FreezeReason = &reason
	acct.FreezeDate = &today

	e.log.Debug("account frozen", zap.String("account_id", accountID), zap.String("reason", reason))
	return &StatusResult{
		Success: true,
		Message: fmt.Sprintf("Account %s has been frozen. Reason: %s", accountID, reason),
	}, nil
}

// UnfreezeAccount returns a frozen account to active and clears the freeze metadata.
func (e *Engine) UnfreezeAccount(accountID string) (*StatusResult, error) {
	const op = "unfreeze_account"
	e.mu.Lock()
	defer e.mu.Unlock()

	acct, ok := e.store.Account(accountID)
	if !ok {
		return nil, e.reject(opErr(op, ErrNotFound, "Account %s not found", accountID))
	}
	if !acct.IsFrozen() {
		return nil, e.reject(opErr(op, ErrNotFrozen, "Account is not frozen"))
	}

	acct.Status = models.AccountStatusActive
	acct.FreezeReason = nil
	acct.FreezeDate = nil

	e.log.Debug("account unfrozen", zap.String("account_id", accountID))
	return &StatusResult{
		Success: true,
		Message: fmt.Sprintf("Account %s has been unfrozen", accountID),
	}, nil
}

// Deposit credits an active account.
func (e *Engine) Deposit(accountID string, amount utils.Money, description string) (*BalanceResult, error) {
	const op = "deposit"
	e.mu.Lock()
	defer e.mu.Unlock()

	acct, ok := e.store.Account(accountID)
	if !ok {
		return nil, e.reject(opErr(op, ErrNotFound, "Account %s not found", accountID))
	}
	if !acct.IsActive() {
		return nil, e.reject(opErr(op, ErrInactiveAccount, "Account %s is not active", accountID))
	}
	if !amount.IsPositive() {
		return nil, e.reject(opErr(op, ErrInvalidAmount, "Deposit amount must be positive"))
	}
	if !acct.CanCredit(amount) {
		return nil, e.reject(opErr(op, ErrInvalidAmount, "Deposit amount exceeds the account balance limit"))
	}

	now := e.now()
	acct.Credit(amount)
	touch(acct, now)
	tx := e.newTransaction(acct, models.TxTypeDeposit, amount, orDefault(description, "Deposit"), now)
	e.store.AppendTransaction(tx)

	e.committed(op, amount, tx)
	return &BalanceResult{
		Success:       true,
		Message:       fmt.Sprintf("Deposit of %s completed successfully", amount.FormatSimple("$")),
		TransactionID: tx.TransactionID,
		NewBalance:    acct.Balance,
	}, nil
}

// Withdraw debits an active account. The overdraft limit extends the
// available balance.
func (e *Engine) Withdraw(accountID string, amount utils.Money, description string) (*BalanceResult, error) {
	const op = "withdrawal"
	e.mu.Lock()
	defer e.mu.Unlock()

	acct, ok := e.store.Account(accountID)
	if !ok {
		return nil, e.reject(opErr(op, ErrNotFound, "Account %s not found", accountID))
	}
	if !acct.IsActive() {
		return nil, e.reject(opErr(op, ErrInactiveAccount, "Account %s is not active", accountID))
	}
	if !amount.IsPositive() {
		return nil, e.reject(opErr(op, ErrInvalidAmount, "Withdrawal amount must be positive"))
	}
	if !acct.CanWithdraw(amount) {
		return nil, e.reject(opErr(op, ErrInsufficientFunds, "Insufficient funds for withdrawal"))
	}

	now := e.now()
	acct.Debit(amount)
	touch(acct, now)
	tx := e.newTransaction(acct, models.TxTypeWithdrawal, amount.Neg(), orDefault(description, "Withdrawal"), now)
	e.store.AppendTransaction(tx)

	e.committed(op, amount, tx)
	return &BalanceResult{
		Success:       true,
		Message:       fmt.Sprintf("Withdrawal of %s completed successfully", amount.FormatSimple("$")),
		TransactionID: tx.TransactionID,
		NewBalance:    acct.Balance,
	}, nil
}

// Transfer moves amount between two active accounts. Both legs are
// validated before either balance changes, and the two transactions
// reference each other.
func (e *Engine) Transfer(fromID, toID string, amount utils.Money, description string) (*TransferResult, error) {
	const op = "transfer"
	e.mu.Lock()
	defer e.mu.Unlock()

	from, ok := e.store.Account(fromID)
	if !ok {
		return nil, e.reject(opErr(op, ErrNotFound, "Source account %s not found", fromID))
	}
	to, ok := e.store.Account(toID)
	if !ok {
		return nil, e.reject(opErr(op, ErrNotFound, "Destination account %s not found", toID))
	}
	if !from.IsActive() {
		return nil, e.reject(opErr(op, ErrInactiveAccount, "Source account %s is not active", fromID))
	}
	if !to.IsActive() {
		return nil, e.reject(opErr(op, ErrInactiveAccount, "Destination account %s is not active", toID))
	}
	if !amount.IsPositive() {
		return nil, e.reject(opErr(op, ErrInvalidAmount, "Transfer amount must be positive"))
	}
	if fromID == toID {
		return nil, e.reject(opErr(op, ErrSameAccount, "Cannot transfer to the same account"))
	}
	if from.AvailableBalance < amount {
		return nil, e.reject(opErr(op, ErrInsufficientFunds, "Insufficient funds for transfer"))
	}
	if !to.CanCredit(amount) {
		return nil, e.reject(opErr(op, ErrInvalidAmount, "Transfer amount exceeds the destination balance limit"))
	}

	now := e.now()
	from.Debit(amount)
	to.Credit(amount)
	touch(from, now)
	touch(to, now)

	debit := e.newTransaction(from, models.TxTypeTransferOut, amount.Neg(),
		fmt.Sprintf("Transfer to %s: %s", to.AccountNumber, description), now)
	credit := e.newTransaction(to, models.TxTypeTransferIn, amount,
		fmt.Sprintf("Transfer from %s: %s", from.AccountNumber, description), now)
	debit.RelatedTransactionID = &credit.TransactionID
	credit.RelatedTransactionID = &debit.TransactionID
	e.store.AppendTransaction(debit)
	e.store.AppendTransaction(credit)

	e.committed(op, amount, debit, credit)
	return &TransferResult{
		Success:             true,
		Message:             fmt.Sprintf("Transfer of %s completed successfully", amount.FormatSimple("$")),
		DebitTransactionID:  debit.TransactionID,
		CreditTransactionID: credit.TransactionID,
	}, nil
}

// newTransaction builds a completed record for acct after its balance has
// been updated. It is not yet appended.
func (e *Engine) newTransaction(acct *models.Account, typ models.TransactionType, amount utils.Money, description string, now time.Time) *models.Transaction {
	ts := models.NewTimestamp(now)
	tx := &models.Transaction{
		TransactionID:   e.ids.Next(KindTransaction),
		AccountID:       acct.AccountID,
		TransactionType: typ,
		Amount:          amount,
		Description:     description,
		Status:          models.TxStatusCompleted,
		TransactionDate: ts,
		PostedDate:      models.TimestampPtr(ts),
		BalanceAfter:    acct.Balance,
	}
	if ref := e.reference(); ref != "" {
		tx.ReferenceNumber = &ref
	}
	return tx
}

func (e *Engine) committed(op string, amount utils.Money, txs ...*models.Transaction) {
	if ce := e.log.Check(zap.DebugLevel, "ledger write committed"); ce != nil {
		ids := make([]string, len(txs))
		for i, tx := range txs {
			ids[i] = tx.TransactionID
		}
		ce.Write(
			zap.String("op", op),
			zap.Stringer("amount", amount),
			zap.Strings("transaction_ids", ids),
		)
	}
}

func (e *Engine) reject(err *OpError) error {
	e.log.Debug("ledger write rejected",
		zap.String("op", err.Op),
		zap.NamedError("class", ErrorClass(err)),
		zap.String("message", err.Msg),
	)
	return err
}

func touch(acct *models.Account, now time.Time) {
	acct.LastActivityDate = models.DatePtr(models.NewDate(now))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
