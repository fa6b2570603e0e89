package ledger

import (
	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/utils"
)

// StatusResult is returned by freeze and unfreeze.
type StatusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BalanceResult is returned by deposit and withdrawal.
type BalanceResult struct {
	Success       bool        `json:"success"`
	Message       string      `json:"message"`
	TransactionID string      `json:"transaction_id"`
	NewBalance    utils.Money `json:"new_balance"`
}

// TransferResult carries both legs of a transfer.
type TransferResult struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	DebitTransactionID  string `json:"debit_transaction_id"`
	CreditTransactionID string `json:"credit_transaction_id"`
}

// LoanPaymentResult is returned by PayLoan.
type LoanPaymentResult struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	TransactionID    string            `json:"transaction_id"`
	RemainingBalance utils.Money       `json:"remaining_balance"`
	LoanStatus       models.LoanStatus `json:"loan_status"`
}

// CardPaymentResult is returned by PayCreditCard.
type CardPaymentResult struct {
	Success          bool        `json:"success"`
	Message          string      `json:"message"`
	TransactionID    string      `json:"transaction_id"`
	RemainingBalance utils.Money `json:"remaining_balance"`
	AvailableCredit  utils.Money `json:"available_credit"`
}

// VerifyResult is the identity verification verdict. CustomerName is only
// set when Verified is true.
type VerifyResult struct {
	Verified     bool   `json:"verified"`
	CustomerName string `json:"customer_name,omitempty"`
}

// CustomerMatch is the short customer reference returned by searches.
type CustomerMatch struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// AmbiguousMatchError is returned when a name search finds more than one
// customer. It carries the candidates so the caller can disambiguate.
type AmbiguousMatchError struct {
	Candidates []CustomerMatch
}

func (e *AmbiguousMatchError) Error() string {
	return "Birden fazla müşteri bulundu"
}

// CustomerInfo is the customer projection.
type CustomerInfo struct {
	CustomerID  string                `json:"customer_id"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Phone       string                `json:"phone"`
	Status      models.CustomerStatus `json:"status"`
	KYCVerified bool                  `json:"kyc_verified"`
	RiskScore   int                   `json:"risk_score"`
	CreatedDate models.Timestamp      `json:"created_date"`
}

// AccountInfo is the full account projection.
type AccountInfo struct {
	AccountID        string               `json:"account_id"`
	AccountNumber    string               `json:"account_number"`
	AccountType      models.AccountType   `json:"account_type"`
	Status           models.AccountStatus `json:"status"`
	Balance          utils.Money          `json:"balance"`
	AvailableBalance utils.Money          `json:"available_balance"`
	InterestRate     float64              `json:"interest_rate"`
	MinimumBalance   utils.Money          `json:"minimum_balance"`
	MonthlyFee       utils.Money          `json:"monthly_fee"`
	OverdraftLimit   utils.Money          `json:"overdraft_limit"`
	CreatedDate      models.Date          `json:"created_date"`
	FreezeReason     *string              `json:"freeze_reason,omitempty"`
	FreezeDate       *models.Date         `json:"freeze_date,omitempty"`
}

// AccountSummary is the per-account row of a customer listing.
type AccountSummary struct {
	AccountID        string               `json:"account_id"`
	AccountNumber    string               `json:"account_number"`
	AccountType      models.AccountType   `json:"account_type"`
	Status           models.AccountStatus `json:"status"`
	Balance          utils.Money          `json:"balance"`
	AvailableBalance utils.Money          `json:"available_balance"`
}

// CustomerAccounts lists a customer's accounts.
type CustomerAccounts struct {
	Accounts      []AccountSummary `json:"accounts"`
	TotalAccounts int              `json:"total_accounts"`
}

// TransactionSummary is one row of an account history.
type TransactionSummary struct {
	TransactionID string                   `json:"transaction_id"`
	Type          models.TransactionType   `json:"type"`
	Amount        utils.Money              `json:"amount"`
	Description   string                   `json:"description"`
	Status        models.TransactionStatus `json:"status"`
	Date          models.Timestamp         `json:"date"`
	BalanceAfter  utils.Money              `json:"balance_after"`
}

// AccountTransactions is a page of history plus the full count.
type AccountTransactions struct {
	Transactions      []TransactionSummary `json:"transactions"`
	TotalTransactions int                  `json:"total_transactions"`
}

// LoanInfo is the full loan projection.
type LoanInfo struct {
	LoanID          string            `json:"loan_id"`
	LoanNumber      string            `json:"loan_number"`
	LoanType        models.LoanType   `json:"loan_type"`
	Status          models.LoanStatus `json:"status"`
	PrincipalAmount utils.Money       `json:"principal_amount"`
	CurrentBalance  utils.Money       `json:"current_balance"`
	InterestRate    float64           `json:"interest_rate"`
	MonthlyPayment  utils.Money       `json:"monthly_payment"`
	TermMonths      int               `json:"term_months"`
	StartDate       models.Date       `json:"start_date"`
	MaturityDate    models.Date       `json:"maturity_date"`
	NextPaymentDate *models.Date      `json:"next_payment_date"`
	LastPaymentDate *models.Date      `json:"last_payment_date"`
	DaysPastDue     int               `json:"days_past_due"`
}

// LoanSummary is the per-loan row of a customer listing.
type LoanSummary struct {
	LoanID          string            `json:"loan_id"`
	LoanNumber      string            `json:"loan_number"`
	LoanType        models.LoanType   `json:"loan_type"`
	Status          models.LoanStatus `json:"status"`
	CurrentBalance  utils.Money       `json:"current_balance"`
	MonthlyPayment  utils.Money       `json:"monthly_payment"`
	NextPaymentDate *models.Date      `json:"next_payment_date"`
	DaysPastDue     int               `json:"days_past_due"`
}

// CustomerLoans lists a customer's loans.
type CustomerLoans struct {
	Loans      []LoanSummary `json:"loans"`
	TotalLoans int           `json:"total_loans"`
}

// CreditCardInfo is the full card projection.
type CreditCardInfo struct {
	CardID          string               `json:"card_id"`
	CardNumber      string               `json:"card_number"`
	Status          models.AccountStatus `json:"status"`
	CreditLimit     utils.Money          `json:"credit_limit"`
	AvailableCredit utils.Money          `json:"available_credit"`
	CurrentBalance  utils.Money          `json:"current_balance"`
	MinimumPayment  utils.Money          `json:"minimum_payment"`
	InterestRate    float64              `json:"interest_rate"`
	PaymentDueDate  *models.Date         `json:"payment_due_date"`
	LastPaymentDate *models.Date         `json:"last_payment_date"`
	DaysPastDue     int                  `json:"days_past_due"`
}

// CreditCardSummary is the per-card row of a customer listing.
type CreditCardSummary struct {
	CardID          string               `json:"card_id"`
	CardNumber      string               `json:"card_number"`
	Status          models.AccountStatus `json:"status"`
	CreditLimit     utils.Money          `json:"credit_limit"`
	AvailableCredit utils.Money          `json:"available_credit"`
	CurrentBalance  utils.Money          `json:"current_balance"`
	MinimumPayment  utils.Money          `json:"minimum_payment"`
	PaymentDueDate  *models.Date         `json:"payment_due_date"`
}

// CustomerCreditCards lists a customer's cards.
type CustomerCreditCards struct {
	CreditCards []CreditCardSummary `json:"credit_cards"`
	TotalCards  int                 `json:"total_cards"`
}

// Statistics summarizes the whole ledger.
type Statistics struct {
	NumCustomers           int         `json:"num_customers"`
	NumAccounts            int         `json:"num_accounts"`
	NumTransactions        int         `json:"num_transactions"`
	NumLoans               int         `json:"num_loans"`
	NumCreditCards         int         `json:"num_credit_cards"`
	TotalDeposits          utils.Money `json:"total_deposits"`
	TotalLoanBalance       utils.Money `json:"total_loan_balance"`
	TotalCreditCardBalance utils.Money `json:"total_credit_card_balance"`
}
