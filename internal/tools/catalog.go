package tools

import (
	"github.com/willfong/mockbank/internal/utils"
)

type customerArgs struct {
	CustomerID string `json:"customer_id"`
}

type accountArgs struct {
	AccountID string `json:"account_id"`
}

type loanArgs struct {
	LoanID string `json:"loan_id"`
}

type cardArgs struct {
	CardID string `json:"card_id"`
}

type nameArgs struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type nationalIDArgs struct {
	TCNo string `json:"tc_no"`
}

type verifyArgs struct {
	CustomerID  string `json:"customer_id"`
	TCNo        string `json:"tc_no"`
	DateOfBirth string `json:"date_of_birth"`
}

type freezeArgs struct {
	AccountID string `json:"account_id"`
	Reason    string `json:"reason"`
}

type historyArgs struct {
	AccountID string `json:"account_id"`
	Limit     int    `json:"limit"`
}

type movementArgs struct {
	AccountID   string      `json:"account_id"`
	Amount      utils.Money `json:"amount"`
	Description string      `json:"description"`
}

type transferArgs struct {
	FromAccountID string      `json:"from_account_id"`
	ToAccountID   string      `json:"to_account_id"`
	Amount        utils.Money `json:"amount"`
	Description   string      `json:"description"`
}

type loanPaymentArgs struct {
	LoanID           string      `json:"loan_id"`
	PaymentAmount    utils.Money `json:"payment_amount"`
	PaymentAccountID string      `json:"payment_account_id"`
}

type cardPaymentArgs struct {
	CardID           string      `json:"card_id"`
	PaymentAmount    utils.Money `json:"payment_amount"`
	PaymentAccountID string      `json:"payment_account_id"`
}

type noArgs struct{}

func str(name, description string) Param {
	return Param{Name: name, Type: "string", Description: description, Required: true}
}

func num(name, description string) Param {
	return Param{Name: name, Type: "number", Description: description, Required: true}
}

func optional(p Param, def any) Param {
	p.Required = false
	p.Default = def
	return p
}

var (
	customerIDParam = str("customer_id", "Customer ID, e.g. customer_1001")
	accountIDParam  = str("account_id", "Account ID, e.g. account_2001")
)

// catalog lists every tool in the order it is advertised.
func catalog(historyLimit int) []*Tool {
	return []*Tool{
		define("find_customer_by_name", "Find a customer by first and last name", KindRead,
			[]Param{str("first_name", "Customer first name"), str("last_name", "Customer last name")},
			func(r *Registry, a nameArgs) (any, error) {
				return r.engine.FindCustomerByName(a.FirstName, a.LastName)
			}),
		define("find_customer_by_tc_no", "Find a customer by national ID number", KindRead,
			[]Param{str("tc_no", "National ID number")},
			func(r *Registry, a nationalIDArgs) (any, error) {
				return r.engine.FindCustomerByNationalID(a.TCNo)
			}),
		define("get_customer_info", "Get customer profile details", KindRead,
			[]Param{customerIDParam},
			func(r *Registry, a customerArgs) (any, error) {
				return r.engine.CustomerInfo(a.CustomerID)
			}),
		define("verify_customer_identity", "Verify a customer's national ID and date of birth", KindRead,
			[]Param{customerIDParam, str("tc_no", "National ID number"), str("date_of_birth", "Date of birth, YYYY-MM-DD or DD/MM/YYYY")},
			func(r *Registry, a verifyArgs) (any, error) {
				return r.engine.VerifyCustomerIdentity(a.CustomerID, a.TCNo, a.DateOfBirth)
			}),
		define("get_account_info", "Get account details and balances", KindRead,
			[]Param{accountIDParam},
			func(r *Registry, a accountArgs) (any, error) {
				return r.engine.AccountInfo(a.AccountID)
			}),
		define("get_customer_accounts", "List a customer's accounts", KindRead,
			[]Param{customerIDParam},
			func(r *Registry, a customerArgs) (any, error) {
				return r.engine.CustomerAccounts(a.CustomerID)
			}),
		define("freeze_account", "Freeze an active account", KindWrite,
			[]Param{accountIDParam, str("reason", "Reason for the freeze")},
			func(r *Registry, a freezeArgs) (any, error) {
				return r.engine.FreezeAccount(a.AccountID, a.Reason)
			}),
		define("unfreeze_account", "Unfreeze a frozen account", KindWrite,
			[]Param{accountIDParam},
			func(r *Registry, a accountArgs) (any, error) {
				return r.engine.UnfreezeAccount(a.AccountID)
			}),
		define("get_account_transactions", "Get recent account transactions, newest first", KindRead,
			[]Param{accountIDParam, optional(Param{Name: "limit", Type: "integer", Description: "Maximum number of transactions"}, historyLimit)},
			func(r *Registry, a historyArgs) (any, error) {
				limit := a.Limit
				if limit <= 0 {
					limit = r.historyLimit
				}
				return r.engine.AccountTransactions(a.AccountID, limit)
			}),
		define("process_transfer", "Transfer money between two accounts", KindWrite,
			[]Param{
				str("from_account_id", "Source account ID"),
				str("to_account_id", "Destination account ID"),
				num("amount", "Amount to transfer"),
				optional(str("description", "Transfer description"), "Transfer"),
			},
			func(r *Registry, a transferArgs) (any, error) {
				return r.engine.Transfer(a.FromAccountID, a.ToAccountID, a.Amount, a.Description)
			}),
		define("process_deposit", "Deposit money into an account", KindWrite,
			[]Param{accountIDParam, num("amount", "Amount to deposit"), optional(str("description", "Deposit description"), "Deposit")},
			func(r *Registry, a movementArgs) (any, error) {
				return r.engine.Deposit(a.AccountID, a.Amount, a.Description)
			}),
		define("process_withdrawal", "Withdraw money from an account", KindWrite,
			[]Param{accountIDParam, num("amount", "Amount to withdraw"), optional(str("description", "Withdrawal description"), "Withdrawal")},
			func(r *Registry, a movementArgs) (any, error) {
				return r.engine.Withdraw(a.AccountID, a.Amount, a.Description)
			}),
		define("get_loan_info", "Get loan details", KindRead,
			[]Param{str("loan_id", "Loan ID, e.g. loan_4001")},
			func(r *Registry, a loanArgs) (any, error) {
				return r.engine.LoanInfo(a.LoanID)
			}),
		define("get_customer_loans", "List a customer's loans", KindRead,
			[]Param{customerIDParam},
			func(r *Registry, a customerArgs) (any, error) {
				return r.engine.CustomerLoans(a.CustomerID)
			}),
		define("process_loan_payment", "Pay towards a loan from an account", KindWrite,
			[]Param{str("loan_id", "Loan ID"), num("payment_amount", "Amount to pay"), str("payment_account_id", "Account to pay from")},
			func(r *Registry, a loanPaymentArgs) (any, error) {
				return r.engine.PayLoan(a.LoanID, a.PaymentAmount, a.PaymentAccountID)
			}),
		define("get_credit_card_info", "Get credit card details", KindRead,
			[]Param{str("card_id", "Credit card ID, e.g. credit_card_5001")},
			func(r *Registry, a cardArgs) (any, error) {
				return r.engine.CreditCardInfo(a.CardID)
			}),
		define("get_customer_credit_cards", "List a customer's credit cards", KindRead,
			[]Param{customerIDParam},
			func(r *Registry, a customerArgs) (any, error) {
				return r.engine.CustomerCreditCards(a.CustomerID)
			}),
		define("process_credit_card_payment", "Pay a credit card balance from an account", KindWrite,
			[]Param{str("card_id", "Credit card ID"), num("payment_amount", "Amount to pay"), str("payment_account_id", "Account to pay from")},
			func(r *Registry, a cardPaymentArgs) (any, error) {
				return r.engine.PayCreditCard(a.CardID, a.PaymentAmount, a.PaymentAccountID)
			}),
		define("get_statistics", "Get ledger-wide totals", KindRead, nil,
			func(r *Registry, _ noArgs) (any, error) {
				return r.engine.Statistics(), nil
			}),
	}
}
