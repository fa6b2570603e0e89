package models

import (
	"github.com/willfong/mockbank/internal/utils"
)

// LoanType represents the loan product
type LoanType string

const (
	LoanTypePersonal     LoanType = "ihtiyac_kredisi"
	LoanTypeAuto         LoanType = "tasit_kredisi"
	LoanTypeMortgage     LoanType = "konut_kredisi"
	LoanTypeHomeEquity   LoanType = "ipotekli_kredi"
	LoanTypeStudent      LoanType = "ogrenci_kredisi"
	LoanTypeBusiness     LoanType = "ticari_kredi"
	LoanTypeCreditLine   LoanType = "kredi_limiti"
	LoanTypeGold         LoanType = "altin_kredisi"
	LoanTypeAgricultural LoanType = "tarim_kredisi"
)

var loanTypeAliases = map[string]LoanType{
	"personal":     LoanTypePersonal,
	"auto":         LoanTypeAuto,
	"mortgage":     LoanTypeMortgage,
	"home_equity":  LoanTypeHomeEquity,
	"student":      LoanTypeStudent,
	"business":     LoanTypeBusiness,
	"credit_line":  LoanTypeCreditLine,
	"gold":         LoanTypeGold,
	"gold_loan":    LoanTypeGold,
	"agricultural": LoanTypeAgricultural,
}

// Valid reports whether t is a known loan type
func (t LoanType) Valid() bool {
	switch t {
	case LoanTypePersonal, LoanTypeAuto, LoanTypeMortgage, LoanTypeHomeEquity, LoanTypeStudent,
		LoanTypeBusiness, LoanTypeCreditLine, LoanTypeGold, LoanTypeAgricultural:
		return true
	default:
		return false
	}
}

// UnmarshalText accepts the wire code or the English alias.
func (t *LoanType) UnmarshalText(text []byte) error {
	parsed, err := parseCode("loan type", string(text), loanTypeAliases)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// LoanStatus represents where a loan is in its lifecycle
type LoanStatus string

const (
	LoanStatusActive          LoanStatus = "active"
	LoanStatusPaidOff         LoanStatus = "paid_off"
	LoanStatusDefaulted       LoanStatus = "defaulted"
	LoanStatusInForeclosure   LoanStatus = "in_foreclosure"
	LoanStatusPendingApproval LoanStatus = "pending_approval"
	LoanStatusApproved        LoanStatus = "approved"
	LoanStatusRejected        LoanStatus = "rejected"
)

// Valid reports whether s is a known loan status
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusActive, LoanStatusPaidOff, LoanStatusDefaulted, LoanStatusInForeclosure,
		LoanStatusPendingApproval, LoanStatusApproved, LoanStatusRejected:
		return true
	default:
		return false
	}
}

// AcceptsPayments returns true only for active loans. Paid-off is terminal.
func (s LoanStatus) AcceptsPayments() bool {
	switch s {
	case LoanStatusActive:
		return true
	case LoanStatusPaidOff, LoanStatusDefaulted, LoanStatusInForeclosure,
		LoanStatusPendingApproval, LoanStatusApproved, LoanStatusRejected:
		return false
	default:
		return false
	}
}

// UnmarshalText validates the status code.
func (s *LoanStatus) UnmarshalText(text []byte) error {
	parsed, err := parseCode[LoanStatus]("loan status", string(text), nil)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Loan represents a customer's loan
type Loan struct {
	LoanID     string     `json:"loan_id" yaml:"loan_id"`
	CustomerID string     `json:"customer_id" yaml:"customer_id"`
	LoanType   LoanType   `json:"loan_type" yaml:"loan_type"`
	LoanNumber string     `json:"loan_number" yaml:"loan_number"`
	Status     LoanStatus `json:"status" yaml:"status"`

	PrincipalAmount utils.Money `json:"principal_amount" yaml:"principal_amount"` // Never changes
	CurrentBalance  utils.Money `json:"current_balance" yaml:"current_balance"`   // Floored at zero
	InterestRate    float64     `json:"interest_rate" yaml:"interest_rate"`
	MonthlyPayment  utils.Money `json:"monthly_payment" yaml:"monthly_payment"`
	TermMonths      int         `json:"term_months" yaml:"term_months"`

	StartDate       Date  `json:"start_date" yaml:"start_date"`
	MaturityDate    Date  `json:"maturity_date" yaml:"maturity_date"`
	NextPaymentDate *Date `json:"next_payment_date" yaml:"next_payment_date"`
	LastPaymentDate *Date `json:"last_payment_date" yaml:"last_payment_date"`

	DaysPastDue           int     `json:"days_past_due" yaml:"days_past_due"`
	CollateralDescription *string `json:"collateral_description" yaml:"collateral_description"`
}

// IsActive returns true if the loan accepts payments
func (l *Loan) IsActive() bool {
	return l.Status.AcceptsPayments()
}

// ApplyPayment reduces the balance by amount, clamping at zero. A loan whose
// balance reaches zero is marked paid off.
func (l *Loan) ApplyPayment(amount utils.Money) {
	l.CurrentBalance = l.CurrentBalance.Sub(amount)
	if l.CurrentBalance <= 0 {
		l.CurrentBalance = 0
		l.Status = LoanStatusPaidOff
	}
}
