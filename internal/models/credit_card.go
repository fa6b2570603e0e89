package models

import (
	"github.com/willfong/mockbank/internal/utils"
)

// CreditCard represents a customer's credit card. Status reuses AccountStatus.
//
// CurrentBalance + AvailableCredit == CreditLimit at all times.
type CreditCard struct {
	CardID     string        `json:"card_id" yaml:"card_id"`
	CustomerID string        `json:"customer_id" yaml:"customer_id"`
	CardNumber string        `json:"card_number" yaml:"card_number"` // Masked
	Status     AccountStatus `json:"status" yaml:"status"`

	CreditLimit     utils.Money `json:"credit_limit" yaml:"credit_limit"`
	AvailableCredit utils.Money `json:"available_credit" yaml:"available_credit"`
	CurrentBalance  utils.Money `json:"current_balance" yaml:"current_balance"`
	MinimumPayment  utils.Money `json:"minimum_payment" yaml:"minimum_payment"`
	InterestRate    float64     `json:"interest_rate" yaml:"interest_rate"`

	PaymentDueDate  *Date `json:"payment_due_date" yaml:"payment_due_date"`
	LastPaymentDate *Date `json:"last_payment_date" yaml:"last_payment_date"`
	DaysPastDue     int   `json:"days_past_due" yaml:"days_past_due"`

	CreatedDate Timestamp `json:"created_date" yaml:"created_date"`
}

// IsActive returns true if the card accepts payments
func (c *CreditCard) IsActive() bool {
	return c.Status.CanTransact()
}

// Balanced reports whether the balance and available credit add up to the limit
func (c *CreditCard) Balanced() bool {
	return c.CurrentBalance.Add(c.AvailableCredit) == c.CreditLimit
}

// CanApplyPayment reports whether available credit can absorb amount
// without overflowing.
func (c *CreditCard) CanApplyPayment(amount utils.Money) bool {
	_, ok := c.AvailableCredit.CheckedAdd(amount)
	return ok
}

// ApplyPayment moves amount from the outstanding balance back to available credit
func (c *CreditCard) ApplyPayment(amount utils.Money) {
	c.CurrentBalance = c.CurrentBalance.Sub(amount)
	c.AvailableCredit = c.AvailableCredit.Add(amount)
}
