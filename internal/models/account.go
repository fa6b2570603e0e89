package models

import (
	"github.com/willfong/mockbank/internal/utils"
)

// AccountType represents the type of bank account. Wire codes follow the
// Turkish product names used by the seed data.
type AccountType string

const (
	AccountTypeChecking         AccountType = "vadesiz_mevduat" // Demand deposit
	AccountTypeSavings          AccountType = "vadeli_mevduat"  // Time deposit
	AccountTypeGold             AccountType = "altin_hesabi"
	AccountTypeForeignCurrency  AccountType = "doviz_hesabi"
	AccountTypeBusinessChecking AccountType = "ticari_mevduat"
	AccountTypeStudent          AccountType = "ogrenci_hesabi"
	AccountTypeSenior           AccountType = "emekli_hesabi"
	AccountTypeInvestment       AccountType = "yatirim_hesabi"
)

var accountTypeAliases = map[string]AccountType{
	"checking":          AccountTypeChecking,
	"savings":           AccountTypeSavings,
	"gold":              AccountTypeGold,
	"gold_account":      AccountTypeGold,
	"foreign_currency":  AccountTypeForeignCurrency,
	"business_checking": AccountTypeBusinessChecking,
	"student":           AccountTypeStudent,
	"student_account":   AccountTypeStudent,
	"senior":            AccountTypeSenior,
	"senior_account":    AccountTypeSenior,
	"investment":        AccountTypeInvestment,
}

// Valid reports whether t is a known account type
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeGold, AccountTypeForeignCurrency,
		AccountTypeBusinessChecking, AccountTypeStudent, AccountTypeSenior, AccountTypeInvestment:
		return true
	default:
		return false
	}
}

// IsDeposit returns true for the account types counted as customer deposits
// in the database statistics.
func (t AccountType) IsDeposit() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeForeignCurrency:
		return true
	case AccountTypeGold, AccountTypeBusinessChecking, AccountTypeStudent,
		AccountTypeSenior, AccountTypeInvestment:
		return false
	default:
		return false
	}
}

// UnmarshalText accepts the wire code or the English alias.
func (t *AccountType) UnmarshalText(text []byte) error {
	parsed, err := parseCode("account type", string(text), accountTypeAliases)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AccountStatus represents the current status of an account. Credit cards
// reuse the same enumeration.
type AccountStatus string

const (
	AccountStatusActive          AccountStatus = "active"
	AccountStatusInactive        AccountStatus = "inactive"
	AccountStatusFrozen          AccountStatus = "frozen"
	AccountStatusClosed          AccountStatus = "closed"
	AccountStatusPendingApproval AccountStatus = "pending_approval"
)

// Valid reports whether s is a known account status
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusActive, AccountStatusInactive, AccountStatusFrozen,
		AccountStatusClosed, AccountStatusPendingApproval:
		return true
	default:
		return false
	}
}

// CanTransact returns true only for the status that accepts money movement
func (s AccountStatus) CanTransact() bool {
	switch s {
	case AccountStatusActive:
		return true
	case AccountStatusInactive, AccountStatusFrozen, AccountStatusClosed, AccountStatusPendingApproval:
		return false
	default:
		return false
	}
}

// UnmarshalText validates the status code.
func (s *AccountStatus) UnmarshalText(text []byte) error {
	parsed, err := parseCode[AccountStatus]("account status", string(text), nil)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Account represents a bank account
type Account struct {
	AccountID     string      `json:"account_id" yaml:"account_id"`
	CustomerID    string      `json:"customer_id" yaml:"customer_id"`
	AccountType   AccountType `json:"account_type" yaml:"account_type"`
	AccountNumber string      `json:"account_number" yaml:"account_number"` // Masked
	RoutingNumber string      `json:"routing_number" yaml:"routing_number"`

	Status AccountStatus `json:"status" yaml:"status"`

	// AvailableBalance is balance minus holds. No operation places holds, so
	// every mutation moves both fields together.
	Balance          utils.Money `json:"balance" yaml:"balance"`
	AvailableBalance utils.Money `json:"available_balance" yaml:"available_balance"`

	InterestRate   float64     `json:"interest_rate" yaml:"interest_rate"` // Annual, percent
	MinimumBalance utils.Money `json:"minimum_balance" yaml:"minimum_balance"`
	MonthlyFee     utils.Money `json:"monthly_fee" yaml:"monthly_fee"`
	OverdraftLimit utils.Money `json:"overdraft_limit" yaml:"overdraft_limit"`

	CreatedDate      Date  `json:"created_date" yaml:"created_date"`
	LastActivityDate *Date `json:"last_activity_date" yaml:"last_activity_date"`

	// Set only while Status is frozen
	FreezeReason *string `json:"freeze_reason" yaml:"freeze_reason"`
	FreezeDate   *Date   `json:"freeze_date" yaml:"freeze_date"`
}

// IsActive returns true if the account accepts deposits, withdrawals and payments
func (a *Account) IsActive() bool {
	return a.Status.CanTransact()
}

// IsFrozen returns true if the account is frozen
func (a *Account) IsFrozen() bool {
	return a.Status == AccountStatusFrozen
}

// SpendingPower returns the available balance plus overdraft protection,
// saturating at the largest representable amount.
func (a *Account) SpendingPower() utils.Money {
	sum, ok := a.AvailableBalance.CheckedAdd(a.OverdraftLimit)
	if !ok {
		return utils.MaxMoney
	}
	return sum
}

// CanWithdraw checks if the account can support a withdrawal of the given amount
func (a *Account) CanWithdraw(amount utils.Money) bool {
	if !a.IsActive() {
		return false
	}
	return a.SpendingPower() >= amount
}

// CanCredit reports whether amount can be added to both balances without
// overflowing.
func (a *Account) CanCredit(amount utils.Money) bool {
	_, ok := a.Balance.CheckedAdd(amount)
	_, okAvail := a.AvailableBalance.CheckedAdd(amount)
	return ok && okAvail
}

// Credit adds amount to both balances.
func (a *Account) Credit(amount utils.Money) {
	a.Balance = a.Balance.Add(amount)
	a.AvailableBalance = a.AvailableBalance.Add(amount)
}

// Debit removes amount from both balances.
func (a *Account) Debit(amount utils.Money) {
	a.Balance = a.Balance.Sub(amount)
	a.AvailableBalance = a.AvailableBalance.Sub(amount)
}
