package models

import (
	"github.com/willfong/mockbank/internal/utils"
)

// CustomerStatus represents the customer's relationship status
type CustomerStatus string

const (
	CustomerStatusActive              CustomerStatus = "active"
	CustomerStatusInactive            CustomerStatus = "inactive"
	CustomerStatusSuspended           CustomerStatus = "suspended"
	CustomerStatusClosed              CustomerStatus = "closed"
	CustomerStatusPendingVerification CustomerStatus = "pending_verification"
)

// Valid reports whether s is a known customer status
func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusSuspended,
		CustomerStatusClosed, CustomerStatusPendingVerification:
		return true
	default:
		return false
	}
}

// UnmarshalText validates the status code.
func (s *CustomerStatus) UnmarshalText(text []byte) error {
	parsed, err := parseCode[CustomerStatus]("customer status", string(text), nil)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DefaultCountry is applied to addresses that omit the country
const DefaultCountry = "Turkey"

// Address is a postal address
type Address struct {
	Street     string `json:"street" yaml:"street"`
	District   string `json:"district" yaml:"district"` // İlçe
	City       string `json:"city" yaml:"city"`
	PostalCode string `json:"postal_code" yaml:"postal_code"`
	Country    string `json:"country" yaml:"country"`
}

// Customer represents a bank customer with their identity and product ownership
type Customer struct {
	CustomerID string `json:"customer_id" yaml:"customer_id"`

	// Personal Information (PII)
	FirstName   string  `json:"first_name" yaml:"first_name"`
	LastName    string  `json:"last_name" yaml:"last_name"`
	DateOfBirth string  `json:"date_of_birth" yaml:"date_of_birth"` // Stored verbatim, YYYY-MM-DD
	TCNo        string  `json:"tc_no" yaml:"tc_no"`                 // National ID, masked in seed data
	Email       string  `json:"email" yaml:"email"`
	PhoneNumber string  `json:"phone_number" yaml:"phone_number"`
	Address     Address `json:"address" yaml:"address"`

	Status CustomerStatus `json:"status" yaml:"status"`

	// Ownership lists, in the order the products were opened
	AccountIDs    []string `json:"account_ids" yaml:"account_ids"`
	LoanIDs       []string `json:"loan_ids" yaml:"loan_ids"`
	CreditCardIDs []string `json:"credit_card_ids" yaml:"credit_card_ids"`

	CreatedDate   Timestamp  `json:"created_date" yaml:"created_date"`
	LastLoginDate *Timestamp `json:"last_login_date" yaml:"last_login_date"`

	// Banking Profile
	KYCVerified       bool         `json:"kyc_verified" yaml:"kyc_verified"`
	RiskScore         int          `json:"risk_score" yaml:"risk_score"` // 300-850
	Occupation        *string      `json:"occupation" yaml:"occupation"`
	MonthlyIncome     *utils.Money `json:"monthly_income" yaml:"monthly_income"`
	PreferredLanguage string       `json:"preferred_language" yaml:"preferred_language"`
}

// Defaults applied to optional profile fields left empty by the source document
const (
	DefaultRiskScore         = 500
	DefaultPreferredLanguage = "tr"
)

// FullName returns the customer's full name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ApplyDefaults fills profile fields that older documents leave empty.
func (c *Customer) ApplyDefaults() {
	if c.RiskScore == 0 {
		c.RiskScore = DefaultRiskScore
	}
	if c.PreferredLanguage == "" {
		c.PreferredLanguage = DefaultPreferredLanguage
	}
	if c.Address.Country == "" {
		c.Address.Country = DefaultCountry
	}
	if c.Status == "" {
		c.Status = CustomerStatusActive
	}
}

// OwnsAccount reports whether accountID is in the customer's account list
func (c *Customer) OwnsAccount(accountID string) bool {
	for _, id := range c.AccountIDs {
		if id == accountID {
			return true
		}
	}
	return false
}
