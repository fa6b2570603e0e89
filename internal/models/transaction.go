package models

import (
	"github.com/willfong/mockbank/internal/utils"
)

// TransactionType represents the type of financial transaction
type TransactionType string

const (
	// Credit transactions (money coming in)
	TxTypeDeposit    TransactionType = "yatirim"
	TxTypeTransferIn TransactionType = "havale_gelen"
	TxTypeInterest   TransactionType = "faiz"
	TxTypeRefund     TransactionType = "iade"

	// Debit transactions (money going out)
	TxTypeWithdrawal        TransactionType = "cekme"
	TxTypeTransferOut       TransactionType = "havale_giden"
	TxTypePayment           TransactionType = "odeme"
	TxTypeFee               TransactionType = "komisyon"
	TxTypeCreditCardPayment TransactionType = "kredi_karti_odeme"
	TxTypeLoanPayment       TransactionType = "kredi_odeme"

	// Interbank and exchange (direction carried by the amount sign)
	TxTypeEFT             TransactionType = "eft"
	TxTypeSWIFT           TransactionType = "swift"
	TxTypeGoldPurchase    TransactionType = "altin_alim"
	TxTypeGoldSale        TransactionType = "altin_satim"
	TxTypeForeignExchange TransactionType = "doviz_cevirim"
)

var transactionTypeAliases = map[string]TransactionType{
	"deposit":             TxTypeDeposit,
	"transfer_in":         TxTypeTransferIn,
	"interest":            TxTypeInterest,
	"refund":              TxTypeRefund,
	"withdrawal":          TxTypeWithdrawal,
	"transfer_out":        TxTypeTransferOut,
	"payment":             TxTypePayment,
	"fee":                 TxTypeFee,
	"credit_card_payment": TxTypeCreditCardPayment,
	"loan_payment":        TxTypeLoanPayment,
	"gold_purchase":       TxTypeGoldPurchase,
	"gold_sale":           TxTypeGoldSale,
	"foreign_exchange":    TxTypeForeignExchange,
}

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	return t.Direction() != DirectionUnknown
}

// Direction describes the expected sign of a transaction amount
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionCredit
	DirectionDebit
	DirectionEither
)

// Direction returns whether transactions of this type credit or debit the account
func (t TransactionType) Direction() Direction {
	switch t {
	case TxTypeDeposit, TxTypeTransferIn, TxTypeInterest, TxTypeRefund:
		return DirectionCredit
	case TxTypeWithdrawal, TxTypeTransferOut, TxTypePayment, TxTypeFee,
		TxTypeCreditCardPayment, TxTypeLoanPayment:
		return DirectionDebit
	case TxTypeEFT, TxTypeSWIFT, TxTypeGoldPurchase, TxTypeGoldSale, TxTypeForeignExchange:
		return DirectionEither
	default:
		return DirectionUnknown
	}
}

// IsTransfer returns true for the types that form a linked transfer pair
func (t TransactionType) IsTransfer() bool {
	switch t {
	case TxTypeTransferIn, TxTypeTransferOut:
		return true
	default:
		return false
	}
}

// UnmarshalText accepts the wire code or the English alias.
func (t *TransactionType) UnmarshalText(text []byte) error {
	parsed, err := parseCode("transaction type", string(text), transactionTypeAliases)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TransactionStatus represents the state of a transaction
type TransactionStatus string

const (
	TxStatusPending   TransactionStatus = "pending"
	TxStatusCompleted TransactionStatus = "completed"
	TxStatusFailed    TransactionStatus = "failed"
	TxStatusCancelled TransactionStatus = "cancelled"
	TxStatusReversed  TransactionStatus = "reversed"
)

// Valid reports whether s is a known transaction status
func (s TransactionStatus) Valid() bool {
	switch s {
	case TxStatusPending, TxStatusCompleted, TxStatusFailed, TxStatusCancelled, TxStatusReversed:
		return true
	default:
		return false
	}
}

// UnmarshalText validates the status code.
func (s *TransactionStatus) UnmarshalText(text []byte) error {
	parsed, err := parseCode[TransactionStatus]("transaction status", string(text), nil)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Transaction represents a financial transaction on an account. Records are
// never modified after they are appended.
type Transaction struct {
	TransactionID   string          `json:"transaction_id" yaml:"transaction_id"`
	AccountID       string          `json:"account_id" yaml:"account_id"`
	TransactionType TransactionType `json:"transaction_type" yaml:"transaction_type"`

	// Signed: positive credits the account, negative debits it
	Amount      utils.Money       `json:"amount" yaml:"amount"`
	Description string            `json:"description" yaml:"description"`
	Status      TransactionStatus `json:"status" yaml:"status"`

	TransactionDate Timestamp  `json:"transaction_date" yaml:"transaction_date"`
	PostedDate      *Timestamp `json:"posted_date" yaml:"posted_date"`

	ReferenceNumber *string `json:"reference_number" yaml:"reference_number"`

	// For transfers: the other leg of the pair
	RelatedTransactionID *string `json:"related_transaction_id" yaml:"related_transaction_id"`

	FeeAmount    utils.Money `json:"fee_amount" yaml:"fee_amount"`
	BalanceAfter utils.Money `json:"balance_after" yaml:"balance_after"` // Account balance right after posting
}

// IsCredit returns true if this transaction adds money to the account
func (t *Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// IsDebit returns true if this transaction removes money from the account
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}
