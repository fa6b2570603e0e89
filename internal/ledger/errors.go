package ledger

import (
	"errors"
	"fmt"
)

// Error classes. Every failure returned by the engine matches exactly one
// of these with errors.Is.
var (
	ErrNotFound          = errors.New("ledger: not found")
	ErrInvalidState      = errors.New("ledger: invalid state")
	ErrInvalidAmount     = errors.New("ledger: invalid amount")
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
	ErrIdentityMismatch  = errors.New("ledger: identity mismatch")
)

// Specific failures, each wrapping its class.
var (
	ErrAlreadyFrozen   = fmt.Errorf("account already frozen: %w", ErrInvalidState)
	ErrNotFrozen       = fmt.Errorf("account not frozen: %w", ErrInvalidState)
	ErrInactiveAccount = fmt.Errorf("account not active: %w", ErrInvalidState)
	ErrLoanNotActive   = fmt.Errorf("loan not active: %w", ErrInvalidState)
	ErrCardNotActive   = fmt.Errorf("credit card not active: %w", ErrInvalidState)
	ErrOverpayment     = fmt.Errorf("payment exceeds balance: %w", ErrInvalidAmount)
	ErrSameAccount     = fmt.Errorf("source and destination are the same account: %w", ErrInvalidAmount)
)

// OpError is returned by every engine operation. Error() yields the message
// shown to the caller; the wrapped error carries the classification.
type OpError struct {
	Op  string
	Err error
	Msg string
}

func (e *OpError) Error() string {
	return e.Msg
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opErr(op string, err error, format string, args ...any) *OpError {
	return &OpError{Op: op, Err: err, Msg: fmt.Sprintf(format, args...)}
}

// ErrorClass returns the class sentinel err belongs to, or nil if err did
// not come from the engine.
func ErrorClass(err error) error {
	for _, class := range []error{ErrNotFound, ErrInvalidState, ErrInvalidAmount, ErrInsufficientFunds, ErrIdentityMismatch} {
		if errors.Is(err, class) {
			return class
		}
	}
	return nil
}
