package simulator

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/willfong/mockbank/internal/ledger"
)

// ErrAuditFailed is returned when the ledger breaks an invariant during a run
var ErrAuditFailed = errors.New("ledger audit failed")

// ErrorType categorizes errors for metrics and reporting
type ErrorType string

const (
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeInvalidState  ErrorType = "invalid_state"
	ErrorTypeInvalidAmount ErrorType = "invalid_amount"
	ErrorTypeFunds         ErrorType = "funds"
	ErrorTypeIdentity      ErrorType = "identity"
	ErrorTypeAmbiguous     ErrorType = "ambiguous"
	ErrorTypeCancelled     ErrorType = "cancelled"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// IsBusinessErrorType returns true for error types that are ordinary
// ledger rejections (a frozen account, an overdraft, a paid-off loan)
// rather than real problems.
func IsBusinessErrorType(errType ErrorType) bool {
	switch errType {
	case ErrorTypeNotFound, ErrorTypeInvalidState, ErrorTypeInvalidAmount,
		ErrorTypeFunds, ErrorTypeIdentity, ErrorTypeAmbiguous:
		return true
	default:
		return false
	}
}

// IsInfrastructureError returns true for errors that are not ledger
// rejections. These halt the simulation immediately.
func IsInfrastructureError(err error) bool {
	if err == nil {
		return false
	}
	t := ClassifyError(err)
	return !IsBusinessErrorType(t) && t != ErrorTypeCancelled
}

// ClassifyError determines the error type from an error
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	var ambiguous *ledger.AmbiguousMatchError
	switch {
	case errors.As(err, &ambiguous):
		return ErrorTypeAmbiguous
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeCancelled
	}

	switch ledger.ErrorClass(err) {
	case ledger.ErrNotFound:
		return ErrorTypeNotFound
	case ledger.ErrInvalidState:
		return ErrorTypeInvalidState
	case ledger.ErrInvalidAmount:
		return ErrorTypeInvalidAmount
	case ledger.ErrInsufficientFunds:
		return ErrorTypeFunds
	case ledger.ErrIdentityMismatch:
		return ErrorTypeIdentity
	default:
		return ErrorTypeUnknown
	}
}

// ErrorStats tracks error occurrences by type
type ErrorStats struct {
	mu     sync.RWMutex
	counts map[ErrorType]*atomic.Int64
}

// NewErrorStats creates an empty tracker
func NewErrorStats() *ErrorStats {
	return &ErrorStats{counts: make(map[ErrorType]*atomic.Int64)}
}

// Record increments the counter for an error type
func (s *ErrorStats) Record(errType ErrorType) {
	s.mu.RLock()
	counter, ok := s.counts[errType]
	s.mu.RUnlock()
	if !ok {
		s.mu.Lock()
		if counter, ok = s.counts[errType]; !ok {
			counter = &atomic.Int64{}
			s.counts[errType] = counter
		}
		s.mu.Unlock()
	}
	counter.Add(1)
}

// Count returns the count for a specific error type
func (s *ErrorStats) Count(errType ErrorType) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if counter, ok := s.counts[errType]; ok {
		return counter.Load()
	}
	return 0
}

// All returns counts for all error types seen so far
func (s *ErrorStats) All() map[ErrorType]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[ErrorType]int64, len(s.counts))
	for errType, counter := range s.counts {
		result[errType] = counter.Load()
	}
	return result
}

// ErrorTypeStat holds the count for an error type
type ErrorTypeStat struct {
	Type  ErrorType
	Count int64
}

// Top returns up to n error types ordered by count, then name
func (s *ErrorStats) Top(n int) []ErrorTypeStat {
	counts := s.All()
	top := make([]ErrorTypeStat, 0, len(counts))
	for t, c := range counts {
		top = append(top, ErrorTypeStat{Type: t, Count: c})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Type < top[j].Type
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}
