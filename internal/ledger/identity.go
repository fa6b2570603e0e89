package ledger

import (
	"strings"
	"time"

	"github.com/willfong/mockbank/internal/models"
)

// Date layouts accepted for a date of birth, tried in order. Day-first
// layouts win over the US month-first one when both would parse.
var birthDateLayouts = []string{
	"2006-1-2",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"1/2/2006",
}

// NormalizeDate rewrites a date in any accepted layout as YYYY-MM-DD.
// Input that matches no layout is returned unchanged.
func NormalizeDate(s string) string {
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.DateLayout)
		}
	}
	return s
}

// VerifyCustomerIdentity compares a national ID and date of birth with the
// stored values. On mismatch the result is unverified and the error
// matches ErrIdentityMismatch; stored values are never echoed back.
func (e *Engine) VerifyCustomerIdentity(customerID, tcNo, dateOfBirth string) (*VerifyResult, error) {
	const op = "verify_customer_identity"
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.store.Customer(customerID)
	if !ok {
		return nil, opErr(op, ErrNotFound, "Müşteri %s bulunamadı", customerID)
	}

	if c.TCNo != strings.TrimSpace(tcNo) || NormalizeDate(c.DateOfBirth) != NormalizeDate(strings.TrimSpace(dateOfBirth)) {
		return &VerifyResult{Verified: false}, opErr(op, ErrIdentityMismatch, "Kimlik doğrulama başarısız")
	}
	return &VerifyResult{Verified: true, CustomerName: c.FullName()}, nil
}
