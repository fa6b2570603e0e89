package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Kind names an entity collection. It is also the identifier prefix.
type Kind string

const (
	KindCustomer    Kind = "customer"
	KindAccount     Kind = "account"
	KindTransaction Kind = "transaction"
	KindLoan        Kind = "loan"
	KindCreditCard  Kind = "credit_card"
)

// Kinds lists every entity kind in snapshot order.
var Kinds = []Kind{KindCustomer, KindAccount, KindTransaction, KindLoan, KindCreditCard}

// base returns the counter offset for a kind. The first issued identifier
// is base+1.
func (k Kind) base() int64 {
	switch k {
	case KindCustomer:
		return 1000
	case KindAccount:
		return 2000
	case KindTransaction:
		return 3000
	case KindLoan:
		return 4000
	case KindCreditCard:
		return 5000
	default:
		panic(fmt.Sprintf("ledger: unknown entity kind %q", string(k)))
	}
}

// IDAllocator issues "<kind>_<n>" identifiers from independent per-kind
// counters. Identifiers are never reused.
type IDAllocator struct {
	mu       sync.Mutex
	counters map[Kind]int64
}

// NewIDAllocator creates an allocator with every counter at its base.
func NewIDAllocator() *IDAllocator {
	a := &IDAllocator{counters: make(map[Kind]int64, len(Kinds))}
	for _, k := range Kinds {
		a.counters[k] = k.base()
	}
	return a
}

// Next returns the next identifier for kind.
func (a *IDAllocator) Next(kind Kind) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := a.counters[kind]
	if n == 0 {
		n = kind.base()
	}
	n++
	a.counters[kind] = n
	return string(kind) + "_" + strconv.FormatInt(n, 10)
}

// Observe advances the matching counter past an identifier that already
// exists, so that Next never returns it. Identifiers that do not follow the
// "<kind>_<n>" pattern are ignored.
func (a *IDAllocator) Observe(id string) {
	kind, n, ok := parseID(id)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if n > a.counters[kind] {
		a.counters[kind] = n
	}
}

// Peek returns the current counter value for kind without advancing it.
func (a *IDAllocator) Peek(kind Kind) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counters[kind]
}

func parseID(id string) (Kind, int64, bool) {
	sep := strings.LastIndexByte(id, '_')
	if sep <= 0 {
		return "", 0, false
	}
	kind := Kind(id[:sep])
	switch kind {
	case KindCustomer, KindAccount, KindTransaction, KindLoan, KindCreditCard:
	default:
		return "", 0, false
	}
	n, err := strconv.ParseInt(id[sep+1:], 10, 64)
	if err != nil || n < 0 {
		return "", 0, false
	}
	return kind, n, true
}
