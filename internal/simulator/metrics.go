package simulator

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// OperationType represents the type of ledger operation
type OperationType string

const (
	OpBalanceCheck   OperationType = "balance_check"
	OpHistoryView    OperationType = "history_view"
	OpCustomerLookup OperationType = "customer_lookup"
	OpStatistics     OperationType = "statistics"
	OpDeposit        OperationType = "deposit"
	OpWithdrawal     OperationType = "withdrawal"
	OpTransfer       OperationType = "transfer"
	OpLoanPayment    OperationType = "loan_payment"
	OpCardPayment    OperationType = "card_payment"
	OpFreeze         OperationType = "freeze"
	OpUnfreeze       OperationType = "unfreeze"
)

// AllOperations lists every operation type in report order
var AllOperations = []OperationType{
	OpBalanceCheck, OpHistoryView, OpCustomerLookup, OpStatistics,
	OpDeposit, OpWithdrawal, OpTransfer, OpLoanPayment, OpCardPayment, OpFreeze, OpUnfreeze,
}

// IsWrite reports whether the operation changes ledger state
func (o OperationType) IsWrite() bool {
	switch o {
	case OpBalanceCheck, OpHistoryView, OpCustomerLookup, OpStatistics:
		return false
	default:
		return true
	}
}

// Metrics tracks operation counts, latency and rejections
type Metrics struct {
	totalOperations atomic.Int64
	rejected        atomic.Int64
	readOps         atomic.Int64
	writeOps        atomic.Int64

	// Per-operation tracking; the maps are fixed after construction
	opCounts   map[OperationType]*atomic.Int64
	opRejected map[OperationType]*atomic.Int64
	opLatency  map[OperationType]*LatencyTracker

	errors *ErrorStats

	startTime time.Time
}

// LatencyTracker keeps the most recent latency samples for percentiles
type LatencyTracker struct {
	mu      sync.Mutex
	samples []time.Duration
	next    int
	maxSize int
	totalNs int64
	count   int64
}

// NewMetrics creates a metrics tracker
func NewMetrics() *Metrics {
	m := &Metrics{
		opCounts:   make(map[OperationType]*atomic.Int64),
		opRejected: make(map[OperationType]*atomic.Int64),
		opLatency:  make(map[OperationType]*LatencyTracker),
		errors:     NewErrorStats(),
		startTime:  time.Now(),
	}
	for _, op := range AllOperations {
		m.opCounts[op] = &atomic.Int64{}
		m.opRejected[op] = &atomic.Int64{}
		m.opLatency[op] = NewLatencyTracker(10000) // Keep last 10k samples per operation
	}
	return m
}

// NewLatencyTracker creates a tracker holding at most maxSize samples
func NewLatencyTracker(maxSize int) *LatencyTracker {
	return &LatencyTracker{
		samples: make([]time.Duration, 0, maxSize),
		maxSize: maxSize,
	}
}

// Record adds a latency sample, overwriting the oldest when full
func (lt *LatencyTracker) Record(latency time.Duration) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.totalNs += latency.Nanoseconds()
	lt.count++

	if len(lt.samples) < lt.maxSize {
		lt.samples = append(lt.samples, latency)
		return
	}
	lt.samples[lt.next] = latency
	lt.next = (lt.next + 1) % lt.maxSize
}

// Percentile returns the p-th percentile latency
func (lt *LatencyTracker) Percentile(p float64) time.Duration {
	lt.mu.Lock()
	sorted := make([]time.Duration, len(lt.samples))
	copy(sorted, lt.samples)
	lt.mu.Unlock()

	return percentile(sorted, p)
}

// Average returns the average latency
func (lt *LatencyTracker) Average() time.Duration {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	if lt.count == 0 {
		return 0
	}
	return time.Duration(lt.totalNs / lt.count)
}

// Count returns the total number of samples recorded
func (lt *LatencyTracker) Count() int64 {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	return lt.count
}

func percentile(samples []time.Duration, p float64) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	idx := int(float64(len(samples)-1) * p / 100.0)
	return samples[idx]
}

// RecordOperation records a finished operation. err is the ledger
// rejection, if any.
func (m *Metrics) RecordOperation(op OperationType, latency time.Duration, err error) {
	m.totalOperations.Add(1)
	if op.IsWrite() {
		m.writeOps.Add(1)
	} else {
		m.readOps.Add(1)
	}

	if counter, ok := m.opCounts[op]; ok {
		counter.Add(1)
	}
	if tracker, ok := m.opLatency[op]; ok {
		tracker.Record(latency)
	}

	if err != nil {
		m.rejected.Add(1)
		if counter, ok := m.opRejected[op]; ok {
			counter.Add(1)
		}
		m.errors.Record(ClassifyError(err))
	}
}

// Completed returns the number of operations recorded so far
func (m *Metrics) Completed() int64 {
	return m.totalOperations.Load()
}

// Snapshot contains a point-in-time view of the metrics
type Snapshot struct {
	TotalOperations int64
	Rejected        int64
	ReadOps         int64
	WriteOps        int64

	TPS float64

	AvgLatency time.Duration
	P50Latency time.Duration
	P95Latency time.Duration
	P99Latency time.Duration

	OperationStats map[OperationType]OperationStat
	ErrorStats     map[ErrorType]int64
	TopErrors      []ErrorTypeStat

	Elapsed time.Duration
}

// OperationStat holds stats for a single operation type
type OperationStat struct {
	Count      int64
	Rejected   int64
	AvgLatency time.Duration
	P95Latency time.Duration
}

// Snapshot returns current metrics
func (m *Metrics) Snapshot() Snapshot {
	elapsed := time.Since(m.startTime)
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		seconds = 1e-9
	}

	ops := m.totalOperations.Load()

	var totalNs, totalCount int64
	var allSamples []time.Duration
	opStats := make(map[OperationType]OperationStat, len(AllOperations))
	for _, op := range AllOperations {
		tracker := m.opLatency[op]
		opStats[op] = OperationStat{
			Count:      m.opCounts[op].Load(),
			Rejected:   m.opRejected[op].Load(),
			AvgLatency: tracker.Average(),
			P95Latency: tracker.Percentile(95),
		}

		tracker.mu.Lock()
		allSamples = append(allSamples, tracker.samples...)
		totalNs += tracker.totalNs
		totalCount += tracker.count
		tracker.mu.Unlock()
	}

	var avg time.Duration
	if totalCount > 0 {
		avg = time.Duration(totalNs / totalCount)
	}

	return Snapshot{
		TotalOperations: ops,
		Rejected:        m.rejected.Load(),
		ReadOps:         m.readOps.Load(),
		WriteOps:        m.writeOps.Load(),
		TPS:             float64(ops) / seconds,
		AvgLatency:      avg,
		P50Latency:      percentile(allSamples, 50),
		P95Latency:      percentile(allSamples, 95),
		P99Latency:      percentile(allSamples, 99),
		OperationStats:  opStats,
		ErrorStats:      m.errors.All(),
		TopErrors:       m.errors.Top(5),
		Elapsed:         elapsed,
	}
}

// FormatMetricsLine returns a formatted one-line metrics summary
func (s Snapshot) FormatMetricsLine() string {
	return fmt.Sprintf("TPS: %.0f | Ops: %d (R:%d W:%d) | Rejected: %d | Latency: avg=%s p95=%s p99=%s",
		s.TPS,
		s.TotalOperations,
		s.ReadOps,
		s.WriteOps,
		s.Rejected,
		s.AvgLatency.Round(time.Microsecond),
		s.P95Latency.Round(time.Microsecond),
		s.P99Latency.Round(time.Microsecond),
	)
}
