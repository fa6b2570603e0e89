package simulator

import (
	"time"

	"github.com/willfong/mockbank/internal/config"
	"github.com/willfong/mockbank/internal/ledger"
	"github.com/willfong/mockbank/internal/utils"
)

var (
	readOps  = []OperationType{OpBalanceCheck, OpHistoryView, OpCustomerLookup, OpStatistics}
	writeOps = []OperationType{OpDeposit, OpWithdrawal, OpTransfer, OpLoanPayment, OpCardPayment, OpFreeze}

	freezeReasons = []string{"Şüpheli işlem", "Müşteri talebi", "Kayıp kart", "Inceleme"}
)

// operationPicker turns the configured mix into integer weights
type operationPicker struct {
	readProbability float64
	readWeights     []int
	writeWeights    []int
}

func newOperationPicker(cfg config.SimulateConfig) *operationPicker {
	m := cfg.Mix
	scale := func(w float64) int { return int(w * 1000) }
	return &operationPicker{
		readProbability: cfg.ReadWriteRatio / (cfg.ReadWriteRatio + 1),
		// balance checks dominate real read traffic
		readWeights: []int{50, 25, 20, 5},
		writeWeights: []int{
			scale(m.Deposit), scale(m.Withdrawal), scale(m.Transfer),
			scale(m.LoanPayment), scale(m.CardPayment), scale(m.Freeze),
		},
	}
}

func (p *operationPicker) pick(rng *utils.Random) OperationType {
	if rng.Probability(p.readProbability) {
		return readOps[rng.WeightedPick(p.readWeights)]
	}
	return writeOps[rng.WeightedPick(p.writeWeights)]
}

// worker runs operations with its own RNG stream
type worker struct {
	id      int
	engine  *ledger.Engine
	rng     *utils.Random
	targets targets
	picker  *operationPicker
	max     utils.Money
}

func (w *worker) step() (OperationType, time.Duration, error) {
	op := w.picker.pick(w.rng)
	start := time.Now()
	op, err := w.execute(op)
	return op, time.Since(start), err
}

// execute runs op and returns the operation actually performed, which
// differs from op only when a freeze turns into an unfreeze.
func (w *worker) execute(op OperationType) (OperationType, error) {
	e := w.engine
	var err error

	switch op {
	case OpBalanceCheck:
		_, err = e.AccountInfo(w.account())
	case OpHistoryView:
		_, err = e.AccountTransactions(w.account(), w.rng.IntRange(1, 20))
	case OpCustomerLookup:
		if id, ok := pickID(w.rng, w.targets.customers); ok {
			_, err = e.CustomerAccounts(id)
		}
	case OpStatistics:
		e.Statistics()
	case OpDeposit:
		_, err = e.Deposit(w.account(), w.amount(), "")
	case OpWithdrawal:
		_, err = e.Withdraw(w.account(), w.amount(), "")
	case OpTransfer:
		// occasionally the same account, which the ledger rejects
		_, err = e.Transfer(w.account(), w.account(), w.amount(), "")
	case OpLoanPayment:
		if id, ok := pickID(w.rng, w.targets.loans); ok {
			_, err = e.PayLoan(id, w.amount(), w.account())
		}
	case OpCardPayment:
		if id, ok := pickID(w.rng, w.targets.cards); ok {
			_, err = e.PayCreditCard(id, w.amount(), w.account())
		}
	case OpFreeze:
		id := w.account()
		if w.rng.Bool() {
			_, err = e.FreezeAccount(id, utils.Pick(w.rng, freezeReasons))
		} else {
			op = OpUnfreeze
			_, err = e.UnfreezeAccount(id)
		}
	}
	return op, err
}

// thinkTime jitters d by up to half in either direction
func (w *worker) thinkTime(d time.Duration) time.Duration {
	return w.rng.Duration(d/2, d+d/2)
}

func (w *worker) account() string {
	id, _ := pickID(w.rng, w.targets.accounts)
	return id
}

// amount is usually within range, sometimes zero or negative to
// exercise amount validation.
func (w *worker) amount() utils.Money {
	if w.rng.Probability(0.02) {
		return utils.Money(-w.rng.Int64Range(0, 100))
	}
	return utils.RandomAmount(w.rng, utils.Cents(1), w.max)
}

func pickID(rng *utils.Random, ids []string) (string, bool) {
	if len(ids) == 0 {
		return "", false
	}
	return utils.Pick(rng, ids), true
}
