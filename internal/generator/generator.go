// Package generator builds synthetic ledger snapshots: customers with
// accounts, an opening deposit per funded account, loans and credit cards,
// all drawn from a seeded RNG so the same config gives the same snapshot.
package generator

import (
	"fmt"
	"time"

	"github.com/willfong/mockbank/internal/ledger"
	"github.com/willfong/mockbank/internal/models"
	"github.com/willfong/mockbank/internal/utils"
)

// Config holds settings for snapshot generation
type Config struct {
	Customers int
	Seed      int64

	// Dates are generated relative to BaseDate (default: now)
	BaseDate time.Time

	// Share of customers holding each product (0.0-1.0)
	SavingsRate float64
	LoanRate    float64
	CardRate    float64

	// Share of accounts generated frozen
	FrozenRate float64
}

// DefaultConfig returns a generation config with the usual product mix
func DefaultConfig() Config {
	return Config{
		Customers:   100,
		SavingsRate: 0.6,
		LoanRate:    0.25,
		CardRate:    0.4,
		FrozenRate:  0.03,
	}
}

// Result is a generated snapshot plus the seed that reproduces it
type Result struct {
	Snapshot *models.Snapshot
	Seed     uint64
}

// Generator creates entities with sequential identifiers
type Generator struct {
	rng    *utils.Random
	ids    *ledger.IDAllocator
	config Config
	base   time.Time
	snap   *models.Snapshot
}

// New creates a generator. An error is returned for an unusable config.
func New(cfg Config) (*Generator, error) {
	if cfg.Customers <= 0 {
		return nil, fmt.Errorf("customers must be positive")
	}
	for name, rate := range map[string]float64{
		"savings rate": cfg.SavingsRate,
		"loan rate":    cfg.LoanRate,
		"card rate":    cfg.CardRate,
		"frozen rate":  cfg.FrozenRate,
	} {
		if rate < 0 || rate > 1 {
			return nil, fmt.Errorf("%s must be between 0 and 1 (got %g)", name, rate)
		}
	}

	base := cfg.BaseDate
	if base.IsZero() {
		base = time.Now()
	}
	return &Generator{
		rng:    utils.NewRandom(cfg.Seed),
		ids:    ledger.NewIDAllocator(),
		config: cfg,
		base:   base.UTC().Truncate(time.Second),
	}, nil
}

// Generate builds the snapshot. Each customer's products are generated
// right after the customer, so identifiers interleave by customer.
func (g *Generator) Generate() Result {
	g.snap = &models.Snapshot{
		Customers:    make([]models.Customer, 0, g.config.Customers),
		Accounts:     []models.Account{},
		Transactions: []models.Transaction{},
		Loans:        []models.Loan{},
		CreditCards:  []models.CreditCard{},
	}

	for i := 0; i < g.config.Customers; i++ {
		c := g.generateCustomer()
		g.generateAccounts(&c)
		if g.rng.Probability(g.config.LoanRate) {
			g.generateLoan(&c)
		}
		if g.rng.Probability(g.config.CardRate) {
			g.generateCard(&c)
		}
		g.snap.Customers = append(g.snap.Customers, c)
	}

	return Result{Snapshot: g.snap, Seed: g.rng.Seed()}
}

// Generate is a convenience wrapper around New and Generate
func Generate(cfg Config) (Result, error) {
	g, err := New(cfg)
	if err != nil {
		return Result{}, err
	}
	return g.Generate(), nil
}

// daysAgo returns a time between min and max days before the base date
func (g *Generator) daysAgo(min, max int) time.Time {
	days := g.rng.IntRange(min, max)
	secs := g.rng.IntN(24 * 60 * 60)
	return g.base.AddDate(0, 0, -days).Add(-time.Duration(secs) * time.Second)
}

// amount returns a random amount in whole currency units, rounded to step
func (g *Generator) amount(min, max, step int64) utils.Money {
	m := utils.RandomAmount(g.rng, utils.Dollars(min), utils.Dollars(max))
	return m.RoundToNearest(utils.Dollars(step))
}
