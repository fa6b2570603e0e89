// Package database stores ledger snapshots in a SQL database (MySQL or
// SQLite) so state can be exported, inspected with SQL and imported again.
//
// FILE: queries.go
// PURPOSE: Queries struct plus snapshot save/load. Each collection becomes
// one table of JSON documents ordered by seq.
//
// RELATED FILES:
// - pool.go: connection pool and driver selection
// - schema.go: table DDL
// - scanners.go: row encoding and decoding
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/willfong/mockbank/internal/models"
)

// Queries provides snapshot operations over a pool
type Queries struct {
	pool *Pool
}

// NewQueries creates a new Queries instance
func NewQueries(pool *Pool) *Queries {
	return &Queries{pool: pool}
}

// SaveSnapshot replaces the contents of every table with snap inside one
// transaction. Either all five collections are written or none are.
func (q *Queries) SaveSnapshot(ctx context.Context, snap *models.Snapshot) error {
	tx, err := q.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	steps := []func() error{
		func() error {
			return replaceRows(ctx, tx, "customers", snap.Customers, func(c *models.Customer) row {
				return row{id: c.CustomerID, status: string(c.Status)}
			})
		},
		func() error {
			return replaceRows(ctx, tx, "accounts", snap.Accounts, func(a *models.Account) row {
				return row{id: a.AccountID, owner: a.CustomerID, status: string(a.Status)}
			})
		},
		func() error {
			return replaceRows(ctx, tx, "transactions", snap.Transactions, func(t *models.Transaction) row {
				return row{id: t.TransactionID, owner: t.AccountID, status: string(t.Status)}
			})
		},
		func() error {
			return replaceRows(ctx, tx, "loans", snap.Loans, func(l *models.Loan) row {
				return row{id: l.LoanID, owner: l.CustomerID, status: string(l.Status)}
			})
		},
		func() error {
			return replaceRows(ctx, tx, "credit_cards", snap.CreditCards, func(c *models.CreditCard) row {
				return row{id: c.CardID, owner: c.CustomerID, status: string(c.Status)}
			})
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads every table back in seq order
func (q *Queries) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	var err error

	if snap.Customers, err = loadRows[models.Customer](ctx, q.pool, "customers"); err != nil {
		return nil, err
	}
	if snap.Accounts, err = loadRows[models.Account](ctx, q.pool, "accounts"); err != nil {
		return nil, err
	}
	if snap.Transactions, err = loadRows[models.Transaction](ctx, q.pool, "transactions"); err != nil {
		return nil, err
	}
	if snap.Loans, err = loadRows[models.Loan](ctx, q.pool, "loans"); err != nil {
		return nil, err
	}
	if snap.CreditCards, err = loadRows[models.CreditCard](ctx, q.pool, "credit_cards"); err != nil {
		return nil, err
	}
	return snap, nil
}

// StatusCounts returns the number of rows per status in one table
func (q *Queries) StatusCounts(ctx context.Context, table string) (map[string]int, error) {
	if !knownTable(table) {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	rows, err := q.pool.QueryContext(ctx, fmt.Sprintf(`SELECT status, COUNT(*) FROM %s GROUP BY status`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", table, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// OwnedIDs lists ids in table whose owner column equals owner, in seq order
func (q *Queries) OwnedIDs(ctx context.Context, table, owner string) ([]string, error) {
	if !knownTable(table) {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	rows, err := q.pool.QueryContext(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE owner_id = ? ORDER BY seq`, table), owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func knownTable(name string) bool {
	for _, t := range tables {
		if t == name {
			return true
		}
	}
	return false
}

// isDuplicateIndex reports MySQL error 1061 (duplicate key name)
func isDuplicateIndex(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1061
}
