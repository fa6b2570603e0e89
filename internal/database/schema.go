package database

import (
	"context"
	"fmt"
)

// Each collection is stored as one table of JSON documents. The indexed
// columns mirror fields inside the body so the data stays queryable
// without decoding every row.
var tables = []string{"customers", "accounts", "transactions", "loans", "credit_cards"}

func bodyType(driver string) string {
	if driver == DriverMySQL {
		return "JSON"
	}
	return "TEXT"
}

func createTableSQL(driver, table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id VARCHAR(64) NOT NULL PRIMARY KEY,
	seq INTEGER NOT NULL,
	owner_id VARCHAR(64) NULL,
	status VARCHAR(32) NOT NULL,
	body %s NOT NULL
)`, table, bodyType(driver))
}

func createIndexSQL(driver, table string) string {
	if driver == DriverMySQL {
		// MySQL has no IF NOT EXISTS for indexes; CreateSchema ignores the duplicate
		return fmt.Sprintf(`CREATE INDEX idx_%s_owner ON %s (owner_id)`, table, table)
	}
	return fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_owner ON %s (owner_id)`, table, table)
}

// CreateSchema creates the snapshot tables if they do not exist
func (q *Queries) CreateSchema(ctx context.Context) error {
	driver := q.pool.Driver()
	for _, table := range tables {
		if _, err := q.pool.ExecContext(ctx, createTableSQL(driver, table)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
		if _, err := q.pool.ExecContext(ctx, createIndexSQL(driver, table)); err != nil && !isDuplicateIndex(err) {
			return fmt.Errorf("failed to create index on %s: %w", table, err)
		}
	}
	return nil
}

// Schema returns the DDL CreateSchema runs for driver, split into table and
// index statements.
func Schema(driver string) (tableStmts, indexStmts []string) {
	for _, table := range tables {
		tableStmts = append(tableStmts, createTableSQL(driver, table))
		indexStmts = append(indexStmts, createIndexSQL(driver, table))
	}
	return tableStmts, indexStmts
}
