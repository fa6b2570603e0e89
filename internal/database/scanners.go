package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// row holds the indexed columns of one stored document
type row struct {
	id     string
	owner  string
	status string
}

// ownerValue stores an empty owner as NULL
func (r row) ownerValue() sql.NullString {
	return sql.NullString{String: r.owner, Valid: r.owner != ""}
}

// replaceRows deletes everything in table and inserts items in order
func replaceRows[T any](ctx context.Context, tx *sql.Tx, table string, items []T, key func(*T) row) error {
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, seq, owner_id, status, body) VALUES (?, ?, ?, ?, ?)`, table))
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", table, err)
	}
	defer stmt.Close()

	for i := range items {
		k := key(&items[i])
		body, err := json.Marshal(&items[i])
		if err != nil {
			return fmt.Errorf("failed to encode %s %s: %w", table, k.id, err)
		}
		if _, err := stmt.ExecContext(ctx, k.id, i, k.ownerValue(), k.status, string(body)); err != nil {
			return fmt.Errorf("failed to insert %s %s: %w", table, k.id, err)
		}
	}
	return nil
}

// loadRows decodes every body in table in seq order
func loadRows[T any](ctx context.Context, p *Pool, table string) ([]T, error) {
	rows, err := p.QueryContext(ctx, fmt.Sprintf(`SELECT id, body FROM %s ORDER BY seq`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		var item T
		if err := json.Unmarshal(body, &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s %s: %w", table, id, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	return items, nil
}
