package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-match/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// MissingColumns returns the columns of want that table does not have, in want order.
func MissingColumns(ctx context.Context, db database.DB, table string, want ...string) ([]string, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	if strings.TrimSpace(table) == "" {
		return nil, errors.New("empty table")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	have := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		have[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []string
	for _, col := range want {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	return missing, nil
}

// EnsureTableColumns fails with ErrSchemaMismatch naming every absent column.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	missing, err := MissingColumns(ctx, db, table, columns...)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	qualified := make([]string, len(missing))
	for i, col := range missing {
		qualified[i] = table + "." + col
	}
	return fmt.Errorf("%w: missing column %s", ErrSchemaMismatch, strings.Join(qualified, ", "))
}
