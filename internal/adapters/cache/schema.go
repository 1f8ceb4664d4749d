package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the persistent cache tables.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := make([]string, 0, 4)
	for _, table := range []string{GeocodeTable, RouteTable} {
		statements = append(statements,
			fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
        cache_key TEXT PRIMARY KEY,
        payload JSONB NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    );
	`, table),
			fmt.Sprintf(`
	CREATE INDEX IF NOT EXISTS idx_%s_updated_at
    ON %s(updated_at);
	`, table, table),
		)
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
