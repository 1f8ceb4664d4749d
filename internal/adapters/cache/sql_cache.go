package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"fuel-route-service/internal/platform/obs"
	"strings"
	"time"
)

const (
	GeocodeTable = "geocode_cache"
	RouteTable   = "route_cache"
)

// SQLCache is a Postgres-backed cache of JSON payloads.
// Rows older than the TTL are treated as misses and removed by Purge.
type SQLCache[V any] struct {
	DB    *sql.DB
	table string
	ttl   time.Duration
	now   func() time.Time
}

// NewSQLCache returns a cache over one of the tables created by InitSchema.
func NewSQLCache[V any](db *sql.DB, table string, ttl time.Duration) (*SQLCache[V], error) {
	if table != GeocodeTable && table != RouteTable {
		return nil, fmt.Errorf("sql cache: unknown table %q", table)
	}
	return &SQLCache[V]{DB: db, table: table, ttl: ttl, now: time.Now}, nil
}

// Fetch the cached payload for key if it is younger than the TTL.
func (s *SQLCache[V]) Get(ctx context.Context, key string) (_ V, _ bool, err error) {
	defer obs.Time(ctx, s.table+".Get")(&err)

	var zero V
	if s.DB == nil {
		return zero, false, fmt.Errorf("%s: db is nil", s.table)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return zero, false, fmt.Errorf("get %s: key must not be empty", s.table)
	}

	// Table name comes from the constants above; the values stay parameterized.
	q := fmt.Sprintf(`
	SELECT payload
    FROM %s
    WHERE cache_key = $1
        AND updated_at > $2;
	`, s.table)

	var payload []byte
	err = s.DB.QueryRowContext(ctx, q, key, s.now().Add(-s.ttl)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		recordLookup(s.table, false)
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("get %s: query: %w", s.table, err)
	}

	var v V
	if err := json.Unmarshal(payload, &v); err != nil {
		return zero, false, fmt.Errorf("get %s: decode payload: %w", s.table, err)
	}

	recordLookup(s.table, true)
	return v, true, nil
}

// Store the payload for key, replacing any previous row.
func (s *SQLCache[V]) Put(ctx context.Context, key string, value V) error {
	if s.DB == nil {
		return fmt.Errorf("%s: db is nil", s.table)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("insert %s: empty key", s.table)
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("insert %s: encode payload: %w", s.table, err)
	}

	q := fmt.Sprintf(`
	INSERT INTO %s (cache_key, payload, updated_at)
    VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		updated_at = EXCLUDED.updated_at;
	`, s.table)

	if _, err := s.DB.ExecContext(ctx, q, key, payload, s.now()); err != nil {
		return fmt.Errorf("insert %s key=%q: %w", s.table, key, err)
	}

	return nil
}

// Purge deletes expired rows and reports how many were removed.
func (s *SQLCache[V]) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("%s: db is nil", s.table)
	}

	q := fmt.Sprintf(`DELETE FROM %s WHERE updated_at <= $1;`, s.table)

	res, err := s.DB.ExecContext(ctx, q, s.now().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("purge %s: %w", s.table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge %s: rows affected: %w", s.table, err)
	}
	return n, nil
}
