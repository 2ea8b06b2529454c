// Package common holds the dialect-independent plumbing shared by the
// concrete database adapters: pool checkout with the configured
// timeout/retry policy, transaction scoping, and result-set scanning.
package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/strataorm/strata/pkg/adapter"
	"github.com/strataorm/strata/pkg/dialect"
)

// AcquireConn checks a connection out of the pool, blocking up to the
// configured checkout timeout. Timed-out checkouts are retried up to
// cfg.RetryAttempts times with cfg.RetryDelay between attempts, then
// surfaced as a CheckoutTimeoutError. Cancellation of ctx is honored while
// waiting for a slot; it is not meaningful once a connection is handed out.
func AcquireConn(ctx context.Context, id dialect.ID, db *sql.DB, cfg adapter.Config) (*sql.Conn, error) {
	var lastErr error

	for attempt := 0; attempt <= cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(cfg.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		checkoutCtx, cancel := context.WithTimeout(ctx, cfg.CheckoutTimeout)
		conn, err := db.Conn(checkoutCtx)
		cancel()
		if err == nil {
			return conn, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		lastErr = err
	}

	return nil, adapter.NewCheckoutTimeoutError(id, cfg.RetryAttempts+1, lastErr)
}

// WithTransaction runs fn inside a transaction on a freshly checked-out
// connection. The transaction is committed when fn returns nil and rolled
// back when it returns an error; the connection is returned to the pool on
// every exit path, including panics escaping fn.
func WithTransaction(ctx context.Context, id dialect.ID, db *sql.DB, cfg adapter.Config, fn func(*sql.Tx) error) error {
	conn, err := AcquireConn(ctx, id, db, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return adapter.WrapError(id, "begin transaction", err)
	}

	done := false
	defer func() {
		if !done {
			tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		done = true
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	done = true
	if err := tx.Commit(); err != nil {
		return adapter.WrapError(id, "commit transaction", err)
	}
	return nil
}

// CollectNullStrings drains rows into the column header and a cell matrix
// where every cell is a string or NULL. The rows are closed before return.
func CollectNullStrings(rows *sql.Rows) ([]string, [][]sql.NullString, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var out [][]sql.NullString
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		ptrs := make([]any, len(columns))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return columns, out, nil
}

// CanonicalForeignKeyName derives the constraint name the mapping layer
// generates for a default-named foreign key, so existence checks can
// locate constraints the caller never named. Identifiers longer than 64
// characters are truncated to stay within vendor limits.
func CanonicalForeignKeyName(fromTable, toTable, column string) string {
	name := fmt.Sprintf("fk_%s_%s_%s", fromTable, toTable, column)
	if len(name) > 64 {
		name = name[:64]
	}
	return name
}
