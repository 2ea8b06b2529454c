package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/strataorm/strata/pkg/adapter"
)

// lockClauses maps the shared lock modes onto PostgreSQL lock strengths.
// PostgreSQL has no read-local or low-priority flavors; they map to the
// closest stronger mode.
var lockClauses = map[adapter.LockMode]string{
	adapter.LockRead:             "ACCESS SHARE",
	adapter.LockReadLocal:        "SHARE",
	adapter.LockWrite:            "ACCESS EXCLUSIVE",
	adapter.LockLowPriorityWrite: "ACCESS EXCLUSIVE",
	adapter.LockDefault:          "ACCESS EXCLUSIVE",
}

// WithTableLock runs fn while holding a true table lock in the requested
// mode. PostgreSQL table locks are transaction-scoped, so the lock is
// taken as the transaction's first statement and released with the
// commit or rollback.
func (c *Connection) WithTableLock(ctx context.Context, table string, mode adapter.LockMode, fn func(*sql.Tx) error) error {
	clause, ok := lockClauses[mode]
	if !ok {
		return fmt.Errorf("%w: %d", adapter.ErrInvalidLockMode, mode)
	}

	return c.Transaction(ctx, func(tx *sql.Tx) error {
		lock := fmt.Sprintf("LOCK TABLE %s IN %s MODE", QuoteIdentifier(table), clause)
		if _, err := tx.ExecContext(ctx, lock); err != nil {
			return fmt.Errorf("failed to lock table %s: %w", table, err)
		}
		return fn(tx)
	})
}
