package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/strataorm/strata/pkg/adapter"
)

// WithTableLock runs fn under the requested lock mode.
//
// MySQL's LOCK TABLES is only valid on a raw, non-prepared session and is
// tied to that single session, which the pooled statement-execution mode
// used here cannot guarantee. Pretending the lock was taken would be
// worse than not taking it, so this degrades to running fn inside a plain
// transaction and emits one warning per call: callers get transaction
// isolation, not table-level exclusion.
func (c *Connection) WithTableLock(ctx context.Context, table string, mode adapter.LockMode, fn func(*sql.Tx) error) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", adapter.ErrInvalidLockMode, mode)
	}

	c.logger.Warn("table lock degraded to transaction isolation",
		zap.String("dialect", "mysql"),
		zap.String("table", table),
		zap.String("mode", mode.String()),
		zap.String("consequence", "no table lock is held; concurrent sessions are only isolated transactionally"),
	)

	return c.Transaction(ctx, fn)
}
