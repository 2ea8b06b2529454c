package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/strataorm/strata/internal/database/common"
	"github.com/strataorm/strata/pkg/adapter"
	"github.com/strataorm/strata/pkg/dialect"
)

// Connection is an active, pooled connection to a MySQL database.
type Connection struct {
	id      string
	db      *sql.DB
	cfg     adapter.Config
	adapter *Adapter
	logger  *zap.Logger
	closed  int32

	// Schema-metadata cache, primed once by Prepare.
	cacheMu     sync.RWMutex
	tablesCache map[string]struct{}
}

// ID returns the connection identifier.
func (c *Connection) ID() string {
	return c.id
}

// Type returns the dialect identifier.
func (c *Connection) Type() dialect.ID {
	return dialect.MySQL
}

// IsConnected reports whether the connection has not been closed.
func (c *Connection) IsConnected() bool {
	return atomic.LoadInt32(&c.closed) == 0
}

// Ping verifies the connection is alive.
func (c *Connection) Ping(ctx context.Context) error {
	if !c.IsConnected() {
		return adapter.ErrConnectionClosed
	}
	return c.db.PingContext(ctx)
}

// Close tears down the pool. The connection cannot be reused afterwards.
func (c *Connection) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	return c.db.Close()
}

// Prepare primes the schema-metadata cache with the database's table
// names. The resolver runs it exactly once per resolved connection.
func (c *Connection) Prepare(ctx context.Context) error {
	tables, err := c.SchemaOperations().ListTables(ctx)
	if err != nil {
		return err
	}

	cache := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		cache[t] = struct{}{}
	}

	c.cacheMu.Lock()
	c.tablesCache = cache
	c.cacheMu.Unlock()
	return nil
}

// CachedTables returns the table names captured by Prepare. It reflects
// the schema at preparation time, not live state.
func (c *Connection) CachedTables() []string {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()

	tables := make([]string, 0, len(c.tablesCache))
	for t := range c.tablesCache {
		tables = append(tables, t)
	}
	return tables
}

// TypeOperations returns the MySQL type translator.
func (c *Connection) TypeOperations() adapter.TypeTranslator {
	return &TypeTranslator{}
}

// SchemaOperations returns the MySQL schema introspector.
func (c *Connection) SchemaOperations() adapter.SchemaIntrospector {
	return &SchemaIntrospector{conn: c}
}

// Exec executes a statement and reports the number of affected rows.
func (c *Connection) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if !c.IsConnected() {
		return 0, adapter.ErrConnectionClosed
	}

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// Scalar executes a query expected to produce a single value.
func (c *Connection) Scalar(ctx context.Context, query string, args ...any) (any, error) {
	if !c.IsConnected() {
		return nil, adapter.ErrConnectionClosed
	}

	var value any
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// Query executes a query and returns the rows for streamed iteration.
// The caller owns the rows and must close them.
func (c *Connection) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if !c.IsConnected() {
		return nil, adapter.ErrConnectionClosed
	}
	return c.db.QueryContext(ctx, query, args...)
}

// Transaction runs fn inside a transaction; commit on nil, rollback on
// error, connection returned to the pool on every exit path.
func (c *Connection) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	if !c.IsConnected() {
		return adapter.ErrConnectionClosed
	}
	return common.WithTransaction(ctx, dialect.MySQL, c.db, c.cfg, fn)
}

// ServerVersion reports the server's version string.
func (c *Connection) ServerVersion(ctx context.Context) (string, error) {
	var version string
	if err := c.db.QueryRowContext(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", fmt.Errorf("failed to get server version: %w", err)
	}
	return version, nil
}

// Raw returns the underlying *sql.DB.
func (c *Connection) Raw() interface{} {
	return c.db
}

// Config returns the connection's configuration.
func (c *Connection) Config() adapter.Config {
	return c.cfg
}

// Adapter returns the adapter that built this connection.
func (c *Connection) Adapter() adapter.DatabaseAdapter {
	return c.adapter
}
