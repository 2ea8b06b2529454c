// Package adapter provides the unified interface for all Strata database
// adapters. This package defines the contracts that dialect-specific
// implementations must follow.
package adapter

import (
	"context"
	"database/sql"

	"github.com/strataorm/strata/pkg/dialect"
)

// DatabaseAdapter represents a SQL dialect adapter.
// Each supported dialect (MySQL family, PostgreSQL family) must implement
// this interface and register itself with the adapter registry.
type DatabaseAdapter interface {
	// Type returns the canonical dialect identifier
	Type() dialect.ID

	// Capabilities returns the capability metadata for this dialect
	Capabilities() dialect.Capability

	// Connect establishes a pooled connection to a specific database
	Connect(ctx context.Context, config Config) (Connection, error)

	// ConnectServer establishes a short-lived server-level connection
	// that selects no specific database. It is used for database
	// lifecycle operations where the target may not yet exist or must
	// not be assumed to exist.
	ConnectServer(ctx context.Context, config Config) (ServerConnection, error)
}

// Connection represents an active, pooled connection to a specific
// database. This is the main interface for interacting with a database.
//
// Connections are shared, process-wide state and safe for concurrent use.
type Connection interface {
	// Identity and status
	ID() string
	Type() dialect.ID
	IsConnected() bool

	// Lifecycle management
	Ping(ctx context.Context) error
	Close() error

	// Prepare performs one-time preparation after the connection is
	// first resolved, priming the schema-metadata cache. The resolver
	// guarantees it runs exactly once per resolved connection.
	Prepare(ctx context.Context) error

	// Operation interfaces
	TypeOperations() TypeTranslator
	SchemaOperations() SchemaIntrospector

	// Exec executes a statement that returns no rows and reports the
	// number of affected rows.
	Exec(ctx context.Context, query string, args ...any) (int64, error)

	// Scalar executes a query expected to produce a single value.
	Scalar(ctx context.Context, query string, args ...any) (any, error)

	// Query executes a query and returns the rows for streamed
	// iteration. The caller owns the rows and must close them.
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// Transaction runs fn inside a transaction on a connection checked
	// out from the pool. The transaction is committed when fn returns
	// nil and rolled back when it returns an error; the connection is
	// returned to the pool on every exit path.
	Transaction(ctx context.Context, fn func(*sql.Tx) error) error

	// WithTableLock runs fn while holding a best-effort table lock in
	// the requested mode. Dialects that cannot take a true table lock
	// through the pooled connection degrade to plain transaction
	// isolation and log a warning; fn still runs exactly once and the
	// transaction semantics of Transaction apply.
	WithTableLock(ctx context.Context, table string, mode LockMode, fn func(*sql.Tx) error) error

	// Explain runs the dialect's EXPLAIN over the query and renders the
	// vendor plan as an aligned text table.
	Explain(ctx context.Context, q Query) (string, error)

	// ServerVersion reports the server's version string.
	ServerVersion(ctx context.Context) (string, error)

	// Raw returns the underlying *sql.DB.
	// Use this only for operations not covered by the interfaces above.
	Raw() interface{}

	// Configuration
	Config() Config
	Adapter() DatabaseAdapter
}

// ServerConnection represents an active server-level connection used for
// database lifecycle operations. It is never the pooled, database-scoped
// connection used by ordinary queries.
type ServerConnection interface {
	// Identity and status
	ID() string
	Type() dialect.ID

	// Lifecycle management
	Ping(ctx context.Context) error
	Close() error

	// Server-level database management
	ListDatabases(ctx context.Context) ([]string, error)
	CreateDatabase(ctx context.Context, name string, options map[string]interface{}) error
	DropDatabase(ctx context.Context, name string, options map[string]interface{}) error
	DatabaseExists(ctx context.Context, name string) (bool, error)

	// Raw returns the underlying *sql.DB.
	Raw() interface{}
}

// TypeTranslator maps logical type tags to vendor SQL type names.
type TypeTranslator interface {
	// TranslateType returns the vendor type name for the given tag.
	// It fails with an UnknownTypeAliasError when the dialect does not
	// support the tag; it never guesses.
	TranslateType(tag dialect.TypeTag) (string, error)

	// DefaultSize returns the default length used in DDL when the tag's
	// vendor type requires an explicit size and none was given. The
	// second return is false when the tag has no default size.
	DefaultSize(tag dialect.TypeTag) (int, bool)
}

// FKQuery identifies a foreign-key constraint for an existence check.
// When Name is empty, a canonical constraint name is derived
// deterministically from FromTable, ToTable and Column so that
// default-named constraints can be located without the caller tracking
// generated names.
type FKQuery struct {
	FromTable string
	ToTable   string
	Column    string
	Name      string
}

// SchemaIntrospector answers existence and shape questions by reading the
// dialect's metadata catalog. All predicates are pure reads scoped to the
// configured database/schema, and all are safe to call before any DDL has
// run: absent objects simply yield false, 0 or -1.
type SchemaIntrospector interface {
	TableExists(ctx context.Context, table string) (bool, error)
	ViewExists(ctx context.Context, name string) (bool, error)
	ColumnExists(ctx context.Context, table, column string) (bool, error)
	IndexExists(ctx context.Context, table, name string) (bool, error)
	ForeignKeyExists(ctx context.Context, q FKQuery) (bool, error)

	// TableColumnCount reports the live column count of a table, or the
	// sentinel -1 (not an error) when the table does not exist.
	TableColumnCount(ctx context.Context, table string) (int, error)

	// TablesColumnCount answers TableColumnCount for many tables in a
	// single catalog round trip. Requested tables that do not exist map
	// to -1.
	TablesColumnCount(ctx context.Context, tables []string) (map[string]int, error)

	// ListTables returns the names of all base tables in the configured
	// database/schema.
	ListTables(ctx context.Context) ([]string, error)
}
