// Package adapter provides the unified interface for all Strata database
// adapters.
//
// This package defines the contracts that dialect-specific implementations
// must follow, enabling the query and model layers to target any supported
// SQL engine while respecting each engine's characteristics.
//
// # Architecture
//
// The adapter package follows an interface-driven design with several key
// components:
//
//   - DatabaseAdapter: The main interface that all dialect adapters implement
//   - Connection: An active, pooled connection to a specific database
//   - ServerConnection: A server-level connection for database lifecycle operations
//   - Operation Interfaces: TypeTranslator, SchemaIntrospector
//   - Registry: Manages adapter registration and retrieval
//   - Resolver: Lazy singleton resolution of the active connection
//
// # Usage
//
// Adapters register themselves with the global registry when their package
// is imported:
//
//	import (
//	    "github.com/strataorm/strata/pkg/adapter"
//	    _ "github.com/strataorm/strata/internal/database/mysql"
//	)
//
// Then configure and resolve the active connection:
//
//	adapter.Configure(adapter.Config{
//	    AdapterName:  "mysql",
//	    Host:         "localhost",
//	    DatabaseName: "appdb",
//	    Username:     "app",
//	    Password:     "secret",
//	})
//
//	conn, err := adapter.ActiveConnection(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Perform operations through the connection:
//
//	// Type translation
//	name, err := conn.TypeOperations().TranslateType(dialect.TypeBigInt)
//
//	// Schema introspection
//	ok, err := conn.SchemaOperations().TableExists(ctx, "users")
//
//	// Transactions
//	err = conn.Transaction(ctx, func(tx *sql.Tx) error {
//	    _, err := tx.ExecContext(ctx, "UPDATE users SET active = true")
//	    return err
//	})
//
// # Error Handling
//
// The adapter package provides standardized error types:
//
//   - UnknownTypeAliasError: A logical type tag has no dialect mapping
//   - ConfigurationError: Invalid configuration, surfaced before any connection attempt
//   - ConnectionError: A connection attempt failed
//   - CheckoutTimeoutError: The pool could not hand out a connection in time
//   - DatabaseError: Wraps dialect-specific errors with context
//
// Use the Is() and As() functions from the errors package, or the IsXxx
// helpers, to check error kinds:
//
//	if adapter.IsUnknownTypeAlias(err) {
//	    // Handle missing type mapping
//	}
//
// Degraded-guarantee situations are not errors: WithTableLock on a dialect
// without true table locks succeeds but logs a warning (see Connection).
//
// # Thread Safety
//
// All types in this package are designed to be thread-safe. The Registry
// and Resolver use mutex locks to protect concurrent access; Connection
// implementations are safe for concurrent use.
package adapter
