// Package strata wires the built-in dialect adapters into the adapter
// registry and re-exports the handful of entry points the mapping and
// query layers need. Importing this package is enough to make the MySQL
// and PostgreSQL families resolvable by name.
package strata

import (
	"context"

	"github.com/strataorm/strata/pkg/adapter"

	// Built-in dialect adapters register themselves on import.
	_ "github.com/strataorm/strata/internal/database/mysql"
	_ "github.com/strataorm/strata/internal/database/postgres"
)

// Config is the unified connection configuration.
type Config = adapter.Config

// Connection is an active, pooled connection to a specific database.
type Connection = adapter.Connection

// ServerConnection is a server-level connection for database lifecycle
// operations.
type ServerConnection = adapter.ServerConnection

// Configure sets the configuration used by ActiveConnection.
func Configure(config Config) error {
	return adapter.Configure(config)
}

// ActiveConnection resolves the process-wide active connection.
func ActiveConnection(ctx context.Context) (Connection, error) {
	return adapter.ActiveConnection(ctx)
}

// ResetActive closes and discards the process-wide active connection.
func ResetActive() error {
	return adapter.ResetActive()
}

// ConnectServer opens a server-level connection for the dialect named by
// the configuration, without selecting a database.
func ConnectServer(ctx context.Context, config Config) (ServerConnection, error) {
	adp, err := adapter.GetByName(config.AdapterName)
	if err != nil {
		return nil, err
	}
	return adp.ConnectServer(ctx, config)
}
