package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/strataorm/strata/pkg/adapter"
	"github.com/strataorm/strata/pkg/dialect"
)

// ServerConnection is a short-lived, server-level MySQL connection that
// selects no database. It exists for lifecycle operations where the
// target database may not exist yet, or must not be assumed to exist
// before dropping. It is never the pooled, database-scoped connection
// used by ordinary queries.
type ServerConnection struct {
	id      string
	db      *sql.DB
	cfg     adapter.Config
	adapter *Adapter
}

// ID returns the connection identifier.
func (s *ServerConnection) ID() string {
	return s.id
}

// Type returns the dialect identifier.
func (s *ServerConnection) Type() dialect.ID {
	return dialect.MySQL
}

// Ping verifies the server connection is alive.
func (s *ServerConnection) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the server connection.
func (s *ServerConnection) Close() error {
	return s.db.Close()
}

// Raw returns the underlying *sql.DB.
func (s *ServerConnection) Raw() interface{} {
	return s.db
}

// ListDatabases returns the names of all databases on the server.
func (s *ServerConnection) ListDatabases(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	defer rows.Close()

	var databases []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan database name: %w", err)
		}
		databases = append(databases, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return databases, nil
}

// CreateDatabase creates a new MySQL database with optional parameters.
// Supported options: if_not_exists (bool), character_set (string),
// collate (string).
func (s *ServerConnection) CreateDatabase(ctx context.Context, name string, options map[string]interface{}) error {
	var commandBuilder strings.Builder
	commandBuilder.WriteString("CREATE DATABASE")

	if ifNotExists, ok := options["if_not_exists"].(bool); ok && ifNotExists {
		commandBuilder.WriteString(" IF NOT EXISTS")
	}

	commandBuilder.WriteString(" " + QuoteIdentifier(name))

	if characterSet, ok := options["character_set"].(string); ok && characterSet != "" {
		commandBuilder.WriteString(fmt.Sprintf(" CHARACTER SET = %s", characterSet))
	}
	if collate, ok := options["collate"].(string); ok && collate != "" {
		commandBuilder.WriteString(fmt.Sprintf(" COLLATE = %s", collate))
	}

	if _, err := s.db.ExecContext(ctx, commandBuilder.String()); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

// DropDatabase drops a MySQL database with optional parameters.
// Supported options: if_exists (bool).
func (s *ServerConnection) DropDatabase(ctx context.Context, name string, options map[string]interface{}) error {
	var commandBuilder strings.Builder
	commandBuilder.WriteString("DROP DATABASE")

	if ifExists, ok := options["if_exists"].(bool); ok && ifExists {
		commandBuilder.WriteString(" IF EXISTS")
	}

	commandBuilder.WriteString(" " + QuoteIdentifier(name))

	if _, err := s.db.ExecContext(ctx, commandBuilder.String()); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	return nil
}

// DatabaseExists reports whether a database with the given name exists,
// via a parameterized check against the server's global catalog.
func (s *ServerConnection) DatabaseExists(ctx context.Context, name string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM information_schema.schemata
		WHERE schema_name = ?`

	var count int
	if err := s.db.QueryRowContext(ctx, query, name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	return count > 0, nil
}
