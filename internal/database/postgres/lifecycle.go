package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/strataorm/strata/pkg/adapter"
	"github.com/strataorm/strata/pkg/dialect"
)

// ServerConnection is a short-lived connection to the "postgres" system
// database used for lifecycle operations on other databases. It is never
// the pooled, database-scoped connection used by ordinary queries.
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
	return dialect.PostgreSQL
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

// ListDatabases returns the names of all non-template databases on the
// server.
func (s *ServerConnection) ListDatabases(ctx context.Context) ([]string, error) {
	query := `
		SELECT datname
		FROM pg_database
		WHERE datistemplate = false
		ORDER BY datname`

	rows, err := s.db.QueryContext(ctx, query)
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

// CreateDatabase creates a new PostgreSQL database with optional
// parameters. Supported options: owner (string), template (string),
// encoding (string).
func (s *ServerConnection) CreateDatabase(ctx context.Context, name string, options map[string]interface{}) error {
	var commandBuilder strings.Builder
	commandBuilder.WriteString("CREATE DATABASE " + QuoteIdentifier(name))

	if owner, ok := options["owner"].(string); ok && owner != "" {
		commandBuilder.WriteString(fmt.Sprintf(" OWNER = %s", QuoteIdentifier(owner)))
	}
	if template, ok := options["template"].(string); ok && template != "" {
		commandBuilder.WriteString(fmt.Sprintf(" TEMPLATE = %s", QuoteIdentifier(template)))
	}
	if encoding, ok := options["encoding"].(string); ok && encoding != "" {
		commandBuilder.WriteString(fmt.Sprintf(" ENCODING = '%s'", encoding))
	}

	if _, err := s.db.ExecContext(ctx, commandBuilder.String()); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

// DropDatabase drops a PostgreSQL database with optional parameters.
// Supported options: if_exists (bool), force (bool).
func (s *ServerConnection) DropDatabase(ctx context.Context, name string, options map[string]interface{}) error {
	var commandBuilder strings.Builder
	commandBuilder.WriteString("DROP DATABASE")

	if ifExists, ok := options["if_exists"].(bool); ok && ifExists {
		commandBuilder.WriteString(" IF EXISTS")
	}

	commandBuilder.WriteString(" " + QuoteIdentifier(name))

	if force, ok := options["force"].(bool); ok && force {
		commandBuilder.WriteString(" WITH (FORCE)")
	}

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
		FROM pg_database
		WHERE datname = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	return count > 0, nil
}
