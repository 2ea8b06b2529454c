package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/strataorm/strata/pkg/adapter"
	"github.com/strataorm/strata/pkg/dialect"
)

// Adapter implements the adapter.DatabaseAdapter interface for the
// PostgreSQL family.
type Adapter struct{}

// NewAdapter creates a new PostgreSQL adapter.
func NewAdapter() adapter.DatabaseAdapter {
	return &Adapter{}
}

// Type returns the dialect identifier.
func (a *Adapter) Type() dialect.ID {
	return dialect.PostgreSQL
}

// Capabilities returns the capability metadata for the PostgreSQL family.
func (a *Adapter) Capabilities() dialect.Capability {
	return dialect.MustGet(dialect.PostgreSQL)
}

// Connect establishes a pooled connection to a PostgreSQL database.
func (a *Adapter) Connect(ctx context.Context, config adapter.Config) (adapter.Connection, error) {
	cfg := config.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := open(ctx, cfg, cfg.DatabaseName)
	if err != nil {
		return nil, adapter.NewConnectionError(dialect.PostgreSQL, cfg.Host, cfg.Port, err)
	}

	// Pool sizing comes from configuration, not adapter logic.
	db.SetMaxOpenConns(cfg.MaxPoolSize)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	return &Connection{
		id:      uuid.NewString(),
		db:      db,
		cfg:     cfg,
		adapter: a,
		logger:  cfg.Logger,
	}, nil
}

// ConnectServer establishes a server-level connection against the
// "postgres" system database, for lifecycle operations where the target
// database may not exist yet.
func (a *Adapter) ConnectServer(ctx context.Context, config adapter.Config) (adapter.ServerConnection, error) {
	cfg := config.WithDefaults()
	if cfg.AdapterName == "" {
		return nil, adapter.NewConfigurationError(dialect.PostgreSQL, "adapterName", "adapter name is required")
	}

	system := a.Capabilities().SystemDatabase
	db, err := open(ctx, cfg, system)
	if err != nil {
		return nil, adapter.NewConnectionError(dialect.PostgreSQL, cfg.Host, cfg.Port, err)
	}

	// Lifecycle statements are single round trips on a short-lived
	// connection; keep the pool minimal.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Minute)

	return &ServerConnection{
		id:      uuid.NewString(),
		db:      db,
		cfg:     cfg,
		adapter: a,
	}, nil
}

// open builds the connection URI for the given database name, opens the
// handle through the pgx stdlib driver and verifies it with a ping.
func open(ctx context.Context, cfg adapter.Config, databaseName string) (*sql.DB, error) {
	uri := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, databaseName, sslMode(cfg))

	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL server: %w", err)
	}

	return db, nil
}

// sslMode maps the shared SSL configuration to a libpq-style sslmode.
func sslMode(cfg adapter.Config) string {
	if cfg.SSLMode != "" {
		return cfg.SSLMode
	}
	if cfg.SSL {
		return "require"
	}
	return "disable"
}

// QuoteIdentifier quotes a PostgreSQL identifier using double quotes.
func QuoteIdentifier(name string) string {
	name = strings.Replace(name, `"`, `""`, -1)
	return fmt.Sprintf(`"%s"`, name)
}
