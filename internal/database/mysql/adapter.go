package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/strataorm/strata/pkg/adapter"
	"github.com/strataorm/strata/pkg/dialect"
)

// Adapter implements the adapter.DatabaseAdapter interface for the MySQL
// family (MySQL, MariaDB, Aurora MySQL).
type Adapter struct{}

// NewAdapter creates a new MySQL adapter.
func NewAdapter() adapter.DatabaseAdapter {
	return &Adapter{}
}

// Type returns the dialect identifier.
func (a *Adapter) Type() dialect.ID {
	return dialect.MySQL
}

// Capabilities returns the capability metadata for the MySQL family.
func (a *Adapter) Capabilities() dialect.Capability {
	return dialect.MustGet(dialect.MySQL)
}

// Connect establishes a pooled connection to a MySQL database.
func (a *Adapter) Connect(ctx context.Context, config adapter.Config) (adapter.Connection, error) {
	cfg := config.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := open(ctx, cfg, cfg.DatabaseName)
	if err != nil {
		return nil, adapter.NewConnectionError(dialect.MySQL, cfg.Host, cfg.Port, err)
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

// ConnectServer establishes a server-level connection that selects no
// database, for lifecycle operations where the target database may not
// exist yet.
func (a *Adapter) ConnectServer(ctx context.Context, config adapter.Config) (adapter.ServerConnection, error) {
	cfg := config.WithDefaults()
	if cfg.AdapterName == "" {
		return nil, adapter.NewConfigurationError(dialect.MySQL, "adapterName", "adapter name is required")
	}

	db, err := open(ctx, cfg, "")
	if err != nil {
		return nil, adapter.NewConnectionError(dialect.MySQL, cfg.Host, cfg.Port, err)
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

// open builds the DSN for the given database name (empty for server-level
// connections), opens the handle and verifies it with a ping.
func open(ctx context.Context, cfg adapter.Config, databaseName string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&tls=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, databaseName, tlsParam(cfg))

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL server: %w", err)
	}

	return db, nil
}

// tlsParam maps the shared SSL configuration onto the driver's tls
// parameter values.
func tlsParam(cfg adapter.Config) string {
	if !cfg.SSL {
		return "false"
	}
	if cfg.SSLMode == "skip-verify" {
		return "skip-verify"
	}
	return "true"
}

// QuoteIdentifier quotes a MySQL identifier using backticks.
func QuoteIdentifier(name string) string {
	// Replace any existing backticks with double backticks to escape them
	name = strings.Replace(name, "`", "``", -1)
	return fmt.Sprintf("`%s`", name)
}
