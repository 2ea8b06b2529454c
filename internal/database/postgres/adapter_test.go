package postgres

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/strataorm/strata/pkg/adapter"
	"github.com/strataorm/strata/pkg/dialect"
)

func newTestConnection(t *testing.T) (*Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := adapter.Config{
		AdapterName:     "postgres",
		DatabaseName:    "appdb",
		SchemaName:      "public",
		CheckoutTimeout: time.Second,
		RetryAttempts:   1,
		RetryDelay:      time.Millisecond,
	}

	return &Connection{
		id:      "test-connection",
		db:      db,
		cfg:     cfg,
		adapter: &Adapter{},
		logger:  zap.NewNop(),
	}, mock
}

func TestAdapterIdentity(t *testing.T) {
	a := NewAdapter()

	require.Equal(t, dialect.PostgreSQL, a.Type())

	caps := a.Capabilities()
	require.Equal(t, 5432, caps.DefaultPort)
	require.Equal(t, "postgres", caps.SystemDatabase)
	require.Equal(t, "public", caps.DefaultSchema)
	require.True(t, caps.SupportsTableLocks)
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "users", `"users"`},
		{"mixed case kept", "Users", `"Users"`},
		{"name with quote", `odd"name`, `"odd""name"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, QuoteIdentifier(tt.input))
		})
	}
}

func TestSSLMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  adapter.Config
		want string
	}{
		{"disabled", adapter.Config{}, "disable"},
		{"enabled", adapter.Config{SSL: true}, "require"},
		{"explicit mode wins", adapter.Config{SSL: true, SSLMode: "verify-full"}, "verify-full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sslMode(tt.cfg))
		})
	}
}
