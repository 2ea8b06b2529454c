package mysql

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/strataorm/strata/pkg/adapter"
	"github.com/strataorm/strata/pkg/dialect"
)

// newTestConnection builds a Connection backed by sqlmock for exercising the
// query paths without a live server.
func newTestConnection(t *testing.T) (*Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := adapter.Config{
		AdapterName:     "mysql",
		DatabaseName:    "appdb",
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

	require.Equal(t, dialect.MySQL, a.Type())

	caps := a.Capabilities()
	require.Equal(t, dialect.MySQL, caps.ID)
	require.Equal(t, 3306, caps.DefaultPort)
	require.False(t, caps.SupportsTableLocks)
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "users", "`users`"},
		{"name with space", "user accounts", "`user accounts`"},
		{"name with backtick", "odd`name", "`odd``name`"},
		{"empty name", "", "``"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, QuoteIdentifier(tt.input))
		})
	}
}

func TestTLSParam(t *testing.T) {
	tests := []struct {
		name string
		cfg  adapter.Config
		want string
	}{
		{"ssl disabled", adapter.Config{SSL: false}, "false"},
		{"ssl enabled", adapter.Config{SSL: true}, "true"},
		{"ssl skip verify", adapter.Config{SSL: true, SSLMode: "skip-verify"}, "skip-verify"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tlsParam(tt.cfg))
		})
	}
}
