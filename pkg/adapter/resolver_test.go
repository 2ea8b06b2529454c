package adapter

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataorm/strata/pkg/dialect"
)

// stubConn is a Connection whose lifecycle calls are counted.
type stubConn struct {
	prepares int32
	closes   int32
}

func (s *stubConn) ID() string                                  { return "stub" }
func (s *stubConn) Type() dialect.ID                            { return dialect.MySQL }
func (s *stubConn) IsConnected() bool                           { return atomic.LoadInt32(&s.closes) == 0 }
func (s *stubConn) Ping(ctx context.Context) error              { return nil }
func (s *stubConn) Close() error                                { atomic.AddInt32(&s.closes, 1); return nil }
func (s *stubConn) Prepare(ctx context.Context) error           { atomic.AddInt32(&s.prepares, 1); return nil }
func (s *stubConn) TypeOperations() TypeTranslator              { return nil }
func (s *stubConn) SchemaOperations() SchemaIntrospector        { return nil }
func (s *stubConn) Raw() interface{}                            { return nil }
func (s *stubConn) Config() Config                              { return Config{} }
func (s *stubConn) Adapter() DatabaseAdapter                    { return nil }
func (s *stubConn) ServerVersion(ctx context.Context) (string, error) { return "stub", nil }

func (s *stubConn) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return 0, nil
}

func (s *stubConn) Scalar(ctx context.Context, query string, args ...any) (any, error) {
	return nil, nil
}

func (s *stubConn) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}

func (s *stubConn) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return fn(nil)
}

func (s *stubConn) WithTableLock(ctx context.Context, table string, mode LockMode, fn func(*sql.Tx) error) error {
	return fn(nil)
}

func (s *stubConn) Explain(ctx context.Context, q Query) (string, error) {
	return "", nil
}

func validConfig() Config {
	return Config{AdapterName: "mysql", DatabaseName: "appdb"}
}

func TestResolverActiveBuildsOnce(t *testing.T) {
	conn := &stubConn{}
	fake := &fakeAdapter{
		id: dialect.MySQL,
		connect: func(ctx context.Context, cfg Config) (Connection, error) {
			return conn, nil
		},
	}
	registry := NewRegistry()
	registry.Register(fake)

	resolver := NewResolver(registry, validConfig())

	first, err := resolver.Active(context.Background())
	require.NoError(t, err)
	second, err := resolver.Active(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, fake.connects)
	assert.Equal(t, int32(1), atomic.LoadInt32(&conn.prepares))
}

func TestResolverActiveConcurrentFirstCallers(t *testing.T) {
	conn := &stubConn{}
	fake := &fakeAdapter{
		id: dialect.MySQL,
		connect: func(ctx context.Context, cfg Config) (Connection, error) {
			return conn, nil
		},
	}
	registry := NewRegistry()
	registry.Register(fake)

	resolver := NewResolver(registry, validConfig())

	const callers = 16
	results := make([]Connection, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := resolver.Active(context.Background())
			assert.NoError(t, err)
			results[i] = got
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, 1, fake.connects, "concurrent first-callers must build exactly one connection")
	assert.Equal(t, int32(1), atomic.LoadInt32(&conn.prepares), "prepare must run exactly once")
}

func TestResolverReset(t *testing.T) {
	conn := &stubConn{}
	fake := &fakeAdapter{
		id: dialect.MySQL,
		connect: func(ctx context.Context, cfg Config) (Connection, error) {
			return conn, nil
		},
	}
	registry := NewRegistry()
	registry.Register(fake)

	resolver := NewResolver(registry, validConfig())

	_, err := resolver.Active(context.Background())
	require.NoError(t, err)

	require.NoError(t, resolver.Reset())
	assert.Equal(t, int32(1), atomic.LoadInt32(&conn.closes))

	_, err = resolver.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fake.connects, "reset must force a rebuild")
}

func TestResolverInvalidConfig(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&fakeAdapter{id: dialect.MySQL})

	tests := []struct {
		name   string
		config Config
	}{
		{name: "missing adapter name", config: Config{DatabaseName: "appdb"}},
		{name: "missing database name", config: Config{AdapterName: "mysql"}},
		{name: "unknown adapter name", config: Config{AdapterName: "sqlite", DatabaseName: "appdb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(registry, tt.config)
			_, err := resolver.Active(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestResolverUnregisteredAdapter(t *testing.T) {
	resolver := NewResolver(NewRegistry(), validConfig())

	_, err := resolver.Active(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAdapterNotFound)
}
