package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataorm/strata/pkg/dialect"
)

// fakeAdapter is a minimal DatabaseAdapter for registry and resolver tests.
type fakeAdapter struct {
	id       dialect.ID
	connect  func(ctx context.Context, cfg Config) (Connection, error)
	connects int
}

func (f *fakeAdapter) Type() dialect.ID {
	return f.id
}

func (f *fakeAdapter) Capabilities() dialect.Capability {
	return dialect.MustGet(f.id)
}

func (f *fakeAdapter) Connect(ctx context.Context, cfg Config) (Connection, error) {
	f.connects++
	if f.connect != nil {
		return f.connect(ctx, cfg)
	}
	return nil, errors.New("not implemented")
}

func (f *fakeAdapter) ConnectServer(ctx context.Context, cfg Config) (ServerConnection, error) {
	return nil, errors.New("not implemented")
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	mysql := &fakeAdapter{id: dialect.MySQL}

	registry.Register(mysql)

	got, err := registry.Get(dialect.MySQL)
	require.NoError(t, err)
	assert.Same(t, mysql, got.(*fakeAdapter))
	assert.True(t, registry.IsRegistered(dialect.MySQL))
}

func TestRegistryGetUnregistered(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get(dialect.PostgreSQL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAdapterNotFound)
}

func TestRegistryReRegisterOverwritesSilently(t *testing.T) {
	registry := NewRegistry()
	first := &fakeAdapter{id: dialect.MySQL}
	second := &fakeAdapter{id: dialect.MySQL}

	registry.Register(first)
	registry.Register(second)

	got, err := registry.Get(dialect.MySQL)
	require.NoError(t, err)
	assert.Same(t, second, got.(*fakeAdapter))
	assert.Len(t, registry.ListRegistered(), 1)
}

func TestRegistryGetByName(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&fakeAdapter{id: dialect.MySQL})
	registry.Register(&fakeAdapter{id: dialect.PostgreSQL})

	tests := []struct {
		name       string
		lookup     string
		expectedID dialect.ID
		expectErr  bool
	}{
		{name: "canonical", lookup: "mysql", expectedID: dialect.MySQL},
		{name: "mariadb alias", lookup: "mariadb", expectedID: dialect.MySQL},
		{name: "postgresql alias", lookup: "postgresql", expectedID: dialect.PostgreSQL},
		{name: "unknown dialect", lookup: "sqlite", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.GetByName(tt.lookup)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrAdapterNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, got.Type())
		})
	}
}

func TestRegistryUnregisterAndClear(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&fakeAdapter{id: dialect.MySQL})
	registry.Register(&fakeAdapter{id: dialect.PostgreSQL})

	registry.Unregister(dialect.MySQL)
	assert.False(t, registry.IsRegistered(dialect.MySQL))
	assert.True(t, registry.IsRegistered(dialect.PostgreSQL))

	registry.Clear()
	assert.Empty(t, registry.ListRegistered())
}
