package adapter

import (
	"context"
	"sync"
)

// Resolver performs lazy singleton resolution of the active connection from
// configuration. The first call to Active validates the configuration,
// looks the adapter up in the registry, connects, and runs the connection's
// one-time preparation; every later call returns the same connection
// without rebuilding.
//
// The build is a critical section: Active holds the mutex across the whole
// check-and-set so that concurrent first-callers produce exactly one
// connection and exactly one Prepare invocation.
type Resolver struct {
	registry *Registry
	config   Config

	mu   sync.Mutex
	conn Connection
}

// NewResolver creates a resolver over the given registry and configuration.
func NewResolver(registry *Registry, config Config) *Resolver {
	return &Resolver{
		registry: registry,
		config:   config,
	}
}

// Active returns the active connection, building it on first use.
func (r *Resolver) Active(ctx context.Context) (Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn != nil {
		return r.conn, nil
	}

	cfg := r.config.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	adp, err := r.registry.GetByName(cfg.AdapterName)
	if err != nil {
		return nil, err
	}

	conn, err := adp.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := conn.Prepare(ctx); err != nil {
		conn.Close()
		return nil, WrapError(adp.Type(), "prepare", err)
	}

	r.conn = conn
	return r.conn, nil
}

// Reset closes and discards the active connection, if any. The next call
// to Active rebuilds it. Intended for configuration resets and tests.
func (r *Resolver) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	r.conn = nil
	return err
}

// Configure replaces the resolver's configuration and discards any active
// connection built from the previous one.
func (r *Resolver) Configure(config Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.conn != nil {
		err = r.conn.Close()
		r.conn = nil
	}
	r.config = config
	return err
}

// defaultResolver backs the package-level active-connection helpers.
var defaultResolver = NewResolver(globalRegistry, Config{})

// Configure sets the configuration used by ActiveConnection.
// Any previously resolved connection is closed and discarded.
func Configure(config Config) error {
	return defaultResolver.Configure(config)
}

// ActiveConnection resolves the process-wide active connection from the
// configuration set by Configure.
func ActiveConnection(ctx context.Context) (Connection, error) {
	return defaultResolver.Active(ctx)
}

// ResetActive closes and discards the process-wide active connection.
func ResetActive() error {
	return defaultResolver.Reset()
}
