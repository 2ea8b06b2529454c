package adapter

import (
	"fmt"
	"sync"

	"github.com/strataorm/strata/pkg/dialect"
)

// Registry manages the registration and retrieval of database adapters.
type Registry struct {
	adapters map[dialect.ID]DatabaseAdapter
	mu       sync.RWMutex
}

// NewRegistry creates a new adapter registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[dialect.ID]DatabaseAdapter),
	}
}

// Register registers a database adapter.
// If an adapter for the same dialect is already registered, it will be replaced.
func (r *Registry) Register(adapter DatabaseAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.adapters[adapter.Type()] = adapter
}

// Get retrieves a registered adapter by dialect ID.
// Returns ErrAdapterNotFound if the adapter is not registered.
func (r *Registry) Get(id dialect.ID) (DatabaseAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAdapterNotFound, id)
	}

	return adapter, nil
}

// GetByName retrieves a registered adapter by dialect name or alias.
// Returns ErrAdapterNotFound if the adapter is not registered.
func (r *Registry) GetByName(name string) (DatabaseAdapter, error) {
	id, ok := dialect.ParseID(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown dialect '%s'", ErrAdapterNotFound, name)
	}

	return r.Get(id)
}

// IsRegistered checks if an adapter is registered for the given dialect.
func (r *Registry) IsRegistered(id dialect.ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.adapters[id]
	return exists
}

// ListRegistered returns a list of all registered dialect IDs.
func (r *Registry) ListRegistered() []dialect.ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]dialect.ID, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}

	return ids
}

// Unregister removes an adapter from the registry.
func (r *Registry) Unregister(id dialect.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.adapters, id)
}

// Clear removes all adapters from the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.adapters = make(map[dialect.ID]DatabaseAdapter)
}

// globalRegistry is the default global adapter registry.
var globalRegistry = NewRegistry()

// Register registers an adapter in the global registry.
func Register(adapter DatabaseAdapter) {
	globalRegistry.Register(adapter)
}

// Get retrieves an adapter from the global registry.
func Get(id dialect.ID) (DatabaseAdapter, error) {
	return globalRegistry.Get(id)
}

// GetByName retrieves an adapter from the global registry by name.
func GetByName(name string) (DatabaseAdapter, error) {
	return globalRegistry.GetByName(name)
}

// IsRegistered checks if an adapter is registered in the global registry.
func IsRegistered(id dialect.ID) bool {
	return globalRegistry.IsRegistered(id)
}

// ListRegistered returns all registered dialect IDs from the global registry.
func ListRegistered() []dialect.ID {
	return globalRegistry.ListRegistered()
}

// GlobalRegistry returns the global adapter registry.
func GlobalRegistry() *Registry {
	return globalRegistry
}
