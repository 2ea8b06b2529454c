package dialect

import "strings"

// ID is the canonical identifier for a SQL dialect supported by Strata.
// The set of dialects is closed: adding a new engine means adding a
// constant here and an adapter implementation under internal/database.
type ID string

const (
	// MySQL covers the MySQL family, including MariaDB and Aurora MySQL.
	MySQL ID = "mysql"

	// PostgreSQL covers the PostgreSQL family.
	PostgreSQL ID = "postgres"
)

// Capability describes what a dialect supports in a way the adapter layer
// can consume uniformly.
type Capability struct {
	// Human-friendly vendor or product name, e.g., "PostgreSQL".
	Name string `json:"name"`

	// Canonical ID used across the codebase (see ID constants).
	ID ID `json:"id"`

	// Default TCP port for the vendor's server.
	DefaultPort int `json:"defaultPort"`

	// Name of the built-in system database used for server-level
	// operations that must not assume the target database exists.
	// Empty when the server accepts connections with no database selected.
	SystemDatabase string `json:"systemDatabase,omitempty"`

	// Default schema used to scope metadata-catalog queries when the
	// configuration does not name one.
	DefaultSchema string `json:"defaultSchema,omitempty"`

	// Whether table-level locks can be taken through the pooled,
	// statement-execution connection mode used by the adapter. Dialects
	// where this is false degrade WithTableLock to transaction isolation.
	SupportsTableLocks bool `json:"supportsTableLocks"`

	// Common aliases (driver names, URI schemes, env labels) that map to
	// this dialect.
	Aliases []string `json:"aliases,omitempty"`
}

// All is a registry of capabilities keyed by the canonical dialect ID.
var All = map[ID]Capability{
	MySQL: {
		Name:               "MySQL",
		ID:                 MySQL,
		DefaultPort:        3306,
		SupportsTableLocks: false,
		Aliases:            []string{"mariadb", "aurora-mysql", "mysql2"},
	},
	PostgreSQL: {
		Name:               "PostgreSQL",
		ID:                 PostgreSQL,
		DefaultPort:        5432,
		SystemDatabase:     "postgres",
		DefaultSchema:      "public",
		SupportsTableLocks: true,
		Aliases:            []string{"postgresql", "pgsql", "pg"},
	},
}

// Get returns the capability for the given dialect ID.
func Get(id ID) (Capability, bool) {
	cap, ok := All[id]
	return cap, ok
}

// MustGet returns the capability for the given dialect ID and panics if it
// is not known. Use only with the package's ID constants.
func MustGet(id ID) Capability {
	cap, ok := All[id]
	if !ok {
		panic("dialect: unknown dialect ID: " + string(id))
	}
	return cap
}

// ParseID resolves a dialect name or alias to its canonical ID.
// Matching is case-insensitive.
func ParseID(name string) (ID, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return "", false
	}

	if _, ok := All[ID(normalized)]; ok {
		return ID(normalized), true
	}

	for id, cap := range All {
		for _, alias := range cap.Aliases {
			if alias == normalized {
				return id, true
			}
		}
	}

	return "", false
}

// IDs returns all canonical dialect IDs.
func IDs() []ID {
	ids := make([]ID, 0, len(All))
	for id := range All {
		ids = append(ids, id)
	}
	return ids
}
