package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/strataorm/strata/internal/database/common"
	"github.com/strataorm/strata/pkg/adapter"
)

// SchemaIntrospector answers existence and shape questions against
// PostgreSQL's information_schema and pg_catalog. Every query is scoped
// to the configured database and schema so that identically named objects
// elsewhere never leak into the answers.
type SchemaIntrospector struct {
	conn *Connection
}

// scope returns the catalog and schema names that bound every query.
func (s *SchemaIntrospector) scope() (catalog, schema string) {
	return s.conn.cfg.DatabaseName, s.conn.cfg.SchemaName
}

// exists runs a COUNT query and reports whether it found at least one row.
func (s *SchemaIntrospector) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int
	if err := s.conn.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to query catalog: %w", err)
	}
	return count > 0, nil
}

// TableExists reports whether a base table with the given name exists.
func (s *SchemaIntrospector) TableExists(ctx context.Context, table string) (bool, error) {
	catalog, schema := s.scope()
	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_catalog = $1 AND table_schema = $2
			AND table_name = $3 AND table_type = 'BASE TABLE'`
	return s.exists(ctx, query, catalog, schema, table)
}

// ViewExists reports whether a view with the given name exists.
func (s *SchemaIntrospector) ViewExists(ctx context.Context, name string) (bool, error) {
	catalog, schema := s.scope()
	query := `
		SELECT COUNT(*)
		FROM information_schema.views
		WHERE table_catalog = $1 AND table_schema = $2 AND table_name = $3`
	return s.exists(ctx, query, catalog, schema, name)
}

// ColumnExists reports whether the table has a column with the given name.
func (s *SchemaIntrospector) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	catalog, schema := s.scope()
	query := `
		SELECT COUNT(*)
		FROM information_schema.columns
		WHERE table_catalog = $1 AND table_schema = $2
			AND table_name = $3 AND column_name = $4`
	return s.exists(ctx, query, catalog, schema, table, column)
}

// IndexExists reports whether the table has an index with the given name.
// information_schema has no index view, so this reads pg_indexes.
func (s *SchemaIntrospector) IndexExists(ctx context.Context, table, name string) (bool, error) {
	_, schema := s.scope()
	query := `
		SELECT COUNT(*)
		FROM pg_indexes
		WHERE schemaname = $1 AND tablename = $2 AND indexname = $3`
	return s.exists(ctx, query, schema, table, name)
}

// ForeignKeyExists reports whether a foreign-key constraint matching the
// query exists. When no constraint name is supplied but the referenced
// table and column are known, the canonical generated name is derived.
func (s *SchemaIntrospector) ForeignKeyExists(ctx context.Context, q adapter.FKQuery) (bool, error) {
	if q.FromTable == "" {
		return false, fmt.Errorf("foreign key query requires a source table")
	}

	name := q.Name
	if name == "" && q.ToTable != "" && q.Column != "" {
		name = common.CanonicalForeignKeyName(q.FromTable, q.ToTable, q.Column)
	}

	_, schema := s.scope()
	conditions := []string{
		"tc.table_schema = $1",
		"tc.table_name = $2",
		"tc.constraint_type = 'FOREIGN KEY'",
	}
	args := []any{schema, q.FromTable}

	if q.ToTable != "" {
		args = append(args, q.ToTable)
		conditions = append(conditions, fmt.Sprintf("ccu.table_name = $%d", len(args)))
	}
	if q.Column != "" {
		args = append(args, q.Column)
		conditions = append(conditions, fmt.Sprintf("kcu.column_name = $%d", len(args)))
	}
	if name != "" {
		args = append(args, name)
		conditions = append(conditions, fmt.Sprintf("tc.constraint_name = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = tc.table_schema
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		WHERE %s`, strings.Join(conditions, " AND "))

	return s.exists(ctx, query, args...)
}

// TableColumnCount reports the live column count of a table, or -1 when
// the table does not exist. The sentinel is not an error.
func (s *SchemaIntrospector) TableColumnCount(ctx context.Context, table string) (int, error) {
	catalog, schema := s.scope()
	query := `
		SELECT COUNT(*)
		FROM information_schema.columns
		WHERE table_catalog = $1 AND table_schema = $2 AND table_name = $3`

	var count int
	if err := s.conn.db.QueryRowContext(ctx, query, catalog, schema, table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to query catalog: %w", err)
	}
	if count == 0 {
		// A present table has at least one column.
		return -1, nil
	}
	return count, nil
}

// TablesColumnCount answers TableColumnCount for many tables in a single
// catalog round trip. Requested tables that do not exist map to -1.
func (s *SchemaIntrospector) TablesColumnCount(ctx context.Context, tables []string) (map[string]int, error) {
	counts := make(map[string]int, len(tables))
	if len(tables) == 0 {
		return counts, nil
	}
	for _, t := range tables {
		counts[t] = -1
	}

	catalog, schema := s.scope()
	args := []any{catalog, schema}
	placeholders := make([]string, 0, len(tables))
	for _, t := range tables {
		args = append(args, t)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT table_name, COUNT(*)
		FROM information_schema.columns
		WHERE table_catalog = $1 AND table_schema = $2 AND table_name IN (%s)
		GROUP BY table_name`, strings.Join(placeholders, ", "))

	rows, err := s.conn.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("failed to scan column count: %w", err)
		}
		counts[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counts, nil
}

// ListTables returns the names of all base tables in the configured
// database and schema.
func (s *SchemaIntrospector) ListTables(ctx context.Context) ([]string, error) {
	catalog, schema := s.scope()
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_catalog = $1 AND table_schema = $2 AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := s.conn.db.QueryContext(ctx, query, catalog, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tables, nil
}
