package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/strataorm/strata/internal/database/common"
	"github.com/strataorm/strata/pkg/adapter"
)

// SchemaIntrospector answers existence and shape questions against MySQL's
// information_schema. Every query is scoped to the configured database so
// that identically named objects in other databases never leak into the
// answers. All methods are pure reads and safe before any DDL has run.
type SchemaIntrospector struct {
	conn *Connection
}

// schema returns the database name that scopes every catalog query.
func (s *SchemaIntrospector) schema() string {
	return s.conn.cfg.DatabaseName
}

// exists runs a COUNT query and reports whether it found at least one row.
func (s *SchemaIntrospector) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int
	if err := s.conn.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to query information_schema: %w", err)
	}
	return count > 0, nil
}

// TableExists reports whether a base table with the given name exists.
func (s *SchemaIntrospector) TableExists(ctx context.Context, table string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = ? AND table_name = ? AND table_type = 'BASE TABLE'`
	return s.exists(ctx, query, s.schema(), table)
}

// ViewExists reports whether a view with the given name exists.
func (s *SchemaIntrospector) ViewExists(ctx context.Context, name string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM information_schema.views
		WHERE table_schema = ? AND table_name = ?`
	return s.exists(ctx, query, s.schema(), name)
}

// ColumnExists reports whether the table has a column with the given name.
func (s *SchemaIntrospector) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ? AND column_name = ?`
	return s.exists(ctx, query, s.schema(), table, column)
}

// IndexExists reports whether the table has an index with the given name.
func (s *SchemaIntrospector) IndexExists(ctx context.Context, table, name string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM information_schema.statistics
		WHERE table_schema = ? AND table_name = ? AND index_name = ?`
	return s.exists(ctx, query, s.schema(), table, name)
}

// ForeignKeyExists reports whether a foreign-key constraint matching the
// query exists. When no constraint name is supplied but the referenced
// table and column are known, the canonical generated name is derived so
// that default-named constraints can be located.
func (s *SchemaIntrospector) ForeignKeyExists(ctx context.Context, q adapter.FKQuery) (bool, error) {
	if q.FromTable == "" {
		return false, fmt.Errorf("foreign key query requires a source table")
	}

	name := q.Name
	if name == "" && q.ToTable != "" && q.Column != "" {
		name = common.CanonicalForeignKeyName(q.FromTable, q.ToTable, q.Column)
	}

	var conditions []string
	args := []any{s.schema(), q.FromTable}
	conditions = append(conditions,
		"tc.table_schema = ?",
		"tc.table_name = ?",
		"tc.constraint_type = 'FOREIGN KEY'",
	)

	if q.ToTable != "" {
		conditions = append(conditions, "kcu.referenced_table_name = ?")
		args = append(args, q.ToTable)
	}
	if q.Column != "" {
		conditions = append(conditions, "kcu.column_name = ?")
		args = append(args, q.Column)
	}
	if name != "" {
		conditions = append(conditions, "tc.constraint_name = ?")
		args = append(args, name)
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = tc.table_schema
			AND kcu.table_name = tc.table_name
		WHERE %s`, strings.Join(conditions, " AND "))

	return s.exists(ctx, query, args...)
}

// TableColumnCount reports the live column count of a table, or -1 when
// the table does not exist. The sentinel is not an error.
func (s *SchemaIntrospector) TableColumnCount(ctx context.Context, table string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?`

	var count int
	if err := s.conn.db.QueryRowContext(ctx, query, s.schema(), table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to query information_schema: %w", err)
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

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(tables)), ", ")
	query := fmt.Sprintf(`
		SELECT table_name, COUNT(*)
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name IN (%s)
		GROUP BY table_name`, placeholders)

	args := make([]any, 0, len(tables)+1)
	args = append(args, s.schema())
	for _, t := range tables {
		args = append(args, t)
	}

	rows, err := s.conn.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query information_schema: %w", err)
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
// database.
func (s *SchemaIntrospector) ListTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ? AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := s.conn.db.QueryContext(ctx, query, s.schema())
	if err != nil {
		return nil, fmt.Errorf("failed to query information_schema: %w", err)
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
