package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataorm/strata/pkg/adapter"
)

func newTestServerConnection(t *testing.T) (*ServerConnection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &ServerConnection{
		id:      "test-server",
		db:      db,
		cfg:     adapter.Config{AdapterName: "mysql"},
		adapter: &Adapter{},
	}, mock
}

func TestListDatabases(t *testing.T) {
	conn, mock := newTestServerConnection(t)

	mock.ExpectQuery("SHOW DATABASES").
		WillReturnRows(sqlmock.NewRows([]string{"Database"}).
			AddRow("appdb").
			AddRow("information_schema"))

	databases, err := conn.ListDatabases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"appdb", "information_schema"}, databases)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDatabase(t *testing.T) {
	conn, mock := newTestServerConnection(t)

	mock.ExpectExec("CREATE DATABASE `appdb`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := conn.CreateDatabase(context.Background(), "appdb", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDatabaseWithOptions(t *testing.T) {
	conn, mock := newTestServerConnection(t)

	mock.ExpectExec("CREATE DATABASE IF NOT EXISTS `appdb` CHARACTER SET = utf8mb4 COLLATE = utf8mb4_unicode_ci").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := conn.CreateDatabase(context.Background(), "appdb", map[string]interface{}{
		"if_not_exists": true,
		"character_set": "utf8mb4",
		"collate":       "utf8mb4_unicode_ci",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDropDatabase(t *testing.T) {
	conn, mock := newTestServerConnection(t)

	mock.ExpectExec("DROP DATABASE IF EXISTS `appdb`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := conn.DropDatabase(context.Background(), "appdb", map[string]interface{}{
		"if_exists": true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseExists(t *testing.T) {
	conn, mock := newTestServerConnection(t)

	mock.ExpectQuery("FROM information_schema.schemata").
		WithArgs("appdb").
		WillReturnRows(countRows(1))

	exists, err := conn.DatabaseExists(context.Background(), "appdb")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery("FROM information_schema.schemata").
		WithArgs("ghost").
		WillReturnRows(countRows(0))

	exists, err = conn.DatabaseExists(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}
