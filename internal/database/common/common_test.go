package common

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataorm/strata/pkg/adapter"
	"github.com/strataorm/strata/pkg/dialect"
)

func testConfig() adapter.Config {
	return adapter.Config{
		CheckoutTimeout: 50 * time.Millisecond,
		RetryAttempts:   2,
		RetryDelay:      5 * time.Millisecond,
	}
}

func TestAcquireConnSuccess(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	conn, err := AcquireConn(context.Background(), dialect.MySQL, db, testConfig())
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}

func TestAcquireConnTimeoutExhaustsRetries(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Occupy the only pool slot so every checkout attempt times out.
	db.SetMaxOpenConns(1)
	held, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer held.Close()

	start := time.Now()
	_, err = AcquireConn(context.Background(), dialect.MySQL, db, testConfig())
	require.Error(t, err)

	assert.True(t, adapter.IsCheckoutTimeout(err))
	var timeoutErr *adapter.CheckoutTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 3, timeoutErr.Attempts)

	// Three checkout windows plus two retry delays must have elapsed.
	assert.GreaterOrEqual(t, time.Since(start), 160*time.Millisecond)
}

func TestAcquireConnHonorsCancellation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	db.SetMaxOpenConns(1)
	held, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer held.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = AcquireConn(ctx, dialect.MySQL, db, testConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithTransactionCommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithTransaction(context.Background(), dialect.MySQL, db, testConfig(), func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE users SET active = true")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = WithTransaction(context.Background(), dialect.MySQL, db, testConfig(), func(tx *sql.Tx) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		WithTransaction(context.Background(), dialect.MySQL, db, testConfig(), func(tx *sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectNullStrings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"a", "b"}).
			AddRow("x", nil).
			AddRow("y", "z"),
	)

	rows, err := db.Query("SELECT a, b FROM t")
	require.NoError(t, err)

	columns, cells, err := CollectNullStrings(rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, columns)
	require.Len(t, cells, 2)
	assert.True(t, cells[0][0].Valid)
	assert.False(t, cells[0][1].Valid)
	assert.Equal(t, "z", cells[1][1].String)
}

func TestCanonicalForeignKeyName(t *testing.T) {
	name := CanonicalForeignKeyName("orders", "users", "user_id")
	assert.Equal(t, "fk_orders_users_user_id", name)

	// The same inputs always give the same name.
	assert.Equal(t, name, CanonicalForeignKeyName("orders", "users", "user_id"))

	long := CanonicalForeignKeyName(strings.Repeat("a", 40), strings.Repeat("b", 40), "id")
	assert.Len(t, long, 64)
}
