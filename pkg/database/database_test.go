package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errStr string

func (e errStr) Error() string { return string(e) }

func TestRetryBackoff_WithinJitter(t *testing.T) {
	for attempt := range 3 {
		base := defaultRetryBaseWait << attempt
		lo := time.Duration(float64(base) * (1 - retryJitterFraction))
		hi := time.Duration(float64(base) * (1 + retryJitterFraction))
		for range 20 {
			d := retryBackoff(attempt)
			assert.GreaterOrEqual(t, d, lo)
			assert.LessOrEqual(t, d, hi)
		}
	}
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.True(t, isConnectionError(errStr("dial tcp 127.0.0.1:5432: connection refused")))
	assert.True(t, isConnectionError(errStr("unexpected EOF")))
	assert.True(t, isConnectionError(&pgconn.PgError{Code: "08006"}))
	assert.True(t, isConnectionError(&pgconn.PgError{Code: "57P03"}))
	assert.False(t, isConnectionError(&pgconn.PgError{Code: "42601"}))
	assert.False(t, isConnectionError(errStr("duplicate key value violates unique constraint")))
}

func TestWithRetry_StopsOnSQLError(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, nil, "op", func() error {
		calls++
		return &pgconn.PgError{Code: "42P01"}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := withRetry(ctx, 3, slog.New(slog.DiscardHandler), "op", func() error {
		calls++
		return errStr("connection refused")
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: 5432, User: "shop", Password: "p@ss/word", DBName: "storefront", SSLMode: "disable"}
	assert.Equal(t, "postgres://shop:p%40ss%2Fword@db:5432/storefront?sslmode=disable", cfg.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6379", RedisConfig{Host: "cache", Port: 6379}.Addr())
}

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_reviews.up.sql":  {Data: []byte("CREATE TABLE reviews ();")},
		"001_products.up.sql": {Data: []byte("CREATE TABLE products ();")},
		"001_products.down.sql": {Data: []byte("DROP TABLE products;")},
		"README.md":           {Data: []byte("docs")},
	}

	names, err := PendingMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_products.up.sql", "002_reviews.up.sql"}, names)
}

func TestRunMigrations(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	fsys := fstest.MapFS{
		"001_products.up.sql": {Data: []byte("CREATE TABLE products (id BIGINT);")},
		"002_reviews.up.sql":  {Data: []byte("CREATE TABLE reviews (id BIGINT);")},
	}

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("001_products.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("002_reviews.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE reviews`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs("002_reviews.up.sql").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	var buf bytes.Buffer
	err = RunMigrations(context.Background(), mock, fsys, slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "002_reviews.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_SQLErrorRollsBack(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	fsys := fstest.MapFS{"001_bad.up.sql": {Data: []byte("CREATE TABLE oops (")}}

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("001_bad.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE oops`).WillReturnError(&pgconn.PgError{Code: "42601", Message: "syntax error"})
	mock.ExpectRollback()

	err = RunMigrations(context.Background(), mock, fsys, slog.New(slog.DiscardHandler))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_bad.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPoolStatsCollector(t *testing.T) {
	c := NewPoolStatsCollector(func() PoolStats {
		return PoolStats{Acquired: 2, Idle: 3, Total: 5, Max: 10, AcquireCount: 40, EmptyAcquires: 1, AcquireDuration: 1500 * time.Millisecond}
	}, "storefront")

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, f := range families {
		m := f.GetMetric()[0]
		assert.Equal(t, "storefront", m.GetLabel()[0].GetValue())
		if g := m.GetGauge(); g != nil {
			values[f.GetName()] = g.GetValue()
		}
		if c := m.GetCounter(); c != nil {
			values[f.GetName()] = c.GetValue()
		}
	}

	assert.Len(t, values, 7)
	assert.Equal(t, float64(2), values["db_pool_acquired_connections"])
	assert.Equal(t, float64(10), values["db_pool_max_connections"])
	assert.Equal(t, float64(40), values["db_pool_acquire_count_total"])
	assert.InDelta(t, 1.5, values["db_pool_acquire_duration_seconds_total"], 1e-9)
}

func TestTraceQuery_SlowQueryLogging(t *testing.T) {
	var buf bytes.Buffer
	SetSlowQueryLogging(time.Nanosecond, slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { SetSlowQueryLogging(0, nil) })

	_, end := TraceQuery(context.Background(), "ListProducts", "SELECT 1")
	time.Sleep(time.Millisecond)
	end(errors.New("timeout"))

	assert.Contains(t, buf.String(), "slow query")
	assert.Contains(t, buf.String(), "ListProducts")
	assert.Contains(t, buf.String(), "timeout")
}

func TestTraceQuery_NoLoggingWhenDisabled(t *testing.T) {
	SetSlowQueryLogging(0, nil)
	_, end := TraceQuery(context.Background(), "GetProduct", "SELECT 1")
	end(nil)
}
