package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultQueryTimeout bounds storage calls when no DB_TIMEOUT is set.
const defaultQueryTimeout = 5 * time.Second

type DB struct {
	*pgxpool.Pool
	queryTimeout time.Duration
}

func NewPostgreSQLDB(dsn string, queryTimeout time.Duration) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)

	if err != nil {
		return nil, err
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 5

	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	config.ConnConfig.ConnectTimeout = queryTimeout

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &DB{Pool: pool, queryTimeout: queryTimeout}, nil
}

// Bound derives a context that expires after the configured query
// timeout, so a stalled connection cannot block an attendance mutation
// indefinitely. A caller already holding an earlier deadline keeps it.
func (db *DB) Bound(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := db.queryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Transactor runs fn atomically. An attendance close and the penalty
// entries it produces must become visible together; the in-memory
// implementation used by tests is a passthrough.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Retry invokes fn up to attempts times with a short linear backoff.
// Storage errors, including Bound deadline expiries, are retryable;
// only the caller's own context cancelling stops the attempts early.
func Retry(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * 100 * time.Millisecond):
		}
	}
	return err
}
