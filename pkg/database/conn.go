package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Conn is a connection checked out for a single unit of work. Release must
// be called exactly once when the caller is done with it.
type Conn interface {
	Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Release()
}

// Acquirer hands out connections.
type Acquirer interface {
	Acquire(ctx context.Context) (Conn, error)
}

// PoolAcquirer checks connections out of a pgx pool.
type PoolAcquirer struct {
	pool *pgxpool.Pool
}

// NewPoolAcquirer wraps pool.
func NewPoolAcquirer(pool *pgxpool.Pool) *PoolAcquirer {
	return &PoolAcquirer{pool: pool}
}

// Acquire checks out one connection from the pool.
func (a *PoolAcquirer) Acquire(ctx context.Context) (Conn, error) {
	c, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pooledConn{conn: c}, nil
}

type pooledConn struct {
	conn *pgxpool.Conn
}

func (c *pooledConn) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return c.conn.Conn().Prepare(ctx, name, sql)
}

func (c *pooledConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.conn.Exec(ctx, sql, args...)
}

func (c *pooledConn) Release() {
	c.conn.Release()
}

// ErrorMessage returns the server's message for a Postgres error and the
// plain error text for anything else.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	return err.Error()
}
