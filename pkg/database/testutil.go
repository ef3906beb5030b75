package database

import (
	"context"
	"sync/atomic"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

// MockConn is a pgxmock-backed Conn that counts releases.
// Set expectations on the embedded pool and call ExpectationsWereMet at the end.
type MockConn struct {
	pgxmock.PgxPoolIface
	released atomic.Int32
}

// NewMockConn creates a MockConn.
func NewMockConn() (*MockConn, error) {
	pool, err := pgxmock.NewPool()
	if err != nil {
		return nil, err
	}
	return &MockConn{PgxPoolIface: pool}, nil
}

// Release records that the connection was handed back.
func (c *MockConn) Release() {
	c.released.Add(1)
}

// Released returns how many times Release was called.
func (c *MockConn) Released() int {
	return int(c.released.Load())
}

// MockAcquirer returns Conn, or Err when set, and counts acquisitions.
type MockAcquirer struct {
	Conn Conn
	Err  error

	acquired atomic.Int32
}

// Acquire implements Acquirer.
func (a *MockAcquirer) Acquire(_ context.Context) (Conn, error) {
	a.acquired.Add(1)
	if a.Err != nil {
		return nil, a.Err
	}
	return a.Conn, nil
}

// Acquired returns how many times Acquire was called.
func (a *MockAcquirer) Acquired() int {
	return int(a.acquired.Load())
}
