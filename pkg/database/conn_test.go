package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"pg error", &pgconn.PgError{Code: "42P01", Message: `relation "reviews" does not exist`}, `relation "reviews" does not exist`},
		{"wrapped pg error", fmt.Errorf("exec: %w", &pgconn.PgError{Message: "value out of range"}), "value out of range"},
		{"plain error", errors.New("conn closed"), "conn closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestMockConn_CountsReleases(t *testing.T) {
	conn, err := NewMockConn()
	require.NoError(t, err)

	var c Conn = conn
	c.Release()
	c.Release()

	assert.Equal(t, 2, conn.Released())
}

func TestMockAcquirer(t *testing.T) {
	conn, err := NewMockConn()
	require.NoError(t, err)

	ok := &MockAcquirer{Conn: conn}
	got, err := ok.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, conn, got)

	failing := &MockAcquirer{Err: errors.New("pool closed")}
	got, err = failing.Acquire(context.Background())
	assert.Nil(t, got)
	assert.EqualError(t, err, "pool closed")
	assert.Equal(t, 1, failing.Acquired())
}

func TestPoolAcquirer_ImplementsAcquirer(t *testing.T) {
	var _ Acquirer = NewPoolAcquirer(nil)
}
