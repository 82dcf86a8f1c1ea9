// Package repository holds the data access layer of a seating store:
// floors, seats, guests, the occupancy aggregator and the assignment
// guard.  The sentinel values below let higher layers such as handlers
// tell failure scenarios apart with errors.Is.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrFloorNotFound is returned when a floor lookup yields no rows.
var ErrFloorNotFound = errors.New("floor not found")

// ErrSeatNotFound is returned when a seat does not exist, including when
// the assignment guard cannot find the target seat in its snapshot.
var ErrSeatNotFound = errors.New("seat not found")

// ErrGuestNotFound is returned when a guest lookup yields no rows.
var ErrGuestNotFound = errors.New("guest not found")

// ErrCapacityExceeded is returned by the assignment guard when the target
// seat has fewer remaining units than the guest's party needs.  It is a
// business rule rejection; nothing is written.
var ErrCapacityExceeded = errors.New("seat capacity exceeded")

// ErrConflict is returned when a write collides with existing state, for
// example a duplicate floor level or an already initialized store.
var ErrConflict = errors.New("conflict")

// ErrInvalidInput is returned when a value is rejected before it reaches
// the database.
var ErrInvalidInput = errors.New("invalid input")

// querier is satisfied by both *sql.DB and *sql.Tx so the same query code
// runs inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
