package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparison
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/seatplan/internal/model"
)

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

const seatColumns = `id, name, capacity, floor_id, lat1, lng1, lat2, lng2`

func scanSeat(sc interface{ Scan(...any) error }, s *model.Seat) error {
	return sc.Scan(&s.ID, &s.Name, &s.Capacity, &s.FloorID, &s.Lat1, &s.Lng1, &s.Lat2, &s.Lng2)
}

// Create inserts a seat with explicit geometry and capacity.  When the name
// is empty the seat is named after the next free id.  Overlap with other
// seats is not checked.  On success the seat's ID is populated.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	if s.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		highest, err := r.HighestID(ctx)
		if err != nil {
			return err
		}
		s.Name = strconv.FormatInt(highest+1, 10)
	}
	const q = `INSERT INTO seat (name, capacity, floor_id, lat1, lng1, lat2, lng2)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Capacity, s.FloorID, s.Lat1, s.Lng1, s.Lat2, s.Lng2)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return ErrFloorNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// ListByFloor retrieves all seats of a floor ordered by id.
func (r *SeatRepo) ListByFloor(ctx context.Context, floorID int64) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+seatColumns+` FROM seat WHERE floor_id = ? ORDER BY id`, floorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Seat{}
	for rows.Next() {
		var s model.Seat
		if err := scanSeat(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id int64) (*model.Seat, error) {
	var s model.Seat
	err := scanSeat(r.db.QueryRowContext(ctx, `SELECT `+seatColumns+` FROM seat WHERE id = ?`, id), &s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Delete removes a seat.  Guests assigned to it become unassigned through
// the ON DELETE SET NULL reference.
func (r *SeatRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM seat WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// HighestID returns the largest seat id, or 0 for an empty store.
func (r *SeatRepo) HighestID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM seat`).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Count returns the number of seats in the store.
func (r *SeatRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM seat`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
