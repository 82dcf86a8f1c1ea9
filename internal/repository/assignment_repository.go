package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// CapacityError carries the numbers behind an ErrCapacityExceeded
// rejection.
type CapacityError struct {
	SeatID    int64
	Remaining int
	Required  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("seat %d has %d units left, %d required: %v", e.SeatID, e.Remaining, e.Required, ErrCapacityExceeded)
}

// Is makes errors.Is(err, ErrCapacityExceeded) match.
func (e *CapacityError) Is(target error) bool { return target == ErrCapacityExceeded }

// Assignment describes a committed seat assignment.
type Assignment struct {
	GuestID        int64  `json:"guest_id"`
	SeatID         int64  `json:"seat_id"`
	PreviousSeatID *int64 `json:"previous_seat_id,omitempty"`
	Remaining      int    `json:"remaining"`
}

// AssignmentRepo binds guests to seats while enforcing seat capacity.
type AssignmentRepo struct {
	db     *sql.DB
	guests *GuestRepo
}

// NewAssignmentRepo returns a new AssignmentRepo bound to the given database.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db, guests: NewGuestRepo(db)}
}

// Assign seats a guest.  Inside one transaction it reloads the guest,
// takes a fresh occupancy snapshot and writes the seat reference only if
// the seat has room for the guest's whole party.  Moving a guest frees
// the old seat implicitly since occupancy is derived from the reference.
func (r *AssignmentRepo) Assign(ctx context.Context, guestID, seatID int64) (*Assignment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	guest, err := r.guests.getByID(ctx, tx, guestID)
	if err != nil {
		return nil, err
	}
	snap, err := snapshot(ctx, tx, occupancyQuery+` ORDER BY s.id, p.id`)
	if err != nil {
		return nil, err
	}
	occ, ok := snap.Find(seatID)
	if !ok {
		return nil, ErrSeatNotFound
	}

	result := &Assignment{GuestID: guest.ID, SeatID: seatID, PreviousSeatID: guest.SeatID, Remaining: occ.Remaining}
	if guest.SeatID != nil && *guest.SeatID == seatID {
		// Already there; the snapshot already accounts for this party.
		return result, nil
	}
	if occ.Remaining < guest.Party() {
		cerr := &CapacityError{SeatID: seatID, Remaining: occ.Remaining, Required: guest.Party()}
		log.Printf("seat-guard: reject guest %d: %v", guest.ID, cerr)
		return nil, cerr
	}
	if err := r.guests.updateSeat(ctx, tx, guest.ID, &seatID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	result.Remaining = occ.Remaining - guest.Party()
	return result, nil
}

// Unassign clears the seat reference of a guest.  Unassigning a guest
// without a seat is not an error.
func (r *AssignmentRepo) Unassign(ctx context.Context, guestID int64) error {
	return r.guests.updateSeat(ctx, r.db, guestID, nil)
}
