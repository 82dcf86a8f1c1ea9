package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/seatplan/internal/database"
	"github.com/iliyamo/seatplan/internal/model"
)

// GuestRepo provides CRUD operations for guests (participant rows).
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a new GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

const guestColumns = `id, first_name, last_name, guests_amount, guests_checkedin, checkedin, seat_id`

func scanGuest(sc interface{ Scan(...any) error }, g *model.Guest) error {
	var seatID sql.NullInt64
	if err := sc.Scan(&g.ID, &g.FirstName, &g.LastName, &g.AdditionalGuests, &g.CompanionsCheckedIn, &g.CheckedIn, &seatID); err != nil {
		return err
	}
	g.SeatID = nil
	if seatID.Valid {
		id := seatID.Int64
		g.SeatID = &id
	}
	return nil
}

func collectGuests(rows *sql.Rows) ([]model.Guest, error) {
	defer rows.Close()
	result := []model.Guest{}
	for rows.Next() {
		var g model.Guest
		if err := scanGuest(rows, &g); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts a new, unassigned and not checked-in guest.  On success
// the guest's ID is populated.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	g.FirstName = strings.TrimSpace(g.FirstName)
	g.LastName = strings.TrimSpace(g.LastName)
	if g.FirstName == "" && g.LastName == "" {
		return fmt.Errorf("%w: a guest needs a first or last name", ErrInvalidInput)
	}
	if g.AdditionalGuests < 0 {
		return fmt.Errorf("%w: additional guests must not be negative", ErrInvalidInput)
	}
	const q = `INSERT INTO participant (first_name, last_name, guests_amount, guests_checkedin, checkedin)
	           VALUES (?, ?, ?, 0, 0)`
	res, err := r.db.ExecContext(ctx, q, g.FirstName, g.LastName, g.AdditionalGuests)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = id
	g.CompanionsCheckedIn = 0
	g.CheckedIn = false
	g.SeatID = nil
	return nil
}

// GetByID retrieves a guest by id.
func (r *GuestRepo) GetByID(ctx context.Context, id int64) (*model.Guest, error) {
	return r.getByID(ctx, r.db, id)
}

func (r *GuestRepo) getByID(ctx context.Context, q querier, id int64) (*model.Guest, error) {
	var g model.Guest
	err := scanGuest(q.QueryRowContext(ctx, `SELECT `+guestColumns+` FROM participant WHERE id = ?`, id), &g)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}

// List returns every guest ordered by id.
func (r *GuestRepo) List(ctx context.Context) ([]model.Guest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+guestColumns+` FROM participant ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectGuests(rows)
}

// ListPage returns at most limit guests starting at offset, ordered by id.
func (r *GuestRepo) ListPage(ctx context.Context, limit, offset int) ([]model.Guest, error) {
	if limit <= 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit must be positive and offset not negative", ErrInvalidInput)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+guestColumns+` FROM participant ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectGuests(rows)
}

// Search returns guests whose first or last name starts with term, case
// insensitively under Unicode rules.  The term is bound as a parameter; LIKE wildcards inside
// it are escaped so they match literally.
func (r *GuestRepo) Search(ctx context.Context, term string) ([]model.Guest, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.List(ctx)
	}
	pattern := escapeLike(strings.ToLower(term)) + "%"
	const q = `SELECT ` + guestColumns + ` FROM participant
	           WHERE ` + database.FoldFunc + `(first_name) LIKE ? ESCAPE '\'
	              OR ` + database.FoldFunc + `(last_name) LIKE ? ESCAPE '\'
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return collectGuests(rows)
}

// Count returns the number of guests in the store.
func (r *GuestRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM participant`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes a guest, which also frees the capacity they held.
func (r *GuestRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM participant WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// ToggleCheckedIn flips the checked-in flag of the primary guest and
// returns the new value.
func (r *GuestRepo) ToggleCheckedIn(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE participant SET checkedin = 1 - checkedin WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, ErrGuestNotFound
	}
	var on bool
	if err := r.db.QueryRowContext(ctx, `SELECT checkedin FROM participant WHERE id = ?`, id).Scan(&on); err != nil {
		return false, err
	}
	return on, nil
}

// UpdateCheckedInCompanions stores the number of companions present.  The
// value is written as given; callers clamp it to [0, additional guests].
func (r *GuestRepo) UpdateCheckedInCompanions(ctx context.Context, id int64, n int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE participant SET guests_checkedin = ? WHERE id = ?`, n, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// UpdateSeat writes the seat reference of a guest without any capacity
// check; nil clears it.  Assignments that must respect capacity go
// through AssignmentRepo.
func (r *GuestRepo) UpdateSeat(ctx context.Context, id int64, seatID *int64) error {
	return r.updateSeat(ctx, r.db, id, seatID)
}

func (r *GuestRepo) updateSeat(ctx context.Context, q querier, id int64, seatID *int64) error {
	var ref sql.NullInt64
	if seatID != nil {
		ref = sql.NullInt64{Int64: *seatID, Valid: true}
	}
	res, err := q.ExecContext(ctx, `UPDATE participant SET seat_id = ? WHERE id = ?`, ref, id)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return ErrSeatNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// escapeLike escapes the LIKE metacharacters of s using '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
