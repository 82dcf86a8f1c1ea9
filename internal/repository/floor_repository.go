package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/seatplan/internal/model"
)

// FloorRepo provides methods to work with floors in the database.
type FloorRepo struct {
	db *sql.DB
}

// NewFloorRepo constructs a FloorRepo with the given DB handle.
func NewFloorRepo(db *sql.DB) *FloorRepo {
	return &FloorRepo{db: db}
}

// Create inserts a floor including its image.  On success the floor's ID
// is populated.  A duplicate level yields ErrConflict.
func (r *FloorRepo) Create(ctx context.Context, f *model.Floor) error {
	return r.create(ctx, r.db, f)
}

func (r *FloorRepo) create(ctx context.Context, q querier, f *model.Floor) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: floor name is required", ErrInvalidInput)
	}
	if len(f.Image) == 0 {
		return fmt.Errorf("%w: floor image is empty", ErrInvalidInput)
	}
	res, err := q.ExecContext(ctx, `INSERT INTO floor (level, name, image) VALUES (?, ?, ?)`, f.Level, f.Name, f.Image)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: floor level %d already exists", ErrConflict, f.Level)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

// List returns every floor ordered by level.  Images are not loaded.
func (r *FloorRepo) List(ctx context.Context) ([]model.Floor, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, level, name FROM floor ORDER BY level ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Floor{}
	for rows.Next() {
		var f model.Floor
		if err := rows.Scan(&f.ID, &f.Level, &f.Name); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a floor without its image.
func (r *FloorRepo) GetByID(ctx context.Context, id int64) (*model.Floor, error) {
	var f model.Floor
	err := r.db.QueryRowContext(ctx, `SELECT id, level, name FROM floor WHERE id = ?`, id).
		Scan(&f.ID, &f.Level, &f.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFloorNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Image returns the raw schematic bytes of a floor, exactly as imported.
func (r *FloorRepo) Image(ctx context.Context, id int64) ([]byte, error) {
	var img []byte
	err := r.db.QueryRowContext(ctx, `SELECT image FROM floor WHERE id = ?`, id).Scan(&img)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFloorNotFound
		}
		return nil, err
	}
	return img, nil
}

// Update changes the level and name of a floor.  Seats and guests are not
// affected.
func (r *FloorRepo) Update(ctx context.Context, id int64, level int, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: floor name is required", ErrInvalidInput)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE floor SET level = ?, name = ? WHERE id = ?`, level, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: floor level %d already exists", ErrConflict, level)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFloorNotFound
	}
	return nil
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
