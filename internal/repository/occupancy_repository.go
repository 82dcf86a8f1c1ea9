package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/seatplan/internal/model"
)

// OccupancyRepo aggregates seat capacity against assigned guests.
type OccupancyRepo struct {
	db *sql.DB
}

// NewOccupancyRepo returns a new OccupancyRepo bound to the given database.
func NewOccupancyRepo(db *sql.DB) *OccupancyRepo { return &OccupancyRepo{db: db} }

const occupancyQuery = `SELECT s.id, s.capacity, p.id, p.guests_amount
                        FROM seat s
                        LEFT JOIN participant p ON p.seat_id = s.id`

// Snapshot computes the occupancy of every seat.  The result is valid only
// for the instant of the query; callers recompute it after any change.
func (r *OccupancyRepo) Snapshot(ctx context.Context) (model.OccupancySnapshot, error) {
	return snapshot(ctx, r.db, occupancyQuery+` ORDER BY s.id, p.id`)
}

// SnapshotForFloor computes the occupancy of the seats on one floor.
func (r *OccupancyRepo) SnapshotForFloor(ctx context.Context, floorID int64) (model.OccupancySnapshot, error) {
	return snapshot(ctx, r.db, occupancyQuery+` WHERE s.floor_id = ? ORDER BY s.id, p.id`, floorID)
}

// snapshot runs an occupancy query and reduces its rows per seat.  Rows
// must arrive grouped by seat id.
func snapshot(ctx context.Context, q querier, query string, args ...any) (model.OccupancySnapshot, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := model.OccupancySnapshot{}
	for rows.Next() {
		var (
			seatID, capacity int64
			guestID, amount  sql.NullInt64
		)
		if err := rows.Scan(&seatID, &capacity, &guestID, &amount); err != nil {
			return nil, err
		}
		n := len(result)
		if n == 0 || result[n-1].SeatID != seatID {
			result = append(result, model.SeatOccupation{
				SeatID:    seatID,
				Capacity:  int(capacity),
				Remaining: int(capacity),
				GuestIDs:  []int64{},
			})
			n++
		}
		if !guestID.Valid {
			continue
		}
		o := &result[n-1]
		o.Remaining -= int(amount.Int64) + 1
		o.GuestIDs = append(o.GuestIDs, guestID.Int64)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Occupied = result[i].Capacity - result[i].Remaining
	}
	return result, nil
}
