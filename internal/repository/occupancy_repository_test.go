package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seatplan/internal/model"
)

func occupation(t *testing.T, repo *OccupancyRepo, seatID int64) model.SeatOccupation {
	t.Helper()
	snap, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	o, ok := snap.Find(seatID)
	require.True(t, ok, "seat %d missing from snapshot", seatID)
	return o
}

func TestSnapshot_EmptySeatsHaveFullCapacity(t *testing.T) {
	db, floorID := newTestStore(t)
	a := addSeat(t, db, floorID, 6)
	b := addSeat(t, db, floorID, 0)

	snap, err := NewOccupancyRepo(db).Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap, 2)
	assert.Equal(t, model.SeatOccupation{SeatID: a, Capacity: 6, Remaining: 6, Occupied: 0, GuestIDs: []int64{}}, snap[0])
	assert.Equal(t, model.SeatOccupation{SeatID: b, Capacity: 0, Remaining: 0, Occupied: 0, GuestIDs: []int64{}}, snap[1])
}

func TestSnapshot_SumsParties(t *testing.T) {
	db, floorID := newTestStore(t)
	ctx := context.Background()
	seatID := addSeat(t, db, floorID, 10)
	g1 := addGuest(t, db, "One", 0)
	g2 := addGuest(t, db, "Two", 3)
	guests := NewGuestRepo(db)
	require.NoError(t, guests.UpdateSeat(ctx, g1, &seatID))
	require.NoError(t, guests.UpdateSeat(ctx, g2, &seatID))

	o := occupation(t, NewOccupancyRepo(db), seatID)
	assert.Equal(t, 10-(1+4), o.Remaining)
	assert.Equal(t, 5, o.Occupied)
	assert.ElementsMatch(t, []int64{g1, g2}, o.GuestIDs)
}

func TestSnapshot_UnguardedWriteCanGoNegative(t *testing.T) {
	db, floorID := newTestStore(t)
	ctx := context.Background()
	seatID := addSeat(t, db, floorID, 1)
	g := addGuest(t, db, "Big", 2)
	require.NoError(t, NewGuestRepo(db).UpdateSeat(ctx, g, &seatID))

	o := occupation(t, NewOccupancyRepo(db), seatID)
	assert.Equal(t, -2, o.Remaining, "the aggregator reports what is stored")
}

func TestSnapshotForFloor(t *testing.T) {
	db, ground := newTestStore(t)
	ctx := context.Background()
	upper := &model.Floor{Level: 1, Name: "Upper", Image: pngBytes(t, 4, 4)}
	require.NoError(t, NewFloorRepo(db).Create(ctx, upper))
	addSeat(t, db, ground, 4)
	upperSeat := addSeat(t, db, upper.ID, 8)

	snap, err := NewOccupancyRepo(db).SnapshotForFloor(ctx, upper.ID)
	require.NoError(t, err)
	require.Len(t, snap, 1)
	assert.Equal(t, upperSeat, snap[0].SeatID)
}

func TestSnapshot_DeletedGuestLeavesSeat(t *testing.T) {
	db, floorID := newTestStore(t)
	ctx := context.Background()
	seatID := addSeat(t, db, floorID, 6)
	g := addGuest(t, db, "Gone", 2)
	_, err := NewAssignmentRepo(db).Assign(ctx, g, seatID)
	require.NoError(t, err)

	require.NoError(t, NewGuestRepo(db).Delete(ctx, g))

	o := occupation(t, NewOccupancyRepo(db), seatID)
	assert.Empty(t, o.GuestIDs)
	assert.Equal(t, 6, o.Remaining)
}
