package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssign_ExactFitDrainsSeat(t *testing.T) {
	db, floorID := newTestStore(t)
	seatID := addSeat(t, db, floorID, 3)
	g := addGuest(t, db, "Trio", 2)

	a, err := NewAssignmentRepo(db).Assign(context.Background(), g, seatID)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Remaining)
	assert.Nil(t, a.PreviousSeatID)
	assert.Equal(t, 0, occupation(t, NewOccupancyRepo(db), seatID).Remaining)
}

func TestAssign_OneShortIsRejected(t *testing.T) {
	db, floorID := newTestStore(t)
	ctx := context.Background()
	seatID := addSeat(t, db, floorID, 2)
	g := addGuest(t, db, "Trio", 2)
	occ := NewOccupancyRepo(db)
	before, err := occ.Snapshot(ctx)
	require.NoError(t, err)

	_, err = NewAssignmentRepo(db).Assign(ctx, g, seatID)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	var cerr *CapacityError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 2, cerr.Remaining)
	assert.Equal(t, 3, cerr.Required)

	guest, err := NewGuestRepo(db).GetByID(ctx, g)
	require.NoError(t, err)
	assert.Nil(t, guest.SeatID)
	after, err := occ.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAssign_Scenario(t *testing.T) {
	db, floorID := newTestStore(t)
	ctx := context.Background()
	seatID := addSeat(t, db, floorID, 4)
	a := addGuest(t, db, "A", 1)
	b := addGuest(t, db, "B", 2)
	c := addGuest(t, db, "C", 1)
	guard := NewAssignmentRepo(db)
	occ := NewOccupancyRepo(db)

	_, err := guard.Assign(ctx, a, seatID)
	require.NoError(t, err)
	assert.Equal(t, 2, occupation(t, occ, seatID).Remaining)

	_, err = guard.Assign(ctx, b, seatID)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 2, occupation(t, occ, seatID).Remaining)

	_, err = guard.Assign(ctx, c, seatID)
	require.NoError(t, err)
	o := occupation(t, occ, seatID)
	assert.Equal(t, 0, o.Remaining)
	assert.Equal(t, 4, o.Occupied)
	assert.Equal(t, []int64{a, c}, o.GuestIDs)
}

func TestAssign_MoveFreesOldSeat(t *testing.T) {
	db, floorID := newTestStore(t)
	ctx := context.Background()
	seatA := addSeat(t, db, floorID, 6)
	seatB := addSeat(t, db, floorID, 6)
	g := addGuest(t, db, "Mover", 2)
	guard := NewAssignmentRepo(db)
	occ := NewOccupancyRepo(db)

	_, err := guard.Assign(ctx, g, seatA)
	require.NoError(t, err)
	assert.Equal(t, 3, occupation(t, occ, seatA).Remaining)

	moved, err := guard.Assign(ctx, g, seatB)
	require.NoError(t, err)
	require.NotNil(t, moved.PreviousSeatID)
	assert.Equal(t, seatA, *moved.PreviousSeatID)
	assert.Equal(t, 6, occupation(t, occ, seatA).Remaining)
	assert.Equal(t, 3, occupation(t, occ, seatB).Remaining)
}

func TestAssign_SameSeatIsNoop(t *testing.T) {
	db, floorID := newTestStore(t)
	ctx := context.Background()
	seatID := addSeat(t, db, floorID, 2)
	g := addGuest(t, db, "Pair", 1)
	guard := NewAssignmentRepo(db)

	_, err := guard.Assign(ctx, g, seatID)
	require.NoError(t, err)
	again, err := guard.Assign(ctx, g, seatID)
	require.NoError(t, err, "a full seat still accepts the guest already sitting there")
	assert.Equal(t, 0, again.Remaining)
}

func TestAssign_Missing(t *testing.T) {
	db, floorID := newTestStore(t)
	ctx := context.Background()
	seatID := addSeat(t, db, floorID, 2)
	g := addGuest(t, db, "Solo", 0)
	guard := NewAssignmentRepo(db)

	_, err := guard.Assign(ctx, g, 999)
	assert.ErrorIs(t, err, ErrSeatNotFound)
	_, err = guard.Assign(ctx, 999, seatID)
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestUnassign(t *testing.T) {
	db, floorID := newTestStore(t)
	ctx := context.Background()
	seatID := addSeat(t, db, floorID, 2)
	g := addGuest(t, db, "Solo", 0)
	guard := NewAssignmentRepo(db)
	_, err := guard.Assign(ctx, g, seatID)
	require.NoError(t, err)

	require.NoError(t, guard.Unassign(ctx, g))
	assert.Equal(t, 2, occupation(t, NewOccupancyRepo(db), seatID).Remaining)
	require.NoError(t, guard.Unassign(ctx, g), "unassigning twice is fine")
	assert.ErrorIs(t, guard.Unassign(ctx, 999), ErrGuestNotFound)
}
