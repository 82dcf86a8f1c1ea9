package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seatplan/internal/model"
)

func names(gs []model.Guest) []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		out = append(out, g.FirstName+" "+g.LastName)
	}
	return out
}

func TestGuestSearch_PrefixCaseInsensitive(t *testing.T) {
	db, _ := newTestStore(t)
	ctx := context.Background()
	guests := NewGuestRepo(db)
	for _, g := range []model.Guest{
		{FirstName: "Anna", LastName: "Berg"},
		{FirstName: "Bernd", LastName: "Anders"},
		{FirstName: "Carla", LastName: "Hanna"},
		{FirstName: "50%", LastName: "Off"},
	} {
		g := g
		require.NoError(t, guests.Create(ctx, &g))
	}

	got, err := guests.Search(ctx, "an")
	require.NoError(t, err)
	assert.Equal(t, []string{"Anna Berg", "Bernd Anders"}, names(got))

	got, err = guests.Search(ctx, "BER")
	require.NoError(t, err)
	assert.Equal(t, []string{"Anna Berg", "Bernd Anders"}, names(got))

	got, err = guests.Search(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, got, "wildcards in the term match literally")

	got, err = guests.Search(ctx, "50%")
	require.NoError(t, err)
	assert.Equal(t, []string{"50% Off"}, names(got))

	got, err = guests.Search(ctx, "' OR 1=1 --")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = guests.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestGuestListPage(t *testing.T) {
	db, _ := newTestStore(t)
	ctx := context.Background()
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		addGuest(t, db, n, 0)
	}
	guests := NewGuestRepo(db)

	page, err := guests.ListPage(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "C", page[0].FirstName)
	assert.Equal(t, "D", page[1].FirstName)

	_, err = guests.ListPage(ctx, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	n, err := guests.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestGuestCreate_Validation(t *testing.T) {
	db, _ := newTestStore(t)
	guests := NewGuestRepo(db)
	ctx := context.Background()

	assert.ErrorIs(t, guests.Create(ctx, &model.Guest{}), ErrInvalidInput)
	assert.ErrorIs(t, guests.Create(ctx, &model.Guest{FirstName: "X", AdditionalGuests: -1}), ErrInvalidInput)
}

func TestGuestCheckIn(t *testing.T) {
	db, _ := newTestStore(t)
	ctx := context.Background()
	guests := NewGuestRepo(db)
	id := addGuest(t, db, "Ada", 3)

	on, err := guests.ToggleCheckedIn(ctx, id)
	require.NoError(t, err)
	assert.True(t, on)
	on, err = guests.ToggleCheckedIn(ctx, id)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, guests.UpdateCheckedInCompanions(ctx, id, 2))
	g, err := guests.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, g.CompanionsCheckedIn)

	_, err = guests.ToggleCheckedIn(ctx, 404)
	assert.ErrorIs(t, err, ErrGuestNotFound)
	assert.ErrorIs(t, guests.UpdateCheckedInCompanions(ctx, 404, 1), ErrGuestNotFound)
}

func TestGuestDelete(t *testing.T) {
	db, _ := newTestStore(t)
	ctx := context.Background()
	id := addGuest(t, db, "Ada", 0)
	guests := NewGuestRepo(db)

	require.NoError(t, guests.Delete(ctx, id))
	_, err := guests.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrGuestNotFound)
	assert.ErrorIs(t, guests.Delete(ctx, id), ErrGuestNotFound)
}

func TestGuestSearch_UnicodeCase(t *testing.T) {
	db, _ := newTestStore(t)
	repo := NewGuestRepo(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Guest{FirstName: "Özlem", LastName: "Überall"}))
	require.NoError(t, repo.Create(ctx, &model.Guest{FirstName: "Oskar", LastName: "Ulm"}))

	for _, term := range []string{"özl", "ÖZL", "über", "ÜBERALL"} {
		got, err := repo.Search(ctx, term)
		require.NoError(t, err)
		require.Len(t, got, 1, term)
		assert.Equal(t, "Özlem", got[0].FirstName, term)
	}

	got, err := repo.Search(ctx, "o")
	require.NoError(t, err)
	assert.Len(t, got, 1, "plain o does not match Ö")
}
