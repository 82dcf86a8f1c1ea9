package repository

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seatplan/internal/database"
	"github.com/iliyamo/seatplan/internal/model"
)

// pngBytes encodes a small solid image.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 180, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.seatplan"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newTestStore returns an initialized store with a single floor.
func newTestStore(t *testing.T) (*sql.DB, int64) {
	t.Helper()
	db := openTestDB(t)
	report, err := NewStoreRepo(db).Initialize(context.Background(), InitRequest{
		Name:   "Test Gala",
		Floors: []FloorImport{{Level: 0, Name: "Ground", Image: pngBytes(t, 32, 16)}},
	})
	require.NoError(t, err)
	require.Len(t, report.Imported, 1)
	return db, report.Imported[0].ID
}

func addSeat(t *testing.T, db *sql.DB, floorID int64, capacity int) int64 {
	t.Helper()
	s := &model.Seat{Capacity: capacity, FloorID: floorID, Bounds: model.Bounds{Lat1: 0, Lng1: 0, Lat2: 40, Lng2: 40}}
	require.NoError(t, NewSeatRepo(db).Create(context.Background(), s))
	return s.ID
}

func addGuest(t *testing.T, db *sql.DB, first string, additional int) int64 {
	t.Helper()
	g := &model.Guest{FirstName: first, LastName: "Tester", AdditionalGuests: additional}
	require.NoError(t, NewGuestRepo(db).Create(context.Background(), g))
	return g.ID
}
