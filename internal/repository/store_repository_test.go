package repository

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/seatplan/internal/model"
	"github.com/iliyamo/seatplan/internal/utils"
)

func TestInitialize_ImportsFloorsAndMarkers(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	store := NewStoreRepo(db)

	assert.False(t, store.IsValid(ctx), "an empty file is not a valid store")
	assert.False(t, store.IsVersionCurrent(ctx))

	report, err := store.Initialize(ctx, InitRequest{
		Name: "Summer Gala",
		Floors: []FloorImport{
			{Level: 1, Name: "Gallery", Image: pngBytes(t, 64, 48)},
			{Level: 0, Name: "Ground", Image: pngBytes(t, 8, 8)},
		},
	})
	require.NoError(t, err)
	require.Len(t, report.Imported, 2)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, 64, report.Imported[0].Width)
	assert.Equal(t, 48, report.Imported[0].Height)

	assert.True(t, store.IsValid(ctx))
	assert.True(t, store.IsVersionCurrent(ctx))
	assert.Equal(t, "Summer Gala", store.Name(ctx))
}

func TestInitialize_SkipsBrokenFloorsButCommits(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	report, err := NewStoreRepo(db).Initialize(ctx, InitRequest{
		Name: "Gala",
		Floors: []FloorImport{
			{Level: 0, Name: "Ground", Image: pngBytes(t, 8, 8)},
			{Level: 1, Name: "Broken", Image: []byte("not an image")},
			{Level: 0, Name: "Same level", Image: pngBytes(t, 8, 8)},
		},
	})
	require.NoError(t, err)
	require.Len(t, report.Imported, 1)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, "Broken", report.Skipped[0].Name)
	assert.Equal(t, "Same level", report.Skipped[1].Name)

	floors, err := NewFloorRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, floors, 1)
	assert.Equal(t, "Ground", floors[0].Name)
}

func TestInitialize_Twice(t *testing.T) {
	db, _ := newTestStore(t)

	_, err := NewStoreRepo(db).Initialize(context.Background(), InitRequest{Name: "Again"})
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestInitialize_RequiresName(t *testing.T) {
	_, err := NewStoreRepo(openTestDB(t)).Initialize(context.Background(), InitRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIsVersionCurrent_OtherVersion(t *testing.T) {
	db, _ := newTestStore(t)
	ctx := context.Background()
	_, err := db.ExecContext(ctx, `UPDATE info SET data = '2' WHERE key = ?`, InfoVersion)
	require.NoError(t, err)

	store := NewStoreRepo(db)
	assert.False(t, store.IsVersionCurrent(ctx))
	assert.True(t, store.IsValid(ctx), "a newer store is still a store")
}

func TestPassphraseHash(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	store := NewStoreRepo(db)
	_, err := store.Initialize(ctx, InitRequest{Name: "Gala", UsherPassphrase: "door", BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	hash, ok := store.PassphraseHash(ctx, model.RoleUsher)
	require.True(t, ok)
	assert.True(t, utils.VerifyPassphrase(hash, "door"))

	_, ok = store.PassphraseHash(ctx, model.RoleEditor)
	assert.False(t, ok)
	_, ok = store.PassphraseHash(ctx, "GUEST")
	assert.False(t, ok)
}

func TestIsValid_FreshFileIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	db := openTestDB(t)
	store := NewStoreRepo(db)
	assert.False(t, store.IsValid(context.Background()))

	_, err := store.Initialize(context.Background(), InitRequest{Name: "Gala"})
	require.NoError(t, err)
	assert.True(t, store.IsValid(context.Background()))
	assert.NotContains(t, buf.String(), "failed to read info")
}
