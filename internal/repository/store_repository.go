package repository

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/iliyamo/seatplan/internal/model"
	"github.com/iliyamo/seatplan/internal/utils"
)

// CurrentStoreVersion is the schema version written by Initialize.  Stores
// with any other version are refused so that a future migration step can
// be slotted in.
const CurrentStoreVersion = 1

// Keys of the info table.
const (
	InfoVersion    = 1
	InfoName       = 2
	InfoEditorHash = 3
	InfoUsherHash  = 4
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS info (
		key  INTEGER NOT NULL PRIMARY KEY,
		data TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS floor (
		id    INTEGER PRIMARY KEY,
		level INTEGER NOT NULL UNIQUE,
		name  TEXT NOT NULL,
		image BLOB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS seat (
		id       INTEGER PRIMARY KEY,
		name     VARCHAR(255) NOT NULL,
		capacity INTEGER NOT NULL CHECK (capacity >= 0),
		floor_id INTEGER NOT NULL REFERENCES floor (id),
		lat1     REAL NOT NULL,
		lat2     REAL NOT NULL,
		lng1     REAL NOT NULL,
		lng2     REAL NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS seat_floor_idx ON seat (floor_id)`,
	`CREATE TABLE IF NOT EXISTS participant (
		id               INTEGER PRIMARY KEY,
		first_name       VARCHAR(255) NOT NULL,
		last_name        VARCHAR(255) NOT NULL,
		guests_amount    INTEGER NOT NULL DEFAULT 0 CHECK (guests_amount >= 0),
		guests_checkedin INTEGER NOT NULL DEFAULT 0,
		checkedin        INTEGER NOT NULL DEFAULT 0,
		seat_id          INTEGER REFERENCES seat (id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS participant_seat_idx ON participant (seat_id)`,
}

// FloorImport is a schematic handed to Initialize.
type FloorImport struct {
	Level int
	Name  string
	Image []byte
}

// InitRequest describes a new store.  Passphrases are optional; when one
// is empty, sessions for that role are issued without a passphrase.
type InitRequest struct {
	Name             string
	Floors           []FloorImport
	EditorPassphrase string
	UsherPassphrase  string
	BcryptCost       int
}

// ImportedFloor reports a floor written by Initialize and the pixel size
// of its schematic.
type ImportedFloor struct {
	ID     int64  `json:"id"`
	Level  int    `json:"level"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SkippedFloor reports a floor Initialize left out and why.
type SkippedFloor struct {
	Level  int    `json:"level"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// InitReport is the outcome of Initialize.
type InitReport struct {
	Imported []ImportedFloor `json:"imported"`
	Skipped  []SkippedFloor  `json:"skipped"`
}

// StoreRepo manages the schema and the info markers of a store.
type StoreRepo struct {
	db *sql.DB
}

// NewStoreRepo constructs a StoreRepo with the given DB handle.
func NewStoreRepo(db *sql.DB) *StoreRepo { return &StoreRepo{db: db} }

// DB exposes the underlying handle for callers that run their own
// transactions.
func (r *StoreRepo) DB() *sql.DB { return r.db }

// Initialize creates every table, writes the version and name markers and
// imports the floors, all inside one transaction.  A floor whose image
// does not decode or whose insert fails is skipped and logged; the rest of
// the transaction still commits.  Any failure of the schema or info steps
// rolls everything back.
func (r *StoreRepo) Initialize(ctx context.Context, req InitRequest) (*InitReport, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: store name is required", ErrInvalidInput)
	}
	if r.IsValid(ctx) {
		return nil, fmt.Errorf("%w: store is already initialized", ErrConflict)
	}

	// Hash before the transaction; bcrypt is slow and needs no connection.
	hashes := map[int]string{}
	for key, plain := range map[int]string{InfoEditorHash: req.EditorPassphrase, InfoUsherHash: req.UsherPassphrase} {
		if plain == "" {
			continue
		}
		h, err := utils.HashPassphrase(plain, req.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash passphrase: %w", err)
		}
		hashes[key] = h
	}

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

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			log.Printf("store: schema creation failed, all changes were undone: %v", err)
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	const ins = `INSERT INTO info (key, data) VALUES (?, ?)`
	if _, err := tx.ExecContext(ctx, ins, InfoVersion, strconv.Itoa(CurrentStoreVersion)); err != nil {
		return nil, fmt.Errorf("write version: %w", err)
	}
	if _, err := tx.ExecContext(ctx, ins, InfoName, name); err != nil {
		return nil, fmt.Errorf("write name: %w", err)
	}
	for key, h := range hashes {
		if _, err := tx.ExecContext(ctx, ins, key, h); err != nil {
			return nil, fmt.Errorf("write passphrase: %w", err)
		}
	}

	report := &InitReport{Imported: []ImportedFloor{}, Skipped: []SkippedFloor{}}
	floors := NewFloorRepo(r.db)
	for _, f := range req.Floors {
		img, err := imaging.Decode(bytes.NewReader(f.Image))
		if err != nil {
			log.Printf("store: skip import of floor %q: %v", f.Name, err)
			report.Skipped = append(report.Skipped, SkippedFloor{Level: f.Level, Name: f.Name, Reason: "image could not be decoded"})
			continue
		}
		fl := &model.Floor{Level: f.Level, Name: f.Name, Image: f.Image}
		if err := floors.create(ctx, tx, fl); err != nil {
			log.Printf("store: skip import of floor %q: %v", f.Name, err)
			report.Skipped = append(report.Skipped, SkippedFloor{Level: f.Level, Name: f.Name, Reason: err.Error()})
			continue
		}
		b := img.Bounds()
		report.Imported = append(report.Imported, ImportedFloor{
			ID: fl.ID, Level: fl.Level, Name: fl.Name, Width: b.Dx(), Height: b.Dy(),
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return report, nil
}

// Info reads one info marker.  It fails soft: a missing table, a missing
// row or any other error is logged and reported as ok=false.
func (r *StoreRepo) Info(ctx context.Context, key int) (string, bool) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM info WHERE key = ?`, key).Scan(&data)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("store: failed to read info %d, is the store initialized? %v", key, err)
		}
		return "", false
	}
	return data, true
}

// Version returns the stored schema version.
func (r *StoreRepo) Version(ctx context.Context) (int, bool) {
	raw, ok := r.Info(ctx, InfoVersion)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("store: version marker %q is not a number", raw)
		return 0, false
	}
	return v, true
}

// IsVersionCurrent reports whether the store was written with the schema
// version this build understands.
func (r *StoreRepo) IsVersionCurrent(ctx context.Context) bool {
	v, ok := r.Version(ctx)
	return ok && v == CurrentStoreVersion
}

// IsValid reports whether both the version and the name marker can be read.
// A file without an info table, such as a freshly created one, is invalid
// without a diagnostic.
func (r *StoreRepo) IsValid(ctx context.Context) bool {
	if !r.hasInfoTable(ctx) {
		return false
	}
	if _, ok := r.Info(ctx, InfoVersion); !ok {
		return false
	}
	_, ok := r.Info(ctx, InfoName)
	return ok
}

func (r *StoreRepo) hasInfoTable(ctx context.Context) bool {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'info'`).Scan(&n)
	if err != nil {
		log.Printf("store: failed to inspect schema: %v", err)
		return false
	}
	return n > 0
}

// Name returns the human readable store name, or "" when unreadable.
func (r *StoreRepo) Name(ctx context.Context) string {
	name, _ := r.Info(ctx, InfoName)
	return name
}

// PassphraseHash returns the bcrypt hash protecting role, if one is set.
func (r *StoreRepo) PassphraseHash(ctx context.Context, role string) (string, bool) {
	switch role {
	case model.RoleEditor:
		return r.Info(ctx, InfoEditorHash)
	case model.RoleUsher:
		return r.Info(ctx, InfoUsherHash)
	}
	return "", false
}
