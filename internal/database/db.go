package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"net/url"
	"strings"
	"time"

	"modernc.org/sqlite"
)

// FoldFunc is the SQL function lowering text with Unicode case rules.
// SQLite's own lower() and LIKE fold ASCII only, which misses names such
// as "Özlem".
const FoldFunc = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(FoldFunc, 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case string:
			return strings.ToLower(v), nil
		case []byte:
			return strings.ToLower(string(v)), nil
		default:
			return v, nil
		}
	})
}

// Open opens (or creates) the SQLite store at path and verifies the
// connection.  Foreign keys are enforced so that deleting a seat clears
// the seat reference of its guests.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	dsn := fmt.Sprintf("file:%s?%s", path, q.Encode())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One file, one writer: a single connection serializes every statement
	// and keeps transactions from interleaving.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
