package repository

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is wrapped by every Get that finds no row.
var ErrNotFound = errors.New("not found")

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableIntToValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableString returns nil (SQL NULL) for the empty string.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func notFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
