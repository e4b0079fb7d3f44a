package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrStorage marks connection failures and damaged or unusable database files.
	ErrStorage = errors.New("storage fault")
	// ErrSchema marks failures creating or dropping tables.
	ErrSchema = errors.New("schema fault")
)

var storageCodes = map[sqlite3.ErrNo]bool{
	sqlite3.ErrCorrupt:  true,
	sqlite3.ErrNotADB:   true,
	sqlite3.ErrCantOpen: true,
	sqlite3.ErrIoErr:    true,
	sqlite3.ErrFull:     true,
	sqlite3.ErrReadonly: true,
	sqlite3.ErrPerm:     true,
}

// Classify wraps err with op and tags it with ErrStorage when SQLite reports
// that the file itself is unusable. It returns nil for a nil err.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && storageCodes[sqliteErr.Code] {
		return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
