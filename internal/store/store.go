package store

import (
	"fmt"

	"github.com/rs/zerolog"

	"laboura/internal/models"
)

// Store persists the full ledger snapshot: derived totals, the optional
// in-progress session and the session history. Load never fails on a
// malformed snapshot; it warns and returns an empty state instead.
type Store interface {
	Load() (models.Totals, *models.CurrentSession, []models.Session, error)
	Save(totals models.Totals, current *models.CurrentSession, sessions []models.Session) error
}

// Supported backend identifiers.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// New builds a store for the given backend. path is the snapshot file for
// the json backend and the database file for sqlite.
func New(backend, path string, log zerolog.Logger) (Store, error) {
	switch backend {
	case BackendJSON:
		return NewSnapshotStore(path, log), nil
	case BackendSQLite:
		return NewSQLiteStore(path, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
