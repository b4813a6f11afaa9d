package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"laboura/internal/models"
)

// snapshot is the on-disk JSON document. The sections block is redundant
// (always rebuilt from sessions on load) but is still written for human
// inspection and backward compatibility.
type snapshot struct {
	Sections models.Totals          `json:"sections"`
	Current  *models.CurrentSession `json:"current"`
	Sessions []models.Session       `json:"sessions"`
}

// SnapshotStore reads and writes the ledger snapshot as a single JSON file.
type SnapshotStore struct {
	path string
	log  zerolog.Logger
}

// NewSnapshotStore creates a store backed by the JSON file at path.
func NewSnapshotStore(path string, log zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{path: path, log: log.With().Str("component", "snapshot").Logger()}
}

// Load reads the snapshot. A missing file is a normal empty start. A file
// that cannot be parsed is logged and treated as empty rather than failing
// the caller. Sessions without an id get a freshly generated one, and the
// totals map is rebuilt from the sessions instead of trusting the file.
func (s *SnapshotStore) Load() (models.Totals, *models.CurrentSession, []models.Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("cannot read snapshot, starting empty")
		}
		return make(models.Totals), nil, nil, nil
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("malformed snapshot, starting empty")
		return make(models.Totals), nil, nil, nil
	}

	for i := range snap.Sessions {
		if snap.Sessions[i].ID == "" {
			snap.Sessions[i].ID = uuid.NewString()
		}
	}

	return models.RecalcTotals(snap.Sessions), snap.Current, snap.Sessions, nil
}

// Save writes the full snapshot, replacing the previous one. The document is
// written to a temporary file in the same directory and renamed into place
// so a crash mid-write cannot truncate the existing snapshot.
func (s *SnapshotStore) Save(totals models.Totals, current *models.CurrentSession, sessions []models.Session) error {
	if sessions == nil {
		sessions = []models.Session{}
	}
	if totals == nil {
		totals = make(models.Totals)
	}

	payload, err := json.MarshalIndent(snapshot{
		Sections: totals,
		Current:  current,
		Sessions: sessions,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
