package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laboura/internal/models"
)

func newTestSnapshotStore(t *testing.T) *SnapshotStore {
	t.Helper()
	return NewSnapshotStore(filepath.Join(t.TempDir(), "data.json"), zerolog.Nop())
}

func TestSnapshotStoreLoad(t *testing.T) {
	t.Run("missing file is a normal empty start", func(t *testing.T) {
		st := newTestSnapshotStore(t)
		totals, current, sessions, err := st.Load()
		require.NoError(t, err)
		assert.Empty(t, totals)
		assert.Nil(t, current)
		assert.Empty(t, sessions)
	})

	t.Run("malformed file falls back to empty", func(t *testing.T) {
		st := newTestSnapshotStore(t)
		require.NoError(t, os.WriteFile(st.path, []byte("{not json"), 0644))

		totals, current, sessions, err := st.Load()
		require.NoError(t, err)
		assert.Empty(t, totals)
		assert.Nil(t, current)
		assert.Empty(t, sessions)
	})

	t.Run("missing session ids are backfilled", func(t *testing.T) {
		st := newTestSnapshotStore(t)
		doc := `{"sections":{},"current":null,"sessions":[
			{"section":"Work","sub":"emails","start_ts":100,"end_ts":200,"seconds":100}]}`
		require.NoError(t, os.WriteFile(st.path, []byte(doc), 0644))

		_, _, sessions, err := st.Load()
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.NotEmpty(t, sessions[0].ID)
	})

	t.Run("totals are rebuilt, not trusted from the file", func(t *testing.T) {
		st := newTestSnapshotStore(t)
		doc := `{
			"sections": {"Work": {"emails": 99999}},
			"current": null,
			"sessions": [
				{"id":"a","section":"Work","sub":"emails","start_ts":100,"end_ts":200,"seconds":100}
			]}`
		require.NoError(t, os.WriteFile(st.path, []byte(doc), 0644))

		totals, _, _, err := st.Load()
		require.NoError(t, err)
		assert.Equal(t, 100, totals["Work"]["emails"])
	})
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	st := newTestSnapshotStore(t)

	sessions := []models.Session{
		{ID: "a", Section: "Work", Sub: "emails", StartTS: 100, EndTS: 200,
			StartISO: "1970-01-01 01:01:40", EndISO: "1970-01-01 01:03:20", Seconds: 100},
		{ID: "b", Section: "Study", Sub: "go", StartTS: 300, EndTS: 450,
			StartISO: "1970-01-01 01:05:00", EndISO: "1970-01-01 01:07:30", Seconds: 150},
	}
	current := &models.CurrentSession{Section: "Work", Sub: "emails", StartTS: 500}

	require.NoError(t, st.Save(models.RecalcTotals(sessions), current, sessions))

	totals, gotCurrent, gotSessions, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, sessions, gotSessions)
	assert.Equal(t, current, gotCurrent)
	assert.Equal(t, models.RecalcTotals(sessions), totals)
}

func TestSnapshotStoreSave(t *testing.T) {
	t.Run("writes the redundant sections block", func(t *testing.T) {
		st := newTestSnapshotStore(t)
		sessions := []models.Session{
			{ID: "a", Section: "Work", Sub: "emails", StartTS: 100, EndTS: 200, Seconds: 100},
		}
		require.NoError(t, st.Save(models.RecalcTotals(sessions), nil, sessions))

		raw, err := os.ReadFile(st.path)
		require.NoError(t, err)
		var doc map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Contains(t, doc, "sections")
		assert.Contains(t, doc, "current")
		assert.Contains(t, doc, "sessions")
	})

	t.Run("nil session list serializes as empty array", func(t *testing.T) {
		st := newTestSnapshotStore(t)
		require.NoError(t, st.Save(nil, nil, nil))

		raw, err := os.ReadFile(st.path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"sessions": []`)
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		st := newTestSnapshotStore(t)
		require.NoError(t, st.Save(nil, nil, nil))

		entries, err := os.ReadDir(filepath.Dir(st.path))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, filepath.Base(st.path), entries[0].Name())
	})
}
