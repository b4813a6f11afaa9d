package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"laboura/internal/format"
	"laboura/internal/models"
	"laboura/internal/store"
)

// Ledger owns the authoritative session list, the derived totals map and
// the optional in-progress session. Every mutation validates fully before
// touching state, rebuilds the totals map from scratch and persists the new
// snapshot. It is not safe for concurrent use; callers wanting that must
// serialize access around the whole ledger.
type Ledger struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time

	sessions []models.Session
	totals   models.Totals
	current  *models.CurrentSession
	running  bool
}

// EditRequest carries the replacement fields for an existing session.
type EditRequest struct {
	Section string
	Sub     string
	Start   time.Time
	End     time.Time
}

// Open loads the persisted snapshot into a new ledger. A persisted current
// session is resumed: the ledger starts in the running state and elapsed
// time is derived from its start timestamp on demand.
func Open(st store.Store, log zerolog.Logger) (*Ledger, error) {
	totals, current, sessions, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	l := &Ledger{
		store:    st,
		log:      log.With().Str("component", "ledger").Logger(),
		now:      time.Now,
		sessions: sessions,
		totals:   totals,
		current:  current,
		running:  current != nil,
	}
	return l, nil
}

// Start begins tracking a new interval for the given section and
// subdivision. Fails with ErrAlreadyRunning if one is in progress and
// ErrInvalidSelection if either name is blank.
func (l *Ledger) Start(section, sub string) error {
	section = strings.TrimSpace(section)
	sub = strings.TrimSpace(sub)
	if section == "" || sub == "" {
		return ErrInvalidSelection
	}
	if l.current != nil {
		return ErrAlreadyRunning
	}

	l.current = &models.CurrentSession{
		Section: section,
		Sub:     sub,
		StartTS: format.EpochSeconds(l.now()),
	}
	l.running = true
	l.log.Debug().Str("section", section).Str("sub", sub).Msg("session started")
	return l.persist()
}

// Stop finalizes the in-progress interval into a new session, clears the
// current pointer and rebuilds totals. Fails with ErrNotRunning when idle.
func (l *Ledger) Stop() (*models.Session, error) {
	if l.current == nil {
		return nil, ErrNotRunning
	}

	endTS := format.EpochSeconds(l.now())
	sess := models.Session{
		ID:       uuid.NewString(),
		Section:  l.current.Section,
		Sub:      l.current.Sub,
		StartTS:  l.current.StartTS,
		EndTS:    endTS,
		StartISO: format.ToISO(l.current.StartTS),
		EndISO:   format.ToISO(endTS),
		Seconds:  format.FloorSeconds(l.current.StartTS, endTS),
	}
	l.sessions = append(l.sessions, sess)
	l.current = nil
	l.running = false
	l.totals = models.RecalcTotals(l.sessions)
	l.log.Debug().Str("id", sess.ID).Int("seconds", sess.Seconds).Msg("session stopped")
	if err := l.persist(); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Edit replaces the fields of the session with the given id, keeping its
// position in the list. Derived fields are recomputed; the interval and the
// classification are re-validated before anything changes.
func (l *Ledger) Edit(id string, req EditRequest) (*models.Session, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	section := strings.TrimSpace(req.Section)
	sub := strings.TrimSpace(req.Sub)
	if section == "" || sub == "" {
		return nil, ErrInvalidSelection
	}
	startTS := format.EpochSeconds(req.Start)
	endTS := format.EpochSeconds(req.End)
	if endTS <= startTS {
		return nil, ErrInvalidInterval
	}

	sess := models.Session{
		ID:       id,
		Section:  section,
		Sub:      sub,
		StartTS:  startTS,
		EndTS:    endTS,
		StartISO: format.ToISO(startTS),
		EndISO:   format.ToISO(endTS),
		Seconds:  format.FloorSeconds(startTS, endTS),
	}
	l.sessions[idx] = sess
	l.totals = models.RecalcTotals(l.sessions)
	l.log.Debug().Str("id", id).Msg("session edited")
	if err := l.persist(); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Delete removes every session whose id is in ids and returns how many were
// removed. Unknown ids are ignored, so deletion is idempotent per id.
func (l *Ledger) Delete(ids []string) (int, error) {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	kept := l.sessions[:0:0]
	for _, s := range l.sessions {
		if !doomed[s.ID] {
			kept = append(kept, s)
		}
	}
	removed := len(l.sessions) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	l.sessions = kept
	l.totals = models.RecalcTotals(l.sessions)
	l.log.Debug().Int("removed", removed).Msg("sessions deleted")
	return removed, l.persist()
}

// RenameSection rewrites the section name on every matching session.
// Because the classification is stored by value on each session, this is
// the only way historical records stay consistent with the new name.
// A blank or unchanged new name is a no-op.
func (l *Ledger) RenameSection(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" || newName == oldName {
		return nil
	}

	changed := false
	for i := range l.sessions {
		if l.sessions[i].Section == oldName {
			l.sessions[i].Section = newName
			changed = true
		}
	}
	if !changed {
		return nil
	}

	l.totals = models.RecalcTotals(l.sessions)
	l.log.Debug().Str("old", oldName).Str("new", newName).Msg("section renamed")
	return l.persist()
}

// RenameSub rewrites a subdivision name on every session of the given
// section. A blank or unchanged new name is a no-op.
func (l *Ledger) RenameSub(section, oldSub, newSub string) error {
	newSub = strings.TrimSpace(newSub)
	if section == "" || oldSub == "" || newSub == "" || newSub == oldSub {
		return nil
	}

	changed := false
	for i := range l.sessions {
		if l.sessions[i].Section == section && l.sessions[i].Sub == oldSub {
			l.sessions[i].Sub = newSub
			changed = true
		}
	}
	if !changed {
		return nil
	}

	l.totals = models.RecalcTotals(l.sessions)
	l.log.Debug().Str("section", section).Str("old", oldSub).Str("new", newSub).Msg("subdivision renamed")
	return l.persist()
}

// AddSection registers an empty section so it can be selected before any
// session exists. Empty buckets live in the totals map and the written
// snapshot but are dropped on reload, since totals are always rebuilt from
// sessions.
func (l *Ledger) AddSection(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidSelection
	}
	if _, ok := l.totals[name]; ok {
		return fmt.Errorf("section %q: %w", name, ErrExists)
	}
	l.totals[name] = make(map[string]int)
	return l.persist()
}

// AddSub registers an empty subdivision under an existing section.
func (l *Ledger) AddSub(section, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidSelection
	}
	subs, ok := l.totals[section]
	if !ok {
		return fmt.Errorf("section %q: %w", section, ErrNotFound)
	}
	if _, ok := subs[name]; ok {
		return fmt.Errorf("subdivision %q: %w", name, ErrExists)
	}
	subs[name] = 0
	return l.persist()
}

// Sessions returns a copy of the session list in insertion order.
func (l *Ledger) Sessions() []models.Session {
	out := make([]models.Session, len(l.sessions))
	copy(out, l.sessions)
	return out
}

// Totals returns a copy of the derived totals map.
func (l *Ledger) Totals() models.Totals {
	return l.totals.Clone()
}

// Current returns a copy of the in-progress session, or nil when idle.
func (l *Ledger) Current() *models.CurrentSession {
	if l.current == nil {
		return nil
	}
	cp := *l.current
	return &cp
}

// Running reports whether a session is in progress.
func (l *Ledger) Running() bool {
	return l.running
}

// Elapsed returns the time elapsed since the in-progress session started.
// The second result is false when idle.
func (l *Ledger) Elapsed() (time.Duration, bool) {
	if l.current == nil {
		return 0, false
	}
	secs := format.EpochSeconds(l.now()) - l.current.StartTS
	return time.Duration(secs * float64(time.Second)), true
}

func (l *Ledger) indexOf(id string) int {
	for i := range l.sessions {
		if l.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full snapshot. On failure the in-memory state is kept
// as-is (valid but unpersisted) and the error is surfaced to the caller.
func (l *Ledger) persist() error {
	if err := l.store.Save(l.totals, l.current, l.sessions); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}
