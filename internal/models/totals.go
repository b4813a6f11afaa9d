package models

// Totals maps section -> subdivision -> accumulated seconds. It is entirely
// derived from the session list and rebuilt from scratch after every
// mutation; the persisted copy is for human inspection only.
type Totals map[string]map[string]int

// RecalcTotals rebuilds the totals map from a session list. Calling it twice
// on the same list yields the same map.
func RecalcTotals(sessions []Session) Totals {
	totals := make(Totals)
	for _, s := range sessions {
		subs, ok := totals[s.Section]
		if !ok {
			subs = make(map[string]int)
			totals[s.Section] = subs
		}
		subs[s.Sub] += s.Seconds
	}
	return totals
}

// Sum returns the grand total across every section and subdivision.
func (t Totals) Sum() int {
	total := 0
	for _, subs := range t {
		for _, secs := range subs {
			total += secs
		}
	}
	return total
}

// Clone returns a deep copy so callers can hand the map out without
// exposing ledger state to mutation.
func (t Totals) Clone() Totals {
	out := make(Totals, len(t))
	for sec, subs := range t {
		cp := make(map[string]int, len(subs))
		for sub, secs := range subs {
			cp[sub] = secs
		}
		out[sec] = cp
	}
	return out
}
