package query

import (
	"fmt"
	"sort"
	"time"

	"laboura/internal/format"
	"laboura/internal/models"
)

// MergedSubLabel replaces the subdivision column when grouping with the
// merge flag set: all subdivisions of a section collapse into this bucket.
const MergedSubLabel = "(all)"

// GroupMode selects how filtered sessions are bucketed into periods.
type GroupMode int

const (
	GroupNone GroupMode = iota
	GroupDay
	GroupWeek
	GroupMonth
)

// ParseGroupMode maps a CLI flag value to a GroupMode.
func ParseGroupMode(s string) (GroupMode, error) {
	switch s {
	case "", "none":
		return GroupNone, nil
	case "day":
		return GroupDay, nil
	case "week":
		return GroupWeek, nil
	case "month":
		return GroupMonth, nil
	default:
		return GroupNone, fmt.Errorf("unknown group mode %q (want day, week or month)", s)
	}
}

// Filter selects sessions by exact section/subdivision name (empty matches
// all) and by an inclusive local calendar date range applied to the session
// start only. A session starting before To but ending after it is still
// included in full; a zero From or To leaves that side unbounded.
type Filter struct {
	Section string
	Sub     string
	From    time.Time
	To      time.Time
}

// Match reports whether the session passes the filter. The date range is
// normalized to [start-of-day(From), end-of-day(To)] in instant space.
func (f Filter) Match(s models.Session) bool {
	if f.Section != "" && s.Section != f.Section {
		return false
	}
	if f.Sub != "" && s.Sub != f.Sub {
		return false
	}
	if !f.From.IsZero() && s.StartTS < format.EpochSeconds(startOfDay(f.From)) {
		return false
	}
	if !f.To.IsZero() && s.StartTS >= format.EpochSeconds(startOfDay(f.To).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// Filtered returns the sessions passing the filter, sorted by start
// ascending with insertion order as the tiebreaker. This explicit ordering
// is what the sessions export serializes.
func Filtered(sessions []models.Session, f Filter) []models.Session {
	var out []models.Session
	for _, s := range sessions {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTS < out[j].StartTS
	})
	return out
}

// GroupRow is one aggregated bucket of the grouping pass.
type GroupRow struct {
	Period  string
	Section string
	Sub     string
	Seconds int
}

// Grouped aggregates seconds by (period, section, subdivision), or by
// (period, section, MergedSubLabel) when mergeSubs is set. Rows come back
// sorted ascending by the full tuple; summing their seconds always equals
// the sum over the input.
func Grouped(sessions []models.Session, mode GroupMode, mergeSubs bool) []GroupRow {
	if mode == GroupNone {
		return nil
	}

	type key struct {
		period  string
		section string
		sub     string
	}
	agg := make(map[key]int)
	for _, s := range sessions {
		sub := s.Sub
		if mergeSubs {
			sub = MergedSubLabel
		}
		agg[key{PeriodKey(s.StartTS, mode), s.Section, sub}] += s.Seconds
	}

	rows := make([]GroupRow, 0, len(agg))
	for k, secs := range agg {
		rows = append(rows, GroupRow{Period: k.period, Section: k.section, Sub: k.sub, Seconds: secs})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		return a.Sub < b.Sub
	})
	return rows
}

// PeriodKey derives the grouping label for a start timestamp in local time:
// "2024-01-02" for days, "2024-W01" for ISO weeks, "2024-01" for months.
func PeriodKey(ts float64, mode GroupMode) string {
	t := time.Unix(int64(ts), 0)
	switch mode {
	case GroupDay:
		return t.Format("2006-01-02")
	case GroupWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case GroupMonth:
		return t.Format("2006-01")
	default:
		return ""
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
