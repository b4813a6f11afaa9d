package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laboura/internal/format"
	"laboura/internal/models"
)

func ts(year int, month time.Month, day, hour, min, sec int) float64 {
	return format.EpochSeconds(time.Date(year, month, day, hour, min, sec, 0, time.Local))
}

func TestFilter(t *testing.T) {
	sessions := []models.Session{
		{ID: "a", Section: "Work", Sub: "emails", StartTS: ts(2024, 1, 1, 10, 0, 0), Seconds: 100},
		{ID: "b", Section: "Work", Sub: "calls", StartTS: ts(2024, 1, 1, 12, 0, 0), Seconds: 200},
		{ID: "c", Section: "Study", Sub: "go", StartTS: ts(2024, 1, 2, 10, 0, 0), Seconds: 300},
	}

	t.Run("empty filter matches all", func(t *testing.T) {
		assert.Len(t, Filtered(sessions, Filter{}), 3)
	})

	t.Run("section filter", func(t *testing.T) {
		out := Filtered(sessions, Filter{Section: "Work"})
		require.Len(t, out, 2)
		for _, s := range out {
			assert.Equal(t, "Work", s.Section)
		}
	})

	t.Run("sub filter", func(t *testing.T) {
		out := Filtered(sessions, Filter{Sub: "calls"})
		require.Len(t, out, 1)
		assert.Equal(t, "b", out[0].ID)
	})

	t.Run("single-day range bounds on start only", func(t *testing.T) {
		day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
		out := Filtered(sessions, Filter{From: day, To: day})
		require.Len(t, out, 2)
		assert.Equal(t, "a", out[0].ID)
		assert.Equal(t, "b", out[1].ID)
	})

	t.Run("start just past end of day is excluded", func(t *testing.T) {
		day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
		late := models.Session{ID: "d", Section: "Work", Sub: "emails",
			StartTS: ts(2024, 1, 2, 0, 0, 1)}
		out := Filtered(append(sessions, late), Filter{From: day, To: day})
		for _, s := range out {
			assert.NotEqual(t, "d", s.ID)
		}
	})

	t.Run("session ending after To still included in full", func(t *testing.T) {
		day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
		spanning := models.Session{ID: "e", Section: "Work", Sub: "emails",
			StartTS: ts(2024, 1, 1, 23, 0, 0), EndTS: ts(2024, 1, 2, 2, 0, 0), Seconds: 10800}
		out := Filtered(append(sessions, spanning), Filter{From: day, To: day})
		ids := make([]string, 0, len(out))
		for _, s := range out {
			ids = append(ids, s.ID)
		}
		assert.Contains(t, ids, "e")
	})

	t.Run("result sorted by start ascending", func(t *testing.T) {
		shuffled := []models.Session{sessions[2], sessions[1], sessions[0]}
		out := Filtered(shuffled, Filter{})
		require.Len(t, out, 3)
		assert.Equal(t, "a", out[0].ID)
		assert.Equal(t, "b", out[1].ID)
		assert.Equal(t, "c", out[2].ID)
	})
}

func TestGrouped(t *testing.T) {
	sessions := []models.Session{
		{Section: "Work", Sub: "emails", StartTS: ts(2024, 1, 1, 10, 0, 0), Seconds: 100},
		{Section: "Work", Sub: "emails", StartTS: ts(2024, 1, 2, 10, 0, 0), Seconds: 200},
	}

	t.Run("none mode yields no rows", func(t *testing.T) {
		assert.Nil(t, Grouped(sessions, GroupNone, false))
	})

	t.Run("by day yields one row per day", func(t *testing.T) {
		rows := Grouped(sessions, GroupDay, false)
		require.Len(t, rows, 2)
		assert.Equal(t, GroupRow{Period: "2024-01-01", Section: "Work", Sub: "emails", Seconds: 100}, rows[0])
		assert.Equal(t, GroupRow{Period: "2024-01-02", Section: "Work", Sub: "emails", Seconds: 200}, rows[1])
	})

	t.Run("by month collapses the days", func(t *testing.T) {
		rows := Grouped(sessions, GroupMonth, false)
		require.Len(t, rows, 1)
		assert.Equal(t, GroupRow{Period: "2024-01", Section: "Work", Sub: "emails", Seconds: 300}, rows[0])
	})

	t.Run("merge collapses subdivisions of a section", func(t *testing.T) {
		mixed := []models.Session{
			{Section: "Work", Sub: "emails", StartTS: ts(2024, 1, 1, 10, 0, 0), Seconds: 100},
			{Section: "Work", Sub: "calls", StartTS: ts(2024, 1, 1, 12, 0, 0), Seconds: 200},
		}
		rows := Grouped(mixed, GroupDay, true)
		require.Len(t, rows, 1)
		assert.Equal(t, GroupRow{Period: "2024-01-01", Section: "Work", Sub: MergedSubLabel, Seconds: 300}, rows[0])
	})

	t.Run("grouping is additive", func(t *testing.T) {
		for _, mode := range []GroupMode{GroupDay, GroupWeek, GroupMonth} {
			sum := 0
			for _, r := range Grouped(sessions, mode, false) {
				sum += r.Seconds
			}
			assert.Equal(t, 300, sum)
		}
	})

	t.Run("rows sorted by period, section, sub", func(t *testing.T) {
		mixed := []models.Session{
			{Section: "B", Sub: "x", StartTS: ts(2024, 1, 2, 10, 0, 0), Seconds: 1},
			{Section: "A", Sub: "y", StartTS: ts(2024, 1, 2, 10, 0, 0), Seconds: 1},
			{Section: "A", Sub: "x", StartTS: ts(2024, 1, 1, 10, 0, 0), Seconds: 1},
		}
		rows := Grouped(mixed, GroupDay, false)
		require.Len(t, rows, 3)
		assert.Equal(t, "2024-01-01", rows[0].Period)
		assert.Equal(t, "A", rows[1].Section)
		assert.Equal(t, "B", rows[2].Section)
	})
}

func TestPeriodKey(t *testing.T) {
	noon := ts(2024, 1, 1, 12, 0, 0)

	t.Run("day", func(t *testing.T) {
		assert.Equal(t, "2024-01-01", PeriodKey(noon, GroupDay))
	})

	t.Run("iso week", func(t *testing.T) {
		assert.Equal(t, "2024-W01", PeriodKey(noon, GroupWeek))
		// 2023-01-01 falls in ISO week 52 of 2022
		assert.Equal(t, "2022-W52", PeriodKey(ts(2023, 1, 1, 12, 0, 0), GroupWeek))
	})

	t.Run("month", func(t *testing.T) {
		assert.Equal(t, "2024-01", PeriodKey(noon, GroupMonth))
	})
}

func TestParseGroupMode(t *testing.T) {
	for in, want := range map[string]GroupMode{
		"": GroupNone, "none": GroupNone, "day": GroupDay, "week": GroupWeek, "month": GroupMonth,
	} {
		got, err := ParseGroupMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseGroupMode("year")
	assert.Error(t, err)
}
