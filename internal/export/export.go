package export

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"laboura/internal/format"
	"laboura/internal/models"
)

// WriteTotalsCSV serializes the totals map with sections and subdivisions
// sorted alphabetically, followed by a blank row and a TOTAL row summing
// every emitted value. The output is deterministic given the map.
func WriteTotalsCSV(w io.Writer, totals models.Totals) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Section", "Subdivision", "Seconds", "HH:MM:SS"}); err != nil {
		return err
	}

	sections := make([]string, 0, len(totals))
	for sec := range totals {
		sections = append(sections, sec)
	}
	sort.Strings(sections)

	totalAll := 0
	for _, sec := range sections {
		subs := make([]string, 0, len(totals[sec]))
		for sub := range totals[sec] {
			subs = append(subs, sub)
		}
		sort.Strings(subs)
		for _, sub := range subs {
			secs := totals[sec][sub]
			if err := cw.Write([]string{sec, sub, strconv.Itoa(secs), format.HMS(secs)}); err != nil {
				return err
			}
			totalAll += secs
		}
	}

	if err := cw.Write([]string{}); err != nil {
		return err
	}
	if err := cw.Write([]string{"TOTAL", "", strconv.Itoa(totalAll), format.HMS(totalAll)}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// WriteSessionsCSV serializes a filtered session set in the order given.
// The raw seconds column is intentionally omitted; the duration is only
// emitted as HH:MM:SS.
func WriteSessionsCSV(w io.Writer, sessions []models.Session) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Section", "Subdivision", "Start", "End", "HH:MM:SS"}); err != nil {
		return err
	}

	for _, s := range sessions {
		start := s.StartISO
		if start == "" {
			start = format.ToISO(s.StartTS)
		}
		end := s.EndISO
		if end == "" {
			end = format.ToISO(s.EndTS)
		}
		if err := cw.Write([]string{s.ID, s.Section, s.Sub, start, end, format.HMS(s.Seconds)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
