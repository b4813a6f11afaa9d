package format

import (
	"fmt"
	"math"
	"time"
)

// isoLayout is the local wall-clock display format for session timestamps.
const isoLayout = "2006-01-02 15:04:05"

// HMS formats a duration in seconds as HH:MM:SS. Hours are not wrapped at
// 24, so a 30 hour interval renders as "30:00:00".
func HMS(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ToISO renders an epoch-seconds timestamp as a local "YYYY-MM-DD HH:MM:SS"
// string, truncated to whole seconds.
func ToISO(ts float64) string {
	return time.Unix(int64(ts), 0).Format(isoLayout)
}

// ParseISO parses a local "YYYY-MM-DD HH:MM:SS" string back into a time.
func ParseISO(s string) (time.Time, error) {
	return time.ParseInLocation(isoLayout, s, time.Local)
}

// EpochSeconds converts a time to fractional epoch seconds. Whole seconds
// stay exact; deriving from UnixNano would lose sub-second precision at
// current epoch magnitudes.
func EpochSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

// FloorSeconds returns the whole seconds elapsed between two epoch-seconds
// timestamps.
func FloorSeconds(startTS, endTS float64) int {
	return int(math.Floor(endTS - startTS))
}
