package models

// Session represents a finished time tracking interval attributed to a
// section/subdivision pair. Timestamps are epoch seconds on the local
// wall clock; the ISO fields are display caches re-derived whenever the
// timestamps change.
type Session struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	Section  string  `gorm:"not null;index" json:"section"`
	Sub      string  `gorm:"not null;index" json:"sub"`
	StartTS  float64 `gorm:"not null" json:"start_ts"`
	EndTS    float64 `gorm:"not null" json:"end_ts"`
	StartISO string  `json:"start_iso"`
	EndISO   string  `json:"end_iso"`
	Seconds  int     `json:"seconds"` // floor(EndTS - StartTS), never edited directly
}

// CurrentSession is the in-progress interval, at most one at a time.
// It is persisted so a running timer survives a restart.
type CurrentSession struct {
	Section string  `json:"section"`
	Sub     string  `json:"sub"`
	StartTS float64 `json:"start_ts"`
}
