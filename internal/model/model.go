package model

import "time"

// Record represents one scheduled class session as delivered by the
// timetable feed. The JSON field names follow the feed payload verbatim.
//
// Start / End are derived at load time by the schedule normalizer; nil
// means the raw date/time fields could not be parsed and the record is
// excluded from all windowed queries.
type Record struct {
	Lecturer string `json:"NAME"`
	Module   string `json:"MODULE_NAME"`
	Intake   string `json:"INTAKE"`
	Room     string `json:"ROOM"`

	// DateISO is the session date as an ISO date string (2006-01-02).
	DateISO string `json:"DATESTAMP_ISO"`
	// StartISO / EndISO are ISO-like time-of-day strings carrying a
	// trailing offset suffix (e.g. "2025-01-06T09:00:00+08:00").
	StartISO string `json:"TIME_FROM_ISO"`
	EndISO   string `json:"TIME_TO_ISO"`

	// StartDisplay / EndDisplay are preformatted clock strings used
	// verbatim in output (e.g. "09:00 AM").
	StartDisplay string `json:"TIME_FROM"`
	EndDisplay   string `json:"TIME_TO"`

	Start *time.Time `json:"-"`
	End   *time.Time `json:"-"`
}

// Usable reports whether both derived instants were parsed. Records that
// are not usable never appear in an active or future set.
func (r Record) Usable() bool {
	return r.Start != nil && r.End != nil
}

// CalendarEvent represents a single entry from the institutional
// calendar feed. Events are created fresh on every fetch and never
// cached across fetches.
type CalendarEvent struct {
	Title string
	Start time.Time

	// AllDay is true when the source encoding carried no time-of-day
	// component.
	AllDay bool
}

// Upcoming reports whether the event falls on or after the given day.
// Comparison is by calendar date, so an event earlier today still counts.
func (e CalendarEvent) Upcoming(now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !e.Start.Before(today)
}
