package schedule

import (
	"errors"
	"strings"
	"time"

	appLog "apsearch/internal/log"
	"apsearch/internal/model"
)

const instantLayout = "2006-01-02 15:04:05"

var errNoTimeComponent = errors.New("time field has no time-of-day component")

// ParseInstant combines an ISO date string with an ISO-like time string
// into a single instant. The time field arrives as a full timestamp with
// a trailing offset suffix ("2025-01-06T09:00:00+08:00"); only the
// time-of-day portion between the 'T' and the offset is used.
func ParseInstant(dateISO, timeISO string) (time.Time, error) {
	_, clock, ok := strings.Cut(timeISO, "T")
	if !ok {
		return time.Time{}, errNoTimeComponent
	}
	clock, _, _ = strings.Cut(clock, "+")

	// The feed carries campus wall-clock times; parsing in the local
	// zone keeps them comparable with time.Now().
	return time.ParseInLocation(instantLayout, dateISO+" "+clock, time.Local)
}

// Normalize derives the start/end instants for every record in place.
// A record whose date or either time field fails to parse, or whose
// interval is not strictly ordered, keeps both instants nil and is
// thereby excluded from all windowed queries. Malformed records never
// fail the batch.
func Normalize(records []model.Record) []model.Record {
	skipped := 0
	for i := range records {
		r := &records[i]
		if r.DateISO == "" {
			skipped++
			continue
		}

		start, err := ParseInstant(r.DateISO, r.StartISO)
		if err != nil {
			skipped++
			continue
		}
		end, err := ParseInstant(r.DateISO, r.EndISO)
		if err != nil {
			skipped++
			continue
		}
		if !start.Before(end) {
			skipped++
			continue
		}

		r.Start = &start
		r.End = &end
	}
	if skipped > 0 {
		appLog.Debug("records with unusable date/time fields skipped", "skipped", skipped, "total", len(records))
	}
	return records
}
