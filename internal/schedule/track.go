package schedule

import (
	"sort"
	"strings"
	"time"

	"apsearch/internal/model"
)

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToUpper(haystack), strings.ToUpper(needle))
}

func sortByStart(records []model.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Start.Before(*records[j].Start)
	})
}

// UpcomingSession is the single soonest future match for a tracked
// entity, always surfaced as context even when the entity is active.
type UpcomingSession struct {
	Record       model.Record
	MinutesUntil int

	// StartingSoon is set when the session begins within the caller's
	// soon-threshold.
	StartingSoon bool
}

// LecturerStatus is the result of tracking one lecturer by name.
type LecturerStatus struct {
	// Active holds the current sessions, deduplicated by
	// (lecturer, room): duplicate timetable entries for the same
	// ongoing session collapse to the first one found.
	Active []model.Record

	Next *UpcomingSession
}

// Teaching reports whether any active session matched.
func (s LecturerStatus) Teaching() bool { return len(s.Active) > 0 }

// TrackLecturer finds the sessions of any lecturer whose name contains
// query (case-insensitive). The soonest future match is reported
// independently of the active state.
func TrackLecturer(query string, w Window, ref time.Time, soonThreshold time.Duration) LecturerStatus {
	var status LecturerStatus

	seen := make(map[string]struct{})
	for _, r := range w.Active {
		if !containsFold(r.Lecturer, query) {
			continue
		}
		uid := r.Lecturer + "-" + r.Room
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		status.Active = append(status.Active, r)
	}

	var future []model.Record
	for _, r := range w.Future {
		if containsFold(r.Lecturer, query) {
			future = append(future, r)
		}
	}
	if len(future) > 0 {
		sortByStart(future)
		next := future[0]
		gap := next.Start.Sub(ref)
		status.Next = &UpcomingSession{
			Record:       next,
			MinutesUntil: int(gap.Minutes()),
			StartingSoon: gap < soonThreshold,
		}
	}

	return status
}

// IntakeStatus is the result of tracking one intake code.
type IntakeStatus struct {
	// Active holds the cohort's current sessions, deduplicated by
	// module name. This assumes one room/time per module per intake in
	// the active window; a second concurrent session of the same
	// module (split lab groups) is hidden behind the first found.
	Active []model.Record

	// Next is the soonest future session, only resolved when nothing
	// is active.
	Next *model.Record
}

// TrackIntake finds the sessions of any intake whose code contains
// query (case-insensitive).
func TrackIntake(query string, w Window) IntakeStatus {
	var status IntakeStatus

	seen := make(map[string]struct{})
	for _, r := range w.Active {
		if !containsFold(r.Intake, query) {
			continue
		}
		if _, ok := seen[r.Module]; ok {
			continue
		}
		seen[r.Module] = struct{}{}
		status.Active = append(status.Active, r)
	}
	if len(status.Active) > 0 {
		return status
	}

	var future []model.Record
	for _, r := range w.Future {
		if containsFold(r.Intake, query) {
			future = append(future, r)
		}
	}
	if len(future) > 0 {
		sortByStart(future)
		next := future[0]
		status.Next = &next
	}

	return status
}

// searchableFields enumerates the record fields the keyword search
// scans. Keeping this an explicit list avoids reflective iteration over
// the record and pins exactly what "all fields" means.
func searchableFields(r model.Record) []string {
	return []string{
		r.Lecturer,
		r.Module,
		r.Intake,
		r.Room,
		r.StartDisplay,
		r.EndDisplay,
	}
}

// SearchActive scans every searchable field of the active set for the
// keyword (case-insensitive substring) and returns the matches
// deduplicated by (room, module), first occurrence winning.
func SearchActive(keyword string, w Window) []model.Record {
	var matches []model.Record
	seen := make(map[string]struct{})

	for _, r := range w.Active {
		hit := false
		for _, field := range searchableFields(r) {
			if containsFold(field, keyword) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		uid := r.Room + "-" + r.Module
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		matches = append(matches, r)
	}

	return matches
}
