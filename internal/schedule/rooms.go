package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"apsearch/internal/model"
)

// roomPlaceholder marks records without an assigned venue in the feed.
const roomPlaceholder = "N/A"

// freeAllDay is the sort sentinel for rooms with no further bookings
// today. It dominates any realistic minutes-until-next value so
// all-day-free rooms rank first.
const freeAllDay = 9999

// IsOnline reports whether a room string denotes a virtual session
// rather than a physical venue.
func IsOnline(room string) bool {
	if room == "" {
		return false
	}
	r := strings.ToUpper(strings.TrimSpace(room))
	return strings.HasPrefix(r, "ONL") || strings.HasPrefix(r, "ONC") ||
		strings.Contains(r, "TEAMS") || strings.Contains(r, "VIRTUAL")
}

// RoomUniverse collects the distinct physical room names across all
// records, preserving first-seen order. Empty rooms, the feed's
// placeholder value and online designations are excluded.
func RoomUniverse(records []model.Record) []string {
	seen := make(map[string]struct{})
	var rooms []string
	for _, r := range records {
		room := strings.TrimSpace(r.Room)
		if room == "" || room == roomPlaceholder || IsOnline(room) {
			continue
		}
		if _, ok := seen[room]; ok {
			continue
		}
		seen[room] = struct{}{}
		rooms = append(rooms, room)
	}
	return rooms
}

// EmptyRoom describes one currently-free venue.
type EmptyRoom struct {
	Room string

	// FreeMinutes is the time until the room's next booking, or
	// freeAllDay when nothing further is scheduled.
	FreeMinutes int

	// FreeFor / Until are display strings: "2h 30m" / "04:30PM", or
	// "All Day" / "Tmrw" when unbounded.
	FreeFor string
	Until   string
}

// AllDay reports whether the room has no further bookings today.
func (e EmptyRoom) AllDay() bool {
	return e.FreeMinutes == freeAllDay
}

// Availability is the full ranked empty-venue result. Presentation may
// truncate Rooms; TotalEmpty is always the true count.
type Availability struct {
	Rooms      []EmptyRoom
	TotalEmpty int
}

// FindEmptyRooms subtracts the busy rooms of the active set from the
// room universe and ranks the remainder by how long each stays free.
// Ranking is descending by free minutes; ties keep universe order.
func FindEmptyRooms(w Window, universe []string, ref time.Time) Availability {
	busy := make(map[string]struct{}, len(w.Active))
	for _, r := range w.Active {
		busy[strings.TrimSpace(r.Room)] = struct{}{}
	}

	var results []EmptyRoom
	for _, room := range universe {
		if _, ok := busy[room]; ok {
			continue
		}

		var nextStart *time.Time
		for _, f := range w.Future {
			if strings.TrimSpace(f.Room) != room {
				continue
			}
			if nextStart == nil || f.Start.Before(*nextStart) {
				nextStart = f.Start
			}
		}

		slot := EmptyRoom{Room: room}
		if nextStart != nil {
			mins := int(nextStart.Sub(ref).Minutes())
			slot.FreeMinutes = mins
			slot.FreeFor = fmt.Sprintf("%dh %dm", mins/60, mins%60)
			slot.Until = nextStart.Format("03:04PM")
		} else {
			slot.FreeMinutes = freeAllDay
			slot.FreeFor = "All Day"
			slot.Until = "Tmrw"
		}
		results = append(results, slot)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FreeMinutes > results[j].FreeMinutes
	})

	return Availability{Rooms: results, TotalEmpty: len(results)}
}

var techLabPattern = regexp.MustCompile(`(?:tl|tech\s*lab|t)\s*0?(\d+)[- ]0?(\d+)`)
var numberPattern = regexp.MustCompile(`\d+`)

// CanonicalRoomName normalizes institution-specific room shorthand:
// "tl4-03" and "tech lab 4 3" become "Tech Lab 4-3", "aud2" becomes
// "Auditorium 2", "cr" and "cyber" become "Cyber Range". Unrecognized
// input passes through unchanged; the second return value reports
// whether a rewrite happened.
func CanonicalRoomName(input string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(input))

	if m := techLabPattern.FindStringSubmatch(q); m != nil {
		return fmt.Sprintf("Tech Lab %s-%s", m[1], m[2]), true
	}
	if strings.Contains(q, "aud") {
		if num := numberPattern.FindString(q); num != "" {
			return "Auditorium " + num, true
		}
	}
	if strings.Contains(q, "cyber") || q == "cr" {
		return "Cyber Range", true
	}
	return input, false
}

// RoomStatus is the occupancy report for one inspected room query.
type RoomStatus struct {
	// Query is the canonicalized query actually matched against.
	Query string

	// Occupied holds every active session matching the query. Multiple
	// matches are all reported; a loose query can legitimately hit
	// more than one venue.
	Occupied []model.Record

	// Next is the soonest future session when the room is currently
	// free, with FreeMinutes the gap until it starts. Both are zero
	// when the room is free for the rest of the day.
	Next        *model.Record
	FreeMinutes int
}

// Free reports whether no active session matched.
func (s RoomStatus) Free() bool { return len(s.Occupied) == 0 }

// InspectRoom resolves the occupancy state of one room. The query is
// canonicalized first; a recognized shorthand is matched exactly against
// the trimmed room name (so "tl4-3" finds "Tech Lab 4-3" but not
// "Tech Lab 4-30"), while free-form input keeps loose substring
// matching.
func InspectRoom(query string, w Window, ref time.Time) RoomStatus {
	name, exact := CanonicalRoomName(query)
	status := RoomStatus{Query: name}

	matches := func(room string) bool {
		room = strings.TrimSpace(room)
		if exact {
			return strings.EqualFold(room, name)
		}
		return strings.Contains(strings.ToUpper(room), strings.ToUpper(name))
	}

	for _, r := range w.Active {
		if matches(r.Room) {
			status.Occupied = append(status.Occupied, r)
		}
	}
	if len(status.Occupied) > 0 {
		return status
	}

	var upcoming []model.Record
	for _, f := range w.Future {
		if matches(f.Room) {
			upcoming = append(upcoming, f)
		}
	}
	if len(upcoming) > 0 {
		sort.SliceStable(upcoming, func(i, j int) bool {
			return upcoming[i].Start.Before(*upcoming[j].Start)
		})
		next := upcoming[0]
		status.Next = &next
		status.FreeMinutes = int(next.Start.Sub(ref).Minutes())
	}
	return status
}
