package schedule

import (
	"time"

	appLog "apsearch/internal/log"
	"apsearch/internal/model"
)

// Timetable is the loaded, normalized record collection plus the derived
// physical-room universe. It is built once per load and read-only
// afterwards; a fresh load replaces the whole value.
type Timetable struct {
	Records []model.Record
	Rooms   []string // distinct physical rooms, first-seen order
}

func New(raw []model.Record) *Timetable {
	records := Normalize(raw)
	rooms := RoomUniverse(records)
	appLog.Info("timetable indexed", "records", len(records), "physical_rooms", len(rooms))
	return &Timetable{
		Records: records,
		Rooms:   rooms,
	}
}

// Classify returns the active/future partition relative to ref.
func (t *Timetable) Classify(ref time.Time) Window {
	return Classify(t.Records, ref)
}
