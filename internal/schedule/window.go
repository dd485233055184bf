package schedule

import (
	"time"

	"apsearch/internal/model"
)

// Window is the active/future partition of the record collection
// relative to a reference instant. A record appears in at most one of
// the two sets; records without derived instants appear in neither.
type Window struct {
	Active []model.Record
	Future []model.Record
}

// Classify partitions records around ref. A record is active iff
// start <= ref < end, and future iff start > ref. A session ending
// exactly at ref is already past: it lands in neither set.
func Classify(records []model.Record, ref time.Time) Window {
	var w Window
	for _, r := range records {
		if !r.Usable() {
			continue
		}
		switch {
		case !r.Start.After(ref) && ref.Before(*r.End):
			w.Active = append(w.Active, r)
		case r.Start.After(ref):
			w.Future = append(w.Future, r)
		}
	}
	return w
}
