package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"apsearch/internal/model"
)

func session(room string, start, end time.Time) model.Record {
	return model.Record{
		Room:         room,
		Start:        &start,
		End:          &end,
		StartDisplay: start.Format("03:04 PM"),
		EndDisplay:   end.Format("03:04 PM"),
	}
}

func TestClassifyBoundaries(t *testing.T) {
	ref := time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return time.Date(2025, 1, 6, h, m, 0, 0, time.UTC)
	}

	cases := []struct {
		name       string
		start, end time.Time
		active     bool
		future     bool
	}{
		{"contains reference", at(13, 0), at(15, 0), true, false},
		{"starts exactly at reference", at(14, 0), at(15, 0), true, false},
		{"ends exactly at reference", at(13, 0), at(14, 0), false, false},
		{"already over", at(9, 0), at(10, 0), false, false},
		{"starts after reference", at(14, 30), at(16, 0), false, true},
		{"one minute ahead", at(14, 1), at(15, 0), false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := Classify([]model.Record{session("B-04", tc.start, tc.end)}, ref)
			assert.Equal(t, tc.active, len(w.Active) == 1, "active")
			assert.Equal(t, tc.future, len(w.Future) == 1, "future")
			assert.LessOrEqual(t, len(w.Active)+len(w.Future), 1, "at most one set")
		})
	}
}

func TestClassifyExcludesUnusableRecords(t *testing.T) {
	ref := time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC)
	w := Classify([]model.Record{{Room: "B-04"}}, ref)
	assert.Empty(t, w.Active)
	assert.Empty(t, w.Future)
}
