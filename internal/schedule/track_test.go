package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apsearch/internal/model"
)

func lecture(name, module, room string, start, end time.Time) model.Record {
	r := session(room, start, end)
	r.Lecturer = name
	r.Module = module
	return r
}

func TestTrackLecturerDeduplicatesByNameAndRoom(t *testing.T) {
	ref := time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC)
	start, end := ref.Add(-time.Hour), ref.Add(time.Hour)

	w := Window{
		Active: []model.Record{
			lecture("JOHN DOE", "Networking", "B-04", start, end),
			lecture("JOHN DOE", "Networking (Lab)", "B-04", start, end), // same pair, dropped
			lecture("JOHN DOE", "Networking", "B-05", start, end),       // new room, kept
		},
	}

	status := TrackLecturer("john", w, ref, 30*time.Minute)
	require.Len(t, status.Active, 2)
	assert.Equal(t, "B-04", status.Active[0].Room)
	assert.Equal(t, "B-05", status.Active[1].Room)
}

func TestTrackLecturerFreeWithStartingSoonFlag(t *testing.T) {
	ref := time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC)

	w := Window{
		Future: []model.Record{
			lecture("Jane Roe", "Databases", "B-07", ref.Add(10*time.Minute), ref.Add(2*time.Hour)),
			lecture("Jane Roe", "Databases", "B-08", ref.Add(3*time.Hour), ref.Add(4*time.Hour)),
		},
	}

	status := TrackLecturer("jane", w, ref, 30*time.Minute)
	assert.False(t, status.Teaching())
	require.NotNil(t, status.Next)
	assert.Equal(t, "B-07", status.Next.Record.Room)
	assert.Equal(t, 10, status.Next.MinutesUntil)
	assert.True(t, status.Next.StartingSoon)
}

func TestTrackLecturerNextShownWhileTeaching(t *testing.T) {
	ref := time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC)

	w := Window{
		Active: []model.Record{
			lecture("Jane Roe", "Databases", "B-07", ref.Add(-time.Hour), ref.Add(time.Hour)),
		},
		Future: []model.Record{
			lecture("Jane Roe", "Security", "B-08", ref.Add(2*time.Hour), ref.Add(3*time.Hour)),
		},
	}

	status := TrackLecturer("jane", w, ref, 30*time.Minute)
	assert.True(t, status.Teaching())
	require.NotNil(t, status.Next)
	assert.Equal(t, "Security", status.Next.Record.Module)
	assert.False(t, status.Next.StartingSoon)
}

func TestTrackIntakeDeduplicatesByModule(t *testing.T) {
	ref := time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC)
	start, end := ref.Add(-time.Hour), ref.Add(time.Hour)

	a := lecture("A", "Networking", "B-04", start, end)
	a.Intake = "APD3F2411CS"
	b := lecture("B", "Networking", "B-09", start, end) // split group, hidden
	b.Intake = "APD3F2411CS"

	status := TrackIntake("apd3f", Window{Active: []model.Record{a, b}})
	require.Len(t, status.Active, 1)
	assert.Equal(t, "B-04", status.Active[0].Room)
	assert.Nil(t, status.Next)
}

func TestTrackIntakeFallsBackToSoonestFuture(t *testing.T) {
	ref := time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC)

	later := lecture("A", "Networking", "B-04", ref.Add(3*time.Hour), ref.Add(4*time.Hour))
	later.Intake = "APD3F2411CS"
	sooner := lecture("B", "Databases", "B-05", ref.Add(time.Hour), ref.Add(2*time.Hour))
	sooner.Intake = "APD3F2411CS"

	status := TrackIntake("APD3F", Window{Future: []model.Record{later, sooner}})
	assert.Empty(t, status.Active)
	require.NotNil(t, status.Next)
	assert.Equal(t, "B-05", status.Next.Room)
}

func TestSearchActiveScansFixedFieldList(t *testing.T) {
	ref := time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC)
	start, end := ref.Add(-time.Hour), ref.Add(time.Hour)

	r := lecture("John Doe", "Networking", "B-04", start, end)
	r.Intake = "APD3F2411CS"

	w := Window{Active: []model.Record{r}}

	for _, keyword := range []string{"john", "network", "apd3f", "b-04", r.StartDisplay} {
		assert.Len(t, SearchActive(keyword, w), 1, keyword)
	}
	assert.Empty(t, SearchActive("xyzzy", w))
}

func TestSearchActiveDeduplicatesByRoomAndModule(t *testing.T) {
	ref := time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC)
	start, end := ref.Add(-time.Hour), ref.Add(time.Hour)

	w := Window{Active: []model.Record{
		lecture("John Doe", "Networking", "B-04", start, end),
		lecture("Jane Roe", "Networking", "B-04", start, end), // same room+module
	}}

	assert.Len(t, SearchActive("networking", w), 1)
}
