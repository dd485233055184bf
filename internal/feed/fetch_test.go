package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apsearch/internal/config"
)

func loaderFor(t *testing.T, handler http.HandlerFunc) (*HTTPLoader, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.TimetableURL = srv.URL
	cfg.CalendarURL = srv.URL
	return NewHTTPLoader(cfg), srv
}

func TestLoadTimetableDecodesRecords(t *testing.T) {
	loader, _ := loaderFor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://apspace.apu.edu.my", r.Header.Get("Origin"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"NAME":"JOHN DOE","MODULE_NAME":"Networking","ROOM":"B-04","DATESTAMP_ISO":"2025-01-06"}]`))
	})

	records, err := loader.LoadTimetable(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "JOHN DOE", records[0].Lecturer)
	assert.Equal(t, "B-04", records[0].Room)
}

func TestLoadTimetableNonSuccessStatus(t *testing.T) {
	loader, _ := loaderFor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})

	_, err := loader.LoadTimetable(context.Background())
	assert.Error(t, err)
}

func TestLoadTimetableMalformedPayload(t *testing.T) {
	loader, _ := loaderFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	})

	_, err := loader.LoadTimetable(context.Background())
	assert.Error(t, err)
}

func TestLoadCalendarReturnsRawText(t *testing.T) {
	loader, _ := loaderFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR\n"))
	})

	text, err := loader.LoadCalendar(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "BEGIN:VCALENDAR")
}
