package calendar

import (
	"bufio"
	"sort"
	"strings"
	"time"

	appLog "apsearch/internal/log"
	"apsearch/internal/model"
)

const (
	beginMarker   = "BEGIN:VEVENT"
	endMarker     = "END:VEVENT"
	summaryPrefix = "SUMMARY:"
	dtstartPrefix = "DTSTART"
)

// accumulator gathers the fields of the event block currently being
// scanned. An event is emitted at END:VEVENT only when both the title
// and a decodable start instant were captured.
type accumulator struct {
	title    string
	hasTitle bool
	start    time.Time
	hasStart bool
	allDay   bool
}

func (a *accumulator) complete() bool { return a.hasTitle && a.hasStart }

func (a *accumulator) event() model.CalendarEvent {
	return model.CalendarEvent{
		Title:  a.title,
		Start:  a.start,
		AllDay: a.allDay,
	}
}

// Parser extracts calendar events from the line-oriented feed text.
type Parser struct {
	// Offset is the fixed shift applied to timed entries, which the
	// feed encodes in UTC. There is no timezone database here; a
	// single hard-coded offset stands in for one.
	Offset time.Duration
}

func NewParser(offsetHours int) *Parser {
	return &Parser{Offset: time.Duration(offsetHours) * time.Hour}
}

// Parse runs a two-state scan (outside-event / inside-event) over the
// feed text. Blocks missing a title or a decodable start date yield no
// event; a malformed date line silently voids that field rather than
// failing the feed.
func (p *Parser) Parse(text string) []model.CalendarEvent {
	var events []model.CalendarEvent
	var acc accumulator
	inEvent := false

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == beginMarker:
			inEvent = true
			acc = accumulator{}
		case line == endMarker:
			inEvent = false
			if acc.complete() {
				events = append(events, acc.event())
			}
		case !inEvent:
			// Lines between events carry calendar-level properties we
			// do not use.
		case strings.HasPrefix(line, summaryPrefix):
			_, rest, _ := strings.Cut(line, ":")
			acc.title = rest
			acc.hasTitle = true
		case strings.HasPrefix(line, dtstartPrefix):
			_, rest, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			if start, err := p.decodeDate(rest); err == nil {
				acc.start = start
				acc.hasStart = true
				acc.allDay = !strings.Contains(rest, "T")
			}
		}
	}

	appLog.Debug("calendar feed parsed", "events", len(events))
	return events
}

// decodeDate reads a raw DTSTART token: YYYYMMDDThhmmss (with or
// without a trailing UTC marker) shifted by the fixed offset, or a bare
// YYYYMMDD date for all-day entries.
func (p *Parser) decodeDate(raw string) (time.Time, error) {
	clean := strings.TrimSpace(raw)
	if strings.Contains(clean, "T") {
		clean, _, _ = strings.Cut(clean, "Z")
		t, err := time.ParseInLocation("20060102T150405", clean, time.Local)
		if err != nil {
			return time.Time{}, err
		}
		return t.Add(p.Offset), nil
	}
	return time.ParseInLocation("20060102", clean, time.Local)
}

// Upcoming filters events to those dated today or later, sorts them
// ascending by start instant and caps the list at limit.
func Upcoming(events []model.CalendarEvent, now time.Time, limit int) []model.CalendarEvent {
	var upcoming []model.CalendarEvent
	for _, e := range events {
		if e.Upcoming(now) {
			upcoming = append(upcoming, e)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Start.Before(upcoming[j].Start)
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// IsHoliday tags events presented distinctly in the listing.
func IsHoliday(e model.CalendarEvent) bool {
	return strings.Contains(e.Title, "Holiday")
}
