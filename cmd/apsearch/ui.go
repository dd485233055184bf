package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"apsearch/internal/calendar"
	"apsearch/internal/config"
	"apsearch/internal/feed"
	"apsearch/internal/model"
	"apsearch/internal/render"
	"apsearch/internal/schedule"
)

const banner = `
    █   █▀▀█ █▀▀ █▀▀ █▀▀█ █▀▀█ █▀▀ █   █
   █ █  █▄▄█ ▀▀█ █▀▀ █▄▄█ █▄▄▀ █   █▄▄▄█
  █   █ █    ▀▀▀ ▀▀▀ ▀  ▀ ▀  ▀ ▀▀▀ █   █`

// app wires the loaded timetable, the styling capability and the feed
// loader behind the interactive menu. All query state is read-only
// after construction.
type app struct {
	conf      *config.Config
	styles    *render.Styles
	loader    feed.Loader
	timetable *schedule.Timetable

	in  *bufio.Scanner
	out io.Writer
}

// newApp performs the one fatal load: without the timetable there is no
// query surface at all.
func newApp(ctx context.Context, conf *config.Config, styles *render.Styles, loader feed.Loader) (*app, error) {
	fmt.Println(styles.Grey.Sprint(" [~] Initializing uplink..."))
	records, err := loader.LoadTimetable(ctx)
	if err != nil {
		fmt.Printf("%s\n", styles.Red.Sprintf(" [ERR] Critical failure: %v", err))
		return nil, err
	}

	tt := schedule.New(records)
	fmt.Println(styles.Green.Sprintf(" [OK] Database synced: %d nodes active.", len(tt.Records)))

	return &app{
		conf:      conf,
		styles:    styles,
		loader:    loader,
		timetable: tt,
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
	}, nil
}

func (a *app) run(ctx context.Context) {
	for {
		a.clearScreen()
		a.printMenu()

		choice := strings.ToLower(a.prompt(a.styles.Cyan.Sprint("apsearch@" + username() + "~$ ")))

		switch choice {
		case "1":
			a.trackLecturer(a.prompt("Lecturer Name: "))
		case "2":
			a.emptyVenues()
		case "3":
			a.inspectRoom(a.prompt("Room ID: "))
		case "4":
			a.trackIntake(a.prompt("Intake Code: "))
		case "5":
			a.search(a.prompt("Query: "))
		case "6":
			a.events(ctx)
		case "q":
			fmt.Fprintln(a.out, "System offline.")
			return
		}

		a.prompt(a.styles.Grey.Sprint("\n[PRESS ENTER TO CONTINUE]"))
	}
}

func (a *app) printMenu() {
	s := a.styles
	fmt.Fprintln(a.out, s.Cyan.Sprint(banner), s.Grey.Sprint("v7.0"))
	fmt.Fprintln(a.out, "  "+s.Yellow.Sprint(">> UNIVERSAL APU STUDENT INTELLIGENCE TOOL <<"))
	fmt.Fprintln(a.out, "  ------------------------------------------------")
	fmt.Fprintf(a.out, "  %s Find Lecturer    %s\n", s.Bold.Sprint("1."), s.Grey.Sprint("[Who is free?]"))
	fmt.Fprintf(a.out, "  %s Empty Venues     %s\n", s.Bold.Sprint("2."), s.Grey.Sprint("[Chill Spots]"))
	fmt.Fprintf(a.out, "  %s Inspect Room     %s\n", s.Bold.Sprint("3."), s.Grey.Sprint("[Scan: 'tl4-03']"))
	fmt.Fprintf(a.out, "  %s Track Intake     %s\n", s.Bold.Sprint("4."), s.Grey.Sprint("[Locate Batch]"))
	fmt.Fprintf(a.out, "  %s Global Search    %s\n", s.Bold.Sprint("5."), s.Grey.Sprint("[Keyword]"))
	fmt.Fprintf(a.out, "  %s Events           %s\n", s.Bold.Sprint("6."), s.Grey.Sprint("[Live Calendar]"))
	fmt.Fprintf(a.out, "  %s Quit\n\n", s.Bold.Sprint("Q."))
}

func (a *app) prompt(label string) string {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "q"
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) clearScreen() {
	if a.conf.NoColor {
		return
	}
	fmt.Fprint(a.out, "\033[H\033[2J")
}

func username() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "user"
}

func (a *app) trackLecturer(query string) {
	s := a.styles
	fmt.Fprintf(a.out, "\n%s\n", s.Cyan.Sprintf("--- Tracking: '%s' ---", query))

	now := time.Now()
	w := a.timetable.Classify(now)
	soon := time.Duration(a.conf.SoonThresholdMins) * time.Minute
	status := schedule.TrackLecturer(query, w, now, soon)

	if status.Teaching() {
		fmt.Fprintln(a.out, s.Green.Sprint(" [!] TARGET FOUND (ONLINE/ACTIVE)"))
		for _, cls := range status.Active {
			mode, modeStyle := "PHYSICAL", s.Red
			if schedule.IsOnline(cls.Room) {
				mode, modeStyle = "ONLINE", s.Cyan
			}
			fmt.Fprintf(a.out, "     Name:   %s\n", s.Bold.Sprint(cls.Lecturer))
			fmt.Fprintf(a.out, "     Status: %s\n", modeStyle.Sprintf("CURRENTLY TEACHING (%s)", mode))
			fmt.Fprintf(a.out, "     Loc:    %s\n", s.Yellow.Sprint(cls.Room))
			fmt.Fprintf(a.out, "     Class:  %s\n", cls.Module)
			fmt.Fprintf(a.out, "     Ends:   %s\n", cls.EndDisplay)
			fmt.Fprintln(a.out, "     "+strings.Repeat("-", 30))
		}
	} else {
		fmt.Fprintln(a.out, s.Yellow.Sprint(" [i] Target is currently FREE."))
	}

	// Context is always shown when available, teaching or not.
	if status.Next != nil {
		nxt := status.Next
		fmt.Fprintf(a.out, "\n %s\n", s.Bold.Sprint("UPCOMING SCHEDULE:"))
		if nxt.StartingSoon {
			fmt.Fprintln(a.out, s.Red.Sprintf(" [!] STARTING SOON (in %d mins)", nxt.MinutesUntil))
		}
		day := nxt.Record.Start.Format("Mon 02")
		fmt.Fprintf(a.out, " [>] %s in %s\n",
			s.Cyan.Sprintf("%s @ %s", day, nxt.Record.StartDisplay),
			s.Yellow.Sprint(nxt.Record.Room))
		fmt.Fprintf(a.out, "     %s\n", nxt.Record.Module)
	}
}

func (a *app) emptyVenues() {
	s := a.styles
	fmt.Fprintf(a.out, "\n%s\n", s.Cyan.Sprint("--- Scanning Sector for Empty Venues ---"))

	now := time.Now()
	w := a.timetable.Classify(now)
	avail := schedule.FindEmptyRooms(w, a.timetable.Rooms, now)

	rooms := avail.Rooms
	if len(rooms) > a.conf.MaxEmptyRooms {
		rooms = rooms[:a.conf.MaxEmptyRooms]
	}

	var rows [][]render.Cell
	for _, slot := range rooms {
		durStyle := s.Yellow
		if slot.FreeMinutes > 60 {
			durStyle = s.Green
		}
		rows = append(rows, []render.Cell{
			{Text: slot.Room, Style: s.Bold},
			{Text: slot.FreeFor, Style: durStyle},
			{Text: slot.Until},
		})
	}

	fmt.Fprintln(a.out, s.Green.Sprintf(" [V] %d venues available.", avail.TotalEmpty))
	table := render.Table{
		Headers: []string{"ROOM", "FREE FOR", "UNTIL"},
		Widths:  []int{25, 15, 10},
		Styles:  s,
	}
	table.Render(a.out, rows)
}

func (a *app) inspectRoom(query string) {
	s := a.styles
	now := time.Now()
	w := a.timetable.Classify(now)
	status := schedule.InspectRoom(query, w, now)

	fmt.Fprintf(a.out, "\n%s\n", s.Cyan.Sprintf("--- Inspecting Node: '%s' ---", status.Query))

	if !status.Free() {
		for _, cls := range status.Occupied {
			fmt.Fprintln(a.out, s.Red.Sprint(" [!] OCCUPIED"))
			fmt.Fprintf(a.out, "     Class:    %s\n", cls.Module)
			fmt.Fprintf(a.out, "     Lecturer: %s\n", cls.Lecturer)
			fmt.Fprintf(a.out, "     Ends:     %s\n", s.Bold.Sprint(cls.EndDisplay))
		}
		return
	}

	if status.Next != nil {
		mins := status.FreeMinutes
		fmt.Fprintln(a.out, s.Green.Sprintf(" [V] EMPTY. Free for %dh %dm.", mins/60, mins%60))
		fmt.Fprintf(a.out, "     Next: %s (%s)\n", status.Next.StartDisplay, status.Next.Module)
	} else {
		fmt.Fprintln(a.out, s.Green.Sprint(" [V] EMPTY for the rest of the day."))
	}
}

func (a *app) trackIntake(query string) {
	s := a.styles
	fmt.Fprintf(a.out, "\n%s\n", s.Cyan.Sprintf("--- Tracking Intake: '%s' ---", query))

	w := a.timetable.Classify(time.Now())
	status := schedule.TrackIntake(query, w)

	if len(status.Active) > 0 {
		for _, cls := range status.Active {
			locStyle := s.Red
			if schedule.IsOnline(cls.Room) {
				locStyle = s.Cyan
			}
			fmt.Fprintln(a.out, s.Green.Sprint(" [!] SESSION ACTIVE"))
			fmt.Fprintf(a.out, "     Subject:  %s\n", cls.Module)
			fmt.Fprintf(a.out, "     Location: %s\n", locStyle.Sprint(cls.Room))
		}
		return
	}

	fmt.Fprintln(a.out, s.Green.Sprint(" [V] No active sessions."))
	if status.Next != nil {
		fmt.Fprintf(a.out, " [>] NEXT: %s (%s)\n", status.Next.StartDisplay, status.Next.Room)
	}
}

func (a *app) search(keyword string) {
	s := a.styles
	fmt.Fprintf(a.out, "\n%s\n", s.Cyan.Sprintf("--- Global Search: '%s' ---", keyword))

	w := a.timetable.Classify(time.Now())
	matches := schedule.SearchActive(keyword, w)

	if len(matches) == 0 {
		fmt.Fprintln(a.out, " No active matches found.")
		return
	}

	var rows [][]render.Cell
	for _, cls := range matches {
		roomStyle := s.Yellow
		if schedule.IsOnline(cls.Room) {
			roomStyle = s.Cyan
		}
		rows = append(rows, []render.Cell{
			{Text: cls.StartDisplay},
			{Text: cls.Room, Style: roomStyle},
			{Text: cls.Module},
		})
	}

	table := render.Table{
		Headers: []string{"TIME", "ROOM", "MODULE"},
		Widths:  []int{10, 20, 40},
		Styles:  s,
	}
	table.Render(a.out, rows)
}

func (a *app) events(ctx context.Context) {
	s := a.styles
	fmt.Fprintf(a.out, "\n%s\n", s.Cyan.Sprint("--- Syncing Student Affairs Calendar... ---"))

	text, err := a.loader.LoadCalendar(ctx)
	if err != nil {
		// Degraded mode: the rest of the program stays usable.
		fmt.Fprintf(a.out, "%s (Check studentaffairs.apu.edu.my)\n", s.Red.Sprint(" [!] Offline Mode."))
		return
	}

	parser := calendar.NewParser(a.conf.CalendarOffsetHours)
	events := parser.Parse(text)
	upcoming := calendar.Upcoming(events, time.Now(), a.conf.MaxEvents)

	var rows [][]render.Cell
	for _, e := range upcoming {
		dateCell := render.Cell{Text: eventDate(e)}
		if calendar.IsHoliday(e) {
			dateCell.Style = s.Yellow
		}
		rows = append(rows, []render.Cell{dateCell, {Text: e.Title}})
	}

	fmt.Fprintln(a.out, s.Green.Sprint(" [V] Synced."))
	table := render.Table{
		Headers: []string{"DATE", "EVENT DETAILS"},
		Widths:  []int{18, 50},
		Styles:  s,
	}
	table.Render(a.out, rows)
}

func eventDate(e model.CalendarEvent) string {
	if e.AllDay {
		return e.Start.Format("02 Jan") + " (All Day)"
	}
	return e.Start.Format("02 Jan, 03:04PM")
}
