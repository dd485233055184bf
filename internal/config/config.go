package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Headers holds the HTTP request headers sent with every feed fetch.
// The timetable endpoint rejects requests without a browser-looking
// Origin/Referer pair.
type Headers struct {
	Origin    string `yaml:"origin"`
	Referer   string `yaml:"referer"`
	UserAgent string `yaml:"user_agent"`
}

// Config is the top-level application configuration.
type Config struct {
	// TimetableURL is the JSON timetable feed endpoint.
	TimetableURL string `yaml:"timetable_url"`

	// CalendarURL is the institutional ICS calendar feed endpoint.
	CalendarURL string `yaml:"calendar_url"`

	Headers Headers `yaml:"headers"`

	// TimetableTimeoutSecs / CalendarTimeoutSecs bound each blocking
	// fetch. The calendar is optional so it gets a shorter budget.
	TimetableTimeoutSecs int `yaml:"timetable_timeout_secs"`
	CalendarTimeoutSecs  int `yaml:"calendar_timeout_secs"`

	// CalendarOffsetHours is the fixed offset applied to timed calendar
	// entries. There is no timezone database lookup, only this shift.
	CalendarOffsetHours int `yaml:"calendar_offset_hours"`

	// MaxEvents caps the upcoming-events listing.
	MaxEvents int `yaml:"max_events"`

	// MaxEmptyRooms caps the empty-venue table; the true total is still
	// reported above it.
	MaxEmptyRooms int `yaml:"max_empty_rooms"`

	// SoonThresholdMins marks an upcoming session as "starting soon"
	// when it begins within this many minutes.
	SoonThresholdMins int `yaml:"soon_threshold_mins"`

	// NoColor disables all terminal styling.
	NoColor bool `yaml:"no_color"`
}

// DefaultConfig returns an in-memory default configuration pointing at
// the public APU feeds.
func DefaultConfig() *Config {
	return &Config{
		TimetableURL: "https://s3-ap-southeast-1.amazonaws.com/open-ws/weektimetable",
		CalendarURL:  "https://calendar.google.com/calendar/ical/2n93erhbkek11ucdaak24tb6i8%40group.calendar.google.com/public/basic.ics",
		Headers: Headers{
			Origin:    "https://apspace.apu.edu.my",
			Referer:   "https://apspace.apu.edu.my/",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		TimetableTimeoutSecs: 10,
		CalendarTimeoutSecs:  5,
		CalendarOffsetHours:  8,
		MaxEvents:            10,
		MaxEmptyRooms:        15,
		SoonThresholdMins:    30,
		NoColor:              false,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.TimetableURL == "" {
		c.TimetableURL = def.TimetableURL
	}
	if c.CalendarURL == "" {
		c.CalendarURL = def.CalendarURL
	}
	if c.Headers.Origin == "" {
		c.Headers.Origin = def.Headers.Origin
	}
	if c.Headers.Referer == "" {
		c.Headers.Referer = def.Headers.Referer
	}
	if c.Headers.UserAgent == "" {
		c.Headers.UserAgent = def.Headers.UserAgent
	}
	if c.TimetableTimeoutSecs <= 0 {
		c.TimetableTimeoutSecs = def.TimetableTimeoutSecs
	}
	if c.CalendarTimeoutSecs <= 0 {
		c.CalendarTimeoutSecs = def.CalendarTimeoutSecs
	}
	if c.CalendarOffsetHours == 0 {
		c.CalendarOffsetHours = def.CalendarOffsetHours
	}
	if c.MaxEvents <= 0 {
		c.MaxEvents = def.MaxEvents
	}
	if c.MaxEmptyRooms <= 0 {
		c.MaxEmptyRooms = def.MaxEmptyRooms
	}
	if c.SoonThresholdMins <= 0 {
		c.SoonThresholdMins = def.SoonThresholdMins
	}
}

// applyEnv overlays environment variables onto the config. A .env file in
// the working directory is loaded first if present; real environment
// variables win over file values either way.
func (c *Config) applyEnv() {
	_ = godotenv.Load(".env")

	if v := os.Getenv("APSEARCH_TIMETABLE_URL"); v != "" {
		c.TimetableURL = v
	}
	if v := os.Getenv("APSEARCH_CALENDAR_URL"); v != "" {
		c.CalendarURL = v
	}
	if v := os.Getenv("NO_COLOR"); v != "" {
		c.NoColor = true
	}
	if v := os.Getenv("APSEARCH_MAX_EVENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxEvents = n
		}
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist: create parent directory if needed,
//     write a default config with 0600 perms, return the default.
//   - If the file exists: read YAML, unmarshal, normalize defaults.
//
// Environment overrides are applied last in both cases.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	cfg.applyEnv()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically
// via a temp file + rename, with 0600 final permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".apsearch-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	return nil
}
