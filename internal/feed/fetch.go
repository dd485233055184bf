package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"apsearch/internal/config"
	appLog "apsearch/internal/log"
	"apsearch/internal/model"
)

// Loader supplies the raw feed payloads. The core never performs I/O
// itself; it is handed a Loader so it can be run against canned data in
// tests.
type Loader interface {
	// LoadTimetable fetches and decodes the full timetable record
	// collection. Failure here is fatal to the caller: there is no
	// query surface without this data.
	LoadTimetable(ctx context.Context) ([]model.Record, error)

	// LoadCalendar fetches the raw calendar feed text. Failure is a
	// recoverable offline condition, not fatal.
	LoadCalendar(ctx context.Context) (string, error)
}

// HTTPLoader fetches both feeds over plain HTTP. Every fetch is
// attempted exactly once per invocation; there are no retries and no
// cross-run caching.
type HTTPLoader struct {
	client *http.Client
	cfg    *config.Config
}

func NewHTTPLoader(cfg *config.Config) *HTTPLoader {
	return &HTTPLoader{
		client: &http.Client{},
		cfg:    cfg,
	}
}

func (l *HTTPLoader) LoadTimetable(ctx context.Context) ([]model.Record, error) {
	timeout := time.Duration(l.cfg.TimetableTimeoutSecs) * time.Second
	body, err := l.get(ctx, l.cfg.TimetableURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("timetable fetch: %w", err)
	}

	var records []model.Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("timetable decode: %w", err)
	}

	appLog.Info("timetable synced", "records", len(records))
	return records, nil
}

func (l *HTTPLoader) LoadCalendar(ctx context.Context) (string, error) {
	timeout := time.Duration(l.cfg.CalendarTimeoutSecs) * time.Second
	body, err := l.get(ctx, l.cfg.CalendarURL, timeout)
	if err != nil {
		appLog.Error("calendar fetch failed", err)
		return "", fmt.Errorf("calendar fetch: %w", err)
	}

	appLog.Info("calendar synced", "bytes", len(body))
	return string(body), nil
}

func (l *HTTPLoader) get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if url == "" {
		return nil, errors.New("feed URL is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Origin", l.cfg.Headers.Origin)
	req.Header.Set("Referer", l.cfg.Headers.Referer)
	req.Header.Set("User-Agent", l.cfg.Headers.UserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	return io.ReadAll(resp.Body)
}
