package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"

	"apsearch/internal/config"
	"apsearch/internal/feed"
	appLog "apsearch/internal/log"
	"apsearch/internal/render"
)

type flagConfig struct {
	configPath string
	noColor    bool
	debug      bool
}

func main() {
	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(zapcore.DebugLevel)
	}

	appLog.Info("apsearch starting", "version", "7.0")

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	if flags.noColor {
		conf.NoColor = true
	}

	appLog.Debug("effective config",
		"timetable_url", conf.TimetableURL,
		"calendar_url", conf.CalendarURL,
		"max_events", conf.MaxEvents,
		"max_empty_rooms", conf.MaxEmptyRooms,
		"no_color", conf.NoColor,
	)

	ctx := context.Background()
	styles := render.NewStyles(!conf.NoColor)
	loader := feed.NewHTTPLoader(conf)

	app, err := newApp(ctx, conf, styles, loader)
	if err != nil {
		// No query surface without the timetable: fatal.
		appLog.Error("initial timetable load failed", err)
		os.Exit(1)
	}

	app.run(ctx)
	appLog.Info("apsearch exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", defaultConfigPath(), "Path to config file")
	flag.BoolVar(&cfg.noColor, "no-color", false, "Disable terminal styling")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "apsearch.yaml"
	}
	return filepath.Join(dir, "apsearch", "config.yaml")
}
