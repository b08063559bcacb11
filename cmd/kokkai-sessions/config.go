package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fwojciec/kokkai"
	"github.com/fwojciec/kokkai/tsv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "kokkai.yaml"

// config holds the resolved tool configuration. Precedence, lowest to
// highest: built-in defaults, config file, environment, flags.
type config struct {
	Endpoint string `yaml:"endpoint" env:"KOKKAI_ENDPOINT"`
	Meeting  string `yaml:"meeting" env:"KOKKAI_MEETING"`
	Output   string `yaml:"output" env:"KOKKAI_OUTPUT"`
	Timeout  int    `yaml:"timeout" env:"KOKKAI_TIMEOUT"`
	PageSize int    `yaml:"page_size" env:"KOKKAI_PAGE_SIZE"`
}

// resolveConfig loads configuration from the given file path, then applies
// environment overrides and the -output flag. Env var values are passed in
// as a map so the function stays a pure function of its arguments.
func resolveConfig(path string, environ map[string]string, outputFlag string) (config, error) {
	cfg := config{
		Meeting:  kokkai.PlenaryMeetingName,
		Output:   tsv.DefaultFilename,
		Timeout:  30,
		PageSize: 100,
	}

	// Tolerate a missing file at the default path; fail on all other errors.
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == defaultConfigPath:
		// No config file at the default location; built-in defaults apply.
	default:
		return config{}, fmt.Errorf("read config: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}

	if outputFlag != "" {
		cfg.Output = outputFlag
	}

	if cfg.Timeout <= 0 {
		return config{}, fmt.Errorf("config: timeout must be positive, got %d", cfg.Timeout)
	}
	if cfg.PageSize <= 0 {
		return config{}, fmt.Errorf("config: page size must be positive, got %d", cfg.PageSize)
	}
	return cfg, nil
}

// resolveDates parses the date window flags. Empty values fall back to the
// default window covering the 30 days up to now.
func resolveDates(startFlag, endFlag string, now time.Time) (start, end time.Time, err error) {
	start = now.AddDate(0, 0, -30)
	if startFlag != "" {
		start, err = time.Parse(time.DateOnly, startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: want YYYY-MM-DD", startFlag)
		}
	}
	end = now
	if endFlag != "" {
		end, err = time.Parse(time.DateOnly, endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: want YYYY-MM-DD", endFlag)
		}
	}
	return start, end, nil
}

// newLogger returns a text logger at Info level, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
