// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

var (
	errBadRate     = errors.New("--rate must be positive")
	errBadChannels = errors.New("--channels must be 1 or 2")
	errBadTick     = errors.New("--tick must be positive")
	errBadBuffer   = errors.New("--device-buffer must not be negative")
)

// config holds the command-line flags.
type config struct {
	rate         int
	channels     int
	tick         int
	out          string
	deviceBuffer time.Duration
	history      string
	load         string
	logLevel     string
}

func (c config) validate() error {
	var errs []error
	if c.rate <= 0 {
		errs = append(errs, errBadRate)
	}
	if c.channels != 1 && c.channels != 2 {
		errs = append(errs, errBadChannels)
	}
	if c.tick <= 0 {
		errs = append(errs, errBadTick)
	}
	if c.deviceBuffer < 0 {
		errs = append(errs, errBadBuffer)
	}
	if _, err := c.level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.logLevel)); err != nil {
		return 0, fmt.Errorf("--log-level: %w", err)
	}
	return lvl, nil
}

func (c config) logger() *slog.Logger {
	lvl, _ := c.level()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".soundscape_history")
}
