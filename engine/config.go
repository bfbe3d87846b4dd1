// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/ik5/soundscape/sound"
)

// DefaultTickFrames is the block size used when Config.TickFrames is zero.
const DefaultTickFrames = 512

var ErrInvalidConfig = errors.New("invalid engine config")

// Config fixes the output format. Every source handed to the engine must
// already have Channels channels at SampleRate.
type Config struct {
	SampleRate int
	Channels   int
	// TickFrames is the number of frames rendered per Tick by the output
	// stream.
	TickFrames int
}

func (c Config) withDefaults() Config {
	if c.TickFrames == 0 {
		c.TickFrames = DefaultTickFrames
	}
	return c
}

func (c Config) validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.Channels <= 0:
		return fmt.Errorf("%w: %d channels", ErrInvalidConfig, c.Channels)
	case c.TickFrames <= 0:
		return fmt.Errorf("%w: tick of %d frames", ErrInvalidConfig, c.TickFrames)
	}
	return nil
}

// Frames converts d to a frame count at the engine rate, rounding to the
// nearest frame.
func (c Config) Frames(d time.Duration) int64 {
	return int64(math.Round(d.Seconds() * float64(c.SampleRate)))
}

// Duration converts a frame count to wall time at the engine rate.
func (c Config) Duration(frames int64) time.Duration {
	return time.Duration(math.Round(float64(frames) * float64(time.Second) / float64(c.SampleRate)))
}

// Loader turns a path into a decoded source in the engine's format.
type Loader interface {
	Load(path string) (sound.Source, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (sound.Source, error)

func (f LoaderFunc) Load(path string) (sound.Source, error) { return f(path) }

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for command and persistence events. The
// default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// PathFallback is asked for a replacement when the file of the sound
// called name cannot be opened at path. An empty answer gives up, and the
// failure is reported as usual.
type PathFallback func(name, path string, err error) string

// WithPathFallback retries failed opens during Add and Restore with the
// paths f returns.
func WithPathFallback(f PathFallback) Option {
	return func(e *Engine) { e.fallback = f }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
