// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ik5/soundscape/sound"
)

// all is the selector token and reserved name for every sound.
const all = "all"

// Engine is a soundscape. It is safe for concurrent use.
type Engine struct {
	cfg    Config
	loader Loader
	log    *slog.Logger

	mu         sync.Mutex
	fallback   PathFallback
	sounds     []*sound.Sound
	groups     *Groups
	nextID     sound.ID
	dirty      bool
	scratch    []float32
	violations int64
}

func New(cfg Config, loader Loader, opts ...Option) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		loader:  loader,
		log:     discardLogger(),
		groups:  NewGroups(),
		nextID:  1,
		scratch: make([]float32, cfg.TickFrames*cfg.Channels),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) Frames(d time.Duration) int64 { return e.cfg.Frames(d) }

func (e *Engine) Duration(frames int64) time.Duration { return e.cfg.Duration(frames) }

// Add loads path and appends it as a stopped sound. An empty name falls
// back to the file name without its extension.
func (e *Engine) Add(path, name string) (sound.ID, error) {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if strings.EqualFold(name, all) {
		return 0, &Error{Kind: NameReserved, Target: name}
	}

	src, path, err := e.open(name, path)
	if err != nil {
		e.log.Warn("add failed", "path", path, "err", err)
		return 0, err
	}

	e.mu.Lock()
	s := e.insert(name, path, src)
	e.dirty = true
	e.mu.Unlock()

	e.log.Info("sound added", "id", s.ID(), "name", name, "path", path, "frames", src.Len())
	return s.ID(), nil
}

// SetPathFallback replaces the fallback set by WithPathFallback. nil
// turns retries off.
func (e *Engine) SetPathFallback(f PathFallback) {
	e.mu.Lock()
	e.fallback = f
	e.mu.Unlock()
}

// open loads path for the sound called name, retrying with the paths the
// fallback offers. It returns the path that finally opened, or the last
// one tried. It runs without the lock; decoding may take a while.
func (e *Engine) open(name, path string) (sound.Source, string, error) {
	e.mu.Lock()
	fallback := e.fallback
	e.mu.Unlock()

	for {
		src, err := e.load(path)
		if err == nil || fallback == nil {
			return src, path, err
		}

		next := fallback(name, path, err)
		if next == "" {
			return nil, path, err
		}
		e.log.Info("retrying with a new path", "name", name, "old", path, "path", next)
		path = next
	}
}

func (e *Engine) load(path string) (sound.Source, error) {
	if e.loader == nil {
		return nil, &Error{Kind: SourceUnavailable, Target: path, Err: ErrNoLoader}
	}

	src, err := e.loader.Load(path)
	switch {
	case err != nil:
	case src.Channels() != e.cfg.Channels:
		err = fmt.Errorf("%w: %d != %d", sound.ErrChannelMismatch, src.Channels(), e.cfg.Channels)
	case src.Len() == 0:
		err = ErrEmptySource
	}
	if err != nil {
		return nil, &Error{Kind: SourceUnavailable, Target: path, Err: err}
	}
	return src, nil
}

func (e *Engine) insert(name, path string, src sound.Source) *sound.Sound {
	s := sound.New(e.nextID, name, path, src)
	e.nextID++
	e.sounds = append(e.sounds, s)
	return s
}

// Tick renders the next block into dst, which holds len(dst)/Channels
// interleaved frames. dst is overwritten. Playing sounds advance by the
// block length; sounds that finish or fail are stopped.
func (e *Engine) Tick(dst []float32) {
	clear(dst)

	e.mu.Lock()
	defer e.mu.Unlock()

	if cap(e.scratch) < len(dst) {
		e.scratch = make([]float32, len(dst))
	}
	scratch := e.scratch[:len(dst)]

	for _, s := range e.sounds {
		e.violations += s.Mix(dst, scratch, e.cfg.Channels)
	}
}

// Violations counts frames rendered silent because the resolver computed
// an offset outside a clip window.
func (e *Engine) Violations() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.violations
}

// Dirty reports configuration changes since the last Save or Load.
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sounds)
}

// Groups lists the group names in creation order.
func (e *Engine) Groups() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.groups.Names()
}

// Playing counts sounds currently playing.
func (e *Engine) Playing() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, s := range e.sounds {
		if s.State() == sound.Playing {
			n++
		}
	}
	return n
}

func (e *Engine) byID(id sound.ID) *sound.Sound {
	for _, s := range e.sounds {
		if s.ID() == id {
			return s
		}
	}
	return nil
}
