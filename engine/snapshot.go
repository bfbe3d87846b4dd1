// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/ik5/soundscape/sound"
)

// Snapshot is the saved configuration of an engine: no audio, no
// transport state. Frame values are at SampleRate.
type Snapshot struct {
	SampleRate int           `json:"sample_rate"`
	Groups     []string      `json:"groups,omitempty"`
	Sounds     []SoundConfig `json:"sounds"`
}

// SoundConfig is one saved sound.
type SoundConfig struct {
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	Volume    float64 `json:"volume"`
	ClipStart int64   `json:"clip_start"`
	// ClipEnd is nil when the clip runs to the end of the source.
	ClipEnd    *int64   `json:"clip_end,omitempty"`
	Loop       bool     `json:"loop"`
	LoopPeriod int64    `json:"loop_period,omitempty"`
	Delay      int64    `json:"delay"`
	Groups     []string `json:"groups,omitempty"`
}

// LoadMode decides what happens to the current sounds on Restore.
type LoadMode int

const (
	Replace LoadMode = iota
	Append
)

func (m LoadMode) String() string {
	if m == Append {
		return "append"
	}
	return "replace"
}

// Snapshot captures the configuration of every sound in insertion order.
func (e *Engine) Snapshot() Snapshot { return e.snapshot(false) }

func (e *Engine) snapshot(clean bool) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		SampleRate: e.cfg.SampleRate,
		Groups:     e.groups.Names(),
		Sounds:     make([]SoundConfig, 0, len(e.sounds)),
	}
	for _, s := range e.sounds {
		looping, period := s.Loop()
		sc := SoundConfig{
			Name:       s.Name(),
			Path:       s.Path(),
			Volume:     s.Volume(),
			ClipStart:  s.ClipStart(),
			Loop:       looping,
			LoopPeriod: period,
			Delay:      s.Delay(),
			Groups:     e.groups.Of(s.ID()),
		}
		if s.Clipped() {
			end := s.ClipEnd()
			sc.ClipEnd = &end
		}
		snap.Sounds = append(snap.Sounds, sc)
	}

	if clean {
		e.dirty = false
	}
	return snap
}

// Restore rebuilds sounds from snap. Every source is loaded before the
// engine is locked; sounds whose source fails are reported and skipped,
// the rest are kept. Restored sounds are stopped. Replace discards the
// current sounds and groups, Append adds to them.
//
// The Result has one Outcome per saved sound. An Outcome with an ID and
// an error means the sound was added but part of its configuration did
// not fit the source.
func (e *Engine) Restore(snap Snapshot, mode LoadMode) Result {
	rescale := func(f int64) int64 { return f }
	if snap.SampleRate > 0 && snap.SampleRate != e.cfg.SampleRate {
		ratio := float64(e.cfg.SampleRate) / float64(snap.SampleRate)
		rescale = func(f int64) int64 { return int64(math.Round(float64(f) * ratio)) }
	}

	type loaded struct {
		cfg SoundConfig
		src sound.Source
		err error
	}
	batch := make([]loaded, len(snap.Sounds))
	moved := false
	for i, sc := range snap.Sounds {
		batch[i].cfg = sc
		if strings.EqualFold(sc.Name, all) {
			batch[i].err = &Error{Kind: NameReserved, Target: sc.Name}
			continue
		}
		batch[i].src, batch[i].cfg.Path, batch[i].err = e.open(sc.Name, sc.Path)
		if batch[i].err == nil && batch[i].cfg.Path != sc.Path {
			moved = true
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if mode == Replace {
		e.sounds = nil
		e.groups = NewGroups()
	}

	type restored struct {
		s      *sound.Sound
		groups []string
	}
	var (
		res  Result
		done []restored
	)
	for _, b := range batch {
		if b.err != nil {
			e.log.Warn("sound not restored", "name", b.cfg.Name, "path", b.cfg.Path, "err", b.err)
			res.Outcomes = append(res.Outcomes, Outcome{Name: b.cfg.Name, Err: b.err})
			continue
		}

		s := e.insert(b.cfg.Name, b.cfg.Path, b.src)
		err := configure(s, b.cfg, rescale)
		done = append(done, restored{s: s, groups: b.cfg.Groups})
		res.Outcomes = append(res.Outcomes, Outcome{ID: s.ID(), Name: s.Name(), Err: classify(s.Name(), err)})
	}

	// saved group order first, then groups only named by sounds
	for _, g := range snap.Groups {
		if checkGroupName(g) != nil {
			continue
		}
		for _, r := range done {
			if slices.Contains(r.groups, g) {
				e.groups.Add(g, r.s.ID())
			}
		}
	}
	for _, r := range done {
		for _, g := range r.groups {
			if checkGroupName(g) == nil {
				e.groups.Add(g, r.s.ID())
			}
		}
	}

	res.Mutated = true
	// a replaced path is a change the file on disk does not have
	e.dirty = mode == Append || moved
	e.log.Info("snapshot restored", "mode", mode, "sounds", res.Succeeded(), "failed", len(res.Outcomes)-res.Succeeded())
	return res
}

// configure applies every setting it can and returns the failures.
func configure(s *sound.Sound, sc SoundConfig, rescale func(int64) int64) error {
	var errs []error
	if err := s.SetVolume(sc.Volume); err != nil {
		errs = append(errs, err)
	}
	// end first: the start has to fall inside the clip
	if sc.ClipEnd != nil {
		end := rescale(*sc.ClipEnd)
		if end > s.Len() {
			errs = append(errs, fmt.Errorf("%w: clip end %d past length %d, clamped", sound.ErrInvalidRange, end, s.Len()))
			end = s.Len()
		}
		if err := s.SetEnd(end); err != nil {
			errs = append(errs, err)
		}
	}
	if sc.ClipStart > 0 {
		if err := s.SetStart(rescale(sc.ClipStart)); err != nil {
			errs = append(errs, err)
		}
	}
	if sc.Loop {
		if err := s.SetLoop(rescale(sc.LoopPeriod)); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.SetDelay(rescale(sc.Delay)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Save writes the snapshot to path as indented JSON.
func (e *Engine) Save(path string) error {
	data, err := json.MarshalIndent(e.snapshot(true), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		e.mu.Lock()
		e.dirty = true
		e.mu.Unlock()
		return fmt.Errorf("saving %s: %w", path, err)
	}

	e.log.Info("soundscape saved", "path", path)
	return nil
}

// Load reads a snapshot written by Save and restores it. Per-sound
// failures are in the Result; the error covers the file itself.
func (e *Engine) Load(path string, mode LoadMode) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("loading %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Result{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return e.Restore(snap, mode), nil
}
