// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"time"

	"github.com/ik5/soundscape/sound"
)

// Status is a point-in-time view of one sound.
type Status struct {
	ID    sound.ID
	Name  string
	Path  string
	State sound.State

	// Elapsed is the position on the sound's own timeline, delay
	// included.
	Elapsed time.Duration
	Length  time.Duration
	Volume  float64

	Looping bool
	// LoopPeriod is the effective period: the clip length when looping
	// was enabled without one.
	LoopPeriod time.Duration
	ClipStart  time.Duration
	ClipEnd    time.Duration
	Clipped    bool
	Delay      time.Duration
	Groups     []string

	// Err is the last mixing failure; it is cleared by play.
	Err error
}

// Status reports the selected sounds. The Result carries the selector
// outcome; it never mutates anything.
func (e *Engine) Status(sel Selector) ([]Status, Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	targets, unresolved := e.resolve(sel)
	res := Result{Unresolved: unresolved}
	out := make([]Status, 0, len(targets))

	for _, s := range targets {
		res.Outcomes = append(res.Outcomes, Outcome{ID: s.ID(), Name: s.Name()})
		out = append(out, e.status(s))
	}
	return out, res
}

func (e *Engine) status(s *sound.Sound) Status {
	t := s.Timing()
	st := Status{
		ID:        s.ID(),
		Name:      s.Name(),
		Path:      s.Path(),
		State:     s.State(),
		Elapsed:   e.Duration(s.Elapsed()),
		Length:    e.Duration(s.Len()),
		Volume:    s.Volume(),
		Looping:   t.Looping,
		ClipStart: e.Duration(t.ClipStart),
		ClipEnd:   e.Duration(t.ClipEnd),
		Clipped:   s.Clipped(),
		Delay:     e.Duration(t.Delay),
		Groups:    e.groups.Of(s.ID()),
		Err:       s.Err(),
	}
	if t.Looping {
		st.LoopPeriod = e.Duration(t.Period())
	}
	return st
}
