// SPDX-License-Identifier: EPL-2.0

package sound

import "fmt"

// Timing is the part of a sound's configuration the resolver reads. All
// values are in frames.
type Timing struct {
	ClipStart int64
	ClipEnd   int64
	Looping   bool
	// LoopPeriod is the cycle length when Looping. Zero loops at the end
	// of the clip.
	LoopPeriod int64
	Delay      int64
}

// ClipLen is the number of frames inside the clip window.
func (t Timing) ClipLen() int64 { return t.ClipEnd - t.ClipStart }

// Period is the effective loop period.
func (t Timing) Period() int64 {
	if t.LoopPeriod > 0 {
		return t.LoopPeriod
	}
	return t.ClipLen()
}

// Horizon is the elapsed value at which a looping sound wraps back to the
// start of its first cycle. It is zero for sounds that do not loop.
func (t Timing) Horizon() int64 {
	if !t.Looping {
		return 0
	}
	return t.Delay + t.Period()
}

// Wrap folds elapsed into [0, Horizon) for looping sounds, keeping the
// delay out of the repetition.
func (t Timing) Wrap(elapsed int64) int64 {
	h := t.Horizon()
	if h == 0 || elapsed < h {
		return elapsed
	}

	d := t.Period()
	if d <= 0 {
		return elapsed
	}
	return t.Delay + (elapsed-t.Delay)%d
}

// Phase is what a sound does at one frame of its timeline.
type Phase int

const (
	Silent Phase = iota
	Audible
	// Finished means a non-looping sound ran past its clip.
	Finished
	// Violation means the computed offset fell outside the clip window.
	Violation
)

func (p Phase) String() string {
	switch p {
	case Silent:
		return "silent"
	case Audible:
		return "audible"
	case Finished:
		return "finished"
	case Violation:
		return "violation"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Position is the resolver's answer. Offset is meaningful only when Phase
// is Audible.
type Position struct {
	Phase  Phase
	Offset int64
}

// Resolve reports what t plays at elapsed.
func Resolve(t Timing, elapsed int64) Position {
	pos, _ := Span(t, elapsed, 1)
	return pos
}

// Span resolves elapsed like Resolve and also reports for how many frames,
// up to limit, the phase stays the same with consecutive offsets. The
// count is at least one when limit is positive.
func Span(t Timing, elapsed, limit int64) (Position, int64) {
	if limit <= 0 {
		return Resolve(t, elapsed), 0
	}

	if elapsed < t.Delay {
		return Position{Phase: Silent}, min(limit, t.Delay-elapsed)
	}

	clipLen := t.ClipLen()
	if clipLen <= 0 || t.ClipStart < 0 {
		return violation(t, t.ClipStart), limit
	}

	rel := elapsed - t.Delay
	if !t.Looping {
		if rel >= clipLen {
			return Position{Phase: Finished}, limit
		}
		return audible(t, rel), min(limit, clipLen-rel)
	}

	d := t.Period()
	phase := rel % d
	window := min(d, clipLen)
	if phase < window {
		return audible(t, phase), min(limit, window-phase)
	}
	return Position{Phase: Silent}, min(limit, d-phase)
}

func audible(t Timing, phase int64) Position {
	off := t.ClipStart + phase
	if off < t.ClipStart || off >= t.ClipEnd {
		return violation(t, off)
	}
	return Position{Phase: Audible, Offset: off}
}

func violation(t Timing, off int64) Position {
	if strictInvariants {
		panic(fmt.Errorf("%w: offset %d outside clip [%d, %d)", ErrInvariantViolation, off, t.ClipStart, t.ClipEnd))
	}
	return Position{Phase: Violation}
}
