// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"fmt"
	"math"
)

// ID identifies a sound for the lifetime of an engine. IDs are never
// reused.
type ID uint64

func (id ID) String() string { return fmt.Sprintf("#%d", uint64(id)) }

// State is the transport state of a sound.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Sound is one source under independent control.
type Sound struct {
	id   ID
	name string
	path string
	src  Source

	volume    float64
	clipStart int64
	clipEnd   int64
	clipped   bool // clipEnd was set explicitly
	looping   bool
	period    int64
	delay     int64

	state   State
	elapsed int64
	err     error
}

// New creates a stopped sound at full volume covering all of src.
func New(id ID, name, path string, src Source) *Sound {
	return &Sound{
		id:      id,
		name:    name,
		path:    path,
		src:     src,
		volume:  1,
		clipEnd: src.Len(),
	}
}

func (s *Sound) ID() ID           { return s.id }
func (s *Sound) Name() string     { return s.name }
func (s *Sound) Path() string     { return s.path }
func (s *Sound) Source() Source   { return s.src }
func (s *Sound) Len() int64       { return s.src.Len() }
func (s *Sound) Volume() float64  { return s.volume }
func (s *Sound) State() State     { return s.state }
func (s *Sound) Elapsed() int64   { return s.elapsed }
func (s *Sound) ClipStart() int64 { return s.clipStart }
func (s *Sound) ClipEnd() int64   { return s.clipEnd }
func (s *Sound) Delay() int64     { return s.delay }

// Clipped reports whether the clip end was set explicitly rather than
// following the length of the source.
func (s *Sound) Clipped() bool { return s.clipped }

// Loop returns whether the sound loops and its configured period. A zero
// period loops at the end of the clip.
func (s *Sound) Loop() (bool, int64) { return s.looping, s.period }

// Err is the last failure recorded while mixing. Play clears it.
func (s *Sound) Err() error { return s.err }

func (s *Sound) Timing() Timing {
	return Timing{
		ClipStart:  s.clipStart,
		ClipEnd:    s.clipEnd,
		Looping:    s.looping,
		LoopPeriod: s.period,
		Delay:      s.delay,
	}
}

// Play starts a stopped sound from the beginning, or resumes a paused one
// where it left off. Playing an already playing sound does nothing.
func (s *Sound) Play() {
	s.err = nil
	s.state = Playing
}

// Pause freezes a playing sound. Stopped sounds stay stopped.
func (s *Sound) Pause() {
	if s.state == Playing {
		s.state = Paused
	}
}

// Stop halts the sound and rewinds it.
func (s *Sound) Stop() {
	s.state = Stopped
	s.elapsed = 0
}

// SetVolume sets the gain; 1 is unity. There is no upper bound.
func (s *Sound) SetVolume(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: volume %v", ErrInvalidRange, v)
	}
	s.volume = v
	return nil
}

// SetStart moves the start of the clip window. It must stay before the
// clip end.
func (s *Sound) SetStart(pos int64) error {
	if pos < 0 || pos >= s.clipEnd {
		return fmt.Errorf("%w: start %d not in [0, %d)", ErrInvalidRange, pos, s.clipEnd)
	}
	s.clipStart = pos
	return nil
}

// SetEnd moves the end of the clip window. It must lie after the clip
// start and within the source.
func (s *Sound) SetEnd(pos int64) error {
	if pos <= s.clipStart || pos > s.Len() {
		return fmt.Errorf("%w: end %d not in (%d, %d]", ErrInvalidRange, pos, s.clipStart, s.Len())
	}
	s.clipEnd = pos
	s.clipped = true
	return nil
}

// ResetEnd makes the clip run to the end of the source again.
func (s *Sound) ResetEnd() {
	s.clipEnd = s.Len()
	s.clipped = false
}

// SetLoop enables looping with the given period in frames.
func (s *Sound) SetLoop(period int64) error {
	if period < 0 {
		return fmt.Errorf("%w: loop period %d", ErrInvalidRange, period)
	}
	s.looping = true
	s.period = period
	return nil
}

func (s *Sound) Unloop() {
	s.looping = false
	s.period = 0
}

// SetDelay sets the pre-roll played before the first frame.
func (s *Sound) SetDelay(frames int64) error {
	if frames < 0 {
		return fmt.Errorf("%w: delay %d", ErrInvalidRange, frames)
	}
	s.delay = frames
	return nil
}
