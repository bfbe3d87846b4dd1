// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"fmt"

	"github.com/ik5/soundscape/dsp"
)

// Mix adds the sound's contribution for one block to dst, which holds
// len(dst)/channels interleaved frames, and advances the timeline by that
// many frames. scratch must be at least as long as dst.
//
// Only playing sounds contribute. A read failure stops the sound and is
// kept in Err. A non-looping sound that runs out is stopped. The returned
// count is the number of frames rendered as silence because of an
// invariant violation.
func (s *Sound) Mix(dst, scratch []float32, channels int) int64 {
	if s.state != Playing || channels < 1 {
		return 0
	}
	if s.src.Channels() != channels {
		s.fail(fmt.Errorf("%w: %d != %d", ErrChannelMismatch, s.src.Channels(), channels))
		return 0
	}

	t := s.Timing()
	frames := int64(len(dst) / channels)
	gain := float32(s.volume)

	var violations int64
	for done := int64(0); done < frames; {
		pos, n := Span(t, s.elapsed+done, frames-done)

		switch pos.Phase {
		case Audible:
			lo, hi := done*int64(channels), (done+n)*int64(channels)
			buf := scratch[:hi-lo]
			if err := s.src.ReadFrames(buf, pos.Offset); err != nil {
				s.fail(err)
				return violations
			}
			dsp.Accumulate(dst[lo:hi], buf, gain)
		case Finished:
			s.Stop()
			return violations
		case Violation:
			violations += n
		}

		done += n
	}

	s.advance(t, frames)
	return violations
}

func (s *Sound) advance(t Timing, frames int64) {
	s.elapsed = t.Wrap(s.elapsed + frames)

	// stop right away instead of waiting for the next block
	if !t.Looping && s.elapsed-t.Delay >= t.ClipLen() {
		s.Stop()
	}
}

func (s *Sound) fail(err error) {
	s.err = err
	s.Stop()
}
