// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/ik5/soundscape/audio"
)

const channels = 2

// streamer is the part of beep.StreamSeekCloser the source uses.
type streamer interface {
	Stream(samples [][2]float64) (n int, ok bool)
	Err() error
	Close() error
}

type source struct {
	st         streamer
	sampleRate int
	frames     [][2]float64
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return s.st.Close() }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	want := len(dst) / channels
	if want == 0 {
		return 0, nil
	}
	if cap(s.frames) < want {
		s.frames = make([][2]float64, want)
	}
	s.frames = s.frames[:want]

	n, ok := s.st.Stream(s.frames)
	for i, f := range s.frames[:n] {
		dst[2*i] = float32(f[0])
		dst[2*i+1] = float32(f[1])
	}

	if !ok || n < want {
		s.done = true
		if err := s.st.Err(); err != nil {
			return 2 * n, fmt.Errorf("flac: %w", err)
		}
		return 2 * n, io.EOF
	}
	return 2 * n, nil
}

// Decoder reads FLAC streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	st, format, err := flac.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("flac: %w", err)
	}

	return newSource(st, format), nil
}

func newSource(st streamer, format beep.Format) *source {
	return &source{st: st, sampleRate: int(format.SampleRate)}
}
