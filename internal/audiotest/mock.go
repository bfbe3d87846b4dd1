// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds deterministic audio sources for tests. Streaming
// sources satisfy audio.Source structurally; random-access sources follow
// the sound.Source contract, errors included.
package audiotest

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/soundscape/sound"
)

// MockSource is a streaming source (audio.Source) that generates its
// samples from a waveform function.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	waveform   func(frame int, channel int) float32
	closed     bool
}

// NewMockSource creates a streaming source of frames frames.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Reset rewinds the generator.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	count := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range count {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += count

	if m.generated >= m.frames {
		return count * m.channels, io.EOF
	}
	return count * m.channels, nil
}

// ErrReadFailed is returned by a FrameSource once Fail is set.
var ErrReadFailed = errors.New("audiotest: read failed")

// FrameSource is a random-access source (sound.Source) whose sample value
// is Base plus the frame index, identical on every channel, so tests can
// tell exactly which frame was read.
type FrameSource struct {
	channels int
	frames   int64
	Base     float32
	Fail     bool
	Reads    int
}

func NewFrameSource(channels int, frames int64) *FrameSource {
	return &FrameSource{channels: channels, frames: frames}
}

var _ sound.Source = (*FrameSource)(nil)

func (s *FrameSource) Channels() int { return s.channels }
func (s *FrameSource) Len() int64    { return s.frames }

func (s *FrameSource) ReadFrames(dst []float32, offset int64) error {
	s.Reads++
	if s.Fail {
		return ErrReadFailed
	}

	count := int64(len(dst) / s.channels)
	if offset < 0 || offset+count > s.frames {
		return fmt.Errorf("%w: frames [%d, %d) of %d", sound.ErrOutOfRange, offset, offset+count, s.frames)
	}
	for f := range count {
		for ch := range s.channels {
			dst[int(f)*s.channels+ch] = s.Base + float32(offset+f)
		}
	}
	return nil
}
