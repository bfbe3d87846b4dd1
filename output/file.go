// SPDX-License-Identifier: EPL-2.0

package output

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/soundscape/formats/wav"
)

// FileSink renders blocks into a 16-bit WAV file.
type FileSink struct {
	src   Ticker
	f     *os.File
	w     *wav.Writer
	block []float32
}

func NewFileSink(path string, src Ticker) (*FileSink, error) {
	cfg := src.Config()

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	w, err := wav.NewWriter(f, cfg.SampleRate, cfg.Channels)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("output: %w", err)
	}

	return &FileSink{
		src:   src,
		f:     f,
		w:     w,
		block: make([]float32, cfg.TickFrames*cfg.Channels),
	}, nil
}

// Render ticks once and appends the block to the file.
func (s *FileSink) Render() error {
	if s.f == nil {
		return ErrSinkClosed
	}

	s.src.Tick(s.block)
	return s.w.WriteFrames(s.block)
}

// RenderFrames ticks until n more frames are written. The last tick is
// cut short so the file ends exactly at n; the engine still advances by
// the whole tick.
func (s *FileSink) RenderFrames(n int64) error {
	if s.f == nil {
		return ErrSinkClosed
	}

	channels := s.src.Config().Channels
	for n > 0 {
		s.src.Tick(s.block)
		samples := min(int64(len(s.block)), n*int64(channels))
		if err := s.w.WriteFrames(s.block[:samples]); err != nil {
			return err
		}
		n -= samples / int64(channels)
	}
	return nil
}

// Frames reports how many frames were written.
func (s *FileSink) Frames() int64 { return s.w.Frames() }

// Close finalizes the WAV header and closes the file.
func (s *FileSink) Close() error {
	if s.f == nil {
		return nil
	}

	err := s.w.Close()
	err = errors.Join(err, s.f.Close())
	s.f = nil
	return err
}
