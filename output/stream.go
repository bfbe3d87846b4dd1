// SPDX-License-Identifier: EPL-2.0

package output

import (
	"sync/atomic"

	"github.com/ik5/soundscape/dsp"
	"github.com/ik5/soundscape/engine"
)

// Ticker renders one block of interleaved frames per call.
// *engine.Engine satisfies it.
type Ticker interface {
	Tick(dst []float32)
	Config() engine.Config
}

// Stream encodes ticks as float32LE bytes. Read is not safe for concurrent
// use; Blocks is.
type Stream struct {
	src     Ticker
	block   []float32
	buf     []byte
	pending []byte
	blocks  atomic.Int64
}

func NewStream(src Ticker) *Stream {
	cfg := src.Config()
	n := cfg.TickFrames * cfg.Channels

	return &Stream{
		src:   src,
		block: make([]float32, n),
		buf:   make([]byte, n*4),
	}
}

// Read fills p completely, rendering as many blocks as it takes. Bytes of
// a block that do not fit are kept for the next call. It never fails.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			s.src.Tick(s.block)
			s.pending = s.buf[:dsp.PutFloat32LE(s.buf, s.block)]
			s.blocks.Add(1)
		}

		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}
	return n, nil
}

// Blocks reports how many ticks were rendered.
func (s *Stream) Blocks() int64 { return s.blocks.Load() }
