// SPDX-License-Identifier: EPL-2.0

package sound

import "fmt"

// Source is decoded audio with random access by frame.
type Source interface {
	Channels() int
	// Len is the total length in frames.
	Len() int64
	// ReadFrames fills dst with len(dst)/Channels() interleaved frames
	// starting at offset. It fails with ErrOutOfRange when the frames run
	// past Len.
	ReadFrames(dst []float32, offset int64) error
}

// PCM is an immutable in-memory Source of interleaved float32 samples.
type PCM struct {
	channels int
	data     []float32
}

// NewPCM wraps data. The slice is owned by the PCM afterwards.
func NewPCM(channels int, data []float32) (*PCM, error) {
	if channels < 1 || len(data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples in %d channels", ErrInvalidLayout, len(data), channels)
	}

	return &PCM{channels: channels, data: data}, nil
}

func (p *PCM) Channels() int { return p.channels }
func (p *PCM) Len() int64    { return int64(len(p.data) / p.channels) }

func (p *PCM) ReadFrames(dst []float32, offset int64) error {
	frames := int64(len(dst) / p.channels)
	if offset < 0 || offset+frames > p.Len() {
		return fmt.Errorf("%w: frames [%d, %d) of %d", ErrOutOfRange, offset, offset+frames, p.Len())
	}

	start := offset * int64(p.channels)
	copy(dst, p.data[start:start+frames*int64(p.channels)])
	return nil
}
