// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/soundscape/dsp"
)

// maxEmptyReads bounds how often a source may answer (0, nil) in a row
// before it is treated as exhausted.
const maxEmptyReads = 8

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation. It keeps the channel count and applies a one-pole
// low-pass on the input when downsampling.
type Resampler struct {
	src      Source
	rate     int
	channels int
	step     float64 // source frames per output frame
	pos      float64 // fraction between hist[1] and hist[2]

	// hist[0..3] are the frames at i-1, i, i+1, i+2. real marks frames that
	// came from the source rather than edge padding.
	hist   [4][]float32
	real   [4]bool
	primed bool

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	alpha  float32
	smooth []float32
}

func NewResampler(src Source, rate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(rate)

	r := &Resampler{
		src:      src,
		rate:     rate,
		channels: channels,
		step:     step,
		in:       make([]float32, 1024*channels),
		smooth:   make([]float32, channels),
	}
	if step > 1 {
		r.alpha = 0.5
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// next copies the next source frame into frame. ok is false once the
// source is exhausted.
func (r *Resampler) next(frame []float32) (ok bool, err error) {
	empty := 0
	for r.inPos >= r.inLen {
		if r.srcEOF || empty == maxEmptyReads {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.in)
		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("resampler read: %w", err)
		}
		if n == 0 {
			empty++
		}
		r.inPos, r.inLen = 0, n-n%r.channels
	}

	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.alpha > 0 {
		for c := range frame {
			frame[c] = r.alpha*frame[c] + (1-r.alpha)*r.smooth[c]
			r.smooth[c] = frame[c]
		}
	}
	return true, nil
}

// shift drops hist[0] and loads the next frame into hist[3], repeating the
// last frame once the source runs dry.
func (r *Resampler) shift() error {
	oldest := r.hist[0]
	copy(r.hist[:3], r.hist[1:])
	copy(r.real[:3], r.real[1:])
	r.hist[3] = oldest

	ok, err := r.next(r.hist[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[3], r.hist[2])
	}
	r.real[3] = ok
	return nil
}

func (r *Resampler) prime() error {
	ok, err := r.next(r.hist[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.smooth, r.hist[1])
	copy(r.hist[0], r.hist[1])
	r.real[1] = true

	for i := 2; i < 4; i++ {
		if r.real[i], err = r.next(r.hist[i]); err != nil {
			return err
		}
		if !r.real[i] {
			copy(r.hist[i], r.hist[i-1])
		}
	}
	r.primed = true
	return nil
}

// ReadSamples produces samples at the target rate. len(dst) must be a
// multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}
		if !r.real[1] {
			break
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = dsp.CatmullRom(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}
		written++
		r.pos += r.step
	}

	if !r.real[1] {
		return written * r.channels, io.EOF
	}
	return written * r.channels, nil
}
