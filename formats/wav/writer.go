// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/soundscape/dsp"
)

// Writer streams interleaved float32 frames into a 16-bit PCM WAV file.
// The header sizes are patched on Close, which is why it needs a
// WriteSeeker.
type Writer struct {
	enc      *gowav.Encoder
	buf      *goaudio.IntBuffer
	channels int
	frames   int64
	closed   bool
}

func NewWriter(w io.WriteSeeker, sampleRate, channels int) (*Writer, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrInvalidWriterLayout
	}

	return &Writer{
		enc:      gowav.NewEncoder(w, sampleRate, 16, channels, pcmFormat),
		channels: channels,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

// WriteFrames appends samples, clamping them to [-1, 1]. len(samples)
// must be a multiple of the channel count.
func (w *Writer) WriteFrames(samples []float32) error {
	if w.closed {
		return ErrWriterClosed
	}
	if len(samples)%w.channels != 0 {
		return fmt.Errorf("wav: %d samples for %d channels", len(samples), w.channels)
	}
	if len(samples) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	dsp.ToInt16(w.buf.Data, samples)

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	w.frames += int64(len(samples) / w.channels)
	return nil
}

// Frames reports how many frames were written so far.
func (w *Writer) Frames() int64 { return w.frames }

// Close finalizes the header. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}
