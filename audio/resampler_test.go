// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"

	"github.com/ik5/soundscape/internal/audiotest"
)

// drain reads src to the end and returns every sample.
func drain(t *testing.T, src Source, bufSize int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, bufSize)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 10), 48000)
	if r.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 1, 50, func(frame int, _ int) float32 {
		return float32(frame) / 100
	})
	got := drain(t, NewResampler(src, 8000), 16)

	if len(got) != 50 {
		t.Fatalf("got %d samples, want 50", len(got))
	}
	for i, v := range got {
		if want := float32(i) / 100; math.Abs(float64(v-want)) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestResampler_Lengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		frames   int
		channels int
	}{
		{name: "downsample 44.1k to 16k", from: 44100, to: 16000, frames: 44100, channels: 1},
		{name: "upsample 8k to 48k", from: 8000, to: 48000, frames: 8000, channels: 2},
		{name: "upsample 44.1k to 48k", from: 44100, to: 48000, frames: 4410, channels: 2},
		{name: "extreme downsample", from: 96000, to: 8000, frames: 9600, channels: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.from, tt.channels, tt.frames, 220)
			got := drain(t, NewResampler(src, tt.to), 1024*tt.channels)

			frames := len(got) / tt.channels
			want := float64(tt.frames) * float64(tt.to) / float64(tt.from)
			if math.Abs(float64(frames)-want) > 2 {
				t.Errorf("got %d frames, want about %.0f", frames, want)
			}
			if len(got)%tt.channels != 0 {
				t.Errorf("got %d samples, not a whole number of frames", len(got))
			}
		})
	}
}

func TestResampler_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(22050, 2, 1000, 0.25)
	got := drain(t, NewResampler(src, 48000), 512)

	for i, v := range got {
		if math.Abs(float64(v-0.25)) > 1e-4 {
			t.Fatalf("sample %d = %v, want 0.25", i, v)
		}
	}
}

func TestResampler_ChannelsStaySeparate(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 2000, func(_ int, channel int) float32 {
		if channel == 0 {
			return 0.5
		}
		return -0.5
	})
	got := drain(t, NewResampler(src, 48000), 256)

	for f := 0; f+1 < len(got); f += 2 {
		if math.Abs(float64(got[f]-0.5)) > 1e-4 || math.Abs(float64(got[f+1]+0.5)) > 1e-4 {
			t.Fatalf("frame %d = (%v, %v), want (0.5, -0.5)", f/2, got[f], got[f+1])
		}
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 1, 0), 8000)
	n, err := r.ReadSamples(make([]float32, 64))

	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestResampler_VeryShortSource(t *testing.T) {
	t.Parallel()

	got := drain(t, NewResampler(audiotest.NewConstantSource(8000, 1, 2, 0.1), 16000), 64)
	if len(got) == 0 || len(got) > 5 {
		t.Errorf("got %d samples from a 2-frame source, want 1..5", len(got))
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 10), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); err != ErrInvalidDstSize {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func BenchmarkResampler_Upsample(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for range b.N {
		r := NewResampler(audiotest.NewSineSource(44100, 2, 44100, 440), 48000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
