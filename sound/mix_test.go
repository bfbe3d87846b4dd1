// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"errors"
	"testing"
)

// mixFrames runs one block of frames frames and returns the mono output.
func mixFrames(s *Sound, frames int) []float32 {
	dst := make([]float32, frames)
	s.Mix(dst, make([]float32, frames), 1)
	return dst
}

func TestMix_ReadsClipWindow(t *testing.T) {
	t.Parallel()

	src := newRamp(1, 100)
	src.base = 1 // frame 0 is audible too
	s := New(1, "a", "", src)
	_ = s.SetStart(10)
	_ = s.SetEnd(14)
	s.Play()

	got := mixFrames(s, 6)
	want := []float32{11, 12, 13, 14, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}
	if s.State() != Stopped || s.Elapsed() != 0 {
		t.Errorf("after completion: state %v elapsed %d", s.State(), s.Elapsed())
	}
}

func TestMix_CompletesAtBlockEdge(t *testing.T) {
	t.Parallel()

	s := New(1, "a", "", newRamp(1, 8))
	s.Play()
	mixFrames(s, 8)
	if s.State() != Stopped {
		t.Errorf("State() = %v, want stopped right after the last frame", s.State())
	}
}

func TestMix_LoopWithPadding(t *testing.T) {
	t.Parallel()

	src := newRamp(1, 4)
	src.base = 1
	s := New(1, "a", "", src)
	_ = s.SetLoop(6)
	_ = s.SetDelay(2)
	s.Play()

	got := mixFrames(s, 16)
	want := []float32{0, 0, 1, 2, 3, 4, 0, 0, 1, 2, 3, 4, 0, 0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d = %v, want %v (got %v)", i, got[i], want[i], got)
		}
	}
	if s.State() != Playing {
		t.Errorf("State() = %v, want playing", s.State())
	}
	// horizon is delay + period = 8
	if s.Elapsed() != 2+(16-2)%6 {
		t.Errorf("Elapsed() = %d, want %d", s.Elapsed(), 2+(16-2)%6)
	}
}

func TestMix_VolumeAndAccumulate(t *testing.T) {
	t.Parallel()

	src := newRamp(2, 10)
	src.base = 1
	s := New(1, "a", "", src)
	_ = s.SetVolume(2.5)
	s.Play()

	dst := []float32{1, 1, 1, 1}
	s.Mix(dst, make([]float32, 4), 2)
	want := []float32{3.5, 3.5, 6, 6}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestMix_ChannelMismatch(t *testing.T) {
	t.Parallel()

	s := New(1, "a", "", newRamp(1, 10))
	s.Play()
	s.Mix(make([]float32, 4), make([]float32, 4), 2)
	if !errors.Is(s.Err(), ErrChannelMismatch) || s.State() != Stopped {
		t.Errorf("err %v state %v, want ErrChannelMismatch and stopped", s.Err(), s.State())
	}
}

func TestMix_ReadFailure(t *testing.T) {
	t.Parallel()

	src := newRamp(1, 10)
	s := New(1, "a", "", src)
	s.Play()
	mixFrames(s, 3)

	src.fail = true
	mixFrames(s, 3)
	if !errors.Is(s.Err(), errRampFailed) {
		t.Errorf("Err() = %v, want ErrReadFailed", s.Err())
	}
	if s.State() != Stopped {
		t.Errorf("State() = %v, want stopped", s.State())
	}
}

func TestMix_StoppedIsSilent(t *testing.T) {
	t.Parallel()

	src := newRamp(1, 10)
	s := New(1, "a", "", src)
	mixFrames(s, 5)
	if src.reads != 0 || s.Elapsed() != 0 {
		t.Errorf("stopped sound read %d times, elapsed %d", src.reads, s.Elapsed())
	}
}

func TestMix_RunsPerSpan(t *testing.T) {
	t.Parallel()

	src := newRamp(1, 1000)
	s := New(1, "a", "", src)
	s.Play()
	mixFrames(s, 512)
	if src.reads != 1 {
		t.Errorf("Reads = %d, want a single contiguous read", src.reads)
	}
}

func BenchmarkMix(b *testing.B) {
	pcm, _ := NewPCM(2, make([]float32, 2*48000))
	s := New(1, "bench", "", pcm)
	_ = s.SetLoop(0)
	s.Play()

	dst := make([]float32, 2*512)
	scratch := make([]float32, len(dst))
	b.ReportAllocs()

	for b.Loop() {
		s.Mix(dst, scratch, 2)
	}
}
