// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "max positive", input: 1, want: math.MaxInt16},
		{name: "max negative", input: -1, want: -math.MaxInt16},
		{name: "half positive", input: 0.5, want: 16383},
		{name: "half negative", input: -0.5, want: -16383},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp under min", input: -3, want: -math.MaxInt16},
		{name: "loud mix stays in range", input: 100, want: math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1.0)
	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := Float32ToInt16(float32(f))
		if curr < prev {
			t.Errorf("not monotonic at %v: %v < %v", f, curr, prev)
		}
		prev = curr
	}
}

func TestToInt16(t *testing.T) {
	t.Parallel()

	dst := make([]int, 3)
	n := ToInt16(dst, []float32{0, 2, -0.5, 0.25})

	if n != 3 {
		t.Fatalf("ToInt16() n = %d, want 3", n)
	}
	want := []int{0, math.MaxInt16, -16383}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestAccumulate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dst  []float32
		src  []float32
		gain float32
		want []float32
	}{
		{
			name: "unity gain",
			dst:  []float32{0.1, 0.2},
			src:  []float32{0.5, 0.5},
			gain: 1,
			want: []float32{0.6, 0.7},
		},
		{
			name: "gain above unity is not limited",
			dst:  []float32{0.5, 0},
			src:  []float32{1, -1},
			gain: 2,
			want: []float32{2.5, -2},
		},
		{
			name: "shorter src leaves the tail",
			dst:  []float32{1, 1, 1},
			src:  []float32{1},
			gain: 0.5,
			want: []float32{1.5, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			Accumulate(tt.dst, tt.src, tt.gain)
			for i := range tt.want {
				if math.Abs(float64(tt.dst[i]-tt.want[i])) > 1e-6 {
					t.Errorf("dst[%d] = %v, want %v", i, tt.dst[i], tt.want[i])
				}
			}
		})
	}
}

func TestPutFloat32LE(t *testing.T) {
	t.Parallel()

	src := []float32{0.5, -1.25, 3}
	dst := make([]byte, 10) // room for two samples only

	n := PutFloat32LE(dst, src)
	if n != 8 {
		t.Fatalf("PutFloat32LE() = %d, want 8", n)
	}
	for i := range 2 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(dst[i*4:]))
		if got != src[i] {
			t.Errorf("sample %d = %v, want %v", i, got, src[i])
		}
	}
}

func TestAccumulate_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	dst := make([]float32, 1024)
	src := make([]float32, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		Accumulate(dst, src, 0.8)
	})
	if allocs > 0 {
		t.Errorf("Accumulate allocated %v times, want 0", allocs)
	}
}

func BenchmarkAccumulate(b *testing.B) {
	dst := make([]float32, 512)
	src := make([]float32, 512)
	for i := range src {
		src[i] = float32(math.Sin(float64(i) * 0.1))
	}

	b.ReportAllocs()
	for range b.N {
		Accumulate(dst, src, 0.7)
	}
}
