// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"encoding/binary"
	"math"
)

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}

// ToInt16 converts src into dst as clamped 16-bit values stored in ints,
// the layout go-audio's IntBuffer expects. It returns the number of
// samples converted.
func ToInt16(dst []int, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = int(Float32ToInt16(src[i]))
	}
	return n
}

// Accumulate adds src scaled by gain into dst. No limiting is applied.
func Accumulate(dst, src []float32, gain float32) {
	n := min(len(dst), len(src))
	if gain == 1 {
		for i := range n {
			dst[i] += src[i]
		}
		return
	}
	for i := range n {
		dst[i] += src[i] * gain
	}
}

// PutFloat32LE encodes src as little-endian IEEE-754 floats into dst and
// returns the number of bytes written. dst must hold 4 bytes per sample.
func PutFloat32LE(dst []byte, src []float32) int {
	n := min(len(dst)/4, len(src))
	for i := range n {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(src[i]))
	}
	return n * 4
}
