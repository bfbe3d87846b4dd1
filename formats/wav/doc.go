// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV files with github.com/go-audio/wav.
//
// Decoder accepts integer PCM at 16, 24 or 32 bits, any channel count and
// any sample rate, and yields float32 samples in [-1.0, 1.0]. Inputs that
// are not io.ReadSeekers are buffered in memory first.
//
// Writer encodes float32 frames as 16-bit PCM; the soundscape file sink
// uses it to record the mix:
//
//	f, _ := os.Create("mix.wav")
//	w, _ := wav.NewWriter(f, 48000, 2)
//	_ = w.WriteFrames(tick)
//	_ = w.Close()
//	_ = f.Close()
package wav
