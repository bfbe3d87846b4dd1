// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives used to bring decoded
// files into the engine's format.
//
//   - Source: a forward-only stream of interleaved float32 samples
//   - Registry: decoders keyed by file extension
//   - Resampler: sample rate conversion with Catmull-Rom interpolation
//   - ChannelMixer: channel count conversion (down-mix by averaging,
//     up-mix by repetition)
//
// A typical pipeline, as used by the file loader:
//
//	dec, _ := registry.Lookup("rain.ogg")
//	src, _ := dec.Decode(file)
//	src = audio.NewResampler(src, 48000)
//	src = audio.NewChannelMixer(src, 2)
//
// Samples are float32 in [-1.0, 1.0]. ReadSamples returns io.EOF once the
// stream is done; any other error is a decoding or I/O failure.
package audio
