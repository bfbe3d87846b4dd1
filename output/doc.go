// SPDX-License-Identifier: EPL-2.0

// Package output moves rendered blocks out of an engine.
//
// A Stream is an io.Reader of little-endian float32 frames. It calls Tick
// once per fixed block no matter how many bytes the consumer asks for, so
// callers that pull at their own cadence (a sound card) never split a
// tick. Package device plays a Stream through oto. FileSink renders blocks
// into a WAV file and is driven by Pump at wall-clock speed, or by
// RenderFrames for offline rendering.
package output
