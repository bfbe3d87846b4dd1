// SPDX-License-Identifier: EPL-2.0

// Package sound models one independently controlled sound: a random-access
// decoded source, its clip window, loop and delay settings, its transport
// state, and how it contributes to a mixed output block.
//
// # Timeline
//
// Every sound keeps its own elapsed counter in frames. Resolve maps a
// Timing and an elapsed value to what the sound is doing at that frame:
//
//	elapsed < delay              silent (pre-roll)
//	t = elapsed - delay
//	no loop, t >= clip length    finished
//	no loop                      audible at clip start + t
//	loop with period D           phase = t mod D
//	  phase < min(D, clip len)   audible at clip start + phase
//	  otherwise                  silent (padding until the next cycle)
//
// A period of zero loops at the end of the clip. The delay is played once,
// before the first cycle.
//
// Span answers the same question for a run of frames, which lets Mix copy
// contiguous blocks from the source instead of resolving frame by frame.
//
// # Concurrency
//
// A Sound is not safe for concurrent use. The engine package guards every
// Sound with a single lock.
package sound
