// SPDX-License-Identifier: EPL-2.0

// Package engine owns a soundscape: the ordered collection of sounds, the
// group index, and the mixer that renders every playing sound into one
// output block per tick.
//
// Commands and ticks run on different goroutines. A single mutex guards
// the collection; a command holds it while it touches its targets and Tick
// holds it for exactly one block, so a block never sees half of a command.
// Decoding new sources (Add, Restore) happens before the lock is taken.
//
// Sounds are addressed with a Selector. An empty selector means the sound
// added last, "all" means every sound, and any other token matches a sound
// name, then a numeric ID ("3" or "#3"), then a group name. Tokens that
// match nothing are reported next to the per-sound outcomes; the command
// still applies to everything that did resolve.
package engine
