// SPDX-License-Identifier: EPL-2.0

package sound

import "errors"

var (
	// ErrInvalidRange is returned by setters for positions outside the
	// source, a clip start at or after the clip end, or negative values.
	ErrInvalidRange = errors.New("invalid range")

	// ErrOutOfRange is returned by Source.ReadFrames when the requested
	// frames run past the end of the source.
	ErrOutOfRange = errors.New("read out of range")

	// ErrInvalidLayout indicates a sample buffer that does not hold whole
	// frames, or a channel count below one.
	ErrInvalidLayout = errors.New("invalid sample layout")

	// ErrChannelMismatch is recorded when a source does not carry the
	// channel count of the output it is mixed into.
	ErrChannelMismatch = errors.New("source channel count does not match output")

	// ErrInvariantViolation marks an offset computed outside the clip
	// window. It is a logic error, never caused by user input.
	ErrInvariantViolation = errors.New("invariant violation")
)
