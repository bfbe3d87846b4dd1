// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"

	"github.com/ik5/soundscape/sound"
)

// Kind classifies the failures the engine reports.
type Kind int

const (
	UnresolvedSelector Kind = iota + 1
	InvalidRange
	SourceUnavailable
	InvariantViolation
	NameReserved
)

// Sentinels matched by errors.Is against an *Error of the same Kind.
var (
	ErrUnresolvedSelector = errors.New("unresolved selector")
	ErrInvalidRange       = errors.New("invalid range")
	ErrSourceUnavailable  = errors.New("source unavailable")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrNameReserved       = errors.New("reserved name")
)

var (
	// ErrEmptySource is the cause reported for sources without frames.
	ErrEmptySource = errors.New("source has no frames")

	// ErrNoSounds is the cause reported when the zero Selector is used
	// before any sound was added.
	ErrNoSounds = errors.New("no sound has been added yet")

	// ErrNotMember is the cause reported when ungrouping a sound that is
	// not in the group.
	ErrNotMember = errors.New("sound is not a member")

	// ErrNoLoader is the cause reported when an engine without a Loader
	// is asked to open a path.
	ErrNoLoader = errors.New("no loader configured")

	// ErrUnknownOp is reported for a Command with an Op the engine does
	// not know.
	ErrUnknownOp = errors.New("unknown operation")
)

func (k Kind) sentinel() error {
	switch k {
	case UnresolvedSelector:
		return ErrUnresolvedSelector
	case InvalidRange:
		return ErrInvalidRange
	case SourceUnavailable:
		return ErrSourceUnavailable
	case InvariantViolation:
		return ErrInvariantViolation
	case NameReserved:
		return ErrNameReserved
	}
	return nil
}

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a classified engine failure. Target names what failed: a
// selector token, a sound name or a source path.
type Error struct {
	Kind   Kind
	Target string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Target != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Target)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// classify wraps a failure from the sound package.
func classify(target string, err error) error {
	if err == nil {
		return nil
	}

	kind := InvalidRange
	if errors.Is(err, sound.ErrInvariantViolation) {
		kind = InvariantViolation
	}
	return &Error{Kind: kind, Target: target, Err: err}
}
