// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ik5/soundscape/sound"
)

// Op is a command applied to every selected sound.
type Op int

const (
	OpPlay Op = iota + 1
	OpPause
	OpStop
	OpVolume
	OpLoop
	OpUnloop
	OpSetStart
	OpSetEnd
	OpResetEnd
	OpDelay
	OpGroup
	OpUngroup
	OpRemove
)

var opNames = map[Op]string{
	OpPlay:     "play",
	OpPause:    "pause",
	OpStop:     "stop",
	OpVolume:   "volume",
	OpLoop:     "loop",
	OpUnloop:   "unloop",
	OpSetStart: "set-start",
	OpSetEnd:   "set-end",
	OpResetEnd: "reset-end",
	OpDelay:    "delay",
	OpGroup:    "group",
	OpUngroup:  "ungroup",
	OpRemove:   "remove",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// persistent reports whether the op changes saved configuration.
func (o Op) persistent() bool {
	switch o {
	case OpPlay, OpPause, OpStop:
		return false
	}
	return true
}

// Command is one controller request.
type Command struct {
	Op       Op
	Selector Selector

	// Volume is the gain for OpVolume, 1 being 100%.
	Volume float64

	// Frames is the position for OpSetStart and OpSetEnd, the period for
	// OpLoop (0 loops at the clip end) and the delay for OpDelay.
	Frames int64

	// Group is the target of OpGroup and OpUngroup.
	Group string
}

// Outcome is the result of a command for one sound.
type Outcome struct {
	ID   sound.ID
	Name string
	Err  error
}

// Result collects the per-sound outcomes of a command.
type Result struct {
	Outcomes []Outcome
	// Unresolved holds the selector tokens that matched nothing. An empty
	// string stands for the zero Selector on an empty engine.
	Unresolved []string
	// Mutated reports whether saved configuration changed.
	Mutated bool
}

// Err joins every unresolved token and failed outcome, or returns nil
// when the command fully succeeded.
func (r Result) Err() error {
	var errs []error
	for _, tok := range r.Unresolved {
		e := &Error{Kind: UnresolvedSelector, Target: tok}
		if tok == "" {
			e.Err = ErrNoSounds
		}
		errs = append(errs, e)
	}
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}

// Succeeded counts outcomes without an error.
func (r Result) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Apply runs cmd atomically with respect to Tick.
func (e *Engine) Apply(cmd Command) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	targets, unresolved := e.resolve(cmd.Selector)
	res := Result{Unresolved: unresolved}

	var groupErr error
	if cmd.Op == OpGroup || cmd.Op == OpUngroup {
		groupErr = checkGroupName(cmd.Group)
	}

	for _, s := range targets {
		err := groupErr
		if err == nil {
			err = e.apply(s, cmd)
		}
		if err == nil && cmd.Op.persistent() {
			res.Mutated = true
		}
		res.Outcomes = append(res.Outcomes, Outcome{ID: s.ID(), Name: s.Name(), Err: err})
	}

	if res.Mutated {
		e.dirty = true
	}
	if cmd.Op == OpRemove && res.Succeeded() > 0 {
		e.log.Info("sounds removed", "selector", cmd.Selector.String(), "count", res.Succeeded())
	}
	return res
}

func checkGroupName(name string) error {
	if name == "" || strings.EqualFold(name, all) {
		return &Error{Kind: NameReserved, Target: name}
	}
	return nil
}

// apply mutates one sound. The caller holds e.mu.
func (e *Engine) apply(s *sound.Sound, cmd Command) error {
	var err error
	switch cmd.Op {
	case OpPlay:
		s.Play()
	case OpPause:
		s.Pause()
	case OpStop:
		s.Stop()
	case OpVolume:
		err = s.SetVolume(cmd.Volume)
	case OpLoop:
		err = s.SetLoop(cmd.Frames)
	case OpUnloop:
		s.Unloop()
	case OpSetStart:
		err = s.SetStart(cmd.Frames)
	case OpSetEnd:
		err = s.SetEnd(cmd.Frames)
	case OpResetEnd:
		s.ResetEnd()
	case OpDelay:
		err = s.SetDelay(cmd.Frames)
	case OpGroup:
		e.groups.Add(cmd.Group, s.ID())
	case OpUngroup:
		if !e.groups.Remove(cmd.Group, s.ID())[0] {
			return &Error{Kind: UnresolvedSelector, Target: cmd.Group, Err: ErrNotMember}
		}
	case OpRemove:
		e.remove(s)
	default:
		return &Error{Kind: InvalidRange, Target: s.Name(), Err: fmt.Errorf("%w: %v", ErrUnknownOp, cmd.Op)}
	}
	return classify(s.Name(), err)
}

func (e *Engine) remove(s *sound.Sound) {
	for i, cur := range e.sounds {
		if cur == s {
			e.sounds = append(e.sounds[:i], e.sounds[i+1:]...)
			break
		}
	}
	for _, g := range e.groups.Forget(s.ID()) {
		e.log.Info("group deleted", "group", g)
	}
}

// Play starts or resumes the selected sounds.
func (e *Engine) Play(sel Selector) Result { return e.Apply(Command{Op: OpPlay, Selector: sel}) }

func (e *Engine) Pause(sel Selector) Result { return e.Apply(Command{Op: OpPause, Selector: sel}) }

// Stop halts the selected sounds and rewinds them.
func (e *Engine) Stop(sel Selector) Result { return e.Apply(Command{Op: OpStop, Selector: sel}) }

// SetVolume sets the gain, 1 being 100%.
func (e *Engine) SetVolume(sel Selector, v float64) Result {
	return e.Apply(Command{Op: OpVolume, Selector: sel, Volume: v})
}

// Loop enables looping every period; zero loops at the end of the clip.
func (e *Engine) Loop(sel Selector, period time.Duration) Result {
	return e.Apply(Command{Op: OpLoop, Selector: sel, Frames: e.Frames(period)})
}

func (e *Engine) Unloop(sel Selector) Result { return e.Apply(Command{Op: OpUnloop, Selector: sel}) }

func (e *Engine) SetStart(sel Selector, pos time.Duration) Result {
	return e.Apply(Command{Op: OpSetStart, Selector: sel, Frames: e.Frames(pos)})
}

func (e *Engine) SetEnd(sel Selector, pos time.Duration) Result {
	return e.Apply(Command{Op: OpSetEnd, Selector: sel, Frames: e.Frames(pos)})
}

// ResetEnd lets the clip run to the end of the source again.
func (e *Engine) ResetEnd(sel Selector) Result { return e.Apply(Command{Op: OpResetEnd, Selector: sel}) }

func (e *Engine) SetDelay(sel Selector, d time.Duration) Result {
	return e.Apply(Command{Op: OpDelay, Selector: sel, Frames: e.Frames(d)})
}

// Group adds the selected sounds to group, creating it if needed.
func (e *Engine) Group(sel Selector, group string) Result {
	return e.Apply(Command{Op: OpGroup, Selector: sel, Group: group})
}

// Ungroup removes the selected sounds from group; the group goes away
// with its last member.
func (e *Engine) Ungroup(sel Selector, group string) Result {
	return e.Apply(Command{Op: OpUngroup, Selector: sel, Group: group})
}

func (e *Engine) Remove(sel Selector) Result { return e.Apply(Command{Op: OpRemove, Selector: sel}) }
