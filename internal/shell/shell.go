// SPDX-License-Identifier: EPL-2.0

package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/ik5/soundscape/engine"
)

// Shell runs command lines against one engine. It is not safe for
// concurrent use; the engine it drives is.
type Shell struct {
	eng    *engine.Engine
	out    io.Writer
	prompt Prompter
	log    *slog.Logger
	done   bool
}

type Option func(*Shell)

// WithPrompter sets who answers confirmations. The default is Assume(true).
func WithPrompter(p Prompter) Option {
	return func(sh *Shell) { sh.prompt = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(sh *Shell) { sh.log = l }
}

func New(eng *engine.Engine, out io.Writer, opts ...Option) *Shell {
	sh := &Shell{
		eng:    eng,
		out:    out,
		prompt: Assume(true),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(sh)
	}
	return sh
}

// Done reports whether an exit was confirmed.
func (sh *Shell) Done() bool { return sh.done }

// Exec runs one line. Blank lines and lines starting with # do nothing.
// The returned error covers parsing and flags; per-sound failures are
// printed, not returned.
func (sh *Shell) Exec(line string) error {
	return sh.ExecContext(context.Background(), line)
}

// ExecContext is Exec where ctx cuts a running wait short.
func (sh *Shell) ExecContext(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnbalancedQuotes, err)
	}
	if len(args) == 0 {
		return nil
	}

	sh.log.Debug("exec", "args", args)

	root := sh.commands()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Run executes every line of r until EOF or a confirmed exit. Errors are
// printed and do not stop the run.
func (sh *Shell) Run(r io.Reader) error {
	return sh.RunContext(context.Background(), r)
}

// RunContext is Run that stops between lines once ctx is done.
func (sh *Shell) RunContext(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() && !sh.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sh.ExecContext(ctx, sc.Text()); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
	return sc.Err()
}

// WaitIdle blocks until no sound is playing or ctx is done. Looping
// sounds keep it waiting until ctx ends.
func (sh *Shell) WaitIdle(ctx context.Context) error {
	t := time.NewTicker(sh.eng.Duration(int64(sh.eng.Config().TickFrames)))
	defer t.Stop()

	for sh.eng.Playing() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}

// Quit asks for confirmation when there are unsaved changes and records
// the answer.
func (sh *Shell) Quit() (bool, error) {
	if sh.eng.Dirty() {
		ok, err := sh.prompt.Confirm("Are you sure you want to exit without saving?")
		if err != nil || !ok {
			return false, err
		}
	}
	sh.done = true
	return true, nil
}
