// SPDX-License-Identifier: EPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
)

const prompt = "$ "

// lineReader is the part of *readline.Instance the REPL needs.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(string)
}

// linePrompter asks questions on the terminal the REPL reads from.
type linePrompter struct {
	rl  lineReader
	out io.Writer
}

func (p linePrompter) Confirm(question string) (bool, error) {
	p.rl.SetPrompt(question + " Y/N: ")
	defer p.rl.SetPrompt(prompt)

	for {
		answer, err := p.rl.Readline()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintf(p.out, "%q is not a valid answer.\n", answer)
	}
}

func (p linePrompter) Ask(question string) (string, error) {
	p.rl.SetPrompt(question)
	defer p.rl.SetPrompt(prompt)

	return p.rl.Readline()
}

// REPL reads commands from the terminal until a confirmed exit. Ctrl-C
// and Ctrl-D behave like exit. historyFile may be empty.
func (sh *Shell) REPL(historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	sh.out = rl.Stdout()
	sh.prompt = linePrompter{rl: rl, out: sh.out}
	return sh.loop(rl)
}

func (sh *Shell) loop(rl lineReader) error {
	for !sh.done {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt), errors.Is(err, io.EOF):
			if _, err := sh.quitOnSignal(); err != nil {
				return err
			}
			continue
		case err != nil:
			return err
		}

		if err := sh.execInterruptible(line); err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, context.Canceled) {
				continue
			}
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
	return nil
}

// execInterruptible runs line so that Ctrl-C stops a wait instead of the
// program.
func (sh *Shell) execInterruptible(line string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return sh.ExecContext(ctx, line)
}

// quitOnSignal is Quit where a second Ctrl-C or Ctrl-D at the
// confirmation counts as yes.
func (sh *Shell) quitOnSignal() (bool, error) {
	ok, err := sh.Quit()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		sh.done = true
		return true, nil
	}
	return ok, err
}
