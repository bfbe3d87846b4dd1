// SPDX-License-Identifier: EPL-2.0

package shell

import (
	"fmt"

	"github.com/google/shlex"
)

// Prompter answers the questions commands ask: yes/no before destructive
// commands, and free text when a file is missing.
type Prompter interface {
	Confirm(question string) (bool, error)
	Ask(question string) (string, error)
}

// Assume answers every question with itself and leaves free-text
// questions blank. Assume(true) suits scripts.
type Assume bool

func (a Assume) Confirm(string) (bool, error) { return bool(a), nil }
func (a Assume) Ask(string) (string, error)   { return "", nil }

// AskPath asks for a new location of a sound whose file could not be
// opened. It is an engine.PathFallback: an empty answer, or no answer at
// all, skips the sound. Answers are split like command lines so quoted
// paths work.
func (sh *Shell) AskPath(name, path string, cause error) string {
	fmt.Fprintf(sh.out, "error: %v\n", cause)
	for {
		answer, err := sh.prompt.Ask(fmt.Sprintf("Type in new path for %s (leave empty to skip): ", name))
		if err != nil {
			sh.log.Debug("path prompt aborted", "name", name, "err", err)
			return ""
		}

		args, err := shlex.Split(answer)
		switch {
		case err != nil:
			fmt.Fprintf(sh.out, "error: %v: %v\n", ErrUnbalancedQuotes, err)
		case len(args) == 0:
			fmt.Fprintf(sh.out, "skipping %s\n", name)
			return ""
		case len(args) > 1:
			fmt.Fprintf(sh.out, "error: expected one path, got %d\n", len(args))
		default:
			return args[0]
		}
	}
}
