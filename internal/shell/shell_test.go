// SPDX-License-Identifier: EPL-2.0

package shell

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/ik5/soundscape/engine"
	"github.com/ik5/soundscape/internal/audiotest"
	"github.com/ik5/soundscape/sound"
)

// newTestShell returns a shell on a 1 kHz mono engine where every path
// except "missing.wav" loads three seconds of audio.
func newTestShell(t *testing.T, p Prompter) (*Shell, *engine.Engine, *bytes.Buffer) {
	t.Helper()

	loader := engine.LoaderFunc(func(path string) (sound.Source, error) {
		if filepath.Base(path) == "missing.wav" {
			return nil, os.ErrNotExist
		}
		return audiotest.NewFrameSource(1, 3000), nil
	})
	eng, err := engine.New(engine.Config{SampleRate: 1000, Channels: 1, TickFrames: 100}, loader)
	if err != nil {
		t.Fatal(err)
	}

	out := new(bytes.Buffer)
	return New(eng, out, WithPrompter(p)), eng, out
}

func run(t *testing.T, sh *Shell, out *bytes.Buffer, line string) string {
	t.Helper()

	out.Reset()
	if err := sh.Exec(line); err != nil {
		t.Fatalf("Exec(%q) error = %v", line, err)
	}
	return out.String()
}

func TestExec_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want string
	}{
		{"add -p sounds/horn.wav", "horn #1:\n\tnot playing\n\tvolume: 100%\n"},
		{"volume -v 150", "horn #1:\n\tnot playing\n\tvolume: 150%\n"},
		{"loop", "horn #1:\n\tnot playing\n\tvolume: 150%\n\tloops: every 3s\n"},
		{"loop horn -d 1m30s", "horn #1:\n\tnot playing\n\tvolume: 150%\n\tloops: every 1m30s\n"},
		{"unloop", "horn #1:\n\tnot playing\n\tvolume: 150%\n"},
		{"set-start -p 500ms", "horn #1:\n\tnot playing\n\tvolume: 150%\n\tstarts at: 500ms\n"},
		{"set-end -p 2s", "horn #1:\n\tnot playing\n\tvolume: 150%\n\tstarts at: 500ms\n\tends at: 2s\n"},
		{"set-end", "horn #1:\n\tnot playing\n\tvolume: 150%\n\tstarts at: 500ms\n"},
		{"delay -d 600ms", "horn #1:\n\tnot playing\n\tvolume: 150%\n\tstarts at: 500ms\n\tdelay: 600ms\n"},
		{"group -g battle", "horn #1:\n\tnot playing\n\tvolume: 150%\n\tstarts at: 500ms\n\tdelay: 600ms\n\tgroups: battle\n"},
		{"play -g battle", "horn #1:\n\tplaying\n\thas been playing for: 0s\n\tvolume: 150%\n\tstarts at: 500ms\n\tdelay: 600ms\n\tgroups: battle\n"},
		{"ungroup horn -g battle", "horn #1:\n\tplaying\n\thas been playing for: 0s\n\tvolume: 150%\n\tstarts at: 500ms\n\tdelay: 600ms\n"},
	}

	sh, _, out := newTestShell(t, Assume(true))
	for _, tt := range tests {
		if got := run(t, sh, out, tt.line); got != tt.want {
			t.Errorf("%s:\ngot  %q\nwant %q", tt.line, got, tt.want)
		}
	}
}

func TestExec_PlayTime(t *testing.T) {
	t.Parallel()

	sh, eng, out := newTestShell(t, Assume(true))
	run(t, sh, out, "add -p rain.wav")
	run(t, sh, out, "play")

	block := make([]float32, 100)
	for range 15 {
		eng.Tick(block)
	}

	got := run(t, sh, out, "pause rain")
	want := "rain #1:\n\tpaused\n\thas been playing for: 1s\n\tvolume: 100%\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExec_Errors(t *testing.T) {
	t.Parallel()

	sh, _, out := newTestShell(t, Assume(true))

	if got := run(t, sh, out, "play"); got != "error: no sounds, add one first\n" {
		t.Errorf("play on empty soundscape = %q", got)
	}

	got := run(t, sh, out, "add -p missing.wav")
	if !strings.HasPrefix(got, "error: source unavailable") {
		t.Errorf("add missing file = %q", got)
	}

	got = run(t, sh, out, "add -p a.wav -n all")
	if !strings.HasPrefix(got, "error: reserved name") {
		t.Errorf("add all = %q", got)
	}

	run(t, sh, out, "add -p rain.wav")
	got = run(t, sh, out, "play rain owl")
	if !strings.Contains(got, "rain #1:\n\tplaying") || !strings.HasSuffix(got, "error: nothing matches \"owl\"\n") {
		t.Errorf("partial play = %q", got)
	}

	got = run(t, sh, out, "volume -v -20")
	if !strings.Contains(got, "error: invalid range") {
		t.Errorf("negative volume = %q", got)
	}

	got = run(t, sh, out, "set-start -p 5s")
	if !strings.Contains(got, "error: invalid range") {
		t.Errorf("start past the end = %q", got)
	}

	got = run(t, sh, out, "ungroup -g birds")
	if !strings.Contains(got, "error: unresolved selector") {
		t.Errorf("ungroup non-member = %q", got)
	}
}

func TestExec_ParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want error
	}{
		{"unbalanced quotes", `add -p "rain.wav`, ErrUnbalancedQuotes},
		{"unknown command", "jump", nil},
		{"missing flag", "volume rain", nil},
		{"bad duration", "delay -d soon", nil},
		{"stray argument", "save out.json -p x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sh, _, _ := newTestShell(t, Assume(true))
			err := sh.Exec(tt.line)
			if err == nil {
				t.Fatal("Exec() error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Exec() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExec_BlankAndComments(t *testing.T) {
	t.Parallel()

	sh, _, out := newTestShell(t, Assume(true))
	for _, line := range []string{"", "   ", "# play all"} {
		if got := run(t, sh, out, line); got != "" {
			t.Errorf("Exec(%q) printed %q", line, got)
		}
	}
}

func TestExec_Help(t *testing.T) {
	t.Parallel()

	sh, _, out := newTestShell(t, Assume(true))
	got := run(t, sh, out, "help")
	for _, cmd := range []string{"add", "set-start", "ungroup", "load", "exit"} {
		if !strings.Contains(got, cmd) {
			t.Errorf("help does not mention %q", cmd)
		}
	}
}

func TestExec_Remove(t *testing.T) {
	t.Parallel()

	answer := Assume(false)
	sh, eng, out := newTestShell(t, &answer)
	run(t, sh, out, "add -p a.wav")
	run(t, sh, out, "add -p b.wav")
	run(t, sh, out, "group a b -g pair")

	run(t, sh, out, "remove -g pair")
	if eng.Len() != 2 {
		t.Fatalf("Len() = %d after declined remove", eng.Len())
	}

	answer = true
	got := run(t, sh, out, "remove -g pair")
	if got != "removed a #1\nremoved b #2\n" {
		t.Errorf("remove = %q", got)
	}
	if eng.Len() != 0 || len(eng.Groups()) != 0 {
		t.Errorf("Len() = %d, Groups() = %v", eng.Len(), eng.Groups())
	}
}

func TestExec_SaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scape.json")
	answer := Assume(false)
	sh, eng, out := newTestShell(t, &answer)

	run(t, sh, out, "add -p river.wav")
	run(t, sh, out, "loop -d 10s")
	if got := run(t, sh, out, "save -p "+path); got != "saved to "+path+"\n" {
		t.Errorf("save = %q", got)
	}
	if eng.Dirty() {
		t.Error("Dirty() after save")
	}

	// clean, so no question
	if got := run(t, sh, out, "load -p "+path); got != "loaded 1 sounds from "+path+"\n" {
		t.Errorf("load = %q", got)
	}

	run(t, sh, out, "volume -v 50")
	if got := run(t, sh, out, "load -p "+path); got != "load cancelled\n" {
		t.Errorf("declined load = %q", got)
	}

	run(t, sh, out, "load -p "+path+" --append")
	if eng.Len() != 2 {
		t.Errorf("Len() = %d after append, want 2", eng.Len())
	}

	got := run(t, sh, out, "load -p "+filepath.Join(t.TempDir(), "none.json"))
	if !strings.HasPrefix(got, "error: loading") {
		t.Errorf("load missing file = %q", got)
	}
}

func TestExec_Exit(t *testing.T) {
	t.Parallel()

	answer := Assume(false)
	sh, _, out := newTestShell(t, &answer)

	run(t, sh, out, "add -p a.wav")
	run(t, sh, out, "exit")
	if sh.Done() {
		t.Fatal("Done() after declined exit")
	}

	answer = true
	run(t, sh, out, "exit")
	if !sh.Done() {
		t.Error("Done() = false after confirmed exit")
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	sh, eng, out := newTestShell(t, Assume(true))
	script := "add -p a.wav\nbogus\nplay\nexit\nadd -p b.wav\n"

	if err := sh.Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if eng.Len() != 1 || eng.Playing() != 1 {
		t.Errorf("Len() = %d, Playing() = %d, want 1, 1", eng.Len(), eng.Playing())
	}
	if !strings.Contains(out.String(), "error: unknown command") {
		t.Errorf("output = %q", out.String())
	}
}

// lines feeds the REPL loop from a slice, then io.EOF.
type lines struct {
	queue   []string
	prompts []string
}

func (l *lines) SetPrompt(p string) { l.prompts = append(l.prompts, p) }

func (l *lines) Readline() (string, error) {
	if len(l.queue) == 0 {
		return "", io.EOF
	}
	line := l.queue[0]
	l.queue = l.queue[1:]
	if line == "^C" {
		return "", readline.ErrInterrupt
	}
	return line, nil
}

func TestLoop(t *testing.T) {
	t.Parallel()

	sh, eng, out := newTestShell(t, Assume(true))
	rl := &lines{queue: []string{"add -p a.wav", "^C", "n", "play", "exit", "maybe", "y", "stop"}}
	sh.prompt = linePrompter{rl: rl, out: out}

	if err := sh.loop(rl); err != nil {
		t.Fatalf("loop() error = %v", err)
	}
	if !sh.Done() {
		t.Error("Done() = false")
	}
	if eng.Playing() != 1 {
		t.Errorf("Playing() = %d, the line after exit must not run", eng.Playing())
	}
	if !strings.Contains(out.String(), `"maybe" is not a valid answer.`) {
		t.Errorf("output = %q", out.String())
	}
	if len(rl.prompts) == 0 || rl.prompts[len(rl.prompts)-1] != prompt {
		t.Errorf("prompt not restored: %q", rl.prompts)
	}
}

func TestLoop_EOF(t *testing.T) {
	t.Parallel()

	sh, _, out := newTestShell(t, Assume(true))
	rl := &lines{}
	sh.prompt = linePrompter{rl: rl, out: out}

	if err := sh.loop(rl); err != nil {
		t.Fatalf("loop() error = %v", err)
	}
	if !sh.Done() {
		t.Error("Done() = false on EOF with nothing to save")
	}
}

func TestLoop_InterruptAtConfirmation(t *testing.T) {
	t.Parallel()

	sh, _, out := newTestShell(t, Assume(true))
	rl := &lines{queue: []string{"add -p a.wav", "^C", "^C"}}
	sh.prompt = linePrompter{rl: rl, out: out}

	if err := sh.loop(rl); err != nil {
		t.Fatalf("loop() error = %v", err)
	}
	if !sh.Done() {
		t.Error("Done() = false after a second Ctrl-C")
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		gain float64
		want string
	}{
		{1, "100"},
		{0.3, "30"},
		{1.5, "150"},
		{0.125, "12.5"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := percent(tt.gain); got != tt.want {
			t.Errorf("percent(%v) = %q, want %q", tt.gain, got, tt.want)
		}
	}
}
