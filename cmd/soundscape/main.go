// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/ik5/soundscape"
	"github.com/ik5/soundscape/engine"
	"github.com/ik5/soundscape/internal/shell"
	"github.com/ik5/soundscape/output"
	"github.com/ik5/soundscape/output/device"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config

	cmd := &cobra.Command{
		Use:   "soundscape",
		Short: "Layer looping sounds into a soundscape",
		Long: `soundscape mixes any number of audio files into one stream and lets you
play, loop, clip, delay and group them from an interactive prompt.

When commands come from a pipe or a file, soundscape keeps playing after
the last one until nothing plays any more or it is interrupted.

Examples:
  soundscape
  soundscape --load tavern.json
  soundscape --out session.wav < script.txt`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.rate, "rate", 48000, "output sample rate in Hz")
	f.IntVar(&cfg.channels, "channels", 2, "output channels (1 or 2)")
	f.IntVar(&cfg.tick, "tick", engine.DefaultTickFrames, "frames rendered per mixer tick")
	f.StringVarP(&cfg.out, "out", "o", "", "render to this WAV file instead of the sound card")
	f.DurationVar(&cfg.deviceBuffer, "device-buffer", device.DefaultBuffer, "sound card buffer length")
	f.StringVar(&cfg.history, "history", defaultHistory(), "prompt history file, empty to disable")
	f.StringVarP(&cfg.load, "load", "l", "", "soundscape file to load at start")
	f.StringVar(&cfg.logLevel, "log-level", "warn", "debug, info, warn or error")
	return cmd
}

func run(ctx context.Context, cfg config) error {
	log := cfg.logger()

	loader := soundscape.NewFileLoader(cfg.rate, cfg.channels)
	eng, err := engine.New(engine.Config{
		SampleRate: cfg.rate,
		Channels:   cfg.channels,
		TickFrames: cfg.tick,
	}, loader, engine.WithLogger(log))
	if err != nil {
		return err
	}

	if cfg.load != "" {
		res, err := eng.Load(cfg.load, engine.Replace)
		if err != nil {
			return err
		}
		if err := res.Err(); err != nil {
			log.Warn("some sounds did not load", "err", err)
		}
	}

	stop, err := startOutput(ctx, cfg, eng)
	if err != nil {
		return err
	}
	defer func() {
		if err := stop(); err != nil {
			log.Error("closing output", "err", err)
		}
	}()

	sh := shell.New(eng, os.Stdout, shell.WithLogger(log))
	if readline.IsTerminal(int(os.Stdin.Fd())) {
		eng.SetPathFallback(sh.AskPath)
		return sh.REPL(cfg.history)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return runScript(ctx, sh, os.Stdin)
}

// runScript runs the commands in r, then lets the soundscape play until
// it falls silent or ctx ends. Ending ctx is not an error.
func runScript(ctx context.Context, sh *shell.Shell, r io.Reader) error {
	err := sh.RunContext(ctx, r)
	if err == nil && !sh.Done() {
		err = sh.WaitIdle(ctx)
	}
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// startOutput opens the sound card, or a WAV file fed at real-time
// speed, and returns the function that shuts it down.
func startOutput(ctx context.Context, cfg config, eng *engine.Engine) (func() error, error) {
	if cfg.out == "" {
		dev, err := device.Open(eng, device.Options{BufferSize: cfg.deviceBuffer})
		if err != nil {
			return nil, err
		}
		return dev.Close, nil
	}

	sink, err := output.NewFileSink(cfg.out, eng)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	var (
		wg      sync.WaitGroup
		pumpErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		pumpErr = output.Pump(ctx, eng.Duration(int64(cfg.tick)), sink)
	}()

	return func() error {
		cancel()
		wg.Wait()
		return errors.Join(pumpErr, sink.Close())
	}, nil
}
