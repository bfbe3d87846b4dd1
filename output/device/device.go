// SPDX-License-Identifier: EPL-2.0

// Package device plays engine output on the default sound card through
// oto. Package output stays free of cgo without it.
package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/soundscape/output"
)

// DefaultBuffer is the playback buffer when Options leaves it unset.
// Longer buffers survive scheduling hiccups; commands take longer to
// become audible.
const DefaultBuffer = 100 * time.Millisecond

type Options struct {
	BufferSize time.Duration
}

// Device plays a Stream on the default sound card. oto allows a single
// context per process, so only one Device may be open at a time.
type Device struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	stream *output.Stream
}

// Open opens the sound card in the format of src and starts pulling
// blocks from it.
func Open(src output.Ticker, opts Options) (*Device, error) {
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBuffer
	}

	cfg := src.Config()
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   opts.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("device: opening sound card: %w", err)
	}
	<-ready

	d := &Device{ctx: ctx, stream: output.NewStream(src)}
	d.player = ctx.NewPlayer(d.stream)
	d.player.Play()
	return d, nil
}

// Stream returns the stream the device reads from.
func (d *Device) Stream() *output.Stream { return d.stream }

// Err reports a playback failure, if any.
func (d *Device) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.player == nil {
		return nil
	}
	return d.player.Err()
}

// Close stops playback and suspends the context.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.player == nil {
		return nil
	}
	err := d.player.Close()
	d.player = nil
	if serr := d.ctx.Suspend(); err == nil {
		err = serr
	}
	return err
}
