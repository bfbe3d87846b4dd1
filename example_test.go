// SPDX-License-Identifier: EPL-2.0

package soundscape_test

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/soundscape"
	"github.com/ik5/soundscape/engine"
	"github.com/ik5/soundscape/formats/wav"
	"github.com/ik5/soundscape/internal/audiotest"
)

// Example wires a FileLoader into an engine and renders a few blocks.
func Example() {
	dir, _ := os.MkdirTemp("", "soundscape")
	defer os.RemoveAll(dir)

	// half a second of mono tone at 8 kHz
	path := filepath.Join(dir, "bell.wav")
	f, _ := os.Create(path)
	w, _ := wav.NewWriter(f, 8000, 1)
	tone := make([]float32, 4000)
	for i := range tone {
		tone[i] = 0.5
	}
	w.WriteFrames(tone)
	w.Close()
	f.Close()

	loader := soundscape.NewFileLoader(8000, 2)
	eng, err := engine.New(engine.Config{SampleRate: 8000, Channels: 2, TickFrames: 1000}, loader)
	if err != nil {
		panic(err)
	}

	if _, err := eng.Add(path, ""); err != nil {
		panic(err)
	}
	eng.SetEnd(engine.Select("bell"), 250*time.Millisecond)
	eng.Play(engine.Select("bell"))

	block := make([]float32, 2*eng.Config().TickFrames)
	for i := range 3 {
		eng.Tick(block)
		st, _ := eng.Status(engine.Select("bell"))
		fmt.Printf("block %d: %v, first sample %.2f\n", i, st[0].State, block[0])
	}
	// Output:
	// block 0: playing, first sample 0.50
	// block 1: stopped, first sample 0.50
	// block 2: stopped, first sample 0.00
}

// ExampleDecode converts any audio.Source into the engine's format.
func ExampleDecode() {
	src := audiotest.NewConstantSource(44100, 1, 44100, 0.25)

	pcm, err := soundscape.Decode(src, 48000, 2, soundscape.DefaultBufferSize)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d channels, about one second: %v\n", pcm.Channels(), pcm.Len() > 47900 && pcm.Len() < 48100)
	// Output: 2 channels, about one second: true
}
