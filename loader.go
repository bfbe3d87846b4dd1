// SPDX-License-Identifier: EPL-2.0

package soundscape

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/soundscape/audio"
	"github.com/ik5/soundscape/formats/aiff"
	"github.com/ik5/soundscape/formats/flac"
	"github.com/ik5/soundscape/formats/mp3"
	"github.com/ik5/soundscape/formats/vorbis"
	"github.com/ik5/soundscape/formats/wav"
	"github.com/ik5/soundscape/sound"
)

// DefaultBufferSize is the number of samples read per call while draining
// a decoder.
const DefaultBufferSize = 4096

// maxEmptyReads bounds how many times in a row a stream may return no
// samples without io.EOF before Decode gives up.
const maxEmptyReads = 64

// ErrStalled is returned when a stream stops producing samples without
// reporting io.EOF.
var ErrStalled = errors.New("audio stream stalled")

// NewRegistry returns a registry with every bundled decoder.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(wav.Decoder{}, "wav", "wave")
	r.Register(aiff.Decoder{}, "aiff", "aif")
	r.Register(mp3.Decoder{}, "mp3")
	r.Register(vorbis.Decoder{}, "ogg", "oga")
	r.Register(flac.Decoder{}, "flac")
	return r
}

// FileLoader decodes audio files into memory in a fixed output format.
// It satisfies engine.Loader.
type FileLoader struct {
	SampleRate int
	Channels   int
	Registry   *audio.Registry
	// BufferSize is in samples; zero means DefaultBufferSize.
	BufferSize int
}

// NewFileLoader returns a loader for every bundled format.
func NewFileLoader(sampleRate, channels int) *FileLoader {
	return &FileLoader{
		SampleRate: sampleRate,
		Channels:   channels,
		Registry:   NewRegistry(),
	}
}

// Load picks a decoder by file extension and decodes the whole file.
func (l *FileLoader) Load(path string) (sound.Source, error) {
	dec, err := l.Registry.Lookup(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	pcm, err := Decode(src, l.SampleRate, l.Channels, l.BufferSize)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return pcm, nil
}

// Decode drains src into memory at sampleRate with the given channel
// count. The resampler and channel mixer are only inserted when the
// stream differs from the target. src is not closed.
func Decode(src audio.Source, sampleRate, channels, bufferSize int) (*sound.PCM, error) {
	if sampleRate <= 0 {
		return nil, audio.ErrInvalidSampleRate
	}
	if channels <= 0 || src.Channels() <= 0 {
		return nil, audio.ErrInvalidChannels
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	var s audio.Source = src
	if s.SampleRate() != sampleRate {
		s = audio.NewResampler(s, sampleRate)
	}
	if s.Channels() != channels {
		s = audio.NewChannelMixer(s, channels)
	}

	// whole frames per read
	bufferSize = max(bufferSize-bufferSize%channels, channels)
	buf := make([]float32, bufferSize)
	data := make([]float32, 0, sampleRate*channels)

	for empty := 0; ; {
		n, err := s.ReadSamples(buf)
		data = append(data, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if n > 0 {
			empty = 0
			continue
		}
		empty++
		if empty > maxEmptyReads {
			return nil, ErrStalled
		}
	}

	data = data[:len(data)-len(data)%channels]
	return sound.NewPCM(channels, data)
}
