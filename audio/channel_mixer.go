// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer adapts the channel count of src. Down-mixing averages the
// source channels that fold onto each output channel (stereo to mono takes
// the mean of left and right); up-mixing repeats source channels in order
// (mono to stereo duplicates).
type ChannelMixer struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	return &ChannelMixer{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }

func (m *ChannelMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("closing channel mixer source: %w", err)
	}
	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) / m.channels * in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	frames := n / in
	if frames == 0 {
		return 0, err
	}

	out := m.channels
	switch {
	case out == 1 && in == 2:
		for f := range frames {
			dst[f] = (m.tmp[2*f] + m.tmp[2*f+1]) * 0.5
		}
	case in == 1:
		for f := range frames {
			v := m.tmp[f]
			for c := range out {
				dst[f*out+c] = v
			}
		}
	case in < out:
		for f := range frames {
			for c := range out {
				dst[f*out+c] = m.tmp[f*in+c%in]
			}
		}
	default:
		for f := range frames {
			frame := dst[f*out : (f+1)*out]
			clear(frame)
			for c := range in {
				frame[c%out] += m.tmp[f*in+c]
			}
			for c := range out {
				// channels c, c+out, c+2*out, ... fold onto c
				folded := (in - c + out - 1) / out
				frame[c] /= float32(folded)
			}
		}
	}

	return frames * out, err
}
