// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer changes the channel count of a Source. Many-to-one averages
// all channels, one-to-many duplicates the single channel, and any other
// combination maps output channel c to input channel c mod n.
type ChannelMixer struct {
	src Source
	out int
	tmp []float32
}

// NewChannelMixer returns a mixer producing channels channels. A
// non-positive count keeps the source layout.
func NewChannelMixer(src Source, channels int) *ChannelMixer {
	if channels <= 0 {
		channels = src.Channels()
	}
	return &ChannelMixer{
		src: src,
		out: channels,
		tmp: make([]float32, 4096),
	}
}

// NewMonoMixer downmixes src to a single channel.
func NewMonoMixer(src Source) *ChannelMixer { return NewChannelMixer(src, 1) }

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with interleaved samples in the output layout.
// len(dst) must be a multiple of Channels().
func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) / m.out * in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	frames := n / in
	src := m.tmp

	switch {
	case m.out == 1:
		scale := 1 / float32(in)
		for f := range frames {
			var sum float32
			for _, v := range src[f*in : f*in+in] {
				sum += v
			}
			dst[f] = sum * scale
		}
	case in == 1:
		for f := range frames {
			v := src[f]
			for c := range m.out {
				dst[f*m.out+c] = v
			}
		}
	default:
		for f := range frames {
			for c := range m.out {
				dst[f*m.out+c] = src[f*in+c%in]
			}
		}
	}

	return frames * m.out, err
}
