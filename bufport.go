// SPDX-License-Identifier: EPL-2.0

package bufport

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ik5/bufport/audio"
	"github.com/ik5/bufport/formats/aiff"
	"github.com/ik5/bufport/formats/mp3"
	"github.com/ik5/bufport/formats/vorbis"
	"github.com/ik5/bufport/formats/wav"
	"github.com/ik5/bufport/port"
	"github.com/ik5/bufport/source"
)

var registry = sync.OnceValue(DefaultRegistry)

// DefaultRegistry returns a new registry with every bundled decoder
// registered under its usual file extensions.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	return reg
}

// NewAudioPort builds a port fed by src. The audio is resampled to
// cfg.ClockRate, mixed to cfg.ChannelCount and encoded as PCM16; a zero
// BitsPerSample defaults to 16. The port takes ownership of src and closes
// it on Destroy, together with any Closer already in cfg. On error src is
// closed before returning.
func NewAudioPort(src audio.Source, cfg port.Config) (*port.Port, error) {
	if cfg.BitsPerSample == 0 {
		cfg.BitsPerSample = 16
	}
	if cfg.BitsPerSample != 16 {
		_ = src.Close()
		return nil, fmt.Errorf("%w: got %d bits", ErrBitDepth, cfg.BitsPerSample)
	}
	if cfg.BufferCapacity == 0 {
		cfg.BufferCapacity = port.RecommendedCapacity(cfg.FrameSize())
	}

	chain := audio.NewChannelMixer(audio.NewResampler(src, cfg.ClockRate), cfg.ChannelCount)
	cfg.Refill = source.FromAudio(chain)
	cfg.Closer = closers{chain, cfg.Closer}

	p, err := port.New(cfg)
	if err != nil {
		_ = cfg.Closer.Close()
		return nil, err
	}
	return p, nil
}

// OpenPort decodes r with the decoder registered for format and returns a
// port over it. See NewAudioPort for the conversion rules.
func OpenPort(r io.Reader, format string, cfg port.Config) (*port.Port, error) {
	src, err := registry().Decode(format, r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return NewAudioPort(src, cfg)
}

// OpenFile opens path, picks the decoder from its extension and returns a
// port that closes the file on Destroy. An empty cfg.Name becomes the file
// name.
func OpenFile(path string, cfg port.Config) (*port.Port, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	cfg.Closer = closers{f, cfg.Closer}

	src, err := registry().Decode(filepath.Ext(path), f)
	if err != nil {
		_ = cfg.Closer.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return NewAudioPort(src, cfg)
}

// closers closes every non-nil member in order.
type closers []io.Closer

func (cs closers) Close() error {
	var errs []error
	for _, c := range cs {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
