// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/bufport/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels    = 2
	frameBytes  = 2 * channels
	defaultSize = 4096
)

// mp3Reader is the part of gomp3.Decoder the source uses.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec mp3Reader
	buf []byte
	eof bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return defaultSize }

// ReadSamples decodes whole stereo frames; len(dst) is rounded down to an
// even count.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}

	size := len(dst) / channels * frameBytes
	if size == 0 {
		return 0, nil
	}
	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}

	n, err := io.ReadFull(s.dec, s.buf[:size])
	samples := n / frameBytes * channels
	for i := range samples {
		dst[i] = audio.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}

	switch {
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		s.eof = true
		return samples, io.EOF
	case err != nil:
		return samples, fmt.Errorf("mp3: %w", err)
	}
	return samples, nil
}

type Decoder struct{}

// Decode reads the first frame header to learn the sample rate.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return &source{dec: dec, buf: make([]byte, defaultSize*2)}, nil
}
