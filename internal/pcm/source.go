// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the go-audio decoders (wav, aiff) to audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

var (
	ErrInvalidFormat       = errors.New("pcm: invalid format")
	ErrUnsupportedBitDepth = errors.New("pcm: unsupported bit depth")
)

// PCMDecoder is the part of the go-audio decoders a Source reads from.
type PCMDecoder interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads integer PCM from a PCMDecoder and scales it to float32.
type Source struct {
	dec      PCMDecoder
	rate     int
	channels int
	scale    float32
	buf      *goaudio.IntBuffer
	eof      bool
}

// NewSource wraps dec. bitDepth must be 8, 16, 24 or 32 and describes
// signed samples.
func NewSource(dec PCMDecoder, bitDepth int) (*Source, error) {
	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrInvalidFormat
	}

	var scale float32
	switch bitDepth {
	case 8, 16, 24, 32:
		scale = 1 / float32(int64(1)<<(bitDepth-1))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	return &Source{
		dec:      dec,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		scale:    scale,
		buf:      &goaudio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
	}, nil
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return max(cap(s.buf.Data), 4096) }

// Close is a no-op; the caller owns the underlying reader.
func (s *Source) Close() error { return nil }

// ReadSamples decodes up to len(dst) samples. The go-audio decoders report
// the end of the data as an empty read without error.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v) * s.scale
	}

	switch {
	case err == io.EOF || (err == nil && n == 0):
		s.eof = true
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("pcm: %w", err)
	}
	return n, nil
}

// ReadSeeker returns r itself when it can seek, otherwise it buffers the
// whole stream in memory. The go-audio decoders need to seek.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
