// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Writer records little-endian PCM16 into a WAV container. The header sizes
// are patched on Close, so the destination must be seekable.
type Writer struct {
	enc      *wav.Encoder
	buf      *goaudio.IntBuffer
	channels int
	samples  int
	closed   bool
}

// NewWriter starts a 16-bit PCM WAV stream on ws.
func NewWriter(ws io.WriteSeeker, sampleRate, channels int) (*Writer, error) {
	if channels < 1 {
		return nil, ErrInvalidChannels
	}

	return &Writer{
		enc: wav.NewEncoder(ws, sampleRate, 16, channels, formatPCM),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
		channels: channels,
	}, nil
}

// Write appends PCM16 bytes. p must hold whole frames.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p)%(2*w.channels) != 0 {
		return 0, ErrPartialSample
	}

	n := len(p) / 2
	w.buf.Data = w.resize(n)
	for i := range n {
		w.buf.Data[i] = int(int16(binary.LittleEndian.Uint16(p[2*i:])))
	}

	if err := w.flush(); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteSamples appends interleaved samples, whole frames only.
func (w *Writer) WriteSamples(samples []int16) error {
	if len(samples)%w.channels != 0 {
		return ErrPartialSample
	}
	w.buf.Data = w.resize(len(samples))
	for i, v := range samples {
		w.buf.Data[i] = int(v)
	}
	return w.flush()
}

// Samples returns the number of samples written so far, across channels.
func (w *Writer) Samples() int { return w.samples }

// Close finalizes the header. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}

func (w *Writer) resize(n int) []int {
	if cap(w.buf.Data) < n {
		return make([]int, n)
	}
	return w.buf.Data[:n]
}

func (w *Writer) flush() error {
	if w.closed {
		return ErrWriterClosed
	}
	if len(w.buf.Data) == 0 {
		return nil
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	w.samples += len(w.buf.Data)
	return nil
}

// WriteWAV16 writes a complete mono 16-bit WAV file at sampleRate.
func WriteWAV16(ws io.WriteSeeker, sampleRate int, samples []int16) error {
	w, err := NewWriter(ws, sampleRate, 1)
	if err != nil {
		return err
	}
	if err := w.WriteSamples(samples); err != nil {
		return err
	}
	return w.Close()
}
