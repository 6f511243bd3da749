// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"io"
)

const maxEmptyReads = 100

// PCM16Reader encodes a Source as little-endian signed 16-bit PCM bytes.
// It implements io.Reader; partial samples left over by an odd-sized read
// are delivered on the next call.
type PCM16Reader struct {
	src     Source
	samples []float32
	bytes   []byte
	pending []byte
	err     error
}

func NewPCM16Reader(src Source) *PCM16Reader {
	return &PCM16Reader{src: src}
}

// Source returns the wrapped source.
func (r *PCM16Reader) Source() Source { return r.src }

func (r *PCM16Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for empty := 0; len(r.pending) == 0; empty++ {
		if r.err != nil {
			return 0, r.err
		}
		if empty == maxEmptyReads {
			return 0, io.ErrNoProgress
		}
		r.decode(len(p))
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// decode reads enough whole frames to cover size bytes.
func (r *PCM16Reader) decode(size int) {
	ch := max(r.src.Channels(), 1)
	want := (size + 1) / 2
	want += (ch - want%ch) % ch

	if cap(r.samples) < want {
		r.samples = make([]float32, want)
		r.bytes = make([]byte, want*2)
	}
	samples := r.samples[:want]

	n, err := r.src.ReadSamples(samples)
	for i, v := range samples[:n] {
		binary.LittleEndian.PutUint16(r.bytes[2*i:], uint16(Float32ToInt16(v)))
	}
	r.pending = r.bytes[:2*n]

	switch {
	case err == io.EOF:
		r.err = io.EOF
	case err != nil:
		r.err = fmt.Errorf("pcm16: %w", err)
	}
}

func (r *PCM16Reader) Close() error {
	return r.src.Close()
}
