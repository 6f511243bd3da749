// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	goaudio "github.com/go-audio/audio"
)

// fakeDecoder serves samples in chunks of at most step values.
type fakeDecoder struct {
	format  *goaudio.Format
	samples []int
	step    int
	err     error
}

func (f *fakeDecoder) Format() *goaudio.Format { return f.format }

func (f *fakeDecoder) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := len(buf.Data)
	if f.step > 0 {
		n = min(n, f.step)
	}
	n = copy(buf.Data[:n], f.samples)
	f.samples = f.samples[n:]
	return n, nil
}

func monoFormat(rate int) *goaudio.Format {
	return &goaudio.Format{NumChannels: 1, SampleRate: rate}
}

func TestNewSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format *goaudio.Format
		bits   int
		ok     bool
		want   error
	}{
		{name: "16 bit", format: monoFormat(8000), bits: 16, ok: true},
		{name: "24 bit stereo", format: &goaudio.Format{NumChannels: 2, SampleRate: 48000}, bits: 24, ok: true},
		{name: "12 bit", format: monoFormat(8000), bits: 12, want: ErrUnsupportedBitDepth},
		{name: "nil format", bits: 16, want: ErrInvalidFormat},
		{name: "no channels", format: &goaudio.Format{SampleRate: 8000}, bits: 16, want: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := NewSource(&fakeDecoder{format: tt.format}, tt.bits)
			if tt.ok {
				if err != nil {
					t.Fatalf("NewSource() error = %v", err)
				}
				if src.SampleRate() != tt.format.SampleRate || src.Channels() != tt.format.NumChannels {
					t.Errorf("format = %d Hz %d ch", src.SampleRate(), src.Channels())
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("NewSource() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSource_Scaling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits   int
		sample int
		want   float32
	}{
		{bits: 8, sample: -128, want: -1},
		{bits: 16, sample: 16384, want: 0.5},
		{bits: 24, sample: -4194304, want: -0.5},
		{bits: 32, sample: 1 << 30, want: 0.5},
	}

	for _, tt := range tests {
		dec := &fakeDecoder{format: monoFormat(8000), samples: []int{tt.sample}}
		src, err := NewSource(dec, tt.bits)
		if err != nil {
			t.Fatalf("NewSource(%d bits) error = %v", tt.bits, err)
		}

		dst := make([]float32, 1)
		if _, err := src.ReadSamples(dst); err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
		if dst[0] != tt.want {
			t.Errorf("%d bits: %d -> %v, want %v", tt.bits, tt.sample, dst[0], tt.want)
		}
	}
}

func TestSource_EndOfStream(t *testing.T) {
	t.Parallel()

	dec := &fakeDecoder{format: monoFormat(8000), samples: make([]int, 10)}
	src, err := NewSource(dec, 16)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	dst := make([]float32, 8)
	if n, err := src.ReadSamples(dst); n != 8 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v", n, err)
	}
	if n, err := src.ReadSamples(dst); n != 2 || err != nil {
		t.Errorf("short ReadSamples() = %d, %v, want 2, nil", n, err)
	}
	for range 2 {
		if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
			t.Errorf("ReadSamples() after end = %d, %v", n, err)
		}
	}
}

func TestSource_DecoderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("truncated chunk")
	src, err := NewSource(&fakeDecoder{format: monoFormat(8000), err: boom}, 16)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestReadSeeker(t *testing.T) {
	t.Parallel()

	rs := strings.NewReader("seekable")
	got, err := ReadSeeker(rs)
	if err != nil || got != io.ReadSeeker(rs) {
		t.Errorf("ReadSeeker() did not return the seekable input: %v", err)
	}

	buffered, err := ReadSeeker(iotest.OneByteReader(strings.NewReader("stream")))
	if err != nil {
		t.Fatalf("ReadSeeker() error = %v", err)
	}
	if _, err := buffered.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	rest, _ := io.ReadAll(buffered)
	if string(rest) != "ream" {
		t.Errorf("after Seek(2) read %q, want %q", rest, "ream")
	}

	boom := errors.New("read failed")
	if _, err := ReadSeeker(iotest.ErrReader(boom)); !errors.Is(err, boom) {
		t.Errorf("ReadSeeker() error = %v, want %v", err, boom)
	}
}
