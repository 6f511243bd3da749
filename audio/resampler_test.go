// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/bufport/internal/audiotest"
)

func drain(t testing.TB, src Source, bufSize int) []float32 {
	t.Helper()

	buf := make([]float32, bufSize)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)
	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}

	same := NewResampler(audiotest.NewSilentSource(22050, 1, 10), 0)
	if same.SampleRate() != 22050 {
		t.Errorf("SampleRate() with zero target = %d, want 22050", same.SampleRate())
	}
}

func TestResampler_SameRateIsLossless(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(16000, 1, 500, 440)
	ref := audiotest.NewSineSource(16000, 1, 500, 440)

	got := drain(t, NewResampler(src, 16000), 128)
	want := drain(t, ref, 128)

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		channels int
		frames   int
	}{
		{name: "44.1k to 8k", srcRate: 44100, dstRate: 8000, channels: 1, frames: 44100},
		{name: "8k to 44.1k", srcRate: 8000, dstRate: 44100, channels: 1, frames: 8000},
		{name: "48k to 16k stereo", srcRate: 48000, dstRate: 16000, channels: 2, frames: 48000},
		{name: "8k to 16k", srcRate: 8000, dstRate: 16000, channels: 1, frames: 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, tt.channels, tt.frames, 300)
			out := drain(t, NewResampler(src, tt.dstRate), 1024*tt.channels)

			if len(out)%tt.channels != 0 {
				t.Fatalf("got %d samples, not a multiple of %d channels", len(out), tt.channels)
			}

			want := tt.frames * tt.dstRate / tt.srcRate
			got := len(out) / tt.channels
			if got < want-2 || got > want+2 {
				t.Errorf("got %d frames, want ≈%d", got, want)
			}

			for i, s := range out {
				if s < -1.5 || s > 1.5 {
					t.Fatalf("sample %d = %v out of range", i, s)
				}
			}
		})
	}
}

func TestResampler_ConstantSignal(t *testing.T) {
	t.Parallel()

	out := drain(t, NewResampler(audiotest.NewConstantSource(48000, 1, 4800, 0.5), 16000), 256)
	for i, s := range out {
		if math.Abs(float64(s-0.5)) > 1e-4 {
			t.Fatalf("sample %d = %v, want 0.5", i, s)
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 100), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EOF(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 10), 8000)
	_ = drain(t, r, 64)

	for range 3 {
		n, err := r.ReadSamples(make([]float32, 64))
		if n != 0 || err != io.EOF {
			t.Errorf("ReadSamples() after EOF = %d, %v", n, err)
		}
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("decoder broke")
	src := audiotest.NewSilentSource(8000, 1, 50)
	src.Err = boom

	r := NewResampler(src, 16000)
	buf := make([]float32, 256)

	var err error
	for range 5 {
		if _, err = r.ReadSamples(buf); err != nil {
			break
		}
	}
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if src.Closed != 1 {
		t.Errorf("source closed %d times, want 1", src.Closed)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		r := NewResampler(audiotest.NewSineSource(48000, 1, 48000, 440), 16000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
