// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Resampler converts src to another sample rate with cubic interpolation.
// It keeps the channel count. When downsampling, incoming samples pass
// through a one-pole low-pass filter first.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	win  []float32 // buffered source frames, interleaved
	pos  float64   // read position in frames, relative to win
	read []float32
	eof  bool

	alpha  float32
	filter []float32
	primed bool
}

// NewResampler returns a Resampler producing dstRate Hz. A non-positive
// dstRate keeps the source rate.
func NewResampler(src Source, dstRate int) *Resampler {
	if dstRate <= 0 {
		dstRate = src.SampleRate()
	}
	channels := max(src.Channels(), 1)
	step := float64(src.SampleRate()) / float64(dstRate)

	readSize := max(src.BufSize(), 1024)
	readSize -= readSize % channels

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		read:     make([]float32, readSize),
		filter:   make([]float32, channels),
	}
	if step > 1 {
		r.alpha = float32(1 / step)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (r *Resampler) frames() int { return len(r.win) / r.channels }

func (r *Resampler) at(frame, ch int) float32 { return r.win[frame*r.channels+ch] }

// fill reads from the source until the window holds need frames, the
// source ends, or a read returns nothing.
func (r *Resampler) fill(need int) error {
	for r.frames() < need && !r.eof {
		n, err := r.src.ReadSamples(r.read)
		n -= n % r.channels
		r.push(r.read[:n])

		if err == io.EOF {
			r.eof = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		if n == 0 {
			return nil
		}
	}
	return nil
}

func (r *Resampler) push(samples []float32) {
	if r.alpha > 0 && len(samples) > 0 {
		if !r.primed {
			copy(r.filter, samples[:r.channels])
			r.primed = true
		}
		for i := range samples {
			c := i % r.channels
			r.filter[c] += r.alpha * (samples[i] - r.filter[c])
			samples[i] = r.filter[c]
		}
	}
	r.win = append(r.win, samples...)
}

// compact drops frames the interpolator can no longer reach.
func (r *Resampler) compact() {
	drop := int(r.pos) - 1
	if drop <= 0 {
		return
	}
	drop = min(drop, r.frames())
	n := copy(r.win, r.win[drop*r.channels:])
	r.win = r.win[:n]
	r.pos -= float64(drop)
}

// ReadSamples produces interleaved samples at the target rate. len(dst)
// must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		i := int(r.pos)
		if err := r.fill(i + 3); err != nil {
			return written, err
		}

		total := r.frames()
		if i >= total {
			if r.eof && written == 0 {
				return 0, io.EOF
			}
			break
		}

		x := float32(r.pos - float64(i))
		prev, next, last := max(i-1, 0), min(i+1, total-1), min(i+2, total-1)
		for c := range r.channels {
			dst[written+c] = cubic(r.at(prev, c), r.at(i, c), r.at(next, c), r.at(last, c), x)
		}

		written += r.channels
		r.pos += r.step
	}

	r.compact()
	return written, nil
}
