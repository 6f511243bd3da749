// SPDX-License-Identifier: EPL-2.0

package port

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// DefaultBufferFrames is the recommended buffer capacity in frames. Larger
// buffers amortize refill calls.
const DefaultBufferFrames = 20

// RecommendedCapacity returns DefaultBufferFrames worth of frameSize bytes.
func RecommendedCapacity(frameSize int) int {
	return frameSize * DefaultBufferFrames
}

// Format describes the samples a port delivers.
type Format struct {
	ClockRate       int
	ChannelCount    int
	BitsPerSample   int
	SamplesPerFrame int
}

// FrameSize returns the size of one frame in bytes.
func (f Format) FrameSize() int {
	return f.SamplesPerFrame * f.BitsPerSample / 8 * f.ChannelCount
}

// Config holds the parameters used to create a Port.
type Config struct {
	Name            string
	ClockRate       int
	ChannelCount    int
	BitsPerSample   int
	SamplesPerFrame int

	// BufferCapacity is the buffer size in bytes. It must hold at least
	// one frame.
	BufferCapacity int

	Refill       RefillFunc
	RefillPolicy RefillPolicy

	// Closer, when set, is closed by Destroy. It lets the port own the
	// resource behind Refill (a decoder, a file).
	Closer io.Closer

	Logger *slog.Logger
}

// Format returns the stream format described by c.
func (c Config) Format() Format {
	return Format{
		ClockRate:       c.ClockRate,
		ChannelCount:    c.ChannelCount,
		BitsPerSample:   c.BitsPerSample,
		SamplesPerFrame: c.SamplesPerFrame,
	}
}

// FrameSize returns the size of one frame in bytes.
func (c Config) FrameSize() int { return c.Format().FrameSize() }

// Validate reports configuration errors wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.ClockRate <= 0:
		return fmt.Errorf("%w: clock rate %d", ErrInvalidConfig, c.ClockRate)
	case c.ChannelCount <= 0:
		return fmt.Errorf("%w: channel count %d", ErrInvalidConfig, c.ChannelCount)
	case c.BitsPerSample <= 0 || c.BitsPerSample%8 != 0:
		return fmt.Errorf("%w: bits per sample %d", ErrInvalidConfig, c.BitsPerSample)
	case c.SamplesPerFrame <= 0:
		return fmt.Errorf("%w: samples per frame %d", ErrInvalidConfig, c.SamplesPerFrame)
	case c.BufferCapacity < c.FrameSize():
		return fmt.Errorf("%w: buffer capacity %d smaller than frame size %d",
			ErrInvalidConfig, c.BufferCapacity, c.FrameSize())
	case c.Refill == nil:
		return fmt.Errorf("%w: nil refill func", ErrInvalidConfig)
	}
	return nil
}

// Frame is one unit of sample data handed to a processing stage.
type Frame struct {
	Kind Kind
	// Payload holds exactly Size bytes when Kind is KindAudio, nil otherwise.
	Payload []byte
	Size    int
	// Timestamp is passed through untouched; ports always set it to zero.
	Timestamp uint64
	Format    Format
}

// Info describes a port.
type Info struct {
	Name      string
	Format    Format
	FrameSize int
	Capacity  int
}

// Port pairs a stream format with a FrameBuffer and hands out whole frames.
//
// The port owns its buffer: Destroy releases the storage and any Closer from
// the Config. A Port must not be used from more than one goroutine, and
// Destroy must not run concurrently with GetFrame.
type Port struct {
	info   Info
	buf    *FrameBuffer
	closer io.Closer
	logger *slog.Logger

	destroyed bool
}

// New validates cfg and creates a Port with an empty buffer.
func New(cfg Config) (*Port, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Name != "" {
		logger = logger.With("port", cfg.Name)
	}

	buf, err := NewFrameBuffer(cfg.BufferCapacity, cfg.Refill,
		WithRefillPolicy(cfg.RefillPolicy),
		WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &Port{
		info: Info{
			Name:      cfg.Name,
			Format:    cfg.Format(),
			FrameSize: cfg.FrameSize(),
			Capacity:  cfg.BufferCapacity,
		},
		buf:    buf,
		closer: cfg.Closer,
		logger: logger,
	}, nil
}

// Info returns the port description.
func (p *Port) Info() Info { return p.info }

// FrameSize returns the size of one frame in bytes.
func (p *Port) FrameSize() int { return p.info.FrameSize }

// State reports whether the underlying stream is still active.
func (p *Port) State() State { return p.buf.State() }

// Stats returns the buffer counters.
func (p *Port) Stats() Stats { return p.buf.Stats() }

// GetFrame reads the next frame into dst[:FrameSize()]. On success the
// returned Frame's Payload aliases dst.
func (p *Port) GetFrame(dst []byte) (Frame, error) {
	frame := Frame{Format: p.info.Format}

	if p.destroyed {
		return frame, ErrClosed
	}
	if len(dst) < p.info.FrameSize {
		return frame, fmt.Errorf("%w: need %d bytes, got %d", io.ErrShortBuffer, p.info.FrameSize, len(dst))
	}

	payload := dst[:p.info.FrameSize]
	kind, err := p.buf.GetFrame(payload)
	frame.Kind = kind
	if kind != KindAudio {
		return frame, err
	}

	frame.Payload = payload
	frame.Size = len(payload)
	return frame, err
}

// NextFrame is GetFrame with a freshly allocated payload.
func (p *Port) NextFrame() (Frame, error) {
	return p.GetFrame(make([]byte, p.info.FrameSize))
}

// Destroy releases the buffer and closes the configured Closer. Calling it
// more than once is a no-op.
func (p *Port) Destroy() error {
	if p.destroyed {
		return nil
	}
	p.destroyed = true

	var errs []error
	if err := p.buf.Close(); err != nil {
		errs = append(errs, err)
	}
	if p.closer != nil {
		if err := p.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing source: %w", err))
		}
	}

	p.logger.Debug("port destroyed", "frames", p.buf.Stats().Frames)

	return errors.Join(errs...)
}

// Close calls Destroy so a Port can be used as an io.Closer.
func (p *Port) Close() error { return p.Destroy() }
