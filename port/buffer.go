// SPDX-License-Identifier: EPL-2.0

package port

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// maxEmptyRefills bounds consecutive zero-byte refills inside one GetFrame.
const maxEmptyRefills = 100

// RefillFunc overwrites buf from its start with fresh sample bytes and
// returns how many it wrote. A non-nil error means no usable data.
type RefillFunc func(buf []byte) (int, error)

// Kind tells whether a frame carries audio.
type Kind uint8

const (
	KindNone Kind = iota
	KindAudio
)

func (k Kind) String() string {
	if k == KindAudio {
		return "audio"
	}
	return "none"
}

// State of a stream. StateEnded never goes back to StateActive.
type State uint8

const (
	StateActive State = iota
	StateEnded
)

func (s State) String() string {
	if s == StateEnded {
		return "ended"
	}
	return "active"
}

// RefillPolicy selects when a drained buffer is refilled.
type RefillPolicy uint8

const (
	// RefillEager refills as soon as a frame consumes the last valid byte.
	RefillEager RefillPolicy = iota
	// RefillLazy refills only when a frame needs bytes the buffer lacks.
	RefillLazy
)

// Stats counts the work a FrameBuffer has done.
type Stats struct {
	Frames       uint64 // frames delivered with KindAudio
	Refills      uint64 // RefillFunc invocations
	EmptyRefills uint64 // successful refills that produced no bytes
	SplitReads   uint64 // frames assembled across a refill
	BytesIn      uint64 // bytes produced by successful refills
	BytesOut     uint64 // bytes copied into delivered frames
}

// Option configures a FrameBuffer.
type Option func(*FrameBuffer)

// WithRefillPolicy sets the refill policy. The default is RefillEager.
func WithRefillPolicy(p RefillPolicy) Option {
	return func(b *FrameBuffer) { b.policy = p }
}

// WithLogger sets the logger used for stream lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(b *FrameBuffer) {
		if l != nil {
			b.logger = l
		}
	}
}

// FrameBuffer serves fixed-size frames from a fixed-capacity byte region
// refilled by a RefillFunc. Bytes in buf[cursor:valid] are unread.
type FrameBuffer struct {
	buf    []byte
	valid  int
	cursor int

	refill RefillFunc
	policy RefillPolicy
	state  State
	closed bool
	stats  Stats
	logger *slog.Logger
}

// NewFrameBuffer allocates a buffer of capacity bytes. The buffer starts
// empty; the first GetFrame triggers the first refill.
func NewFrameBuffer(capacity int, refill RefillFunc, opts ...Option) (*FrameBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, capacity)
	}
	if refill == nil {
		return nil, fmt.Errorf("%w: nil refill func", ErrInvalidConfig)
	}

	b := &FrameBuffer{
		refill: refill,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.buf = make([]byte, capacity)

	return b, nil
}

// Capacity returns the size of the backing storage in bytes.
func (b *FrameBuffer) Capacity() int { return cap(b.buf) }

// Buffered returns the number of valid bytes not yet read.
func (b *FrameBuffer) Buffered() int { return b.valid - b.cursor }

// State reports whether the stream is still active.
func (b *FrameBuffer) State() State { return b.state }

// Stats returns a snapshot of the buffer counters.
func (b *FrameBuffer) Stats() Stats { return b.stats }

// GetFrame fills dst with exactly len(dst) bytes of stream data.
//
// It returns KindAudio and a nil error on success. On a failed refill it
// returns KindNone with an error wrapping ErrRefillFailed, and the contents
// of dst are undefined.
func (b *FrameBuffer) GetFrame(dst []byte) (Kind, error) {
	if b.closed {
		return KindNone, ErrClosed
	}
	if b.state == StateEnded {
		return KindNone, ErrEnded
	}

	size := len(dst)
	if size == 0 || size > len(b.buf) {
		return KindNone, fmt.Errorf("%w: frame size %d, capacity %d", ErrInvalidConfig, size, len(b.buf))
	}

	if b.cursor+size <= b.valid {
		copy(dst, b.buf[b.cursor:b.cursor+size])
		b.cursor += size

		if b.policy == RefillEager && b.cursor == b.valid {
			if err := b.fill(); err != nil {
				return KindNone, err
			}
		}

		b.delivered(size)
		return KindAudio, nil
	}

	// Split read: drain the tail, then complete the frame from fresh refills.
	n := copy(dst, b.buf[b.cursor:b.valid])
	b.cursor = b.valid

	empty := 0
	for n < size {
		if err := b.fill(); err != nil {
			return KindNone, err
		}
		if b.valid == 0 {
			empty++
			if empty >= maxEmptyRefills {
				return KindNone, b.end(io.ErrNoProgress)
			}
			continue
		}
		empty = 0

		m := copy(dst[n:], b.buf[:b.valid])
		b.cursor = m
		n += m
	}

	b.stats.SplitReads++
	b.delivered(size)
	return KindAudio, nil
}

// Close releases the backing storage. Later calls to GetFrame return
// ErrClosed. Close is idempotent.
func (b *FrameBuffer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.buf = nil
	b.valid = 0
	b.cursor = 0
	return nil
}

// fill replaces the buffer contents with one refill. The cursor and the
// valid length are reset first so a failure leaves an empty buffer.
func (b *FrameBuffer) fill() error {
	b.cursor = 0
	b.valid = 0

	n, err := b.refill(b.buf)
	b.stats.Refills++
	if err == nil && (n < 0 || n > len(b.buf)) {
		err = fmt.Errorf("%w: %d of %d", errBadRefillCount, n, len(b.buf))
	}
	if err != nil {
		return b.end(err)
	}

	if n == 0 {
		b.stats.EmptyRefills++
	}
	b.valid = n
	b.stats.BytesIn += uint64(n)
	return nil
}

func (b *FrameBuffer) end(cause error) error {
	b.state = StateEnded
	b.cursor = 0
	b.valid = 0
	level := slog.LevelWarn
	if errors.Is(cause, io.EOF) {
		level = slog.LevelInfo
	}
	b.logger.Log(context.Background(), level, "frame buffer stream ended",
		"refills", b.stats.Refills,
		"frames", b.stats.Frames,
		"error", cause,
	)
	return fmt.Errorf("%w: %w", ErrRefillFailed, cause)
}

func (b *FrameBuffer) delivered(size int) {
	b.stats.Frames++
	b.stats.BytesOut += uint64(size)
}
