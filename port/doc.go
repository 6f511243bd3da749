// SPDX-License-Identifier: EPL-2.0

// Package port serves fixed-size audio frames out of a single fixed-capacity
// buffer that is refilled on demand from a pull-style callback.
//
// A producer that hands out samples in irregular, possibly large chunks (a
// decoder, a socket, a capture device) is wrapped in a RefillFunc. The
// FrameBuffer calls it synchronously whenever a frame read needs more bytes
// than the buffer still holds, including reads that straddle the end of the
// valid region:
//
//	buf, err := port.NewFrameBuffer(6400, refill)
//	frame := make([]byte, 320)
//	kind, err := buf.GetFrame(frame)
//
// A Port binds a FrameBuffer to the stream's format (clock rate, channel
// count, bits per sample, samples per frame) and derives the frame size from
// it:
//
//	p, err := port.New(port.Config{
//	    Name:            "playback",
//	    ClockRate:       16000,
//	    ChannelCount:    1,
//	    BitsPerSample:   16,
//	    SamplesPerFrame: 160,
//	    BufferCapacity:  port.RecommendedCapacity(320),
//	    Refill:          refill,
//	})
//	defer p.Destroy()
//
//	frame, err := p.NextFrame()
//
// # Refill Contract
//
// A RefillFunc overwrites buf from its start and returns how many bytes it
// produced. Any non-nil error marks the refill as failed; bytes reported
// together with an error are ignored.
//
// # End of Stream
//
// The first failed refill ends the stream. The call that hit the failure
// returns KindNone and an error wrapping both ErrRefillFailed and the
// callback's error. Every later call returns KindNone and ErrEnded without
// calling the source again.
//
// With the default RefillEager policy the buffer refills as soon as a frame
// consumes its last valid byte, so an exhausted source is reported on the
// call that drained the buffer. RefillLazy defers the refill to the next call
// that actually needs bytes.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use. The pipeline calls
// GetFrame from one goroutine and the RefillFunc runs inline on that call
// stack. Independent ports share no state.
package port
