// SPDX-License-Identifier: EPL-2.0

// Package bufport opens decoded audio as frame ports.
//
// The core lives in package port: a fixed-capacity buffer that pulls bytes
// from a refill callback and serves fixed-size frames, including frames that
// straddle a refill. This package wires the rest of the module to it:
//
//	p, err := bufport.OpenFile("playback.wav", port.Config{
//		ClockRate:       16000,
//		ChannelCount:    1,
//		SamplesPerFrame: 160,
//	})
//	if err != nil {
//		return err
//	}
//	defer p.Destroy()
//
//	for {
//		frame, err := p.NextFrame()
//		if frame.Kind == port.KindNone {
//			break // err wraps port.ErrRefillFailed and the cause, io.EOF at the end
//		}
//		process(frame.Payload)
//	}
//
// # Packages
//
//   - port: FrameBuffer, Port, refill contract and errors
//   - source: refill callbacks for readers, decoded audio, silence, pushed
//     data and G.711 streams
//   - audio: the decoded-audio layer (Source, Registry, Resampler,
//     ChannelMixer, PCM16Reader)
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: decoders, and
//     a WAV writer
//   - pipeline: a driver pulling frames from several ports into a Stage
//   - metrics: Prometheus collector for port counters
//
// # Supported Formats
//
// DefaultRegistry maps wav/wave, aiff/aif, mp3 and ogg/oga to the bundled
// decoders. Decoded audio is always delivered as 16-bit little-endian PCM.
package bufport
