// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoded-audio layer that feeds frame ports.
//
// Decoders in the formats/ packages produce a Source of interleaved float32
// samples in [-1, 1]. Sources chain:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	res := audio.NewResampler(src, 16000)     // match the port clock rate
//	mix := audio.NewChannelMixer(res, 1)      // match the port channel count
//	pcm := audio.NewPCM16Reader(mix)          // io.Reader of PCM16 bytes
//
// The PCM16Reader is what source.FromAudio hands to a port as its refill
// callback.
//
// # Registry
//
// A Registry maps format keys to decoders. Keys are case-insensitive and a
// leading dot is dropped, so filepath.Ext output works as a key:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	src, err := reg.Decode(filepath.Ext(name), file)
//
// # End of Stream
//
// ReadSamples returns io.EOF once the stream is exhausted, either together
// with the last samples or on the following call with n == 0.
package audio
