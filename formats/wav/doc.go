// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and records WAV files on top of github.com/go-audio/wav.
//
// The Decoder accepts integer PCM at 16, 24 or 32 bits, any channel count and
// any sample rate, and returns an audio.Source of float32 samples:
//
//	f, _ := os.Open("capture.wav")
//	defer f.Close()
//	src, err := wav.Decoder{}.Decode(f)
//
// The Writer records PCM16 bytes, such as frame payloads taken from a port,
// into a seekable destination:
//
//	out, _ := os.Create("out.wav")
//	w, _ := wav.NewWriter(out, 16000, 1)
//	w.Write(frame.Payload)
//	w.Close() // patches the header sizes
//	out.Close()
package wav
