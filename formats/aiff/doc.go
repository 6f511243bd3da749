// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// AIFF stores big-endian integer PCM; the decoder accepts 16, 24 and 32-bit
// samples at any rate and channel count and yields float32 samples in
// [-1, 1]:
//
//	f, _ := os.Open("playback.aiff")
//	defer f.Close()
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//		// try another decoder
//	}
package aiff
