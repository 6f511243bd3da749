// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrUnsupportedEncoding = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedBitDepth = errors.New("only 16, 24 and 32-bit WAV is supported")
	ErrInvalidChannels     = errors.New("channel count must be positive")
	ErrPartialSample       = errors.New("PCM16 data must be whole frames")
	ErrWriterClosed        = errors.New("wav writer closed")
)
