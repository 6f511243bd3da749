// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrInvalidRate     = errors.New("sample rate must be positive")
	ErrInvalidChannels = errors.New("channel count must be positive")
	ErrUnsupported     = errors.New("unsupported audio format")
)

// UnsupportedFormatError is returned by Registry.Decode for unknown keys.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupported, e.Format)
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupported }
