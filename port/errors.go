// SPDX-License-Identifier: EPL-2.0

package port

import "errors"

var (
	// ErrInvalidConfig reports a configuration the buffer can never serve,
	// such as a zero capacity or a frame larger than the capacity.
	ErrInvalidConfig = errors.New("invalid frame buffer configuration")

	// ErrRefillFailed wraps the error returned by a RefillFunc.
	ErrRefillFailed = errors.New("refill failed")

	// ErrEnded is returned by every GetFrame after the stream has ended.
	ErrEnded = errors.New("stream ended")

	// ErrClosed is returned when a destroyed port or closed buffer is used.
	ErrClosed = errors.New("frame buffer closed")

	errBadRefillCount = errors.New("refill reported an out of range byte count")
)
