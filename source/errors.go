// SPDX-License-Identifier: EPL-2.0

package source

import "errors"

var (
	// ErrQueueClosed is returned by Queue.Write after Close.
	ErrQueueClosed = errors.New("source: queue closed")

	// ErrQueueFull is returned when a write did not fit; the returned count
	// tells how much was kept.
	ErrQueueFull = errors.New("source: queue full")

	ErrUnknownLaw = errors.New("source: unknown G.711 law")
)
