// SPDX-License-Identifier: EPL-2.0

// Package source provides ready-made refill callbacks for frame ports.
//
// Every constructor returns a port.RefillFunc (or a type with a Refill
// method) that overwrites the buffer it is given from the start and reports
// how many bytes it wrote:
//
//	p, err := port.New(port.Config{
//		...
//		Refill: source.FromReader(file),
//	})
//
// Readers that return data together with an error are split in two: the
// data is delivered first and the error on the next refill, because a port
// discards the bytes of a failed refill.
//
// Queue is the only adapter that is safe for concurrent use. Producers Write
// from any goroutine while the port's refill blocks until bytes arrive or
// the queue is closed.
package source
