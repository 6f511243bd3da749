// SPDX-License-Identifier: EPL-2.0

package source

import (
	"io"
	"sync"

	"github.com/smallnest/ringbuffer"
)

// DefaultQueueSize is used by NewQueue for a non-positive size.
const DefaultQueueSize = 64 << 10

// Queue turns pushed sample bytes into a pull-style refill. Write never
// blocks; Refill blocks until data is queued or the queue is closed.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	rb     *ringbuffer.RingBuffer
	closed bool
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}

	q := &Queue{rb: ringbuffer.New(size)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Write queues as much of p as fits. When p does not fit entirely it
// returns the stored count and ErrQueueFull.
func (q *Queue) Write(p []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return 0, ErrQueueClosed
	}

	n := min(len(p), q.rb.Free())
	if n > 0 {
		if _, err := q.rb.Write(p[:n]); err != nil {
			return 0, err
		}
		q.cond.Broadcast()
	}
	if n < len(p) {
		return n, ErrQueueFull
	}
	return n, nil
}

// Close stops accepting writes. Queued bytes are still delivered, after
// which Refill returns io.EOF.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
	return nil
}

// Len reports the number of queued bytes.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.rb.Length()
}

// Refill moves up to len(buf) queued bytes into buf. It has the
// port.RefillFunc signature.
func (q *Queue) Refill(buf []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.rb.Length() == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.rb.Length() == 0 {
		return 0, io.EOF
	}

	n := min(len(buf), q.rb.Length())
	if n == 0 {
		return 0, nil
	}
	return q.rb.Read(buf[:n])
}
