// SPDX-License-Identifier: EPL-2.0

package source

import (
	"io"

	"github.com/ik5/bufport/audio"
	"github.com/ik5/bufport/port"
)

// deferred wraps an io.Reader so an error arriving with data is held back
// until the next call.
type deferred struct {
	r   io.Reader
	err error
}

func (d *deferred) read(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}

	n, err := d.r.Read(p)
	if err != nil && n > 0 {
		d.err = err
		return n, nil
	}
	return n, err
}

// FromReader returns a refill that reads raw sample bytes from r. Each
// refill issues a single Read; short reads are fine.
func FromReader(r io.Reader) port.RefillFunc {
	d := &deferred{r: r}
	return d.read
}

// FromAudio returns a refill that encodes src as little-endian PCM16. The
// caller keeps ownership of src; hand it to port.Config.Closer to have the
// port close it.
func FromAudio(src audio.Source) port.RefillFunc {
	return FromReader(audio.NewPCM16Reader(src))
}
