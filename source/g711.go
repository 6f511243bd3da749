// SPDX-License-Identifier: EPL-2.0

package source

import (
	"encoding/binary"
	"io"

	"github.com/zaf/g711"

	"github.com/ik5/bufport/port"
)

// Law selects the G.711 companding curve.
type Law uint8

const (
	ULaw Law = iota + 1 // PCMU
	ALaw                // PCMA
)

func (l Law) String() string {
	switch l {
	case ULaw:
		return "PCMU"
	case ALaw:
		return "PCMA"
	}
	return "unknown"
}

func (l Law) decoder() func(uint8) int16 {
	switch l {
	case ULaw:
		return g711.DecodeUlawFrame
	case ALaw:
		return g711.DecodeAlawFrame
	}
	return nil
}

// G711 returns a refill that expands an 8-bit companded stream from r into
// little-endian PCM16, two output bytes per input byte.
func G711(r io.Reader, law Law) (port.RefillFunc, error) {
	decode := law.decoder()
	if decode == nil {
		return nil, ErrUnknownLaw
	}

	d := &deferred{r: r}
	var scratch []byte

	return func(buf []byte) (int, error) {
		want := len(buf) / 2
		if want == 0 {
			return 0, io.ErrShortBuffer
		}
		if cap(scratch) < want {
			scratch = make([]byte, want)
		}

		n, err := d.read(scratch[:want])
		for i, b := range scratch[:n] {
			binary.LittleEndian.PutUint16(buf[2*i:], uint16(decode(b)))
		}
		if err != nil {
			return 0, err
		}
		return 2 * n, nil
	}, nil
}
