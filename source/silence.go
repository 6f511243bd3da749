// SPDX-License-Identifier: EPL-2.0

package source

import "github.com/ik5/bufport/port"

// DefaultSilenceFraction is the share of the buffer Silence fills when the
// given fraction is out of range.
const DefaultSilenceFraction = 0.5

// Silence returns a refill that never ends and writes zero bytes over
// fraction of the buffer on every call, at least one byte. A fraction
// outside (0, 1] falls back to DefaultSilenceFraction.
func Silence(fraction float64) port.RefillFunc {
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultSilenceFraction
	}

	return func(buf []byte) (int, error) {
		n := min(max(int(float64(len(buf))*fraction), 1), len(buf))
		clear(buf[:n])
		return n, nil
	}
}
