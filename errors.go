// SPDX-License-Identifier: EPL-2.0

package bufport

import "errors"

// ErrBitDepth is returned when a decoded port is asked for anything but
// 16-bit samples.
var ErrBitDepth = errors.New("bufport: decoded audio ports carry 16-bit PCM")
