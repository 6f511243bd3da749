// SPDX-License-Identifier: EPL-2.0

package audio

// Float32ToInt16 clamps x to [-1,1] and scales it to the int16 range.
func Float32ToInt16(x float32) int16 {
	switch {
	case x >= 1:
		return 32767
	case x <= -1:
		return -32767
	}
	return int16(x * 32767)
}

// Int16ToFloat32 maps a PCM16 sample to [-1,1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768
}

// cubic is Catmull-Rom interpolation between y1 (x=0) and y2 (x=1).
func cubic(y0, y1, y2, y3, x float32) float32 {
	a := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := -0.5*y0 + 0.5*y2
	return ((a*x+b)*x+c)*x + y1
}
