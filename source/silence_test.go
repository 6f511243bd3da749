// SPDX-License-Identifier: EPL-2.0

package source

import (
	"bytes"
	"testing"

	"github.com/ik5/bufport/port"
)

func TestSilence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fraction float64
		size     int
		want     int
	}{
		{name: "default", fraction: 0, size: 100, want: 50},
		{name: "negative", fraction: -1, size: 100, want: 50},
		{name: "above one", fraction: 1.5, size: 100, want: 50},
		{name: "quarter", fraction: 0.25, size: 100, want: 25},
		{name: "whole", fraction: 1, size: 100, want: 100},
		{name: "tiny buffer", fraction: 0.5, size: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := bytes.Repeat([]byte{0xaa}, tt.size)
			n, err := Silence(tt.fraction)(buf)
			if err != nil {
				t.Fatalf("refill() error = %v", err)
			}
			if n != tt.want {
				t.Errorf("refill() = %d, want %d", n, tt.want)
			}
			if !bytes.Equal(buf[:n], make([]byte, n)) {
				t.Error("refilled region is not zeroed")
			}
		})
	}
}

func TestSilence_Port(t *testing.T) {
	t.Parallel()

	p := testPort(t, Silence(0))
	for range 1000 {
		frame, err := p.NextFrame()
		if err != nil || frame.Kind != port.KindAudio {
			t.Fatalf("NextFrame() = %v, %v", frame.Kind, err)
		}
	}

	// Half of a 20-frame buffer per refill is 10 frames, plus the eager
	// refill after the last one.
	if got := p.Stats().Refills; got != 101 {
		t.Errorf("Stats().Refills = %d, want 101", got)
	}
}
