// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ik5/bufport/internal/audiotest"
	"github.com/ik5/bufport/port"
)

func newPort(t *testing.T, name string, refill port.RefillFunc) *port.Port {
	t.Helper()

	p, err := port.New(port.Config{
		Name:            name,
		ClockRate:       8000,
		ChannelCount:    1,
		BitsPerSample:   16,
		SamplesPerFrame: 5,
		BufferCapacity:  100,
		Refill:          refill,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("port.New() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Destroy() })
	return p
}

func TestCollector(t *testing.T) {
	t.Parallel()

	// Frames of 10 bytes from a 100-byte buffer that only ever gets 30.
	play := newPort(t, "play", audiotest.Chunks(make([]byte, 30)).Refill)
	c := NewCollector("aec")
	c.Add(play)

	for range 4 {
		_, _ = play.NextFrame()
	}
	c.Observe(play)

	want := `
# HELP aec_port_bytes_in_total Bytes produced by refills.
# TYPE aec_port_bytes_in_total counter
aec_port_bytes_in_total{port="play"} 30
# HELP aec_port_ended 1 once the port's stream has ended.
# TYPE aec_port_ended gauge
aec_port_ended{port="play"} 1
# HELP aec_port_frames_total Frames delivered.
# TYPE aec_port_frames_total counter
aec_port_frames_total{port="play"} 2
# HELP aec_port_refills_total Refill callback invocations.
# TYPE aec_port_refills_total counter
aec_port_refills_total{port="play"} 2
`
	err := testutil.CollectAndCompare(c, strings.NewReader(want),
		"aec_port_bytes_in_total", "aec_port_ended", "aec_port_frames_total", "aec_port_refills_total")
	if err != nil {
		t.Error(err)
	}
}

func TestCollector_Count(t *testing.T) {
	t.Parallel()

	c := NewCollector("bufport")
	if n := testutil.CollectAndCount(c); n != 0 {
		t.Errorf("CollectAndCount() on empty collector = %d, want 0", n)
	}

	c.Add(newPort(t, "play", (&audiotest.PatternRefill{}).Refill))
	c.Add(newPort(t, "rec", (&audiotest.PatternRefill{}).Refill))
	if n := testutil.CollectAndCount(c); n != 14 {
		t.Errorf("CollectAndCount() = %d, want 14", n)
	}
	if n := testutil.CollectAndCount(c, "bufport_port_frames_total"); n != 2 {
		t.Errorf("frames_total series = %d, want 2", n)
	}

	c.Remove("rec")
	if n := testutil.CollectAndCount(c); n != 7 {
		t.Errorf("CollectAndCount() after Remove = %d, want 7", n)
	}
}

func TestCollector_Register(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewCollector("bufport")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := testutil.GatherAndCompare(reg, strings.NewReader("")); err != nil {
		t.Error(err)
	}
}
