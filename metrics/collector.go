// SPDX-License-Identifier: EPL-2.0

// Package metrics exports frame port counters to Prometheus.
//
// Ports are not safe for concurrent use, so the collector never reads a
// port during a scrape. The goroutine that drives a port calls Observe to
// publish a snapshot; Collect reports the latest snapshots.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ik5/bufport/port"
)

type snapshot struct {
	stats port.Stats
	state port.State
}

// Collector implements prometheus.Collector for a set of ports, labelled by
// port name.
type Collector struct {
	mu    sync.Mutex
	ports map[string]snapshot

	frames       *prometheus.Desc
	refills      *prometheus.Desc
	emptyRefills *prometheus.Desc
	splitReads   *prometheus.Desc
	bytesIn      *prometheus.Desc
	bytesOut     *prometheus.Desc
	ended        *prometheus.Desc
}

func NewCollector(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "port", name), help, []string{"port"}, nil)
	}

	return &Collector{
		ports:        make(map[string]snapshot),
		frames:       desc("frames_total", "Frames delivered."),
		refills:      desc("refills_total", "Refill callback invocations."),
		emptyRefills: desc("empty_refills_total", "Successful refills that produced no bytes."),
		splitReads:   desc("split_reads_total", "Frames assembled across a refill."),
		bytesIn:      desc("bytes_in_total", "Bytes produced by refills."),
		bytesOut:     desc("bytes_out_total", "Bytes delivered in frames."),
		ended:        desc("ended", "1 once the port's stream has ended."),
	}
}

// Add starts tracking p under its configured name.
func (c *Collector) Add(p *port.Port) { c.Observe(p) }

// Observe records the current counters of p. Call it from the goroutine
// that reads frames from p.
func (c *Collector) Observe(p *port.Port) {
	s := snapshot{stats: p.Stats(), state: p.State()}

	c.mu.Lock()
	c.ports[p.Info().Name] = s
	c.mu.Unlock()
}

// Remove stops reporting the port named name.
func (c *Collector) Remove(name string) {
	c.mu.Lock()
	delete(c.ports, name)
	c.mu.Unlock()
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.frames
	ch <- c.refills
	ch <- c.emptyRefills
	ch <- c.splitReads
	ch <- c.bytesIn
	ch <- c.bytesOut
	ch <- c.ended
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name, s := range c.ports {
		counter := func(d *prometheus.Desc, v uint64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), name)
		}
		counter(c.frames, s.stats.Frames)
		counter(c.refills, s.stats.Refills)
		counter(c.emptyRefills, s.stats.EmptyRefills)
		counter(c.splitReads, s.stats.SplitReads)
		counter(c.bytesIn, s.stats.BytesIn)
		counter(c.bytesOut, s.stats.BytesOut)

		var ended float64
		if s.state == port.StateEnded {
			ended = 1
		}
		ch <- prometheus.MustNewConstMetric(c.ended, prometheus.GaugeValue, ended, name)
	}
}
