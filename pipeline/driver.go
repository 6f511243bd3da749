// SPDX-License-Identifier: EPL-2.0

// Package pipeline drives several frame ports in lock step and hands each
// step's frames to a processing Stage.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ik5/bufport/port"
)

// Stage consumes one frame per port per step, in Driver.Ports order. The
// payloads are reused by the next step; copy what must outlive the call.
type Stage interface {
	Process(ctx context.Context, frames []port.Frame) error
}

// StageFunc adapts a function to Stage.
type StageFunc func(ctx context.Context, frames []port.Frame) error

func (f StageFunc) Process(ctx context.Context, frames []port.Frame) error { return f(ctx, frames) }

// Observer is notified after every step with each port, from the driver's
// goroutine. metrics.Collector implements it.
type Observer interface {
	Observe(p *port.Port)
}

// OnEnd selects what happens when a port's stream ends.
type OnEnd uint8

const (
	// StopOnEnd stops the run at the first ended port. The step it ended
	// in is not processed.
	StopOnEnd OnEnd = iota
	// FillSilence substitutes zeroed frames for ended ports and stops once
	// every port has ended.
	FillSilence
)

func (o OnEnd) String() string {
	if o == FillSilence {
		return "fill-silence"
	}
	return "stop"
}

// Driver pulls frames from Ports and feeds them to Stage.
type Driver struct {
	Ports    []*port.Port
	Stage    Stage
	OnEnd    OnEnd
	Observer Observer
	Logger   *slog.Logger
}

// Result summarizes a run.
type Result struct {
	Steps int      // steps handed to the stage
	Ended []string // names of ports that ended, in the order they ended
}

// Run processes up to frames steps; frames <= 0 means until the streams
// end. It returns early with ctx.Err() when ctx is done, and with any error
// from the stage or from a port other than the end of its stream.
func (d *Driver) Run(ctx context.Context, frames int) (Result, error) {
	var res Result

	if len(d.Ports) == 0 {
		return res, ErrNoPorts
	}
	if d.Stage == nil {
		return res, ErrNoStage
	}

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bufs := make([][]byte, len(d.Ports))
	for i, p := range d.Ports {
		bufs[i] = make([]byte, p.FrameSize())
	}
	batch := make([]port.Frame, len(d.Ports))
	ended := make([]bool, len(d.Ports))

	logger.Info("pipeline started", "ports", len(d.Ports), "frames", frames, "on_end", d.OnEnd)

	reason := "budget"
	for frames <= 0 || res.Steps < frames {
		if err := ctx.Err(); err != nil {
			logger.Info("pipeline stopped", "steps", res.Steps, "reason", "canceled")
			return res, err
		}

		stop, err := d.pull(batch, bufs, ended, &res, logger)
		if err != nil {
			return res, err
		}
		if stop {
			reason = "ended"
			break
		}

		if err := d.Stage.Process(ctx, batch); err != nil {
			logger.Warn("pipeline stopped", "steps", res.Steps, "error", err)
			return res, fmt.Errorf("stage: %w", err)
		}
		res.Steps++

		if d.Observer != nil {
			for _, p := range d.Ports {
				d.Observer.Observe(p)
			}
		}
	}

	logger.Info("pipeline stopped", "steps", res.Steps, "reason", reason, "ended", res.Ended)
	return res, nil
}

// pull fills batch with one frame per port. It reports whether the run
// should stop.
func (d *Driver) pull(batch []port.Frame, bufs [][]byte, ended []bool, res *Result, logger *slog.Logger) (bool, error) {
	live := 0
	for i, p := range d.Ports {
		if ended[i] {
			batch[i] = silence(p, bufs[i])
			continue
		}

		frame, err := p.GetFrame(bufs[i])
		if frame.Kind == port.KindAudio {
			batch[i] = frame
			live++
			continue
		}
		if !errors.Is(err, port.ErrRefillFailed) && !errors.Is(err, port.ErrEnded) {
			return false, fmt.Errorf("port %s: %w", p.Info().Name, err)
		}

		ended[i] = true
		res.Ended = append(res.Ended, p.Info().Name)
		logger.Info("port ended", "port", p.Info().Name, "step", res.Steps, "error", err)

		if d.Observer != nil {
			d.Observer.Observe(p)
		}
		if d.OnEnd == StopOnEnd {
			return true, nil
		}
		batch[i] = silence(p, bufs[i])
	}
	return live == 0, nil
}

func silence(p *port.Port, buf []byte) port.Frame {
	clear(buf)
	return port.Frame{
		Kind:    port.KindAudio,
		Payload: buf,
		Size:    len(buf),
		Format:  p.Info().Format,
	}
}
