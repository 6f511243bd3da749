// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ik5/bufport"
	"github.com/ik5/bufport/formats/wav"
	"github.com/ik5/bufport/metrics"
	"github.com/ik5/bufport/pipeline"
	"github.com/ik5/bufport/port"
	"github.com/ik5/bufport/source"
)

// echoStage is where a canceller would sit. It records the capture frame of
// every step.
type echoStage struct {
	out   *wav.Writer
	rec   int
	delay time.Duration
	tail  time.Duration
}

func (s *echoStage) Process(_ context.Context, frames []port.Frame) error {
	_, err := s.out.Write(frames[s.rec].Payload)
	return err
}

func run(ctx context.Context, cfg Config, stdin io.Reader, stderr io.Writer) (err error) {
	level, _ := cfg.logLevel()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	onEnd, _ := cfg.onEnd()

	play, err := openInput(cfg.Play, cfg, "play", logger)
	if err != nil {
		return err
	}
	defer play.Destroy()

	rec, err := openInput(cfg.Rec, cfg, "rec", logger)
	if err != nil {
		return err
	}
	defer rec.Destroy()

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	out, err := wav.NewWriter(f, cfg.ClockRate, cfg.Channels)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	collector := metrics.NewCollector("aectest")
	collector.Add(play)
	collector.Add(rec)

	if cfg.MetricsAddr != "" {
		stop, err := serveMetrics(cfg.MetricsAddr, collector, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	stage := &echoStage{
		out:   out,
		rec:   1,
		delay: time.Duration(cfg.DelayMs) * time.Millisecond,
		tail:  time.Duration(cfg.TailMs) * time.Millisecond,
	}
	driver := &pipeline.Driver{
		Ports:    []*port.Port{play, rec},
		Stage:    stage,
		OnEnd:    onEnd,
		Observer: collector,
		Logger:   logger,
	}

	logger.Info("starting",
		"clock_rate", cfg.ClockRate,
		"samples_per_frame", cfg.SamplesPerFrame(),
		"buffer_bytes", play.Info().Capacity,
		"delay", stage.delay,
		"tail", stage.tail,
		"repeat", cfg.Repeat,
	)

	t0 := time.Now()
	steps := 0
	for i := range cfg.Repeat {
		res, err := driver.Run(ctx, cfg.Frames)
		steps += res.Steps
		if err != nil {
			return fmt.Errorf("repeat %d: %w", i+1, err)
		}
		if len(res.Ended) > 0 && onEnd == pipeline.StopOnEnd {
			logger.Warn("input ended early", "repeat", i+1, "ports", res.Ended)
			break
		}
	}
	elapsed := time.Since(t0)

	logger.Info(fmt.Sprintf("Completed in %d msec", elapsed.Milliseconds()),
		"steps", steps,
		"recorded_samples", out.Samples(),
	)
	for _, p := range driver.Ports {
		st := p.Stats()
		logger.Debug("port stats", "port", p.Info().Name, "frames", st.Frames,
			"refills", st.Refills, "split_reads", st.SplitReads, "state", p.State())
	}

	if cfg.Interactive {
		fmt.Fprintln(stderr, "ENTER to quit")
		_, _ = bufio.NewReader(stdin).ReadString('\n')
	}
	return nil
}

// openInput opens a file as a port, or a silence port for "silence".
func openInput(input string, cfg Config, name string, logger *slog.Logger) (*port.Port, error) {
	pc := cfg.portConfig(name)
	pc.Logger = logger

	if input == silenceInput {
		pc.Refill = source.Silence(cfg.SilenceFraction)
		return port.New(pc)
	}

	p, err := bufport.OpenFile(input, pc)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return p, nil
}

// serveMetrics exposes the collector on addr until the returned func is
// called.
func serveMetrics(addr string, c prometheus.Collector, logger *slog.Logger) (func(), error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
