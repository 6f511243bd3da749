// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCommand() *cobra.Command {
	var (
		configPath string
		flags      = DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "aectest [flags] <PLAY> <REC> <OUTPUT.WAV>",
		Short: "Feed playback and capture frames through buffer ports",
		Long: `aectest pulls one frame from the playback port and one from the capture
port per step, repeat × frames times, and writes the capture frames to
OUTPUT.WAV. PLAY and REC are audio files or "silence".`,
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = LoadConfig(configPath, cfg); err != nil {
					return err
				}
			}
			overlay(cmd.Flags(), &cfg, flags)
			cfg.Play, cfg.Rec, cfg.Output = args[0], args[1], args[2]

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.ErrOrStderr())
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&configPath, "config", "c", "", "YAML config file")
	fs.IntVarP(&flags.DelayMs, "delay", "d", flags.DelayMs, "delay between playback and capture in ms, at least 25")
	fs.IntVarP(&flags.TailMs, "tail", "l", flags.TailMs, "echo tail length in ms")
	fs.IntVarP(&flags.Repeat, "repeat", "r", flags.Repeat, "repeat count")
	fs.IntVar(&flags.Frames, "frames", flags.Frames, "frames per repeat")
	fs.IntVar(&flags.PtimeMs, "ptime", flags.PtimeMs, "frame duration in ms")
	fs.IntVar(&flags.ClockRate, "clock-rate", flags.ClockRate, "port clock rate in Hz")
	fs.IntVar(&flags.Channels, "channels", flags.Channels, "port channel count")
	fs.IntVar(&flags.BufferFrames, "buffer-frames", flags.BufferFrames, "buffer capacity in frames")
	fs.StringVar(&flags.Refill, "refill", flags.Refill, "refill policy: eager or lazy")
	fs.StringVar(&flags.OnEnd, "on-end", flags.OnEnd, "when a stream ends: stop or fill-silence")
	fs.Float64Var(&flags.SilenceFraction, "silence-fraction", flags.SilenceFraction, "share of the buffer a silence refill fills")
	fs.StringVar(&flags.MetricsAddr, "metrics-addr", flags.MetricsAddr, "serve Prometheus metrics on this address while running")
	fs.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "debug, info, warn or error")
	fs.BoolVarP(&flags.Interactive, "interactive", "i", flags.Interactive, "wait for ENTER before exiting")

	return cmd
}

// overlay copies the flags set on the command line from src into dst.
func overlay(fs *pflag.FlagSet, dst *Config, src Config) {
	set := map[string]func(){
		"delay":            func() { dst.DelayMs = src.DelayMs },
		"tail":             func() { dst.TailMs = src.TailMs },
		"repeat":           func() { dst.Repeat = src.Repeat },
		"frames":           func() { dst.Frames = src.Frames },
		"ptime":            func() { dst.PtimeMs = src.PtimeMs },
		"clock-rate":       func() { dst.ClockRate = src.ClockRate },
		"channels":         func() { dst.Channels = src.Channels },
		"buffer-frames":    func() { dst.BufferFrames = src.BufferFrames },
		"refill":           func() { dst.Refill = src.Refill },
		"on-end":           func() { dst.OnEnd = src.OnEnd },
		"silence-fraction": func() { dst.SilenceFraction = src.SilenceFraction },
		"metrics-addr":     func() { dst.MetricsAddr = src.MetricsAddr },
		"log-level":        func() { dst.LogLevel = src.LogLevel },
		"interactive":      func() { dst.Interactive = src.Interactive },
	}

	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := set[f.Name]; ok {
			apply()
		}
	})
}
