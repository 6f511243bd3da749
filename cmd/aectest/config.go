// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ik5/bufport/pipeline"
	"github.com/ik5/bufport/port"
)

const (
	defaultClockRate    = 16000
	defaultChannels     = 1
	defaultPtimeMs      = 10
	defaultDelayMs      = 25
	defaultTailMs       = 200
	defaultRepeat       = 1
	defaultFrames       = 1000
	defaultBufferFrames = port.DefaultBufferFrames

	// minDelayMs is one 20 ms frame plus 5 ms of WSOLA look-ahead.
	minDelayMs = 25

	// silenceInput selects a generated silent stream instead of a file.
	silenceInput = "silence"
)

// Config holds the harness settings after defaults, the config file and
// the command line have been merged.
type Config struct {
	Play   string
	Rec    string
	Output string

	ClockRate    int
	Channels     int
	PtimeMs      int
	DelayMs      int
	TailMs       int
	Repeat       int
	Frames       int
	BufferFrames int

	Refill          string
	OnEnd           string
	SilenceFraction float64
	MetricsAddr     string
	LogLevel        string
	Interactive     bool
}

type yamlConfig struct {
	Audio struct {
		ClockRate int `yaml:"clock_rate"`
		Channels  int `yaml:"channels"`
		PtimeMs   int `yaml:"ptime_ms"`
	} `yaml:"audio"`
	Echo struct {
		DelayMs int `yaml:"delay_ms"`
		TailMs  int `yaml:"tail_ms"`
	} `yaml:"echo"`
	Run struct {
		Repeat int    `yaml:"repeat"`
		Frames int    `yaml:"frames"`
		OnEnd  string `yaml:"on_end"`
	} `yaml:"run"`
	Buffer struct {
		Frames          int     `yaml:"frames"`
		Refill          string  `yaml:"refill"`
		SilenceFraction float64 `yaml:"silence_fraction"`
	} `yaml:"buffer"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		ClockRate:       defaultClockRate,
		Channels:        defaultChannels,
		PtimeMs:         defaultPtimeMs,
		DelayMs:         defaultDelayMs,
		TailMs:          defaultTailMs,
		Repeat:          defaultRepeat,
		Frames:          defaultFrames,
		BufferFrames:    defaultBufferFrames,
		Refill:          "eager",
		OnEnd:           "stop",
		SilenceFraction: 0.5,
		LogLevel:        "info",
	}
}

// LoadConfig overlays the YAML file at path on cfg. Zero values in the file
// keep the value from cfg.
func LoadConfig(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Audio
	if yc.Audio.ClockRate > 0 {
		cfg.ClockRate = yc.Audio.ClockRate
	}
	if yc.Audio.Channels > 0 {
		cfg.Channels = yc.Audio.Channels
	}
	if yc.Audio.PtimeMs > 0 {
		cfg.PtimeMs = yc.Audio.PtimeMs
	}

	// Echo
	if yc.Echo.DelayMs > 0 {
		cfg.DelayMs = yc.Echo.DelayMs
	}
	if yc.Echo.TailMs > 0 {
		cfg.TailMs = yc.Echo.TailMs
	}

	// Run
	if yc.Run.Repeat > 0 {
		cfg.Repeat = yc.Run.Repeat
	}
	if yc.Run.Frames > 0 {
		cfg.Frames = yc.Run.Frames
	}
	if yc.Run.OnEnd != "" {
		cfg.OnEnd = strings.ToLower(yc.Run.OnEnd)
	}

	// Buffer
	if yc.Buffer.Frames > 0 {
		cfg.BufferFrames = yc.Buffer.Frames
	}
	if yc.Buffer.Refill != "" {
		cfg.Refill = strings.ToLower(yc.Buffer.Refill)
	}
	if yc.Buffer.SilenceFraction > 0 {
		cfg.SilenceFraction = yc.Buffer.SilenceFraction
	}

	if yc.MetricsAddr != "" {
		cfg.MetricsAddr = yc.MetricsAddr
	}
	if yc.LogLevel != "" {
		cfg.LogLevel = yc.LogLevel
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Play == "" || c.Rec == "" || c.Output == "" {
		return errors.New("play, rec and output are required")
	}
	if c.DelayMs < minDelayMs {
		return fmt.Errorf("invalid delay %d ms, at least %d ms", c.DelayMs, minDelayMs)
	}
	if c.TailMs <= 0 {
		return fmt.Errorf("invalid tail length %d ms", c.TailMs)
	}
	if c.Repeat < 1 {
		return fmt.Errorf("invalid repeat count %d", c.Repeat)
	}
	if c.Frames < 1 {
		return fmt.Errorf("invalid frame count %d", c.Frames)
	}
	if c.ClockRate < 1000 || c.Channels < 1 || c.PtimeMs < 1 {
		return fmt.Errorf("invalid audio format %d Hz, %d channels, %d ms", c.ClockRate, c.Channels, c.PtimeMs)
	}
	if c.BufferFrames < 1 {
		return fmt.Errorf("invalid buffer size %d frames", c.BufferFrames)
	}
	if c.SilenceFraction <= 0 || c.SilenceFraction > 1 {
		return fmt.Errorf("silence fraction must be in (0, 1], got %v", c.SilenceFraction)
	}
	if _, err := c.refillPolicy(); err != nil {
		return err
	}
	if _, err := c.onEnd(); err != nil {
		return err
	}
	if _, err := c.logLevel(); err != nil {
		return err
	}
	return nil
}

// SamplesPerFrame is the per-channel sample count of one ptime.
func (c Config) SamplesPerFrame() int { return c.ClockRate / 1000 * c.PtimeMs }

func (c Config) portConfig(name string) port.Config {
	policy, _ := c.refillPolicy()
	frameSize := c.SamplesPerFrame() * 2 * c.Channels

	return port.Config{
		Name:            name,
		ClockRate:       c.ClockRate,
		ChannelCount:    c.Channels,
		BitsPerSample:   16,
		SamplesPerFrame: c.SamplesPerFrame(),
		BufferCapacity:  frameSize * c.BufferFrames,
		RefillPolicy:    policy,
	}
}

func (c Config) refillPolicy() (port.RefillPolicy, error) {
	switch c.Refill {
	case "eager":
		return port.RefillEager, nil
	case "lazy":
		return port.RefillLazy, nil
	}
	return 0, fmt.Errorf("refill must be 'eager' or 'lazy', got %q", c.Refill)
}

func (c Config) onEnd() (pipeline.OnEnd, error) {
	switch c.OnEnd {
	case "stop":
		return pipeline.StopOnEnd, nil
	case "fill-silence":
		return pipeline.FillSilence, nil
	}
	return 0, fmt.Errorf("on-end must be 'stop' or 'fill-silence', got %q", c.OnEnd)
}

func (c Config) logLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}
