// SPDX-License-Identifier: EPL-2.0

// Command aectest drives a playback port and a capture port in lock step,
// the way an echo canceller consumes them, and records the capture stream.
//
//	aectest [flags] <PLAY> <REC> <OUTPUT.WAV>
//
// PLAY and REC are audio files (wav, aiff, mp3, ogg) or the word "silence".
// The echo delay between them must be at least 25 ms: one 20 ms frame plus
// 5 ms of WSOLA look-ahead.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
