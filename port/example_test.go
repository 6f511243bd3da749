// SPDX-License-Identifier: EPL-2.0

package port_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/bufport/port"
)

// Example_splitRead shows a frame that straddles two refills.
func Example_splitRead() {
	refill := func(buf []byte) (int, error) {
		for i := range buf {
			buf[i] = byte(i)
		}
		return len(buf), nil
	}

	buf, err := port.NewFrameBuffer(100, refill)
	if err != nil {
		fmt.Println(err)
		return
	}

	frame := make([]byte, 30)
	for range 4 {
		kind, _ := buf.GetFrame(frame)
		fmt.Println(kind, frame[0], frame[29])
	}
	// Output:
	// audio 0 29
	// audio 30 59
	// audio 60 89
	// audio 90 19
}

// Example_endOfStream shows how a driver notices the end of a stream.
func Example_endOfStream() {
	chunks := [][]byte{make([]byte, 960)}
	refill := func(buf []byte) (int, error) {
		if len(chunks) == 0 {
			return 0, io.EOF
		}
		n := copy(buf, chunks[0])
		chunks = chunks[1:]
		return n, nil
	}

	p, err := port.New(port.Config{
		Name:            "capture",
		ClockRate:       16000,
		ChannelCount:    1,
		BitsPerSample:   16,
		SamplesPerFrame: 160,
		BufferCapacity:  port.RecommendedCapacity(320),
		Refill:          refill,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer p.Destroy()

	frames := 0
	for {
		frame, err := p.NextFrame()
		if frame.Kind == port.KindNone {
			fmt.Println("end of stream:", errors.Is(err, io.EOF))
			break
		}
		frames++
	}

	fmt.Println("frames:", frames, "state:", p.State())
	// Output:
	// end of stream: true
	// frames: 2 state: ended
}
