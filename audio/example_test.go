// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"

	"github.com/ik5/bufport/audio"
	"github.com/ik5/bufport/internal/audiotest"
)

// Example shows a 48 kHz stereo source brought down to 16 kHz mono PCM16.
func Example() {
	src := audiotest.NewSineSource(48000, 2, 4800, 440)

	res := audio.NewResampler(src, 16000)
	mono := audio.NewMonoMixer(res)
	pcm := audio.NewPCM16Reader(mono)
	defer pcm.Close()

	data, err := io.ReadAll(pcm)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(mono.SampleRate(), mono.Channels(), len(data))
	// Output: 16000 1 3200
}
