// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III streams with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always yields stereo, so the Source reports two channels even for
// mono files; put an audio.ChannelMixer behind it to feed a mono port:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))
package mp3
