// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
)

// ErrSourceDry is returned by scripted refills once their script runs out.
var ErrSourceDry = errors.New("audiotest: source dry")

// PatternRefill fills the whole buffer with the byte sequence 0, 1, 2, ...
// (mod 256) on every call and never fails.
type PatternRefill struct {
	Calls int
}

func (p *PatternRefill) Refill(buf []byte) (int, error) {
	p.Calls++
	for i := range buf {
		buf[i] = byte(i)
	}
	return len(buf), nil
}

// Step is one scripted refill result.
type Step struct {
	Data []byte
	Err  error
	// Claim overrides the returned byte count when non-zero.
	Claim int
}

// ScriptedRefill replays Steps in order. When the script is exhausted it
// returns ErrSourceDry.
type ScriptedRefill struct {
	Steps []Step
	Calls int
}

// Chunks builds a script that delivers each chunk in turn.
func Chunks(chunks ...[]byte) *ScriptedRefill {
	s := &ScriptedRefill{}
	for _, c := range chunks {
		s.Steps = append(s.Steps, Step{Data: c})
	}
	return s
}

func (s *ScriptedRefill) Refill(buf []byte) (int, error) {
	s.Calls++
	if len(s.Steps) == 0 {
		return 0, ErrSourceDry
	}

	step := s.Steps[0]
	s.Steps = s.Steps[1:]

	n := copy(buf, step.Data)
	if step.Claim != 0 {
		n = step.Claim
	}
	return n, step.Err
}

// StreamRefill serves Data in chunks whose sizes cycle through Sizes, capped
// by the buffer capacity. It fails with ErrSourceDry once Data is consumed.
type StreamRefill struct {
	Data  []byte
	Sizes []int
	Calls int

	off int
}

func (s *StreamRefill) Refill(buf []byte) (int, error) {
	s.Calls++
	if s.off >= len(s.Data) {
		return 0, ErrSourceDry
	}

	size := len(buf)
	if len(s.Sizes) > 0 {
		size = min(size, s.Sizes[(s.Calls-1)%len(s.Sizes)])
	}

	n := copy(buf[:size], s.Data[s.off:])
	s.off += n
	return n, nil
}
