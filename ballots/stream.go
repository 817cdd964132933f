// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballots

// streamIncrement is the odd constant the state advances by on every draw.
const streamIncrement uint32 = 0x6D2B79F5

// Stream is a seeded 32-bit pseudo-random stream. Equal seeds yield equal
// sequences. The zero value is a valid stream seeded with 0.
type Stream struct {
	state uint32
}

// NewStream seeds a stream with the low 32 bits of seed.
func NewStream(seed int64) Stream {
	return Stream{state: uint32(seed)}
}

// Next advances the state and returns the mixed 32-bit output.
func (s *Stream) Next() uint32 {
	s.state += streamIncrement
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float returns the next value in [0, 1).
func (s *Stream) Float() float64 {
	return float64(s.Next()) / (1 << 32)
}

// Intn returns the next value in [0, n). n must be positive.
func (s *Stream) Intn(n int) int {
	return int(s.Float() * float64(n))
}
