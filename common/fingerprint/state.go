// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fingerprint

const (
	seed uint64 = 0x7110400071104000

	c1 uint64 = 0x87c37b91114253d5
	c2 uint64 = 0x4cf5ad432745937f

	c3 uint64 = 0xff51afd7ed558ccd
	c4 uint64 = 0xc4ceb9fe1a85ec53
)

func rotl64(x uint64, r uint) uint64 {
	return (x << r) | (x >> (64 - r))
}

// State is a 64-bit Murmur3 hasher built on the 128-bit variant, folded into
// a single word by XOR'ing the two output lanes.
//
// It uses a predefined fixed seed and is only suitable for fingerprinting,
// not for general-purpose hashing.
//
// Construct with NewState, which seeds both lanes; the zero value has
// unseeded lanes and yields different digests. Call Add/AddBytes zero or
// more times, then call Finish exactly once; a State must not be reused
// after Finish.
type State struct {
	h1, h2      uint64
	k1          uint64
	pending     bool
	totalLength int
}

// NewState returns a State ready to accumulate input.
func NewState() State {
	return State{h1: seed, h2: seed}
}

// Combine folds each of values, in order, into state and returns the result.
// Each value must implement [Fingerprinter], or be one of the built-in kinds
// handled by [Of].
func Combine(state State, values ...any) State {
	for _, v := range values {
		state = fingerprintValue(state, v)
	}
	return state
}

// Add folds a single 64-bit word into the calculation.
func (s State) Add(k uint64) State {
	if s.pending {
		return s.step(k)
	}
	s.k1 = k
	s.pending = true
	return s
}

// AddWords folds the given 64-bit words into the calculation.
func (s State) AddWords(ks []uint64) State {
	if len(ks) == 0 {
		return s
	}
	i := 0
	if s.pending {
		s = s.step(ks[i])
		i++
	}
	for i < len(ks)-1 {
		s.k1 = ks[i]
		i++
		s = s.step(ks[i])
		i++
	}
	if i < len(ks) {
		s.k1 = ks[i]
		s.pending = true
	}
	return s
}

// AddBytes folds the given bytes into the calculation.
func (s State) AddBytes(data []byte) State {
	numWords := len(data) >> 3
	if numWords > 0 {
		words := make([]uint64, numWords)
		for i := 0; i < numWords; i++ {
			words[i] = leUint64(data[i*8 : i*8+8])
		}
		s = s.AddWords(words)
	}
	remainder := len(data) & 7
	if remainder > 0 {
		var buf [8]byte
		copy(buf[:], data[numWords<<3:])
		s = s.Add(leUint64(buf[:]))
	}
	return s
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8 && i < len(b); i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

// Finish finalizes the calculation and returns the 64-bit digest. The State
// must not be used again afterwards.
func (s State) Finish() uint64 {
	h1, h2 := s.h1, s.h2
	totalLength := s.totalLength
	if s.pending {
		k1 := s.k1
		k1 *= c1
		k1 = rotl64(k1, 31)
		k1 *= c2
		h1 ^= k1
		totalLength += 8
	}

	h1 ^= uint64(totalLength)
	h2 ^= uint64(totalLength)
	h1 += h2
	h2 += h1

	h1 ^= h1 >> 33
	h1 *= c3
	h1 ^= h1 >> 33
	h1 *= c4
	h1 ^= h1 >> 33

	h2 ^= h2 >> 33
	h2 *= c3
	h2 ^= h2 >> 33
	h2 *= c4
	h2 ^= h2 >> 33

	h1 += h2
	h2 += h1

	return h1 ^ h2
}

func (s State) step(k2 uint64) State {
	k1 := s.k1
	k1 *= c1
	k1 = rotl64(k1, 31)
	k1 *= c2

	h1 := s.h1 ^ k1
	h1 = rotl64(h1, 27)
	h1 += s.h2
	h1 = h1*5 + 0x52dce729

	k2 *= c2
	k2 = rotl64(k2, 33)
	k2 *= c1

	h2 := s.h2 ^ k2
	h2 = rotl64(h2, 31)
	h2 += h1
	h2 = h2*5 + 0x38495ab5

	return State{
		h1:          h1,
		h2:          h2,
		totalLength: s.totalLength + 16,
	}
}
