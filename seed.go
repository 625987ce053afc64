// seed.go -- deterministic enumeration of variable-length seeds.
//
// Seeds are ordered first by length (shortest first), then
// lexicographically big-endian within a length class: all 1-byte seeds
// (indices 0..=255), then all 2-byte seeds (256..=65791), and so on, up
// to MaxSeedLen bytes. The mapping is a bijection, so a seed index
// fully names a seed and vice versa.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

import "math/bits"

// seedSpaceSize returns the total number of seeds of length 1..=maxLen,
// i.e. sum(256^L) for L in 1..=maxLen.
func seedSpaceSize(maxLen int) uint64 {
	var total uint64
	var count uint64 = 1
	for l := 1; l <= maxLen; l++ {
		count *= 256
		total += count
	}
	return total
}

// indexToSeed returns the canonical byte sequence for seed index idx
// under the given maxLen. It fails with SeedOutOfRange if idx exceeds the
// total seed space.
func indexToSeed(idx uint64, maxLen int) ([]byte, error) {
	var total uint64
	var count uint64 = 1
	for l := 1; l <= maxLen; l++ {
		count *= 256
		if idx < total+count {
			offset := idx - total
			out := make([]byte, l)
			for i := 0; i < l; i++ {
				out[l-1-i] = byte(offset >> uint(8*i))
			}
			return out, nil
		}
		total += count
	}
	return nil, errf(SeedOutOfRange, "index %d exceeds seed space for max len %d", idx, maxLen)
}

// seedToIndex is the inverse of indexToSeed: it recovers the enumeration
// index for a canonical seed byte sequence.
func seedToIndex(seed []byte) uint64 {
	l := len(seed)
	var total uint64
	var count uint64 = 1
	for ln := 1; ln < l; ln++ {
		count *= 256
		total += count
	}

	var offset uint64
	for _, b := range seed {
		offset = (offset << 8) | uint64(b)
	}
	return total + offset
}

// seedBitLength is the zero-based position of the most significant set
// bit in s viewed big-endian, plus one. An all-zero seed has bit
// length 0.
func seedBitLength(s []byte) int {
	for i, b := range s {
		if b != 0 {
			return bits.Len8(b) + 8*(len(s)-1-i)
		}
	}
	return 0
}
