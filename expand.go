// expand.go -- deterministic SHA-256 unfolding of a seed into a byte
// stream.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

import "bytes"

// expand returns exactly l bytes of the concatenation
// H(seed) || H(H(seed)) || H(H(H(seed))) || ...
//
// It is a pure function of (seed, l): expand(seed, l1) is always a prefix
// of expand(seed, l2) for l1 <= l2, and the working buffer never grows
// beyond l+32 bytes. cache may be nil, in which case every link in the
// chain is hashed fresh.
func expand(cache *digestCache, seed []byte, l int) []byte {
	buf := make([]byte, 0, l+32)
	cur := seed
	for len(buf) < l {
		var d digest32
		if cache != nil {
			d = cache.hash(cur)
		} else {
			d = hashBytes(cur)
		}
		buf = append(buf, d[:]...)
		cur = d[:]
	}
	return buf[:l]
}

// findSeedMatch searches seed indices 0..space(maxSeedLen) in enumeration
// order for one whose expansion equals slice. It returns ErrNoMatch if
// none is found. This brute-force search is used by tests and by the
// multi-pass driver's single-block candidate search; multi-block matching
// goes through BatchSeedMatcher so large seed spaces can be searched
// incrementally or in parallel.
func findSeedMatch(cache *digestCache, slice []byte, maxSeedLen int) (uint64, error) {
	space := seedSpaceSize(maxSeedLen)
	for idx := uint64(0); idx < space; idx++ {
		seed, err := indexToSeed(idx, maxSeedLen)
		if err != nil {
			return 0, err
		}
		if bytes.Equal(expand(cache, seed, len(slice)), slice) {
			return idx, nil
		}
	}
	return 0, ErrNoMatch
}
