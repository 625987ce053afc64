// hash.go -- SHA-256 digest primitive and the size-bounded seed cache.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

import (
	"crypto/sha256"

	lru "github.com/opencoff/golang-lru"
)

// digest32 is one SHA-256 output.
type digest32 = [32]byte

// hashBytes is plain SHA-256 over an arbitrary byte sequence.
func hashBytes(x []byte) digest32 {
	return sha256.Sum256(x)
}

// bytesPerCacheEntry approximates the memory an entry in digestCache
// occupies: a short seed key plus a 32-byte digest plus map/ARC overhead.
const bytesPerCacheEntry = 40

// digestCache is the size-bounded LRU mapping short seeds to their
// SHA-256 digest, budgeted in bytes. It wraps an ARC cache keyed by
// seed byte-strings.
type digestCache struct {
	arc *lru.ARCCache
}

// newDigestCache creates a cache sized so that budgetBytes worth of
// entries (at ~40 bytes each) can be held before eviction kicks in.
// A budget below one entry's worth is clamped to a single entry.
func newDigestCache(budgetBytes int) *digestCache {
	n := budgetBytes / bytesPerCacheEntry
	if n < 1 {
		n = 1
	}
	arc, err := lru.NewARC(n)
	if err != nil {
		// NewARC only fails for size <= 0, which we've just guarded
		// against; this is unreachable in practice.
		panic(err)
	}
	return &digestCache{arc: arc}
}

// hash returns H(seed), consulting the cache first. This is the hot path
// for seed expansion: the very first hash in any expand() chain is almost
// always a repeat across many candidate/bundle searches over the same
// seed, so caching it pays for itself quickly. expand() passes every link
// of the chain through here, so later links (keyed by a full 32-byte
// digest rather than a short seed) are cached as well.
func (c *digestCache) hash(seed []byte) digest32 {
	key := string(seed)
	if v, ok := c.arc.Get(key); ok {
		return v.(digest32)
	}
	d := hashBytes(seed)
	c.arc.Add(key, d)
	return d
}

// low13 extracts the low bits of a SHA-256 digest for the file header's
// hash field: the last two digest bytes, big-endian, masked to the
// configured width.
func low13(d digest32, bits int) uint16 {
	v := (uint16(d[30]) << 8) | uint16(d[31])
	mask := uint16(1<<uint(bits)) - 1
	return v & mask
}
