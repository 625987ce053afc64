// matcher.go -- the pluggable batch seed matcher and a scalar reference
// implementation. LoadTile pins the data a batch of Match calls will
// run against; Match is pure over that pinned tile. The scalar
// implementation fingerprints spans with a fast non-cryptographic hash
// so a seed's expansion is byte-compared only against same-bucket
// candidates.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

import (
	"bytes"

	fasthash "github.com/opencoff/go-fasthash"
)

// BatchSeedMatcher is the capability the multi-pass driver consults for
// multi-block bundle candidates. Implementations must be pure over the
// currently loaded tile and must never report block positions outside
// it; an implementation that cannot finish a match pass (e.g. a
// cancelled GPU dispatch) returns an error rather than partial results.
type BatchSeedMatcher interface {
	LoadTile(blocks []Block)
	Match(seedStart, seedEnd uint64) ([]BundleRecord, error)
}

// scalarMatcher is the CPU reference implementation of BatchSeedMatcher.
// It fingerprints every candidate span in the loaded tile once per
// LoadTile call, then for each seed in a Match range expands the seed
// at each candidate span length and probes the fingerprint table instead
// of re-hashing every span from scratch.
type scalarMatcher struct {
	cfg    *Config
	cache  *digestCache
	blocks []Block

	// spansByLen[length] maps a fasthash fingerprint of a span's bytes to
	// the list of tile-relative start positions with that fingerprint and
	// length, for length in 2..=MaxArity. Single-block (arity 1) spans are
	// left to the ordinary per-position candidate search; the matcher only
	// contributes multi-block bundle candidates.
	spansByLen []map[uint64][]int
}

func newScalarMatcher(cfg *Config, cache *digestCache) *scalarMatcher {
	return &scalarMatcher{cfg: cfg, cache: cache}
}

func (m *scalarMatcher) LoadTile(blocks []Block) {
	m.blocks = blocks
	maxLen := m.cfg.MaxArity
	if maxLen > len(blocks) {
		maxLen = len(blocks)
	}
	m.spansByLen = make([]map[uint64][]int, maxLen+1)
	for l := 2; l <= maxLen; l++ {
		idx := make(map[uint64][]int)
		for start := 0; start+l <= len(blocks); start++ {
			span := m.spanBytes(start, l)
			fp := fasthash.Hash64(0, span)
			idx[fp] = append(idx[fp], start)
		}
		m.spansByLen[l] = idx
	}
}

func (m *scalarMatcher) spanBytes(start, length int) []byte {
	out := make([]byte, 0, length*m.cfg.BlockSize)
	for i := 0; i < length; i++ {
		out = append(out, m.blocks[start+i].Payload...)
	}
	return out
}

// Match searches seed indices in [seedStart, seedEnd) for ones whose
// expansion equals some indexed span in the loaded tile, for every span
// length 2..=MaxArity. Length-2 matches are never reported, since arity 2
// is reserved and cannot be encoded. It is pure over the tile pinned by
// the most recent LoadTile call and returns only records whose covered
// positions lie within that tile.
func (m *scalarMatcher) Match(seedStart, seedEnd uint64) ([]BundleRecord, error) {
	var out []BundleRecord
	codec := newArityCodec(m.cfg)
	space := seedSpaceSize(m.cfg.MaxSeedLen)
	if seedEnd > space {
		seedEnd = space
	}

	for idx := seedStart; idx < seedEnd; idx++ {
		seed, err := indexToSeed(idx, m.cfg.MaxSeedLen)
		if err != nil {
			return nil, err
		}
		for l := 2; l < len(m.spansByLen); l++ {
			table := m.spansByLen[l]
			if len(table) == 0 {
				continue
			}
			expanded := expand(m.cache, seed, l*m.cfg.BlockSize)
			fp := fasthash.Hash64(0, expanded)
			for _, start := range table[fp] {
				if !bytes.Equal(m.spanBytes(start, l), expanded) {
					continue // fingerprint collision, not a real match
				}
				w := newBitWriter()
				if err := codec.writeArityMatch(w, l); err != nil {
					continue
				}
				writeEVQL(w, idx)
				bits := w.bitLen()

				out = append(out, BundleRecord{
					SeedIndex:    idx,
					Start:        start,
					Length:       l,
					OriginalBits: bits, // refined by the caller against actual per-block bit lengths
					EncodedBits:  bits,
				})
			}
		}
	}
	return out, nil
}
