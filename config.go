// config.go -- configuration record for the telomere codec.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

// Config carries the knobs every component in this package consults. All
// fields have sensible defaults via NewConfig; the zero value is not
// meant to be used directly.
type Config struct {
	// BlockSize is the number of plaintext bytes per block, 1..=16.
	BlockSize int

	// MaxSeedLen bounds the seed-enumeration space: seeds of length
	// 1..=MaxSeedLen bytes are considered, up to 4. The default is 1
	// because scalarMatcher brute-forces the whole seed space once per
	// pass: seedSpaceSize(4) is over 4.3 billion, far past what a linear
	// scan can finish. Raise this only with a matcher implementation that
	// searches sub-ranges rather than the full space in one call.
	MaxSeedLen int

	// MaxArity bounds how large a bundle the matcher/bundler will search
	// for before giving up. The arity code itself is unbounded (the
	// window tree recurses), so a practical search ceiling is needed.
	MaxArity int

	// HashBits is the width of the truncated plaintext-hash field stored
	// in the file header; 13 by convention.
	HashBits int

	// MaxPasses bounds the multi-pass driver.
	MaxPasses int

	// CacheBudgetBytes sizes the seed/digest LRU cache; ~40 bytes per
	// cached entry.
	CacheBudgetBytes int

	// SeedExpansions optionally pre-computes expansions for specific
	// seed indices so the decoder can avoid recomputing long nested
	// hash chains. Keyed by seed index; absent entries (or entries
	// shorter than the span being decoded) fall back to on-the-fly
	// expansion via expand().
	SeedExpansions map[uint64][]byte

	// MaxSuperposedPerPosition bounds how many superposed candidates a
	// single block position may accumulate during bundle selection.
	// Exceeding it is a selection failure, not a silent drop, since it
	// signals a matcher proposing pathologically many overlapping records
	// for one span.
	MaxSuperposedPerPosition int
}

// NewConfig returns a Config with usable defaults: 4-byte blocks,
// single-byte seeds (see MaxSeedLen's doc comment), a 13-bit hash
// field, and a cache budget sized for modest inputs.
func NewConfig() *Config {
	return &Config{
		BlockSize:                4,
		MaxSeedLen:               1,
		MaxArity:                 64,
		HashBits:                 13,
		MaxPasses:                8,
		CacheBudgetBytes:         1 << 20, // 1 MiB ~= 26214 cached seeds at ~40B/entry
		SeedExpansions:           nil,
		MaxSuperposedPerPosition: maxNearBest,
	}
}

func (c *Config) validate() error {
	if c.BlockSize < 1 || c.BlockSize > 16 {
		return errf(HeaderInvalid, "block size %d out of range [1,16]", c.BlockSize)
	}
	if c.MaxSeedLen < 1 || c.MaxSeedLen > 4 {
		return errf(SeedOutOfRange, "max seed len %d out of range [1,4]", c.MaxSeedLen)
	}
	if c.HashBits < 1 || c.HashBits > 16 {
		return errf(HeaderInvalid, "hash bits %d out of range", c.HashBits)
	}
	if c.MaxSuperposedPerPosition < 0 {
		return errf(SuperpositionLimitExceeded, "max superposed per position %d must be >= 0", c.MaxSuperposedPerPosition)
	}
	return nil
}
