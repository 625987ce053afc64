// decoder_test.go -- decoder-level behavior not covered by the
// whole-stream scenarios in stream_test.go: the SeedExpansions
// precomputed-expansion path.

package telomere

import "testing"

func TestExpandSeedIndexPrefersPrecomputed(t *testing.T) {
	assert := newAsserter(t)

	cfg := NewConfig()
	idx := uint64(7)
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	cfg.SeedExpansions = map[uint64][]byte{idx: want}

	got, err := expandSeedIndex(cfg, nil, idx, len(want))
	assert(err == nil, "unexpected error: %v", err)
	assert(string(got) == string(want), "expected the precomputed expansion to be returned verbatim, got %x", got)
}

func TestExpandSeedIndexFallsBackWhenShortOrAbsent(t *testing.T) {
	assert := newAsserter(t)

	cfg := NewConfig()
	idx := uint64(3)
	seed, err := indexToSeed(idx, cfg.MaxSeedLen)
	assert(err == nil, "unexpected error: %v", err)
	want := expand(nil, seed, 10)

	// absent entry
	got, err := expandSeedIndex(cfg, nil, idx, 10)
	assert(err == nil, "unexpected error: %v", err)
	assert(string(got) == string(want), "expected fallback expansion to match expand(), got %x want %x", got, want)

	// entry too short for the requested length
	cfg.SeedExpansions = map[uint64][]byte{idx: {0x01, 0x02}}
	got, err = expandSeedIndex(cfg, nil, idx, 10)
	assert(err == nil, "unexpected error: %v", err)
	assert(string(got) == string(want), "expected short precomputed entry to be ignored, got %x want %x", got, want)
}
