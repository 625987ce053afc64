package telomere

import "testing"

func TestSelectBundlesNoOverlapAccepted(t *testing.T) {
	assert := newAsserter(t)
	cfg := NewConfig()

	records := []BundleRecord{
		{SeedIndex: 1, Start: 0, Length: 2, OriginalBits: 40, EncodedBits: 10},
		{SeedIndex: 2, Start: 2, Length: 3, OriginalBits: 60, EncodedBits: 12},
	}
	accepted, err := selectBundles(cfg, records, 5)
	assert(err == nil, "unexpected error: %v", err)
	assert(len(accepted) == 2, "expected both disjoint records accepted, got %d", len(accepted))
	for _, a := range accepted {
		assert(!a.superposed, "expected a non-superposed accept, got superposed")
	}
}

func TestSelectBundlesPartialOverlapRejected(t *testing.T) {
	assert := newAsserter(t)
	cfg := NewConfig()

	records := []BundleRecord{
		{SeedIndex: 1, Start: 0, Length: 3, OriginalBits: 40, EncodedBits: 10},
		{SeedIndex: 2, Start: 1, Length: 1, OriginalBits: 10, EncodedBits: 5},
		{SeedIndex: 3, Start: 1, Length: 3, OriginalBits: 50, EncodedBits: 11},
	}
	// positions processed in order: record1 claims [0,3); record2 subset
	// of owner1 -> superposed; record3 overlaps owner1 partially (not a
	// subset: [1,4) vs [0,3)) -> rejected.
	accepted, err := selectBundles(cfg, records, 5)
	assert(err == nil, "unexpected error: %v", err)
	assert(len(accepted) == 2, "expected 2 accepted records, got %d", len(accepted))
	assert(!accepted[0].superposed, "expected owner record to be non-superposed")
	assert(accepted[1].superposed, "expected subset record to be accepted as superposed")
}

func TestSelectBundlesSubsetTooLargeRejected(t *testing.T) {
	assert := newAsserter(t)
	cfg := NewConfig()

	records := []BundleRecord{
		{SeedIndex: 1, Start: 0, Length: 3, OriginalBits: 40, EncodedBits: 10},
		{SeedIndex: 2, Start: 0, Length: 2, OriginalBits: 60, EncodedBits: 9}, // 60 > 40+8
	}
	accepted, err := selectBundles(cfg, records, 5)
	assert(err == nil, "unexpected error: %v", err)
	assert(len(accepted) == 1, "expected the oversized subset to be rejected, got %d accepted", len(accepted))
}

func TestSelectBundlesIdempotent(t *testing.T) {
	assert := newAsserter(t)
	cfg := NewConfig()

	records := []BundleRecord{
		{SeedIndex: 1, Start: 0, Length: 2, OriginalBits: 40, EncodedBits: 10},
		{SeedIndex: 2, Start: 2, Length: 2, OriginalBits: 40, EncodedBits: 10},
	}
	first, err := selectBundles(cfg, records, 4)
	assert(err == nil, "unexpected error: %v", err)

	var rerun []BundleRecord
	for _, a := range first {
		rerun = append(rerun, a.BundleRecord)
	}
	second, err := selectBundles(cfg, rerun, 4)
	assert(err == nil, "unexpected error: %v", err)

	assert(len(first) == len(second), "idempotence violated: different accepted counts")
	for i := range first {
		assert(first[i] == second[i], "idempotence violated at index %d", i)
	}
}

func TestSelectBundlesEmptyBundleRejected(t *testing.T) {
	assert := newAsserter(t)
	cfg := NewConfig()

	_, err := selectBundles(cfg, []BundleRecord{{SeedIndex: 1, Start: 0, Length: 0}}, 4)
	assert(err == ErrEmptyBundle, "expected ErrEmptyBundle, got %v", err)
}

func TestSelectBundlesSuperpositionLimitExceeded(t *testing.T) {
	assert := newAsserter(t)
	cfg := NewConfig()
	cfg.MaxSuperposedPerPosition = 1

	owner := BundleRecord{SeedIndex: 1, Start: 0, Length: 4, OriginalBits: 40, EncodedBits: 10}
	records := []BundleRecord{
		owner,
		{SeedIndex: 2, Start: 0, Length: 1, OriginalBits: 10, EncodedBits: 4}, // superposed #1 at position 0, fits the limit
		{SeedIndex: 3, Start: 0, Length: 1, OriginalBits: 10, EncodedBits: 4}, // superposed #2 at position 0, exceeds it
	}
	_, err := selectBundles(cfg, records, 4)
	assert(err != nil, "expected a superposition-limit error")
	assert(KindOf(err) == SuperpositionLimitExceeded, "expected SuperpositionLimitExceeded, got %v", KindOf(err))
}
