package telomere

import "testing"

func TestCandidateListPruneKeepsBestAndNearBest(t *testing.T) {
	assert := newAsserter(t)

	cl := &candidateList{}
	cl.insert(candidate{seedIndex: 5, bitLength: 10, origin: originMatched})
	cl.insert(candidate{seedIndex: 1, bitLength: 10, origin: originMatched}) // ties broken by seedIndex
	cl.insert(candidate{seedIndex: 2, bitLength: 40, origin: originMatched}) // 30 over best: pruned
	cl.insert(candidate{seedIndex: 3, bitLength: 18, origin: originMatched})
	cl.prune()

	assert(len(cl.items) == 3, "expected 3 surviving candidates, got %d", len(cl.items))
	best, ok := cl.best()
	assert(ok, "expected a best candidate")
	assert(best.bitLength == 10 && best.seedIndex == 1, "expected best to be (bits=10,seed=1), got %+v", best)
}

func TestCandidateListPruneTruncatesTail(t *testing.T) {
	assert := newAsserter(t)

	cl := &candidateList{}
	cl.insert(candidate{seedIndex: 0, bitLength: 10, origin: originMatched})
	for i := uint64(1); i <= 8; i++ {
		cl.insert(candidate{seedIndex: i, bitLength: 10 + int(i), origin: originMatched})
	}
	cl.prune()
	assert(len(cl.items) == 1+maxNearBest, "expected %d candidates after truncation, got %d", 1+maxNearBest, len(cl.items))
}

func TestCandidateListBundledDominates(t *testing.T) {
	assert := newAsserter(t)

	cl := &candidateList{}
	cl.insert(candidate{seedIndex: 1, bitLength: 5, origin: originLiteral})
	cl.insert(candidate{seedIndex: 2, bitLength: 9, origin: originMatched})
	cl.insert(candidate{seedIndex: 3, bitLength: 20, origin: originBundled})
	cl.prune()

	assert(len(cl.items) == 1, "expected bundling to wipe non-bundled candidates, got %d left", len(cl.items))
	assert(cl.items[0].origin == originBundled, "expected surviving candidate to be bundled")
}

func TestCandidateListPruneDeterministic(t *testing.T) {
	assert := newAsserter(t)

	build := func() *candidateList {
		cl := &candidateList{}
		cl.insert(candidate{seedIndex: 4, bitLength: 12, origin: originMatched})
		cl.insert(candidate{seedIndex: 1, bitLength: 8, origin: originMatched})
		cl.insert(candidate{seedIndex: 9, bitLength: 30, origin: originMatched})
		cl.prune()
		return cl
	}
	a, b := build(), build()
	assert(len(a.items) == len(b.items), "pruning is not deterministic: different lengths")
	for i := range a.items {
		assert(a.items[i] == b.items[i], "pruning is not deterministic at index %d", i)
	}
}
