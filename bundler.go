// bundler.go -- one-layer greedy bundle merge: replace runs of adjacent
// spans with a single bundled span when the bundle encodes strictly
// shorter than the spans it replaces.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

import "sort"

// mergeCandidate is a potential multi-block replacement discovered at
// block position start spanning length positions.
type mergeCandidate struct {
	start       int
	length      int
	bitLength   int // the multi-block candidate's own encoded bit length
	replacedSum int // sum of the individual candidates' bit lengths it would replace
	bundle      BundleRecord
}

type byDescSpanThenAscStart []mergeCandidate

func (m byDescSpanThenAscStart) Len() int      { return len(m) }
func (m byDescSpanThenAscStart) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m byDescSpanThenAscStart) Less(i, j int) bool {
	if m[i].length != m[j].length {
		return m[i].length > m[j].length // descending span
	}
	return m[i].start < m[j].start // ascending start
}

// bundleOneLayer applies one greedy merge layer: among the proposed
// merges, keep only those strictly shorter than the sum of individual
// spans they would replace, sort by descending span then ascending
// start, and accept non-overlapping ones in that order.
//
// Calling bundleOneLayer again on the output of a previous call with no
// further strictly-shorter merges available is a no-op: every remaining
// candidate fails the strictly-shorter filter.
func bundleOneLayer(merges []mergeCandidate, totalBlocks int) []BundleRecord {
	candidates := make([]mergeCandidate, 0, len(merges))
	for _, m := range merges {
		if m.bitLength < m.replacedSum {
			candidates = append(candidates, m)
		}
	}
	sort.Stable(byDescSpanThenAscStart(candidates))

	used := newBitVector(uint64(totalBlocks))
	var chosen []BundleRecord
	for _, m := range candidates {
		if used.AnySet(m.start, m.start+m.length) {
			continue
		}
		used.SetRange(m.start, m.start+m.length)
		chosen = append(chosen, m.bundle)
	}
	return chosen
}
