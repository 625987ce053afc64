// candidate.go -- per-block-position candidate tracking and pruning.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

import "sort"

// origin records how a candidate was produced.
type origin int

const (
	originLiteral origin = iota
	originMatched
	originBundled
)

// candidate is one way to encode a span starting at a block position.
type candidate struct {
	seedIndex uint64
	arity     int
	bitLength int
	origin    origin
}

// maxNearBest is the number of near-best candidates kept alongside the
// best one.
const maxNearBest = 4

// pruneWindowBits is the slack allowed above the best candidate's bit
// length before a candidate is discarded.
const pruneWindowBits = 8

// candidateList holds the tracked candidates for one block position.
type candidateList struct {
	items []candidate
}

// insert adds c to the list and restores the sort order.
func (cl *candidateList) insert(c candidate) {
	cl.items = append(cl.items, c)
	cl.resort()
}

// resort orders items by bit length ascending, ties broken by seed
// index ascending.
func (cl *candidateList) resort() {
	sort.Stable(byBitLengthThenSeed(cl.items))
}

type byBitLengthThenSeed []candidate

func (b byBitLengthThenSeed) Len() int      { return len(b) }
func (b byBitLengthThenSeed) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b byBitLengthThenSeed) Less(i, j int) bool {
	if b[i].bitLength != b[j].bitLength {
		return b[i].bitLength < b[j].bitLength
	}
	return b[i].seedIndex < b[j].seedIndex
}

// prune restores the candidate-list invariants:
//
//   - resort by bit length then seed index
//   - if any member has origin == bundled, drop every non-bundled member
//     (bundling dominates)
//   - discard members whose bit length exceeds the best's by more than
//     pruneWindowBits
//   - truncate the non-best tail to at most maxNearBest entries
//
// Given the same input set, prune is deterministic: the same multiset of
// candidates always yields the same resulting slice.
func (cl *candidateList) prune() {
	if len(cl.items) == 0 {
		return
	}
	cl.resort()

	hasBundled := false
	for _, c := range cl.items {
		if c.origin == originBundled {
			hasBundled = true
			break
		}
	}
	if hasBundled {
		filtered := cl.items[:0:0]
		for _, c := range cl.items {
			if c.origin == originBundled {
				filtered = append(filtered, c)
			}
		}
		cl.items = filtered
		cl.resort()
	}

	best := cl.items[0]
	kept := cl.items[:1]
	for _, c := range cl.items[1:] {
		if c.bitLength > best.bitLength+pruneWindowBits {
			continue
		}
		if len(kept) >= 1+maxNearBest {
			break
		}
		kept = append(kept, c)
	}
	cl.items = kept
}

// best returns the lowest-bit_length candidate, or false if the list is
// empty.
func (cl *candidateList) best() (candidate, bool) {
	if len(cl.items) == 0 {
		return candidate{}, false
	}
	return cl.items[0], true
}
