// bundle.go -- bundle selection.
//
// Ownership over block positions is tracked with a plain owner-index
// slice (one int per position, -1 == unowned): block positions are
// contiguous small integers, so a flat slice indexes them directly. The
// selector needs owner identity, not just presence, which is why it
// does not reuse bitVector the way bundler.go does.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

// BundleRecord is a candidate multi-block span proposed by the matching
// engine, covering a contiguous run of block positions.
type BundleRecord struct {
	SeedIndex    uint64
	Start        int // first covered block position
	Length       int // number of contiguous block positions covered
	OriginalBits int // bit length of the spans this would replace
	EncodedBits  int // bit length of the bundle's own encoding
}

func (r BundleRecord) end() int { return r.Start + r.Length }

// acceptedBundle is the selector's output: a BundleRecord plus whether it
// was accepted as a superposed (non position-claiming) secondary.
type acceptedBundle struct {
	BundleRecord
	superposed bool
}

// superpositionSlack is the maximum amount by which a superposed
// record's OriginalBits may exceed its owner's.
const superpositionSlack = 8

// selectBundles runs the ownership-based selection algorithm over
// records in the caller-supplied preference order (typically longer
// bundles first, ties broken by smaller encoded-bit-length). totalBlocks
// bounds the position space the owner-tracking slice must cover.
// cfg.MaxSuperposedPerPosition caps how many superposed acceptances any
// one block position may accumulate; a record that would push a covered
// position past that cap fails with SuperpositionLimitExceeded rather
// than being silently accepted.
//
// The rule set is idempotent: calling selectBundles again on the
// records that were accepted non-superposed reproduces the same
// acceptance decisions, since those records are pairwise disjoint and
// each again finds its positions unowned.
func selectBundles(cfg *Config, records []BundleRecord, totalBlocks int) ([]acceptedBundle, error) {
	if totalBlocks == 0 {
		return nil, nil
	}

	owner := make([]int, totalBlocks) // -1 == unowned
	for i := range owner {
		owner[i] = -1
	}
	superposedCount := make([]int, totalBlocks)
	accepted := make([]acceptedBundle, 0, len(records))

	for _, rec := range records {
		if rec.Length <= 0 {
			return nil, ErrEmptyBundle
		}
		if rec.Start < 0 || rec.end() > totalBlocks {
			return nil, errf(BundleInvariant, "bundle record [%d,%d) out of range for %d blocks", rec.Start, rec.end(), totalBlocks)
		}

		owners := map[int]bool{}
		for p := rec.Start; p < rec.end(); p++ {
			if owner[p] >= 0 {
				owners[owner[p]] = true
			}
		}

		switch len(owners) {
		case 0:
			idx := len(accepted)
			accepted = append(accepted, acceptedBundle{BundleRecord: rec, superposed: false})
			for p := rec.Start; p < rec.end(); p++ {
				owner[p] = idx
			}

		case 1:
			var ownerIdx int
			for k := range owners {
				ownerIdx = k
			}
			ownerRec := accepted[ownerIdx]
			if !isSubsetRange(rec.Start, rec.end(), ownerRec.Start, ownerRec.end()) {
				continue // reject: partial non-subset overlap
			}
			if rec.OriginalBits > ownerRec.OriginalBits+superpositionSlack {
				continue // reject: too large to superpose
			}
			for p := rec.Start; p < rec.end(); p++ {
				if superposedCount[p] >= cfg.MaxSuperposedPerPosition {
					return nil, errf(SuperpositionLimitExceeded, "block position %d already has %d superposed candidate(s), limit is %d", p, superposedCount[p], cfg.MaxSuperposedPerPosition)
				}
			}
			for p := rec.Start; p < rec.end(); p++ {
				superposedCount[p]++
			}
			accepted = append(accepted, acceptedBundle{BundleRecord: rec, superposed: true})

		default:
			continue // reject: ambiguous overlap
		}
	}

	return accepted, nil
}

// isSubsetRange reports whether [aStart,aEnd) is fully contained in
// [bStart,bEnd).
func isSubsetRange(aStart, aEnd, bStart, bEnd int) bool {
	return aStart >= bStart && aEnd <= bEnd
}
