// pass.go -- the multi-pass driver: repeated candidate discovery plus
// one bundler layer until a pass yields no gain or the pass limit is
// reached.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

// spanKind distinguishes the three shapes a final, assembled span can
// take.
type spanKind int

const (
	spanLiteral spanKind = iota
	spanLiteralLast
	spanMatch
)

// finalSpan is one entry in the linear, position-ordered list the
// assembler consumes.
type finalSpan struct {
	start     int
	length    int // blocks covered (always 1 for literal spans)
	kind      spanKind
	seedIndex uint64
	bitLength int // arity-code + EVQL bits only, payload bytes excluded
}

// passResult is one pass's output: the spans it assembled and the bit
// count they occupy (arity/EVQL bits plus literal payload bits).
// superposed is informational only: it records which of this pass's raw
// bundle records the ownership-based selector would additionally accept
// as superposed, alongside whichever bundler layer actually won the
// primary covering. It never affects totalBits or the assembled stream.
type passResult struct {
	spans      []finalSpan
	totalBits  int
	superposed []acceptedBundle
}

// compressMultiPass computes per-position candidates plus multi-block
// bundle candidates, merges one bundler layer, and repeats until a
// pass's total bit length stops improving or MaxPasses is reached.
// Bundles accepted by a winning pass feed the next pass as
// already-bundled candidates, so later layers can subsume them with a
// strictly larger merge. It returns the final span list, the per-pass
// gain history (bits saved versus the previous pass; the first pass's
// gain is measured against an all-literal encoding), and the superposed
// bundles the winning pass's selector accepted.
func compressMultiPass(cfg *Config, cache *digestCache, blocks []Block, matcher BatchSeedMatcher) ([]finalSpan, []int, []acceptedBundle, error) {
	codec := newArityCodec(cfg)

	if len(blocks) == 0 {
		return nil, nil, nil, nil
	}

	literalSpans, literalBits, err := allLiteralSpans(cfg, codec, blocks)
	if err != nil {
		return nil, nil, nil, err
	}

	prevBits := literalBits
	bestSpans := literalSpans
	var bestSuperposed []acceptedBundle
	var prevBundles []BundleRecord
	var gains []int

	for pass := 0; pass < cfg.MaxPasses; pass++ {
		result, err := runOnePass(cfg, cache, codec, blocks, matcher, prevBundles)
		if err != nil {
			return nil, nil, nil, err
		}
		gain := prevBits - result.totalBits
		if gain <= 0 {
			break
		}
		gains = append(gains, gain)
		prevBits = result.totalBits
		bestSpans = result.spans
		bestSuperposed = result.superposed
		prevBundles = bundlesFromSpans(result.spans)
	}

	return bestSpans, gains, bestSuperposed, nil
}

// bundlesFromSpans extracts a pass's multi-block matched spans so the
// next pass can treat them as already-bundled candidates.
func bundlesFromSpans(spans []finalSpan) []BundleRecord {
	var out []BundleRecord
	for _, s := range spans {
		if s.kind == spanMatch && s.length > 1 {
			out = append(out, BundleRecord{
				SeedIndex:    s.seedIndex,
				Start:        s.start,
				Length:       s.length,
				OriginalBits: s.bitLength,
				EncodedBits:  s.bitLength,
			})
		}
	}
	return out
}

// allLiteralSpans builds the trivial all-literal encoding, used both as
// the pass-0 baseline and as the fallback whenever no better covering is
// found.
func allLiteralSpans(cfg *Config, codec *arityCodec, blocks []Block) ([]finalSpan, int, error) {
	spans := make([]finalSpan, 0, len(blocks))
	total := 0
	for i, b := range blocks {
		span, bits, err := literalSpanFor(cfg, codec, i, len(b.Payload), i == len(blocks)-1)
		if err != nil {
			return nil, 0, err
		}
		spans = append(spans, span)
		total += bits + len(b.Payload)*8
	}
	return spans, total, nil
}

// literalSpanFor builds the literal span for the block at pos. The final
// block position in a non-empty stream always uses the literal-last
// marker: it is the stream's sole termination signal (the disassembler
// has no other way to know where the span list ends), so the multi-pass
// driver never lets a match or bundle claim the last position, and the
// baseline all-literal encoding marks it the same way.
func literalSpanFor(cfg *Config, codec *arityCodec, pos, payloadLen int, isLast bool) (finalSpan, int, error) {
	w := newBitWriter()
	kind := spanLiteral
	if isLast {
		kind = spanLiteralLast
		codec.writeArityLiteralLast(w)
	} else {
		codec.writeArityLiteral(w)
	}
	return finalSpan{start: pos, length: 1, kind: kind, bitLength: w.bitLen()}, w.bitLen(), nil
}

// runOnePass computes fresh per-position candidate lists plus
// matcher-discovered bundle candidates, merges one bundler layer over
// them, and selects the non-overlapping result for this pass. prev
// carries the bundles the previous pass accepted; they re-enter as
// bundled candidates at their start positions, where they dominate
// literal and matched alternatives.
func runOnePass(cfg *Config, cache *digestCache, codec *arityCodec, blocks []Block, matcher BatchSeedMatcher, prev []BundleRecord) (passResult, error) {
	n := len(blocks)
	perPosition := make([]candidateList, n)

	// identical blocks share one seed search; the block's cached digest
	// is the memoization key.
	type matchResult struct {
		idx uint64
		ok  bool
	}
	searched := make(map[digest32]matchResult)

	for i, b := range blocks {
		_, litBits, err := literalSpanFor(cfg, codec, i, len(b.Payload), i == n-1)
		if err != nil {
			return passResult{}, err
		}
		perPosition[i].insert(candidate{bitLength: litBits + len(b.Payload)*8, origin: originLiteral})

		if i == n-1 {
			// the final position is always emitted literal-last; it is
			// never offered a matched candidate so it can never be
			// absorbed into a bundle (see literalSpanFor).
			continue
		}

		res, seen := searched[b.Digest]
		if !seen {
			idx, err := findSeedMatch(cache, b.Payload, cfg.MaxSeedLen)
			res = matchResult{idx: idx, ok: err == nil}
			searched[b.Digest] = res
		}
		if res.ok {
			w := newBitWriter()
			if err := codec.writeArityMatch(w, 1); err == nil {
				writeEVQL(w, res.idx)
				perPosition[i].insert(candidate{seedIndex: res.idx, arity: 1, bitLength: w.bitLen(), origin: originMatched})
			}
		}
	}

	// bundles accepted last pass compete as units this pass; a strictly
	// larger merge can still subsume them below.
	for _, rec := range prev {
		if rec.Start < 0 || rec.end() > n-1 {
			continue
		}
		perPosition[rec.Start].insert(candidate{
			seedIndex: rec.SeedIndex,
			arity:     rec.Length,
			bitLength: rec.EncodedBits,
			origin:    originBundled,
		})
	}

	var merges []mergeCandidate
	var rawRecords []BundleRecord
	if matcher != nil {
		matcher.LoadTile(blocks)
		records, err := matcher.Match(0, seedSpaceSize(cfg.MaxSeedLen))
		if err != nil {
			return passResult{}, err
		}
		rawRecords = records
		for k, rec := range records {
			replaced := 0
			for p := rec.Start; p < rec.end() && p < n; p++ {
				best, ok := perPosition[p].best()
				if !ok {
					replaced = -1
					break
				}
				replaced += best.bitLength
			}
			if replaced < 0 {
				continue
			}
			records[k].OriginalBits = replaced
			if n > 0 && rec.end() > n-1 {
				continue // never bundle the forced literal-last position
			}
			merges = append(merges, mergeCandidate{
				start:       rec.Start,
				length:      rec.Length,
				bitLength:   rec.EncodedBits,
				replacedSum: replaced,
				bundle:      records[k],
			})
		}
	}

	chosen := bundleOneLayer(merges, n)

	used := newBitVector(uint64(n))
	var spans []finalSpan
	total := 0
	for _, rec := range chosen {
		used.SetRange(rec.Start, rec.end())
		spans = append(spans, finalSpan{
			start:     rec.Start,
			length:    rec.Length,
			kind:      spanMatch,
			seedIndex: rec.SeedIndex,
			bitLength: rec.EncodedBits,
		})
		total += rec.EncodedBits
	}

	for i := 0; i < n; i++ {
		if used.IsSet(uint64(i)) {
			continue
		}
		perPosition[i].prune()
		best, ok := perPosition[i].best()
		if !ok {
			return passResult{}, errf(Internal, "no candidate survived pruning at position %d", i)
		}
		if best.origin == originBundled && best.arity > 1 && !used.AnySet(i, i+best.arity) {
			// re-emit a carried-forward bundle that no larger merge
			// claimed this pass
			used.SetRange(i, i+best.arity)
			spans = append(spans, finalSpan{
				start:     i,
				length:    best.arity,
				kind:      spanMatch,
				seedIndex: best.seedIndex,
				bitLength: best.bitLength,
			})
			total += best.bitLength
			continue
		}
		if best.origin == originMatched {
			spans = append(spans, finalSpan{
				start:     i,
				length:    1,
				kind:      spanMatch,
				seedIndex: best.seedIndex,
				bitLength: best.bitLength,
			})
			total += best.bitLength
		} else {
			lit, bits, err := literalSpanFor(cfg, codec, i, len(blocks[i].Payload), i == n-1)
			if err != nil {
				return passResult{}, err
			}
			spans = append(spans, lit)
			total += bits + len(blocks[i].Payload)*8
		}
	}

	sortSpansByStart(spans)

	var superposed []acceptedBundle
	if len(rawRecords) > 0 {
		sortRecordsByPreference(rawRecords)
		accepted, err := selectBundles(cfg, rawRecords, n)
		if err != nil {
			return passResult{}, err
		}
		for _, a := range accepted {
			if a.superposed {
				superposed = append(superposed, a)
			}
		}
	}

	return passResult{spans: spans, totalBits: total, superposed: superposed}, nil
}

// sortRecordsByPreference orders bundle records longer-span-first, ties
// broken by smaller encoded bit length, the preference order
// selectBundles expects its input in.
func sortRecordsByPreference(records []BundleRecord) {
	for i := 1; i < len(records); i++ {
		for j := i; j > 0 && recordLess(records[j], records[j-1]); j-- {
			records[j], records[j-1] = records[j-1], records[j]
		}
	}
}

func recordLess(a, b BundleRecord) bool {
	if a.Length != b.Length {
		return a.Length > b.Length
	}
	return a.EncodedBits < b.EncodedBits
}

func sortSpansByStart(spans []finalSpan) {
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].start < spans[j-1].start; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}
}
