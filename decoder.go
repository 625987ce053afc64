// decoder.go -- the stream disassembler and the top-level Decompress
// API: parse the file header, walk the span stream, and verify the
// truncated plaintext hash at the end.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

import "math"

// Decompress reverses Compress with no output-size limit.
func Decompress(cfg *Config, compressed []byte) ([]byte, error) {
	return DecompressWithLimit(cfg, compressed, math.MaxInt)
}

// DecompressWithLimit reverses Compress, refusing to materialize more
// than limit bytes of plaintext.
func DecompressWithLimit(cfg *Config, compressed []byte, limit int) ([]byte, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	hdr, err := unmarshalFileHeader(compressed)
	if err != nil {
		return nil, err
	}
	if hdr.lastBlockSize > hdr.blockSize {
		return nil, errf(HeaderInvalid, "last block size %d exceeds block size %d", hdr.lastBlockSize, hdr.blockSize)
	}
	body := compressed[fileHeaderBytes:]

	codec := newArityCodec(cfg)
	r := newBitReader(body)
	cache := newDigestCache(cfg.CacheBudgetBytes)

	var out []byte
	for r.bitsRemaining() > 0 {
		code, err := codec.readArityCode(r)
		if err != nil {
			return nil, err
		}

		switch code.kind {
		case arityLiteralLast:
			n := hdr.lastBlockSize
			payload, err := readLiteralBits(r, n)
			if err != nil {
				return nil, err
			}
			if len(out)+len(payload) > limit {
				return nil, errf(LimitExceeded, "decompressed output exceeds limit %d", limit)
			}
			out = append(out, payload...)
			return finalizeDecode(out, hdr, cfg)

		case arityLiteral:
			payload, err := readLiteralBits(r, hdr.blockSize)
			if err != nil {
				return nil, err
			}
			if len(out)+len(payload) > limit {
				return nil, errf(LimitExceeded, "decompressed output exceeds limit %d", limit)
			}
			out = append(out, payload...)

		case arityMatch:
			idx, err := readEVQL(r)
			if err != nil {
				return nil, err
			}
			n := code.value * hdr.blockSize
			if len(out)+n > limit {
				return nil, errf(LimitExceeded, "decompressed output exceeds limit %d", limit)
			}
			expanded, err := expandSeedIndex(cfg, cache, idx, n)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)

		default:
			return nil, errf(HeaderInvalid, "unsupported arity code kind")
		}
	}

	// An input with zero blocks leaves no spans at all: the stream ends
	// right after the header with no literal-last terminator. Any other
	// input reaching end-of-stream without one is truncated.
	if len(out) != 0 {
		return nil, errf(HeaderInvalid, "stream ended without a literal-last terminator")
	}
	return finalizeDecode(out, hdr, cfg)
}

func finalizeDecode(out []byte, hdr *fileHeader, cfg *Config) ([]byte, error) {
	got := low13(hashBytes(out), cfg.HashBits)
	if got != hdr.hash13 {
		return nil, errf(HashMismatch, "output hash13 %#x != header hash13 %#x", got, hdr.hash13)
	}
	return out, nil
}

// expandSeedIndex returns the first n bytes of seed idx's expansion,
// consulting cfg.SeedExpansions first so callers can pre-compute long
// nested expansions. An absent entry, or one shorter than n, falls back
// to expand().
func expandSeedIndex(cfg *Config, cache *digestCache, idx uint64, n int) ([]byte, error) {
	if pre, ok := cfg.SeedExpansions[idx]; ok && len(pre) >= n {
		return pre[:n], nil
	}
	seed, err := indexToSeed(idx, cfg.MaxSeedLen)
	if err != nil {
		return nil, err
	}
	return expand(cache, seed, n), nil
}

// readLiteralBits reads n whole bytes packed as 8-bit fields, the
// counterpart to writeLiteralPayload in encoder.go.
func readLiteralBits(r *bitReader, n int) ([]byte, error) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := r.readBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}
