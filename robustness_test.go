// robustness_test.go -- single-bit-flip decode robustness: the vast
// majority of single-bit flips in a valid encoded stream must surface
// as a decode error, and none may produce silent wrong output.

package telomere

import "testing"

func TestDecodeDetectsMostSingleBitFlips(t *testing.T) {
	assert := newAsserter(t)

	cfg := NewConfig()
	cfg.BlockSize = 3
	cache := newDigestCache(cfg.CacheBudgetBytes)
	data := append(expand(cache, []byte{0x02}, 9), 0x11, 0x22, 0x33)

	result, err := Compress(cfg, data, nil)
	assert(err == nil, "unexpected compress error: %v", err)
	assert(len(result.Data) >= 1, "expected non-empty compressed output")

	total := len(result.Data) * 8
	detected := 0
	for bit := 0; bit < total; bit++ {
		corrupt := append([]byte(nil), result.Data...)
		corrupt[bit/8] ^= 1 << uint(7-bit%8)

		out, err := Decompress(cfg, corrupt)
		if err != nil {
			detected++
			continue
		}
		// a flip that decodes without error must at least not have
		// changed the output: silent wrong output is never acceptable.
		assert(string(out) == string(data), "bit %d: decode succeeded with wrong output", bit)
	}

	rate := float64(detected) / float64(total)
	assert(rate >= 0.90, "expected >= 90%% single-bit-flip decode errors, got %.2f%% (%d/%d)", rate*100, detected, total)
}
