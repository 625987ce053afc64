// encoder.go -- the stream assembler and the top-level Compress API:
// file header first, then each selected span's arity code, seed index,
// and literal payload in block order.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

import (
	"fmt"
	"os"
	"path/filepath"
)

// SuperposedSpan reports one bundle the selector accepted as a
// superposed secondary: its positions lie within an accepted owner's
// (an identical range counts) and it is within the size slack. It does not contribute to the primary covering or the
// assembled stream. Informational only.
type SuperposedSpan struct {
	SeedIndex uint64
	Start     int // first covered block position
	Length    int // contiguous block positions covered
}

// CompressResult is the outcome of a Compress call: the compressed
// bytes, the convergence history the multi-pass driver recorded (one
// entry per pass that produced a strictly positive gain), and the
// superposed bundles the winning pass accepted.
type CompressResult struct {
	Data       []byte
	Gains      []int
	Superposed []SuperposedSpan
}

// Compress runs the full pipeline over data: block splitting, multi-pass
// candidate discovery and bundling, and final assembly into the on-disk
// format. cfg is validated first; a nil matcher falls back to the
// package's scalar reference implementation.
func Compress(cfg *Config, data []byte, matcher BatchSeedMatcher) (*CompressResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cache := newDigestCache(cfg.CacheBudgetBytes)
	if matcher == nil {
		matcher = newScalarMatcher(cfg, cache)
	}

	blocks := splitIntoBlocks(data, cfg.BlockSize)
	spans, gains, superposed, err := compressMultiPass(cfg, cache, blocks, matcher)
	if err != nil {
		return nil, err
	}

	out, err := assemble(cfg, data, blocks, spans)
	if err != nil {
		return nil, err
	}

	var sup []SuperposedSpan
	for _, a := range superposed {
		sup = append(sup, SuperposedSpan{SeedIndex: a.SeedIndex, Start: a.Start, Length: a.Length})
	}
	return &CompressResult{Data: out, Gains: gains, Superposed: sup}, nil
}

// assemble emits the file header followed by each span's arity code,
// EVQL seed index (for matches), and literal payload (for literals), in
// block order.
func assemble(cfg *Config, data []byte, blocks []Block, spans []finalSpan) ([]byte, error) {
	hdr := &fileHeader{
		version:       currentVersion,
		blockSize:     cfg.BlockSize,
		lastBlockSize: lastBlockSize(blocks, cfg.BlockSize),
		hash13:        low13(hashBytes(data), cfg.HashBits),
	}
	headerBytes, err := hdr.marshal(cfg.HashBits)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return headerBytes, nil
	}

	codec := newArityCodec(cfg)
	w := newBitWriter()
	for _, s := range spans {
		switch s.kind {
		case spanLiteral:
			codec.writeArityLiteral(w)
			writeLiteralPayload(w, blocks, s.start, s.start+1)
		case spanLiteralLast:
			codec.writeArityLiteralLast(w)
			writeLiteralPayload(w, blocks, s.start, s.start+1)
		case spanMatch:
			if err := codec.writeArityMatch(w, s.length); err != nil {
				return nil, err
			}
			writeEVQL(w, s.seedIndex)
		default:
			return nil, errf(Internal, "unknown span kind %d", s.kind)
		}
	}

	return append(headerBytes, w.bytes()...), nil
}

func writeLiteralPayload(w *bitWriter, blocks []Block, from, to int) {
	for i := from; i < to; i++ {
		for _, b := range blocks[i].Payload {
			w.writeBits(uint64(b), 8)
		}
	}
}

// CompressFile compresses the bytes at inPath and atomically replaces
// outPath with the result: it writes to a random-suffixed temporary file
// in outPath's directory, fsyncs it, then renames it into place, so a
// crash mid-write never leaves a partially-written outPath.
func CompressFile(cfg *Config, inPath, outPath string, matcher BatchSeedMatcher) (*CompressResult, error) {
	m, err := openMapped(inPath)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	result, err := Compress(cfg, m.Bytes(), matcher)
	if err != nil {
		return nil, err
	}
	if err := atomicWriteFile(outPath, result.Data); err != nil {
		return nil, err
	}
	return result, nil
}

// atomicWriteFile writes data to a temp file beside path and renames it
// into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	suffix, err := randHexSuffix(8)
	if err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", filepath.Base(path), suffix))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("telomere: create %s: %w", tmp, err)
	}
	defer os.Remove(tmp)

	if err := writeAll(f, data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("telomere: fsync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("telomere: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("telomere: rename %s -> %s: %w", tmp, path, err)
	}
	return nil
}

// writeAll writes the entirety of b to f, looping on short writes.
func writeAll(f *os.File, b []byte) error {
	for len(b) > 0 {
		n, err := f.Write(b)
		if err != nil {
			return fmt.Errorf("telomere: write %s: %w", f.Name(), err)
		}
		if n == 0 {
			return errShortWrite(len(b), n)
		}
		b = b[n:]
	}
	return nil
}

// randHexSuffix returns n random bytes hex-encoded, used to make
// temp-file names collision-free across concurrent writers to the same
// directory.
func randHexSuffix(n int) (string, error) {
	buf, err := randbytes(n)
	if err != nil {
		return "", err
	}
	const hex = "0123456789abcdef"
	out := make([]byte, 2*n)
	for i, b := range buf {
		out[2*i] = hex[b>>4]
		out[2*i+1] = hex[b&0xf]
	}
	return string(out), nil
}
