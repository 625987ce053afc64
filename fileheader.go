// fileheader.go -- the 3-byte file header that precedes the span
// stream: version, block size, last block size, and the truncated
// plaintext hash, packed big-endian.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

const fileHeaderBytes = 3

// fileHeader is the first 3 bytes of a compressed stream.
type fileHeader struct {
	version       uint8  // 0..7
	blockSize     int    // 1..16
	lastBlockSize int    // 1..16
	hash13        uint16 // low HashBits bits of SHA-256(plaintext)
}

const currentVersion = 0

// marshal packs the header into exactly 3 bytes:
//
//	bits 0..2   version
//	bits 3..6   blockSize-1
//	bits 7..10  lastBlockSize-1
//	bits 11..23 hash13
func (h *fileHeader) marshal(hashBits int) ([]byte, error) {
	if h.version > 7 {
		return nil, errf(HeaderInvalid, "version %d out of range", h.version)
	}
	if h.blockSize < 1 || h.blockSize > 16 {
		return nil, errf(HeaderInvalid, "block size %d out of range", h.blockSize)
	}
	if h.lastBlockSize < 1 || h.lastBlockSize > 16 {
		return nil, errf(HeaderInvalid, "last block size %d out of range", h.lastBlockSize)
	}
	if hashBits != 13 {
		return nil, errf(HeaderInvalid, "file header hash field is fixed at 13 bits, got %d", hashBits)
	}

	w := newBitWriter()
	w.writeBits(uint64(h.version), 3)
	w.writeBits(uint64(h.blockSize-1), 4)
	w.writeBits(uint64(h.lastBlockSize-1), 4)
	w.writeBits(uint64(h.hash13), 13)
	out := w.bytes()
	if len(out) != fileHeaderBytes {
		return nil, errf(Internal, "file header packed to %d bytes, want %d", len(out), fileHeaderBytes)
	}
	return out, nil
}

// unmarshalFileHeader parses the 3-byte file header from the start of buf.
func unmarshalFileHeader(buf []byte) (*fileHeader, error) {
	if len(buf) < fileHeaderBytes {
		return nil, errf(HeaderInvalid, "short input: need %d header bytes, have %d", fileHeaderBytes, len(buf))
	}
	r := newBitReader(buf[:fileHeaderBytes])
	version, err := r.readBits(3)
	if err != nil {
		return nil, err
	}
	bs, err := r.readBits(4)
	if err != nil {
		return nil, err
	}
	lbs, err := r.readBits(4)
	if err != nil {
		return nil, err
	}
	hash13, err := r.readBits(13)
	if err != nil {
		return nil, err
	}
	if version != currentVersion {
		return nil, errf(HeaderInvalid, "unsupported version %d", version)
	}
	return &fileHeader{
		version:       uint8(version),
		blockSize:     int(bs) + 1,
		lastBlockSize: int(lbs) + 1,
		hash13:        uint16(hash13),
	}, nil
}
