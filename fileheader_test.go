package telomere

import "testing"

func TestFileHeaderRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	hdr := &fileHeader{version: 0, blockSize: 4, lastBlockSize: 2, hash13: 0x1abc}
	buf, err := hdr.marshal(13)
	assert(err == nil, "unexpected marshal error: %v", err)
	assert(len(buf) == fileHeaderBytes, "expected %d bytes, got %d", fileHeaderBytes, len(buf))

	got, err := unmarshalFileHeader(buf)
	assert(err == nil, "unexpected unmarshal error: %v", err)
	assert(got.version == hdr.version, "version mismatch")
	assert(got.blockSize == hdr.blockSize, "block size mismatch: got %d want %d", got.blockSize, hdr.blockSize)
	assert(got.lastBlockSize == hdr.lastBlockSize, "last block size mismatch: got %d want %d", got.lastBlockSize, hdr.lastBlockSize)
	assert(got.hash13 == hdr.hash13, "hash13 mismatch: got %#x want %#x", got.hash13, hdr.hash13)
}

func TestFileHeaderRejectsOutOfRangeFields(t *testing.T) {
	assert := newAsserter(t)

	_, err := (&fileHeader{blockSize: 17, lastBlockSize: 1}).marshal(13)
	assert(err != nil, "expected error for block size 17")

	_, err = (&fileHeader{blockSize: 1, lastBlockSize: 0}).marshal(13)
	assert(err != nil, "expected error for last block size 0")
}

func TestFileHeaderRejectsShortInput(t *testing.T) {
	assert := newAsserter(t)

	_, err := unmarshalFileHeader([]byte{0x00, 0x00})
	assert(err != nil, "expected error for short input")
	assert(KindOf(err) == HeaderInvalid, "expected HeaderInvalid, got %v", KindOf(err))
}
