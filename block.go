// block.go -- fixed-size (except possibly the last) chunking of
// plaintext into blocks.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

// Block is one chunk of plaintext at a fixed ordinal position. The
// digest is cached at split time so identical blocks can be recognized
// without re-hashing.
type Block struct {
	Pos     int
	Payload []byte
	Digest  [32]byte
}

// splitIntoBlocks divides data into blocks of blockSize bytes, with the
// final block possibly shorter. An empty input yields zero blocks.
func splitIntoBlocks(data []byte, blockSize int) []Block {
	if len(data) == 0 {
		return nil
	}
	n := (len(data) + blockSize - 1) / blockSize
	blocks := make([]Block, 0, n)
	for i := 0; i < n; i++ {
		start := i * blockSize
		end := start + blockSize
		if end > len(data) {
			end = len(data)
		}
		payload := data[start:end]
		blocks = append(blocks, Block{
			Pos:     i,
			Payload: payload,
			Digest:  hashBytes(payload),
		})
	}
	return blocks
}

// lastBlockSize reports the byte length of the final block in blocks, or
// blockSize if there are no blocks (an empty stream still needs a valid
// lastBlockSize value for the file header).
func lastBlockSize(blocks []Block, blockSize int) int {
	if len(blocks) == 0 {
		return blockSize
	}
	return len(blocks[len(blocks)-1].Payload)
}
