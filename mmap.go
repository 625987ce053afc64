// mmap.go -- zero-copy mapping of plaintext input files. The codec
// never mutates its input, so large files are mapped read-only rather
// than copied into a heap buffer.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

import (
	"fmt"
	"os"
	"syscall"
)

// mappedFile is a read-only view of a file's contents, backed by
// syscall.Mmap. Callers must call Close when done to release the
// mapping.
type mappedFile struct {
	data []byte
}

// openMapped mmaps path read-only. An empty file yields an empty
// mappedFile rather than failing: syscall.Mmap rejects zero-length
// mappings, so that case is handled without a syscall.
func openMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("telomere: open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("telomere: stat %s: %w", path, err)
	}
	if st.Size() == 0 {
		return &mappedFile{}, nil
	}

	bs, err := syscall.Mmap(int(f.Fd()), 0, int(st.Size()), syscall.PROT_READ, syscall.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("telomere: mmap %s: %w", path, err)
	}
	return &mappedFile{data: bs}, nil
}

// Bytes returns the mapped file's contents. The returned slice is valid
// only until Close is called.
func (m *mappedFile) Bytes() []byte {
	return m.data
}

// Close unmaps the file, if it was mapped.
func (m *mappedFile) Close() error {
	if m.data == nil {
		return nil
	}
	return syscall.Munmap(m.data)
}
