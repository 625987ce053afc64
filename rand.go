// rand.go -- random byte generation for collision-free temp-file names.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

import (
	"crypto/rand"
	"io"
)

func randbytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, errf(Internal, "read crypto/rand: %v", err)
	}
	return b, nil
}
