// errors.go -- error taxonomy for the telomere codec
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package telomere

import (
	"errors"
	"fmt"
)

// Kind classifies a CodecError into the taxonomy the decoder and encoder
// use. Callers that need to branch on failure category should switch on
// Kind rather than string-match the error text.
type Kind int

const (
	// Internal is the catch-all for invariant violations that should
	// never happen given a correct encoder.
	Internal Kind = iota

	// HeaderInvalid covers malformed file headers, EVQL prefixes that
	// never terminate, reserved arity patterns, and short input.
	HeaderInvalid

	// SeedOutOfRange covers a seed index outside the configured
	// max-seed-length space, or a configured max seed length outside
	// 1..4.
	SeedOutOfRange

	// BundleInvariant covers a bundle that breaks a structural rule: a
	// record outside the block range, or an arity the arity code cannot
	// encode (2, or past the configured ceiling). An overlap that is
	// neither a subset nor disjoint is not an error: the selector drops
	// that record.
	BundleInvariant

	// SuperpositionLimitExceeded covers a block position that
	// accumulated more superposed candidates than configured.
	SuperpositionLimitExceeded

	// LimitExceeded covers decompress_with_limit asking for more output
	// than the caller's budget.
	LimitExceeded

	// HashMismatch covers the final low13(SHA-256(plaintext)) check
	// disagreeing with the file header.
	HashMismatch
)

func (k Kind) String() string {
	switch k {
	case HeaderInvalid:
		return "header invalid"
	case SeedOutOfRange:
		return "seed out of range"
	case BundleInvariant:
		return "bundle invariant violated"
	case SuperpositionLimitExceeded:
		return "superposition limit exceeded"
	case LimitExceeded:
		return "limit exceeded"
	case HashMismatch:
		return "hash mismatch"
	default:
		return "internal error"
	}
}

// CodecError is the error type returned by every fallible operation in
// this package. It carries a Kind so callers can branch on failure
// category without string-matching.
type CodecError struct {
	Kind Kind
	Msg  string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("telomere: %s: %s", e.Kind, e.Msg)
}

func errf(k Kind, format string, v ...interface{}) error {
	return &CodecError{Kind: k, Msg: fmt.Sprintf(format, v...)}
}

// KindOf returns the Kind of err if it is a *CodecError, and Internal
// otherwise.
func KindOf(err error) Kind {
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return Internal
}

var (
	// ErrEmptyBundle is returned when a bundle record names no block
	// indices.
	ErrEmptyBundle = errors.New("telomere: bundle record has no blocks")

	// ErrNoMatch is returned by find-seed style helpers when no seed
	// reproduces the requested span within the configured search space.
	ErrNoMatch = errors.New("telomere: no seed match found")
)

func errShortWrite(exp, saw int) error {
	return fmt.Errorf("telomere: incomplete write; exp %d, saw %d", exp, saw)
}
