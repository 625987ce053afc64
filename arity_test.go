package telomere

import "testing"

func TestArityMatchRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	cfg := NewConfig()
	codec := newArityCodec(cfg)

	for _, arity := range []int{1, 3, 4, 5, 6, 7, 8, 9, 20, 63} {
		w := newBitWriter()
		err := codec.writeArityMatch(w, arity)
		assert(err == nil, "arity=%d: unexpected encode error: %v", arity, err)

		r := newBitReader(w.bytes())
		code, err := codec.readArityCode(r)
		assert(err == nil, "arity=%d: unexpected decode error: %v", arity, err)
		assert(code.kind == arityMatch, "arity=%d: expected arityMatch, got kind %d", arity, code.kind)
		assert(code.value == arity, "arity=%d: roundtrip got %d", arity, code.value)
	}
}

func TestArityTwoIsRejected(t *testing.T) {
	assert := newAsserter(t)

	cfg := NewConfig()
	codec := newArityCodec(cfg)
	w := newBitWriter()
	err := codec.writeArityMatch(w, 2)
	assert(err != nil, "expected arity 2 to be refused")
}

func TestArityLiteralAndLiteralLast(t *testing.T) {
	assert := newAsserter(t)

	cfg := NewConfig()
	codec := newArityCodec(cfg)

	w := newBitWriter()
	codec.writeArityLiteral(w)
	r := newBitReader(w.bytes())
	code, err := codec.readArityCode(r)
	assert(err == nil, "unexpected error: %v", err)
	assert(code.kind == arityLiteral, "expected arityLiteral, got %d", code.kind)

	w2 := newBitWriter()
	codec.writeArityLiteralLast(w2)
	r2 := newBitReader(w2.bytes())
	code2, err := codec.readArityCode(r2)
	assert(err == nil, "unexpected error: %v", err)
	assert(code2.kind == arityLiteralLast, "expected arityLiteralLast, got %d", code2.kind)
}

func TestArityReservedSlotRejected(t *testing.T) {
	assert := newAsserter(t)

	cfg := NewConfig()
	codec := newArityCodec(cfg)

	// level-2 window has 4 slots but only the first 2 (arities 3,4) are
	// valid; force the reserved slot 3 (0b11) and expect a decode error.
	w := newBitWriter()
	w.writeUnary(2)
	w.writeBits(3, 2)
	r := newBitReader(w.bytes())
	_, err := codec.readArityCode(r)
	assert(err != nil, "expected reserved arity slot to be rejected")
}
