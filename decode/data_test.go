package decode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashokshau/qrdecode"
)

// testBitWriter assembles a byte stream MSB-first, mirroring bitReader's
// read order, for feeding DecodePayload directly in tests.
type testBitWriter struct {
	bits []bool
}

func (w *testBitWriter) put(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		w.bits = append(w.bits, (v>>uint(i))&1 == 1)
	}
}

func (w *testBitWriter) bytes() []byte {
	n := (len(w.bits) + 7) / 8
	out := make([]byte, n)
	for i, b := range w.bits {
		if b {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

func TestDecodePayloadByteMode(t *testing.T) {
	w := &testBitWriter{}
	w.put(modeByte, 4)
	w.put(5, 8) // version <= 9 -> 8-bit count field
	for _, c := range []byte("hello") {
		w.put(uint32(c), 8)
	}
	w.put(modeTerminator, 4)

	text, err := DecodePayload(w.bytes(), 1)
	require.NoError(t, err)
	require.Equal(t, "hello", text)
}

func TestDecodePayloadNumericMode(t *testing.T) {
	w := &testBitWriter{}
	w.put(modeNumeric, 4)
	w.put(4, 10) // version <= 9 -> 10-bit count field
	w.put(123, 10)
	w.put(4, 4)
	w.put(modeTerminator, 4)

	text, err := DecodePayload(w.bytes(), 1)
	require.NoError(t, err)
	require.Equal(t, "1234", text)
}

func TestDecodePayloadAlphanumericMode(t *testing.T) {
	w := &testBitWriter{}
	w.put(modeAlphanumeric, 4)
	w.put(3, 9) // version <= 9 -> 9-bit count field
	// "AB9" -> pairs ("AB"), remainder ("9")
	a := uint32(10) // 'A'
	b := uint32(11) // 'B'
	w.put(a*45+b, 11)
	nine := uint32(9) // '9'
	w.put(nine, 6)
	w.put(modeTerminator, 4)

	text, err := DecodePayload(w.bytes(), 1)
	require.NoError(t, err)
	require.Equal(t, "AB9", text)
}

func TestDecodePayloadUnknownModeFails(t *testing.T) {
	w := &testBitWriter{}
	w.put(0b0011, 4) // unused mode indicator
	w.put(0, 8)

	_, err := DecodePayload(w.bytes(), 1)
	require.Error(t, err)
	qrErr, ok := err.(*qrdecode.QRError)
	require.True(t, ok)
	require.Equal(t, qrdecode.ErrMalformedPayload, qrErr.Kind)
}

func TestDecodePayloadUnsupportedECIFails(t *testing.T) {
	w := &testBitWriter{}
	w.put(modeECI, 4)
	w.put(0, 1) // 8-bit designator prefix
	w.put(9, 7) // ISO-8859-1 explicit, not UTF-8 (26) and not default (0)
	w.put(modeByte, 4)
	w.put(1, 8)
	w.put('x', 8)
	w.put(modeTerminator, 4)

	_, err := DecodePayload(w.bytes(), 1)
	require.Error(t, err)
	qrErr, ok := err.(*qrdecode.QRError)
	require.True(t, ok)
	require.Equal(t, qrdecode.ErrUnsupportedECI, qrErr.Kind)
}

func TestDecodePayloadUTF8ECIPassthrough(t *testing.T) {
	w := &testBitWriter{}
	w.put(modeECI, 4)
	w.put(0, 1)
	w.put(eciUTF8, 7)
	w.put(modeByte, 4)
	msg := []byte("héllo") // UTF-8 multi-byte content
	w.put(uint32(len(msg)), 8)
	for _, b := range msg {
		w.put(uint32(b), 8)
	}
	w.put(modeTerminator, 4)

	text, err := DecodePayload(w.bytes(), 1)
	require.NoError(t, err)
	require.Equal(t, "héllo", text)
}

func TestDecodePayloadNonZeroPaddingFails(t *testing.T) {
	// No terminator segment at all: after a two-digit numeric segment only
	// 3 bits remain, which must be zero padding, not this stray 1 bit.
	w := &testBitWriter{}
	w.put(modeNumeric, 4)
	w.put(2, 10)
	w.put(12, 7)
	w.put(1, 1)

	_, err := DecodePayload(w.bytes(), 1)
	require.Error(t, err)
}

func TestDecodePayloadTerminatorIgnoresTrailingPadCodewords(t *testing.T) {
	// A real symbol's data bitstream keeps going past the terminator with
	// 0xEC/0x11 pad codewords up to the block's data capacity; those must
	// not be validated as trailing padding bits.
	w := &testBitWriter{}
	w.put(modeByte, 4)
	w.put(2, 8)
	w.put('h', 8)
	w.put('i', 8)
	w.put(modeTerminator, 4)
	w.put(0xEC, 8)
	w.put(0x11, 8)

	text, err := DecodePayload(w.bytes(), 1)
	require.NoError(t, err)
	require.Equal(t, "hi", text)
}

func TestDecodePayloadEmptyStreamIsEmptyString(t *testing.T) {
	text, err := DecodePayload(nil, 1)
	require.NoError(t, err)
	require.Equal(t, "", text)
}
