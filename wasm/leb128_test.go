package wasm

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUint32RoundTrip(t *testing.T) {
	for _, n := range []uint32{0, 1, 63, 64, 127, 128, 300, 1 << 20, 1<<32 - 1} {
		encoded := encodeUint32(n)
		got, err := DecodeUint32(bufio.NewReader(bytes.NewReader(encoded)))
		require.NoError(t, err)
		assert.Equal(t, n, got, "round trip of %d", n)
	}
}

func TestDecodeUint32NonZeroExtraBits(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte{0x83, 0x10}))
	_, err := decodeUnsigned(r, 8)
	assert.ErrorIs(t, err, NonZeroExtraBits)
}

func TestDecodeUint32Unterminated(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80}))
	_, err := DecodeUint32(r)
	assert.True(t, err == Invalid || err == UnexpectedEOF, "got %v", err)
}

func TestDecodeInt32SignExtension(t *testing.T) {
	// -1 encodes as a single byte 0x7f (all value bits set, sign bit set).
	r := bufio.NewReader(bytes.NewReader([]byte{0x7f}))
	got, err := DecodeInt32(r)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), got)
}

// encodeUint32 is a minimal unsigned LEB128 encoder used only to build
// round-trip fixtures for the decoder above.
func encodeUint32(n uint32) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if n == 0 {
			break
		}
	}
	return out
}
