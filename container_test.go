package huffpack

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testContainerAAABBC = []byte{
	'H', 'U', 'F', 0x01, // magic
	0x00,                // alphabet: bytes
	0x07,                // padding
	0x03,                // count
	65, 1, 0x0,          // 'A' = "0"
	66, 2, 0x3,          // 'B' = "11"
	67, 2, 0x2,          // 'C' = "10"
	0x02,                // payload length
	0x1f, 0x00,          // "000111110" + 7 padding bits
}

func TestEncode_Example(t *testing.T) {
	c, err := Encode(SymbolsFromBytes([]byte("AAABBC")), AlphabetBytes)
	require.NoError(t, err)

	assert.Equal(t, byte(7), c.Padding)
	assert.Equal(t, []byte{0x1f, 0x00}, c.Payload)

	raw, err := c.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, testContainerAAABBC, raw)

	var parsed Container
	require.NoError(t, parsed.UnmarshalBinary(raw))
	symbols, err := parsed.Decode()
	require.NoError(t, err)
	assert.Equal(t, SymbolsFromBytes([]byte("AAABBC")), symbols)
}

func TestEncode_InvalidInput(t *testing.T) {
	_, err := Encode(nil, AlphabetBytes)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Encode([]Symbol{'a', 300}, AlphabetBytes)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Encode([]Symbol{'a'}, Alphabet(9))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestContainer_UnmarshalBinary_Malformed(t *testing.T) {
	mutate := func(f func(raw []byte) []byte) []byte {
		raw := append([]byte(nil), testContainerAAABBC...)
		return f(raw)
	}

	testData := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"bad-magic", mutate(func(raw []byte) []byte { raw[0] = 'X'; return raw })},
		{"bad-alphabet", mutate(func(raw []byte) []byte { raw[4] = 9; return raw })},
		{"padding-out-of-range", mutate(func(raw []byte) []byte { raw[5] = 8; return raw })},
		{"zero-entries", []byte{'H', 'U', 'F', 0x01, 0, 0, 0, 0}},
		{"empty-code", mutate(func(raw []byte) []byte { raw[8] = 0; return raw })},
		{"stray-bits", mutate(func(raw []byte) []byte { raw[9] = 2; return raw })},
		{"prefix-related", mutate(func(raw []byte) []byte { raw[14] = 1; raw[15] = 1; return raw })},
		{"duplicate-symbol", mutate(func(raw []byte) []byte { raw[10] = 65; return raw })},
		{"truncated-header", testContainerAAABBC[:12]},
		{"truncated-payload", testContainerAAABBC[:len(testContainerAAABBC)-1]},
		{"trailing-bytes", mutate(func(raw []byte) []byte { return append(raw, 0) })},
		{"symbol-outside-alphabet", []byte{'H', 'U', 'F', 0x01, 0, 0, 1, 0xac, 0x02, 1, 0, 1, 0x00}},
		{"symbol-beyond-max", []byte{'H', 'U', 'F', 0x01, 1, 0, 1, 0x80, 0x80, 0x80, 0x80, 0x08, 1, 0, 1, 0x00}},
		{"padding-without-payload", []byte{'H', 'U', 'F', 0x01, 0, 3, 1, 'a', 1, 0, 0}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var c Container
			err := c.UnmarshalBinary(row.raw)
			assert.ErrorIs(t, err, ErrMalformedContainer)
		})
	}
}

func TestContainer_Runes(t *testing.T) {
	// Symbol 300 (U+012C) is fine as a code point.
	raw := []byte{'H', 'U', 'F', 0x01, 1, 0, 1, 0xac, 0x02, 1, 0, 1, 0x00}

	var c Container
	require.NoError(t, c.UnmarshalBinary(raw))
	assert.Equal(t, AlphabetRunes, c.Alphabet)

	out, err := c.DecodeRaw()
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("\u012c", 8), string(out))
}

func TestContainer_Decode_Truncated(t *testing.T) {
	table, err := NewCodeTable(map[Symbol]Code{
		'A': mustParseCode("0"),
		'B': mustParseCode("11"),
		'C': mustParseCode("10"),
	})
	require.NoError(t, err)

	// "0001111111": "000" "11" "11" "11", then a lone "1" that never
	// finishes a code.
	c := &Container{Alphabet: AlphabetBytes, Table: table, Padding: 6, Payload: []byte{0x1f, 0xc0}}
	_, err = c.Decode()
	assert.ErrorIs(t, err, ErrDecoding)

	// The same bits with one more bit of padding decode cleanly.
	c.Padding = 7
	out, err := c.DecodeRaw()
	require.NoError(t, err)
	assert.Equal(t, "AAABBB", string(out))
}

func TestContainer_Decode_KeepsPartialLastByte(t *testing.T) {
	// Dropping the whole last byte instead of exactly the padding bits
	// would lose the final 'C' here.
	c, err := Encode(SymbolsFromBytes([]byte("AAAAAABC")), AlphabetBytes)
	require.NoError(t, err)
	require.NotZero(t, c.Padding)

	symbols, err := c.Decode()
	require.NoError(t, err)
	assert.Equal(t, SymbolsFromBytes([]byte("AAAAAABC")), symbols)
}

func TestContainer_WriteToReadFrom(t *testing.T) {
	c, err := Encode(SymbolsFromBytes([]byte("mississippi river")), AlphabetBytes)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	var parsed Container
	m, err := parsed.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)

	out, err := parsed.DecodeRaw()
	require.NoError(t, err)
	assert.Equal(t, "mississippi river", string(out))
}

func TestContainer_MarshalBinary_Invalid(t *testing.T) {
	var c Container
	_, err := c.MarshalBinary()
	assert.ErrorIs(t, err, ErrMalformedContainer)
}
