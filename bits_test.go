package huffpack

import (
	"bytes"
	"testing"
)

func TestPack(t *testing.T) {
	ct, err := NewCodeTable(map[Symbol]Code{
		'A': mustParseCode("0"),
		'B': mustParseCode("11"),
		'C': mustParseCode("10"),
	})
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}

	type testRow struct {
		input   string
		bytes   []byte
		padding byte
	}

	testData := [...]testRow{
		{input: "", bytes: []byte{}, padding: 0},
		{input: "A", bytes: []byte{0x00}, padding: 7},
		{input: "AAABBC", bytes: []byte{0x1f, 0x00}, padding: 7},
		{input: "BBBB", bytes: []byte{0xff}, padding: 0},
		{input: "BCBCBCBC", bytes: []byte{0xee, 0xee}, padding: 0},
		{input: "CB", bytes: []byte{0xb0}, padding: 4},
	}
	for _, row := range testData {
		t.Run(row.input, func(t *testing.T) {
			payload, err := Pack(SymbolsFromBytes([]byte(row.input)), ct)
			if err != nil {
				t.Fatalf("Pack failed: %v", err)
			}
			if !bytes.Equal(row.bytes, payload.Bytes) {
				t.Errorf("wrong bytes:\n\texpect: %#v\n\tactual: %#v", row.bytes, payload.Bytes)
			}
			if row.padding != payload.Padding {
				t.Errorf("wrong padding: expect %d, got %d", row.padding, payload.Padding)
			}
		})
	}
}

func TestPack_Padding(t *testing.T) {
	ct, err := NewCodeTable(map[Symbol]Code{'a': mustParseCode("0")})
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}

	for n := 1; n <= 33; n++ {
		input := SymbolsFromBytes(bytes.Repeat([]byte{'a'}, n))
		payload, err := Pack(input, ct)
		if err != nil {
			t.Fatalf("Pack failed: %v", err)
		}

		expectPadding := byte((8 - n%8) % 8)
		expectLen := (n + 7) / 8
		if payload.Padding != expectPadding {
			t.Errorf("n=%d: wrong padding: expect %d, got %d", n, expectPadding, payload.Padding)
		}
		if len(payload.Bytes) != expectLen {
			t.Errorf("n=%d: wrong length: expect %d bytes, got %d", n, expectLen, len(payload.Bytes))
		}

		bits, err := Unpack(payload.Bytes, payload.Padding)
		if err != nil {
			t.Fatalf("Unpack failed: %v", err)
		}
		if bits.Len() != n || payload.BitLen() != n {
			t.Errorf("n=%d: unpacked %d bits, payload reports %d", n, bits.Len(), payload.BitLen())
		}
	}
}

func TestPack_MissingSymbol(t *testing.T) {
	ct, err := NewCodeTable(map[Symbol]Code{'a': mustParseCode("0")})
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}
	_, err = Pack(SymbolsFromBytes([]byte("ab")), ct)
	if !errorIs(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding, got %v", err)
	}
}

func TestUnpack(t *testing.T) {
	type testRow struct {
		name    string
		data    []byte
		padding byte
		expect  string
		fail    bool
	}

	testData := [...]testRow{
		{name: "no-padding", data: []byte{0xa5, 0x0f}, padding: 0, expect: "1010010100001111"},
		{name: "partial", data: []byte{0xa5}, padding: 3, expect: "10100"},
		{name: "seven", data: []byte{0x1f, 0x80}, padding: 7, expect: "000111111"},
		{name: "empty", data: nil, padding: 0, expect: ""},
		{name: "out-of-range", data: []byte{0x00}, padding: 8, fail: true},
		{name: "padding-without-data", data: nil, padding: 1, fail: true},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			bits, err := Unpack(row.data, row.padding)
			if row.fail {
				if !errorIs(err, ErrMalformedContainer) {
					t.Errorf("expected ErrMalformedContainer, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unpack failed: %v", err)
			}
			if actual := bits.String(); actual != row.expect {
				t.Errorf("wrong bits:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
		})
	}
}

func TestUnpack_OwnsData(t *testing.T) {
	data := []byte{0xff}
	bits, err := Unpack(data, 0)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	data[0] = 0
	if actual := bits.String(); actual != "11111111" {
		t.Errorf("BitString changed with its input: %s", actual)
	}
}
