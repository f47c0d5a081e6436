package huffpack

import (
	"github.com/indigo-web/utils/uf"
)

// EncodeBytes encodes data byte by byte and returns the serialized container.
func EncodeBytes(data []byte) ([]byte, error) {
	c, err := Encode(SymbolsFromBytes(data), AlphabetBytes)
	if err != nil {
		return nil, err
	}
	return c.MarshalBinary()
}

// EncodeString encodes str code point by code point and returns the
// serialized container.  str must be valid UTF-8.
func EncodeString(str string) ([]byte, error) {
	symbols, err := SymbolsFromString(str)
	if err != nil {
		return nil, err
	}
	c, err := Encode(symbols, AlphabetRunes)
	if err != nil {
		return nil, err
	}
	return c.MarshalBinary()
}

// DecodeBytes parses a serialized container and returns the original bytes.
// For a container of code points, the bytes are their UTF-8 encoding.
func DecodeBytes(raw []byte) ([]byte, error) {
	var c Container
	if err := c.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	return c.DecodeRaw()
}

// DecodeString is like DecodeBytes, but returns a string.
func DecodeString(raw []byte) (string, error) {
	out, err := DecodeBytes(raw)
	if err != nil {
		return "", err
	}
	// out is not retained anywhere else.
	return uf.B2S(out), nil
}
