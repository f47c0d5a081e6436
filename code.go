package huffpack

import (
	"fmt"
	"strconv"
)

// maxBitsPerCode is the longest code that a Code can hold.
const maxBitsPerCode = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  Only the low Size bits
	// are meaningful, and the most significant of those is the first bit.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(str string) (Code, error) {
	if len(str) > maxBitsPerCode {
		return Code{}, fmt.Errorf("code %q is longer than %d bits", str, maxBitsPerCode)
	}
	var hc Code
	for _, ch := range str {
		switch ch {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("code %q contains non-binary character %q", str, ch)
		}
	}
	return hc, nil
}

// Append returns the Code extended by one bit.
func (hc Code) Append(bit uint64) Code {
	return Code{Size: hc.Size + 1, Bits: (hc.Bits << 1) | (bit & 1)}
}

// Bit returns the index'th bit of the Code, counting from the first bit.
func (hc Code) Bit(index byte) uint64 {
	return (hc.Bits >> (hc.Size - 1 - index)) & 1
}

// Parent returns the Code with its last bit removed.
func (hc Code) Parent() Code {
	return Code{Size: hc.Size - 1, Bits: hc.Bits >> 1}
}

// Sibling returns the Code with its last bit flipped.
func (hc Code) Sibling() Code {
	return Code{Size: hc.Size, Bits: hc.Bits ^ 1}
}

// HasPrefix reports whether prefix is a (not necessarily proper) prefix of hc.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// IsValid reports whether the Code is non-empty, fits in maxBitsPerCode bits,
// and has no bits set above Size.
func (hc Code) IsValid() bool {
	if hc.Size == 0 || hc.Size > maxBitsPerCode {
		return false
	}
	return hc.Size == maxBitsPerCode || hc.Bits>>hc.Size == 0
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	return strconv.Quote(hc.BitString())
}

// BitString returns the bits of this Code as a string of '0' and '1'.
func (hc Code) BitString() string {
	buf := make([]byte, hc.Size)
	for index := byte(0); index < hc.Size; index++ {
		buf[index] = '0' + byte(hc.Bit(index))
	}
	return string(buf)
}

var _ fmt.Stringer = Code{}

// lessCode orders Codes lexicographically by their bit strings, so that a
// prefix sorts immediately before the codes that extend it.
func lessCode(a, b Code) bool {
	n := a.Size
	if b.Size < n {
		n = b.Size
	}
	ab := a.Bits >> (a.Size - n)
	bb := b.Bits >> (b.Size - n)
	if ab != bb {
		return ab < bb
	}
	return a.Size < b.Size
}
