package huffpack

import (
	"bytes"
	"fmt"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Payload is a packed bit sequence: the bits are stored most significant bit
// first, and the last Padding bits of Bytes (0 to 7 of them) are zero-valued
// filler added to reach a byte boundary.
type Payload struct {
	Bytes   []byte
	Padding byte
}

// BitLen returns the number of meaningful bits in the payload.
func (p Payload) BitLen() int {
	return 8*len(p.Bytes) - int(p.Padding)
}

// Pack concatenates the codes of symbols and packs them into bytes, most
// significant bit first.  The final byte is padded with zero bits, and the
// exact number of padding bits is reported in the result; a bit length that
// is already a multiple of 8 gets no padding and no extra byte.
//
// Pack fails with ErrEncoding if any symbol has no code in table.
//
func Pack(symbols []Symbol, table CodeTable) (Payload, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)

	var totalBits uint64
	for index, symbol := range symbols {
		hc, found := table.Lookup(symbol)
		if !found {
			return Payload{}, fmt.Errorf("%w: no code for symbol %d at position %d", ErrEncoding, symbol, index)
		}
		if err := w.WriteBits(hc.Bits, hc.Size); err != nil {
			return Payload{}, fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		totalBits += uint64(hc.Size)
	}

	skipped, err := w.Align()
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if err := w.Close(); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	padding := byte((8 - totalBits%8) % 8)
	assert.Assertf(skipped == padding, "bit writer skipped %d bits, expected %d", skipped, padding)
	assert.Assertf(uint64(buf.Len())*8 == totalBits+uint64(padding), "packed %d bytes for %d bits", buf.Len(), totalBits)

	return Payload{Bytes: buf.Bytes(), Padding: padding}, nil
}

// BitString is an ordered sequence of bits.
type BitString struct {
	data []byte
	n    int
}

// Unpack expands data into a BitString, most significant bit first, and
// drops exactly the last padding bits.  Padding must be between 0 and 7, and
// must be 0 for empty data.
func Unpack(data []byte, padding byte) (BitString, error) {
	if padding > 7 {
		return BitString{}, fmt.Errorf("%w: padding of %d bits is out of range [0, 7]", ErrMalformedContainer, padding)
	}
	if len(data) == 0 && padding != 0 {
		return BitString{}, fmt.Errorf("%w: padding of %d bits on an empty payload", ErrMalformedContainer, padding)
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	return BitString{data: owned, n: 8*len(owned) - int(padding)}, nil
}

// Len returns the number of bits.
func (bs BitString) Len() int {
	return bs.n
}

// Bit returns the index'th bit.
func (bs BitString) Bit(index int) bool {
	assert.Assertf(index >= 0 && index < bs.n, "bit index %d out of range [0, %d)", index, bs.n)
	return (bs.data[index>>3]>>(7-uint(index&7)))&1 == 1
}

// String returns the bits as a string of '0' and '1'.
func (bs BitString) String() string {
	buf := make([]byte, bs.n)
	for index := range buf {
		buf[index] = '0'
		if bs.Bit(index) {
			buf[index] = '1'
		}
	}
	return string(buf)
}

var _ fmt.Stringer = BitString{}
