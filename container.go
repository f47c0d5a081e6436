package huffpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// containerMagic identifies the container format and its version.
var containerMagic = [4]byte{'H', 'U', 'F', 0x01}

// Container binds a CodeTable to the payload packed with it.  It is the unit
// that is persisted or transmitted; decoding needs nothing else.
//
// Wire format (varints are unsigned LEB128):
//
//     magic      "HUF\x01"
//     alphabet   1 byte
//     padding    1 byte, 0..7
//     count      varint, >= 1
//     entries    count × {symbol varint, size 1 byte, bits varint}
//     length     varint
//     payload    length bytes
//
type Container struct {
	Alphabet Alphabet
	Table    CodeTable
	Padding  byte
	Payload  []byte
}

// Encode runs the full encode pipeline over symbols: it counts frequencies,
// builds the tree, assigns codes, and packs the symbols.
//
// Encode fails with ErrInvalidInput if symbols is empty or contains a symbol
// outside alphabet.
//
func Encode(symbols []Symbol, alphabet Alphabet) (*Container, error) {
	if !alphabet.IsValid() {
		return nil, fmt.Errorf("%w: unknown alphabet %v", ErrInvalidInput, alphabet)
	}

	freq := CountFrequencies(symbols)
	for _, symbol := range freq.Symbols() {
		if !alphabet.Contains(symbol) {
			return nil, fmt.Errorf("%w: symbol %d is not in the %v alphabet", ErrInvalidInput, symbol, alphabet)
		}
	}

	var e Encoder
	if err := e.Init(freq); err != nil {
		return nil, err
	}

	payload, err := Pack(symbols, e.Table())
	if err != nil {
		return nil, err
	}

	return &Container{
		Alphabet: alphabet,
		Table:    e.Table(),
		Padding:  payload.Padding,
		Payload:  payload.Bytes,
	}, nil
}

// Validate checks the container's header fields and code table.
func (c *Container) Validate() error {
	if !c.Alphabet.IsValid() {
		return fmt.Errorf("%w: unknown alphabet %d", ErrMalformedContainer, byte(c.Alphabet))
	}
	if c.Padding > 7 {
		return fmt.Errorf("%w: padding of %d bits is out of range [0, 7]", ErrMalformedContainer, c.Padding)
	}
	if len(c.Payload) == 0 && c.Padding != 0 {
		return fmt.Errorf("%w: padding of %d bits on an empty payload", ErrMalformedContainer, c.Padding)
	}
	if err := c.Table.Validate(); err != nil {
		return err
	}
	for _, symbol := range c.Table.Symbols() {
		if !c.Alphabet.Contains(symbol) {
			return fmt.Errorf("%w: symbol %d is not in the %v alphabet", ErrMalformedContainer, symbol, c.Alphabet)
		}
	}
	return nil
}

// Decode validates the container, strips the padding, and decodes the
// payload back into the original symbols.
func (c *Container) Decode() ([]Symbol, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var d Decoder
	if err := d.Init(c.Table); err != nil {
		return nil, err
	}

	bits, err := Unpack(c.Payload, c.Padding)
	if err != nil {
		return nil, err
	}

	return d.DecodeBits(bits)
}

// DecodeRaw decodes the container and renders the symbols as raw bytes
// according to the container's alphabet.
func (c *Container) DecodeRaw() ([]byte, error) {
	symbols, err := c.Decode()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(symbols))
	for _, symbol := range symbols {
		out = c.Alphabet.appendSymbol(out, symbol)
	}
	return out, nil
}

// MarshalBinary serializes the container.
func (c *Container) MarshalBinary() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	symbols := c.Table.Symbols()
	buf := make([]byte, 0, 6+binary.MaxVarintLen64*(2+2*len(symbols))+len(symbols)+len(c.Payload))
	buf = append(buf, containerMagic[:]...)
	buf = append(buf, byte(c.Alphabet), c.Padding)
	buf = binary.AppendUvarint(buf, uint64(len(symbols)))
	for _, symbol := range symbols {
		hc, _ := c.Table.Lookup(symbol)
		buf = binary.AppendUvarint(buf, uint64(symbol))
		buf = append(buf, hc.Size)
		buf = binary.AppendUvarint(buf, hc.Bits)
	}
	buf = binary.AppendUvarint(buf, uint64(len(c.Payload)))
	buf = append(buf, c.Payload...)
	return buf, nil
}

// UnmarshalBinary parses a serialized container.  The whole of raw must be
// consumed; trailing bytes are an error.
func (c *Container) UnmarshalBinary(raw []byte) error {
	r := bytes.NewReader(raw)

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return malformedf("reading magic: %v", err)
	}
	if magic != containerMagic {
		return malformedf("bad magic %q", magic[:])
	}

	alphabet, err := r.ReadByte()
	if err != nil {
		return malformedf("reading alphabet: %v", err)
	}
	padding, err := r.ReadByte()
	if err != nil {
		return malformedf("reading padding: %v", err)
	}

	count, err := binary.ReadUvarint(r)
	if err != nil {
		return malformedf("reading code count: %v", err)
	}
	if count == 0 {
		return malformedf("empty code table")
	}
	// Every entry takes at least three bytes.
	if count > uint64(r.Len())/3 {
		return malformedf("code count %d exceeds the remaining %d bytes", count, r.Len())
	}

	codes := make(map[Symbol]Code, count)
	for index := uint64(0); index < count; index++ {
		symbol, err := binary.ReadUvarint(r)
		if err != nil {
			return malformedf("reading symbol of entry %d: %v", index, err)
		}
		if symbol > uint64(MaxSymbol) {
			return malformedf("symbol %d of entry %d is out of range", symbol, index)
		}
		size, err := r.ReadByte()
		if err != nil {
			return malformedf("reading code size of entry %d: %v", index, err)
		}
		bits, err := binary.ReadUvarint(r)
		if err != nil {
			return malformedf("reading code bits of entry %d: %v", index, err)
		}
		if _, dup := codes[Symbol(symbol)]; dup {
			return malformedf("duplicate symbol %d", symbol)
		}
		codes[Symbol(symbol)] = MakeCode(size, bits)
	}

	length, err := binary.ReadUvarint(r)
	if err != nil {
		return malformedf("reading payload length: %v", err)
	}
	if length != uint64(r.Len()) {
		return malformedf("payload length %d does not match the remaining %d bytes", length, r.Len())
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return malformedf("reading payload: %v", err)
	}

	table, err := NewCodeTable(codes)
	if err != nil {
		return err
	}

	parsed := Container{
		Alphabet: Alphabet(alphabet),
		Table:    table,
		Padding:  padding,
		Payload:  payload,
	}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*c = parsed
	return nil
}

// WriteTo writes the serialized container to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	raw, err := c.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(raw)
	return int64(n), err
}

// ReadFrom reads r to EOF and parses the result as a serialized container.
func (c *Container) ReadFrom(r io.Reader) (int64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return int64(len(raw)), err
	}
	return int64(len(raw)), c.UnmarshalBinary(raw)
}

func malformedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrMalformedContainer}, args...)...)
}

var (
	_ io.WriterTo   = (*Container)(nil)
	_ io.ReaderFrom = (*Container)(nil)
)
