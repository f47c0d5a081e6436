package huffpack

import (
	"bytes"
	"fmt"
	"io"
)

// Encoder implements an encoder for deterministic Huffman codes.
type Encoder struct {
	table CodeTable
}

// Init initializes this Encoder from the frequency (i.e. number of
// occurrences) of each Symbol of the input.  Init fails with ErrInvalidInput
// if the table is empty.
func (e *Encoder) Init(freq FrequencyTable) error {
	root, err := BuildTree(freq)
	if err != nil {
		return err
	}
	*e = Encoder{table: AssignCodes(root)}
	return nil
}

// Encode returns the Huffman-coded bit string for a Symbol.  The second
// return value is false if the Symbol is not part of the code.
func (e Encoder) Encode(symbol Symbol) (Code, bool) {
	return e.table.Lookup(symbol)
}

// Table returns the CodeTable built by Init.
func (e Encoder) Table() CodeTable {
	return e.table
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() byte {
	return e.table.MinSize()
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() byte {
	return e.table.MaxSize()
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.table.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.table.MaxSize())
	for _, symbol := range e.table.Symbols() {
		hc, _ := e.table.Lookup(symbol)
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
