package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/icza/bitio"
)

// Decoder implements a decoder for prefix-free codes.
type Decoder struct {
	table   map[Code]decoderData
	minSize byte
	maxSize byte
}

// Init initializes this Decoder from a CodeTable.  The table must be
// non-empty and prefix-free; Init fails with ErrMalformedContainer otherwise.
func (d *Decoder) Init(ct CodeTable) error {
	if err := ct.Validate(); err != nil {
		return err
	}

	numSymbols := uint32(ct.Len())

	// len(table) is approximately n×log2(n) when filled.
	numTableSlots := numSymbols * log2uint32(numSymbols)

	*d = Decoder{
		table:   make(map[Code]decoderData, numTableSlots),
		minSize: ct.MinSize(),
		maxSize: ct.MaxSize(),
	}

	for _, symbol := range ct.Symbols() {
		hc, _ := ct.Lookup(symbol)
		fillTable(d.table, symbol, hc)
	}
	return nil
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, symbol >= 0 and minSize == maxSize.
//
// If the Decode fails due to insufficient bits, symbol == InvalidSymbol and
// every code that begins with hc is between minSize and maxSize bits long.
//
// If the Decode fails because no code begins with hc, symbol == InvalidSymbol
// and minSize == maxSize == 0.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// MinSize is the bit length of the shortest legal code.
func (d Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d Decoder) MaxSize() byte {
	return d.maxSize
}

// DecodeBits decodes a whole bit sequence greedily: bits accumulate into a
// candidate code until it matches, at which point the matching Symbol is
// emitted and the candidate starts over.
//
// DecodeBits fails with ErrDecoding if the bits run out in the middle of a
// code, or if the candidate becomes a sequence that no code begins with.
//
func (d Decoder) DecodeBits(bits BitString) ([]Symbol, error) {
	if d.maxSize == 0 {
		return nil, fmt.Errorf("%w: decoder has no codes", ErrDecoding)
	}

	out := make([]Symbol, 0, bits.Len()/int(d.maxSize))
	r := bitio.NewReader(bytes.NewReader(bits.data))

	var candidate Code
	for index := 0; index < bits.n; index++ {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("%w: reading bit %d: %v", ErrDecoding, index, err)
		}
		if bit {
			candidate = candidate.Append(1)
		} else {
			candidate = candidate.Append(0)
		}

		symbol, minSize, _ := d.Decode(candidate)
		if symbol >= 0 {
			out = append(out, symbol)
			candidate = Code{}
			continue
		}
		if minSize == 0 {
			return nil, fmt.Errorf("%w: no code begins with %s at bit %d", ErrDecoding, candidate, index+1-int(candidate.Size))
		}
	}

	if candidate.Size != 0 {
		return nil, fmt.Errorf("%w: payload ends inside a code (%d dangling bits %s)", ErrDecoding, candidate.Size, candidate)
	}
	return out, nil
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

type decoderData struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

// fillTable records hc as a code for symbol, then walks up through every
// prefix of hc, recording for each prefix the range of code sizes reachable
// beneath it.
func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) {
	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// Merge the dd's from "xxx...a" (dd) and "xxx...A" (ddSibling),
		// where A = NOT a, into ddNew (the new parent for both).

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[hc.Sibling()]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "xxx...a" to "xxx...".

		hc = hc.Parent()

		// If table[hc] already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}
