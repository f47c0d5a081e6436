package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
	jsoniter "github.com/json-iterator/go"
)

// CodeTable maps each Symbol of an alphabet to its prefix-free Code.  A
// CodeTable is immutable once built.
type CodeTable struct {
	codes   map[Symbol]Code
	symbols []Symbol
	minSize byte
	maxSize byte
}

// AssignCodes walks the tree rooted at root and returns the code of every
// leaf: descending left appends a 0 bit, descending right appends a 1 bit.
//
// A tree consisting of a single leaf has no edges to walk, so its symbol is
// assigned the 1-bit code "0".
//
func AssignCodes(root *Node) CodeTable {
	assert.Assertf(root != nil, "AssignCodes called with nil root")

	codes := make(map[Symbol]Code)
	if root.IsLeaf() {
		codes[root.Symbol] = MakeCode(1, 0)
		return makeCodeTable(codes)
	}

	// The stack holds the nodes still to visit, each with the code of
	// the path leading to it.  Right children are pushed first so that
	// the walk visits left subtrees first.

	type stackItem struct {
		node *Node
		code Code
	}

	stack := make([]stackItem, 0, 2*maxBitsPerCode)
	stack = append(stack, stackItem{node: root})
	for len(stack) != 0 {
		last := len(stack) - 1
		item := stack[last]
		stack[last] = stackItem{}
		stack = stack[:last]

		node := item.node
		if node.IsLeaf() {
			codes[node.Symbol] = item.code
			continue
		}

		assert.Assertf(node.Left != nil && node.Right != nil, "internal node with weight %d has a missing child", node.Weight)
		assert.Assertf(item.code.Size < maxBitsPerCode, "Huffman tree is deeper than %d levels", maxBitsPerCode)
		stack = append(stack, stackItem{node.Right, item.code.Append(1)})
		stack = append(stack, stackItem{node.Left, item.code.Append(0)})
	}

	return makeCodeTable(codes)
}

// NewCodeTable builds a CodeTable from explicit codes, e.g. ones read back
// from storage.  The codes must be non-empty and prefix-free.
func NewCodeTable(codes map[Symbol]Code) (CodeTable, error) {
	owned := make(map[Symbol]Code, len(codes))
	for symbol, hc := range codes {
		if symbol < 0 {
			return CodeTable{}, fmt.Errorf("%w: negative symbol %d", ErrMalformedContainer, symbol)
		}
		owned[symbol] = hc
	}
	ct := makeCodeTable(owned)
	if err := ct.Validate(); err != nil {
		return CodeTable{}, err
	}
	return ct, nil
}

func makeCodeTable(codes map[Symbol]Code) CodeTable {
	ct := CodeTable{
		codes:   codes,
		symbols: make([]Symbol, 0, len(codes)),
	}
	for symbol, hc := range codes {
		ct.symbols = append(ct.symbols, symbol)
		if len(ct.symbols) == 1 {
			ct.minSize = hc.Size
			ct.maxSize = hc.Size
		} else if ct.minSize > hc.Size {
			ct.minSize = hc.Size
		} else if ct.maxSize < hc.Size {
			ct.maxSize = hc.Size
		}
	}
	sort.Slice(ct.symbols, func(i, j int) bool { return ct.symbols[i] < ct.symbols[j] })
	return ct
}

// Lookup returns the Code assigned to symbol.
func (ct CodeTable) Lookup(symbol Symbol) (Code, bool) {
	hc, found := ct.codes[symbol]
	return hc, found
}

// Len returns the number of symbols in the table.
func (ct CodeTable) Len() int {
	return len(ct.symbols)
}

// Symbols returns the symbols of the table in ascending order.  The caller
// must not modify the returned slice.
func (ct CodeTable) Symbols() []Symbol {
	return ct.symbols
}

// MinSize is the bit length of the shortest code.
func (ct CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct CodeTable) MaxSize() byte {
	return ct.maxSize
}

// Validate checks that the table is non-empty, that every code is non-empty
// and well-formed, and that no code is a prefix of another.
func (ct CodeTable) Validate() error {
	if len(ct.symbols) == 0 {
		return fmt.Errorf("%w: empty code table", ErrMalformedContainer)
	}

	sorted := make(bySymbolCode, 0, len(ct.symbols))
	for _, symbol := range ct.symbols {
		hc := ct.codes[symbol]
		if !hc.IsValid() {
			return fmt.Errorf("%w: invalid code %s (size %d) for symbol %d", ErrMalformedContainer, hc, hc.Size, symbol)
		}
		sorted = append(sorted, symbolAndCode{symbol, hc})
	}
	sorted.Sort()

	// After a lexicographic sort, a code that is a prefix of any other
	// code is also a prefix of its immediate successor.
	for index := 1; index < len(sorted); index++ {
		a, b := sorted[index-1], sorted[index]
		if b.code.HasPrefix(a.code) {
			return fmt.Errorf("%w: code %s for symbol %d is a prefix of code %s for symbol %d", ErrMalformedContainer, a.code, a.symbol, b.code, b.symbol)
		}
	}
	return nil
}

// EncodedBits returns the total number of bits needed to encode an input
// with the given frequencies, i.e. the sum of count × code size.
func (ct CodeTable) EncodedBits(freq FrequencyTable) (uint64, error) {
	var total uint64
	for _, symbol := range freq.Symbols() {
		hc, found := ct.codes[symbol]
		if !found {
			return 0, fmt.Errorf("%w: no code for symbol %d", ErrEncoding, symbol)
		}
		total = saturatingAdd(total, freq.Count(symbol)*uint64(hc.Size))
	}
	return total, nil
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (ct CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, symbol := range ct.symbols {
		fmt.Fprintf(&buf, "\tLookup(%d) = %s\n", symbol, ct.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// String returns a short human-readable description of the CodeTable.
func (ct CodeTable) String() string {
	return fmt.Sprintf("(Huffman code table with %d symbols, with coded lengths of %d .. %d bits)", len(ct.symbols), ct.minSize, ct.maxSize)
}

type jsonCodeEntry struct {
	Symbol Symbol `json:"symbol"`
	Code   string `json:"code"`
}

// MarshalJSON renders the table as an array of {symbol, code} objects in
// ascending symbol order.
func (ct CodeTable) MarshalJSON() ([]byte, error) {
	entries := make([]jsonCodeEntry, len(ct.symbols))
	for index, symbol := range ct.symbols {
		entries[index] = jsonCodeEntry{Symbol: symbol, Code: ct.codes[symbol].BitString()}
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(entries)
}

// UnmarshalJSON parses the output of MarshalJSON and validates the result.
func (ct *CodeTable) UnmarshalJSON(raw []byte) error {
	var entries []jsonCodeEntry
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &entries); err != nil {
		return err
	}
	codes := make(map[Symbol]Code, len(entries))
	for _, entry := range entries {
		if _, dup := codes[entry.Symbol]; dup {
			return fmt.Errorf("%w: duplicate symbol %d", ErrMalformedContainer, entry.Symbol)
		}
		hc, err := ParseCode(entry.Code)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedContainer, err)
		}
		codes[entry.Symbol] = hc
	}
	table, err := NewCodeTable(codes)
	if err != nil {
		return err
	}
	*ct = table
	return nil
}

var _ fmt.Stringer = CodeTable{}

// type symbolAndCode + type bySymbolCode {{{

type symbolAndCode struct {
	symbol Symbol
	code   Code
}

type bySymbolCode []symbolAndCode

func (list bySymbolCode) Len() int {
	return len(list)
}

func (list bySymbolCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySymbolCode) Less(i, j int) bool {
	return lessCode(list[i].code, list[j].code)
}

func (list bySymbolCode) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = bySymbolCode(nil)

// }}}
