package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// FrequencyTable maps each distinct Symbol of an input to its number of
// occurrences.  Every count is at least 1.  A FrequencyTable is immutable
// once built.
type FrequencyTable struct {
	counts  map[Symbol]uint64
	symbols []Symbol
	total   uint64
}

// CountFrequencies counts the occurrences of each Symbol in symbols.  Empty
// input yields an empty table; BuildTree rejects it.
func CountFrequencies(symbols []Symbol) FrequencyTable {
	counts := make(map[Symbol]uint64)
	for _, symbol := range symbols {
		counts[symbol]++
	}
	return makeFrequencyTable(counts)
}

// NewFrequencyTable builds a FrequencyTable from explicit counts.  Symbols
// with a count of 0 are omitted.
func NewFrequencyTable(counts map[Symbol]uint64) (FrequencyTable, error) {
	owned := make(map[Symbol]uint64, len(counts))
	for symbol, count := range counts {
		if symbol < 0 {
			return FrequencyTable{}, fmt.Errorf("%w: negative symbol %d", ErrInvalidInput, symbol)
		}
		if count != 0 {
			owned[symbol] = count
		}
	}
	return makeFrequencyTable(owned), nil
}

func makeFrequencyTable(counts map[Symbol]uint64) FrequencyTable {
	symbols := make([]Symbol, 0, len(counts))
	var total uint64
	for symbol, count := range counts {
		symbols = append(symbols, symbol)
		total = saturatingAdd(total, count)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return FrequencyTable{counts: counts, symbols: symbols, total: total}
}

// Count returns the number of occurrences of symbol, or 0.
func (ft FrequencyTable) Count(symbol Symbol) uint64 {
	return ft.counts[symbol]
}

// Len returns the number of distinct symbols.
func (ft FrequencyTable) Len() int {
	return len(ft.symbols)
}

// Total returns the sum of all counts.
func (ft FrequencyTable) Total() uint64 {
	return ft.total
}

// Symbols returns the distinct symbols in ascending order.  The caller must
// not modify the returned slice.
func (ft FrequencyTable) Symbols() []Symbol {
	return ft.symbols
}

// Dump writes a programmer-readable debugging dump of the FrequencyTable to
// the given writer.
func (ft FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tTotal() = %d\n", ft.total)
	for _, symbol := range ft.symbols {
		fmt.Fprintf(&buf, "\tCount(%d) = %d\n", symbol, ft.counts[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
