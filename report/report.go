// Package report computes descriptive statistics for a Huffman code: the
// entropy of the source, the average code length, the coding efficiency, and
// the size of the input before and after coding.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"

	"github.com/chronos-tachyon/huffpack"
)

// ErrEmpty is returned when there are no symbols to report on.
var ErrEmpty = errors.New("report: no symbols")

// SymbolStat describes one symbol of the alphabet.
type SymbolStat struct {
	Symbol      huffpack.Symbol `json:"symbol"`
	Count       uint64          `json:"count"`
	Probability float64         `json:"probability"`
	Code        string          `json:"code"`
}

// Report holds the statistics of one encode.  Entropy and AverageLength are
// in bits per symbol; Efficiency is a percentage.
type Report struct {
	Alphabet      huffpack.Alphabet `json:"-"`
	Symbols       uint64            `json:"symbols"`
	Distinct      int               `json:"distinct"`
	Entropy       float64           `json:"entropy"`
	AverageLength float64           `json:"average_length"`
	Efficiency    float64           `json:"efficiency"`
	BitsBefore    uint64            `json:"bits_before"`
	BitsAfter     uint64            `json:"bits_after"`
	Codes         []SymbolStat      `json:"codes"`
}

// New computes a Report from the frequencies of an input and the code table
// built for it.  The alphabet only affects how symbols are rendered.  Neither
// table is modified.
func New(freq huffpack.FrequencyTable, table huffpack.CodeTable, alphabet huffpack.Alphabet) (Report, error) {
	total := freq.Total()
	if total == 0 {
		return Report{}, ErrEmpty
	}

	r := Report{
		Alphabet:   alphabet,
		Symbols:    total,
		Distinct:   freq.Len(),
		BitsBefore: total * 8,
		Codes:      make([]SymbolStat, 0, freq.Len()),
	}

	for _, symbol := range freq.Symbols() {
		hc, found := table.Lookup(symbol)
		if !found {
			return Report{}, fmt.Errorf("%w: no code for symbol %d", huffpack.ErrEncoding, symbol)
		}
		count := freq.Count(symbol)
		p := float64(count) / float64(total)

		r.Entropy -= p * math.Log2(p)
		r.AverageLength += p * float64(hc.Size)
		r.BitsAfter += count * uint64(hc.Size)
		r.Codes = append(r.Codes, SymbolStat{
			Symbol:      symbol,
			Count:       count,
			Probability: p,
			Code:        hc.BitString(),
		})
	}

	// A single-symbol source has zero entropy.
	if r.Entropy <= 0 {
		r.Entropy = 0
	}
	r.Efficiency = r.Entropy / r.AverageLength * 100
	return r, nil
}

// WriteText writes a human-readable rendering of the report to w.
func (r Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "symbols:\t%d (%d distinct)\n", r.Symbols, r.Distinct)
	fmt.Fprintf(tw, "entropy:\t%.4f bits/symbol\n", r.Entropy)
	fmt.Fprintf(tw, "average code length:\t%.4f bits/symbol\n", r.AverageLength)
	fmt.Fprintf(tw, "efficiency:\t%.2f%%\n", r.Efficiency)
	fmt.Fprintf(tw, "size before:\t%d bits\n", r.BitsBefore)
	fmt.Fprintf(tw, "size after:\t%d bits\n", r.BitsAfter)
	fmt.Fprintf(tw, "\nsymbol\tcount\tprobability\tcode\n")
	for _, s := range r.Codes {
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%s\n", symbolLabel(r.Alphabet, s.Symbol), s.Count, s.Probability, s.Code)
	}
	return tw.Flush()
}

// WriteJSON writes the report to w as a single JSON object.
func (r Report) WriteJSON(w io.Writer) error {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(w)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	stream.WriteVal(r)
	stream.WriteRaw("\n")
	if stream.Error != nil {
		return stream.Error
	}
	return stream.Flush()
}

// symbolLabel renders a symbol for display.  Bytes outside printable ASCII
// are shown in hex, since they are not characters on their own.
func symbolLabel(alphabet huffpack.Alphabet, symbol huffpack.Symbol) string {
	if alphabet == huffpack.AlphabetRunes || (symbol >= 0x20 && symbol < 0x7f) {
		return strconv.QuoteRune(rune(symbol))
	}
	return fmt.Sprintf("%#04x", int32(symbol))
}
