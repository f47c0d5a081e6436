package huffpack

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Symbol represents a symbol in an arbitrary alphabet.  Negative symbols are
// not valid.
type Symbol int32

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxInt32)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// Alphabet identifies how a sequence of Symbols maps back to raw bytes.
type Alphabet byte

const (
	// AlphabetBytes codes each input byte as one Symbol in [0, 255].
	AlphabetBytes Alphabet = iota

	// AlphabetRunes codes each Unicode code point of UTF-8 input as one
	// Symbol; surrogate halves are not valid symbols.
	AlphabetRunes
)

var alphabetNames = [...]string{"bytes", "runes"}

// String returns the name of the alphabet.
func (a Alphabet) String() string {
	if a.IsValid() {
		return alphabetNames[a]
	}
	return fmt.Sprintf("Alphabet(%d)", byte(a))
}

// IsValid reports whether a is one of the known alphabets.
func (a Alphabet) IsValid() bool {
	return int(a) < len(alphabetNames)
}

// Contains reports whether symbol belongs to the alphabet.
func (a Alphabet) Contains(symbol Symbol) bool {
	switch a {
	case AlphabetBytes:
		return symbol >= 0 && symbol <= math.MaxUint8
	case AlphabetRunes:
		return utf8.ValidRune(rune(symbol))
	default:
		return false
	}
}

var _ fmt.Stringer = Alphabet(0)

// SymbolsFromBytes returns one Symbol per byte of data.
func SymbolsFromBytes(data []byte) []Symbol {
	out := make([]Symbol, len(data))
	for index, b := range data {
		out[index] = Symbol(b)
	}
	return out
}

// SymbolsFromString returns one Symbol per code point of str.  Input that is
// not valid UTF-8 is rejected, since the replacement character would not
// round-trip to the original bytes.
func SymbolsFromString(str string) ([]Symbol, error) {
	if !utf8.ValidString(str) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrInvalidInput)
	}
	out := make([]Symbol, 0, utf8.RuneCountInString(str))
	for _, ch := range str {
		out = append(out, Symbol(ch))
	}
	return out, nil
}

// appendSymbol appends the raw representation of symbol under alphabet a.
func (a Alphabet) appendSymbol(buf []byte, symbol Symbol) []byte {
	if a == AlphabetRunes {
		return utf8.AppendRune(buf, rune(symbol))
	}
	return append(buf, byte(symbol))
}
