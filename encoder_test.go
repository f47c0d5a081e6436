package huffpack

import (
	"strings"
	"testing"
)

func makeTestFrequencies() FrequencyTable {
	ft, err := NewFrequencyTable(map[Symbol]uint64{0: 5, 1: 9, 2: 12, 3: 13, 4: 16, 5: 45})
	if err != nil {
		panic(err)
	}
	return ft
}

func TestEncoder(t *testing.T) {
	var e Encoder
	if err := e.Init(makeTestFrequencies()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	expectDump := strings.Join([]string{
		"Encoder{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode(0) = \"1100\"\n",
		"\tEncode(1) = \"1101\"\n",
		"\tEncode(2) = \"100\"\n",
		"\tEncode(3) = \"101\"\n",
		"\tEncode(4) = \"111\"\n",
		"\tEncode(5) = \"0\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = e.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	if _, found := e.Encode(6); found {
		t.Errorf("Encode(6) found a code for a symbol outside the input")
	}
}

func TestEncoder_Empty(t *testing.T) {
	var e Encoder
	err := e.Init(CountFrequencies(nil))
	if !errorIs(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEncoder_Deterministic(t *testing.T) {
	// Every weight ties with another one.
	input := SymbolsFromBytes([]byte("abcdabcdeeffgghh"))
	reordered := SymbolsFromBytes([]byte("hgfedcbahgfedcba"))

	var first, second Encoder
	if err := first.Init(CountFrequencies(input)); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := second.Init(CountFrequencies(reordered)); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	var a, b strings.Builder
	_, _ = first.Dump(&a)
	_, _ = second.Dump(&b)
	if a.String() != b.String() {
		t.Errorf("same frequencies gave different codes:\n\tfirst:  %s\n\tsecond: %s", a.String(), b.String())
	}
}
