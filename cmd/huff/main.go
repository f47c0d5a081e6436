// Command huff encodes files into Huffman containers and decodes them back.
//
// Usage:
//
//     huff encode [-in FILE] [-out FILE] [-runes] [-stats] [-json] [-v]
//     huff decode [-in FILE] [-out FILE] [-v]
//     huff stats  [-in FILE] [-runes] [-json] [-v]
//
// Input defaults to stdin and output to stdout.  Statistics are written to
// stderr for encode, and to stdout for stats.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/indigo-web/utils/uf"

	"github.com/chronos-tachyon/huffpack"
	"github.com/chronos-tachyon/huffpack/internal/logger"
	"github.com/chronos-tachyon/huffpack/report"
)

type options struct {
	in      string
	out     string
	runes   bool
	stats   bool
	json    bool
	verbose bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	mode := args[0]
	fs := flag.NewFlagSet("huff "+mode, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.in, "in", "-", "input file, or - for stdin")
	fs.StringVar(&opts.out, "out", "-", "output file, or - for stdout")
	fs.BoolVar(&opts.verbose, "v", false, "log debugging output")
	if mode == "encode" || mode == "stats" {
		fs.BoolVar(&opts.runes, "runes", false, "code Unicode code points of UTF-8 input instead of bytes")
		fs.BoolVar(&opts.json, "json", false, "write statistics as JSON")
	}
	if mode == "encode" {
		fs.BoolVar(&opts.stats, "stats", false, "write statistics to stderr")
	}

	switch mode {
	case "encode", "decode", "stats":
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "huff: unknown mode %q\n", mode)
		usage(stderr)
		return 2
	}

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "huff: unexpected arguments: %q\n", fs.Args())
		return 2
	}

	log := logger.New(stderr, opts.verbose)

	var err error
	switch mode {
	case "encode":
		err = encode(log, opts, stdin, stdout, stderr)
	case "decode":
		err = decode(log, opts, stdin, stdout)
	case "stats":
		err = stats(log, opts, stdin, stdout)
	}
	if err != nil {
		log.Errorf("%s: %s", mode, describe(err))
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: huff encode|decode|stats [-in FILE] [-out FILE] [flags]")
	fmt.Fprintln(w, "run 'huff MODE -h' for the flags of each mode")
}

func describe(err error) string {
	switch {
	case errors.Is(err, huffpack.ErrInvalidInput):
		return fmt.Sprintf("invalid input: %v", err)
	case errors.Is(err, huffpack.ErrMalformedContainer):
		return fmt.Sprintf("not a valid container: %v", err)
	case errors.Is(err, huffpack.ErrDecoding):
		return fmt.Sprintf("container payload is truncated or corrupt: %v", err)
	case errors.Is(err, huffpack.ErrEncoding):
		return fmt.Sprintf("internal error: %v", err)
	default:
		return err.Error()
	}
}

func symbolsOf(opts options, data []byte) ([]huffpack.Symbol, huffpack.Alphabet, error) {
	if opts.runes {
		// data is not modified while the string view is alive.
		symbols, err := huffpack.SymbolsFromString(uf.B2S(data))
		return symbols, huffpack.AlphabetRunes, err
	}
	return huffpack.SymbolsFromBytes(data), huffpack.AlphabetBytes, nil
}

func encode(log logger.Logger, opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	data, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}
	symbols, alphabet, err := symbolsOf(opts, data)
	if err != nil {
		return err
	}

	c, err := huffpack.Encode(symbols, alphabet)
	if err != nil {
		return err
	}
	if opts.verbose {
		_, _ = c.Table.Dump(stderr)
	}

	raw, err := c.MarshalBinary()
	if err != nil {
		return err
	}
	if err := writeOutput(opts.out, stdout, raw); err != nil {
		return err
	}
	log.Infof("encoded %d symbols (%v alphabet) into %d bytes (%d payload bytes, %d padding bits)", len(symbols), alphabet, len(raw), len(c.Payload), c.Padding)

	if opts.stats {
		return writeReport(opts, huffpack.CountFrequencies(symbols), c.Table, alphabet, stderr)
	}
	return nil
}

func decode(log logger.Logger, opts options, stdin io.Reader, stdout io.Writer) error {
	raw, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}

	var c huffpack.Container
	if err := c.UnmarshalBinary(raw); err != nil {
		return err
	}
	log.Debugf("container: %v alphabet, %v, %d payload bytes, %d padding bits", c.Alphabet, c.Table, len(c.Payload), c.Padding)

	data, err := c.DecodeRaw()
	if err != nil {
		return err
	}
	if err := writeOutput(opts.out, stdout, data); err != nil {
		return err
	}
	log.Infof("decoded %d bytes into %d bytes", len(raw), len(data))
	return nil
}

func stats(log logger.Logger, opts options, stdin io.Reader, stdout io.Writer) error {
	data, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}
	symbols, alphabet, err := symbolsOf(opts, data)
	if err != nil {
		return err
	}

	freq := huffpack.CountFrequencies(symbols)
	var e huffpack.Encoder
	if err := e.Init(freq); err != nil {
		return err
	}
	log.Debugf("%v", e.Table())
	return writeReport(opts, freq, e.Table(), alphabet, stdout)
}

func writeReport(opts options, freq huffpack.FrequencyTable, table huffpack.CodeTable, alphabet huffpack.Alphabet, w io.Writer) error {
	r, err := report.New(freq, table, alphabet)
	if err != nil {
		return err
	}
	if opts.json {
		return r.WriteJSON(w)
	}
	return r.WriteText(w)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
