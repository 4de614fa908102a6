// notate converts structured documents between formats, optionally
// extracting parts of them with a path query, and prints values as tables.
//
//	notate --to yaml config.json
//	notate -q '.items[].name' --to table data.jsonl
//	notate --from cbor --hex --to json < dump.hex
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bjaus/notation"
	"github.com/bjaus/notation/query"
	"github.com/bjaus/notation/render"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	from         string
	to           string
	query        string
	indent       string
	hexInput     bool
	hexOutput    bool
	xmlRoot      string
	jsonComments bool
	maxSize      int64
	noBorder     bool
	logLevel     string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cfg config
	flagSet := pflag.NewFlagSet("notate", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&cfg.from, "from", "f", "", "input format (default: from the file extension, or json)")
	flagSet.StringVarP(&cfg.to, "to", "t", "", "output format or render style (default: the input format)")
	flagSet.StringVarP(&cfg.query, "query", "q", "", "path query applied to the decoded input, e.g. .items[].name")
	flagSet.StringVar(&cfg.indent, "indent", "", "indent string for pretty-printed text output")
	flagSet.BoolVar(&cfg.hexInput, "hex", false, "input is hex text; whitespace is ignored")
	flagSet.BoolVar(&cfg.hexOutput, "hex-output", false, "write binary output formats as hex text")
	flagSet.StringVar(&cfg.xmlRoot, "xml-root", "root", "document element name for XML output")
	flagSet.BoolVar(&cfg.jsonComments, "json-comments", false, "accept comments and trailing commas in JSON input")
	flagSet.Int64Var(&cfg.maxSize, "max-size", 64<<20, "maximum input size in bytes (0 for no limit)")
	flagSet.BoolVar(&cfg.noBorder, "no-border", false, "render tables without borders")
	flagSet.StringVar(&cfg.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", cfg.logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rest := flagSet.Args()
	if len(rest) > 1 {
		return fmt.Errorf("unexpected argument: %s", rest[1])
	}
	path := ""
	if len(rest) == 1 {
		path = rest[0]
	}

	from, err := inputFormat(cfg.from, path)
	if err != nil {
		return err
	}
	out, err := resolveOutput(cfg.to, from)
	if err != nil {
		return err
	}
	opts := []notation.Option{
		notation.WithIndent(cfg.indent),
		notation.WithXMLRoot(cfg.xmlRoot),
		notation.WithMaxInputSize(cfg.maxSize),
	}
	if cfg.jsonComments {
		opts = append(opts, notation.WithJSONComments())
	}

	var q *query.Query
	if cfg.query != "" {
		if q, err = query.Compile(cfg.query); err != nil {
			return err
		}
	}

	r, closeInput, err := openInput(path, stdin, cfg.hexInput, cfg.maxSize)
	if err != nil {
		return err
	}
	defer closeInput()

	v, err := notation.Read(r, from, opts...)
	if err != nil {
		return err
	}
	logger.Debug("decoded input", "format", from, "kind", v.Kind(), "len", v.Len())

	results := []notation.Value{v}
	if q != nil {
		results = q.Execute(v)
		logger.Debug("executed query", "query", q.String(), "results", len(results))
		if len(results) == 0 {
			logger.Warn("query matched nothing", "query", q.String())
		}
	}

	if out.style != "" {
		var ropts []render.Option
		if cfg.noBorder {
			ropts = append(ropts, render.WithBorder(render.BorderNone))
		}
		return render.Write(stdout, out.style, single(results, q != nil), ropts...)
	}
	return writeFormat(stdout, out.format, results, q != nil, cfg.hexOutput, opts)
}

// output is where results go: a wire format or a render style.
type output struct {
	format notation.Format
	style  render.Style
}

func inputFormat(flag, path string) (notation.Format, error) {
	switch {
	case flag != "":
		return notation.ParseFormat(flag)
	case path != "":
		return notation.FormatForPath(path)
	default:
		return notation.JSON, nil
	}
}

func resolveOutput(flag string, from notation.Format) (output, error) {
	if flag == "" {
		return output{format: from}, nil
	}
	if f, err := notation.ParseFormat(flag); err == nil {
		return output{format: f}, nil
	}
	s, err := render.ParseStyle(flag)
	if err != nil {
		return output{}, fmt.Errorf("%w: %q is neither a format nor a render style", notation.ErrUnsupportedFormat, flag)
	}
	return output{style: s}, nil
}

// single collapses query results into one value: the result itself when
// there is exactly one, otherwise an Array of them.
func single(results []notation.Value, queried bool) notation.Value {
	if !queried || len(results) == 1 {
		return results[0]
	}
	return notation.Array(results...)
}

func writeFormat(w io.Writer, f notation.Format, results []notation.Value, queried, hexOutput bool, opts []notation.Option) error {
	c, err := notation.NewCodec(f, opts...)
	if err != nil {
		return err
	}
	data, err := encodeResults(c, results, queried)
	if err != nil {
		return err
	}
	if f.Binary() {
		if !hexOutput {
			_, err = w.Write(data)
			return err
		}
		data = []byte(hex.EncodeToString(data))
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

// encodeResults writes record formats one record per result, or per
// element when an unqueried input is an Array. Other formats get a single
// document.
func encodeResults(c notation.Codec, results []notation.Value, queried bool) ([]byte, error) {
	switch c.Format() {
	case notation.JSONL, notation.CBORSeq:
		if queried {
			return c.EncodeAll(results)
		}
		if items, ok := results[0].Items(); ok {
			return c.EncodeAll(items)
		}
	}
	return c.Encode(single(results, queried))
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `notate converts structured documents between formats.

Usage:
  notate [flags] [file]

Reads the file, or stdin when no file is given. The input format comes
from --from, the file extension, or defaults to json.

Formats: %v
Render styles: %v, go-template=<template>

Flags:
`, notation.Formats(), render.Styles())
	flagSet.PrintDefaults()
}
