package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bjaus/notation"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedStyle = errors.New("unsupported style")
	ErrUnsupportedShape = errors.New("unsupported shape")
	ErrInvalidTemplate  = errors.New("invalid template")
)

// Style names a presentation of a Value for people rather than programs.
type Style string

const (
	Table    Style = "table"
	CSV      Style = "csv"
	TSV      Style = "tsv"
	Markdown Style = "markdown"
	HTML     Style = "html"
	Raw      Style = "raw"
	ENV      Style = "env"
)

const goTemplatePrefix = "go-template="

var styles = []Style{Table, CSV, TSV, Markdown, HTML, Raw, ENV}

// String returns the style name.
func (s Style) String() string { return string(s) }

// Styles returns all static style names. GoTemplate is not included because
// it is parameterized.
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// GoTemplate returns a Style that executes a text/template once per element
// of an Array, or once for any other value.
func GoTemplate(tmpl string) Style {
	return Style(goTemplatePrefix + tmpl)
}

// ParseStyle parses a style name. It recognizes all static styles and
// go-template=<tmpl> strings.
func ParseStyle(s string) (Style, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Style(s), nil
	}
	for _, st := range styles {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedStyle, s)
}

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Option configures rendering.
type Option func(*options)

type options struct {
	border       BorderStyle
	title        string
	caption      string
	numbered     bool
	numberHeader string
	maxWidth     int
	noHeader     bool
	delimiter    rune
	export       bool
	quote        bool
}

// WithBorder sets the table border. The default is BorderRounded.
func WithBorder(b BorderStyle) Option {
	return func(o *options) { o.border = b }
}

// WithTitle renders a title row above a bordered table.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithCaption writes a line below a table.
func WithCaption(caption string) Option {
	return func(o *options) { o.caption = caption }
}

// WithNumbered prepends a right-aligned row number column to a table,
// headed by header.
func WithNumbered(header string) Option {
	return func(o *options) {
		o.numbered = true
		o.numberHeader = header
	}
}

// WithMaxWidth truncates table cells wider than n columns with "...".
func WithMaxWidth(n int) Option {
	return func(o *options) { o.maxWidth = n }
}

// WithoutHeader drops the header row from table, CSV and TSV output.
func WithoutHeader() Option {
	return func(o *options) { o.noHeader = true }
}

// WithDelimiter sets the CSV field delimiter. The default is a comma.
func WithDelimiter(r rune) Option {
	return func(o *options) { o.delimiter = r }
}

// WithExport prefixes ENV pairs with "export ".
func WithExport() Option {
	return func(o *options) { o.export = true }
}

// WithQuote wraps ENV values in double quotes.
func WithQuote() Option {
	return func(o *options) { o.quote = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Write renders v in style s and writes it to w.
func Write(w io.Writer, s Style, v notation.Value, opts ...Option) error {
	o := buildOptions(opts)
	switch s {
	case Table:
		return writeTable(w, tabulate(v), o)
	case CSV:
		return writeCSV(w, tabulate(v), o)
	case TSV:
		return writeTSV(w, tabulate(v), o)
	case Markdown:
		return writeMarkdown(w, tabulate(v))
	case HTML:
		return writeHTML(w, tabulate(v), o)
	case Raw:
		return writeRaw(w, v)
	case ENV:
		return writeENV(w, v, o)
	default:
		if tmpl, ok := strings.CutPrefix(string(s), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, v)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedStyle, s)
	}
}

// WriteAll renders a list of values, such as query results, as one Array.
func WriteAll(w io.Writer, s Style, vs []notation.Value, opts ...Option) error {
	return Write(w, s, notation.Array(vs...), opts...)
}

// Marshal renders v in style s and returns the bytes.
func Marshal(s Style, v notation.Value, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, s, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
