package notation

import (
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDecode            = errors.New("decode failed")
	ErrEncode            = errors.New("encode failed")
)

// Format names a wire format.
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	TOML    Format = "toml"
	CBOR    Format = "cbor"
	CBORSeq Format = "cbor-seq"
	BSON    Format = "bson"
	XML     Format = "xml"
	JSONL   Format = "jsonl"
)

var formats = []Format{JSON, YAML, TOML, CBOR, CBORSeq, BSON, XML, JSONL}

var formatAliases = map[string]Format{
	"yml":     YAML,
	"cborseq": CBORSeq,
	"ndjson":  JSONL,
}

var extensions = map[string]Format{
	".json":    JSON,
	".yaml":    YAML,
	".yml":     YAML,
	".toml":    TOML,
	".cbor":    CBOR,
	".cborseq": CBORSeq,
	".bson":    BSON,
	".xml":     XML,
	".jsonl":   JSONL,
	".ndjson":  JSONL,
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Binary reports whether the format's encoding is not text.
func (f Format) Binary() bool {
	switch f {
	case CBOR, CBORSeq, BSON:
		return true
	default:
		return false
	}
}

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name. Matching ignores case and surrounding
// space, and accepts "yml", "cborseq" and "ndjson".
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range formats {
		if string(f) == name {
			return f, nil
		}
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatForPath picks a format from a file name extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: no format for extension %q", ErrUnsupportedFormat, ext)
}

// Codec encodes and decodes Values in one format. Codecs hold no mutable
// state and are safe for concurrent use.
type Codec interface {
	// Format reports the codec's format.
	Format() Format
	// Encode serializes a single value.
	Encode(v Value) ([]byte, error)
	// EncodeAll serializes a collection. Line and sequence formats write one
	// record per value; other formats write a single Array.
	EncodeAll(vs []Value) ([]byte, error)
	// EncodeToString is Encode as text. Binary formats are hex encoded.
	EncodeToString(v Value) (string, error)
	// Decode parses data into a fully materialized tree.
	Decode(data []byte) (Value, error)
}

// NewCodec returns the codec for f.
func NewCodec(f Format, opts ...Option) (Codec, error) {
	o := buildOptions(opts)
	switch f {
	case JSON:
		return jsonCodec{opts: o}, nil
	case JSONL:
		return jsonlCodec{}, nil
	case YAML:
		return yamlCodec{opts: o}, nil
	case TOML:
		return tomlCodec{opts: o}, nil
	case CBOR:
		return cborCodec{}, nil
	case CBORSeq:
		return cborSeqCodec{}, nil
	case BSON:
		return bsonCodec{}, nil
	case XML:
		return newXMLCodec(o), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func decodeError(f Format, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDecode, f, err)
}

func encodeError(f Format, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrEncode, f, err)
}

// hexString is the text fallback for binary codecs.
func hexString(b []byte, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
