package notation

import (
	"bytes"
	"fmt"
)

type jsonlCodec struct{}

func (jsonlCodec) Format() Format { return JSONL }

// Encode writes v as one compact line, even when v is an Array.
func (jsonlCodec) Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, ""); err != nil {
		return nil, encodeError(JSONL, err)
	}
	return buf.Bytes(), nil
}

// EncodeAll writes one line per value.
func (jsonlCodec) EncodeAll(vs []Value) ([]byte, error) {
	var buf bytes.Buffer
	for i, v := range vs {
		if err := writeJSON(&buf, v, ""); err != nil {
			return nil, encodeError(JSONL, fmt.Errorf("record %d: %w", i, err))
		}
	}
	return buf.Bytes(), nil
}

func (c jsonlCodec) EncodeToString(v Value) (string, error) {
	b, err := c.Encode(v)
	return string(b), err
}

// Decode always returns an Array with one element per non-blank line.
func (jsonlCodec) Decode(data []byte) (Value, error) {
	items := []Value{}
	for n, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		v, err := decodeJSON(line)
		if err != nil {
			return Value{}, decodeError(JSONL, fmt.Errorf("line %d: %w", n+1, err))
		}
		items = append(items, v)
	}
	return Value{kind: ArrayKind, arr: items}, nil
}
