package notation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/tidwall/jsonc"
)

type jsonCodec struct {
	opts options
}

func (jsonCodec) Format() Format { return JSON }

func (c jsonCodec) Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, c.opts.indent); err != nil {
		return nil, encodeError(JSON, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (c jsonCodec) EncodeAll(vs []Value) ([]byte, error) {
	return c.Encode(Array(vs...))
}

func (c jsonCodec) EncodeToString(v Value) (string, error) {
	b, err := c.Encode(v)
	return string(b), err
}

func (c jsonCodec) Decode(data []byte) (Value, error) {
	if c.opts.jsonComments {
		data = jsonc.ToJSON(data)
	}
	v, err := decodeJSON(data)
	if err != nil {
		return Value{}, decodeError(JSON, err)
	}
	return v, nil
}

// writeJSON writes v followed by a newline.
func writeJSON(w io.Writer, v Value, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(v)
}

// MarshalJSON implements json.Marshaler. Object members keep their order.
func (v Value) MarshalJSON() ([]byte, error) {
	return appendJSON(nil, v)
}

// UnmarshalJSON implements json.Unmarshaler with the same number rules as
// the JSON codec.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := decodeJSON(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func appendJSON(dst []byte, v Value) ([]byte, error) {
	switch v.kind {
	case NullKind:
		return append(dst, "null"...), nil
	case BoolKind:
		return strconv.AppendBool(dst, v.b), nil
	case NumberKind:
		if v.num.variant == FloatVariant && (math.IsNaN(v.num.f) || math.IsInf(v.num.f, 0)) {
			return nil, fmt.Errorf("unsupported number %s", v.num)
		}
		return append(dst, v.num.String()...), nil
	case StringKind:
		return appendJSONString(dst, v.str), nil
	case ArrayKind:
		dst = append(dst, '[')
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = appendJSON(dst, item); err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	default:
		dst = append(dst, '{')
		for i, m := range v.obj.members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendJSONString(dst, m.Key)
			dst = append(dst, ':')
			var err error
			if dst, err = appendJSON(dst, m.Value); err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	}
}

const hexDigits = "0123456789abcdef"

func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				dst = append(dst, '\\', c)
			case '\b':
				dst = append(dst, '\\', 'b')
			case '\f':
				dst = append(dst, '\\', 'f')
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				if c < 0x20 {
					dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
				} else {
					dst = append(dst, c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, "\ufffd"...)
		} else {
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}

// decodeJSON walks the token stream so that object member order and the
// literal text of numbers survive.
func decodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSONValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return Value{}, err
		}
		return Value{}, errors.New("trailing data after value")
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case json.Number:
		n, err := parseNumber(t.String())
		if err != nil {
			return Value{}, err
		}
		return FromNumber(n), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := readJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: ArrayKind, arr: items}, nil
		case '{':
			o := newObject(0)
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := kt.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is %T, not string", kt)
				}
				val, err := readJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				o.set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: ObjectKind, obj: o}, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}
