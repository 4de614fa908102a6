package notation

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var errNotObject = errors.New("root must be an object")

type tomlCodec struct {
	opts options
}

func (tomlCodec) Format() Format { return TOML }

// Encode requires an Object root. Null members are left out, since TOML
// has no null.
func (c tomlCodec) Encode(v Value) ([]byte, error) {
	if v.kind != ObjectKind {
		return nil, encodeError(TOML, fmt.Errorf("%w, got %s", errNotObject, v.kind))
	}
	doc, err := toTOML(v)
	if err != nil {
		return nil, encodeError(TOML, err)
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if c.opts.indent != "" {
		enc.SetIndentTables(true)
		enc.SetIndentSymbol(c.opts.indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, encodeError(TOML, err)
	}
	return buf.Bytes(), nil
}

// EncodeAll wraps the values in a table under "items", because a TOML
// document cannot be an array.
func (c tomlCodec) EncodeAll(vs []Value) ([]byte, error) {
	return c.Encode(Object(Field("items", Array(vs...))))
}

func (c tomlCodec) EncodeToString(v Value) (string, error) {
	b, err := c.Encode(v)
	return string(b), err
}

func (tomlCodec) Decode(data []byte) (Value, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Value{}, decodeError(TOML, err)
	}
	v, err := fromTOML(doc)
	if err != nil {
		return Value{}, decodeError(TOML, err)
	}
	if v.kind == NullKind {
		return Object(), nil
	}
	return v, nil
}

func toTOML(v Value) (any, error) {
	switch v.kind {
	case BoolKind:
		return v.b, nil
	case NumberKind:
		switch v.num.variant {
		case IntVariant:
			return v.num.i, nil
		case UintVariant:
			if v.num.u > math.MaxInt64 {
				return nil, fmt.Errorf("integer %d overflows int64", v.num.u)
			}
			return int64(v.num.u), nil
		default:
			return v.num.f, nil
		}
	case StringKind:
		return v.str, nil
	case ArrayKind:
		out := make([]any, 0, len(v.arr))
		for i, item := range v.arr {
			if item.kind == NullKind {
				return nil, fmt.Errorf("array element %d is null", i)
			}
			x, err := toTOML(item)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	case ObjectKind:
		out := make(map[string]any, len(v.obj.members))
		for _, m := range v.obj.members {
			if m.Value.kind == NullKind {
				continue
			}
			x, err := toTOML(m.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", m.Key, err)
			}
			out[m.Key] = x
		}
		return out, nil
	default:
		return nil, errors.New("null has no representation")
	}
}

func fromTOML(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case int64:
		return FromInt(t), nil
	case float64:
		return FromFloat(t), nil
	case string:
		return FromString(t), nil
	case time.Time:
		return FromString(t.Format(time.RFC3339Nano)), nil
	case toml.LocalDate:
		return FromString(t.String()), nil
	case toml.LocalTime:
		return FromString(t.String()), nil
	case toml.LocalDateTime:
		return FromString(t.String()), nil
	case []any:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			v, err := fromTOML(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Value{kind: ArrayKind, arr: items}, nil
	case map[string]any:
		o := newObject(len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			v, err := fromTOML(t[k])
			if err != nil {
				return Value{}, err
			}
			o.set(k, v)
		}
		return Value{kind: ObjectKind, obj: o}, nil
	default:
		return Value{}, fmt.Errorf("unsupported value %T", x)
	}
}
