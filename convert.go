package notation

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"
)

// FromAny converts a Go value into a Value. Scalars, slices and string-keyed
// maps convert directly; any other value goes through encoding/json, so
// struct tags and json.Marshaler implementations apply.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t.Clone(), nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return t.Clone(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case int:
		return FromInt(int64(t)), nil
	case int8:
		return FromInt(int64(t)), nil
	case int16:
		return FromInt(int64(t)), nil
	case int32:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case uint:
		return FromUint(uint64(t)), nil
	case uint8:
		return FromUint(uint64(t)), nil
	case uint16:
		return FromUint(uint64(t)), nil
	case uint32:
		return FromUint(uint64(t)), nil
	case uint64:
		return FromUint(t), nil
	case float32:
		return FromFloat(float64(t)), nil
	case float64:
		return FromFloat(t), nil
	case json.Number:
		n, err := parseNumber(t.String())
		if err != nil {
			return Value{}, fmt.Errorf("number %q: %w", t, err)
		}
		return FromNumber(n), nil
	case time.Time:
		return FromString(t.Format(time.RFC3339Nano)), nil
	case []Value:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = item.Clone()
		}
		return Value{kind: ArrayKind, arr: items}, nil
	case map[string]Value:
		return FromMap(t).Clone(), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: ArrayKind, arr: items}, nil
	case map[string]any:
		o := newObject(len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, err
			}
			o.set(k, v)
		}
		return Value{kind: ObjectKind, obj: o}, nil
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return Value{}, err
		}
		return decodeJSON(data)
	}
}

// Interface returns v as plain Go values: nil, bool, int64, uint64, float64,
// string, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case NullKind:
		return nil
	case BoolKind:
		return v.b
	case NumberKind:
		switch v.num.variant {
		case IntVariant:
			return v.num.i
		case UintVariant:
			return v.num.u
		default:
			return v.num.f
		}
	case StringKind:
		return v.str
	case ArrayKind:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	default:
		out := make(map[string]any, len(v.obj.members))
		for _, m := range v.obj.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	}
}

// Decode stores v in the value pointed to by target using encoding/json
// rules.
func (v Value) Decode(target any) error {
	data, err := appendJSON(nil, v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
