package notation

import (
	"encoding/hex"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bsonCodec struct{}

func (bsonCodec) Format() Format { return BSON }

// Encode requires an Object root, because a BSON document is always a map.
func (bsonCodec) Encode(v Value) ([]byte, error) {
	if v.kind != ObjectKind {
		return nil, encodeError(BSON, fmt.Errorf("%w, got %s", errNotObject, v.kind))
	}
	doc, err := toBSON(v)
	if err != nil {
		return nil, encodeError(BSON, err)
	}
	b, err := bson.Marshal(doc)
	if err != nil {
		return nil, encodeError(BSON, err)
	}
	return b, nil
}

// EncodeAll wraps the values in a document under "items".
func (c bsonCodec) EncodeAll(vs []Value) ([]byte, error) {
	return c.Encode(Object(Field("items", Array(vs...))))
}

func (c bsonCodec) EncodeToString(v Value) (string, error) {
	return hexString(c.Encode(v))
}

func (bsonCodec) Decode(data []byte) (Value, error) {
	if len(data) == 0 {
		return Value{}, decodeError(BSON, errors.New("empty document"))
	}
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return Value{}, decodeError(BSON, err)
	}
	return fromBSON(doc), nil
}

func toBSON(v Value) (any, error) {
	switch v.kind {
	case NullKind:
		return nil, nil
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
		out := make(bson.A, 0, len(v.arr))
		for _, item := range v.arr {
			x, err := toBSON(item)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	default:
		out := make(bson.D, 0, len(v.obj.members))
		for _, m := range v.obj.members {
			x, err := toBSON(m.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", m.Key, err)
			}
			out = append(out, bson.E{Key: m.Key, Value: x})
		}
		return out, nil
	}
}

func fromBSON(x any) Value {
	switch t := x.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return Null()
	case bool:
		return FromBool(t)
	case int32:
		return FromInt(int64(t))
	case int64:
		return FromInt(t)
	case float64:
		return FromFloat(t)
	case string:
		return FromString(t)
	case primitive.D:
		o := newObject(len(t))
		for _, e := range t {
			o.set(e.Key, fromBSON(e.Value))
		}
		return Value{kind: ObjectKind, obj: o}
	case primitive.M:
		return fromBSON(mapToD(t))
	case primitive.A:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = fromBSON(item)
		}
		return Value{kind: ArrayKind, arr: items}
	case primitive.ObjectID:
		return FromString(t.Hex())
	case primitive.Binary:
		return FromString(hex.EncodeToString(t.Data))
	case primitive.DateTime:
		return FromString(t.Time().UTC().Format(time.RFC3339Nano))
	case primitive.Timestamp:
		return FromString(fmt.Sprintf("Timestamp(%d, %d)", t.T, t.I))
	case primitive.Decimal128:
		return FromString(t.String())
	case primitive.Regex:
		return FromString("/" + t.Pattern + "/" + t.Options)
	case primitive.JavaScript:
		return FromString(string(t))
	case primitive.Symbol:
		return FromString(string(t))
	case primitive.CodeWithScope:
		return FromString(string(t.Code))
	case primitive.MinKey:
		return FromString("MinKey")
	case primitive.MaxKey:
		return FromString("MaxKey")
	case primitive.DBPointer:
		return FromString(t.DB + ":" + t.Pointer.Hex())
	default:
		return FromString(fmt.Sprint(t))
	}
}

func mapToD(m primitive.M) primitive.D {
	d := make(primitive.D, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		d = append(d, primitive.E{Key: k, Value: m[k]})
	}
	return d
}
