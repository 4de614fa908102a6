package notation

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"math/big"
	"slices"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// encMode writes Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys and the smallest integer and float forms, so equal Values always
// produce identical bytes.
var encMode cbor.EncMode

// decMode uses the default map type (map[any]any) so documents with
// integer or byte-string keys decode; keys are converted to text below.
// Nesting and length limits are raised to the library maximums, because
// encMode writes any Value without a cap.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("notation: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		MaxNestedLevels:  65535,
		MaxArrayElements: math.MaxInt32,
		MaxMapPairs:      math.MaxInt32,
	}.DecMode()
	if err != nil {
		panic("notation: CBOR decoder initialization failed: " + err.Error())
	}
}

// libError drops the library's "cbor: " message prefix, since the codec
// error already names the format.
type libError struct{ err error }

func (e libError) Error() string { return strings.TrimPrefix(e.err.Error(), "cbor: ") }

func (e libError) Unwrap() error { return e.err }

type cborCodec struct{}

func (cborCodec) Format() Format { return CBOR }

func (cborCodec) Encode(v Value) ([]byte, error) {
	b, err := encMode.Marshal(toCBOR(v))
	if err != nil {
		return nil, encodeError(CBOR, libError{err})
	}
	return b, nil
}

func (c cborCodec) EncodeAll(vs []Value) ([]byte, error) {
	return c.Encode(Array(vs...))
}

func (c cborCodec) EncodeToString(v Value) (string, error) {
	return hexString(c.Encode(v))
}

func (cborCodec) Decode(data []byte) (Value, error) {
	var x any
	if err := decMode.Unmarshal(data, &x); err != nil {
		return Value{}, decodeError(CBOR, libError{err})
	}
	return fromCBOR(x), nil
}

// cborSeqCodec reads and writes RFC 8742 sequences: CBOR items written
// back to back with no framing.
type cborSeqCodec struct{}

func (cborSeqCodec) Format() Format { return CBORSeq }

// Encode writes each element of an Array as its own item. Any other value
// is a sequence of one.
func (c cborSeqCodec) Encode(v Value) ([]byte, error) {
	if v.kind == ArrayKind {
		return c.EncodeAll(v.arr)
	}
	return c.EncodeAll([]Value{v})
}

func (cborSeqCodec) EncodeAll(vs []Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := encMode.NewEncoder(&buf)
	for i, v := range vs {
		if err := enc.Encode(toCBOR(v)); err != nil {
			return nil, encodeError(CBORSeq, fmt.Errorf("item %d: %w", i, libError{err}))
		}
	}
	return buf.Bytes(), nil
}

func (c cborSeqCodec) EncodeToString(v Value) (string, error) {
	return hexString(c.Encode(v))
}

// Decode returns an empty Array for empty input, the item itself for a
// sequence of one, and an Array of the items otherwise.
func (cborSeqCodec) Decode(data []byte) (Value, error) {
	dec := decMode.NewDecoder(bytes.NewReader(data))
	items := []Value{}
	for {
		var x any
		if err := dec.Decode(&x); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Value{}, decodeError(CBORSeq, fmt.Errorf("item %d: %w", len(items), libError{err}))
		}
		items = append(items, fromCBOR(x))
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return Value{kind: ArrayKind, arr: items}, nil
}

func toCBOR(v Value) any {
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
			out[i] = toCBOR(item)
		}
		return out
	default:
		out := make(map[string]any, len(v.obj.members))
		for _, m := range v.obj.members {
			out[m.Key] = toCBOR(m.Value)
		}
		return out
	}
}

func fromCBOR(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case bool:
		return FromBool(t)
	case uint64:
		if t <= math.MaxInt64 {
			return FromInt(int64(t))
		}
		return FromUint(t)
	case int64:
		return FromInt(t)
	case float32:
		return FromFloat(float64(t))
	case float64:
		return FromFloat(t)
	case string:
		return FromString(t)
	case []byte:
		return FromString(hex.EncodeToString(t))
	case cbor.ByteString:
		return FromString(hex.EncodeToString([]byte(t)))
	case time.Time:
		return FromString(t.Format(time.RFC3339Nano))
	case big.Int:
		return fromBigInt(&t)
	case *big.Int:
		return fromBigInt(t)
	case cbor.Tag:
		return fromCBOR(t.Content)
	case cbor.SimpleValue:
		return FromInt(int64(t))
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = fromCBOR(item)
		}
		return Value{kind: ArrayKind, arr: items}
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, item := range t {
			m[cborKey(k)] = item
		}
		return fromCBORMap(m)
	case map[string]any:
		return fromCBORMap(t)
	default:
		return FromString(fmt.Sprint(t))
	}
}

func fromCBORMap(m map[string]any) Value {
	o := newObject(len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		o.set(k, fromCBOR(m[k]))
	}
	return Value{kind: ObjectKind, obj: o}
}

func cborKey(k any) string {
	switch t := k.(type) {
	case cbor.ByteString:
		return hex.EncodeToString([]byte(t))
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// fromBigInt keeps bignums that fit 64 bits as numbers and renders the rest
// in decimal.
func fromBigInt(b *big.Int) Value {
	switch {
	case b.IsInt64():
		return FromInt(b.Int64())
	case b.IsUint64():
		return FromUint(b.Uint64())
	default:
		return FromString(b.String())
	}
}
