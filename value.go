package notation

import (
	"iter"
	"maps"
	"slices"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindNames = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an immutable node of a semi-structured tree. The zero Value is
// Null.
type Value struct {
	kind Kind
	b    bool
	num  Number
	str  string
	arr  []Value
	obj  *object
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Field returns a Member for use with Object.
func Field(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// object keeps members in insertion order with an index for lookups.
type object struct {
	members []Member
	index   map[string]int
}

func newObject(capacity int) *object {
	return &object{
		members: make([]Member, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

// set adds or replaces a member. A replaced member keeps its position.
func (o *object) set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

func (o *object) get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.members[i].Value, true
}

// Null returns the null Value.
func Null() Value { return Value{} }

// FromBool returns a boolean Value.
func FromBool(b bool) Value { return Value{kind: BoolKind, b: b} }

// FromInt returns a signed integer Value.
func FromInt(i int64) Value { return FromNumber(IntNumber(i)) }

// FromUint returns an unsigned integer Value.
func FromUint(u uint64) Value { return FromNumber(UintNumber(u)) }

// FromFloat returns a floating point Value.
func FromFloat(f float64) Value { return FromNumber(FloatNumber(f)) }

// FromNumber returns a numeric Value.
func FromNumber(n Number) Value { return Value{kind: NumberKind, num: n} }

// FromString returns a string Value.
func FromString(s string) Value { return Value{kind: StringKind, str: s} }

// Array returns an Array holding a copy of items.
func Array(items ...Value) Value {
	return Value{kind: ArrayKind, arr: slices.Clone(items)}
}

// Object returns an Object with the given members in order. A repeated key
// replaces the earlier value in the earlier position.
func Object(members ...Member) Value {
	o := newObject(len(members))
	for _, m := range members {
		o.set(m.Key, m.Value)
	}
	return Value{kind: ObjectKind, obj: o}
}

// FromMap returns an Object whose members are sorted by key.
func FromMap(m map[string]Value) Value {
	o := newObject(len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		o.set(k, m[k])
	}
	return Value{kind: ObjectKind, obj: o}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == NullKind }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	if v.kind != BoolKind {
		return false, false
	}
	return v.b, true
}

// AsNumber returns the number held by v.
func (v Value) AsNumber() (Number, bool) {
	if v.kind != NumberKind {
		return Number{}, false
	}
	return v.num, true
}

// AsInt returns v as an int64 when it is an integer that fits.
func (v Value) AsInt() (int64, bool) {
	if v.kind != NumberKind {
		return 0, false
	}
	return v.num.Int()
}

// AsUint returns v as a uint64 when it is a non-negative integer.
func (v Value) AsUint() (uint64, bool) {
	if v.kind != NumberKind {
		return 0, false
	}
	return v.num.Uint()
}

// AsFloat returns any number held by v as a float64.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != NumberKind {
		return 0, false
	}
	return v.num.Float(), true
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	if v.kind != StringKind {
		return "", false
	}
	return v.str, true
}

// Items returns a copy of the elements of an Array.
func (v Value) Items() ([]Value, bool) {
	if v.kind != ArrayKind {
		return nil, false
	}
	return slices.Clone(v.arr), true
}

// Members returns a copy of the members of an Object, in order.
func (v Value) Members() ([]Member, bool) {
	if v.kind != ObjectKind {
		return nil, false
	}
	return slices.Clone(v.obj.members), true
}

// Keys returns the keys of an Object in order, or nil for other kinds.
func (v Value) Keys() []string {
	if v.kind != ObjectKind {
		return nil
	}
	keys := make([]string, len(v.obj.members))
	for i, m := range v.obj.members {
		keys[i] = m.Key
	}
	return keys
}

// Len returns the number of elements of an Array or members of an Object,
// and zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.arr)
	case ObjectKind:
		return len(v.obj.members)
	default:
		return 0
	}
}

// Field looks up a member of an Object.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != ObjectKind {
		return Value{}, false
	}
	return v.obj.get(name)
}

// Index returns the element at i of an Array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != ArrayKind || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// All iterates over the members of an Object in order. For an Array the keys
// are the decimal indexes. Scalars yield nothing.
func (v Value) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		switch v.kind {
		case ObjectKind:
			for _, m := range v.obj.members {
				if !yield(m.Key, m.Value) {
					return
				}
			}
		case ArrayKind:
			for i, item := range v.arr {
				if !yield(strconv.Itoa(i), item) {
					return
				}
			}
		}
	}
}

// Clone returns a deep copy of v that shares no nodes with it.
func (v Value) Clone() Value {
	switch v.kind {
	case ArrayKind:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Clone()
		}
		return Value{kind: ArrayKind, arr: items}
	case ObjectKind:
		o := newObject(len(v.obj.members))
		for _, m := range v.obj.members {
			o.set(m.Key, m.Value.Clone())
		}
		return Value{kind: ObjectKind, obj: o}
	default:
		return v
	}
}

// Equal reports whether v and o hold the same tree. Object member order is
// not significant; array order is.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == o.b
	case NumberKind:
		return v.num.Equal(o.num)
	case StringKind:
		return v.str == o.str
	case ArrayKind:
		return slices.EqualFunc(v.arr, o.arr, Value.Equal)
	default:
		if len(v.obj.members) != len(o.obj.members) {
			return false
		}
		for _, m := range v.obj.members {
			ov, ok := o.obj.get(m.Key)
			if !ok || !m.Value.Equal(ov) {
				return false
			}
		}
		return true
	}
}

// String returns the display form of v: strings unquoted, other scalars as
// their literals, and containers as compact JSON. Use Encode for the
// serialized form.
func (v Value) String() string {
	switch v.kind {
	case NullKind:
		return "null"
	case BoolKind:
		return strconv.FormatBool(v.b)
	case NumberKind:
		return v.num.String()
	case StringKind:
		return v.str
	default:
		b, err := appendJSON(nil, v)
		if err != nil {
			return "<" + err.Error() + ">"
		}
		return string(b)
	}
}
