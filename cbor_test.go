package notation_test

import (
	"encoding/hex"
	"math"
	"math/big"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/notation"
)

func TestCBOREncode(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		v    notation.Value
		want string
	}{
		"small map":      {v: notation.Object(notation.Field("a", notation.FromInt(1))), want: "a1616101"},
		"negative int":   {v: notation.FromInt(-1), want: "20"},
		"max uint":       {v: notation.FromUint(math.MaxUint64), want: "1bffffffffffffffff"},
		"shortest float": {v: notation.FromFloat(1.5), want: "f93e00"},
		"null":           {v: notation.Null(), want: "f6"},
		"array":          {v: notation.Array(notation.FromBool(true), notation.FromString("x")), want: "82f56178"},
		"sorted keys": {
			v: notation.Object(
				notation.Field("bb", notation.FromInt(2)),
				notation.Field("a", notation.FromInt(1)),
			),
			want: "a261610162626202",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := notation.EncodeToString(tt.v, notation.CBOR)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCBORDeterministic(t *testing.T) {
	t.Parallel()
	a := notation.Object(
		notation.Field("x", notation.FromInt(1)),
		notation.Field("y", notation.Array(notation.FromString("z"))),
	)
	b := notation.Object(
		notation.Field("y", notation.Array(notation.FromString("z"))),
		notation.Field("x", notation.FromInt(1)),
	)
	ea, err := notation.Encode(a, notation.CBOR)
	require.NoError(t, err)
	eb, err := notation.Encode(b, notation.CBOR)
	require.NoError(t, err)
	assert.Equal(t, ea, eb)

	decoded, err := notation.Decode(ea, notation.CBOR)
	require.NoError(t, err)
	again, err := notation.Encode(decoded, notation.CBOR)
	require.NoError(t, err)
	assert.Equal(t, ea, again)
}

func TestCBORRoundTripKeepsNumberVariants(t *testing.T) {
	t.Parallel()
	v := notation.Object(
		notation.Field("i", notation.FromInt(-5)),
		notation.Field("u", notation.FromUint(math.MaxUint64)),
		notation.Field("f", notation.FromFloat(0.1)),
		notation.Field("whole", notation.FromFloat(2)),
		notation.Field("nan", notation.FromFloat(math.NaN())),
	)
	data, err := notation.Encode(v, notation.CBOR)
	require.NoError(t, err)
	got, err := notation.Decode(data, notation.CBOR)
	require.NoError(t, err)
	assertValue(t, v, got)
}

func TestCBORDecodeNativeTypes(t *testing.T) {
	t.Parallel()
	huge, _ := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	tests := map[string]struct {
		input any
		want  notation.Value
	}{
		"byte string": {
			input: []byte{0xde, 0xad},
			want:  notation.FromString("dead"),
		},
		"date time tag": {
			input: cbor.Tag{Number: 0, Content: "2024-05-01T12:00:00Z"},
			want:  notation.FromString("2024-05-01T12:00:00Z"),
		},
		"bignum in range": {
			input: big.NewInt(-9),
			want:  notation.FromInt(-9),
		},
		"bignum out of range": {
			input: huge,
			want:  notation.FromString("340282366920938463463374607431768211456"),
		},
		"unknown tag": {
			input: cbor.Tag{Number: 4000, Content: "inner"},
			want:  notation.FromString("inner"),
		},
		"integer keys": {
			input: map[int]string{2: "b", 1: "a"},
			want: notation.Object(
				notation.Field("1", notation.FromString("a")),
				notation.Field("2", notation.FromString("b")),
			),
		},
		"uint that fits is int": {
			input: uint64(7),
			want:  notation.FromInt(7),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			data, err := cbor.Marshal(tt.input)
			require.NoError(t, err)
			got, err := notation.Decode(data, notation.CBOR)
			require.NoError(t, err)
			assertValue(t, tt.want, got)
		})
	}
}

func TestCBORDecodeErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"empty":          "",
		"truncated":      "a161",
		"trailing bytes": "0101",
		"bad major":      "ff",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			data, err := hex.DecodeString(input)
			require.NoError(t, err)
			_, err = notation.Decode(data, notation.CBOR)
			require.ErrorIs(t, err, notation.ErrDecode)
			assert.NotContains(t, err.Error(), "cbor: cbor:")
		})
	}
}

func TestCBORDecodesDeepAndLargeValues(t *testing.T) {
	t.Parallel()
	deep := notation.FromString("leaf")
	for i := range 200 {
		if i%2 == 0 {
			deep = notation.Array(deep)
		} else {
			deep = notation.Object(notation.Field("next", deep))
		}
	}
	large := make([]notation.Value, 200_000)
	for i := range large {
		large[i] = notation.FromInt(int64(i))
	}
	tests := map[string]notation.Value{
		"deep tree":   deep,
		"large array": notation.Array(large...),
	}
	for name, v := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			data, err := notation.Encode(v, notation.CBOR)
			require.NoError(t, err)
			got, err := notation.Decode(data, notation.CBOR)
			require.NoError(t, err)
			assertValue(t, v, got)

			data, err = notation.EncodeAll([]notation.Value{v}, notation.CBORSeq)
			require.NoError(t, err)
			got, err = notation.Decode(data, notation.CBORSeq)
			require.NoError(t, err)
			assertValue(t, v, got)
		})
	}
}

func TestCBORSeq(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		items []notation.Value
		want  notation.Value
	}{
		"empty": {
			items: nil,
			want:  notation.Array(),
		},
		"single item is returned bare": {
			items: []notation.Value{notation.FromString("x")},
			want:  notation.FromString("x"),
		},
		"many items": {
			items: []notation.Value{notation.FromInt(1), notation.Object(notation.Field("a", notation.Null()))},
			want:  notation.Array(notation.FromInt(1), notation.Object(notation.Field("a", notation.Null()))),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			data, err := notation.EncodeAll(tt.items, notation.CBORSeq)
			require.NoError(t, err)
			got, err := notation.Decode(data, notation.CBORSeq)
			require.NoError(t, err)
			assertValue(t, tt.want, got)
		})
	}
}

func TestCBORSeqEncodeSplitsArrays(t *testing.T) {
	t.Parallel()
	got, err := notation.EncodeToString(notation.Array(notation.FromInt(1), notation.FromInt(2)), notation.CBORSeq)
	require.NoError(t, err)
	assert.Equal(t, "0102", got)

	got, err = notation.EncodeToString(notation.FromInt(1), notation.CBORSeq)
	require.NoError(t, err)
	assert.Equal(t, "01", got)
}

func TestCBORSeqDecodeTruncated(t *testing.T) {
	t.Parallel()
	_, err := notation.Decode([]byte{0x01, 0x82, 0x01}, notation.CBORSeq)
	require.ErrorIs(t, err, notation.ErrDecode)
	assert.Contains(t, err.Error(), "item 1")
	assert.NotContains(t, err.Error(), "item 1: cbor:")
}
