package notation_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/notation"
)

func TestJSONDecode(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  notation.Value
	}{
		"object with array": {
			input: `{"a":1,"b":[true,null]}`,
			want: notation.Object(
				notation.Field("a", notation.FromInt(1)),
				notation.Field("b", notation.Array(notation.FromBool(true), notation.Null())),
			),
		},
		"float": {
			input: `1.5`,
			want:  notation.FromFloat(1.5),
		},
		"exponent is float": {
			input: `1e3`,
			want:  notation.FromFloat(1000),
		},
		"negative int": {
			input: `-42`,
			want:  notation.FromInt(-42),
		},
		"uint beyond int64": {
			input: `18446744073709551615`,
			want:  notation.FromUint(math.MaxUint64),
		},
		"beyond uint64 is float": {
			input: `18446744073709551616`,
			want:  notation.FromFloat(18446744073709551616),
		},
		"string with escapes": {
			input: `"tab\there é"`,
			want:  notation.FromString("tab\there é"),
		},
		"empty containers": {
			input: `{"a":[],"o":{}}`,
			want: notation.Object(
				notation.Field("a", notation.Array()),
				notation.Field("o", notation.Object()),
			),
		},
		"surrounding space": {
			input: " \n null \n",
			want:  notation.Null(),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := notation.Decode([]byte(tt.input), notation.JSON)
			require.NoError(t, err)
			assertValue(t, tt.want, got)
		})
	}
}

func TestJSONDecodeKeepsMemberOrder(t *testing.T) {
	t.Parallel()
	got, err := notation.Decode([]byte(`{"z":1,"a":2,"m":3}`), notation.JSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, got.Keys())
}

func TestJSONDecodeErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"empty":          ``,
		"truncated":      `{"a":`,
		"trailing data":  `{} {}`,
		"trailing comma": `[1,]`,
		"comment":        `// c` + "\n" + `1`,
		"bare word":      `nope`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := notation.Decode([]byte(input), notation.JSON)
			require.ErrorIs(t, err, notation.ErrDecode)
		})
	}
}

func TestJSONComments(t *testing.T) {
	t.Parallel()
	input := "{\n  /* block */\n  \"a\": 1, // line\n  \"b\": [2,],\n}"
	got, err := notation.Decode([]byte(input), notation.JSON, notation.WithJSONComments())
	require.NoError(t, err)
	assertValue(t, notation.Object(
		notation.Field("a", notation.FromInt(1)),
		notation.Field("b", notation.Array(notation.FromInt(2))),
	), got)
}

func TestJSONEncode(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		v    notation.Value
		opts []notation.Option
		want string
	}{
		"compact keeps order": {
			v:    person(),
			want: `{"name":"Alice","age":30,"admin":true,"tags":["a","b"],"address":{"city":"Oslo","zip":"0150"}}`,
		},
		"indented": {
			v:    notation.Object(notation.Field("a", notation.Array(notation.FromInt(1)))),
			opts: []notation.Option{notation.WithIndent("\t")},
			want: "{\n\t\"a\": [\n\t\t1\n\t]\n}",
		},
		"html not escaped": {
			v:    notation.FromString("<a & b>"),
			want: `"<a & b>"`,
		},
		"control characters escaped": {
			v:    notation.FromString("a\nb\x01"),
			want: `"a\nb\u0001"`,
		},
		"whole float keeps fraction": {
			v:    notation.FromFloat(3),
			want: `3.0`,
		},
		"uint": {
			v:    notation.FromUint(math.MaxUint64),
			want: `18446744073709551615`,
		},
		"empty array": {
			v:    notation.Array(),
			want: `[]`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := notation.EncodeToString(tt.v, notation.JSON, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONEncodeRejectsNonFinite(t *testing.T) {
	t.Parallel()
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := notation.Encode(notation.Array(notation.FromFloat(f)), notation.JSON)
		require.ErrorIs(t, err, notation.ErrEncode)
	}
}

func TestJSONEncodeAll(t *testing.T) {
	t.Parallel()
	got, err := notation.EncodeAll([]notation.Value{notation.FromInt(1), notation.FromString("x")}, notation.JSON)
	require.NoError(t, err)
	assert.Equal(t, `[1,"x"]`, string(got))
}

func TestJSONIdempotent(t *testing.T) {
	t.Parallel()
	first, err := notation.Encode(person(), notation.JSON)
	require.NoError(t, err)
	decoded, err := notation.Decode(first, notation.JSON)
	require.NoError(t, err)
	second, err := notation.Encode(decoded, notation.JSON)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestValueJSONMarshaler(t *testing.T) {
	t.Parallel()
	type envelope struct {
		ID   int            `json:"id"`
		Data notation.Value `json:"data"`
	}
	in := envelope{ID: 7, Data: notation.Object(
		notation.Field("b", notation.FromInt(1)),
		notation.Field("a", notation.FromFloat(0.5)),
	)}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"data":{"b":1,"a":0.5}}`, string(data))
	assert.Contains(t, string(data), `{"b":1,"a":0.5}`)

	var out envelope
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 7, out.ID)
	assertValue(t, in.Data, out.Data)
}
