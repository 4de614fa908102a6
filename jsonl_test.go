package notation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/notation"
)

func TestJSONLEncode(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		v    notation.Value
		want string
	}{
		"object is one line": {
			v:    notation.Object(notation.Field("a", notation.FromInt(1))),
			want: "{\"a\":1}\n",
		},
		"array stays on one line": {
			v:    notation.Array(notation.FromInt(1), notation.FromInt(2)),
			want: "[1,2]\n",
		},
		"scalar": {
			v:    notation.FromString("x"),
			want: "\"x\"\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := notation.EncodeToString(tt.v, notation.JSONL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONLIgnoresIndent(t *testing.T) {
	t.Parallel()
	got, err := notation.Encode(person(), notation.JSONL, notation.WithIndent("  "))
	require.NoError(t, err)
	assert.Equal(t, 1, countLines(string(got)))
}

func TestJSONLEncodeAll(t *testing.T) {
	t.Parallel()
	got, err := notation.EncodeAll([]notation.Value{
		notation.Object(notation.Field("id", notation.FromInt(1))),
		notation.Object(notation.Field("id", notation.FromInt(2))),
	}, notation.JSONL)
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":1}\n{\"id\":2}\n", string(got))

	empty, err := notation.EncodeAll(nil, notation.JSONL)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestJSONLDecode(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  notation.Value
	}{
		"records": {
			input: "{\"a\":1}\n{\"a\":2}\n",
			want: notation.Array(
				notation.Object(notation.Field("a", notation.FromInt(1))),
				notation.Object(notation.Field("a", notation.FromInt(2))),
			),
		},
		"single record is still a collection": {
			input: "42\n",
			want:  notation.Array(notation.FromInt(42)),
		},
		"blank lines and crlf": {
			input: "\n1\r\n\n  \n2",
			want:  notation.Array(notation.FromInt(1), notation.FromInt(2)),
		},
		"empty input": {
			input: "",
			want:  notation.Array(),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := notation.Decode([]byte(tt.input), notation.JSONL)
			require.NoError(t, err)
			assertValue(t, tt.want, got)
		})
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	t.Parallel()
	x := person()
	y := notation.Array(notation.FromBool(false))

	all, err := notation.EncodeAll([]notation.Value{x, y}, notation.JSONL)
	require.NoError(t, err)
	got, err := notation.Decode(all, notation.JSONL)
	require.NoError(t, err)
	assertValue(t, notation.Array(x, y), got)

	one, err := notation.Encode(x, notation.JSONL)
	require.NoError(t, err)
	got, err = notation.Decode(one, notation.JSONL)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
	assertValue(t, notation.Array(x), got)
}

func TestJSONLDecodeReportsLine(t *testing.T) {
	t.Parallel()
	_, err := notation.Decode([]byte("1\n\n{bad}\n"), notation.JSONL)
	require.ErrorIs(t, err, notation.ErrDecode)
	assert.Contains(t, err.Error(), "line 3")
}

func countLines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
