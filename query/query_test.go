package query_test

import (
	"testing"

	"github.com/bjaus/notation"
	"github.com/bjaus/notation/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(ns ...int64) []notation.Value {
	out := make([]notation.Value, len(ns))
	for i, n := range ns {
		out[i] = notation.FromInt(n)
	}
	return out
}

func assertValues(t *testing.T, want, got []notation.Value) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Truef(t, want[i].Equal(got[i]), "result %d: want %s, got %s", i, want[i], got[i])
	}
}

func TestCompile(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		path string
		want []query.Step
	}{
		"identity": {
			path: ".",
			want: []query.Step{},
		},
		"field": {
			path: ".a",
			want: []query.Step{{Kind: query.FieldStep, Name: "a"}},
		},
		"nested fields": {
			path: ".a.b_2.C",
			want: []query.Step{
				{Kind: query.FieldStep, Name: "a"},
				{Kind: query.FieldStep, Name: "b_2"},
				{Kind: query.FieldStep, Name: "C"},
			},
		},
		"index": {
			path: ".items[12]",
			want: []query.Step{
				{Kind: query.FieldStep, Name: "items"},
				{Kind: query.IndexStep, Index: 12},
			},
		},
		"empty brackets": {
			path: ".items[]",
			want: []query.Step{
				{Kind: query.FieldStep, Name: "items"},
				{Kind: query.WildcardStep},
			},
		},
		"star": {
			path: ".items[*].name",
			want: []query.Step{
				{Kind: query.FieldStep, Name: "items"},
				{Kind: query.WildcardStep},
				{Kind: query.FieldStep, Name: "name"},
			},
		},
		"root index": {
			path: ".[0][1]",
			want: []query.Step{
				{Kind: query.IndexStep, Index: 0},
				{Kind: query.IndexStep, Index: 1},
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			q, err := query.Compile(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Steps())
			assert.Equal(t, tt.path, q.String())
		})
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		path    string
		message string
	}{
		"empty":               {path: "", message: "empty path"},
		"missing dot":         {path: "bad", message: "must start with '.'"},
		"invalid character":   {path: ".a-b", message: "invalid character"},
		"empty segment":       {path: ".a..b", message: "empty field name"},
		"trailing dot":        {path: ".a.", message: "empty field name"},
		"unterminated":        {path: ".a[1", message: "unterminated"},
		"bad index":           {path: ".a[x]", message: "invalid index"},
		"negative index":      {path: ".a[-1]", message: "invalid index"},
		"index overflow":      {path: ".a[99999999999999999999]", message: "out of range"},
		"junk after brackets": {path: ".a[0]b", message: "unexpected character"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := query.Compile(tt.path)
			require.ErrorIs(t, err, query.ErrParse)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { query.MustCompile("bad") })
	assert.NotPanics(t, func() { query.MustCompile(".ok") })
}

func TestExecute(t *testing.T) {
	t.Parallel()
	doc := notation.Object(
		notation.Field("a", notation.Object(notation.Field("b", notation.FromInt(5)))),
		notation.Field("list", notation.Array(ints(1, 2, 3)...)),
		notation.Field("people", notation.Array(
			notation.Object(notation.Field("name", notation.FromString("Ann"))),
			notation.FromString("not an object"),
			notation.Object(notation.Field("name", notation.FromString("Bo"))),
		)),
		notation.Field("scalar", notation.FromBool(true)),
	)
	tests := map[string]struct {
		path string
		want []notation.Value
	}{
		"field":              {path: ".a.b", want: ints(5)},
		"wildcard array":     {path: ".list[]", want: ints(1, 2, 3)},
		"star array":         {path: ".list[*]", want: ints(1, 2, 3)},
		"index":              {path: ".list[1]", want: ints(2)},
		"index out of range": {path: ".list[5]", want: []notation.Value{}},
		"missing field":      {path: ".nope.deeper", want: []notation.Value{}},
		"field of scalar":    {path: ".scalar.x", want: []notation.Value{}},
		"index of object":    {path: ".a[0]", want: []notation.Value{}},
		"wildcard of scalar": {path: ".scalar[]", want: []notation.Value{}},
		"wildcard object":    {path: ".a[*]", want: ints(5)},
		"mixed candidates drop silently": {
			path: ".people[].name",
			want: []notation.Value{notation.FromString("Ann"), notation.FromString("Bo")},
		},
		"identity": {path: ".", want: []notation.Value{doc}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := query.MustCompile(tt.path).Execute(doc)
			assertValues(t, tt.want, got)
		})
	}
}

func TestExecuteItems(t *testing.T) {
	t.Parallel()
	doc := notation.Object(notation.Field("items", notation.Array(ints(1, 2, 3, 4, 5)...)))
	got := query.MustCompile(".items[]").Execute(doc)
	assertValues(t, ints(1, 2, 3, 4, 5), got)
}

func TestExecuteWildcardKeepsMemberOrder(t *testing.T) {
	t.Parallel()
	doc := notation.Object(
		notation.Field("z", notation.FromInt(1)),
		notation.Field("a", notation.FromInt(2)),
		notation.Field("m", notation.FromInt(3)),
	)
	got := query.MustCompile(".[]").Execute(doc)
	assertValues(t, ints(1, 2, 3), got)
}

func TestExecuteResultsAreIndependent(t *testing.T) {
	t.Parallel()
	doc := notation.Object(notation.Field("a", notation.Array(ints(1)...)))
	q := query.MustCompile(".a")
	first := q.Execute(doc)
	second := q.Execute(doc)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.True(t, first[0].Equal(second[0]))
	assert.True(t, doc.Equal(notation.Object(notation.Field("a", notation.Array(ints(1)...)))))
}

func TestExecuteToSingle(t *testing.T) {
	t.Parallel()
	doc := notation.Object(notation.Field("list", notation.Array(ints(7, 8)...)))

	got, err := query.MustCompile(".list[]").ExecuteToSingle(doc)
	require.NoError(t, err)
	assert.True(t, notation.FromInt(7).Equal(got))

	_, err = query.MustCompile(".missing").ExecuteToSingle(doc)
	require.ErrorIs(t, err, query.ErrExecution)
}

func TestExecuteToString(t *testing.T) {
	t.Parallel()
	doc := notation.Object(
		notation.Field("name", notation.FromString("Alice")),
		notation.Field("age", notation.FromInt(30)),
		notation.Field("tags", notation.Array(notation.FromString("x"))),
	)
	tests := map[string]struct {
		path string
		want string
	}{
		"string is raw":     {path: ".name", want: "Alice"},
		"number literal":    {path: ".age", want: "30"},
		"container as json": {path: ".tags", want: `["x"]`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := query.MustCompile(tt.path).ExecuteToString(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := query.MustCompile(".none").ExecuteToString(doc)
	require.ErrorIs(t, err, query.ErrExecution)
}
