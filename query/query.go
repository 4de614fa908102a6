package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bjaus/notation"
)

// Sentinel errors for programmatic error handling.
var (
	ErrParse     = errors.New("invalid query")
	ErrExecution = errors.New("query failed")
)

// StepKind identifies what a Step selects.
type StepKind uint8

const (
	// FieldStep selects a member of an Object by name.
	FieldStep StepKind = iota + 1
	// IndexStep selects an element of an Array by position.
	IndexStep
	// WildcardStep selects every element of an Array or every member value
	// of an Object.
	WildcardStep
)

func (k StepKind) String() string {
	switch k {
	case FieldStep:
		return "field"
	case IndexStep:
		return "index"
	case WildcardStep:
		return "wildcard"
	default:
		return "StepKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Step is one traversal step of a compiled query. Name is set for
// FieldStep and Index for IndexStep.
type Step struct {
	Kind  StepKind
	Name  string
	Index int
}

// String returns the step in path syntax.
func (s Step) String() string {
	switch s.Kind {
	case FieldStep:
		return "." + s.Name
	case IndexStep:
		return "[" + strconv.Itoa(s.Index) + "]"
	default:
		return "[*]"
	}
}

// Query is a compiled path. It is immutable and safe for concurrent use.
type Query struct {
	path  string
	steps []Step
}

// Steps returns a copy of the compiled steps.
func (q *Query) Steps() []Step {
	out := make([]Step, len(q.steps))
	copy(out, q.steps)
	return out
}

// String returns the source path.
func (q *Query) String() string { return q.path }

// Execute walks v through the steps, breadth first. Candidates that do not
// match a step are dropped without error, so the result may be empty. Each
// result is a deep copy owned by the caller.
func (q *Query) Execute(v notation.Value) []notation.Value {
	candidates := []notation.Value{v}
	for _, s := range q.steps {
		candidates = apply(s, candidates)
		if len(candidates) == 0 {
			return []notation.Value{}
		}
	}
	out := make([]notation.Value, len(candidates))
	for i, c := range candidates {
		out[i] = c.Clone()
	}
	return out
}

// ExecuteToSingle returns the first result. No results is ErrExecution.
func (q *Query) ExecuteToSingle(v notation.Value) (notation.Value, error) {
	results := q.Execute(v)
	if len(results) == 0 {
		return notation.Value{}, fmt.Errorf("%w: %s produced no results", ErrExecution, q.path)
	}
	return results[0], nil
}

// ExecuteToString returns the first result as text: a String's raw
// content, otherwise the display form.
func (q *Query) ExecuteToString(v notation.Value) (string, error) {
	r, err := q.ExecuteToSingle(v)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func apply(s Step, candidates []notation.Value) []notation.Value {
	var next []notation.Value
	for _, c := range candidates {
		switch s.Kind {
		case FieldStep:
			if v, ok := c.Field(s.Name); ok {
				next = append(next, v)
			}
		case IndexStep:
			if v, ok := c.Index(s.Index); ok {
				next = append(next, v)
			}
		case WildcardStep:
			if c.Kind() != notation.ArrayKind && c.Kind() != notation.ObjectKind {
				continue
			}
			for _, v := range c.All() {
				next = append(next, v)
			}
		}
	}
	return next
}

// Compile parses a path such as ".items[0].name" or ".items[]". A lone "."
// selects the input itself, and brackets may follow it directly to index
// the root.
func Compile(path string) (*Query, error) {
	steps, err := parse(path)
	if err != nil {
		return nil, err
	}
	return &Query{path: path, steps: steps}, nil
}

// MustCompile is like Compile but panics if the path does not parse. It is
// meant for paths fixed at build time.
func MustCompile(path string) *Query {
	q, err := Compile(path)
	if err != nil {
		panic(err)
	}
	return q
}

func parseError(path string, off int, msg string) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrParse, msg, off, path)
}

func parse(path string) ([]Step, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrParse)
	}
	if path[0] != '.' {
		return nil, parseError(path, 0, "path must start with '.'")
	}
	steps := []Step{}
	i := 1
	if i < len(path) && path[i] != '[' {
		name, n, err := parseSegment(path, i)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Kind: FieldStep, Name: name})
		i = n
	}
	for i < len(path) {
		switch path[i] {
		case '.':
			name, n, err := parseSegment(path, i+1)
			if err != nil {
				return nil, err
			}
			steps = append(steps, Step{Kind: FieldStep, Name: name})
			i = n
		case '[':
			s, n, err := parseBracket(path, i)
			if err != nil {
				return nil, err
			}
			steps = append(steps, s)
			i = n
		default:
			return nil, parseError(path, i, fmt.Sprintf("unexpected character %q", path[i]))
		}
	}
	return steps, nil
}

// parseSegment reads a field name starting at i and returns it with the
// offset just past it.
func parseSegment(path string, i int) (string, int, error) {
	start := i
	for i < len(path) && path[i] != '.' && path[i] != '[' {
		if !isFieldByte(path[i]) {
			return "", 0, parseError(path, i, fmt.Sprintf("invalid character %q in field name", path[i]))
		}
		i++
	}
	if i == start {
		return "", 0, parseError(path, start, "empty field name")
	}
	return path[start:i], i, nil
}

func isFieldByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// parseBracket reads "[n]", "[*]" or "[]" starting at the '[' at i.
func parseBracket(path string, i int) (Step, int, error) {
	end := strings.IndexByte(path[i:], ']')
	if end < 0 {
		return Step{}, 0, parseError(path, i, "unterminated '['")
	}
	content := path[i+1 : i+end]
	next := i + end + 1
	if content == "" || content == "*" {
		return Step{Kind: WildcardStep}, next, nil
	}
	for j := 0; j < len(content); j++ {
		if content[j] < '0' || content[j] > '9' {
			return Step{}, 0, parseError(path, i+1+j, fmt.Sprintf("invalid index %q", content))
		}
	}
	n, err := strconv.Atoi(content)
	if err != nil {
		return Step{}, 0, parseError(path, i+1, fmt.Sprintf("index %s out of range", content))
	}
	return Step{Kind: IndexStep, Index: n}, next, nil
}
