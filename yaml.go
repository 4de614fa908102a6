package notation

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// maxAliasDepth bounds alias expansion so self-referencing anchors fail
// instead of recursing forever.
const maxAliasDepth = 64

// Alias expansion may produce at most yamlNodesPerByte nodes per input
// byte, and never fewer than minYAMLNodeBudget in total.
const (
	yamlNodesPerByte  = 100
	minYAMLNodeBudget = 100_000
)

type yamlCodec struct {
	opts options
}

func (yamlCodec) Format() Format { return YAML }

func (c yamlCodec) Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if c.opts.indent != "" {
		enc.SetIndent(len(c.opts.indent))
	}
	if err := enc.Encode(toYAMLNode(v)); err != nil {
		return nil, encodeError(YAML, err)
	}
	if err := enc.Close(); err != nil {
		return nil, encodeError(YAML, err)
	}
	return buf.Bytes(), nil
}

func (c yamlCodec) EncodeAll(vs []Value) ([]byte, error) {
	return c.Encode(Array(vs...))
}

func (c yamlCodec) EncodeToString(v Value) (string, error) {
	b, err := c.Encode(v)
	return string(b), err
}

// Decode reads the first document. An empty document is Null.
func (yamlCodec) Decode(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, decodeError(YAML, err)
	}
	if doc.Kind == 0 {
		return Null(), nil
	}
	v, err := newYAMLReader(len(data)).value(&doc, 0)
	if err != nil {
		return Value{}, decodeError(YAML, err)
	}
	return v, nil
}

func toYAMLNode(v Value) *yaml.Node {
	switch v.kind {
	case NullKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case BoolKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case NumberKind:
		if v.num.variant == FloatVariant {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(v.num.f)}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.num.String()}
	case StringKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case ArrayKind:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.arr {
			n.Content = append(n.Content, toYAMLNode(item))
		}
		return n
	default:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.obj.members {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			n.Content = append(n.Content, key, toYAMLNode(m.Value))
		}
		return n
	}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return formatFloat(f)
}

// yamlReader converts a node tree to a Value. Each converted node spends
// one unit of budget, so a document whose aliases fan out into far more
// nodes than its size fails instead of expanding without bound.
type yamlReader struct {
	budget int
}

func newYAMLReader(size int) *yamlReader {
	return &yamlReader{budget: max(minYAMLNodeBudget, size*yamlNodesPerByte)}
}

func (r *yamlReader) spend(n *yaml.Node) error {
	r.budget--
	if r.budget < 0 {
		return fmt.Errorf("line %d: alias expansion too large", n.Line)
	}
	return nil
}

func (r *yamlReader) value(n *yaml.Node, depth int) (Value, error) {
	if err := r.spend(n); err != nil {
		return Value{}, err
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return r.value(n.Content[0], depth)
	case yaml.AliasNode:
		if depth >= maxAliasDepth {
			return Value{}, errors.New("alias nesting too deep")
		}
		return r.value(n.Alias, depth+1)
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := r.value(c, depth)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{kind: ArrayKind, arr: items}, nil
	case yaml.MappingNode:
		o := newObject(len(n.Content) / 2)
		if err := r.merge(o, n, depth); err != nil {
			return Value{}, err
		}
		return Value{kind: ObjectKind, obj: o}, nil
	default:
		return Value{}, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

// merge adds the pairs of n to o. Values from "<<" merge keys only fill
// members that the mapping does not set itself.
func (r *yamlReader) merge(o *object, n *yaml.Node, depth int) error {
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, val := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			merges = append(merges, val)
			continue
		}
		key, err := yamlKey(k)
		if err != nil {
			return err
		}
		v, err := r.value(val, depth)
		if err != nil {
			return err
		}
		o.set(key, v)
	}
	for _, m := range merges {
		sources := []*yaml.Node{m}
		if resolveYAMLAlias(m).Kind == yaml.SequenceNode {
			sources = resolveYAMLAlias(m).Content
		}
		for _, src := range sources {
			src = resolveYAMLAlias(src)
			if src.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: merge value is not a mapping", src.Line)
			}
			if depth >= maxAliasDepth {
				return errors.New("merge nesting too deep")
			}
			if err := r.spend(src); err != nil {
				return err
			}
			merged := newObject(len(src.Content) / 2)
			if err := r.merge(merged, src, depth+1); err != nil {
				return err
			}
			for _, mm := range merged.members {
				if _, ok := o.index[mm.Key]; !ok {
					o.set(mm.Key, mm.Value)
				}
			}
		}
	}
	return nil
}

func resolveYAMLAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func yamlKey(n *yaml.Node) (string, error) {
	n = resolveYAMLAlias(n)
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping key is not a scalar", n.Line)
	}
	return n.Value, nil
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return FromBool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return FromInt(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return FromUint(u), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return FromFloat(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return FromFloat(f), nil
	default:
		return FromString(n.Value), nil
	}
}
