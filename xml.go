package notation

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// xmlItem is the element name that marks one array element. Repeated
// <item> children are the only array signal in the XML convention.
const xmlItem = "item"

// xmlCodec writes and reads the fixed XML convention: an Object root
// wrapped in a document element, one child element per member, arrays as
// repeated <item> children, and member names passed through an alias
// table.
type xmlCodec struct {
	root    string
	indent  string
	aliases map[string]string // member key -> element name
	reverse map[string]string // element name -> member key
}

func newXMLCodec(o options) xmlCodec {
	c := xmlCodec{
		root:    o.xmlRoot,
		indent:  o.indent,
		aliases: o.xmlAliases,
		reverse: make(map[string]string, len(o.xmlAliases)),
	}
	for k, el := range o.xmlAliases {
		c.reverse[el] = k
	}
	return c
}

func (xmlCodec) Format() Format { return XML }

// Encode requires an Object root.
func (c xmlCodec) Encode(v Value) ([]byte, error) {
	if v.kind != ObjectKind {
		return nil, encodeError(XML, fmt.Errorf("%w, got %s", errNotObject, v.kind))
	}
	if !isXMLName(c.root) {
		return nil, encodeError(XML, fmt.Errorf("invalid root element name %q", c.root))
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := c.writeElement(&buf, c.root, v, 0); err != nil {
		return nil, encodeError(XML, err)
	}
	return buf.Bytes(), nil
}

// EncodeAll wraps the values in the document element under "items".
func (c xmlCodec) EncodeAll(vs []Value) ([]byte, error) {
	return c.Encode(Object(Field("items", Array(vs...))))
}

func (c xmlCodec) EncodeToString(v Value) (string, error) {
	b, err := c.Encode(v)
	return string(b), err
}

func (c xmlCodec) elementName(key string) (string, error) {
	if key == xmlItem {
		return "", fmt.Errorf("member name %q is reserved for array elements", key)
	}
	name := key
	if el, ok := c.aliases[key]; ok {
		name = el
	}
	if name == xmlItem || !isXMLName(name) {
		return "", fmt.Errorf("member name %q is not a valid element name", key)
	}
	return name, nil
}

func (c xmlCodec) newline(buf *bytes.Buffer, depth int) {
	if c.indent == "" {
		return
	}
	buf.WriteByte('\n')
	for range depth {
		buf.WriteString(c.indent)
	}
}

func (c xmlCodec) writeElement(buf *bytes.Buffer, name string, v Value, depth int) error {
	switch v.kind {
	case NullKind:
		buf.WriteString("<" + name + "/>")
		return nil
	case ArrayKind:
		buf.WriteString("<" + name + ">")
		for _, item := range v.arr {
			c.newline(buf, depth+1)
			if err := c.writeElement(buf, xmlItem, item, depth+1); err != nil {
				return err
			}
		}
		if len(v.arr) > 0 {
			c.newline(buf, depth)
		}
	case ObjectKind:
		buf.WriteString("<" + name + ">")
		seen := make(map[string]string, len(v.obj.members))
		for _, m := range v.obj.members {
			el, err := c.elementName(m.Key)
			if err != nil {
				return err
			}
			if other, ok := seen[el]; ok {
				return fmt.Errorf("members %q and %q both write element <%s>", other, m.Key, el)
			}
			seen[el] = m.Key
			c.newline(buf, depth+1)
			if err := c.writeElement(buf, el, m.Value, depth+1); err != nil {
				return fmt.Errorf("%s: %w", m.Key, err)
			}
		}
		if len(v.obj.members) > 0 {
			c.newline(buf, depth)
		}
	default:
		buf.WriteString("<" + name + ">")
		if err := xml.EscapeText(buf, []byte(xmlText(v))); err != nil {
			return err
		}
	}
	buf.WriteString("</" + name + ">")
	return nil
}

func xmlText(v Value) string {
	switch v.kind {
	case BoolKind:
		return strconv.FormatBool(v.b)
	case NumberKind:
		return v.num.String()
	default:
		return v.str
	}
}

// isXMLName reports whether s is usable as an unprefixed element name.
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

// xmlFrame is one open element during decoding. It carries both the
// members collected from named children and the values collected from
// <item> children; which one becomes the element's value is decided when
// the element closes.
type xmlFrame struct {
	key    string
	item   bool
	text   strings.Builder
	fields *object
	items  []Value
	array  bool
}

func (f *xmlFrame) trimmedText() string {
	return strings.TrimSpace(f.text.String())
}

// value is the element's content: sniffed text when it has no children,
// the collected array, the nested object, or the empty string.
func (f *xmlFrame) value() Value {
	switch {
	case f.array:
		return Value{kind: ArrayKind, arr: f.items}
	case len(f.fields.members) > 0:
		return Value{kind: ObjectKind, obj: f.fields}
	default:
		return SniffScalar(f.trimmedText())
	}
}

var errXMLStructure = errors.New("malformed document")

func (c xmlCodec) Decode(data []byte) (Value, error) {
	v, err := c.decode(data)
	if err != nil {
		return Value{}, decodeError(XML, err)
	}
	return v, nil
}

func (c xmlCodec) decode(data []byte) (Value, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	var stack []*xmlFrame
	skipEnd := false
	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Value{}, fmt.Errorf("%w: document element not closed", errXMLStructure)
			}
			return Value{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if selfClosing(data, d.InputOffset()) {
				skipEnd = true
				if len(stack) == 0 {
					return Object(), nil
				}
				c.insert(stack[len(stack)-1], t.Name.Local, Null())
				continue
			}
			stack = append(stack, &xmlFrame{
				key:    c.memberKey(t.Name.Local),
				item:   t.Name.Local == xmlItem && len(stack) > 0,
				fields: newObject(0),
			})
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			if skipEnd {
				skipEnd = false
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return rootValue(f)
			}
			parent := stack[len(stack)-1]
			if f.item {
				if v, ok := itemValue(f); ok {
					parent.items = append(parent.items, v)
				}
				parent.array = true
				continue
			}
			parent.fields.set(f.key, f.value())
		}
	}
}

func (c xmlCodec) memberKey(element string) string {
	if k, ok := c.reverse[element]; ok {
		return k
	}
	return element
}

// insert adds a value produced by a self-closing child.
func (c xmlCodec) insert(parent *xmlFrame, element string, v Value) {
	if element == xmlItem {
		parent.items = append(parent.items, v)
		parent.array = true
		return
	}
	parent.fields.set(c.memberKey(element), v)
}

// itemValue resolves a closed <item>. An item with neither text nor
// children carries nothing and is dropped.
func itemValue(f *xmlFrame) (Value, bool) {
	if text := f.trimmedText(); text != "" {
		return SniffScalar(text), true
	}
	if f.array {
		return Value{kind: ArrayKind, arr: f.items}, true
	}
	if len(f.fields.members) > 0 {
		return Value{kind: ObjectKind, obj: f.fields}, true
	}
	return Value{}, false
}

func rootValue(f *xmlFrame) (Value, error) {
	if f.array {
		return Value{}, fmt.Errorf("%w: document element holds array items", errXMLStructure)
	}
	if len(f.fields.members) == 0 && f.trimmedText() != "" {
		return Value{}, fmt.Errorf("%w: document element holds text", errXMLStructure)
	}
	return Value{kind: ObjectKind, obj: f.fields}, nil
}

// selfClosing reports whether the start tag that ends at off was written
// as <name/>. encoding/xml reports such tags as a start and end pair.
func selfClosing(data []byte, off int64) bool {
	return off >= 2 && off <= int64(len(data)) && string(data[off-2:off]) == "/>"
}
