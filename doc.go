// Package notation decodes and encodes semi-structured documents through one
// in-memory tree.
//
// Supported formats are JSON, YAML, TOML, CBOR, CBOR sequences, BSON, XML,
// and JSON-Lines. The central entry points are [Decode] and [Encode], which
// take a [Format] constant; [Read] and [Write] do the same over an
// [io.Reader] and [io.Writer].
//
//	v, err := notation.Decode(data, notation.YAML)
//	out, err := notation.Encode(v, notation.TOML)
//
// # Values
//
// A [Value] is one of Null, Bool, Number, String, Array, or Object. The zero
// Value is Null. Values are immutable: constructors copy their inputs and
// accessors such as [Value.Items] return copies, so a tree never shares
// nodes with another tree.
//
// Objects keep their members in insertion order. Decoders for formats with
// ordered maps (JSON, YAML, XML, BSON) keep document order; TOML and CBOR
// decode members sorted by key. [Value.Equal] ignores member order.
//
// A [Number] remembers whether it was a signed integer, an unsigned integer,
// or a float. Text formats choose the most specific variant for a literal:
// "12" is an int, "12.0" a float, and integers above the int64 range are
// unsigned.
//
// [Value.String] is the display form: strings are unquoted and containers
// are compact JSON. Use [Encode] for the serialized form.
//
// # Codecs
//
// [NewCodec] returns the [Codec] for a format. Every codec can Encode,
// Decode, and EncodeToString; binary formats are hex encoded as text.
// [Codec.EncodeAll] encodes a collection: JSON-Lines and CBOR sequences write
// one record per value, and the other formats write a single document.
//
// Root and type rules by format:
//
//   - TOML, BSON, and XML require an Object root; their EncodeAll wraps the
//     values under "items"
//   - TOML has no null: Null members are omitted and Null array elements are
//     an error
//   - TOML and BSON cannot hold unsigned integers above the int64 range
//   - JSON rejects NaN and infinities
//   - JSON-Lines always decodes to an Array, one element per non-blank line
//   - a CBOR sequence of one item decodes to that item
//   - BSON and CBOR values with no counterpart here (ObjectID, binary,
//     timestamps, tags) decode to strings
//
// # XML
//
// XML uses a fixed convention rather than general XML mapping. The document
// element (default "root", see [WithXMLRoot]) holds one child element per
// Object member. Arrays are repeated <item> children, Null is a self-closing
// element, and element text is typed with [SniffScalar] on decode. Member
// names pass through an alias table, "name" written as <n> by default; see
// [WithXMLAliases].
//
//	<root><n>Alice</n><tags><item>a</item><item>b</item></tags></root>
//
// # Options
//
// Codecs accept [Option] values: [WithIndent] for pretty output,
// [WithJSONComments] to accept comments and trailing commas in JSON input,
// [WithMaxInputSize] to bound [Read], and the XML options above.
//
// # Go Values
//
// [FromAny] converts Go values, using encoding/json for structs. [Marshal]
// and [Unmarshal] combine conversion with a codec, so any JSON-tagged struct
// can be read from or written to every format. [Value] implements
// json.Marshaler and json.Unmarshaler.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnsupportedFormat]: unknown format name or extension
//   - [ErrDecode]: malformed input for the chosen format
//   - [ErrEncode]: the value cannot be represented in the chosen format
package notation
