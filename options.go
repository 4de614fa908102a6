package notation

import "maps"

// Option configures a Codec.
type Option func(*options)

type options struct {
	indent       string
	xmlRoot      string
	xmlAliases   map[string]string
	jsonComments bool
	maxInputSize int64
}

// defaultXMLAliases is the element-name convention used when no aliases are
// configured: the member "name" is written as <n>.
var defaultXMLAliases = map[string]string{"name": "n"}

func buildOptions(opts []Option) options {
	o := options{
		xmlRoot:    "root",
		xmlAliases: defaultXMLAliases,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithIndent pretty-prints text formats. For JSON and XML the string is used
// once per nesting level; YAML and TOML use its length as the indent width.
// Compact output is the default.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// WithXMLRoot sets the name of the document element written by the XML
// codec. The default is "root".
func WithXMLRoot(name string) Option {
	return func(o *options) {
		if name != "" {
			o.xmlRoot = name
		}
	}
}

// WithXMLAliases replaces the XML element-name alias table. Keys are object
// member names, values the element names written for them; decoding applies
// the reverse mapping. An empty map disables aliasing.
func WithXMLAliases(aliases map[string]string) Option {
	return func(o *options) { o.xmlAliases = maps.Clone(aliases) }
}

// WithJSONComments makes the JSON codec accept comments and trailing commas.
func WithJSONComments() Option {
	return func(o *options) { o.jsonComments = true }
}

// WithMaxInputSize limits how many bytes Read accepts. Zero means no limit.
func WithMaxInputSize(n int64) Option {
	return func(o *options) { o.maxInputSize = n }
}
