package notation

import "strings"

// SniffScalar infers a scalar from untyped text, as found in XML element
// content: "true" and "false" in any case become Bool, "null" becomes Null,
// numeric literals become Number, and everything else is a String.
func SniffScalar(text string) Value {
	switch {
	case strings.EqualFold(text, "true"):
		return FromBool(true)
	case strings.EqualFold(text, "false"):
		return FromBool(false)
	case text == "null":
		return Null()
	}
	if looksNumeric(text) {
		if n, err := parseNumber(text); err == nil {
			return FromNumber(n)
		}
	}
	return FromString(text)
}

func looksNumeric(s string) bool {
	digit := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digit = true
		case c == '+', c == '-', c == '.', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return digit
}
