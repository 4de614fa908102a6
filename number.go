package notation

import (
	"math"
	"strconv"
	"strings"
)

// Variant identifies how a Number is stored.
type Variant uint8

const (
	IntVariant Variant = iota
	UintVariant
	FloatVariant
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case IntVariant:
		return "int"
	case UintVariant:
		return "uint"
	case FloatVariant:
		return "float"
	default:
		return "variant(" + strconv.Itoa(int(v)) + ")"
	}
}

// Number is a numeric scalar that remembers whether its source was a signed
// integer, an unsigned integer, or a float.
type Number struct {
	variant Variant
	i       int64
	u       uint64
	f       float64
}

// IntNumber returns a signed integer Number.
func IntNumber(i int64) Number { return Number{variant: IntVariant, i: i} }

// UintNumber returns an unsigned integer Number.
func UintNumber(u uint64) Number { return Number{variant: UintVariant, u: u} }

// FloatNumber returns a floating point Number.
func FloatNumber(f float64) Number { return Number{variant: FloatVariant, f: f} }

// Variant reports how the number is stored.
func (n Number) Variant() Variant { return n.variant }

// Int returns the number as an int64. It reports false for floats and for
// unsigned values that overflow int64.
func (n Number) Int() (int64, bool) {
	switch n.variant {
	case IntVariant:
		return n.i, true
	case UintVariant:
		if n.u <= math.MaxInt64 {
			return int64(n.u), true
		}
	}
	return 0, false
}

// Uint returns the number as a uint64. It reports false for floats and
// negative integers.
func (n Number) Uint() (uint64, bool) {
	switch n.variant {
	case UintVariant:
		return n.u, true
	case IntVariant:
		if n.i >= 0 {
			return uint64(n.i), true
		}
	}
	return 0, false
}

// Float returns the number converted to float64. Large integers may lose
// precision.
func (n Number) Float() float64 {
	switch n.variant {
	case IntVariant:
		return float64(n.i)
	case UintVariant:
		return float64(n.u)
	default:
		return n.f
	}
}

// Equal reports whether both numbers have the same variant and value.
// NaN equals NaN so that decoded trees compare equal to their source.
func (n Number) Equal(o Number) bool {
	if n.variant != o.variant {
		return false
	}
	switch n.variant {
	case IntVariant:
		return n.i == o.i
	case UintVariant:
		return n.u == o.u
	default:
		return n.f == o.f || (math.IsNaN(n.f) && math.IsNaN(o.f))
	}
}

// String returns the literal text of the number. Floats always carry a
// fraction or exponent so they read back as floats.
func (n Number) String() string {
	switch n.variant {
	case IntVariant:
		return strconv.FormatInt(n.i, 10)
	case UintVariant:
		return strconv.FormatUint(n.u, 10)
	default:
		return formatFloat(n.f)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// parseNumber turns a numeric literal into the most specific Number. Text
// without a fraction or exponent becomes an integer when it fits.
func parseNumber(s string) (Number, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntNumber(i), nil
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return UintNumber(u), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, err
	}
	return FloatNumber(f), nil
}
