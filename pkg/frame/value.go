package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the type of a Value or the declared type of a Column.
type Kind uint8

const (
	// KindMissing is the kind of the Missing sentinel.
	KindMissing Kind = iota
	// KindBool holds true/false.
	KindBool
	// KindInt holds a 64-bit signed integer.
	KindInt
	// KindFloat holds a 64-bit float.
	KindFloat
	// KindString holds text.
	KindString
	// KindAny is a column-level kind for heterogeneous columns. Individual
	// values never carry KindAny.
	KindAny
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindAny:
		return "any"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is an immutable tagged scalar. The zero value is Missing.
type Value struct {
	kind Kind
	n    int64
	f    float64
	s    string
}

// Missing is the sentinel for absent data. It is distinguishable from
// every valid value via IsMissing.
var Missing = Value{}

// Bool returns a boolean value.
func Bool(b bool) Value {
	var n int64
	if b {
		n = 1
	}
	return Value{kind: KindBool, n: n}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInt, n: i}
}

// Float returns a float value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Str returns a string value.
func Str(s string) Value {
	return Value{kind: KindString, s: s}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the missing-data sentinel.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// AsBool returns the boolean payload. It is only meaningful for KindBool.
func (v Value) AsBool() bool { return v.n != 0 }

// AsInt returns the integer payload. It is only meaningful for KindInt.
func (v Value) AsInt() int64 { return v.n }

// AsFloat returns the value as a float64. Integers are widened; other
// kinds return NaN.
func (v Value) AsFloat() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.n)
	case KindFloat:
		return v.f
	default:
		return math.NaN()
	}
}

// AsString returns the string payload. It is only meaningful for KindString.
func (v Value) AsString() string { return v.s }

// Go returns the value as a plain Go value: bool, int64, float64, string,
// or nil for Missing.
func (v Value) Go() any {
	switch v.kind {
	case KindBool:
		return v.n != 0
	case KindInt:
		return v.n
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

// String renders the value for display. Missing renders as "<NA>".
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.n != 0)
	case KindInt:
		return strconv.FormatInt(v.n, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return "<NA>"
	}
}

// Equal reports value equality. Numeric kinds compare numerically, so
// Int(3) equals Float(3.0). Values of incompatible kinds (for example a
// string against a number) are never equal. Missing compares equal to
// Missing; this is what lets missing row labels and missing join keys
// align with each other.
func (v Value) Equal(o Value) bool {
	if v.kind == o.kind {
		switch v.kind {
		case KindMissing:
			return true
		case KindBool, KindInt:
			return v.n == o.n
		case KindFloat:
			return v.f == o.f
		case KindString:
			return v.s == o.s
		}
	}
	if isNumeric(v.kind) && isNumeric(o.kind) {
		return v.AsFloat() == o.AsFloat()
	}
	return false
}

func isNumeric(k Kind) bool { return k == KindInt || k == KindFloat }

// keyEncode appends a canonical, kind-tagged encoding of the value to b.
// Concatenated encodings are uniquely decodable: string payloads are
// length-framed and no other payload contains the NUL tag byte, so a
// composite encoding never matches a different composite. Two values
// encode identically exactly when Equal reports true, with one
// exception: NaN floats share an encoding, grouping NaN keys together
// the way missing keys group even though NaN never compares equal.
func (v Value) keyEncode(b *strings.Builder) {
	switch v.kind {
	case KindMissing:
		b.WriteString("\x00m")
	case KindBool:
		b.WriteString("\x00b")
		if v.n != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case KindInt:
		b.WriteString("\x00n")
		b.WriteString(strconv.FormatInt(v.n, 10))
	case KindFloat:
		b.WriteString("\x00n")
		// Integral floats within the exact-integer range of float64 share
		// the integer encoding so Int(3) and Float(3.0) group together.
		if v.f == math.Trunc(v.f) && math.Abs(v.f) < 1<<53 {
			b.WriteString(strconv.FormatInt(int64(v.f), 10))
		} else {
			b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
		}
	case KindString:
		b.WriteString("\x00s")
		b.WriteString(strconv.Itoa(len(v.s)))
		b.WriteByte(':')
		b.WriteString(v.s)
	}
}

// unifyKind returns the narrowest column kind that can describe values of
// both kinds. Missing unifies with anything.
func unifyKind(a, b Kind) Kind {
	switch {
	case a == b:
		return a
	case a == KindMissing:
		return b
	case b == KindMissing:
		return a
	case isNumeric(a) && isNumeric(b):
		return KindFloat
	default:
		return KindAny
	}
}
