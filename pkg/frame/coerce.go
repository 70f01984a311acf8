package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoerceMode controls what happens when a value cannot be coerced.
type CoerceMode int

const (
	// CoerceRaise fails the whole operation on the first bad value.
	CoerceRaise CoerceMode = iota
	// CoerceMissing replaces unparsable values with Missing.
	CoerceMissing
)

// ToNumeric returns a new frame where the named column has been coerced
// to a numeric kind: numeric strings are parsed, bools become 0/1, and
// Missing is kept. The column kind becomes KindInt when every parsed
// value is integral, otherwise KindFloat. Unparsable values either fail
// the operation (CoerceRaise) or become Missing (CoerceMissing),
// mirroring the usual errors="raise"/"coerce" ingestion rule.
func (f *Frame) ToNumeric(name string, mode CoerceMode) (*Frame, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}

	vals := make([]Value, len(c.Values))
	allInt := true
	for i, v := range c.Values {
		switch v.Kind() {
		case KindMissing:
			vals[i] = Missing
		case KindInt:
			vals[i] = v
		case KindFloat:
			vals[i] = v
			allInt = false
		case KindBool:
			vals[i] = Int(v.AsInt())
		case KindString:
			s := strings.TrimSpace(v.AsString())
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				vals[i] = Int(n)
				continue
			}
			x, err := strconv.ParseFloat(s, 64)
			if err != nil {
				if mode == CoerceRaise {
					return nil, fmt.Errorf("%w: %q in column %q is not numeric", ErrConversion, v.AsString(), name)
				}
				vals[i] = Missing
				continue
			}
			vals[i] = Float(x)
			allInt = false
		}
	}

	kind := KindFloat
	if allInt {
		kind = KindInt
	}
	return f.replaceColumn(name, Column{Name: name, Kind: kind, Values: vals})
}

// Convert returns a new frame where the named column has been converted
// to the given kind. Missing cells are kept. Conversion rules: any kind
// renders to KindString; numeric kinds and numeric strings convert to
// KindInt/KindFloat (float to int requires an integral value); "true"/
// "false" strings and 0/1 numbers convert to KindBool. Anything else
// fails with ErrConversion.
func (f *Frame) Convert(name string, kind Kind) (*Frame, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}

	vals := make([]Value, len(c.Values))
	for i, v := range c.Values {
		if v.IsMissing() {
			vals[i] = Missing
			continue
		}
		cv, ok := convertValue(v, kind)
		if !ok {
			return nil, fmt.Errorf("%w: %s value %s to %s in column %q",
				ErrConversion, v.Kind(), v, kind, name)
		}
		vals[i] = cv
	}
	return f.replaceColumn(name, Column{Name: name, Kind: kind, Values: vals})
}

func convertValue(v Value, kind Kind) (Value, bool) {
	switch kind {
	case KindString:
		return Str(v.String()), true
	case KindFloat:
		switch v.Kind() {
		case KindInt, KindFloat:
			return Float(v.AsFloat()), true
		case KindBool:
			return Float(float64(v.AsInt())), true
		case KindString:
			x, err := strconv.ParseFloat(strings.TrimSpace(v.AsString()), 64)
			if err != nil {
				return Missing, false
			}
			return Float(x), true
		}
	case KindInt:
		switch v.Kind() {
		case KindInt:
			return v, true
		case KindBool:
			return Int(v.AsInt()), true
		case KindFloat:
			if v.AsFloat() != math.Trunc(v.AsFloat()) {
				return Missing, false
			}
			return Int(int64(v.AsFloat())), true
		case KindString:
			n, err := strconv.ParseInt(strings.TrimSpace(v.AsString()), 10, 64)
			if err != nil {
				return Missing, false
			}
			return Int(n), true
		}
	case KindBool:
		switch v.Kind() {
		case KindBool:
			return v, true
		case KindInt, KindFloat:
			switch v.AsFloat() {
			case 0:
				return Bool(false), true
			case 1:
				return Bool(true), true
			}
		case KindString:
			b, err := strconv.ParseBool(strings.TrimSpace(v.AsString()))
			if err != nil {
				return Missing, false
			}
			return Bool(b), true
		}
	}
	return Missing, false
}

// replaceColumn swaps one column in place, keeping order and index.
func (f *Frame) replaceColumn(name string, col Column) (*Frame, error) {
	cols := make([]Column, len(f.cols))
	copy(cols, f.cols)
	cols[f.byName[name]] = col
	return New(f.index, cols...)
}
