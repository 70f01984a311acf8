package frame

// IsNull returns a frame of the same shape whose cells are true where the
// source cell is Missing.
func (f *Frame) IsNull() *Frame {
	cols := make([]Column, f.NumColumns())
	for ci, c := range f.cols {
		vals := make([]Value, len(c.Values))
		for i, v := range c.Values {
			vals[i] = Bool(v.IsMissing())
		}
		cols[ci] = Column{Name: c.Name, Kind: KindBool, Values: vals}
	}
	out, err := New(f.index, cols...)
	if err != nil {
		panic(err) // same shape as a valid frame
	}
	return out
}

// NullAny summarizes missing data along an axis. For AxisRows the result
// has one row per column (indexed by column name) saying whether any cell
// in that column is Missing; for AxisColumns it has one row per source
// row saying whether any cell in that row is Missing. Either way the
// result is a single bool column named "any_null".
func (f *Frame) NullAny(axis Axis) *Frame {
	var index Index
	var vals []Value

	if axis == AxisRows {
		labels := make([]Value, f.NumColumns())
		vals = make([]Value, f.NumColumns())
		for ci, c := range f.cols {
			labels[ci] = Str(c.Name)
			any := false
			for _, v := range c.Values {
				if v.IsMissing() {
					any = true
					break
				}
			}
			vals[ci] = Bool(any)
		}
		index = Index{Labels: labels}
	} else {
		vals = make([]Value, f.nRows)
		for i := 0; i < f.nRows; i++ {
			any := false
			for _, c := range f.cols {
				if c.Values[i].IsMissing() {
					any = true
					break
				}
			}
			vals[i] = Bool(any)
		}
		index = f.index
	}

	out, err := New(index, Column{Name: "any_null", Kind: KindBool, Values: vals})
	if err != nil {
		panic(err)
	}
	return out
}

// DropNull returns a new frame without the rows that contain any Missing
// cell.
func (f *Frame) DropNull() *Frame {
	keep := make([]int, 0, f.nRows)
	for i := 0; i < f.nRows; i++ {
		hasNull := false
		for _, c := range f.cols {
			if c.Values[i].IsMissing() {
				hasNull = true
				break
			}
		}
		if !hasNull {
			keep = append(keep, i)
		}
	}
	return f.takeRows(keep, false)
}

// FillValue returns a new frame with every Missing cell replaced by v.
func (f *Frame) FillValue(v Value) *Frame {
	return f.fill(func(vals []Value) {
		for i := range vals {
			if vals[i].IsMissing() {
				vals[i] = v
			}
		}
	})
}

// FillForward returns a new frame where each Missing cell takes the last
// preceding non-missing value in its column. Leading Missing cells are
// left as is.
func (f *Frame) FillForward() *Frame {
	return f.fill(func(vals []Value) {
		last := Missing
		for i := range vals {
			if vals[i].IsMissing() {
				vals[i] = last
			} else {
				last = vals[i]
			}
		}
	})
}

// FillBackward returns a new frame where each Missing cell takes the next
// following non-missing value in its column. Trailing Missing cells are
// left as is.
func (f *Frame) FillBackward() *Frame {
	return f.fill(func(vals []Value) {
		next := Missing
		for i := len(vals) - 1; i >= 0; i-- {
			if vals[i].IsMissing() {
				vals[i] = next
			} else {
				next = vals[i]
			}
		}
	})
}

func (f *Frame) fill(fn func([]Value)) *Frame {
	cols := make([]Column, f.NumColumns())
	for ci, c := range f.cols {
		vals := make([]Value, len(c.Values))
		copy(vals, c.Values)
		fn(vals)
		kind := KindMissing
		for _, v := range vals {
			kind = unifyKind(kind, v.Kind())
		}
		cols[ci] = Column{Name: c.Name, Kind: kind, Values: vals}
	}
	out, err := New(f.index, cols...)
	if err != nil {
		panic(err)
	}
	return out
}
