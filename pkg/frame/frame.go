package frame

import (
	"fmt"
)

// Column is a named, homogeneous sequence of values. Kind describes the
// non-missing values; individual entries may always be Missing. KindAny
// marks a heterogeneous column.
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// Col builds a column from values, inferring the narrowest kind that
// describes them.
func Col(name string, values ...Value) Column {
	kind := KindMissing
	for _, v := range values {
		kind = unifyKind(kind, v.Kind())
	}
	return Column{Name: name, Kind: kind, Values: values}
}

// Len returns the number of entries in the column.
func (c Column) Len() int { return len(c.Values) }

// Index is an ordered sequence of row labels. A nil Labels slice denotes
// the default range index 0..n-1.
type Index struct {
	Name   string
	Labels []Value
}

// RangeIndex is the default positional index.
func RangeIndex() Index { return Index{} }

// NewIndex returns a labeled index.
func NewIndex(name string, labels ...Value) Index {
	return Index{Name: name, Labels: labels}
}

// IsRange reports whether the index is the default positional index.
func (ix Index) IsRange() bool { return ix.Labels == nil }

// Label returns the label at position i.
func (ix Index) Label(i int) Value {
	if ix.Labels == nil {
		return Int(int64(i))
	}
	return ix.Labels[i]
}

// Frame is an immutable labeled table: ordered unique-named columns of
// equal length, positionally aligned with a row-label index.
type Frame struct {
	cols   []Column
	byName map[string]int
	index  Index
	nRows  int
}

// New constructs a frame and validates its invariants: unique column
// names and every column length equal to the index length. With a range
// index the row count is taken from the first column.
func New(index Index, cols ...Column) (*Frame, error) {
	n := len(index.Labels)
	if index.IsRange() && len(cols) > 0 {
		n = cols[0].Len()
	}

	byName := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := byName[c.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		byName[c.Name] = i
		if c.Len() != n {
			return nil, fmt.Errorf("%w: column %q has %d values, index has %d",
				ErrLengthMismatch, c.Name, c.Len(), n)
		}
	}

	return &Frame{cols: cols, byName: byName, index: index, nRows: n}, nil
}

// RowCount returns the number of rows.
func (f *Frame) RowCount() int { return f.nRows }

// NumColumns returns the number of columns.
func (f *Frame) NumColumns() int { return len(f.cols) }

// Index returns the frame's row-label index.
func (f *Frame) Index() Index { return f.index }

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// Column returns the named column.
func (f *Frame) Column(name string) (Column, error) {
	i, ok := f.byName[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return f.cols[i], nil
}

// Columns returns the frame's columns in order.
func (f *Frame) Columns() []Column { return f.cols }

// At returns the value in the named column at row i.
func (f *Frame) At(name string, i int) (Value, error) {
	c, err := f.Column(name)
	if err != nil {
		return Missing, err
	}
	if i < 0 || i >= c.Len() {
		return Missing, fmt.Errorf("row %d out of range [0,%d)", i, c.Len())
	}
	return c.Values[i], nil
}

// SelectColumns returns a new frame containing only the named columns, in
// the order given, sharing the index.
func (f *Frame) SelectColumns(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(f.index, cols...)
}

// DropRowLabel returns a new frame without the rows whose index label
// equals the given label. All occurrences are dropped; the label must
// match at least one row.
func (f *Frame) DropRowLabel(label Value) (*Frame, error) {
	keep := make([]int, 0, f.nRows)
	for i := 0; i < f.nRows; i++ {
		if !f.index.Label(i).Equal(label) {
			keep = append(keep, i)
		}
	}
	if len(keep) == f.nRows {
		return nil, fmt.Errorf("%w: %s", ErrLabelNotFound, label)
	}
	return f.takeRows(keep, false), nil
}

// Head returns the first n rows (fewer if the frame is shorter).
func (f *Frame) Head(n int) *Frame {
	if n > f.nRows {
		n = f.nRows
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return f.takeRows(rows, false)
}

// RenameColumns returns a new frame with columns renamed according to the
// mapping. Names absent from the mapping are kept; every key in the
// mapping must name an existing column.
func (f *Frame) RenameColumns(mapping map[string]string) (*Frame, error) {
	for old := range mapping {
		if !f.HasColumn(old) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, old)
		}
	}
	cols := make([]Column, len(f.cols))
	copy(cols, f.cols)
	for i, c := range cols {
		if newName, ok := mapping[c.Name]; ok {
			cols[i].Name = newName
		}
	}
	return New(f.index, cols...)
}

// ResetIndex returns a new frame where the index has been moved into a
// leading column and replaced with the default range index. A range index
// is materialized under the name "index" unless the index carries a name.
func (f *Frame) ResetIndex() (*Frame, error) {
	name := f.index.Name
	if name == "" {
		name = "index"
	}
	labels := make([]Value, f.nRows)
	for i := range labels {
		labels[i] = f.index.Label(i)
	}
	cols := make([]Column, 0, len(f.cols)+1)
	cols = append(cols, Col(name, labels...))
	cols = append(cols, f.cols...)
	return New(RangeIndex(), cols...)
}

// SetIndex returns a new frame whose index is the named column; the
// column is removed from the column set.
func (f *Frame) SetIndex(name string) (*Frame, error) {
	idx, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	cols := make([]Column, 0, len(f.cols)-1)
	for _, c := range f.cols {
		if c.Name != name {
			cols = append(cols, c)
		}
	}
	return New(NewIndex(name, idx.Values...), cols...)
}

// takeRows materializes a new frame from the given row positions. A
// position of -1 yields a Missing cell in every column. When rangeIndex
// is true the result gets a fresh range index, otherwise source labels
// are carried over (-1 positions contribute Missing labels).
func (f *Frame) takeRows(rows []int, rangeIndex bool) *Frame {
	cols := make([]Column, len(f.cols))
	for ci, c := range f.cols {
		vals := make([]Value, len(rows))
		for vi, ri := range rows {
			if ri < 0 {
				vals[vi] = Missing
			} else {
				vals[vi] = c.Values[ri]
			}
		}
		cols[ci] = Column{Name: c.Name, Kind: c.Kind, Values: vals}
	}

	index := RangeIndex()
	if !rangeIndex {
		labels := make([]Value, len(rows))
		for i, ri := range rows {
			if ri < 0 {
				labels[i] = Missing
			} else {
				labels[i] = f.index.Label(ri)
			}
		}
		index = Index{Name: f.index.Name, Labels: labels}
	}

	out, err := New(index, cols...)
	if err != nil {
		// Unreachable: row selection cannot break frame invariants.
		panic(err)
	}
	return out
}
