package frame

import (
	"fmt"
	"strings"
)

// Axis selects the direction of a concatenation.
type Axis int

const (
	// AxisRows stacks frames vertically: labels are concatenated, columns
	// are unioned.
	AxisRows Axis = 0
	// AxisColumns stacks frames side by side: labels are unioned, columns
	// are concatenated.
	AxisColumns Axis = 1
)

// ParseAxis converts "0"/"rows" or "1"/"columns" into an Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "0", "rows", "index":
		return AxisRows, nil
	case "1", "columns", "cols":
		return AxisColumns, nil
	default:
		return 0, fmt.Errorf("invalid axis %q (want 0/rows or 1/columns)", s)
	}
}

// Concat stacks frames along the given axis without any key matching.
// More than two inputs are combined by left-fold application of the
// pairwise rule in input order. Cells a given input has no data for are
// filled with Missing. Row labels are never deduplicated along AxisRows;
// stacking a frame with itself doubles its row count.
func Concat(axis Axis, frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return New(RangeIndex())
	}
	out := frames[0]
	for _, f := range frames[1:] {
		var err error
		switch axis {
		case AxisRows:
			out, err = rowStack(out, f)
		case AxisColumns:
			out, err = columnStack(out, f)
		default:
			return nil, fmt.Errorf("invalid axis %d", axis)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// rowStack implements AxisRows: the output index is l's labels followed
// by r's labels, and the columns are the union of both column sets (l's
// order first, r-only columns appended).
func rowStack(l, r *Frame) (*Frame, error) {
	names := l.ColumnNames()
	for _, name := range r.ColumnNames() {
		if !l.HasColumn(name) {
			names = append(names, name)
		}
	}

	n := l.RowCount() + r.RowCount()
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		vals := make([]Value, 0, n)
		kind := KindMissing
		for _, src := range []*Frame{l, r} {
			c, err := src.Column(name)
			if err != nil {
				for i := 0; i < src.RowCount(); i++ {
					vals = append(vals, Missing)
				}
				continue
			}
			vals = append(vals, c.Values...)
			kind = unifyKind(kind, c.Kind)
		}
		cols = append(cols, Column{Name: name, Kind: kind, Values: vals})
	}

	labels := make([]Value, 0, n)
	for _, src := range []*Frame{l, r} {
		for i := 0; i < src.RowCount(); i++ {
			labels = append(labels, src.Index().Label(i))
		}
	}
	indexName := l.Index().Name
	if indexName != r.Index().Name {
		indexName = ""
	}

	return New(Index{Name: indexName, Labels: labels}, cols...)
}

// columnStack implements AxisColumns: the output index is the ordered
// union of both label sequences (l's labels first, r-only labels in r's
// order, duplicates merged by label equality) and the columns are l's
// followed by r's. Inputs with duplicate labels cannot be aligned and
// are rejected.
func columnStack(l, r *Frame) (*Frame, error) {
	for _, name := range r.ColumnNames() {
		if l.HasColumn(name) {
			return nil, fmt.Errorf("%w: %q appears in both inputs", ErrDuplicateColumn, name)
		}
	}

	lpos, err := labelPositions(l)
	if err != nil {
		return nil, err
	}
	rpos, err := labelPositions(r)
	if err != nil {
		return nil, err
	}

	labels := make([]Value, 0, l.RowCount()+r.RowCount())
	for i := 0; i < l.RowCount(); i++ {
		labels = append(labels, l.Index().Label(i))
	}
	for i := 0; i < r.RowCount(); i++ {
		label := r.Index().Label(i)
		if _, inLeft := lpos[encodeLabel(label)]; !inLeft {
			labels = append(labels, label)
		}
	}

	cols := make([]Column, 0, l.NumColumns()+r.NumColumns())
	appendSide := func(src *Frame, pos map[string]int) {
		for _, c := range src.Columns() {
			vals := make([]Value, len(labels))
			for i, label := range labels {
				if p, ok := pos[encodeLabel(label)]; ok {
					vals[i] = c.Values[p]
				} else {
					vals[i] = Missing
				}
			}
			cols = append(cols, Column{Name: c.Name, Kind: c.Kind, Values: vals})
		}
	}
	appendSide(l, lpos)
	appendSide(r, rpos)

	indexName := l.Index().Name
	if indexName != r.Index().Name {
		indexName = ""
	}

	return New(Index{Name: indexName, Labels: labels}, cols...)
}

// labelPositions maps each encoded index label to its row position,
// rejecting duplicate labels.
func labelPositions(f *Frame) (map[string]int, error) {
	pos := make(map[string]int, f.RowCount())
	for i := 0; i < f.RowCount(); i++ {
		label := f.Index().Label(i)
		key := encodeLabel(label)
		if _, dup := pos[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLabel, label)
		}
		pos[key] = i
	}
	return pos, nil
}

func encodeLabel(v Value) string {
	var b strings.Builder
	v.keyEncode(&b)
	return b.String()
}
