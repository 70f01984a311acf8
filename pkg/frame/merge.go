package frame

import (
	"fmt"
)

// MergeOptions configures a key-based merge of two frames.
//
// The key is resolved in this order: On (same column names on both
// sides); LeftOn/RightOn (possibly combined with LeftIndex/RightIndex on
// the opposite side); LeftIndex/RightIndex (use the row labels as the
// key). With no specification at all, the columns common to both frames
// are used; if there are none, Merge fails with ErrNoCommonKey.
type MergeOptions struct {
	On      []string
	LeftOn  []string
	RightOn []string

	// LeftIndex / RightIndex use the frame's row labels as its key.
	LeftIndex  bool
	RightIndex bool

	// How selects the surviving key set. Empty defaults to HowInner.
	How How

	// Suffixes disambiguate non-key column names present on both sides.
	// Empty defaults to {"_x", "_y"}.
	Suffixes [2]string
}

// DefaultSuffixes are appended to clashing non-key column names.
var DefaultSuffixes = [2]string{"_x", "_y"}

// resolvedKeys carries the per-side key specification after validation.
type resolvedKeys struct {
	leftCols   []Column // empty when the left key is the index
	rightCols  []Column
	leftIndex  bool
	rightIndex bool
	// outNames holds the output key column name per key position; empty
	// when both sides are keyed by index (no key columns are emitted).
	outNames []string
}

func resolveKeys(l, r *Frame, opts MergeOptions) (resolvedKeys, error) {
	var rk resolvedKeys

	pickCols := func(f *Frame, names []string, side string) ([]Column, error) {
		cols := make([]Column, 0, len(names))
		for _, name := range names {
			c, err := f.Column(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %q on %s side", ErrKeyNotFound, name, side)
			}
			cols = append(cols, c)
		}
		return cols, nil
	}

	switch {
	case len(opts.On) > 0:
		var err error
		if rk.leftCols, err = pickCols(l, opts.On, "left"); err != nil {
			return rk, err
		}
		if rk.rightCols, err = pickCols(r, opts.On, "right"); err != nil {
			return rk, err
		}
		rk.outNames = opts.On

	case len(opts.LeftOn) > 0 || len(opts.RightOn) > 0 || opts.LeftIndex || opts.RightIndex:
		var err error
		switch {
		case len(opts.LeftOn) > 0:
			if rk.leftCols, err = pickCols(l, opts.LeftOn, "left"); err != nil {
				return rk, err
			}
		case opts.LeftIndex:
			rk.leftIndex = true
		default:
			return rk, fmt.Errorf("%w: right key given without LeftOn or LeftIndex", ErrNoCommonKey)
		}
		switch {
		case len(opts.RightOn) > 0:
			if rk.rightCols, err = pickCols(r, opts.RightOn, "right"); err != nil {
				return rk, err
			}
		case opts.RightIndex:
			rk.rightIndex = true
		default:
			return rk, fmt.Errorf("%w: left key given without RightOn or RightIndex", ErrNoCommonKey)
		}
		if len(rk.leftCols) > 0 && len(rk.rightCols) > 0 && len(rk.leftCols) != len(rk.rightCols) {
			return rk, fmt.Errorf("left key has %d columns, right key has %d", len(rk.leftCols), len(rk.rightCols))
		}
		if rk.leftIndex && rk.rightIndex {
			// Index-keyed on both sides: no key columns in the output,
			// the surviving labels become the output index.
			break
		}
		// The output key column takes the left name when the left key is
		// a column, otherwise the right name.
		src := rk.leftCols
		if len(src) == 0 {
			src = rk.rightCols
		}
		for _, c := range src {
			rk.outNames = append(rk.outNames, c.Name)
		}

	default:
		// No key given: use the columns common to both frames, in left
		// column order.
		var common []string
		for _, name := range l.ColumnNames() {
			if r.HasColumn(name) {
				common = append(common, name)
			}
		}
		if len(common) == 0 {
			return rk, fmt.Errorf("%w between %v and %v", ErrNoCommonKey, l.ColumnNames(), r.ColumnNames())
		}
		rk.leftCols, _ = pickCols(l, common, "left")
		rk.rightCols, _ = pickCols(r, common, "right")
		rk.outNames = common
	}

	// Equal key arity when one side is index-keyed: an index is a single
	// key position.
	if rk.leftIndex && len(rk.rightCols) > 1 {
		return rk, fmt.Errorf("right key has %d columns but left key is the index", len(rk.rightCols))
	}
	if rk.rightIndex && len(rk.leftCols) > 1 {
		return rk, fmt.Errorf("left key has %d columns but right key is the index", len(rk.leftCols))
	}

	return rk, nil
}

// keyColumnSet returns the set of key column names on one side.
func keyColumnSet(cols []Column) map[string]bool {
	set := make(map[string]bool, len(cols))
	for _, c := range cols {
		set[c.Name] = true
	}
	return set
}

// Merge combines two frames by aligning rows on a key, per relational
// equi-join semantics. The output columns are the key column(s) once
// (taking the left value where both sides match), followed by the left
// frame's non-key columns, then the right frame's non-key columns.
// Non-key names present on both sides are disambiguated with
// opts.Suffixes; a name still ambiguous afterwards fails with
// ErrColumnConflict. Unmatched positions are filled with Missing. The
// result carries a fresh range index, except when both sides are keyed
// by their row labels: then no key columns are emitted and the surviving
// labels become the output index instead.
func Merge(l, r *Frame, opts MergeOptions) (*Frame, error) {
	if opts.How == "" {
		opts.How = HowInner
	}
	if opts.Suffixes == ([2]string{}) {
		opts.Suffixes = DefaultSuffixes
	}

	rk, err := resolveKeys(l, r, opts)
	if err != nil {
		return nil, err
	}

	plan := planJoin(encodeKeys(l, rk.leftCols), encodeKeys(r, rk.rightCols), opts.How)

	// Non-key columns per side, and the set of names needing suffixes.
	leftKeySet := keyColumnSet(rk.leftCols)
	rightKeySet := keyColumnSet(rk.rightCols)
	var leftRest, rightRest []Column
	for _, c := range l.Columns() {
		if !leftKeySet[c.Name] {
			leftRest = append(leftRest, c)
		}
	}
	for _, c := range r.Columns() {
		if !rightKeySet[c.Name] {
			rightRest = append(rightRest, c)
		}
	}
	clash := make(map[string]bool)
	for _, lc := range leftRest {
		for _, rc := range rightRest {
			if lc.Name == rc.Name {
				clash[lc.Name] = true
			}
		}
	}

	names := make([]string, 0, len(rk.outNames)+len(leftRest)+len(rightRest))
	names = append(names, rk.outNames...)
	for _, c := range leftRest {
		if clash[c.Name] {
			names = append(names, c.Name+opts.Suffixes[0])
		} else {
			names = append(names, c.Name)
		}
	}
	for _, c := range rightRest {
		if clash[c.Name] {
			names = append(names, c.Name+opts.Suffixes[1])
		} else {
			names = append(names, c.Name)
		}
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("%w: %q after suffixing with %q/%q",
				ErrColumnConflict, name, opts.Suffixes[0], opts.Suffixes[1])
		}
		seen[name] = true
	}

	// Materialize output columns from the plan.
	cols := make([]Column, 0, len(names))
	ni := 0

	keyValue := func(pos int, pair PlanPair) Value {
		if pair.Left >= 0 {
			if rk.leftIndex {
				return l.Index().Label(pair.Left)
			}
			return rk.leftCols[pos].Values[pair.Left]
		}
		if rk.rightIndex {
			return r.Index().Label(pair.Right)
		}
		return rk.rightCols[pos].Values[pair.Right]
	}

	for pos := range rk.outNames {
		vals := make([]Value, len(plan))
		kind := KindMissing
		for i, pair := range plan {
			vals[i] = keyValue(pos, pair)
			kind = unifyKind(kind, vals[i].Kind())
		}
		cols = append(cols, Column{Name: names[ni], Kind: kind, Values: vals})
		ni++
	}
	appendSide := func(rest []Column, leftSide bool) {
		for _, c := range rest {
			vals := make([]Value, len(plan))
			for i, pair := range plan {
				pos := pair.Right
				if leftSide {
					pos = pair.Left
				}
				if pos < 0 {
					vals[i] = Missing
				} else {
					vals[i] = c.Values[pos]
				}
			}
			cols = append(cols, Column{Name: names[ni], Kind: c.Kind, Values: vals})
			ni++
		}
	}
	appendSide(leftRest, true)
	appendSide(rightRest, false)

	index := RangeIndex()
	if rk.leftIndex && rk.rightIndex {
		labels := make([]Value, len(plan))
		for i, pair := range plan {
			if pair.Left >= 0 {
				labels[i] = l.Index().Label(pair.Left)
			} else {
				labels[i] = r.Index().Label(pair.Right)
			}
		}
		index = Index{Name: l.Index().Name, Labels: labels}
	}

	return New(index, cols...)
}

// Join merges r into l using r's row labels as the right key, keeping
// every left row (HowLeft). With no on columns the left row labels are
// the key and the surviving labels become the output index; with on
// columns those left columns are matched against r's labels.
func (l *Frame) Join(r *Frame, on ...string) (*Frame, error) {
	return l.JoinHow(r, HowLeft, on...)
}

// JoinHow is Join with an explicit join policy.
func (l *Frame) JoinHow(r *Frame, how How, on ...string) (*Frame, error) {
	opts := MergeOptions{How: how, RightIndex: true}
	if len(on) > 0 {
		opts.LeftOn = on
	} else {
		opts.LeftIndex = true
	}
	return Merge(l, r, opts)
}
