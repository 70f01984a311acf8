package frame

import (
	"fmt"
	"strings"
)

// How selects which keys survive a merge.
type How string

const (
	// HowLeft keeps every key of the left frame, in left first-occurrence
	// order.
	HowLeft How = "left"
	// HowRight keeps every key of the right frame.
	HowRight How = "right"
	// HowInner keeps only keys present on both sides.
	HowInner How = "inner"
	// HowOuter keeps keys present on either side: left keys first, then
	// right-only keys.
	HowOuter How = "outer"
)

// ParseHow converts a string such as "left" into a How.
func ParseHow(s string) (How, error) {
	switch How(strings.ToLower(s)) {
	case HowLeft:
		return HowLeft, nil
	case HowRight:
		return HowRight, nil
	case HowInner:
		return HowInner, nil
	case HowOuter:
		return HowOuter, nil
	default:
		return "", fmt.Errorf("invalid join policy %q (want left, right, inner, or outer)", s)
	}
}

// PlanPair pairs a left row position with a right row position. A
// position of -1 means the side is unmatched and its columns are filled
// with Missing.
type PlanPair struct {
	Left  int
	Right int
}

// JoinPlan is the ordered list of position pairs describing which input
// rows combine into each output row.
type JoinPlan []PlanPair

// keyGroups indexes row positions by their encoded composite key while
// remembering first-occurrence key order. Duplicate keys accumulate all
// their positions in ascending order.
type keyGroups struct {
	pos   map[string][]int
	order []string
}

func groupKeys(keys []string) keyGroups {
	g := keyGroups{pos: make(map[string][]int, len(keys))}
	for i, k := range keys {
		if _, seen := g.pos[k]; !seen {
			g.order = append(g.order, k)
		}
		g.pos[k] = append(g.pos[k], i)
	}
	return g
}

// encodeKeys produces one canonical composite-key string per row from the
// given key columns. With no key columns the frame's index labels are the
// key.
func encodeKeys(f *Frame, keyCols []Column) []string {
	keys := make([]string, f.RowCount())
	var b strings.Builder
	for i := range keys {
		b.Reset()
		if len(keyCols) == 0 {
			f.index.Label(i).keyEncode(&b)
		} else {
			for _, c := range keyCols {
				c.Values[i].keyEncode(&b)
			}
		}
		keys[i] = b.String()
	}
	return keys
}

// planJoin computes the join plan for the given per-row key encodings.
//
// Key order follows the policy: left keys in left first-occurrence order
// (with right-only keys appended for outer), right keys in right order
// for HowRight, and the left-ordered intersection for HowInner. Within a
// key the full cross-product of positions is emitted in (left ascending,
// right ascending) order; a side with no positions contributes -1. The
// cross-product step is O(n*m) for a key duplicated on both sides, which
// is inherent to relational-join semantics.
func planJoin(leftKeys, rightKeys []string, how How) JoinPlan {
	lg := groupKeys(leftKeys)
	rg := groupKeys(rightKeys)

	var plan JoinPlan
	emit := func(key string, requireBoth bool) {
		lpos, lok := lg.pos[key]
		rpos, rok := rg.pos[key]
		switch {
		case lok && rok:
			for _, l := range lpos {
				for _, r := range rpos {
					plan = append(plan, PlanPair{Left: l, Right: r})
				}
			}
		case lok && !requireBoth:
			for _, l := range lpos {
				plan = append(plan, PlanPair{Left: l, Right: -1})
			}
		case rok && !requireBoth:
			for _, r := range rpos {
				plan = append(plan, PlanPair{Left: -1, Right: r})
			}
		}
	}

	switch how {
	case HowRight:
		for _, key := range rg.order {
			emit(key, false)
		}
	case HowInner:
		for _, key := range lg.order {
			emit(key, true)
		}
	case HowOuter:
		for _, key := range lg.order {
			emit(key, false)
		}
		for _, key := range rg.order {
			if _, inLeft := lg.pos[key]; !inLeft {
				emit(key, false)
			}
		}
	default: // HowLeft
		for _, key := range lg.order {
			emit(key, false)
		}
	}
	return plan
}
