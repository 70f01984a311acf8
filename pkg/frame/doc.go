// Package frame implements an immutable labeled table: ordered, named,
// homogeneously-typed columns aligned against a row-label index.
//
// Frames are combined with Concat (label-based stacking along either
// axis) or Merge (key-based relational join with left/right/inner/outer
// policies). Every operation returns a new Frame; inputs are never
// mutated. Absent data is carried as the Missing value and propagated,
// not computed away.
package frame
