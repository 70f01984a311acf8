package frame

import "errors"

// Sentinel errors returned (wrapped) by frame operations. Callers match
// them with errors.Is.
var (
	// ErrKeyNotFound is returned when a join-key column name does not
	// exist on the side it was specified for. It is reported before any
	// alignment work begins.
	ErrKeyNotFound = errors.New("join key column not found")

	// ErrNoCommonKey is returned by Merge when no key specification was
	// given and the two frames share no column names.
	ErrNoCommonKey = errors.New("no common key columns")

	// ErrColumnConflict is returned when output column names remain
	// ambiguous after the suffixing rule has been applied.
	ErrColumnConflict = errors.New("column name conflict")

	// ErrUnknownColumn is returned when an operation references a column
	// that does not exist.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrDuplicateColumn is returned when a frame would end up with two
	// columns of the same name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrLengthMismatch is returned by New when a column's length differs
	// from the index length.
	ErrLengthMismatch = errors.New("column length mismatch")

	// ErrLabelNotFound is returned by DropRowLabel when no row carries
	// the given label.
	ErrLabelNotFound = errors.New("row label not found")

	// ErrDuplicateLabel is returned by column-stack concatenation when an
	// input's index contains duplicate labels, which makes label-based
	// alignment ambiguous.
	ErrDuplicateLabel = errors.New("duplicate row label")

	// ErrConversion is returned by Convert and by ToNumeric in raise mode
	// when a value cannot be represented in the requested kind.
	ErrConversion = errors.New("cannot convert value")
)
