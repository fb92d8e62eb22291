package bitview

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is wrapped by every RangeError.
var ErrOutOfRange = errors.New("out of range")

// RangeError is returned when an index falls outside the addressable span of a view.
// Limit is the exclusive upper bound on Index, in bits for bit operations and in
// bytes for RawBytesFrom. For SetByte it is Len()-7, the last start of a full byte span plus one.
type RangeError struct {
	Op    string
	Index int
	Limit int
}

func (err RangeError) Error() string {
	return fmt.Sprintf("bitview: %v: index %d %v; expected: [0, %d)", err.Op, err.Index, ErrOutOfRange, err.Limit)
}

func (err RangeError) Unwrap() error {
	return ErrOutOfRange
}
