package bitview

import (
	"io"
	"strings"
)

const (
	// Prefix starts the fancy rendering.
	Prefix = "0b"

	// Separator groups the fancy rendering into nibbles.
	Separator = '\''
)

// BinaryString renders the bits of the view from the most-significant (index
// Len()-1) down to index 0. When fancy is set, the digits are prefixed with
// "0b" and a separator follows every bit whose index is a nonzero multiple of 4,
// e.g. 0b1011'0010 for a single byte.
func (v BitView[T]) BinaryString(fancy bool) string {
	var sb strings.Builder
	if fancy {
		sb.Grow(len(Prefix) + v.bits + v.bits/4)
		sb.WriteString(Prefix)
	} else {
		sb.Grow(v.bits)
	}

	for i := v.bits - 1; i >= 0; i-- {
		if v.mem[i/8]&mask(i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		if fancy && i != 0 && i%4 == 0 {
			sb.WriteByte(Separator)
		}
	}

	return sb.String()
}

// String returns the fancy rendering.
func (v BitView[T]) String() string {
	return v.BinaryString(true)
}

// WriteTo writes the fancy rendering to w.
func (v BitView[T]) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, v.String())
	return int64(n), err
}
