// Package bitview provides bit-granularity access to the memory of an arbitrary
// host value, following the LSB pattern: bit i of the view is bit i%8 (mask
// 1<<(i%8)) of byte i/8 of the host's memory, as laid out by the compiler.
//
// A BitView never owns its host. It aliases the host's memory, so every read
// reflects the host's current contents and every write is immediately visible
// to anyone else reading the host. Views are not safe for concurrent use.
package bitview

import (
	"fmt"
	"reflect"
	"unsafe"
)

// BitView is a bit-addressable view over a host value or a contiguous array of
// host values of type T. The zero value is an empty view.
type BitView[T any] struct {
	host *T
	mem  []byte
	bits int
}

// New returns a view over the single value pointed to by host.
func New[T any](host *T) BitView[T] {
	return NewArray(host, 1)
}

// NewArray returns a view over count contiguous elements starting at host.
// It panics if host is nil, if count < 1, or if T contains Go pointers.
func NewArray[T any](host *T, count int) BitView[T] {
	if host == nil {
		panic("bitview: nil host")
	}
	if count < 1 {
		panic(fmt.Sprintf("bitview: invalid element count %d", count))
	}
	mustBePlain(reflect.TypeOf(host).Elem())

	size := int(unsafe.Sizeof(*host)) * count
	return BitView[T]{
		host: host,
		mem:  unsafe.Slice((*byte)(unsafe.Pointer(host)), size),
		bits: size * 8,
	}
}

// FromSlice returns a view over the elements of s. An empty slice yields an
// empty view.
func FromSlice[T any](s []T) BitView[T] {
	if len(s) == 0 {
		mustBePlain(reflect.TypeOf(s).Elem())
		return BitView[T]{}
	}
	return NewArray(&s[0], len(s))
}

// Host returns the pointer the view was built over.
func (v BitView[T]) Host() *T {
	return v.host
}

// Len returns the number of addressable bits.
func (v BitView[T]) Len() int {
	return v.bits
}

// ByteCount returns the number of bytes the host spans.
func (v BitView[T]) ByteCount() int {
	return v.bits / 8
}

// BitAt reports whether the bit at index is set.
func (v BitView[T]) BitAt(index int) (bool, error) {
	if err := v.check("BitAt", index, 1); err != nil {
		return false, err
	}
	return v.mem[index/8]&mask(index) != 0, nil
}

// Flip toggles the bit at index.
func (v BitView[T]) Flip(index int) error {
	if err := v.check("Flip", index, 1); err != nil {
		return err
	}
	v.mem[index/8] ^= mask(index)
	return nil
}

// SetBit sets the bit at index to 1 if value is true, and to 0 otherwise.
func (v BitView[T]) SetBit(index int, value bool) error {
	if err := v.check("SetBit", index, 1); err != nil {
		return err
	}
	v.setBit(index, value)
	return nil
}

// SetByte writes the 8 bits of value, most-significant bit first, to the bits
// index..index+7. The whole span must be addressable; on error nothing is written.
func (v BitView[T]) SetByte(index int, value byte) error {
	if err := v.check("SetByte", index, 8); err != nil {
		return err
	}
	for i := 0; i < 8; i++ {
		v.setBit(index+i, value&(0x80>>i) != 0)
	}
	return nil
}

// RawBytesFrom returns the host's memory starting offset bytes in.
//
// The returned slice aliases the host directly and bypasses the bit-level
// API; it must not be retained beyond the host's use.
func (v BitView[T]) RawBytesFrom(offset int) ([]byte, error) {
	if offset < 0 || offset >= v.ByteCount() {
		return nil, RangeError{Op: "RawBytesFrom", Index: offset, Limit: v.ByteCount()}
	}
	return v.mem[offset:], nil
}

func (v BitView[T]) setBit(index int, value bool) {
	if value {
		v.mem[index/8] |= mask(index)
	} else {
		v.mem[index/8] &^= mask(index)
	}
}

// check validates that the span of width bits starting at index is addressable.
// The reported limit is the first index at which such a span no longer fits.
func (v BitView[T]) check(op string, index, width int) error {
	limit := v.bits - width + 1
	if limit < 0 {
		limit = 0
	}
	if index < 0 || index >= limit {
		return RangeError{Op: op, Index: index, Limit: limit}
	}
	return nil
}

func mask(index int) byte {
	return 1 << (index % 8)
}

// mustBePlain panics if values of t hold Go pointers anywhere in their layout.
func mustBePlain(t reflect.Type) {
	if !isPlain(t) {
		panic(fmt.Sprintf("bitview: host type %v holds pointers", t))
	}
}

func isPlain(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || isPlain(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isPlain(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
