// Package host allocates host arrays of an element kind chosen at runtime and
// exposes them through a bit view.
package host

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spacemeshos/bitview/bitview"
)

type Kind string

const (
	Uint8   Kind = "uint8"
	Int8    Kind = "int8"
	Uint16  Kind = "uint16"
	Int16   Kind = "int16"
	Uint32  Kind = "uint32"
	Int32   Kind = "int32"
	Uint64  Kind = "uint64"
	Int64   Kind = "int64"
	Float32 Kind = "float32"
	Float64 Kind = "float64"
)

var (
	ErrUnknownKind    = errors.New("unknown host kind")
	ErrInvalidCount   = errors.New("invalid element count")
	ErrTooManyValues  = errors.New("too many values")
	ErrInvalidElement = errors.New("invalid element value")
)

// View is the non-generic surface of bitview.BitView.
type View interface {
	Len() int
	ByteCount() int
	BitAt(index int) (bool, error)
	Flip(index int) error
	SetBit(index int, value bool) error
	SetByte(index int, value byte) error
	RawBytesFrom(offset int) ([]byte, error)
	BinaryString(fancy bool) string
	String() string
}

// Host is an array of host values together with a view over its memory.
type Host interface {
	Kind() Kind
	View() View
	// Values returns the current element values, read back from the host memory.
	Values() []string
	// Raw returns the host elements, for debug dumps.
	Raw() any
}

type parser func(kind Kind, count int, values []string) (Host, error)

var parsers = map[Kind]parser{
	Uint8:   newHost(uintParser[uint8](8), uintFormat[uint8]),
	Int8:    newHost(intParser[int8](8), intFormat[int8]),
	Uint16:  newHost(uintParser[uint16](16), uintFormat[uint16]),
	Int16:   newHost(intParser[int16](16), intFormat[int16]),
	Uint32:  newHost(uintParser[uint32](32), uintFormat[uint32]),
	Int32:   newHost(intParser[int32](32), intFormat[int32]),
	Uint64:  newHost(uintParser[uint64](64), uintFormat[uint64]),
	Int64:   newHost(intParser[int64](64), intFormat[int64]),
	Float32: newHost(floatParser[float32](32), floatFormat[float32](32)),
	Float64: newHost(floatParser[float64](64), floatFormat[float64](64)),
}

var aliases = map[string]Kind{
	"byte": Uint8,
}

// Kinds returns the supported kinds, sorted.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(parsers))
	for k := range parsers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ParseKind resolves a kind name, including aliases.
func ParseKind(name string) (Kind, error) {
	if k, ok := aliases[name]; ok {
		return k, nil
	}
	k := Kind(name)
	if _, ok := parsers[k]; !ok {
		return "", fmt.Errorf("%w: %q; expected one of %v", ErrUnknownKind, name, Kinds())
	}
	return k, nil
}

// Parse allocates count elements of the given kind and initializes them from
// values. Elements without a value are zero. Integer values accept the 0x, 0o
// and 0b prefixes.
func Parse(kind string, count int, values []string) (Host, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("%w; expected: >= 1, given: %d", ErrInvalidCount, count)
	}
	if len(values) > count {
		return nil, fmt.Errorf("%w; expected: <= %d, given: %d", ErrTooManyValues, count, len(values))
	}
	return parsers[k](k, count, values)
}

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

type typedHost[T number] struct {
	kind   Kind
	elems  []T
	view   bitview.BitView[T]
	format func(T) string
}

func newHost[T number](parse func(string) (T, error), format func(T) string) parser {
	return func(kind Kind, count int, values []string) (Host, error) {
		elems := make([]T, count)
		for i, s := range values {
			v, err := parse(s)
			if err != nil {
				return nil, fmt.Errorf("%w: element %d (%q) as %v: %v", ErrInvalidElement, i, s, kind, err)
			}
			elems[i] = v
		}

		return &typedHost[T]{
			kind:   kind,
			elems:  elems,
			view:   bitview.FromSlice(elems),
			format: format,
		}, nil
	}
}

func (h *typedHost[T]) Kind() Kind { return h.kind }
func (h *typedHost[T]) View() View { return h.view }
func (h *typedHost[T]) Raw() any   { return h.elems }

func (h *typedHost[T]) Values() []string {
	out := make([]string, len(h.elems))
	for i, v := range h.elems {
		out[i] = h.format(v)
	}
	return out
}

func uintParser[T ~uint8 | ~uint16 | ~uint32 | ~uint64](bitSize int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseUint(s, 0, bitSize)
		return T(v), err
	}
}

func intParser[T ~int8 | ~int16 | ~int32 | ~int64](bitSize int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseInt(s, 0, bitSize)
		return T(v), err
	}
}

func floatParser[T ~float32 | ~float64](bitSize int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseFloat(s, bitSize)
		return T(v), err
	}
}

func uintFormat[T ~uint8 | ~uint16 | ~uint32 | ~uint64](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

func intFormat[T ~int8 | ~int16 | ~int32 | ~int64](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func floatFormat[T ~float32 | ~float64](bitSize int) func(T) string {
	return func(v T) string {
		return strconv.FormatFloat(float64(v), 'g', -1, bitSize)
	}
}
