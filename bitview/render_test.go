package bitview_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/bitview/bitview"
)

func TestBinaryStringFancy(t *testing.T) {
	req := require.New(t)

	host := uint8(0b1011_0010)
	v := New(&host)
	req.Equal("0b1011'0010", v.BinaryString(true))
	req.Equal("10110010", v.BinaryString(false))
}

func TestBinaryStringArray(t *testing.T) {
	req := require.New(t)

	host := [2]uint8{0x0F, 0x81}
	v := bitview.NewArray(&host[0], len(host))

	// The last element holds the most-significant bits.
	req.Equal("0b1000'0001'0000'1111", v.String())
	req.Equal("1000000100001111", v.BinaryString(false))
}

func TestBinaryStringPlainShape(t *testing.T) {
	req := require.New(t)

	host := [5]uint16{0xDEAD, 0xBEEF, 0, 1, 0xFFFF}
	v := bitview.NewArray(&host[0], len(host))

	s := v.BinaryString(false)
	req.Len(s, v.Len())
	req.Empty(strings.Trim(s, "01"))

	fancy := v.BinaryString(true)
	req.True(strings.HasPrefix(fancy, bitview.Prefix))
	req.Equal(v.Len()/4-1, strings.Count(fancy, string(bitview.Separator)))
	req.False(strings.HasSuffix(fancy, string(bitview.Separator)))
	req.Equal(s, strings.ReplaceAll(strings.TrimPrefix(fancy, bitview.Prefix), string(bitview.Separator), ""))
}

func TestBinaryStringReadOnly(t *testing.T) {
	req := require.New(t)

	host := uint32(0xCAFEBABE)
	v := bitview.New(&host)
	_ = v.String()
	_ = v.BinaryString(false)
	req.Equal(uint32(0xCAFEBABE), host)
}

func TestStreamRendering(t *testing.T) {
	req := require.New(t)

	host := uint8(0b1011_0010)
	v := New(&host)

	var buf bytes.Buffer
	n, err := v.WriteTo(&buf)
	req.NoError(err)
	req.EqualValues(len("0b1011'0010"), n)
	req.Equal("0b1011'0010", buf.String())

	req.Equal("0b1011'0010", fmt.Sprint(v))
	req.Equal("[0b1011'0010]", fmt.Sprintf("[%v]", v))
}
