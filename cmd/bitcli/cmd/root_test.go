package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/spacemeshos/bitview/bitview"
	"github.com/spacemeshos/bitview/cmd/bitcli/cmd"
)

// run executes bitcli with args against an empty config file and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	root := cmd.NewRootCmd(cmd.WithLogger(zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append(args, "--config", path))
	err := root.Execute()
	return out.String(), err
}

func TestShow(t *testing.T) {
	req := require.New(t)

	out, err := run(t, "show", "0b10110010")
	req.NoError(err)
	req.Equal("0b1011'0010\n", out)

	out, err = run(t, "show", "178", "--fancy=false")
	req.NoError(err)
	req.Equal("10110010\n", out)

	out, err = run(t, "show", "0", "255", "--count", "2")
	req.NoError(err)
	req.Equal("0b1111'1111'0000'0000\n", out)

	out, err = run(t, "show", "--type", "uint16", "--count", "2")
	req.NoError(err)
	req.Equal("0b"+strings.Repeat("0000'", 7)+"0000\n", out)
}

func TestShowErrors(t *testing.T) {
	req := require.New(t)

	_, err := run(t, "show", "1", "2")
	req.Error(err)

	_, err = run(t, "show", "--type", "uint128")
	req.Error(err)

	_, err = run(t, "show", "--count", "0")
	req.ErrorContains(err, "invalid `Count`")
}

func TestGet(t *testing.T) {
	req := require.New(t)

	out, err := run(t, "get", "8", "--bit", "3", "--bit", "0")
	req.NoError(err)
	req.Equal("3=1\n0=0\n", out)

	out, err = run(t, "get", "0", "255", "--count", "2", "--bit", "8,0")
	req.NoError(err)
	req.Equal("8=1\n0=0\n", out)

	_, err = run(t, "get", "8", "--bit", "8")
	req.ErrorIs(err, bitview.ErrOutOfRange)

	_, err = run(t, "get", "8")
	req.Error(err)
}

func TestEdit(t *testing.T) {
	req := require.New(t)

	out, err := run(t, "edit", "0", "--op", "set:3=1", "--op", "flip:7")
	req.NoError(err)
	req.Equal("before: 0b0000'0000\nafter:  0b1000'1000\nvalues: 136\n", out)

	out, err = run(t, "edit", "--type", "int8", "--count", "2", "--op", "byte:4=0xFF", "--fancy=false")
	req.NoError(err)
	req.Equal("before: 0000000000000000\nafter:  0000111111110000\nvalues: -16 15\n", out)

	out, err = run(t, "edit", "8", "--op", "set:3=false", "--op", "flip:0", "--op", "flip:0")
	req.NoError(err)
	req.Contains(out, "values: 0\n")
}

func TestEditErrors(t *testing.T) {
	req := require.New(t)

	_, err := run(t, "edit", "0", "--op", "byte:1=0xFF")
	req.ErrorIs(err, bitview.ErrOutOfRange)

	_, err = run(t, "edit", "0", "--op", "flip:8")
	req.ErrorIs(err, bitview.ErrOutOfRange)

	for _, op := range []string{"flip", "flip:x", "set:1", "set:1=maybe", "byte:0=256", "nop:1"} {
		_, err = run(t, "edit", "0", "--op", op)
		req.ErrorIs(err, cmd.ErrInvalidOp, op)
	}

	_, err = run(t, "edit", "0")
	req.Error(err)
}

// tableCells returns the trimmed cells of every bordered table line.
func tableCells(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cells := strings.Split(strings.Trim(line, "|"), "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	return rows
}

func TestTable(t *testing.T) {
	req := require.New(t)

	out, err := run(t, "table", "1", "0x80", "--count", "2")
	req.NoError(err)
	req.Equal([][]string{
		{"OFFSET", "HEX", "BITS", "INDEXES"},
		{"0", "01", "00000001", "7..0"},
		{"1", "80", "10000000", "15..8"},
	}, tableCells(out))

	out, err = run(t, "table", "0x0F", "--type", "uint8")
	req.NoError(err)
	req.Equal([]string{"0", "0f", "00001111", "7..0"}, tableCells(out)[1])

	out, err = run(t, "table", "1", "--table-border=false")
	req.NoError(err)
	req.Empty(tableCells(out))
	req.Contains(out, "00000001")
}

func TestInfo(t *testing.T) {
	req := require.New(t)

	out, err := run(t, "info", "7", "--type", "uint32", "--count", "2", "--dump")
	req.NoError(err)
	req.Contains(out, "kind:  uint32\n")
	req.Contains(out, "count: 2\n")
	req.Contains(out, "bits:  64\n")
	req.Contains(out, "size:  8B\n")
	req.Contains(out, "uint32")
	req.Contains(out, "7,")
}

func TestConfig(t *testing.T) {
	req := require.New(t)

	out, err := run(t, "config", "--type", "uint16", "--log-level", "debug")
	req.NoError(err)
	req.Contains(out, `Type: (string) (len=6) "uint16"`)
	req.Contains(out, `LogLevel: (string) (len=5) "debug"`)
}
